package main

import (
	"github.com/caneca-next/internal/config"
	"github.com/caneca-next/internal/constants"
	"github.com/caneca-next/internal/logger"
	"github.com/caneca-next/internal/models"
)

type seedProduct struct {
	product models.Product
	stock   int
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 示例商品与初始库存
	seeds := []seedProduct{
		{
			product: models.Product{
				Name:        "经典白色马克杯 325ml",
				Description: "陶瓷材质，适合热转印定制图案",
				BasePrice:   1500,
				SKU:         "MUG-CLASSIC-WHITE",
				Category:    "ceramic",
				IsActive:    true,
			},
			stock: 50,
		},
		{
			product: models.Product{
				Name:        "魔术变色杯 325ml",
				Description: "遇热显示定制图案",
				BasePrice:   2500,
				SKU:         "MUG-MAGIC-BLACK",
				Category:    "magic",
				IsActive:    true,
			},
			stock: 30,
		},
		{
			product: models.Product{
				Name:        "不锈钢保温杯 500ml",
				Description: "双层真空，可激光雕刻",
				BasePrice:   4500,
				SKU:         "MUG-THERMAL-STEEL",
				Category:    "thermal",
				IsActive:    true,
			},
			stock: 20,
		},
	}

	for _, seed := range seeds {
		var existing models.Product
		if err := models.DB.Where("sku = ?", seed.product.SKU).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", seed.product.SKU)
			continue
		}

		product := seed.product
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.SKU, err)
			continue
		}
		stdLog.Printf("Created product: %s", product.SKU)

		stock := models.Stock{
			ProductID:    product.ID,
			Quantity:     seed.stock,
			MinimumLevel: constants.DefaultStockMinimumLevel,
		}
		if err := models.DB.Create(&stock).Error; err != nil {
			stdLog.Printf("Failed to create stock for %s: %v", product.SKU, err)
			continue
		}
		if seed.stock > 0 {
			movement := models.StockMovement{
				ProductID:    product.ID,
				MovementType: constants.MovementTypePurchase,
				Quantity:     seed.stock,
				Reason:       "库存初始化",
			}
			if err := models.DB.Create(&movement).Error; err != nil {
				stdLog.Printf("Failed to create movement for %s: %v", product.SKU, err)
			}
		}
	}

	stdLog.Printf("Seed finished")
}
