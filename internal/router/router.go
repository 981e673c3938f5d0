package router

import (
	"fmt"
	"strings"

	"github.com/caneca-next/internal/cache"
	"github.com/caneca-next/internal/config"
	adminhandlers "github.com/caneca-next/internal/http/handlers/admin"
	publichandlers "github.com/caneca-next/internal/http/handlers/public"
	"github.com/caneca-next/internal/logger"
	"github.com/caneca-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "caneca"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "登录尝试过于频繁",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的设计稿）
	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	r.Static("/uploads", uploadDir)

	apiV1 := r.Group("/api/v1")
	{
		// 公开查询接口
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/products/by-sku/:sku", publicHandler.GetProductBySKU)
		apiV1.GET("/stock/movements", publicHandler.GetMovements)
		apiV1.GET("/stock/:product_id", publicHandler.GetStock)
		apiV1.GET("/orders/:id", publicHandler.GetOrder)
		apiV1.GET("/orders/by-order-no/:order_no", publicHandler.GetOrderByNo)
		apiV1.GET("/orders/:id/items", publicHandler.GetOrderItems)
		apiV1.GET("/orders/:id/services", publicHandler.GetOrderServices)
		apiV1.GET("/orders/:id/designs", publicHandler.GetOrderDesigns)

		// 用户认证
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login",
				RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")),
				publicHandler.Login,
			)
		}

		// 登录态接口
		authed := apiV1.Group("")
		authed.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			authed.GET("/me", publicHandler.Me)

			// 订单管理
			authed.POST("/orders", adminHandler.CreateOrder)
			authed.GET("/orders", adminHandler.ListOrders)
			authed.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
			authed.PUT("/orders/:id/discount", adminHandler.ApplyDiscount)
			authed.PUT("/orders/:id/total", adminHandler.SetOrderTotals)
			authed.POST("/orders/:id/checkout", adminHandler.CheckoutOrder)
			authed.POST("/orders/:id/items", adminHandler.AddOrderItem)
			authed.DELETE("/orders/:id/items/:item_id", adminHandler.RemoveOrderItem)
			authed.POST("/orders/:id/services", adminHandler.AddOrderService)
			authed.DELETE("/orders/:id/services/:service_id", adminHandler.RemoveOrderService)
			authed.POST("/orders/:id/designs", adminHandler.UploadDesign)
			authed.DELETE("/designs/:id", adminHandler.DeleteDesign)

			// 商品与库存管理（管理员）
			manage := authed.Group("")
			manage.Use(RequireAdminMiddleware())
			{
				manage.GET("/admin/products", adminHandler.ListProducts)
				manage.POST("/products", adminHandler.CreateProduct)
				manage.PUT("/products/:id", adminHandler.UpdateProduct)
				manage.DELETE("/products/:id", adminHandler.DeleteProduct)

				manage.POST("/stock/decrease", adminHandler.DecreaseStock)
				manage.POST("/stock/increase", adminHandler.IncreaseStock)
				manage.POST("/stock/:product_id/initialize", adminHandler.InitializeStock)
				manage.PUT("/stock/:product_id", adminHandler.AdjustStock)
			}
		}
	}

	return r
}
