package service

import (
	"github.com/caneca-next/internal/constants"
	"github.com/caneca-next/internal/models"
	"github.com/caneca-next/internal/repository"

	"gorm.io/gorm"
)

// StockService 库存业务服务。
// 每次数量变动都在同一事务内追加一条流水，
// 扣减走条件更新，数量不足时整个事务回滚。
type StockService struct {
	productRepo  repository.ProductRepository
	stockRepo    repository.StockRepository
	movementRepo repository.StockMovementRepository
}

// NewStockService 创建库存服务
func NewStockService(productRepo repository.ProductRepository, stockRepo repository.StockRepository, movementRepo repository.StockMovementRepository) *StockService {
	return &StockService{
		productRepo:  productRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
	}
}

// GetByProductID 获取商品库存
func (s *StockService) GetByProductID(productID uint) (*models.Stock, error) {
	stock, err := s.stockRepo.GetByProductID(productID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, ErrStockNotFound
	}
	return stock, nil
}

// Initialize 初始化商品库存。
// 初始数量大于零时追加一条进货流水。
func (s *StockService) Initialize(productID uint, quantity int, minimumLevel *int) (*models.Stock, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	exist, err := s.stockRepo.GetByProductID(productID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrStockExists
	}

	level := constants.DefaultStockMinimumLevel
	if minimumLevel != nil && *minimumLevel >= 0 {
		level = *minimumLevel
	}

	stock := &models.Stock{
		ProductID:    productID,
		Quantity:     quantity,
		MinimumLevel: level,
	}
	err = s.stockRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.stockRepo.WithTx(tx).Create(stock); err != nil {
			return err
		}
		if quantity == 0 {
			return nil
		}
		return s.movementRepo.WithTx(tx).Append(&models.StockMovement{
			ProductID:    productID,
			MovementType: constants.MovementTypePurchase,
			Quantity:     quantity,
			Reason:       "库存初始化",
		})
	})
	if err != nil {
		return nil, err
	}
	return stock, nil
}

// Decrease 扣减库存并追加出库流水。
// 数量不足时不产生任何写入。
func (s *StockService) Decrease(productID uint, quantity int, movementType string, orderID *uint, reason string) (*models.Stock, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if movementType != constants.MovementTypeSale && movementType != constants.MovementTypeAdjustment {
		return nil, ErrInvalidMovementType
	}

	err := s.stockRepo.Transaction(func(tx *gorm.DB) error {
		return s.decreaseInTx(tx, productID, quantity, movementType, orderID, reason)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByProductID(productID)
}

// Increase 增加库存并追加入库流水
func (s *StockService) Increase(productID uint, quantity int, movementType string, orderID *uint, reason string) (*models.Stock, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if movementType != constants.MovementTypePurchase &&
		movementType != constants.MovementTypeReturn &&
		movementType != constants.MovementTypeAdjustment {
		return nil, ErrInvalidMovementType
	}

	err := s.stockRepo.Transaction(func(tx *gorm.DB) error {
		return s.increaseInTx(tx, productID, quantity, movementType, orderID, reason)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByProductID(productID)
}

// AdjustTo 将库存调整到目标数量，差额记为一条盘点流水。
// 目标与当前数量相同则不产生流水。
func (s *StockService) AdjustTo(productID uint, target int, reason string) (*models.Stock, error) {
	if target < 0 {
		return nil, ErrInvalidQuantity
	}

	err := s.stockRepo.Transaction(func(tx *gorm.DB) error {
		stock, err := s.stockRepo.WithTx(tx).GetByProductID(productID)
		if err != nil {
			return err
		}
		if stock == nil {
			return ErrStockNotFound
		}

		delta := target - stock.Quantity
		switch {
		case delta > 0:
			return s.increaseInTx(tx, productID, delta, constants.MovementTypeAdjustment, nil, reason)
		case delta < 0:
			return s.decreaseInTx(tx, productID, -delta, constants.MovementTypeAdjustment, nil, reason)
		default:
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return s.GetByProductID(productID)
}

// Movements 查询库存流水（按时间倒序）
func (s *StockService) Movements(productID, orderID uint, page, pageSize int) ([]models.StockMovement, int64, error) {
	return s.movementRepo.List(repository.StockMovementFilter{
		ProductID: productID,
		OrderID:   orderID,
		Page:      page,
		PageSize:  pageSize,
	})
}

// decreaseInTx 事务内条件扣减并追加流水
func (s *StockService) decreaseInTx(tx *gorm.DB, productID uint, quantity int, movementType string, orderID *uint, reason string) error {
	affected, err := s.stockRepo.WithTx(tx).DecreaseQuantity(productID, quantity)
	if err != nil {
		return err
	}
	if affected == 0 {
		stock, err := s.stockRepo.WithTx(tx).GetByProductID(productID)
		if err != nil {
			return err
		}
		if stock == nil {
			return ErrStockNotFound
		}
		return ErrInsufficientStock
	}
	return s.movementRepo.WithTx(tx).Append(&models.StockMovement{
		ProductID:    productID,
		OrderID:      orderID,
		MovementType: movementType,
		Quantity:     quantity,
		Reason:       reason,
	})
}

// increaseInTx 事务内增加数量并追加流水
func (s *StockService) increaseInTx(tx *gorm.DB, productID uint, quantity int, movementType string, orderID *uint, reason string) error {
	affected, err := s.stockRepo.WithTx(tx).IncreaseQuantity(productID, quantity)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStockNotFound
	}
	return s.movementRepo.WithTx(tx).Append(&models.StockMovement{
		ProductID:    productID,
		OrderID:      orderID,
		MovementType: movementType,
		Quantity:     quantity,
		Reason:       reason,
	})
}
