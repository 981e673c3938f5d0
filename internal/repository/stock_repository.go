package repository

import (
	"errors"

	"github.com/caneca-next/internal/models"

	"gorm.io/gorm"
)

// StockRepository 库存数据访问接口
type StockRepository interface {
	GetByProductID(productID uint) (*models.Stock, error)
	Create(stock *models.Stock) error
	// DecreaseQuantity 条件扣减：仅当现有数量足够时生效，返回受影响行数。
	DecreaseQuantity(productID uint, quantity int) (int64, error)
	// IncreaseQuantity 增加数量，返回受影响行数（0 表示库存记录不存在）。
	IncreaseQuantity(productID uint, quantity int) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) StockRepository
}

// GormStockRepository GORM 实现
type GormStockRepository struct {
	db *gorm.DB
}

// NewStockRepository 创建库存仓库
func NewStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStockRepository) WithTx(tx *gorm.DB) StockRepository {
	if tx == nil {
		return r
	}
	return &GormStockRepository{db: tx}
}

// Transaction 执行事务
func (r *GormStockRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByProductID 根据商品 ID 获取库存记录
func (r *GormStockRepository) GetByProductID(productID uint) (*models.Stock, error) {
	var stock models.Stock
	if err := r.db.Where("product_id = ?", productID).First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

// Create 创建库存记录
func (r *GormStockRepository) Create(stock *models.Stock) error {
	if stock == nil {
		return errors.New("stock is nil")
	}
	return r.db.Create(stock).Error
}

// DecreaseQuantity 条件扣减库存。
// 单条 UPDATE 携带数量下限条件，并发扣减时数据库保证不会超卖；
// 返回 0 行即库存不足或记录不存在，由调用方判定。
func (r *GormStockRepository) DecreaseQuantity(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrease params")
	}
	result := r.db.Model(&models.Stock{}).
		Where("product_id = ? AND quantity >= ?", productID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncreaseQuantity 增加库存数量
func (r *GormStockRepository) IncreaseQuantity(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock increase params")
	}
	result := r.db.Model(&models.Stock{}).
		Where("product_id = ?", productID).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
