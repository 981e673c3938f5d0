package repository

import (
	"errors"

	"github.com/caneca-next/internal/models"

	"gorm.io/gorm"
)

// StockMovementFilter 流水查询条件
type StockMovementFilter struct {
	ProductID uint
	OrderID   uint
	Page      int
	PageSize  int
}

// StockMovementRepository 库存流水数据访问接口（只追加）
type StockMovementRepository interface {
	Append(movement *models.StockMovement) error
	List(filter StockMovementFilter) ([]models.StockMovement, int64, error)
	CountByProduct(productID uint) (int64, error)
	WithTx(tx *gorm.DB) StockMovementRepository
}

// GormStockMovementRepository GORM 实现
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository 创建库存流水仓库
func NewStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStockMovementRepository) WithTx(tx *gorm.DB) StockMovementRepository {
	if tx == nil {
		return r
	}
	return &GormStockMovementRepository{db: tx}
}

// Append 追加流水记录
func (r *GormStockMovementRepository) Append(movement *models.StockMovement) error {
	if movement == nil {
		return errors.New("movement is nil")
	}
	return r.db.Create(movement).Error
}

// List 查询流水（最新在前）
func (r *GormStockMovementRepository) List(filter StockMovementFilter) ([]models.StockMovement, int64, error) {
	query := r.db.Model(&models.StockMovement{})
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movements []models.StockMovement
	query = applyPagination(query.Order("created_at DESC, id DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&movements).Error; err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}

// CountByProduct 统计某商品的流水条数
func (r *GormStockMovementRepository) CountByProduct(productID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.StockMovement{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
