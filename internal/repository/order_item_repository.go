package repository

import (
	"errors"

	"github.com/caneca-next/internal/models"

	"gorm.io/gorm"
)

// OrderItemRepository 订单商品项数据访问接口
type OrderItemRepository interface {
	Create(item *models.OrderItem) error
	GetByID(id uint) (*models.OrderItem, error)
	ListByOrder(orderID uint) ([]models.OrderItem, error)
	Delete(id uint) error
	WithTx(tx *gorm.DB) OrderItemRepository
}

// GormOrderItemRepository GORM 实现
type GormOrderItemRepository struct {
	db *gorm.DB
}

// NewOrderItemRepository 创建订单商品项仓库
func NewOrderItemRepository(db *gorm.DB) *GormOrderItemRepository {
	return &GormOrderItemRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderItemRepository) WithTx(tx *gorm.DB) OrderItemRepository {
	if tx == nil {
		return r
	}
	return &GormOrderItemRepository{db: tx}
}

// Create 创建商品项
func (r *GormOrderItemRepository) Create(item *models.OrderItem) error {
	if item == nil {
		return errors.New("order item is nil")
	}
	return r.db.Create(item).Error
}

// GetByID 根据 ID 获取商品项
func (r *GormOrderItemRepository) GetByID(id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByOrder 获取订单下全部商品项
func (r *GormOrderItemRepository) ListByOrder(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Delete 删除商品项
func (r *GormOrderItemRepository) Delete(id uint) error {
	result := r.db.Delete(&models.OrderItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
