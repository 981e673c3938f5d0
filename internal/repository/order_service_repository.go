package repository

import (
	"errors"

	"github.com/caneca-next/internal/models"

	"gorm.io/gorm"
)

// OrderServiceRepository 订单附加服务数据访问接口
type OrderServiceRepository interface {
	Create(service *models.OrderService) error
	GetByID(id uint) (*models.OrderService, error)
	ListByOrder(orderID uint) ([]models.OrderService, error)
	Delete(id uint) error
	WithTx(tx *gorm.DB) OrderServiceRepository
}

// GormOrderServiceRepository GORM 实现
type GormOrderServiceRepository struct {
	db *gorm.DB
}

// NewOrderServiceRepository 创建订单附加服务仓库
func NewOrderServiceRepository(db *gorm.DB) *GormOrderServiceRepository {
	return &GormOrderServiceRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderServiceRepository) WithTx(tx *gorm.DB) OrderServiceRepository {
	if tx == nil {
		return r
	}
	return &GormOrderServiceRepository{db: tx}
}

// Create 创建服务项
func (r *GormOrderServiceRepository) Create(service *models.OrderService) error {
	if service == nil {
		return errors.New("order service is nil")
	}
	return r.db.Create(service).Error
}

// GetByID 根据 ID 获取服务项
func (r *GormOrderServiceRepository) GetByID(id uint) (*models.OrderService, error) {
	var service models.OrderService
	if err := r.db.First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

// ListByOrder 获取订单下全部服务项
func (r *GormOrderServiceRepository) ListByOrder(orderID uint) ([]models.OrderService, error) {
	var services []models.OrderService
	if err := r.db.Where("order_id = ?", orderID).Order("id ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// Delete 删除服务项
func (r *GormOrderServiceRepository) Delete(id uint) error {
	result := r.db.Delete(&models.OrderService{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
