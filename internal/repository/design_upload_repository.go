package repository

import (
	"errors"

	"github.com/caneca-next/internal/models"

	"gorm.io/gorm"
)

// DesignUploadRepository 设计稿上传记录数据访问接口
type DesignUploadRepository interface {
	Create(design *models.DesignUpload) error
	GetByID(id uint) (*models.DesignUpload, error)
	ListByOrder(orderID uint) ([]models.DesignUpload, error)
	Delete(id uint) error
}

// GormDesignUploadRepository GORM 实现
type GormDesignUploadRepository struct {
	db *gorm.DB
}

// NewDesignUploadRepository 创建设计稿仓库
func NewDesignUploadRepository(db *gorm.DB) *GormDesignUploadRepository {
	return &GormDesignUploadRepository{db: db}
}

// Create 创建上传记录
func (r *GormDesignUploadRepository) Create(design *models.DesignUpload) error {
	if design == nil {
		return errors.New("design upload is nil")
	}
	return r.db.Create(design).Error
}

// GetByID 根据 ID 获取上传记录
func (r *GormDesignUploadRepository) GetByID(id uint) (*models.DesignUpload, error) {
	var design models.DesignUpload
	if err := r.db.First(&design, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &design, nil
}

// ListByOrder 获取订单下全部上传记录
func (r *GormDesignUploadRepository) ListByOrder(orderID uint) ([]models.DesignUpload, error) {
	var designs []models.DesignUpload
	if err := r.db.Where("order_id = ?", orderID).Order("uploaded_at DESC, id DESC").Find(&designs).Error; err != nil {
		return nil, err
	}
	return designs, nil
}

// Delete 删除上传记录
func (r *GormDesignUploadRepository) Delete(id uint) error {
	result := r.db.Delete(&models.DesignUpload{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
