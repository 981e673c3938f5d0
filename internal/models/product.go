package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（马克杯产品目录）
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                         // 主键
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`       // 商品名称
	Description string         `gorm:"type:text" json:"description,omitempty"`       // 商品描述
	BasePrice   int64          `gorm:"not null" json:"base_price"`                   // 基础价格（最小货币单位，分）
	SKU         string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"` // 唯一 SKU 编码
	Category    string         `gorm:"type:varchar(100);index" json:"category,omitempty"` // 分类
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`          // 是否上架
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                   // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间

	// 关联
	Stock *Stock `gorm:"foreignKey:ProductID" json:"stock,omitempty"` // 库存记录（可能尚未初始化）
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
