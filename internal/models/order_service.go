package models

import "time"

// OrderService 订单附加服务表（定制、刻字等；只增删，不更新）
type OrderService struct {
	ID          uint      `gorm:"primarykey" json:"id"`                   // 主键
	OrderID     uint      `gorm:"index;not null" json:"order_id"`         // 订单ID
	ServiceName string    `gorm:"type:varchar(255);not null" json:"service_name"` // 服务名称
	Description string    `gorm:"type:text" json:"description,omitempty"` // 服务描述
	Price       int64     `gorm:"not null" json:"price"`                  // 服务价格（分，>= 0）
	CreatedAt   time.Time `json:"created_at"`                             // 创建时间
}

// TableName 指定表名
func (OrderService) TableName() string {
	return "order_services"
}
