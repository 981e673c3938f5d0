package models

import "time"

// OrderItem 订单商品项表（只增删，不更新）
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`             // 主键
	OrderID   uint      `gorm:"index;not null" json:"order_id"`   // 订单ID
	ProductID uint      `gorm:"index;not null" json:"product_id"` // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`         // 数量（> 0）
	UnitPrice int64     `gorm:"not null" json:"unit_price"`       // 加入时的单价快照（分），不随商品改价变动
	Subtotal  int64     `gorm:"not null" json:"subtotal"`         // 小计（分）= 数量 × 单价，创建时算定
	CreatedAt time.Time `json:"created_at"`                       // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
