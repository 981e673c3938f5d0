package models

import "time"

// StockMovement 库存流水表（只追加，不修改不删除）
type StockMovement struct {
	ID           uint      `gorm:"primarykey" json:"id"`                          // 主键
	ProductID    uint      `gorm:"index;not null" json:"product_id"`              // 商品ID
	OrderID      *uint     `gorm:"index" json:"order_id,omitempty"`               // 关联订单ID（销售出库时记录）
	MovementType string    `gorm:"type:varchar(20);index;not null" json:"movement_type"` // 流水类型（purchase/sale/adjustment/return）
	Quantity     int       `gorm:"not null" json:"quantity"`                      // 变动数量（恒为正数，方向由类型表达）
	Reason       string    `gorm:"type:text" json:"reason,omitempty"`             // 变动原因
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                       // 记录时间
}

// TableName 指定表名
func (StockMovement) TableName() string {
	return "stock_movements"
}
