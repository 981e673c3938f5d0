package models

import "time"

// Stock 库存表（每个商品一条记录）
type Stock struct {
	ID           uint      `gorm:"primarykey" json:"id"`                    // 主键
	ProductID    uint      `gorm:"uniqueIndex;not null" json:"product_id"`  // 商品ID
	Quantity     int       `gorm:"not null;default:0" json:"quantity"`      // 当前数量（恒 >= 0）
	MinimumLevel int       `gorm:"not null;default:10" json:"minimum_level"` // 预警阈值（仅提示用途）
	UpdatedAt    time.Time `json:"last_updated"`                            // 最近变更时间
	CreatedAt    time.Time `json:"created_at"`                              // 创建时间
}

// TableName 指定表名
func (Stock) TableName() string {
	return "stock"
}

// BelowMinimum 判断库存是否低于预警阈值
func (s Stock) BelowMinimum() bool {
	return s.Quantity < s.MinimumLevel
}
