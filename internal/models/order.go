package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                  // 主键
	OrderNo            string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_no"` // 订单编号
	UserID             uint           `gorm:"index;not null" json:"user_id"`                         // 创建人ID
	CustomerName       string         `gorm:"type:varchar(255);not null" json:"customer_name"`       // 客户姓名
	CustomerEmail      string         `gorm:"type:varchar(320)" json:"customer_email,omitempty"`     // 客户邮箱
	CustomerPhone      string         `gorm:"type:varchar(20)" json:"customer_phone,omitempty"`      // 客户电话
	Status             string         `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"` // 订单状态
	Subtotal           int64          `gorm:"not null;default:0" json:"subtotal"`                    // 小计（分）= 商品合计 + 服务合计
	Discount           int64          `gorm:"not null;default:0" json:"discount"`                    // 折扣金额（分）
	DiscountPercentage int            `gorm:"not null;default:0" json:"discount_percentage"`         // 折扣百分比（0-100）
	Total              int64          `gorm:"not null;default:0" json:"total"`                       // 实付金额（分）= 小计 - 折扣，下限 0
	Notes              string         `gorm:"type:text" json:"notes,omitempty"`                      // 备注
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                            // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                        // 软删除时间

	// 关联
	Items    []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`    // 订单商品项
	Services []OrderService `gorm:"foreignKey:OrderID" json:"services,omitempty"` // 附加服务项
	Designs  []DesignUpload `gorm:"foreignKey:OrderID" json:"designs,omitempty"`  // 设计稿上传
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
