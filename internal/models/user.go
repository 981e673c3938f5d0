package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（订单归属与操作留痕）
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                 // 主键
	Name         string         `gorm:"type:varchar(100)" json:"name"`                        // 昵称
	Email        string         `gorm:"type:varchar(320);uniqueIndex;not null" json:"email"`  // 登录邮箱
	PasswordHash string         `gorm:"type:varchar(200);not null" json:"-"`                  // bcrypt 密码哈希
	Role         string         `gorm:"type:varchar(20);not null;default:'user'" json:"role"` // 角色（user/admin）
	LastSignedIn *time.Time     `json:"last_signed_in,omitempty"`                             // 最近登录时间
	CreatedAt    time.Time      `json:"created_at"`                                           // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                           // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                       // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
