package models

import "time"

// DesignUpload 设计稿上传记录表（客户定制图案）
type DesignUpload struct {
	ID         uint      `gorm:"primarykey" json:"id"`                    // 主键
	OrderID    uint      `gorm:"index;not null" json:"order_id"`          // 订单ID
	FileName   string    `gorm:"type:varchar(255);not null" json:"file_name"` // 原始文件名
	FileURL    string    `gorm:"type:text;not null" json:"file_url"`      // 存储后的访问地址
	FileSize   int64     `gorm:"not null" json:"file_size"`               // 文件字节数
	MimeType   string    `gorm:"type:varchar(100)" json:"mime_type,omitempty"` // MIME 类型
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`       // 上传时间
}

// TableName 指定表名
func (DesignUpload) TableName() string {
	return "design_uploads"
}
