package models

import "time"

// Batch 药品批次表
// 批次一经登记不可修改、不可删除；batch_number 全局唯一，统一按文本存储。
type Batch struct {
	ID           uint      `gorm:"primarykey" json:"-"`                      // 主键
	Name         string    `gorm:"not null" json:"name"`                     // 药品名称
	BatchNumber  string    `gorm:"uniqueIndex;not null" json:"batch_number"` // 批次号（唯一标识）
	MfgDate      string    `gorm:"not null" json:"mfg_date"`                 // 生产日期（ISO 日期文本）
	ExpiryDate   string    `gorm:"not null" json:"expiry_date"`              // 有效期至（ISO 日期文本）
	Manufacturer string    `gorm:"not null" json:"manufacturer"`             // 生产商
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                  // 登记时间
}

// TableName 指定表名
func (Batch) TableName() string {
	return "drugs"
}
