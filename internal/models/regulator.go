package models

import "time"

// Regulator 监管方账号表
// 账号只通过 cmd/seed 离线开通，运行期只读；email 统一小写存储。
type Regulator struct {
	ID           uint      `gorm:"primarykey" json:"id"`                 // 主键
	CompanyName  string    `gorm:"not null" json:"company_name"`         // 机构名称
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`    // 官方邮箱（小写）
	PasswordHash string    `gorm:"not null" json:"-"`                    // 密码哈希（不返回给前端）
	Role         string    `gorm:"not null;default:regulator" json:"role"` // 角色（当前仅 regulator）
	IsVerified   bool      `gorm:"not null;default:false" json:"is_verified"` // 是否已人工核验
	CreatedAt    time.Time `json:"created_at"`                           // 创建时间
}

// TableName 指定表名
func (Regulator) TableName() string {
	return "admin_users"
}
