package models

import "time"

// Report 假药举报表
// batch_number 是对 drugs 表的软引用，允许指向从未登记过的批次号。
// status 仅允许 0（新）→ 1（已核查）单向流转。
type Report struct {
	ID          uint      `gorm:"primarykey" json:"id"`                   // 主键（自增）
	DrugName    string    `json:"drug_name"`                              // 药品名称（可选）
	BatchNumber string    `gorm:"index;not null" json:"batch_number"`     // 被举报批次号
	Location    string    `json:"location"`                               // 发现地点（可选）
	Note        string    `json:"note"`                                   // 备注（可选）
	ReportedOn  time.Time `gorm:"index" json:"reported_on"`               // 举报时间
	Status      int       `gorm:"not null;default:0;index" json:"status"` // 0=New 1=Checked
}

// TableName 指定表名
func (Report) TableName() string {
	return "reports"
}
