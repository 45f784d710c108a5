package constants

// 批次核验结果常量
const (
	VerifyStatusValid    = "valid"
	VerifyStatusExpired  = "expired"
	VerifyStatusNotFound = "not_found"
)

// 批次列表筛选桶常量（含导出）
const (
	BatchFilterValid   = "valid"
	BatchFilterExpired = "expired"
	BatchFilterSoon    = "soon"
)

// 批次状态展示标签常量
const (
	BatchLabelValid   = "Valid"
	BatchLabelExpired = "Expired"
	BatchLabelSoon    = "Expiring Soon"
)

// 举报状态常量
const (
	ReportStatusNew     = 0
	ReportStatusChecked = 1

	ReportLabelNew     = "New"
	ReportLabelChecked = "Checked"
)

// 监管方账号角色常量
const (
	RoleRegulator = "regulator"
)

// 日期格式常量
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// 到期预警窗口（天）
const ExpiringSoonDays = 30
