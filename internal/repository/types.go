package repository

import "time"

// BatchListFilter 查询批次列表的过滤条件
// CreatedFrom/CreatedTo 为 ISO 日期（YYYY-MM-DD），两端闭区间；
// Status 取 valid/expired/soon 三个筛选桶，基准日取 Now 的本地日期。
type BatchListFilter struct {
	Page        int
	PageSize    int
	Search      string
	Status      string
	CreatedFrom string
	CreatedTo   string
	Now         time.Time
}

// ReportListFilter 查询举报列表的过滤条件
// Start/End 为 ISO 日期，按 reported_on 的日期两端闭区间过滤。
type ReportListFilter struct {
	Search    string
	Start     string
	End       string
	TodayOnly bool
	Limit     int
	Now       time.Time
}
