package repository

import (
	"time"

	"github.com/medguard-next/internal/constants"
)

// dayRangeBounds 把闭区间的 ISO 日期对转换为 [from 00:00, to+1d 00:00) 的时间界。
// 任一端解析失败时放弃该过滤条件。
func dayRangeBounds(fromDate, toDate string) (time.Time, time.Time, bool) {
	from, err := time.ParseInLocation(constants.DateLayout, fromDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err := time.ParseInLocation(constants.DateLayout, toDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return from, to.AddDate(0, 0, 1), true
}

// dayBounds 返回 now 所在本地日期的 [00:00, 次日 00:00) 时间界。
func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
