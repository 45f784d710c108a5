package repository

import (
	"strings"
	"time"
)

// 写操作在 sqlite 写锁竞争时的有界重试策略。
// 默认 3 次、间隔 300ms，可由 provider 按配置覆盖。
var (
	writeRetries = 3
	retryBackoff = 300 * time.Millisecond
)

// SetWriteRetryPolicy 设置写重试策略
func SetWriteRetryPolicy(retries int, backoff time.Duration) {
	if retries > 0 {
		writeRetries = retries
	}
	if backoff > 0 {
		retryBackoff = backoff
	}
}

// withWriteRetry 执行写操作；仅当存储报告锁忙时重试，重试耗尽后原样返回错误。
func withWriteRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < writeRetries; attempt++ {
		err = fn()
		if err == nil || !IsBusyError(err) {
			return err
		}
		if attempt < writeRetries-1 {
			time.Sleep(retryBackoff)
		}
	}
	return err
}

// IsBusyError 判断错误是否为存储写锁竞争
func IsBusyError(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "database is locked") ||
		strings.Contains(message, "database is busy") ||
		strings.Contains(message, "sqlite_busy")
}
