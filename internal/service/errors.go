package service

import (
	"errors"
	"strings"
)

// 业务错误
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrDomainNotAllowed   = errors.New("邮箱域名不在允许名单内")
	ErrDuplicateBatch     = errors.New("批次号已存在")
	ErrMissingBatchNumber = errors.New("批次号不能为空")
	ErrInvalidSignature   = errors.New("签名载荷校验失败")
	ErrSessionExpired     = errors.New("会话已超时")
	ErrCSRFMismatch       = errors.New("csrf token 不匹配")
	ErrStoreBusy          = errors.New("存储写锁竞争，重试已耗尽")
)

// MissingFieldsError 必填字段缺失错误，逐一列出缺失字段
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing fields: " + strings.Join(e.Fields, ", ")
}

// isDuplicateKeyError 判断是否为唯一约束冲突
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
