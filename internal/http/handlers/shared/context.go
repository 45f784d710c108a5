package shared

import (
	"github.com/medguard-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 会话中间件写入上下文的键
const (
	ContextKeyRegulatorID = "regulator_id"
	ContextKeyRole        = "role"
	ContextKeyCSRF        = "csrf_token"
)

// GetRegulatorID 从上下文读取监管方 ID 并统一处理错误响应。
func GetRegulatorID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextKeyRegulatorID)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "Unauthorized", nil)
		return 0, false
	}
	id, ok := value.(uint)
	if !ok {
		RespondError(c, response.CodeInternal, "Internal server error", nil)
		return 0, false
	}
	return id, true
}

// GetSessionCSRF 从上下文读取会话的 csrf token。
func GetSessionCSRF(c *gin.Context) string {
	if value, ok := c.Get(ContextKeyCSRF); ok {
		if token, ok := value.(string); ok {
			return token
		}
	}
	return ""
}
