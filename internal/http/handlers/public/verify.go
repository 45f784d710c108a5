package public

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/medguard-next/internal/http/response"
	"github.com/medguard-next/internal/service"

	"github.com/gin-gonic/gin"
)

// VerifyBatch 按批次号核验
// 三个终态（valid/expired/not_found）都是 200，结果在 data.status 里。
func (h *Handler) VerifyBatch(c *gin.Context) {
	batchNumber := strings.TrimSpace(c.Param("batch_number"))
	if batchNumber == "" {
		respondError(c, response.CodeBadRequest, "Batch number is required", nil)
		return
	}

	result, err := h.VerificationService.Verify(batchNumber, time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to verify batch", err)
		return
	}
	response.Success(c, result)
}

// VerifyBatchForm 表单核验入口，重定向到 GET 路径
func (h *Handler) VerifyBatchForm(c *gin.Context) {
	batchNumber := strings.TrimSpace(c.PostForm("batch_number"))
	if batchNumber == "" {
		respondError(c, response.CodeBadRequest, "Batch number is required", nil)
		return
	}
	c.Redirect(http.StatusFound, "/verify/"+url.PathEscape(batchNumber))
}

// VerifyScanned 核验扫描载荷
// 载荷签名不过关直接拒绝，不落到按批次号查询。
func (h *Handler) VerifyScanned(c *gin.Context) {
	payload := strings.TrimSpace(c.Query("payload"))
	if payload == "" {
		respondError(c, response.CodeBadRequest, "Payload is required", nil)
		return
	}

	result, err := h.VerificationService.VerifyScanned(payload, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			respondError(c, response.CodeBadRequest, "Invalid or tampered QR payload", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to verify batch", err)
		return
	}
	response.Success(c, result)
}
