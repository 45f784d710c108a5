package admin

import (
	"time"

	handlershared "github.com/medguard-next/internal/http/handlers/shared"
	"github.com/medguard-next/internal/http/response"
	"github.com/medguard-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// 仪表盘举报预览条数
const dashboardPreviewLimit = 5

// Dashboard 管理端首页数据：会话信息加最近举报预览
func (h *Handler) Dashboard(c *gin.Context) {
	regulatorID, ok := handlershared.GetRegulatorID(c)
	if !ok {
		return
	}

	regulator, err := h.AuthService.GetRegulator(regulatorID)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load dashboard", err)
		return
	}

	now := time.Now()
	preview, err := h.ReportService.List(repository.ReportListFilter{
		Limit: dashboardPreviewLimit,
		Now:   now,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load dashboard", err)
		return
	}

	unread, err := h.ReportService.CountUnread(false, now)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load dashboard", err)
		return
	}

	totalBatches, err := h.BatchService.Count()
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load dashboard", err)
		return
	}

	response.Success(c, gin.H{
		"regulator": gin.H{
			"company_name": regulator.CompanyName,
			"email":        regulator.Email,
			"role":         regulator.Role,
		},
		"session_timeout_seconds": h.Config.Session.SessionTimeoutSeconds(),
		"total_batches":           totalBatches,
		"unread_reports":          unread,
		"recent_reports":          preview,
	})
}
