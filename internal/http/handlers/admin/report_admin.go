package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/medguard-next/internal/http/response"
	"github.com/medguard-next/internal/repository"
	"github.com/medguard-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListReports 全量举报列表
// 查看全量列表即确认收到：所有未核查举报随响应转为已核查，
// 返回的状态标签仍是查看前的取值。
func (h *Handler) ListReports(c *gin.Context) {
	views, err := h.ReportService.ListAndAcknowledge(time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch reports", err)
		return
	}
	response.Success(c, views)
}

// ListTodayReports 今日举报（只读）
func (h *Handler) ListTodayReports(c *gin.Context) {
	views, err := h.ReportService.List(repository.ReportListFilter{
		TodayOnly: true,
		Now:       time.Now(),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch reports", err)
		return
	}
	response.Success(c, views)
}

// ListReportsByRange 日期区间举报（只读，两端闭区间）
func (h *Handler) ListReportsByRange(c *gin.Context) {
	start := strings.TrimSpace(c.Query("start"))
	end := strings.TrimSpace(c.Query("end"))
	if start == "" || end == "" {
		respondError(c, response.CodeBadRequest, "Start and end dates are required", nil)
		return
	}

	views, err := h.ReportService.List(repository.ReportListFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Start:  start,
		End:    end,
		Now:    time.Now(),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch reports", err)
		return
	}
	response.Success(c, views)
}

// PreviewReports 最近举报预览（只读，供首页角标旁挂载）
func (h *Handler) PreviewReports(c *gin.Context) {
	views, err := h.ReportService.List(repository.ReportListFilter{
		Limit: dashboardPreviewLimit,
		Now:   time.Now(),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch reports", err)
		return
	}
	response.Success(c, views)
}

// CountReports 未核查举报计数
func (h *Handler) CountReports(c *gin.Context) {
	todayOnly := c.Query("today_only") == "1" || strings.EqualFold(c.Query("today_only"), "true")

	count, err := h.ReportService.CountUnread(todayOnly, time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to count reports", err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// MarkReportChecked 单条举报标记为已核查
func (h *Handler) MarkReportChecked(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "Invalid report id", nil)
		return
	}

	if err := h.ReportService.MarkChecked(uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "Report not found", nil)
		case errors.Is(err, service.ErrStoreBusy):
			respondError(c, response.CodeInternal, "Database busy, please retry", err)
		default:
			respondError(c, response.CodeInternal, "Failed to mark report", err)
		}
		return
	}
	response.SuccessWithMsg(c, "Report marked as checked", nil)
}
