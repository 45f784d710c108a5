package public

import (
	"errors"
	"strings"
	"time"

	"github.com/medguard-next/internal/http/response"
	"github.com/medguard-next/internal/repository"
	"github.com/medguard-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitReportRequest 假药举报请求
type SubmitReportRequest struct {
	DrugName    string `json:"drug_name" form:"drug_name"`
	BatchNumber string `json:"batch_number" form:"batch_number"`
	Location    string `json:"location" form:"location"`
	Note        string `json:"note" form:"note"`
}

// SubmitReport 提交假药举报
func (h *Handler) SubmitReport(c *gin.Context) {
	var req SubmitReportRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	report, err := h.ReportService.Submit(service.SubmitReportInput{
		DrugName:    req.DrugName,
		BatchNumber: req.BatchNumber,
		Location:    req.Location,
		Note:        req.Note,
	}, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingBatchNumber):
			respondError(c, response.CodeBadRequest, "Batch number is required", nil)
		case errors.Is(err, service.ErrStoreBusy):
			respondError(c, response.CodeInternal, "Database busy, please retry", err)
		default:
			respondError(c, response.CodeInternal, "Failed to submit report", err)
		}
		return
	}

	requestLog(c).Infow("report_submitted",
		"report_id", report.ID,
		"batch_number", report.BatchNumber,
	)
	response.SuccessWithMsg(c, "Report received. Thank you for helping keep patients safe.", gin.H{
		"id": report.ID,
	})
}

// ListReports 举报列表（只读，不做核查确认）
func (h *Handler) ListReports(c *gin.Context) {
	filter := repository.ReportListFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Start:  strings.TrimSpace(c.Query("start")),
		End:    strings.TrimSpace(c.Query("end")),
		Now:    time.Now(),
	}

	views, err := h.ReportService.List(filter)
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
