package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	handlershared "github.com/medguard-next/internal/http/handlers/shared"
	"github.com/medguard-next/internal/export"
	"github.com/medguard-next/internal/http/response"
	"github.com/medguard-next/internal/qr"
	"github.com/medguard-next/internal/repository"
	"github.com/medguard-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterBatchRequest 管理端批次登记请求
type RegisterBatchRequest struct {
	Name         string `json:"name" form:"name"`
	BatchNumber  string `json:"batch_number" form:"batch_number"`
	MfgDate      string `json:"mfg_date" form:"mfg_date"`
	ExpiryDate   string `json:"expiry_date" form:"expiry_date"`
	Manufacturer string `json:"manufacturer" form:"manufacturer"`
}

// RegisterBatch 登记批次并返回签名载荷二维码
// 成功时直接回 PNG，扫描该码即可走 /verify/scan 核验。
func (h *Handler) RegisterBatch(c *gin.Context) {
	var req RegisterBatchRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	batch, err := h.RegistrationService.Register(service.RegisterBatchInput{
		Name:         req.Name,
		BatchNumber:  req.BatchNumber,
		MfgDate:      req.MfgDate,
		ExpiryDate:   req.ExpiryDate,
		Manufacturer: req.Manufacturer,
	})
	if err != nil {
		var missing *service.MissingFieldsError
		switch {
		case errors.As(err, &missing):
			respondError(c, response.CodeBadRequest, "Missing fields: "+strings.Join(missing.Fields, ", "), nil)
		case errors.Is(err, service.ErrDuplicateBatch):
			respondError(c, response.CodeConflict, "Batch number already exists", nil)
		case errors.Is(err, service.ErrStoreBusy):
			respondError(c, response.CodeInternal, "Database busy, please retry", err)
		default:
			respondError(c, response.CodeInternal, "Failed to register batch", err)
		}
		return
	}

	png, err := qr.EncodePNG(h.SigningService.EncodePayload(batch.BatchNumber))
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to render QR code", err)
		return
	}

	requestLog(c).Infow("batch_registered", "batch_number", batch.BatchNumber)
	c.Header("Content-Disposition", `inline; filename="`+batch.BatchNumber+`.png"`)
	c.Data(200, "image/png", png)
}

// ListDrugs 批次列表（分页固定 20 条）
func (h *Handler) ListDrugs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.BatchService.List(repository.BatchListFilter{
		Page:        handlershared.NormalizePage(page),
		Search:      strings.TrimSpace(c.Query("search")),
		Status:      strings.TrimSpace(c.Query("status")),
		CreatedFrom: strings.TrimSpace(c.Query("start")),
		CreatedTo:   strings.TrimSpace(c.Query("end")),
		Now:         time.Now(),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch drugs", err)
		return
	}

	response.SuccessWithPage(c, result.Items, response.Pagination{
		Page:      result.Page,
		PageSize:  result.PageSize,
		Total:     result.Total,
		TotalPage: int64(result.TotalPages),
	})
}

// ExportDrugs 批次列表导出，格式取 pdf/word/excel
// 导出与列表共用同一套过滤参数，不分页。
func (h *Handler) ExportDrugs(c *gin.Context) {
	now := time.Now()
	rows, err := h.BatchService.ExportRows(repository.BatchListFilter{
		Search:      strings.TrimSpace(c.Query("search")),
		Status:      strings.TrimSpace(c.Query("status")),
		CreatedFrom: strings.TrimSpace(c.Query("start")),
		CreatedTo:   strings.TrimSpace(c.Query("end")),
		Now:         now,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to export drugs", err)
		return
	}

	var (
		data        []byte
		contentType string
		filename    string
	)
	switch c.Param("format") {
	case "pdf":
		data, err = export.WritePDF(rows, now)
		contentType, filename = export.ContentTypePDF, export.FilenamePDF
	case "word":
		data, err = export.WriteDocx(rows, now)
		contentType, filename = export.ContentTypeDocx, export.FilenameDocx
	case "excel":
		data, err = export.WriteExcel(rows, now)
		contentType, filename = export.ContentTypeExcel, export.FilenameExcel
	default:
		respondError(c, response.CodeBadRequest, "Unsupported export format", nil)
		return
	}
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to export drugs", err)
		return
	}

	requestLog(c).Infow("drugs_exported", "format", c.Param("format"), "rows", len(rows))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, contentType, data)
}
