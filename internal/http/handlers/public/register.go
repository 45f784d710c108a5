package public

import (
	"errors"
	"strings"

	"github.com/medguard-next/internal/http/response"
	"github.com/medguard-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterBatchRequest 批次登记请求
type RegisterBatchRequest struct {
	Name         string `json:"name" form:"name"`
	BatchNumber  string `json:"batch_number" form:"batch_number"`
	MfgDate      string `json:"mfg_date" form:"mfg_date"`
	ExpiryDate   string `json:"expiry_date" form:"expiry_date"`
	Manufacturer string `json:"manufacturer" form:"manufacturer"`
}

// RegisterBatch 登记药品批次
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

	requestLog(c).Infow("batch_registered", "batch_number", batch.BatchNumber)
	response.SuccessWithMsg(c, "Batch registered successfully", batch)
}
