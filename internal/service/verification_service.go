package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/medguard-next/internal/constants"
	"github.com/medguard-next/internal/models"
	"github.com/medguard-next/internal/repository"
)

// VerificationService 批次核验服务
type VerificationService struct {
	batchRepo repository.BatchRepository
	signer    *SigningService
}

// NewVerificationService 创建批次核验服务
func NewVerificationService(batchRepo repository.BatchRepository, signer *SigningService) *VerificationService {
	return &VerificationService{batchRepo: batchRepo, signer: signer}
}

// VerificationResult 核验结果
type VerificationResult struct {
	Status     string        `json:"status"` // valid / expired / not_found
	Batch      *models.Batch `json:"batch,omitempty"`
	Message    string        `json:"message"`
	VerifiedOn string        `json:"verified_on"`
}

// Verify 按批次号核验
// 三个终态：未登记 → not_found；有效期早于今天 → expired；否则 valid。
// 有效期解析失败时按未过期处理，不让单条脏数据拖垮整次核验。
func (s *VerificationService) Verify(batchNumber string, now time.Time) (*VerificationResult, error) {
	verifiedOn := now.Format("January 02, 2006 at 03:04 PM")

	batch, err := s.batchRepo.GetByBatchNumber(strings.TrimSpace(batchNumber))
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return &VerificationResult{
			Status:     constants.VerifyStatusNotFound,
			Message:    "Batch number not found in the system.",
			VerifiedOn: verifiedOn,
		}, nil
	}

	if expired, expiryDate := isExpired(batch.ExpiryDate, now); expired {
		return &VerificationResult{
			Status:     constants.VerifyStatusExpired,
			Batch:      batch,
			Message:    fmt.Sprintf("Batch %s has expired on %s.", batch.BatchNumber, expiryDate),
			VerifiedOn: verifiedOn,
		}, nil
	}

	return &VerificationResult{
		Status:     constants.VerifyStatusValid,
		Batch:      batch,
		Message:    fmt.Sprintf("Batch %s is registered and valid.", batch.BatchNumber),
		VerifiedOn: verifiedOn,
	}, nil
}

// VerifyScanned 核验扫描载荷
// 先做签名校验识别篡改，再走常规核验路径。
func (s *VerificationService) VerifyScanned(payload string, now time.Time) (*VerificationResult, error) {
	batchNumber, ok := s.signer.VerifyPayload(strings.TrimSpace(payload))
	if !ok {
		return nil, ErrInvalidSignature
	}
	return s.Verify(batchNumber, now)
}

// isExpired 判断 ISO 日期文本是否早于 now 的本地日期
func isExpired(expiryDate string, now time.Time) (bool, string) {
	parsed, err := time.ParseInLocation(constants.DateLayout, strings.TrimSpace(expiryDate), time.Local)
	if err != nil {
		return false, expiryDate
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return parsed.Before(today), parsed.Format(constants.DateLayout)
}
