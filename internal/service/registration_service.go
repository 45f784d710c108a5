package service

import (
	"strings"

	"github.com/medguard-next/internal/models"
	"github.com/medguard-next/internal/repository"
)

// RegistrationService 批次登记服务
type RegistrationService struct {
	batchRepo repository.BatchRepository
}

// NewRegistrationService 创建批次登记服务
func NewRegistrationService(batchRepo repository.BatchRepository) *RegistrationService {
	return &RegistrationService{batchRepo: batchRepo}
}

// RegisterBatchInput 批次登记输入
type RegisterBatchInput struct {
	Name         string
	BatchNumber  string
	MfgDate      string
	ExpiryDate   string
	Manufacturer string
}

// Register 登记新批次
// 五个字段全部必填；批次号全局唯一，重复登记一律拒绝，不存在覆盖路径。
func (s *RegistrationService) Register(input RegisterBatchInput) (*models.Batch, error) {
	name := strings.TrimSpace(input.Name)
	batchNumber := strings.TrimSpace(input.BatchNumber)
	mfgDate := strings.TrimSpace(input.MfgDate)
	expiryDate := strings.TrimSpace(input.ExpiryDate)
	manufacturer := strings.TrimSpace(input.Manufacturer)

	missing := make([]string, 0, 5)
	if name == "" {
		missing = append(missing, "name")
	}
	if batchNumber == "" {
		missing = append(missing, "batch_number")
	}
	if mfgDate == "" {
		missing = append(missing, "mfg_date")
	}
	if expiryDate == "" {
		missing = append(missing, "expiry_date")
	}
	if manufacturer == "" {
		missing = append(missing, "manufacturer")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	exists, err := s.batchRepo.ExistsByBatchNumber(batchNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateBatch
	}

	batch := &models.Batch{
		Name:         name,
		BatchNumber:  batchNumber,
		MfgDate:      mfgDate,
		ExpiryDate:   expiryDate,
		Manufacturer: manufacturer,
	}
	if err := s.batchRepo.Create(batch); err != nil {
		// 并发窗口内的重复插入仍会触发唯一索引
		if isDuplicateKeyError(err) {
			return nil, ErrDuplicateBatch
		}
		if repository.IsBusyError(err) {
			return nil, ErrStoreBusy
		}
		return nil, err
	}
	return batch, nil
}
