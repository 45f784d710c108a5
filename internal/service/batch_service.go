package service

import (
	"time"

	"github.com/medguard-next/internal/constants"
	"github.com/medguard-next/internal/models"
	"github.com/medguard-next/internal/repository"
)

// 批次列表每页条数
const BatchPageSize = 20

// BatchService 批次管理服务（列表与导出）
type BatchService struct {
	batchRepo repository.BatchRepository
}

// NewBatchService 创建批次管理服务
func NewBatchService(batchRepo repository.BatchRepository) *BatchService {
	return &BatchService{batchRepo: batchRepo}
}

// BatchView 批次展示结构（带状态标签）
type BatchView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	BatchNumber  string `json:"batch_number"`
	MfgDate      string `json:"mfg_date"`
	ExpiryDate   string `json:"expiry_date"`
	Manufacturer string `json:"manufacturer"`
	RegisteredOn string `json:"registered_on"`
	StatusLabel  string `json:"status_label"`
}

// BatchListResult 分页批次列表结果
type BatchListResult struct {
	Items      []BatchView `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// List 分页批次列表
func (s *BatchService) List(filter repository.BatchListFilter) (*BatchListResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	filter.PageSize = BatchPageSize

	batches, total, err := s.batchRepo.List(filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	return &BatchListResult{
		Items:      buildBatchViews(batches, filter.Now),
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ExportRows 导出用批次行（复用列表的过滤条件，不分页）
func (s *BatchService) ExportRows(filter repository.BatchListFilter) ([]BatchView, error) {
	batches, err := s.batchRepo.ListAll(filter)
	if err != nil {
		return nil, err
	}
	return buildBatchViews(batches, filter.Now), nil
}

// Count 批次总数
func (s *BatchService) Count() (int64, error) {
	return s.batchRepo.Count()
}

// StatusLabel 计算批次的展示状态
// 有效期解析失败按今天处理，落进 Expiring Soon 桶而不是报错。
func StatusLabel(expiryDate string, now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	expiry, err := time.ParseInLocation(constants.DateLayout, expiryDate, now.Location())
	if err != nil {
		expiry = today
	}
	if expiry.Before(today) {
		return constants.BatchLabelExpired
	}
	if !expiry.After(today.AddDate(0, 0, constants.ExpiringSoonDays)) {
		return constants.BatchLabelSoon
	}
	return constants.BatchLabelValid
}

func buildBatchViews(batches []models.Batch, now time.Time) []BatchView {
	views := make([]BatchView, 0, len(batches))
	for _, batch := range batches {
		views = append(views, BatchView{
			ID:           batch.ID,
			Name:         batch.Name,
			BatchNumber:  batch.BatchNumber,
			MfgDate:      batch.MfgDate,
			ExpiryDate:   batch.ExpiryDate,
			Manufacturer: batch.Manufacturer,
			RegisteredOn: batch.CreatedAt.Format(constants.DateTimeLayout),
			StatusLabel:  StatusLabel(batch.ExpiryDate, now),
		})
	}
	return views
}
