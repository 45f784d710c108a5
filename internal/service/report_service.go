package service

import (
	"strings"
	"time"

	"github.com/medguard-next/internal/constants"
	"github.com/medguard-next/internal/logger"
	"github.com/medguard-next/internal/models"
	"github.com/medguard-next/internal/repository"
)

// ReportService 假药举报服务
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService 创建举报服务
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// SubmitReportInput 举报提交输入
type SubmitReportInput struct {
	DrugName    string
	BatchNumber string
	Location    string
	Note        string
}

// ReportView 举报展示结构（带状态标签）
type ReportView struct {
	ID          uint   `json:"id"`
	DrugName    string `json:"drug_name"`
	BatchNumber string `json:"batch_number"`
	Location    string `json:"location"`
	Note        string `json:"note"`
	ReportedOn  string `json:"reported_on"`
	Status      int    `json:"status"`
	StatusLabel string `json:"status_label"`
}

// Submit 提交举报
// 只有批次号必填；举报允许指向从未登记的批次号（假货本就不会在册）。
func (s *ReportService) Submit(input SubmitReportInput, now time.Time) (*models.Report, error) {
	batchNumber := strings.TrimSpace(input.BatchNumber)
	if batchNumber == "" {
		return nil, ErrMissingBatchNumber
	}

	report := &models.Report{
		DrugName:    strings.TrimSpace(input.DrugName),
		BatchNumber: batchNumber,
		Location:    strings.TrimSpace(input.Location),
		Note:        strings.TrimSpace(input.Note),
		ReportedOn:  now,
		Status:      constants.ReportStatusNew,
	}
	if err := s.reportRepo.Create(report); err != nil {
		if repository.IsBusyError(err) {
			return nil, ErrStoreBusy
		}
		return nil, err
	}
	return report, nil
}

// List 举报列表，按举报时间倒序
func (s *ReportService) List(filter repository.ReportListFilter) ([]ReportView, error) {
	reports, err := s.reportRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return buildReportViews(reports), nil
}

// ListAndAcknowledge 全量举报列表并批量核查
// 查看全量列表即视为处理完当前未读（通知角标依赖该语义）；
// 返回的状态标签保留查看前的取值。
func (s *ReportService) ListAndAcknowledge(now time.Time) ([]ReportView, error) {
	reports, err := s.reportRepo.List(repository.ReportListFilter{Now: now})
	if err != nil {
		return nil, err
	}
	views := buildReportViews(reports)

	acknowledged, err := s.reportRepo.MarkAllChecked()
	if err != nil {
		if repository.IsBusyError(err) {
			return nil, ErrStoreBusy
		}
		return nil, err
	}
	if acknowledged > 0 {
		logger.Infow("reports_acknowledged", "count", acknowledged)
	}
	return views, nil
}

// MarkChecked 把单条举报标记为已核查
// 幂等：已核查的举报重复标记是空操作；不存在的举报返回 ErrNotFound。
func (s *ReportService) MarkChecked(id uint) error {
	affected, err := s.reportRepo.MarkChecked(id)
	if err != nil {
		if repository.IsBusyError(err) {
			return ErrStoreBusy
		}
		return err
	}
	if affected > 0 {
		return nil
	}

	report, err := s.reportRepo.GetByID(id)
	if err != nil {
		return err
	}
	if report == nil {
		return ErrNotFound
	}
	return nil
}

// CountUnread 统计未核查举报数量
func (s *ReportService) CountUnread(todayOnly bool, now time.Time) (int64, error) {
	return s.reportRepo.CountUnread(todayOnly, now)
}

func buildReportViews(reports []models.Report) []ReportView {
	views := make([]ReportView, 0, len(reports))
	for _, report := range reports {
		label := constants.ReportLabelNew
		if report.Status == constants.ReportStatusChecked {
			label = constants.ReportLabelChecked
		}
		views = append(views, ReportView{
			ID:          report.ID,
			DrugName:    report.DrugName,
			BatchNumber: report.BatchNumber,
			Location:    report.Location,
			Note:        report.Note,
			ReportedOn:  report.ReportedOn.Format(constants.DateTimeLayout),
			Status:      report.Status,
			StatusLabel: label,
		})
	}
	return views
}
