package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/medguard-next/internal/constants"
	"github.com/medguard-next/internal/models"

	"gorm.io/gorm"
)

// ReportRepository 举报数据访问接口
// 举报不可删除；状态只允许 new → checked 单向更新。
type ReportRepository interface {
	Create(report *models.Report) error
	GetByID(id uint) (*models.Report, error)
	List(filter ReportListFilter) ([]models.Report, error)
	MarkChecked(id uint) (int64, error)
	MarkAllChecked() (int64, error)
	CountUnread(todayOnly bool, now time.Time) (int64, error)
}

// GormReportRepository GORM 实现
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建举报仓库
func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Create 新增举报（带写锁重试）
func (r *GormReportRepository) Create(report *models.Report) error {
	return withWriteRetry(func() error {
		return r.db.Create(report).Error
	})
}

// GetByID 按 ID 获取举报
func (r *GormReportRepository) GetByID(id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

// List 举报列表，按举报时间倒序
func (r *GormReportRepository) List(filter ReportListFilter) ([]models.Report, error) {
	query := r.db.Model(&models.Report{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		operator := likeOperator(r.db)
		query = query.Where(
			"drug_name "+operator+" ? OR batch_number "+operator+" ? OR location "+operator+" ? OR note "+operator+" ?",
			like, like, like, like,
		)
	}

	if filter.Start != "" && filter.End != "" {
		if from, to, ok := dayRangeBounds(filter.Start, filter.End); ok {
			query = query.Where("reported_on >= ? AND reported_on < ?", from, to)
		}
	}

	if filter.TodayOnly {
		start, end := dayBounds(filter.Now)
		query = query.Where("reported_on >= ? AND reported_on < ?", start, end)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	reports := make([]models.Report, 0)
	if err := query.Order("reported_on DESC, id DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// MarkChecked 把单条举报标记为已核查，返回受影响行数
// 条件带 status=new，使重复标记自然成为零行更新。
func (r *GormReportRepository) MarkChecked(id uint) (int64, error) {
	var affected int64
	err := withWriteRetry(func() error {
		result := r.db.Model(&models.Report{}).
			Where("id = ? AND status = ?", id, constants.ReportStatusNew).
			Update("status", constants.ReportStatusChecked)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}

// MarkAllChecked 把所有未核查举报标记为已核查，返回受影响行数
func (r *GormReportRepository) MarkAllChecked() (int64, error) {
	var affected int64
	err := withWriteRetry(func() error {
		result := r.db.Model(&models.Report{}).
			Where("status = ?", constants.ReportStatusNew).
			Update("status", constants.ReportStatusChecked)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}

// CountUnread 统计未核查举报数量，可限定为当天
func (r *GormReportRepository) CountUnread(todayOnly bool, now time.Time) (int64, error) {
	query := r.db.Model(&models.Report{}).Where("status = ?", constants.ReportStatusNew)
	if todayOnly {
		start, end := dayBounds(now)
		query = query.Where("reported_on >= ? AND reported_on < ?", start, end)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
