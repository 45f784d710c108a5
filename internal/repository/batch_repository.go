package repository

import (
	"errors"
	"strings"

	"github.com/medguard-next/internal/constants"
	"github.com/medguard-next/internal/models"

	"gorm.io/gorm"
)

// BatchRepository 药品批次数据访问接口
// 批次只增不改：接口刻意不提供 Update/Delete。
type BatchRepository interface {
	Create(batch *models.Batch) error
	GetByBatchNumber(batchNumber string) (*models.Batch, error)
	ExistsByBatchNumber(batchNumber string) (bool, error)
	List(filter BatchListFilter) ([]models.Batch, int64, error)
	ListAll(filter BatchListFilter) ([]models.Batch, error)
	Count() (int64, error)
}

// GormBatchRepository GORM 实现
type GormBatchRepository struct {
	db *gorm.DB
}

// NewBatchRepository 创建批次仓库
func NewBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// Create 登记新批次（带写锁重试）
func (r *GormBatchRepository) Create(batch *models.Batch) error {
	return withWriteRetry(func() error {
		return r.db.Create(batch).Error
	})
}

// GetByBatchNumber 按批次号获取批次
// 批次号统一按文本存储比较，数字形式的批次号同样命中。
func (r *GormBatchRepository) GetByBatchNumber(batchNumber string) (*models.Batch, error) {
	var batch models.Batch
	if err := r.db.Where("batch_number = ?", strings.TrimSpace(batchNumber)).First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &batch, nil
}

// ExistsByBatchNumber 判断批次号是否已登记
func (r *GormBatchRepository) ExistsByBatchNumber(batchNumber string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Batch{}).
		Where("batch_number = ?", strings.TrimSpace(batchNumber)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 批次列表（分页）
func (r *GormBatchRepository) List(filter BatchListFilter) ([]models.Batch, int64, error) {
	query := r.applyFilter(filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	batches := make([]models.Batch, 0)
	err := applyPagination(query, filter.Page, filter.PageSize).
		Order("created_at DESC").
		Find(&batches).Error
	if err != nil {
		return nil, 0, err
	}
	return batches, total, nil
}

// ListAll 批次列表（不分页，供导出复用同一套过滤条件）
func (r *GormBatchRepository) ListAll(filter BatchListFilter) ([]models.Batch, error) {
	batches := make([]models.Batch, 0)
	err := r.applyFilter(filter).
		Order("created_at DESC").
		Find(&batches).Error
	if err != nil {
		return nil, err
	}
	return batches, nil
}

// Count 统计批次总数
func (r *GormBatchRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Batch{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormBatchRepository) applyFilter(filter BatchListFilter) *gorm.DB {
	query := r.db.Model(&models.Batch{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		operator := likeOperator(r.db)
		query = query.Where("name "+operator+" ? OR batch_number "+operator+" ?", like, like)
	}

	// 有效期筛选桶：ISO 日期文本可直接按字典序比较。
	// 形状不合法的脏日期按今天参与比较，与 service.StatusLabel 的回退一致。
	today := filter.Now.Format(constants.DateLayout)
	soon := filter.Now.AddDate(0, 0, constants.ExpiringSoonDays).Format(constants.DateLayout)
	expiry := "CASE WHEN " + isoDateShapePredicate(r.db, "expiry_date") + " THEN expiry_date ELSE ? END"
	switch filter.Status {
	case constants.BatchFilterValid:
		query = query.Where(expiry+" >= ?", today, today)
	case constants.BatchFilterExpired:
		query = query.Where(expiry+" < ?", today, today)
	case constants.BatchFilterSoon:
		query = query.Where(expiry+" BETWEEN ? AND ?", today, today, soon)
	}

	if filter.CreatedFrom != "" && filter.CreatedTo != "" {
		from, to, ok := dayRangeBounds(filter.CreatedFrom, filter.CreatedTo)
		if ok {
			query = query.Where("created_at >= ? AND created_at < ?", from, to)
		}
	}

	return query
}
