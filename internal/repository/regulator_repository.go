package repository

import (
	"errors"
	"strings"

	"github.com/medguard-next/internal/models"

	"gorm.io/gorm"
)

// RegulatorRepository 监管方账号数据访问接口
type RegulatorRepository interface {
	GetByEmail(email string) (*models.Regulator, error)
	GetByID(id uint) (*models.Regulator, error)
	Create(regulator *models.Regulator) error
	Count() (int64, error)
}

// GormRegulatorRepository GORM 实现
type GormRegulatorRepository struct {
	db *gorm.DB
}

// NewRegulatorRepository 创建监管方账号仓库
func NewRegulatorRepository(db *gorm.DB) *GormRegulatorRepository {
	return &GormRegulatorRepository{db: db}
}

// GetByEmail 按邮箱获取账号（邮箱统一小写比较）
func (r *GormRegulatorRepository) GetByEmail(email string) (*models.Regulator, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	var regulator models.Regulator
	if err := r.db.Where("email = ?", normalized).First(&regulator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &regulator, nil
}

// GetByID 按 ID 获取账号
func (r *GormRegulatorRepository) GetByID(id uint) (*models.Regulator, error) {
	var regulator models.Regulator
	if err := r.db.First(&regulator, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &regulator, nil
}

// Create 创建账号（仅供离线开通工具使用）
func (r *GormRegulatorRepository) Create(regulator *models.Regulator) error {
	return withWriteRetry(func() error {
		return r.db.Create(regulator).Error
	})
}

// Count 统计账号数量
func (r *GormRegulatorRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Regulator{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
