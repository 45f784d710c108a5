package provider

import (
	"time"

	"github.com/medguard-next/internal/cache"
	"github.com/medguard-next/internal/config"
	"github.com/medguard-next/internal/logger"
	"github.com/medguard-next/internal/models"
	"github.com/medguard-next/internal/repository"
	"github.com/medguard-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	BatchRepo     repository.BatchRepository
	ReportRepo    repository.ReportRepository
	RegulatorRepo repository.RegulatorRepository

	// Services
	SigningService      *service.SigningService
	RegistrationService *service.RegistrationService
	VerificationService *service.VerificationService
	ReportService       *service.ReportService
	AuthService         *service.AuthService
	BatchService        *service.BatchService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存（仅登录限流用，默认关闭）
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 写锁重试策略来自配置
	repository.SetWriteRetryPolicy(cfg.Store.WriteRetries, time.Duration(cfg.Store.RetryBackoffMS)*time.Millisecond)

	c := &Container{
		Config: cfg,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.BatchRepo = repository.NewBatchRepository(db)
	c.ReportRepo = repository.NewReportRepository(db)
	c.RegulatorRepo = repository.NewRegulatorRepository(db)
}

func (c *Container) initServices() {
	c.SigningService = service.NewSigningService(c.Config.Signing.QRSecret)
	c.RegistrationService = service.NewRegistrationService(c.BatchRepo)
	c.VerificationService = service.NewVerificationService(c.BatchRepo, c.SigningService)
	c.ReportService = service.NewReportService(c.ReportRepo)
	c.AuthService = service.NewAuthService(c.Config, c.RegulatorRepo)
	c.BatchService = service.NewBatchService(c.BatchRepo)
}
