package router

import (
	"fmt"
	"strings"

	"github.com/medguard-next/internal/cache"
	"github.com/medguard-next/internal/config"
	adminhandlers "github.com/medguard-next/internal/http/handlers/admin"
	publichandlers "github.com/medguard-next/internal/http/handlers/public"
	"github.com/medguard-next/internal/logger"
	"github.com/medguard-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按公开/管理端分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "mg"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 公开接口
	api := r.Group("/api")
	{
		api.POST("/register", publicHandler.RegisterBatch)
		api.POST("/report", publicHandler.SubmitReport)
		api.GET("/report", publicHandler.ListReports)
		api.GET("/report/count", publicHandler.CountReports)
	}

	r.GET("/verify/scan", publicHandler.VerifyScanned)
	r.GET("/verify/:batch_number", publicHandler.VerifyBatch)
	r.POST("/verify", publicHandler.VerifyBatchForm)

	// 管理端接口
	admin := r.Group("/admin")
	{
		// 登录接口（无需会话，redis 开启时限流）
		admin.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), adminHandler.Login)

		// 会话保护的接口
		authorized := admin.Use(SessionAuthMiddleware(c.AuthService, cfg.Session))
		{
			authorized.GET("", adminHandler.Dashboard)
			authorized.POST("/logout", adminHandler.Logout)
			authorized.POST("/ping", adminHandler.Ping)

			// 批次登记与列表
			authorized.POST("/register", adminHandler.RegisterBatch)
			authorized.GET("/drugs", adminHandler.ListDrugs)
			authorized.GET("/drugs/export/:format", adminHandler.ExportDrugs)

			// 举报处理
			authorized.GET("/reports", adminHandler.ListReports)
			authorized.GET("/reports/today", adminHandler.ListTodayReports)
			authorized.GET("/reports/range", adminHandler.ListReportsByRange)
			authorized.GET("/reports/count", adminHandler.CountReports)
			authorized.GET("/reports/preview", adminHandler.PreviewReports)
			authorized.POST("/reports/:id/mark_checked", adminHandler.MarkReportChecked)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
