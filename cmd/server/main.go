package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/medguard-next/internal/app"
	"github.com/medguard-next/internal/config"
	"github.com/medguard-next/internal/logger"
	"github.com/medguard-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.Session.SecretKey) {
			stdLog.Fatalf("session secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
		if isWeakSecret(cfg.Signing.QRSecret) {
			stdLog.Fatalf("qr_secret 过弱或仍为默认值，二维码签名在生产环境中必须使用强随机密钥")
		}
	} else {
		if isWeakSecret(cfg.Session.SecretKey) {
			stdLog.Printf("警告: session secret 过弱或仍为默认值，建议在生产环境中更换")
		}
		if isWeakSecret(cfg.Signing.QRSecret) {
			stdLog.Printf("警告: qr_secret 过弱或仍为默认值，建议在生产环境中更换")
		}
	}

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 初始化默认监管方账号
	defaultCompany := os.Getenv("MG_DEFAULT_REGULATOR_COMPANY")
	defaultEmail := os.Getenv("MG_DEFAULT_REGULATOR_EMAIL")
	defaultPass := os.Getenv("MG_DEFAULT_REGULATOR_PASSWORD")
	if cfg.Server.Mode == "release" && defaultPass == "" {
		stdLog.Printf("警告: 未设置 MG_DEFAULT_REGULATOR_PASSWORD，已跳过默认监管方初始化")
	} else if err := models.InitDefaultRegulator(defaultCompany, defaultEmail, defaultPass); err != nil {
		stdLog.Printf("警告: 初始化默认监管方失败: %v", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + "███╗   ███╗███████╗██████╗  ██████╗ ██╗   ██╗ █████╗ ██████╗ ██████╗ " + ansiReset)
	fmt.Println(ansiCyan + "████╗ ████║██╔════╝██╔══██╗██╔════╝ ██║   ██║██╔══██╗██╔══██╗██╔══██╗" + ansiReset)
	fmt.Println(ansiCyan + "██╔████╔██║█████╗  ██║  ██║██║  ███╗██║   ██║███████║██████╔╝██║  ██║" + ansiReset)
	fmt.Println(ansiCyan + "██║╚██╔╝██║██╔══╝  ██║  ██║██║   ██║██║   ██║██╔══██║██╔══██╗██║  ██║" + ansiReset)
	fmt.Println(ansiCyan + "██║ ╚═╝ ██║███████╗██████╔╝╚██████╔╝╚██████╔╝██║  ██║██║  ██║██████╔╝" + ansiReset)
	fmt.Println(ansiCyan + "╚═╝     ╚═╝╚══════╝╚═════╝  ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝ " + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "MedGuard API · 药品批次登记与防伪核验" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "sign-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
