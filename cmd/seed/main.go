package main

import (
	"time"

	"github.com/medguard-next/internal/config"
	"github.com/medguard-next/internal/constants"
	"github.com/medguard-next/internal/logger"
	"github.com/medguard-next/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// 演示批次：一条长效、一条已过期、一条临期（覆盖三种核验状态）
	batches := []models.Batch{
		{
			Name:         "Paracetamol 500mg",
			BatchNumber:  "BATCH-VALID-001",
			MfgDate:      today.AddDate(-1, 0, 0).Format(constants.DateLayout),
			ExpiryDate:   today.AddDate(2, 0, 0).Format(constants.DateLayout),
			Manufacturer: "Emzor Pharmaceuticals",
		},
		{
			Name:         "Amoxicillin 250mg",
			BatchNumber:  "BATCH-EXPIRED-002",
			MfgDate:      today.AddDate(-3, 0, 0).Format(constants.DateLayout),
			ExpiryDate:   today.AddDate(-1, 0, 0).Format(constants.DateLayout),
			Manufacturer: "Fidson Healthcare",
		},
		{
			Name:         "Artemether-Lumefantrine 80/480mg",
			BatchNumber:  "BATCH-VALID-003",
			MfgDate:      today.AddDate(0, -18, 0).Format(constants.DateLayout),
			ExpiryDate:   today.AddDate(0, 0, 14).Format(constants.DateLayout),
			Manufacturer: "May & Baker Nigeria",
		},
	}

	for _, batch := range batches {
		var existing models.Batch
		if err := models.DB.Where("batch_number = ?", batch.BatchNumber).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&batch).Error; err != nil {
				stdLog.Printf("Failed to create batch %s: %v", batch.BatchNumber, err)
			} else {
				stdLog.Printf("Created batch: %s", batch.BatchNumber)
			}
		} else {
			stdLog.Printf("Batch already exists: %s", batch.BatchNumber)
		}
	}

	// 演示举报：一条指向已登记批次，一条指向从未登记的批次号
	reports := []models.Report{
		{
			DrugName:    "Paracetamol 500mg",
			BatchNumber: "BATCH-VALID-001",
			Location:    "Lagos, Ikeja",
			Note:        "Packaging colour looks different from the usual batch.",
			ReportedOn:  now.Add(-48 * time.Hour),
			Status:      constants.ReportStatusChecked,
		},
		{
			DrugName:    "Unknown antimalarial",
			BatchNumber: "FAKE-UNREGISTERED-999",
			Location:    "Abuja, Wuse Market",
			Note:        "Vendor could not produce any registration papers.",
			ReportedOn:  now.Add(-2 * time.Hour),
			Status:      constants.ReportStatusNew,
		},
	}

	for _, report := range reports {
		var count int64
		models.DB.Model(&models.Report{}).
			Where("batch_number = ? AND note = ?", report.BatchNumber, report.Note).
			Count(&count)
		if count > 0 {
			stdLog.Printf("Report already exists: %s", report.BatchNumber)
			continue
		}
		if err := models.DB.Create(&report).Error; err != nil {
			stdLog.Printf("Failed to create report for %s: %v", report.BatchNumber, err)
		} else {
			stdLog.Printf("Created report: %s", report.BatchNumber)
		}
	}

	// 演示监管方账号
	seedRegulator(stdLog.Printf)

	stdLog.Printf("Seed completed")
}

func seedRegulator(logf func(format string, v ...interface{})) {
	email := "admin@nafdac.gov.ng"
	var existing models.Regulator
	if err := models.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		logf("Regulator already exists: %s", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("medguard123"), bcrypt.DefaultCost)
	if err != nil {
		logf("Failed to hash regulator password: %v", err)
		return
	}

	regulator := models.Regulator{
		CompanyName:  "NAFDAC",
		Email:        email,
		PasswordHash: string(hash),
		Role:         constants.RoleRegulator,
		IsVerified:   true,
	}
	if err := models.DB.Create(&regulator).Error; err != nil {
		logf("Failed to create regulator %s: %v", email, err)
		return
	}
	logf("Created regulator: %s (password: medguard123, change after first login)", email)
}
