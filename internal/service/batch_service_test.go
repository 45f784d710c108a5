package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/medguard-next/internal/constants"
	"github.com/medguard-next/internal/models"
	"github.com/medguard-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupBatchServiceTest(t *testing.T) (*BatchService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:batch_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Batch{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewBatchService(repository.NewBatchRepository(db)), db
}

func TestStatusLabelBuckets(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	cases := []struct {
		expiry string
		want   string
	}{
		{"2026-08-28", constants.BatchLabelExpired},
		{"2026-08-29", constants.BatchLabelSoon},  // 今天到期落在预警桶
		{"2026-09-28", constants.BatchLabelSoon},  // 窗口边界（+30 天）
		{"2026-09-29", constants.BatchLabelValid}, // 窗口外第一天
		{"2028-01-01", constants.BatchLabelValid},
		{"garbage", constants.BatchLabelSoon}, // 解析失败按今天处理
	}
	for _, tc := range cases {
		if got := StatusLabel(tc.expiry, now); got != tc.want {
			t.Fatalf("StatusLabel(%q) = %q, want %q", tc.expiry, got, tc.want)
		}
	}
}

func TestBatchServiceListPagination(t *testing.T) {
	svc, db := setupBatchServiceTest(t)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	for i := 0; i < 25; i++ {
		batch := models.Batch{
			Name:         fmt.Sprintf("Drug %02d", i),
			BatchNumber:  fmt.Sprintf("BATCH-%03d", i),
			MfgDate:      "2026-01-01",
			ExpiryDate:   "2028-01-01",
			Manufacturer: "Acme Pharma",
			CreatedAt:    now.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&batch).Error; err != nil {
			t.Fatalf("create batch failed: %v", err)
		}
	}

	result, err := svc.List(repository.BatchListFilter{Page: 1, Now: now})
	if err != nil {
		t.Fatalf("list page 1 failed: %v", err)
	}
	if result.Total != 25 || result.TotalPages != 2 || result.PageSize != BatchPageSize {
		t.Fatalf("unexpected pagination: %+v", result)
	}
	if len(result.Items) != 20 {
		t.Fatalf("expected 20 items on page 1, got: %d", len(result.Items))
	}
	// 登记时间倒序，最新在前
	if result.Items[0].BatchNumber != "BATCH-024" {
		t.Fatalf("unexpected first item: %+v", result.Items[0])
	}

	result, err = svc.List(repository.BatchListFilter{Page: 2, Now: now})
	if err != nil {
		t.Fatalf("list page 2 failed: %v", err)
	}
	if len(result.Items) != 5 {
		t.Fatalf("expected 5 items on page 2, got: %d", len(result.Items))
	}
}

func TestBatchServiceListStatusFilter(t *testing.T) {
	svc, db := setupBatchServiceTest(t)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	seed := []struct {
		number string
		expiry string
	}{
		{"BATCH-EXPIRED", "2025-12-31"},
		{"BATCH-SOON", "2026-09-10"},
		{"BATCH-VALID", "2028-01-01"},
	}
	for _, s := range seed {
		batch := models.Batch{
			Name:         "Drug",
			BatchNumber:  s.number,
			MfgDate:      "2025-01-01",
			ExpiryDate:   s.expiry,
			Manufacturer: "Acme Pharma",
		}
		if err := db.Create(&batch).Error; err != nil {
			t.Fatalf("create batch failed: %v", err)
		}
	}

	cases := []struct {
		status string
		want   string
		label  string
	}{
		{constants.BatchFilterExpired, "BATCH-EXPIRED", constants.BatchLabelExpired},
		{constants.BatchFilterSoon, "BATCH-SOON", constants.BatchLabelSoon},
	}
	for _, tc := range cases {
		result, err := svc.List(repository.BatchListFilter{Page: 1, Status: tc.status, Now: now})
		if err != nil {
			t.Fatalf("list status=%s failed: %v", tc.status, err)
		}
		if len(result.Items) != 1 || result.Items[0].BatchNumber != tc.want {
			t.Fatalf("status=%s unexpected items: %+v", tc.status, result.Items)
		}
		if result.Items[0].StatusLabel != tc.label {
			t.Fatalf("status=%s unexpected label: %q", tc.status, result.Items[0].StatusLabel)
		}
	}

	// valid 桶包含预警中的批次（尚未过期）
	result, err := svc.List(repository.BatchListFilter{Page: 1, Status: constants.BatchFilterValid, Now: now})
	if err != nil {
		t.Fatalf("list status=valid failed: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 non-expired items, got: %+v", result.Items)
	}
}

func TestBatchServiceStatusFilterDirtyExpiryDate(t *testing.T) {
	svc, db := setupBatchServiceTest(t)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	seed := []struct {
		number string
		expiry string
	}{
		{"BATCH-EXPIRED", "2025-12-31"},
		{"BATCH-DIRTY", "not-a-date"},
	}
	for _, s := range seed {
		batch := models.Batch{
			Name:         "Drug",
			BatchNumber:  s.number,
			MfgDate:      "2025-01-01",
			ExpiryDate:   s.expiry,
			Manufacturer: "Acme Pharma",
		}
		if err := db.Create(&batch).Error; err != nil {
			t.Fatalf("create batch failed: %v", err)
		}
	}

	// 解析失败的有效期按今天处理：落在 soon 与 valid 桶，不落在 expired 桶
	result, err := svc.List(repository.BatchListFilter{Page: 1, Status: constants.BatchFilterSoon, Now: now})
	if err != nil {
		t.Fatalf("list status=soon failed: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].BatchNumber != "BATCH-DIRTY" {
		t.Fatalf("status=soon unexpected items: %+v", result.Items)
	}
	if result.Items[0].StatusLabel != constants.BatchLabelSoon {
		t.Fatalf("unexpected label for dirty expiry: %q", result.Items[0].StatusLabel)
	}

	result, err = svc.List(repository.BatchListFilter{Page: 1, Status: constants.BatchFilterValid, Now: now})
	if err != nil {
		t.Fatalf("list status=valid failed: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].BatchNumber != "BATCH-DIRTY" {
		t.Fatalf("status=valid unexpected items: %+v", result.Items)
	}

	result, err = svc.List(repository.BatchListFilter{Page: 1, Status: constants.BatchFilterExpired, Now: now})
	if err != nil {
		t.Fatalf("list status=expired failed: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].BatchNumber != "BATCH-EXPIRED" {
		t.Fatalf("status=expired unexpected items: %+v", result.Items)
	}
}

func TestBatchServiceExportRows(t *testing.T) {
	svc, db := setupBatchServiceTest(t)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

	for i := 0; i < 25; i++ {
		batch := models.Batch{
			Name:         fmt.Sprintf("Drug %02d", i),
			BatchNumber:  fmt.Sprintf("EXP-%03d", i),
			MfgDate:      "2026-01-01",
			ExpiryDate:   "2028-01-01",
			Manufacturer: "Acme Pharma",
		}
		if err := db.Create(&batch).Error; err != nil {
			t.Fatalf("create batch failed: %v", err)
		}
	}

	// 导出不分页，过滤条件与列表一致
	rows, err := svc.ExportRows(repository.BatchListFilter{Now: now})
	if err != nil {
		t.Fatalf("export rows failed: %v", err)
	}
	if len(rows) != 25 {
		t.Fatalf("expected 25 rows, got: %d", len(rows))
	}

	rows, err = svc.ExportRows(repository.BatchListFilter{Search: "Drug 07", Now: now})
	if err != nil {
		t.Fatalf("export filtered rows failed: %v", err)
	}
	if len(rows) != 1 || rows[0].BatchNumber != "EXP-007" {
		t.Fatalf("unexpected filtered rows: %+v", rows)
	}
}
