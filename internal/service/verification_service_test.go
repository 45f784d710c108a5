package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/medguard-next/internal/constants"
	"github.com/medguard-next/internal/models"
	"github.com/medguard-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupVerificationServiceTest(t *testing.T) (*VerificationService, *SigningService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:verification_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Batch{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	signer := NewSigningService("test-secret")
	return NewVerificationService(repository.NewBatchRepository(db), signer), signer, db
}

func seedBatch(t *testing.T, db *gorm.DB, batchNumber, expiryDate string) {
	t.Helper()
	batch := models.Batch{
		Name:         "Test Drug",
		BatchNumber:  batchNumber,
		MfgDate:      "2025-01-01",
		ExpiryDate:   expiryDate,
		Manufacturer: "Acme Pharma",
	}
	if err := db.Create(&batch).Error; err != nil {
		t.Fatalf("create batch failed: %v", err)
	}
}

func TestVerificationServiceNotFound(t *testing.T) {
	svc, _, _ := setupVerificationServiceTest(t)

	result, err := svc.Verify("UNKNOWN-BATCH", time.Now())
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if result.Status != constants.VerifyStatusNotFound {
		t.Fatalf("expected not_found, got: %s", result.Status)
	}
	if result.Batch != nil {
		t.Fatalf("expected no batch payload, got: %+v", result.Batch)
	}
	if result.Message != "Batch number not found in the system." {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestVerificationServiceValidAndExpired(t *testing.T) {
	svc, _, db := setupVerificationServiceTest(t)
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local)
	seedBatch(t, db, "BATCH-VALID", "2028-01-01")
	seedBatch(t, db, "BATCH-EXPIRED", "2024-06-30")
	seedBatch(t, db, "BATCH-TODAY", "2026-08-29")

	result, err := svc.Verify("BATCH-VALID", now)
	if err != nil {
		t.Fatalf("verify valid failed: %v", err)
	}
	if result.Status != constants.VerifyStatusValid {
		t.Fatalf("expected valid, got: %s", result.Status)
	}
	if result.Message != "Batch BATCH-VALID is registered and valid." {
		t.Fatalf("unexpected message: %q", result.Message)
	}
	if !strings.Contains(result.VerifiedOn, "August 29, 2026") {
		t.Fatalf("unexpected verified_on: %q", result.VerifiedOn)
	}

	result, err = svc.Verify("BATCH-EXPIRED", now)
	if err != nil {
		t.Fatalf("verify expired failed: %v", err)
	}
	if result.Status != constants.VerifyStatusExpired {
		t.Fatalf("expected expired, got: %s", result.Status)
	}
	if result.Message != "Batch BATCH-EXPIRED has expired on 2024-06-30." {
		t.Fatalf("unexpected message: %q", result.Message)
	}

	// 有效期等于今天视为仍然有效
	result, err = svc.Verify("BATCH-TODAY", now)
	if err != nil {
		t.Fatalf("verify today failed: %v", err)
	}
	if result.Status != constants.VerifyStatusValid {
		t.Fatalf("expected valid on expiry day, got: %s", result.Status)
	}
}

func TestVerificationServiceUnparseableExpiry(t *testing.T) {
	svc, _, db := setupVerificationServiceTest(t)
	seedBatch(t, db, "BATCH-DIRTY", "not-a-date")

	result, err := svc.Verify("BATCH-DIRTY", time.Now())
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if result.Status != constants.VerifyStatusValid {
		t.Fatalf("expected dirty expiry treated as valid, got: %s", result.Status)
	}
}

func TestVerificationServiceScannedPayload(t *testing.T) {
	svc, signer, db := setupVerificationServiceTest(t)
	seedBatch(t, db, "BATCH-QR", "2028-01-01")

	payload := signer.EncodePayload("BATCH-QR")
	result, err := svc.VerifyScanned(payload, time.Now())
	if err != nil {
		t.Fatalf("verify scanned failed: %v", err)
	}
	if result.Status != constants.VerifyStatusValid {
		t.Fatalf("expected valid, got: %s", result.Status)
	}

	// 篡改批次号后签名不再匹配
	tampered := "BATCH-OTHER|" + signer.Sign("BATCH-QR")
	if _, err := svc.VerifyScanned(tampered, time.Now()); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got: %v", err)
	}

	if _, err := svc.VerifyScanned("no-separator-here", time.Now()); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for malformed payload, got: %v", err)
	}
}

func TestSigningServiceDeterministic(t *testing.T) {
	a := NewSigningService("secret-a")
	b := NewSigningService("secret-b")

	if a.Sign("BATCH-001") != a.Sign("BATCH-001") {
		t.Fatal("expected stable digest for same input")
	}
	if a.Sign("BATCH-001") == b.Sign("BATCH-001") {
		t.Fatal("expected digests to differ across secrets")
	}
	if len(a.Sign("BATCH-001")) != 64 {
		t.Fatalf("expected 64 hex chars, got: %d", len(a.Sign("BATCH-001")))
	}
}
