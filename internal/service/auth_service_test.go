package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/medguard-next/internal/config"
	"github.com/medguard-next/internal/constants"
	"github.com/medguard-next/internal/models"
	"github.com/medguard-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Regulator{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{
		Session: config.SessionConfig{
			SecretKey:         "test-session-secret",
			CookieName:        "mg_session",
			InactivityMinutes: 5,
		},
		Auth: config.AuthConfig{
			AllowedDomains: []string{"nafdac.gov.ng", "regulator.example.org"},
		},
	}
	return NewAuthService(cfg, repository.NewRegulatorRepository(db)), db
}

func seedRegulator(t *testing.T, svc *AuthService, db *gorm.DB, email, password string) *models.Regulator {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	regulator := models.Regulator{
		CompanyName:  "NAFDAC",
		Email:        email,
		PasswordHash: hash,
		Role:         constants.RoleRegulator,
		IsVerified:   true,
	}
	if err := db.Create(&regulator).Error; err != nil {
		t.Fatalf("create regulator failed: %v", err)
	}
	return &regulator
}

func TestAuthServiceDomainGate(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seedRegulator(t, svc, db, "admin@nafdac.gov.ng", "medguard123")

	cases := []struct {
		email   string
		allowed bool
	}{
		{"admin@nafdac.gov.ng", true},
		{"ADMIN@NAFDAC.GOV.NG", true},
		{"  someone@regulator.example.org  ", true},
		{"admin@gmail.com", false},
		{"admin@evil-nafdac.gov.ng", false},
		{"no-at-sign", false},
		{"trailing@", false},
	}
	for _, tc := range cases {
		if got := svc.EmailDomainAllowed(tc.email); got != tc.allowed {
			t.Fatalf("EmailDomainAllowed(%q) = %v, want %v", tc.email, got, tc.allowed)
		}
	}

	// 域名不过关时不进入凭据校验
	if _, _, err := svc.Login("admin@gmail.com", "medguard123", time.Now()); !errors.Is(err, ErrDomainNotAllowed) {
		t.Fatalf("expected ErrDomainNotAllowed, got: %v", err)
	}
}

func TestAuthServiceLogin(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seeded := seedRegulator(t, svc, db, "admin@nafdac.gov.ng", "medguard123")
	now := time.Now()

	regulator, token, err := svc.Login("Admin@NAFDAC.gov.ng", "medguard123", now)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if regulator.ID != seeded.ID {
		t.Fatalf("unexpected regulator: %+v", regulator)
	}

	claims, err := svc.ParseSession(token)
	if err != nil {
		t.Fatalf("parse session failed: %v", err)
	}
	if claims.RegulatorID != seeded.ID || claims.Role != constants.RoleRegulator {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.CSRF == "" {
		t.Fatal("expected csrf token in session")
	}

	// 账号不存在与密码错误走同一个错误
	if _, _, err := svc.Login("ghost@nafdac.gov.ng", "medguard123", now); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown account, got: %v", err)
	}
	if _, _, err := svc.Login("admin@nafdac.gov.ng", "wrong-password", now); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got: %v", err)
	}
}

func TestAuthServiceLoginRejectsUnverifiedAndWrongRole(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	now := time.Now()

	hash, err := svc.HashPassword("medguard123")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	accounts := []models.Regulator{
		{
			CompanyName:  "NAFDAC",
			Email:        "pending@nafdac.gov.ng",
			PasswordHash: hash,
			Role:         constants.RoleRegulator,
			IsVerified:   false,
		},
		{
			CompanyName:  "NAFDAC",
			Email:        "auditor@nafdac.gov.ng",
			PasswordHash: hash,
			Role:         "auditor",
			IsVerified:   true,
		},
	}
	for i := range accounts {
		if err := db.Create(&accounts[i]).Error; err != nil {
			t.Fatalf("create regulator failed: %v", err)
		}
	}

	// 未核验账号即使密码正确也不能拿到会话
	if _, token, err := svc.Login("pending@nafdac.gov.ng", "medguard123", now); !errors.Is(err, ErrInvalidCredentials) || token != "" {
		t.Fatalf("expected ErrInvalidCredentials for unverified account, got token=%q err=%v", token, err)
	}
	// 角色不是 regulator 的账号同样走通用错误
	if _, token, err := svc.Login("auditor@nafdac.gov.ng", "medguard123", now); !errors.Is(err, ErrInvalidCredentials) || token != "" {
		t.Fatalf("expected ErrInvalidCredentials for non-regulator role, got token=%q err=%v", token, err)
	}
}

func TestAuthServiceSessionSliding(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seeded := seedRegulator(t, svc, db, "admin@nafdac.gov.ng", "medguard123")
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local)

	token, err := svc.IssueSession(seeded, now)
	if err != nil {
		t.Fatalf("issue session failed: %v", err)
	}
	claims, err := svc.ParseSession(token)
	if err != nil {
		t.Fatalf("parse session failed: %v", err)
	}

	// 窗口内的请求推进 last_activity
	refreshed, err := svc.RefreshSession(claims, now.Add(4*time.Minute))
	if err != nil {
		t.Fatalf("refresh inside window failed: %v", err)
	}
	if refreshed.LastActivity != now.Add(4*time.Minute).Unix() {
		t.Fatalf("expected last_activity advanced, got: %d", refreshed.LastActivity)
	}
	if refreshed.CSRF != claims.CSRF {
		t.Fatal("csrf token must survive refresh")
	}

	// 刷新后窗口从新的活动时间重新计算
	again, err := svc.RefreshSession(refreshed, now.Add(8*time.Minute))
	if err != nil {
		t.Fatalf("refresh after sliding failed: %v", err)
	}
	if again.LastActivity != now.Add(8*time.Minute).Unix() {
		t.Fatalf("expected last_activity advanced again, got: %d", again.LastActivity)
	}

	// 超过空闲窗口判超时
	if _, err := svc.RefreshSession(claims, now.Add(6*time.Minute)); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got: %v", err)
	}
}

func TestAuthServiceParseSessionRejectsTampered(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seeded := seedRegulator(t, svc, db, "admin@nafdac.gov.ng", "medguard123")

	token, err := svc.IssueSession(seeded, time.Now())
	if err != nil {
		t.Fatalf("issue session failed: %v", err)
	}
	if _, err := svc.ParseSession(token + "x"); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired for tampered token, got: %v", err)
	}
	if _, err := svc.ParseSession("not-a-token"); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired for garbage token, got: %v", err)
	}
}

func TestAuthServiceLogoutCSRF(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	claims := &SessionClaims{RegulatorID: 1, CSRF: "csrf-token-value"}

	if err := svc.Logout(claims, "csrf-token-value"); err != nil {
		t.Fatalf("logout with matching csrf failed: %v", err)
	}
	if err := svc.Logout(claims, "wrong"); !errors.Is(err, ErrCSRFMismatch) {
		t.Fatalf("expected ErrCSRFMismatch, got: %v", err)
	}
	if err := svc.Logout(claims, ""); !errors.Is(err, ErrCSRFMismatch) {
		t.Fatalf("expected ErrCSRFMismatch for empty token, got: %v", err)
	}
}
