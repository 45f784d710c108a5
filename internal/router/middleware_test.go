package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/medguard-next/internal/config"
	"github.com/medguard-next/internal/constants"
	handlershared "github.com/medguard-next/internal/http/handlers/shared"
	"github.com/medguard-next/internal/models"
	"github.com/medguard-next/internal/service"

	"github.com/gin-gonic/gin"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func sessionTestConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			SecretKey:         "middleware-test-secret",
			CookieName:        "mg_session",
			InactivityMinutes: 5,
		},
	}
}

func newSessionTestRouter(authService *service.AuthService, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(SessionAuthMiddleware(authService, cfg.Session))
	r.GET("/admin/ping", func(c *gin.Context) {
		id, _ := c.Get(handlershared.ContextKeyRegulatorID)
		c.JSON(http.StatusOK, gin.H{"regulator_id": id})
	})
	return r
}

func TestSessionAuthMiddlewareMissingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := sessionTestConfig()
	r := newSessionTestRouter(service.NewAuthService(cfg, nil), cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestSessionAuthMiddlewareValidSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := sessionTestConfig()
	authService := service.NewAuthService(cfg, nil)
	r := newSessionTestRouter(authService, cfg)

	token, err := authService.IssueSession(&models.Regulator{
		ID:   7,
		Role: constants.RoleRegulator,
	}, time.Now())
	if err != nil {
		t.Fatalf("issue session failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: token})
	r.ServeHTTP(w, req)

	var resp struct {
		RegulatorID uint `json:"regulator_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.RegulatorID != 7 {
		t.Fatalf("regulator_id want 7 got %d", resp.RegulatorID)
	}

	// 滑动超时：每个认证请求重签 cookie
	reissued := ""
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == cfg.Session.CookieName {
			reissued = cookie.Value
		}
	}
	if reissued == "" {
		t.Fatal("expected session cookie to be reissued")
	}
}

func TestSessionAuthMiddlewareIdleTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := sessionTestConfig()
	authService := service.NewAuthService(cfg, nil)
	r := newSessionTestRouter(authService, cfg)

	// last_activity 在 6 分钟前，已超出 5 分钟空闲窗口
	token, err := authService.IssueSession(&models.Regulator{
		ID:   7,
		Role: constants.RoleRegulator,
	}, time.Now().Add(-6*time.Minute))
	if err != nil {
		t.Fatalf("issue session failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: token})
	r.ServeHTTP(w, req)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestSessionAuthMiddlewareRejectsWrongRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := sessionTestConfig()
	authService := service.NewAuthService(cfg, nil)
	r := newSessionTestRouter(authService, cfg)

	token, err := authService.IssueSession(&models.Regulator{
		ID:   7,
		Role: "auditor",
	}, time.Now())
	if err != nil {
		t.Fatalf("issue session failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: token})
	r.ServeHTTP(w, req)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Fatalf("status_code want 403 got %d", resp.StatusCode)
	}
}
