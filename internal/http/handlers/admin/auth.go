package admin

import (
	"errors"
	"time"

	handlershared "github.com/medguard-next/internal/http/handlers/shared"
	"github.com/medguard-next/internal/http/response"
	"github.com/medguard-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 监管方登录请求
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Login 监管方登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Email and password are required", err)
		return
	}

	regulator, token, err := h.AuthService.Login(req.Email, req.Password, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDomainNotAllowed):
			respondError(c, response.CodeForbidden, "Email domain is not allowed", nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "Invalid email or password", nil)
		default:
			respondError(c, response.CodeInternal, "Login failed", err)
		}
		return
	}

	claims, err := h.AuthService.ParseSession(token)
	if err != nil {
		respondError(c, response.CodeInternal, "Login failed", err)
		return
	}
	h.setSessionCookie(c, token)

	response.SuccessWithMsg(c, "Login successful", gin.H{
		"company_name": regulator.CompanyName,
		"email":        regulator.Email,
		"role":         regulator.Role,
		"csrf_token":   claims.CSRF,
	})
}

// Logout 登出（需携带会话下发的 csrf token）
func (h *Handler) Logout(c *gin.Context) {
	csrfToken := c.GetHeader("X-CSRF-Token")
	if csrfToken == "" {
		csrfToken = c.PostForm("csrf_token")
	}

	claims := &service.SessionClaims{CSRF: handlershared.GetSessionCSRF(c)}
	if id, ok := handlershared.GetRegulatorID(c); ok {
		claims.RegulatorID = id
	} else {
		return
	}

	if err := h.AuthService.Logout(claims, csrfToken); err != nil {
		respondError(c, response.CodeForbidden, "CSRF token mismatch", nil)
		return
	}

	h.clearSessionCookie(c)
	response.SuccessWithMsg(c, "Logged out", nil)
}

// Ping 会话保活
// 中间件已完成滑动刷新，这里只回报剩余窗口。
func (h *Handler) Ping(c *gin.Context) {
	response.Success(c, gin.H{
		"session_timeout_seconds": h.Config.Session.SessionTimeoutSeconds(),
	})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(
		h.Config.Session.CookieName,
		token,
		h.Config.Session.SessionTimeoutSeconds(),
		"/",
		"",
		h.Config.Session.CookieSecure,
		true,
	)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.Config.Session.CookieName, "", -1, "/", "", h.Config.Session.CookieSecure, true)
}
