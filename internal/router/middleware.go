package router

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/medguard-next/internal/config"
	"github.com/medguard-next/internal/constants"
	handlershared "github.com/medguard-next/internal/http/handlers/shared"
	"github.com/medguard-next/internal/http/response"
	"github.com/medguard-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-CSRF-Token",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// SessionAuthMiddleware 管理端会话鉴权中间件
// 从 cookie 取会话 token，校验签名和角色，按滑动窗口刷新
// last_activity 并重签 cookie，最后把会话字段写入上下文。
func SessionAuthMiddleware(authService *service.AuthService, sessionCfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService == nil {
			response.Unauthorized(c, "Session expired. Please log in again.")
			c.Abort()
			return
		}

		tokenString, err := c.Cookie(sessionCfg.CookieName)
		if err != nil || strings.TrimSpace(tokenString) == "" {
			response.Unauthorized(c, "Session expired. Please log in again.")
			c.Abort()
			return
		}

		claims, err := authService.ParseSession(tokenString)
		if err != nil {
			response.Unauthorized(c, "Session expired. Please log in again.")
			c.Abort()
			return
		}
		if claims.RegulatorID == 0 || claims.Role != constants.RoleRegulator {
			response.Forbidden(c, "Regulator role required")
			c.Abort()
			return
		}

		refreshed, err := authService.RefreshSession(claims, time.Now())
		if err != nil {
			response.Unauthorized(c, "Session expired. Please log in again.")
			c.Abort()
			return
		}

		// 每个认证请求都重签 cookie，实现滑动超时
		reissued, err := authService.SignSession(refreshed)
		if err == nil {
			c.SetCookie(
				sessionCfg.CookieName,
				reissued,
				sessionCfg.SessionTimeoutSeconds(),
				"/",
				"",
				sessionCfg.CookieSecure,
				true,
			)
		}

		c.Set(handlershared.ContextKeyRegulatorID, refreshed.RegulatorID)
		c.Set(handlershared.ContextKeyRole, refreshed.Role)
		c.Set(handlershared.ContextKeyCSRF, refreshed.CSRF)
		c.Next()
	}
}
