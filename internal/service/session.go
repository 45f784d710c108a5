package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims 管理端会话声明
// last_activity 驱动滑动超时：每次认证请求刷新并重签。
type SessionClaims struct {
	RegulatorID  uint   `json:"regulator_id"`
	Role         string `json:"role"`
	CSRF         string `json:"csrf"`
	LastActivity int64  `json:"last_activity"`
	jwt.RegisteredClaims
}

// SignSession 签发会话 token
func (s *AuthService) SignSession(claims *SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Session.SecretKey))
}

// ParseSession 解析会话 token
// 签名或标准声明校验失败一律视为会话超时，不向客户端区分原因。
func (s *AuthService) ParseSession(tokenString string) (*SessionClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Session.SecretKey), nil
	})
	if err != nil {
		return nil, ErrSessionExpired
	}
	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrSessionExpired
}

// RefreshSession 滑动会话刷新
// 距上次活动超过空闲窗口则判超时；否则把 last_activity 推进到 now
// 并顺延过期时间，调用方负责用新声明重签 cookie。
func (s *AuthService) RefreshSession(claims *SessionClaims, now time.Time) (*SessionClaims, error) {
	window := time.Duration(s.cfg.Session.SessionTimeoutSeconds()) * time.Second
	last := time.Unix(claims.LastActivity, 0)
	if claims.LastActivity <= 0 || now.Sub(last) > window {
		return nil, ErrSessionExpired
	}

	refreshed := *claims
	refreshed.LastActivity = now.Unix()
	refreshed.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(now.Add(window))
	refreshed.RegisteredClaims.IssuedAt = jwt.NewNumericDate(now)
	return &refreshed, nil
}

// SessionWindow 会话空闲窗口
func (s *AuthService) SessionWindow() time.Duration {
	return time.Duration(s.cfg.Session.SessionTimeoutSeconds()) * time.Second
}
