package service

import (
	"strings"
	"time"

	"github.com/medguard-next/internal/config"
	"github.com/medguard-next/internal/constants"
	"github.com/medguard-next/internal/logger"
	"github.com/medguard-next/internal/models"
	"github.com/medguard-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 监管方认证服务
type AuthService struct {
	cfg           *config.Config
	regulatorRepo repository.RegulatorRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, regulatorRepo repository.RegulatorRepository) *AuthService {
	return &AuthService{
		cfg:           cfg,
		regulatorRepo: regulatorRepo,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// EmailDomainAllowed 邮箱域名是否在允许名单内
func (s *AuthService) EmailDomainAllowed(email string) bool {
	normalized := strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(normalized, "@")
	if at < 0 || at == len(normalized)-1 {
		return false
	}
	domain := normalized[at+1:]
	for _, allowed := range s.cfg.Auth.AllowedDomains {
		if domain == strings.ToLower(strings.TrimSpace(allowed)) {
			return true
		}
	}
	return false
}

// Login 监管方登录
// 域名准入在任何数据库访问之前完成；其余失败路径（账号不存在、
// 未人工核验、角色不符、密码错误）统一返回 ErrInvalidCredentials，
// 不泄露哪一步失败。
func (s *AuthService) Login(email, password string, now time.Time) (*models.Regulator, string, error) {
	if !s.EmailDomainAllowed(email) {
		return nil, "", ErrDomainNotAllowed
	}

	regulator, err := s.regulatorRepo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if regulator == nil || !regulator.IsVerified || regulator.Role != constants.RoleRegulator {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.VerifyPassword(regulator.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueSession(regulator, now)
	if err != nil {
		return nil, "", err
	}

	logger.Infow("regulator_login",
		"regulator_id", regulator.ID,
		"email", regulator.Email,
	)
	return regulator, token, nil
}

// IssueSession 为监管方签发新会话
func (s *AuthService) IssueSession(regulator *models.Regulator, now time.Time) (string, error) {
	window := s.SessionWindow()
	claims := &SessionClaims{
		RegulatorID:  regulator.ID,
		Role:         regulator.Role,
		CSRF:         uuid.NewString(),
		LastActivity: now.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(window)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return s.SignSession(claims)
}

// Logout 登出
// 登出必须带会话里下发的 csrf token，防跨站触发。
func (s *AuthService) Logout(claims *SessionClaims, csrfToken string) error {
	if claims.CSRF == "" || csrfToken != claims.CSRF {
		return ErrCSRFMismatch
	}
	logger.Infow("regulator_logout", "regulator_id", claims.RegulatorID)
	return nil
}

// GetRegulator 按 ID 查询监管方
func (s *AuthService) GetRegulator(id uint) (*models.Regulator, error) {
	regulator, err := s.regulatorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if regulator == nil {
		return nil, ErrNotFound
	}
	return regulator, nil
}
