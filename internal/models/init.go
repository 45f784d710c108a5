package models

import (
	"strings"

	"github.com/medguard-next/internal/constants"
	"github.com/medguard-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultRegulator 初始化默认监管方账号
// 仅在 admin_users 表为空时创建；正常运营下账号由 cmd/seed 离线开通。
func InitDefaultRegulator(companyName, email, password string) error {
	var count int64
	DB.Model(&Regulator{}).Count(&count)
	if count > 0 {
		return nil
	}

	if companyName == "" {
		companyName = "NAFDAC"
	}
	if email == "" {
		email = "admin@nafdac.gov.ng"
	}
	if password == "" {
		password = "medguard123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	regulator := Regulator{
		CompanyName:  companyName,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         constants.RoleRegulator,
		IsVerified:   true,
	}

	if err := DB.Create(&regulator).Error; err != nil {
		return err
	}

	if password == "medguard123" {
		logger.Warnw("default_regulator_created_with_default_password", "email", regulator.Email)
		logger.Warnw("default_regulator_password_change_required", "email", regulator.Email)
	} else {
		logger.Warnw("default_regulator_created", "email", regulator.Email, "password_hidden", true)
	}

	return nil
}
