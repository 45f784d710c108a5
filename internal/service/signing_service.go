package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// SigningService 批次号签名服务
// 对批次号做带服务端密钥的单向摘要，用于可扫描载荷的防篡改校验。
type SigningService struct {
	secret string
}

// NewSigningService 创建签名服务
func NewSigningService(secret string) *SigningService {
	return &SigningService{secret: secret}
}

// Sign 计算批次号的十六进制摘要：sha256(batch_number + secret)
func (s *SigningService) Sign(batchNumber string) string {
	sum := sha256.Sum256([]byte(batchNumber + s.secret))
	return hex.EncodeToString(sum[:])
}

// EncodePayload 生成可扫描载荷："<batch_number>|<hex_digest>"
func (s *SigningService) EncodePayload(batchNumber string) string {
	return batchNumber + "|" + s.Sign(batchNumber)
}

// VerifyPayload 校验载荷签名
// 按第一个 | 切分，重新计算摘要并做常量时间比较；通过时返回批次号。
func (s *SigningService) VerifyPayload(payload string) (string, bool) {
	batchNumber, digest, found := strings.Cut(payload, "|")
	if !found || batchNumber == "" {
		return "", false
	}
	expected := s.Sign(batchNumber)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(expected)) != 1 {
		return "", false
	}
	return batchNumber, true
}
