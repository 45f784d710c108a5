package repository

import (
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// likeOperator 返回大小写不敏感的模糊匹配操作符。
// sqlite 的 LIKE 对 ASCII 本身不区分大小写，postgres 需要 ILIKE。
func likeOperator(db *gorm.DB) string {
	switch dbDialectName(db) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// isoDateShapePredicate 返回“列形如 YYYY-MM-DD”的方言判断表达式。
// sqlite 用 GLOB 逐字符匹配，postgres 用正则。
func isoDateShapePredicate(db *gorm.DB, column string) string {
	switch dbDialectName(db) {
	case "postgres", "postgresql":
		return column + " ~ '^[0-9]{4}-[0-9]{2}-[0-9]{2}$'"
	default:
		return column + " GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'"
	}
}
