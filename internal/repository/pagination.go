package repository

import "gorm.io/gorm"

// 单页条数上限，拦截异常大的 page_size 请求
const maxPageSize = 100

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
// pageSize 不超过 maxPageSize；批次列表固定 20 条，远在上限之内。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return query.Limit(pageSize).Offset(offset)
}
