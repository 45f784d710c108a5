package shared

// NormalizePage 归一化页码。
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
