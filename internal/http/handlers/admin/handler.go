package admin

import "github.com/medguard-next/internal/provider"

// Handler 管理端接口处理器入口
// 说明：该处理器仅用于会话保护的监管方 API。
type Handler struct {
	*provider.Container
}

// New 创建管理端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
