package admin

import "github.com/caneca-next/internal/provider"

// Handler 登录态接口处理器入口
// 说明：该处理器用于需要登录的管理与下单 API。
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
