package public

import "github.com/caneca-next/internal/provider"

// Handler 公开接口处理器入口
// 说明：该处理器用于无需登录的查询接口与用户认证接口。
type Handler struct {
	*provider.Container
}

// New 创建公开处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
