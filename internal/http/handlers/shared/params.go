package shared

import (
	"strconv"

	"github.com/caneca-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ParseUintParam 解析路径中的 uint 参数，非法时返回统一错误响应。
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		RespondError(c, response.CodeBadRequest, "路径参数不合法", nil)
		return 0, false
	}
	return uint(value), true
}
