package admin

import (
	handlershared "github.com/caneca-next/internal/http/handlers/shared"
	"github.com/caneca-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadDesign 上传订单设计稿（multipart 字段 file）
func (h *Handler) UploadDesign(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "缺少上传文件")
		return
	}

	design, err := h.UploadService.SaveDesign(id, file)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, design)
}

// DeleteDesign 删除设计稿记录
func (h *Handler) DeleteDesign(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.UploadService.RemoveDesign(id); err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
