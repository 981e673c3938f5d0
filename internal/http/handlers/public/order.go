package public

import (
	"strings"

	handlershared "github.com/caneca-next/internal/http/handlers/shared"
	"github.com/caneca-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetOrder 获取订单详情（含商品项、服务项、设计稿）
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetByID(id)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// GetOrderByNo 按订单编号获取详情
func (h *Handler) GetOrderByNo(c *gin.Context) {
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		response.BadRequest(c, "订单编号不能为空")
		return
	}

	order, err := h.OrderService.GetByOrderNo(orderNo)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// GetOrderItems 查询订单商品项
func (h *Handler) GetOrderItems(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	items, err := h.OrderService.ListItems(id)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, items)
}

// GetOrderServices 查询订单服务项
func (h *Handler) GetOrderServices(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	services, err := h.OrderService.ListServices(id)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, services)
}

// GetOrderDesigns 查询订单设计稿
func (h *Handler) GetOrderDesigns(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	designs, err := h.UploadService.ListDesigns(id)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, designs)
}
