package admin

import (
	"strconv"
	"strings"

	"github.com/caneca-next/internal/constants"
	handlershared "github.com/caneca-next/internal/http/handlers/shared"
	"github.com/caneca-next/internal/http/response"
	"github.com/caneca-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Notes         string `json:"notes"`
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ApplyDiscountRequest 应用折扣请求（金额与百分比二选一）
type ApplyDiscountRequest struct {
	Type       string `json:"type" binding:"required"`
	Amount     int64  `json:"amount"`
	Percentage int    `json:"percentage"`
}

// SetTotalsRequest 直接写入金额字段请求
type SetTotalsRequest struct {
	Subtotal           *int64 `json:"subtotal" binding:"required"`
	Discount           *int64 `json:"discount" binding:"required"`
	DiscountPercentage *int   `json:"discount_percentage" binding:"required"`
}

// AddOrderItemRequest 添加订单商品项请求
type AddOrderItemRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
	UnitPrice int64 `json:"unit_price" binding:"required"`
}

// AddOrderServiceRequest 添加附加服务请求
type AddOrderServiceRequest struct {
	ServiceName string `json:"service_name" binding:"required"`
	Description string `json:"description"`
	Price       *int64 `json:"price" binding:"required"`
}

// CreateOrder 创建订单（金额全为零的空订单）
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	order, err := h.OrderService.Create(service.CreateOrderInput{
		UserID:        userID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	})
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrders 订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	status := strings.TrimSpace(c.Query("status"))
	if status != "" && !constants.IsValidOrderStatus(status) {
		response.BadRequest(c, "订单状态不合法")
		return
	}
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)

	orders, total, err := h.OrderService.List(uint(userID), status, page, pageSize)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// UpdateOrderStatus 更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	order, err := h.OrderService.UpdateStatus(id, strings.TrimSpace(req.Status))
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// ApplyDiscount 应用折扣并重算金额
func (h *Handler) ApplyDiscount(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	var discount service.Discount
	switch strings.TrimSpace(req.Type) {
	case constants.DiscountTypeFixed:
		discount = service.FixedDiscount(req.Amount)
	case constants.DiscountTypePercentage:
		discount = service.PercentageDiscount(req.Percentage)
	default:
		response.BadRequest(c, "折扣类型不合法")
		return
	}

	order, err := h.OrderService.ApplyDiscount(id, discount)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// SetOrderTotals 直接写入金额字段
func (h *Handler) SetOrderTotals(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req SetTotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	order, err := h.OrderService.SetTotals(id, *req.Subtotal, *req.Discount, *req.DiscountPercentage)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// CheckoutOrder 结算订单：扣库存、记流水、状态置为制作中
func (h *Handler) CheckoutOrder(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.Checkout(id)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// AddOrderItem 添加订单商品项
func (h *Handler) AddOrderItem(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	item, err := h.OrderService.AddItem(id, service.AddItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// RemoveOrderItem 删除订单商品项
func (h *Handler) RemoveOrderItem(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := handlershared.ParseUintParam(c, "item_id")
	if !ok {
		return
	}

	if err := h.OrderService.RemoveItem(id, itemID); err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// AddOrderService 添加附加服务项
func (h *Handler) AddOrderService(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req AddOrderServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	svc, err := h.OrderService.AddService(id, service.AddServiceInput{
		ServiceName: req.ServiceName,
		Description: req.Description,
		Price:       *req.Price,
	})
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, svc)
}

// RemoveOrderService 删除附加服务项
func (h *Handler) RemoveOrderService(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	serviceID, ok := handlershared.ParseUintParam(c, "service_id")
	if !ok {
		return
	}

	if err := h.OrderService.RemoveService(id, serviceID); err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
