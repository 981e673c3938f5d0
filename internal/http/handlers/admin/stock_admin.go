package admin

import (
	"github.com/caneca-next/internal/constants"
	handlershared "github.com/caneca-next/internal/http/handlers/shared"
	"github.com/caneca-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// InitializeStockRequest 初始化库存请求
type InitializeStockRequest struct {
	Quantity     *int `json:"quantity" binding:"required"`
	MinimumLevel *int `json:"minimum_level"`
}

// StockChangeRequest 出入库请求
type StockChangeRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	OrderID   *uint  `json:"order_id"`
	Reason    string `json:"reason"`
}

// AdjustStockRequest 盘点调整请求
type AdjustStockRequest struct {
	Quantity *int   `json:"quantity" binding:"required"`
	Reason   string `json:"reason"`
}

// InitializeStock 初始化商品库存（已存在时报冲突，不做覆盖）
func (h *Handler) InitializeStock(c *gin.Context) {
	productID, ok := handlershared.ParseUintParam(c, "product_id")
	if !ok {
		return
	}

	var req InitializeStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	stock, err := h.StockService.Initialize(productID, *req.Quantity, req.MinimumLevel)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, stock)
}

// DecreaseStock 扣减库存（销售出库）
func (h *Handler) DecreaseStock(c *gin.Context) {
	var req StockChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	stock, err := h.StockService.Decrease(req.ProductID, req.Quantity, constants.MovementTypeSale, req.OrderID, req.Reason)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, stock)
}

// IncreaseStock 增加库存（入库调整）
func (h *Handler) IncreaseStock(c *gin.Context) {
	var req StockChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	stock, err := h.StockService.Increase(req.ProductID, req.Quantity, constants.MovementTypeAdjustment, req.OrderID, req.Reason)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, stock)
}

// AdjustStock 将库存调整到目标数量，差额入流水
func (h *Handler) AdjustStock(c *gin.Context) {
	productID, ok := handlershared.ParseUintParam(c, "product_id")
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	stock, err := h.StockService.AdjustTo(productID, *req.Quantity, req.Reason)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, stock)
}
