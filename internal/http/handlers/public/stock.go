package public

import (
	"strconv"

	handlershared "github.com/caneca-next/internal/http/handlers/shared"
	"github.com/caneca-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetStock 获取商品库存
func (h *Handler) GetStock(c *gin.Context) {
	productID, ok := handlershared.ParseUintParam(c, "product_id")
	if !ok {
		return
	}

	stock, err := h.StockService.GetByProductID(productID)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"product_id":    stock.ProductID,
		"quantity":      stock.Quantity,
		"minimum_level": stock.MinimumLevel,
		"below_minimum": stock.BelowMinimum(),
		"last_updated":  stock.UpdatedAt,
	})
}

// GetMovements 查询库存流水（按时间倒序）
func (h *Handler) GetMovements(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	productID, _ := strconv.ParseUint(c.Query("product_id"), 10, 64)
	orderID, _ := strconv.ParseUint(c.Query("order_id"), 10, 64)

	movements, total, err := h.StockService.Movements(uint(productID), uint(orderID), page, pageSize)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}

	response.SuccessWithPage(c, movements, response.NewPagination(page, pageSize, total))
}
