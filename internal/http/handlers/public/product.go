package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/caneca-next/internal/cache"
	handlershared "github.com/caneca-next/internal/http/handlers/shared"
	"github.com/caneca-next/internal/http/response"
	"github.com/caneca-next/internal/models"

	"github.com/gin-gonic/gin"
)

const productCacheTTL = 60 * time.Second

// GetProducts 获取商品列表（仅上架商品，附带库存）
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	active := true
	products, total, err := h.ProductService.List(category, search, &active, page, pageSize)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}

	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 获取商品详情，短暂缓存以抵挡热点查询
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var cached models.Product
	if hit, err := cache.GetJSON(c.Request.Context(), cache.ProductKey(id), &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	product, err := h.ProductService.GetByID(id)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}

	_ = cache.SetJSON(c.Request.Context(), cache.ProductKey(id), product, productCacheTTL)
	response.Success(c, product)
}

// GetProductBySKU 按 SKU 获取商品
func (h *Handler) GetProductBySKU(c *gin.Context) {
	sku := strings.TrimSpace(c.Param("sku"))
	if sku == "" {
		response.BadRequest(c, "SKU 不能为空")
		return
	}

	product, err := h.ProductService.GetBySKU(sku)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, product)
}
