package admin

import (
	"strconv"
	"strings"

	"github.com/caneca-next/internal/cache"
	handlershared "github.com/caneca-next/internal/http/handlers/shared"
	"github.com/caneca-next/internal/http/response"
	"github.com/caneca-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	BasePrice    int64  `json:"base_price" binding:"required"`
	SKU          string `json:"sku" binding:"required"`
	Category     string `json:"category"`
	IsActive     *bool  `json:"is_active"`
	InitialStock *int   `json:"initial_stock"`
	MinimumLevel *int   `json:"minimum_level"`
}

// UpdateProductRequest 更新商品请求（仅写入出现的字段）
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	BasePrice   *int64  `json:"base_price"`
	SKU         *string `json:"sku"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"is_active"`
}

// ListProducts 商品列表（含下架商品）
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	var isActive *bool
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c, "is_active 参数不合法")
			return
		}
		isActive = &parsed
	}

	products, total, err := h.ProductService.List(category, search, isActive, page, pageSize)
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// CreateProduct 创建商品，可同时初始化库存
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	product, err := h.ProductService.Create(service.CreateProductInput{
		Name:         req.Name,
		Description:  req.Description,
		BasePrice:    req.BasePrice,
		SKU:          req.SKU,
		Category:     req.Category,
		IsActive:     req.IsActive,
		InitialStock: req.InitialStock,
		MinimumLevel: req.MinimumLevel,
	})
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	product, err := h.ProductService.Update(id, service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		SKU:         req.SKU,
		Category:    req.Category,
		IsActive:    req.IsActive,
	})
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}

	_ = cache.Del(c.Request.Context(), cache.ProductKey(id))
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.Delete(id); err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}

	_ = cache.Del(c.Request.Context(), cache.ProductKey(id))
	response.Success(c, gin.H{"deleted": true})
}
