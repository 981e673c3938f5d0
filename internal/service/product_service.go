package service

import (
	"strings"

	"github.com/caneca-next/internal/constants"
	"github.com/caneca-next/internal/models"
	"github.com/caneca-next/internal/repository"

	"gorm.io/gorm"
)

// ProductService 商品业务服务
type ProductService struct {
	repo      repository.ProductRepository
	stockRepo repository.StockRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, stockRepo repository.StockRepository) *ProductService {
	return &ProductService{repo: repo, stockRepo: stockRepo}
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	Name         string
	Description  string
	BasePrice    int64
	SKU          string
	Category     string
	IsActive     *bool
	InitialStock *int // 为空时不初始化库存
	MinimumLevel *int
}

// UpdateProductInput 更新商品输入，nil 字段保持原值
type UpdateProductInput struct {
	Name        *string
	Description *string
	BasePrice   *int64
	SKU         *string
	Category    *string
	IsActive    *bool
}

// List 获取商品列表
func (s *ProductService) List(category, search string, isActive *bool, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:      page,
		PageSize:  pageSize,
		Category:  category,
		Search:    search,
		IsActive:  isActive,
		WithStock: true,
	}
	return s.repo.List(filter)
}

// GetByID 获取商品详情
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// GetBySKU 按 SKU 获取商品
func (s *ProductService) GetBySKU(sku string) (*models.Product, error) {
	product, err := s.repo.GetBySKU(strings.TrimSpace(sku))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create 创建商品，可同时初始化库存
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	sku := strings.TrimSpace(input.SKU)
	if name == "" {
		return nil, ErrNameRequired
	}
	if sku == "" {
		return nil, ErrSKURequired
	}
	if input.BasePrice < 0 {
		return nil, ErrInvalidPrice
	}

	count, err := s.repo.CountBySKU(sku, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSKUExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := &models.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		BasePrice:   input.BasePrice,
		SKU:         sku,
		Category:    strings.TrimSpace(input.Category),
		IsActive:    isActive,
	}

	if input.InitialStock == nil {
		if err := s.repo.Create(product); err != nil {
			return nil, err
		}
		return product, nil
	}

	if *input.InitialStock < 0 {
		return nil, ErrInvalidQuantity
	}
	minimumLevel := constants.DefaultStockMinimumLevel
	if input.MinimumLevel != nil && *input.MinimumLevel >= 0 {
		minimumLevel = *input.MinimumLevel
	}

	err = s.stockRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(product); err != nil {
			return err
		}
		return s.stockRepo.WithTx(tx).Create(&models.Stock{
			ProductID:    product.ID,
			Quantity:     *input.InitialStock,
			MinimumLevel: minimumLevel,
		})
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品字段
func (s *ProductService) Update(id uint, input UpdateProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.BasePrice != nil {
		if *input.BasePrice < 0 {
			return nil, ErrInvalidPrice
		}
		product.BasePrice = *input.BasePrice
	}
	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return nil, ErrSKURequired
		}
		count, err := s.repo.CountBySKU(sku, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSKUExists
		}
		product.SKU = sku
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品（软删除，库存与流水保留）
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
