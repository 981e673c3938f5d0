package service

import (
	"errors"
	"testing"

	"github.com/caneca-next/internal/models"
	"github.com/caneca-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Stock{}, &models.StockMovement{}); err != nil {
		t.Fatalf("migrate product tables failed: %v", err)
	}
	svc := NewProductService(repository.NewProductRepository(db), repository.NewStockRepository(db))
	return svc, db
}

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func TestCreateProductValidatesInput(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	if _, err := svc.Create(CreateProductInput{Name: " ", SKU: "PROD-V-1", BasePrice: 100}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("blank name want ErrNameRequired got %v", err)
	}
	if _, err := svc.Create(CreateProductInput{Name: "马克杯", SKU: "  ", BasePrice: 100}); !errors.Is(err, ErrSKURequired) {
		t.Fatalf("blank sku want ErrSKURequired got %v", err)
	}
	if _, err := svc.Create(CreateProductInput{Name: "马克杯", SKU: "PROD-V-2", BasePrice: -1}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("negative price want ErrInvalidPrice got %v", err)
	}
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	if _, err := svc.Create(CreateProductInput{Name: "经典白杯", SKU: "PROD-DUP-1", BasePrice: 1500}); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if _, err := svc.Create(CreateProductInput{Name: "另一个杯", SKU: "PROD-DUP-1", BasePrice: 2000}); !errors.Is(err, ErrSKUExists) {
		t.Fatalf("duplicate sku want ErrSKUExists got %v", err)
	}
}

func TestCreateProductWithInitialStock(t *testing.T) {
	svc, db := setupProductServiceTest(t)

	product, err := svc.Create(CreateProductInput{
		Name:         "保温钢杯",
		SKU:          "PROD-STOCK-1",
		BasePrice:    4500,
		InitialStock: intPtr(20),
		MinimumLevel: intPtr(5),
	})
	if err != nil {
		t.Fatalf("create product with stock failed: %v", err)
	}

	var stock models.Stock
	if err := db.Where("product_id = ?", product.ID).First(&stock).Error; err != nil {
		t.Fatalf("load stock failed: %v", err)
	}
	if stock.Quantity != 20 {
		t.Fatalf("stock quantity want 20 got %d", stock.Quantity)
	}
	if stock.MinimumLevel != 5 {
		t.Fatalf("minimum level want 5 got %d", stock.MinimumLevel)
	}

	if _, err := svc.Create(CreateProductInput{
		Name:         "负库存杯",
		SKU:          "PROD-STOCK-NEG",
		BasePrice:    100,
		InitialStock: intPtr(-1),
	}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("negative initial stock want ErrInvalidQuantity got %v", err)
	}
}

func TestUpdateProductKeepsSKUUnique(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	first, err := svc.Create(CreateProductInput{Name: "第一款", SKU: "PROD-UPD-1", BasePrice: 1500})
	if err != nil {
		t.Fatalf("create first product failed: %v", err)
	}
	second, err := svc.Create(CreateProductInput{Name: "第二款", SKU: "PROD-UPD-2", BasePrice: 2500})
	if err != nil {
		t.Fatalf("create second product failed: %v", err)
	}

	if _, err := svc.Update(second.ID, UpdateProductInput{SKU: strPtr(first.SKU)}); !errors.Is(err, ErrSKUExists) {
		t.Fatalf("update to taken sku want ErrSKUExists got %v", err)
	}

	updated, err := svc.Update(second.ID, UpdateProductInput{
		SKU:       strPtr(second.SKU),
		Name:      strPtr("第二款改名"),
		BasePrice: int64Ptr(2600),
		IsActive:  boolPtr(false),
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if updated.Name != "第二款改名" || updated.BasePrice != 2600 || updated.IsActive {
		t.Fatalf("updated fields mismatch: %+v", updated)
	}
}

func TestDeleteProductKeepsStockRecords(t *testing.T) {
	svc, db := setupProductServiceTest(t)

	product, err := svc.Create(CreateProductInput{
		Name:         "待下架杯",
		SKU:          "PROD-DEL-1",
		BasePrice:    1500,
		InitialStock: intPtr(3),
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := svc.Delete(product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if _, err := svc.GetByID(product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted product want ErrNotFound got %v", err)
	}
	if err := svc.Delete(product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("re-delete want ErrNotFound got %v", err)
	}

	// 软删除：库存记录保留
	var stock models.Stock
	if err := db.Where("product_id = ?", product.ID).First(&stock).Error; err != nil {
		t.Fatalf("load stock after delete failed: %v", err)
	}
	if stock.Quantity != 3 {
		t.Fatalf("stock quantity want 3 got %d", stock.Quantity)
	}
}
