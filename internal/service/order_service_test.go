package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/caneca-next/internal/constants"
	"github.com/caneca-next/internal/models"
	"github.com/caneca-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *StockService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Stock{},
		&models.StockMovement{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderService{},
		&models.DesignUpload{},
	); err != nil {
		t.Fatalf("migrate order tables failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	stockRepo := repository.NewStockRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	orderSvc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewOrderItemRepository(db),
		repository.NewOrderServiceRepository(db),
		productRepo,
		stockRepo,
		movementRepo,
		nil,
	)
	stockSvc := NewStockService(productRepo, stockRepo, movementRepo)
	return orderSvc, stockSvc, db
}

func createOrderProduct(t *testing.T, stockSvc *StockService, db *gorm.DB, sku string, basePrice int64, stockQuantity int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:      "定制马克杯",
		BasePrice: basePrice,
		SKU:       sku,
		IsActive:  true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if _, err := stockSvc.Initialize(product.ID, stockQuantity, nil); err != nil {
		t.Fatalf("initialize stock failed: %v", err)
	}
	return product
}

func createTestOrder(t *testing.T, svc *OrderService, customerName string) *models.Order {
	t.Helper()
	order, err := svc.Create(CreateOrderInput{
		UserID:        1,
		CustomerName:  customerName,
		CustomerEmail: "customer@example.com",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestCreateOrderRequiresCustomerName(t *testing.T) {
	svc, _, _ := setupOrderServiceTest(t)

	if _, err := svc.Create(CreateOrderInput{CustomerName: "   "}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("blank name want ErrNameRequired got %v", err)
	}

	order := createTestOrder(t, svc, "张三")
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending got %s", order.Status)
	}
	if !strings.HasPrefix(order.OrderNo, "ORD") {
		t.Fatalf("order no want ORD prefix got %s", order.OrderNo)
	}
	if order.Subtotal != 0 || order.Discount != 0 || order.Total != 0 {
		t.Fatalf("new order totals want zero got subtotal=%d discount=%d total=%d", order.Subtotal, order.Discount, order.Total)
	}
}

func TestAddItemRecomputesOrderTotals(t *testing.T) {
	svc, stockSvc, db := setupOrderServiceTest(t)
	mug := createOrderProduct(t, stockSvc, db, "ORDER-ADD-1", 1500, 10)
	tumbler := createOrderProduct(t, stockSvc, db, "ORDER-ADD-2", 2500, 10)
	order := createTestOrder(t, svc, "李四")

	item, err := svc.AddItem(order.ID, AddItemInput{ProductID: mug.ID, Quantity: 2, UnitPrice: mug.BasePrice})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if item.Subtotal != 3000 {
		t.Fatalf("item subtotal want 3000 got %d", item.Subtotal)
	}

	if _, err := svc.AddItem(order.ID, AddItemInput{ProductID: tumbler.ID, Quantity: 1, UnitPrice: tumbler.BasePrice}); err != nil {
		t.Fatalf("add second item failed: %v", err)
	}
	if _, err := svc.AddService(order.ID, AddServiceInput{ServiceName: "刻字", Price: 800}); err != nil {
		t.Fatalf("add service failed: %v", err)
	}

	got, err := svc.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if got.Subtotal != 6300 {
		t.Fatalf("subtotal want 6300 got %d", got.Subtotal)
	}
	if got.Total != 6300 {
		t.Fatalf("total want 6300 got %d", got.Total)
	}
}

func TestAddItemValidations(t *testing.T) {
	svc, stockSvc, db := setupOrderServiceTest(t)
	mug := createOrderProduct(t, stockSvc, db, "ORDER-VALID-1", 1500, 10)
	order := createTestOrder(t, svc, "王五")

	if _, err := svc.AddItem(order.ID, AddItemInput{ProductID: mug.ID, Quantity: 0, UnitPrice: 1500}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("zero quantity want ErrInvalidQuantity got %v", err)
	}
	if _, err := svc.AddItem(order.ID, AddItemInput{ProductID: mug.ID, Quantity: 1, UnitPrice: 0}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("zero price want ErrInvalidPrice got %v", err)
	}
	if _, err := svc.AddItem(order.ID, AddItemInput{ProductID: 999999, Quantity: 1, UnitPrice: 1500}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing product want ErrNotFound got %v", err)
	}
	if _, err := svc.AddService(order.ID, AddServiceInput{ServiceName: " ", Price: 100}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("blank service name want ErrNameRequired got %v", err)
	}
	if _, err := svc.AddService(order.ID, AddServiceInput{ServiceName: "包装", Price: -1}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("negative service price want ErrInvalidPrice got %v", err)
	}
}

func TestRemoveItemRecomputesPercentageDiscount(t *testing.T) {
	svc, stockSvc, db := setupOrderServiceTest(t)
	mug := createOrderProduct(t, stockSvc, db, "ORDER-REMOVE-1", 1500, 10)
	tumbler := createOrderProduct(t, stockSvc, db, "ORDER-REMOVE-2", 2500, 10)
	order := createTestOrder(t, svc, "赵六")

	item, err := svc.AddItem(order.ID, AddItemInput{ProductID: mug.ID, Quantity: 2, UnitPrice: mug.BasePrice})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if _, err := svc.AddItem(order.ID, AddItemInput{ProductID: tumbler.ID, Quantity: 1, UnitPrice: tumbler.BasePrice}); err != nil {
		t.Fatalf("add second item failed: %v", err)
	}
	if _, err := svc.ApplyDiscount(order.ID, PercentageDiscount(10)); err != nil {
		t.Fatalf("apply discount failed: %v", err)
	}

	if err := svc.RemoveItem(order.ID, item.ID); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}

	got, err := svc.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if got.Subtotal != 2500 {
		t.Fatalf("subtotal want 2500 got %d", got.Subtotal)
	}
	if got.Discount != 250 {
		t.Fatalf("discount want 250 got %d", got.Discount)
	}
	if got.Total != 2250 {
		t.Fatalf("total want 2250 got %d", got.Total)
	}

	if err := svc.RemoveItem(order.ID, item.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("remove removed item want ErrNotFound got %v", err)
	}
}

func TestApplyDiscountAndCheckoutDecrementsStock(t *testing.T) {
	svc, stockSvc, db := setupOrderServiceTest(t)
	mug := createOrderProduct(t, stockSvc, db, "ORDER-CHECKOUT-1", 1500, 10)
	order := createTestOrder(t, svc, "钱七")

	if _, err := svc.AddItem(order.ID, AddItemInput{ProductID: mug.ID, Quantity: 2, UnitPrice: mug.BasePrice}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	discounted, err := svc.ApplyDiscount(order.ID, PercentageDiscount(10))
	if err != nil {
		t.Fatalf("apply discount failed: %v", err)
	}
	if discounted.Subtotal != 3000 || discounted.Discount != 300 || discounted.Total != 2700 {
		t.Fatalf("totals want (3000,300,2700) got (%d,%d,%d)", discounted.Subtotal, discounted.Discount, discounted.Total)
	}
	if discounted.DiscountPercentage != 10 {
		t.Fatalf("discount percentage want 10 got %d", discounted.DiscountPercentage)
	}

	checkedOut, err := svc.Checkout(order.ID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if checkedOut.Status != constants.OrderStatusProcessing {
		t.Fatalf("status want processing got %s", checkedOut.Status)
	}

	stock, err := stockSvc.GetByProductID(mug.ID)
	if err != nil {
		t.Fatalf("reload stock failed: %v", err)
	}
	if stock.Quantity != 8 {
		t.Fatalf("stock quantity want 8 got %d", stock.Quantity)
	}

	var sales []models.StockMovement
	if err := db.Where("product_id = ? AND movement_type = ?", mug.ID, constants.MovementTypeSale).Find(&sales).Error; err != nil {
		t.Fatalf("load sale movements failed: %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("sale movement count want 1 got %d", len(sales))
	}
	if sales[0].Quantity != 2 {
		t.Fatalf("sale movement quantity want 2 got %d", sales[0].Quantity)
	}
	if sales[0].OrderID == nil || *sales[0].OrderID != order.ID {
		t.Fatalf("sale movement order id want %d got %v", order.ID, sales[0].OrderID)
	}

	if _, err := svc.Checkout(order.ID); !errors.Is(err, ErrOrderNotPending) {
		t.Fatalf("re-checkout want ErrOrderNotPending got %v", err)
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	svc, stockSvc, db := setupOrderServiceTest(t)
	mug := createOrderProduct(t, stockSvc, db, "ORDER-ROLLBACK-1", 1500, 1)
	order := createTestOrder(t, svc, "孙八")

	if _, err := svc.AddItem(order.ID, AddItemInput{ProductID: mug.ID, Quantity: 2, UnitPrice: mug.BasePrice}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	if _, err := svc.Checkout(order.ID); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("checkout want ErrInsufficientStock got %v", err)
	}

	got, err := svc.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if got.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending got %s", got.Status)
	}

	stock, err := stockSvc.GetByProductID(mug.ID)
	if err != nil {
		t.Fatalf("reload stock failed: %v", err)
	}
	if stock.Quantity != 1 {
		t.Fatalf("stock quantity want 1 got %d", stock.Quantity)
	}

	var saleCount int64
	if err := db.Model(&models.StockMovement{}).
		Where("product_id = ? AND movement_type = ?", mug.ID, constants.MovementTypeSale).
		Count(&saleCount).Error; err != nil {
		t.Fatalf("count sale movements failed: %v", err)
	}
	if saleCount != 0 {
		t.Fatalf("sale movement count want 0 got %d", saleCount)
	}
}

func TestUpdateStatusValidatesStatus(t *testing.T) {
	svc, _, _ := setupOrderServiceTest(t)
	order := createTestOrder(t, svc, "周九")

	if _, err := svc.UpdateStatus(order.ID, "sideways"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("invalid status want ErrInvalidStatus got %v", err)
	}

	updated, err := svc.UpdateStatus(order.ID, constants.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want cancelled got %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(999999, constants.OrderStatusReady); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing order want ErrNotFound got %v", err)
	}
}

func TestSetTotalsClampsTotal(t *testing.T) {
	svc, _, _ := setupOrderServiceTest(t)
	order := createTestOrder(t, svc, "吴十")

	got, err := svc.SetTotals(order.ID, 1000, 1500, 0)
	if err != nil {
		t.Fatalf("set totals failed: %v", err)
	}
	if got.Total != 0 {
		t.Fatalf("total want 0 got %d", got.Total)
	}

	if _, err := svc.SetTotals(order.ID, -1, 0, 0); !errors.Is(err, ErrInvalidDiscount) {
		t.Fatalf("negative subtotal want ErrInvalidDiscount got %v", err)
	}
	if _, err := svc.SetTotals(order.ID, 1000, 0, 101); !errors.Is(err, ErrInvalidDiscount) {
		t.Fatalf("percentage over 100 want ErrInvalidDiscount got %v", err)
	}
}
