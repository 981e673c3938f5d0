package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/caneca-next/internal/constants"
	"github.com/caneca-next/internal/logger"
	"github.com/caneca-next/internal/models"
	"github.com/caneca-next/internal/queue"
	"github.com/caneca-next/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单业务服务。
// 所有改动金额的操作（增删商品项/服务项、改折扣）都在
// 同一事务内重算并落库四个金额字段，保证读到的订单永远自洽。
type OrderService struct {
	orderRepo    repository.OrderRepository
	itemRepo     repository.OrderItemRepository
	svcRepo      repository.OrderServiceRepository
	productRepo  repository.ProductRepository
	stockRepo    repository.StockRepository
	movementRepo repository.StockMovementRepository
	queueClient  *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	svcRepo repository.OrderServiceRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		svcRepo:      svcRepo,
		productRepo:  productRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		queueClient:  queueClient,
	}
}

// CreateOrderInput 创建订单输入（空订单，金额全为零）
type CreateOrderInput struct {
	UserID        uint
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
}

// AddItemInput 添加订单商品项输入
type AddItemInput struct {
	ProductID uint
	Quantity  int
	UnitPrice int64 // 加入时的单价快照（分）
}

// AddServiceInput 添加订单服务项输入
type AddServiceInput struct {
	ServiceName string
	Description string
	Price       int64
}

// Create 创建订单
func (s *OrderService) Create(input CreateOrderInput) (*models.Order, error) {
	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, ErrNameRequired
	}

	order := &models.Order{
		OrderNo:       generateOrderNo(),
		UserID:        input.UserID,
		CustomerName:  name,
		CustomerEmail: strings.TrimSpace(strings.ToLower(input.CustomerEmail)),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		Status:        constants.OrderStatusPending,
		Notes:         strings.TrimSpace(input.Notes),
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID 获取订单详情（含商品项、服务项、设计稿）
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// GetByOrderNo 按订单编号获取详情
func (s *OrderService) GetByOrderNo(orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// List 查询订单列表
func (s *OrderService) List(userID uint, status string, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.List(repository.OrderListFilter{
		UserID:   userID,
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
}

// UpdateStatus 更新订单状态并推送状态邮件任务。
// 状态之间不限制流转方向。
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	if !constants.IsValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.enqueueStatusEmail(order, status)
	return order, nil
}

// ApplyDiscount 应用折扣（固定金额与百分比二选一）并重算金额
func (s *OrderService) ApplyDiscount(id uint, discount Discount) (*models.Order, error) {
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.WithTx(tx).GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrNotFound
		}
		return s.recomputeTotalsInTx(tx, order, discount)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// SetTotals 直接写入金额字段（小计、折扣、百分比），实付金额按规则推导
func (s *OrderService) SetTotals(id uint, subtotal, discount int64, discountPercentage int) (*models.Order, error) {
	if subtotal < 0 || discount < 0 {
		return nil, ErrInvalidDiscount
	}
	if discountPercentage < 0 || discountPercentage > 100 {
		return nil, ErrInvalidDiscount
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	total := subtotal - discount
	if total < 0 {
		total = 0
	}
	if err := s.orderRepo.UpdateTotals(id, subtotal, discount, discountPercentage, total); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// AddItem 添加订单商品项并重算金额。
// 单价取传入的快照值，此后不随商品改价变动。
func (s *OrderService) AddItem(orderID uint, input AddItemInput) (*models.OrderItem, error) {
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if input.UnitPrice <= 0 {
		return nil, ErrInvalidPrice
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	item := &models.OrderItem{
		OrderID:   orderID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
		Subtotal:  input.UnitPrice * int64(input.Quantity),
	}
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.WithTx(tx).GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrNotFound
		}
		if err := s.itemRepo.WithTx(tx).Create(item); err != nil {
			return err
		}
		return s.recomputeTotalsInTx(tx, order, discountOf(order))
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem 删除订单商品项并重算金额
func (s *OrderService) RemoveItem(orderID, itemID uint) error {
	return s.orderRepo.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.WithTx(tx).GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrNotFound
		}
		item, err := s.itemRepo.WithTx(tx).GetByID(itemID)
		if err != nil {
			return err
		}
		if item == nil || item.OrderID != orderID {
			return ErrNotFound
		}
		if err := s.itemRepo.WithTx(tx).Delete(itemID); err != nil {
			return err
		}
		return s.recomputeTotalsInTx(tx, order, discountOf(order))
	})
}

// AddService 添加附加服务项并重算金额
func (s *OrderService) AddService(orderID uint, input AddServiceInput) (*models.OrderService, error) {
	name := strings.TrimSpace(input.ServiceName)
	if name == "" {
		return nil, ErrNameRequired
	}
	if input.Price < 0 {
		return nil, ErrInvalidPrice
	}

	svc := &models.OrderService{
		OrderID:     orderID,
		ServiceName: name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
	}
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.WithTx(tx).GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrNotFound
		}
		if err := s.svcRepo.WithTx(tx).Create(svc); err != nil {
			return err
		}
		return s.recomputeTotalsInTx(tx, order, discountOf(order))
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// RemoveService 删除附加服务项并重算金额
func (s *OrderService) RemoveService(orderID, serviceID uint) error {
	return s.orderRepo.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.WithTx(tx).GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrNotFound
		}
		svc, err := s.svcRepo.WithTx(tx).GetByID(serviceID)
		if err != nil {
			return err
		}
		if svc == nil || svc.OrderID != orderID {
			return ErrNotFound
		}
		if err := s.svcRepo.WithTx(tx).Delete(serviceID); err != nil {
			return err
		}
		return s.recomputeTotalsInTx(tx, order, discountOf(order))
	})
}

// ListItems 查询订单商品项
func (s *OrderService) ListItems(orderID uint) ([]models.OrderItem, error) {
	if _, err := s.GetByID(orderID); err != nil {
		return nil, err
	}
	return s.itemRepo.ListByOrder(orderID)
}

// ListServices 查询订单服务项
func (s *OrderService) ListServices(orderID uint) ([]models.OrderService, error) {
	if _, err := s.GetByID(orderID); err != nil {
		return nil, err
	}
	return s.svcRepo.ListByOrder(orderID)
}

// Checkout 结算订单：状态置为 processing，逐项条件扣减库存并
// 追加销售流水。任何一项库存不足时整个事务回滚，订单保持 pending。
func (s *OrderService) Checkout(id uint) (*models.Order, error) {
	var checkedOut *models.Order
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.WithTx(tx).GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrNotFound
		}
		if order.Status != constants.OrderStatusPending {
			return ErrOrderNotPending
		}

		for i := range order.Items {
			item := order.Items[i]
			affected, err := s.stockRepo.WithTx(tx).DecreaseQuantity(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				stock, err := s.stockRepo.WithTx(tx).GetByProductID(item.ProductID)
				if err != nil {
					return err
				}
				if stock == nil {
					return ErrStockNotFound
				}
				return ErrInsufficientStock
			}
			orderID := order.ID
			if err := s.movementRepo.WithTx(tx).Append(&models.StockMovement{
				ProductID:    item.ProductID,
				OrderID:      &orderID,
				MovementType: constants.MovementTypeSale,
				Quantity:     item.Quantity,
				Reason:       fmt.Sprintf("订单 %s 出库", order.OrderNo),
			}); err != nil {
				return err
			}
		}

		if err := s.orderRepo.WithTx(tx).UpdateStatus(order.ID, constants.OrderStatusProcessing); err != nil {
			return err
		}
		order.Status = constants.OrderStatusProcessing
		checkedOut = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.enqueueStatusEmail(checkedOut, constants.OrderStatusProcessing)
	return checkedOut, nil
}

// recomputeTotalsInTx 事务内按当前行项重算四个金额字段
func (s *OrderService) recomputeTotalsInTx(tx *gorm.DB, order *models.Order, discount Discount) error {
	items, err := s.itemRepo.WithTx(tx).ListByOrder(order.ID)
	if err != nil {
		return err
	}
	services, err := s.svcRepo.WithTx(tx).ListByOrder(order.ID)
	if err != nil {
		return err
	}
	totals, err := ComputeOrderTotals(items, services, discount)
	if err != nil {
		return err
	}
	return s.orderRepo.WithTx(tx).UpdateTotals(order.ID, totals.Subtotal, totals.Discount, totals.DiscountPercentage, totals.Total)
}

// enqueueStatusEmail 推送订单状态通知邮件任务，失败只记日志不影响主流程
func (s *OrderService) enqueueStatusEmail(order *models.Order, status string) {
	if s.queueClient == nil || order == nil {
		return
	}
	if strings.TrimSpace(order.CustomerEmail) == "" {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: order.ID,
		Status:  status,
	}); err != nil {
		logger.Warnw("订单状态邮件任务入队失败", "order_id", order.ID, "status", status, "error", err)
	}
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("ORD%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}
	return b.String()
}
