package constants

// 订单状态
const (
	OrderStatusPending    = "pending"    // 待处理
	OrderStatusProcessing = "processing" // 制作中
	OrderStatusReady      = "ready"      // 待取货
	OrderStatusShipped    = "shipped"    // 已发货
	OrderStatusDelivered  = "delivered"  // 已送达
	OrderStatusCancelled  = "cancelled"  // 已取消
)

// OrderStatuses 全部合法订单状态
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusReady,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValidOrderStatus 判断订单状态是否合法
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// 库存流水类型
const (
	MovementTypePurchase   = "purchase"   // 采购入库
	MovementTypeSale       = "sale"       // 销售出库
	MovementTypeAdjustment = "adjustment" // 库存调整
	MovementTypeReturn     = "return"     // 退货入库
)

// 用户角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// 折扣类型
const (
	DiscountTypeFixed      = "fixed"      // 固定金额折扣
	DiscountTypePercentage = "percentage" // 百分比折扣
)

// DefaultStockMinimumLevel 默认库存预警阈值
const DefaultStockMinimumLevel = 10

// 异步任务
const (
	QueueDefault         = "default"
	TaskOrderStatusEmail = "order:status_email"
)
