package service

import (
	"github.com/caneca-next/internal/constants"
	"github.com/caneca-next/internal/models"

	"github.com/shopspring/decimal"
)

// Discount 折扣的带标签表示：固定金额或百分比二选一。
// 求值时再换算成单一金额，避免两种表示在落库后相互矛盾。
type Discount struct {
	Type       string // fixed / percentage
	Amount     int64  // Type == fixed 时的折扣金额（分）
	Percentage int    // Type == percentage 时的折扣百分比（0-100）
}

// FixedDiscount 构造固定金额折扣
func FixedDiscount(amount int64) Discount {
	return Discount{Type: constants.DiscountTypeFixed, Amount: amount}
}

// PercentageDiscount 构造百分比折扣
func PercentageDiscount(percentage int) Discount {
	return Discount{Type: constants.DiscountTypePercentage, Percentage: percentage}
}

// OrderTotals 订单金额计算结果
type OrderTotals struct {
	Subtotal           int64
	Discount           int64
	DiscountPercentage int
	Total              int64
}

// ComputeSubtotal 计算小计：商品项小计之和 + 服务项价格之和
func ComputeSubtotal(items []models.OrderItem, services []models.OrderService) int64 {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Subtotal
	}
	for _, svc := range services {
		subtotal += svc.Price
	}
	return subtotal
}

// EvaluateDiscount 将折扣求值为具体金额。
// 百分比折扣按当前小计换算并四舍五入到分；
// 任何折扣金额都不会超过小计（实付金额下限为 0）。
func EvaluateDiscount(subtotal int64, discount Discount) (int64, int, error) {
	switch discount.Type {
	case constants.DiscountTypeFixed:
		if discount.Amount < 0 {
			return 0, 0, ErrInvalidDiscount
		}
		amount := discount.Amount
		if amount > subtotal {
			amount = subtotal
		}
		return amount, 0, nil
	case constants.DiscountTypePercentage:
		if discount.Percentage < 0 || discount.Percentage > 100 {
			return 0, 0, ErrInvalidDiscount
		}
		amount := decimal.NewFromInt(subtotal).
			Mul(decimal.NewFromInt(int64(discount.Percentage))).
			Div(decimal.NewFromInt(100)).
			Round(0).IntPart()
		if amount > subtotal {
			amount = subtotal
		}
		return amount, discount.Percentage, nil
	default:
		return 0, 0, ErrInvalidDiscount
	}
}

// ComputeOrderTotals 由商品项、服务项和折扣计算订单全部金额字段
func ComputeOrderTotals(items []models.OrderItem, services []models.OrderService, discount Discount) (OrderTotals, error) {
	subtotal := ComputeSubtotal(items, services)
	amount, percentage, err := EvaluateDiscount(subtotal, discount)
	if err != nil {
		return OrderTotals{}, err
	}
	return OrderTotals{
		Subtotal:           subtotal,
		Discount:           amount,
		DiscountPercentage: percentage,
		Total:              computeTotal(subtotal, amount),
	}, nil
}

// computeTotal 实付金额 = 小计 - 折扣，下限 0
func computeTotal(subtotal, discount int64) int64 {
	total := subtotal - discount
	if total < 0 {
		total = 0
	}
	return total
}

// discountOf 还原订单上已存的折扣表示：
// 有百分比按百分比重新求值，否则按固定金额处理。
func discountOf(order *models.Order) Discount {
	if order == nil {
		return FixedDiscount(0)
	}
	if order.DiscountPercentage > 0 {
		return PercentageDiscount(order.DiscountPercentage)
	}
	return FixedDiscount(order.Discount)
}
