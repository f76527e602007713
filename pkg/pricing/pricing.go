// Package pricing holds the cart arithmetic: promotion windows, line and cart
// totals, and coupon reductions. Amounts are decimals rounded to cents.
package pricing

import (
	"time"

	"cooldeal/entity"

	"github.com/shopspring/decimal"
)

const places = 2

var one = decimal.NewFromInt(1)

// Day is the calendar date t carries in its own zone, as a UTC midnight.
// Stored bounds are date-only values; their date must not shift with the
// server's zone.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PromotionActive reports whether today falls inside [start, end], compared
// by calendar day. Both bounds are required.
func PromotionActive(start, end *time.Time, today time.Time) bool {
	if start == nil || end == nil {
		return false
	}
	d := Day(today)
	return !d.Before(Day(*start)) && !d.After(Day(*end))
}

// UnitPrice is the promo price while the promotion runs and the promo price
// is set, the regular price otherwise.
func UnitPrice(p *entity.Product, today time.Time) decimal.Decimal {
	if PromotionActive(p.PromoStart, p.PromoEnd, today) && p.PromoPrice.IsPositive() {
		return p.PromoPrice.Round(places)
	}
	return p.Price.Round(places)
}

func LineTotal(it *entity.CartItem, today time.Time) decimal.Decimal {
	return UnitPrice(&it.Product, today).Mul(decimal.NewFromInt(int64(it.Quantity))).Round(places)
}

func CartTotal(items []entity.CartItem, today time.Time) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(LineTotal(&items[i], today))
	}
	return total.Round(places)
}

// ApplyReduction returns total * (1 - reduction); reduction is clamped to [0, 1].
func ApplyReduction(total, reduction decimal.Decimal) decimal.Decimal {
	if reduction.IsNegative() {
		reduction = decimal.Zero
	}
	if reduction.GreaterThan(one) {
		reduction = one
	}
	return total.Mul(one.Sub(reduction)).Round(places)
}

// TotalWithCoupon is the cart total after the attached coupon, or the plain
// total when none is attached.
func TotalWithCoupon(c *entity.Cart, today time.Time) decimal.Decimal {
	total := CartTotal(c.Items, today)
	if c.Coupon == nil {
		return total
	}
	return ApplyReduction(total, c.Coupon.Reduction)
}

// CouponUsable: active, enabled, not past its end date, uses left.
func CouponUsable(c *entity.Coupon, today time.Time) bool {
	if c == nil || !c.Active || !c.Status {
		return false
	}
	if Day(today).After(Day(c.ExpiresOn)) {
		return false
	}
	return c.MaxUses == 0 || c.UsedCount < c.MaxUses
}

func HasItems(c *entity.Cart) bool { return c != nil && len(c.Items) > 0 }
