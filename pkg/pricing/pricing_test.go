package pricing

import (
	"testing"
	"time"

	"cooldeal/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var today = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

func day(offset int) *time.Time {
	t := today.AddDate(0, 0, offset)
	return &t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPromotionActive(t *testing.T) {
	cases := []struct {
		name       string
		start, end *time.Time
		want       bool
	}{
		{"inside window", day(-1), day(1), true},
		{"single day window", day(0), day(0), true},
		{"starts tomorrow", day(1), day(3), false},
		{"ended yesterday", day(-3), day(-1), false},
		{"missing start", nil, day(1), false},
		{"missing end", day(-1), nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PromotionActive(tc.start, tc.end, today))
		})
	}
}

func TestUnitPrice(t *testing.T) {
	p := entity.Product{Price: dec("100"), PromoPrice: dec("80"), PromoStart: day(-1), PromoEnd: day(1)}
	assert.True(t, UnitPrice(&p, today).Equal(dec("80")))

	p.PromoEnd = day(-1)
	assert.True(t, UnitPrice(&p, today).Equal(dec("100")), "expired promo falls back to price")

	p.PromoEnd = day(1)
	p.PromoPrice = decimal.Zero
	assert.True(t, UnitPrice(&p, today).Equal(dec("100")), "zero promo price is ignored")
}

func TestCartTotals(t *testing.T) {
	t.Run("inactive promo uses price", func(t *testing.T) {
		c := entity.Cart{Items: []entity.CartItem{{
			Quantity: 2,
			Product:  entity.Product{Price: dec("100"), PromoPrice: dec("80")},
		}}}
		assert.Equal(t, "200", CartTotal(c.Items, today).String())
		assert.Equal(t, "200", TotalWithCoupon(&c, today).String())

		c.Coupon = &entity.Coupon{Reduction: dec("0.1")}
		assert.Equal(t, "180", TotalWithCoupon(&c, today).String())
	})

	t.Run("active promo", func(t *testing.T) {
		it := entity.CartItem{
			Quantity: 3,
			Product:  entity.Product{Price: dec("100"), PromoPrice: dec("60"), PromoStart: day(-1), PromoEnd: day(1)},
		}
		assert.Equal(t, "180", LineTotal(&it, today).String())
	})

	t.Run("several lines", func(t *testing.T) {
		items := []entity.CartItem{
			{Quantity: 1, Product: entity.Product{Price: dec("19.99")}},
			{Quantity: 3, Product: entity.Product{Price: dec("0.35")}},
		}
		assert.Equal(t, "21.04", CartTotal(items, today).String())
	})
}

func TestApplyReduction(t *testing.T) {
	assert.Equal(t, "90", ApplyReduction(dec("100"), dec("0.1")).String())
	assert.Equal(t, "0", ApplyReduction(dec("100"), dec("1.5")).String())
	assert.Equal(t, "100", ApplyReduction(dec("100"), dec("-0.2")).String())
	assert.Equal(t, "66.67", ApplyReduction(dec("100"), dec("0.3333")).String())
}

func TestCouponUsable(t *testing.T) {
	base := entity.Coupon{Active: true, Status: true, ExpiresOn: *day(0), Reduction: dec("0.1")}

	c := base
	assert.True(t, CouponUsable(&c, today), "valid through its last day")

	c = base
	c.ExpiresOn = *day(-1)
	assert.False(t, CouponUsable(&c, today))

	c = base
	c.Active = false
	assert.False(t, CouponUsable(&c, today))

	c = base
	c.MaxUses, c.UsedCount = 2, 2
	assert.False(t, CouponUsable(&c, today))

	c.UsedCount = 1
	assert.True(t, CouponUsable(&c, today))

	assert.False(t, CouponUsable(nil, today))
}

func TestDatesKeepTheirCalendarDay(t *testing.T) {
	west := time.FixedZone("UTC-5", -5*3600)
	east := time.FixedZone("UTC+9", 9*3600)
	end, err := time.Parse(time.DateOnly, "2026-10-17")
	assert.NoError(t, err)
	start, err := time.Parse(time.DateOnly, "2026-10-10")
	assert.NoError(t, err)

	c := entity.Coupon{Active: true, Status: true, ExpiresOn: end}
	for _, loc := range []*time.Location{west, time.UTC, east} {
		lastDay := time.Date(2026, 10, 17, 10, 0, 0, 0, loc)
		assert.True(t, CouponUsable(&c, lastDay), "last day in %s", loc)
		assert.False(t, CouponUsable(&c, lastDay.AddDate(0, 0, 1)), "day after in %s", loc)

		assert.True(t, PromotionActive(&start, &end, lastDay), "promo last day in %s", loc)
		firstDay := time.Date(2026, 10, 10, 8, 0, 0, 0, loc)
		assert.True(t, PromotionActive(&start, &end, firstDay), "promo first day in %s", loc)
		assert.False(t, PromotionActive(&start, &end, firstDay.AddDate(0, 0, -1)), "promo day before in %s", loc)
	}
}

func TestHasItems(t *testing.T) {
	assert.False(t, HasItems(nil))
	assert.False(t, HasItems(&entity.Cart{}))
	assert.True(t, HasItems(&entity.Cart{Items: []entity.CartItem{{Quantity: 1}}}))
}
