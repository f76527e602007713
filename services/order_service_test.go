package services

import (
	"context"
	"fmt"
	"testing"

	"cooldeal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placeOrder checks out one line of each product for the customer.
func placeOrder(t *testing.T, w *world, u *entity.User, txID string, products ...*entity.Product) *entity.Order {
	t.Helper()
	carts := w.cartService()
	me := CartOwner{SessionKey: "s-" + u.Username, UserID: u.ID}
	cart, err := carts.Resolve(me)
	require.NoError(t, err)
	for _, p := range products {
		require.NoError(t, carts.Add(me, cart.ID, p.ID, 1))
	}
	out, err := w.checkoutService().Checkout(context.Background(), me, CheckoutIn{CartID: cart.ID, TransactionID: txID})
	require.NoError(t, err)
	return out.Order
}

func TestCustomerOrders(t *testing.T) {
	w := newWorld(t)
	svc := w.orderService()
	_, est := w.seller(t, "bob")
	pizza := w.product(t, est, "Pizza Royale", "100", "0", nil)
	sushi := w.product(t, est, "Sushi Box", "50", "0", nil)
	u, _ := w.customer(t, "awa")
	other, _ := w.customer(t, "eve")

	for i := 1; i <= 11; i++ {
		placeOrder(t, w, u, fmt.Sprintf("AWA-%02d", i), sushi)
	}
	royal := placeOrder(t, w, u, "AWA-PIZZA", pizza)
	foreign := placeOrder(t, w, other, "EVE-01", pizza)

	t.Run("paginates newest first", func(t *testing.T) {
		page, err := svc.ListForCustomer(u.ID, "", 1)
		require.NoError(t, err)
		assert.EqualValues(t, 12, page.Total)
		assert.Equal(t, 2, page.Pages)
		require.Len(t, page.Items, 10)
		assert.Equal(t, "AWA-PIZZA", page.Items[0].TransactionID)

		page2, err := svc.ListForCustomer(u.ID, "", 2)
		require.NoError(t, err)
		assert.Len(t, page2.Items, 2)
	})

	t.Run("searches transaction id and product name", func(t *testing.T) {
		page, err := svc.ListForCustomer(u.ID, "royale", 1)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, royal.ID, page.Items[0].ID)

		page, err = svc.ListForCustomer(u.ID, "awa-0", 1)
		require.NoError(t, err)
		assert.EqualValues(t, 9, page.Total)
	})

	t.Run("recent orders", func(t *testing.T) {
		recent, err := svc.RecentForCustomer(royal.CustomerID)
		require.NoError(t, err)
		assert.Len(t, recent, RecentOrders)
	})

	t.Run("detail is limited to the owner", func(t *testing.T) {
		o, err := svc.DetailForCustomer(u.ID, royal.ID)
		require.NoError(t, err)
		require.Len(t, o.Items, 1)
		assert.Equal(t, "Pizza Royale", o.Items[0].Product.Name)

		_, err = svc.DetailForCustomer(u.ID, foreign.ID)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("deleted products still show on past orders", func(t *testing.T) {
		require.NoError(t, w.db.Delete(&entity.Product{}, pizza.ID).Error)
		o, err := svc.DetailForCustomer(u.ID, royal.ID)
		require.NoError(t, err)
		assert.Equal(t, "Pizza Royale", o.Items[0].Product.Name)
	})
}

func TestSellerOrders(t *testing.T) {
	w := newWorld(t)
	svc := w.orderService()
	bobUser, bob := w.seller(t, "bob")
	carlUser, carl := w.seller(t, "carl")
	pizza := w.product(t, bob, "Pizza", "100", "0", nil)
	spa := w.product(t, carl, "Spa", "300", "0", nil)
	u, _ := w.customer(t, "awa")

	mixed := placeOrder(t, w, u, "MIX-1", pizza, spa)
	carlOnly := placeOrder(t, w, u, "CARL-1", spa)

	t.Run("lists orders holding the seller's products", func(t *testing.T) {
		page, err := svc.ListForSeller(bobUser.ID, "", 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "MIX-1", page.Items[0].TransactionID)
		assert.Equal(t, entity.OrderPending, page.Items[0].Status)
		assert.Equal(t, "Awa Koné", page.Items[0].CustomerName)

		page, err = svc.ListForSeller(carlUser.ID, "", 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Total)
	})

	t.Run("status filter", func(t *testing.T) {
		page, err := svc.ListForSeller(carlUser.ID, entity.OrderPaid, 1, 10)
		require.NoError(t, err)
		assert.Empty(t, page.Items)

		page, err = svc.ListForSeller(carlUser.ID, "Shipped", 1, 10)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})

	t.Run("detail shows only the seller's lines", func(t *testing.T) {
		o, err := svc.DetailForSeller(bobUser.ID, mixed.ID)
		require.NoError(t, err)
		require.Len(t, o.Items, 1)
		assert.Equal(t, pizza.ID, o.Items[0].ProductID)

		_, err = svc.DetailForSeller(bobUser.ID, carlOnly.ID)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("transitions", func(t *testing.T) {
		assert.ErrorIs(t, svc.SellerDeliver(carlUser.ID, carlOnly.ID), ErrInvalidTransition)
		require.NoError(t, svc.SellerMarkPaid(carlUser.ID, carlOnly.ID))
		var paid entity.Order
		require.NoError(t, w.db.First(&paid, carlOnly.ID).Error)
		require.NotNil(t, paid.PaidAt)
		assert.True(t, paid.PaidAt.Equal(now))
		assert.ErrorIs(t, svc.SellerCancel(carlUser.ID, carlOnly.ID), ErrInvalidTransition)
		require.NoError(t, svc.SellerDeliver(carlUser.ID, carlOnly.ID))

		o, err := svc.DetailForSeller(carlUser.ID, carlOnly.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderDelivered, o.OrderStatus.StatusName)

		require.NoError(t, svc.SellerCancel(bobUser.ID, mixed.ID))
		assert.ErrorIs(t, svc.SellerMarkPaid(bobUser.ID, carlOnly.ID), ErrOrderNotFound)
	})

	t.Run("non sellers are refused", func(t *testing.T) {
		_, err := svc.ListForSeller(u.ID, "", 1, 10)
		assert.ErrorIs(t, err, ErrNotSeller)
	})
}

func TestLoadStatusIDsNeedsEveryStatus(t *testing.T) {
	w := newWorld(t)
	assert.NotZero(t, w.status.Cancelled)
	assert.NotEqual(t, w.status.Paid, w.status.Pending)

	require.NoError(t, w.db.Unscoped().Where("status_name = ?", entity.OrderCancelled).Delete(&entity.OrderStatus{}).Error)
	_, err := LoadStatusIDs(w.orders)
	assert.ErrorContains(t, err, entity.OrderCancelled)
}
