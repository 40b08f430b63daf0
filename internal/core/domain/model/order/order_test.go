package order_test

import (
	"testing"
	"time"

	"restaurantops/internal/core/domain/model/kernel"
	"restaurantops/internal/core/domain/model/order"
	"restaurantops/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func burgers() []order.LineItem {
	return []order.LineItem{
		{MenuItemID: "m-1", Name: "Classic Burger", Quantity: 2, UnitPrice: dec("12.99")},
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("should compute the money breakdown", func(t *testing.T) {
		o, err := order.NewOrder("c-1", "Ada Lovelace", order.Takeout, burgers(), dec("3.00"), kernel.DefaultTaxRate)

		require.NoError(t, err)
		assert.True(t, dec("25.98").Equal(o.Items[0].Subtotal))
		assert.True(t, dec("25.98").Equal(o.Subtotal), "subtotal %s", o.Subtotal)
		assert.True(t, dec("2.60").Equal(o.Tax), "tax %s", o.Tax)
		assert.True(t, dec("3.00").Equal(o.Tip))
		assert.True(t, dec("31.58").Equal(o.Total), "total %s", o.Total)
		assert.Empty(t, o.ID)
		assert.Empty(t, o.Status)
	})

	t.Run("should sum several lines", func(t *testing.T) {
		items := append(burgers(), order.LineItem{MenuItemID: "m-2", Name: "Fries", Quantity: 1, UnitPrice: dec("4.50")})

		o, err := order.NewOrder("c-1", "Ada", order.DineIn, items, decimal.Zero, kernel.DefaultTaxRate)

		require.NoError(t, err)
		assert.True(t, dec("30.48").Equal(o.Subtotal))
		assert.True(t, dec("3.05").Equal(o.Tax))
		assert.True(t, dec("33.53").Equal(o.Total))
	})

	t.Run("should not share the caller's item slice", func(t *testing.T) {
		items := burgers()

		o, err := order.NewOrder("c-1", "Ada", order.Delivery, items, decimal.Zero, kernel.DefaultTaxRate)
		require.NoError(t, err)
		items[0].Quantity = 99

		assert.Equal(t, 2, o.Items[0].Quantity)
	})

	t.Run("should fail without items", func(t *testing.T) {
		_, err := order.NewOrder("c-1", "Ada", order.Takeout, nil, decimal.Zero, kernel.DefaultTaxRate)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should join every validation error", func(t *testing.T) {
		items := []order.LineItem{{MenuItemID: "", Quantity: 0, UnitPrice: dec("-1")}}

		_, err := order.NewOrder("c-1", " ", "drive_through", items, dec("-2"), kernel.DefaultTaxRate)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "customerName")
		assert.Contains(t, err.Error(), "drive_through")
		assert.Contains(t, err.Error(), "tip")
		assert.Contains(t, err.Error(), "items[0].menuItemId")
		assert.Contains(t, err.Error(), "items[0].quantity")
		assert.Contains(t, err.Error(), "items[0].unitPrice")
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	newOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder("c-1", "Ada", order.Takeout, burgers(), dec("3.00"), kernel.DefaultTaxRate)
		require.NoError(t, err)
		o.Init("o-1", now)
		return &o
	}

	t.Run("init sets identity status and estimate", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, "o-1", o.Key())
		assert.Equal(t, order.Pending, o.State())
		assert.Equal(t, now, o.CreatedAt)
		require.NotNil(t, o.EstimatedCompletion)
		assert.Equal(t, now.Add(20*time.Minute), *o.EstimatedCompletion)
	})

	t.Run("entering completed stamps completion", func(t *testing.T) {
		o := newOrder(t)
		later := now.Add(35 * time.Minute)

		o.Enter(order.Completed, later)

		assert.Equal(t, order.Completed, o.Status)
		assert.Equal(t, later, o.UpdatedAt)
		require.NotNil(t, o.CompletedAt)
		assert.Equal(t, later, *o.CompletedAt)
		assert.True(t, o.IsTerminal())
	})

	t.Run("clone does not alias items or timestamps", func(t *testing.T) {
		o := newOrder(t)

		cp := o.Clone()
		cp.Items[0].Quantity = 5
		*cp.EstimatedCompletion = now

		assert.Equal(t, 2, o.Items[0].Quantity)
		assert.Equal(t, now.Add(20*time.Minute), *o.EstimatedCompletion)
	})

	t.Run("validate rejects an independently mutated total", func(t *testing.T) {
		o := newOrder(t)
		o.Total = dec("10.00")

		err := o.Validate()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "total")
	})

	t.Run("validate rejects a stale line subtotal", func(t *testing.T) {
		o := newOrder(t)
		o.Items[0].Quantity = 3

		err := o.Validate()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "items[0].subtotal")
	})

	t.Run("validate rejects unknown status", func(t *testing.T) {
		o := newOrder(t)
		o.Status = "SHIPPED"

		require.ErrorIs(t, o.Validate(), errs.ErrUnknownState)
	})

	t.Run("validate rejects nil order", func(t *testing.T) {
		var o *order.Order

		require.ErrorIs(t, o.Validate(), errs.ErrValueIsRequired)
	})
}

func TestFlow(t *testing.T) {
	tests := []struct {
		from, to order.Status
		valid    bool
	}{
		{order.Pending, order.Confirmed, true},
		{order.Confirmed, order.Preparing, true},
		{order.Preparing, order.Ready, true},
		{order.Ready, order.Completed, true},
		{order.Pending, order.Cancelled, true},
		{order.Ready, order.Cancelled, true},
		{order.Pending, order.Preparing, false},
		{order.Completed, order.Cancelled, false},
		{order.Cancelled, order.Pending, false},
		{order.Ready, order.Preparing, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.valid, order.Flow.IsValid(tt.from, tt.to))
		})
	}

	next, ok, err := order.Flow.Next(order.Preparing)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, order.Ready, next)
	assert.Equal(t, order.Pending, order.Flow.Initial())
}
