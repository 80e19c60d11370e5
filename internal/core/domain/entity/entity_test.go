package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromoDiscount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		percent  int64
		subtotal int64
		want     int64
	}{
		{percent: 10, subtotal: 44000, want: 4400},
		{percent: 10, subtotal: 999, want: 99},
		{percent: 20, subtotal: 15001, want: 3000},
		{percent: 0, subtotal: 50000, want: 0},
		{percent: 100, subtotal: 35000, want: 35000},
		{percent: 150, subtotal: 35000, want: 35000},
		{percent: 10, subtotal: math.MaxInt64, want: 922337203685477580},
		{percent: 99, subtotal: math.MaxInt64, want: 9131138316486228048},
	}
	for _, tt := range tests {
		got := Promo{DiscountPercent: tt.percent}.Discount(tt.subtotal)
		assert.Equal(t, tt.want, got, "%d%% of %d", tt.percent, tt.subtotal)
	}
}

func TestMenuItemPatchApply(t *testing.T) {
	t.Parallel()

	item := MenuItem{ID: "m1", Name: "Nasi Uduk Betawi", Category: "Makanan", Price: 22000, Stock: 40}
	name := "Nasi Uduk Spesial"
	stock := 0

	got := MenuItemPatch{Name: &name, Stock: &stock}.Apply(item)

	assert.Equal(t, "m1", got.ID)
	assert.Equal(t, "Nasi Uduk Spesial", got.Name)
	assert.Equal(t, "Makanan", got.Category)
	assert.Equal(t, int64(22000), got.Price)
	assert.Equal(t, 0, got.Stock)
	assert.Equal(t, "Nasi Uduk Betawi", item.Name, "input item is untouched")
}

func TestOrderPending(t *testing.T) {
	t.Parallel()

	assert.True(t, Order{Status: StatusAwaitingConfirmation}.Pending())
	assert.True(t, Order{Status: "Diantar"}.Pending())
	assert.False(t, Order{Status: StatusDone}.Pending())
}
