package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInventory() *Inventory {
	return NewInventory([]Item{
		{ID: 1, Name: "Apple", Quantity: 100, Price: decimal.RequireFromString("0.50"), ExpiryDate: DatePtr(NewDate(2023, 12, 31))},
		{ID: 2, Name: "Banana", Quantity: 150, Price: decimal.RequireFromString("0.30"), ExpiryDate: DatePtr(NewDate(2023, 11, 15))},
		{ID: 3, Name: "Orange", Quantity: 80, Price: decimal.RequireFromString("0.60"), ExpiryDate: DatePtr(NewDate(2023, 12, 20))},
		{ID: 4, Name: "Strawberry", Quantity: 50, Price: decimal.RequireFromString("1.20"), ExpiryDate: DatePtr(NewDate(2023, 11, 9))},
		{ID: 5, Name: "Mango", Quantity: 30, Price: decimal.RequireFromString("1.50")},
	})
}

func TestInventoryTotals(t *testing.T) {
	inv := sampleInventory()

	// 50 + 45 + 48 + 60 + 45
	assert.True(t, inv.TotalValue().Equal(decimal.RequireFromString("248")), "got %s", inv.TotalValue())
	assert.Equal(t, 410, inv.TotalQuantity())
}

func TestInventoryExpiryViews(t *testing.T) {
	inv := sampleInventory()
	today := NewDate(2023, 11, 10)

	soon := inv.ExpiringSoon(today, DefaultExpiringWindow)
	require.Len(t, soon, 1)
	assert.Equal(t, "Banana", soon[0].Name)

	expired := inv.Expired(today)
	require.Len(t, expired, 1)
	assert.Equal(t, "Strawberry", expired[0].Name)

	assert.Len(t, inv.ExpiringSoon(today, 51), 3)
}

func TestInventoryFind(t *testing.T) {
	inv := sampleInventory()

	item, ok := inv.Find(3)
	assert.True(t, ok)
	assert.Equal(t, "Orange", item.Name)

	_, ok = inv.Find(99)
	assert.False(t, ok)
}

func TestInventoryStats(t *testing.T) {
	counts := []CategoryCount{{CategoryID: 1, Name: "Citrus", Items: 1}}
	stats := sampleInventory().Stats(NewDate(2023, 11, 10), DefaultExpiringWindow, counts)

	assert.Equal(t, 5, stats.ItemCount)
	assert.Equal(t, 410, stats.TotalQuantity)
	assert.True(t, stats.TotalValue.Equal(decimal.NewFromInt(248)))
	assert.Equal(t, 1, stats.ExpiringSoon)
	assert.Equal(t, 1, stats.Expired)
	assert.Equal(t, DefaultExpiringWindow, stats.WindowDays)
	assert.Equal(t, counts, stats.Categories)
	assert.Equal(t, "2023-11-10", stats.AsOf.String())
}

func TestEmptyInventoryStats(t *testing.T) {
	stats := NewInventory(nil).Stats(NewDate(2023, 11, 10), 7, nil)

	assert.Zero(t, stats.ItemCount)
	assert.True(t, stats.TotalValue.IsZero())
	assert.NotNil(t, stats.Categories)
}
