package domain

import "github.com/shopspring/decimal"

// Inventory is an in-memory view over a set of items
type Inventory struct {
	Items []Item `json:"items"`
}

// NewInventory wraps items in an Inventory
func NewInventory(items []Item) *Inventory {
	if items == nil {
		items = []Item{}
	}
	return &Inventory{Items: items}
}

// TotalValue sums quantity × price over every item
func (inv *Inventory) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(item.TotalValue())
	}
	return total
}

// TotalQuantity sums the quantities of every item
func (inv *Inventory) TotalQuantity() int {
	total := 0
	for _, item := range inv.Items {
		total += item.Quantity
	}
	return total
}

// ExpiringSoon returns items expiring in [today, today+days], in inventory order
func (inv *Inventory) ExpiringSoon(today Date, days int) []Item {
	var out []Item
	for _, item := range inv.Items {
		if item.ExpiresWithin(today, days) {
			out = append(out, item)
		}
	}
	return out
}

// Expired returns items whose expiry date has passed
func (inv *Inventory) Expired(today Date) []Item {
	var out []Item
	for _, item := range inv.Items {
		if item.IsExpired(today) {
			out = append(out, item)
		}
	}
	return out
}

// Find returns the item with the given ID
func (inv *Inventory) Find(id int64) (Item, bool) {
	for _, item := range inv.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Stats summarises an inventory for a given day
type Stats struct {
	ItemCount     int             `json:"item_count"`
	TotalQuantity int             `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	ExpiringSoon  int             `json:"expiring_soon"`
	Expired       int             `json:"expired"`
	WindowDays    int             `json:"window_days"`
	Categories    []CategoryCount `json:"categories"`
	AsOf          Date            `json:"as_of"`
}

// Stats computes the summary for today with the given expiring window
func (inv *Inventory) Stats(today Date, days int, counts []CategoryCount) Stats {
	if counts == nil {
		counts = []CategoryCount{}
	}
	return Stats{
		ItemCount:     len(inv.Items),
		TotalQuantity: inv.TotalQuantity(),
		TotalValue:    inv.TotalValue(),
		ExpiringSoon:  len(inv.ExpiringSoon(today, days)),
		Expired:       len(inv.Expired(today)),
		WindowDays:    days,
		Categories:    counts,
		AsOf:          today,
	}
}
