package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultExpiringWindow is the forward window, in days, for "expiring soon"
const DefaultExpiringWindow = 7

const (
	// MinQuantity is the smallest quantity accepted on create/update
	MinQuantity = 1
)

// MinPrice is the smallest unit price accepted on create/update
var MinPrice = decimal.New(1, -2) // 0.01

// Item is a tracked perishable good
type Item struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	StorageLocation string          `json:"storage_location"`
	ExpiryDate      *Date           `json:"expiry_date,omitempty"`
	AddedDate       Date            `json:"added_date"`
}

// ItemInput holds the mutable fields of an item for create and full-replace updates
type ItemInput struct {
	Name            string          `json:"name"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	StorageLocation string          `json:"storage_location"`
	ExpiryDate      *Date           `json:"expiry_date,omitempty"`
}

// Validate checks the constraints enforced on every item write
func (in ItemInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ValidationErrorf("item name is required")
	}
	if in.Quantity < MinQuantity {
		return ValidationErrorf("quantity must be at least %d, got %d", MinQuantity, in.Quantity)
	}
	if in.Price.LessThan(MinPrice) {
		return ValidationErrorf("price must be at least %s, got %s", MinPrice.StringFixed(2), in.Price.String())
	}
	if in.ExpiryDate != nil && in.ExpiryDate.IsZero() {
		return ValidationErrorf("expiry date must be a valid date or omitted")
	}
	return nil
}

// ValidateQuantity checks a stock adjustment; zero is allowed since stock can run out
func ValidateQuantity(quantity int) error {
	if quantity < 0 {
		return ValidationErrorf("quantity cannot be negative, got %d", quantity)
	}
	return nil
}

// Input returns the mutable fields of the item
func (i Item) Input() ItemInput {
	return ItemInput{
		Name:            i.Name,
		Quantity:        i.Quantity,
		Price:           i.Price,
		StorageLocation: i.StorageLocation,
		ExpiryDate:      i.ExpiryDate,
	}
}

// TotalValue is quantity × unit price
func (i Item) TotalValue() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ExpiresWithin reports whether the expiry date falls in [today, today+days]
func (i Item) ExpiresWithin(today Date, days int) bool {
	if i.ExpiryDate == nil || i.ExpiryDate.IsZero() {
		return false
	}
	exp := *i.ExpiryDate
	return !exp.Before(today) && !exp.After(today.AddDaysCapped(days))
}

// IsExpiringSoon uses the default seven day window
func (i Item) IsExpiringSoon(today Date) bool {
	return i.ExpiresWithin(today, DefaultExpiringWindow)
}

// IsExpired reports whether the expiry date is strictly before today
func (i Item) IsExpired(today Date) bool {
	if i.ExpiryDate == nil || i.ExpiryDate.IsZero() {
		return false
	}
	return i.ExpiryDate.Before(today)
}

// DaysUntilExpiry returns days left until expiry, negative once expired.
// ok is false when the item has no expiry date.
func (i Item) DaysUntilExpiry(today Date) (days int, ok bool) {
	if i.ExpiryDate == nil || i.ExpiryDate.IsZero() {
		return 0, false
	}
	return today.DaysUntil(*i.ExpiryDate), true
}
