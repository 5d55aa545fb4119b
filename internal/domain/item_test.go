package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemInputValidate(t *testing.T) {
	valid := ItemInput{
		Name:            "Apple",
		Quantity:        1,
		Price:           decimal.RequireFromString("0.01"),
		StorageLocation: "Cold Storage A",
	}

	tests := []struct {
		name    string
		mutate  func(in *ItemInput)
		wantErr bool
	}{
		{name: "minimum valid row", mutate: func(in *ItemInput) {}},
		{name: "with expiry", mutate: func(in *ItemInput) { in.ExpiryDate = DatePtr(NewDate(2023, 11, 15)) }},
		{name: "empty location is allowed", mutate: func(in *ItemInput) { in.StorageLocation = "" }},
		{name: "empty name", mutate: func(in *ItemInput) { in.Name = "" }, wantErr: true},
		{name: "whitespace name", mutate: func(in *ItemInput) { in.Name = "   " }, wantErr: true},
		{name: "zero quantity", mutate: func(in *ItemInput) { in.Quantity = 0 }, wantErr: true},
		{name: "negative quantity", mutate: func(in *ItemInput) { in.Quantity = -3 }, wantErr: true},
		{name: "price below minimum", mutate: func(in *ItemInput) { in.Price = decimal.RequireFromString("0.009") }, wantErr: true},
		{name: "zero price", mutate: func(in *ItemInput) { in.Price = decimal.Zero }, wantErr: true},
		{name: "zero expiry pointer", mutate: func(in *ItemInput) { in.ExpiryDate = &Date{} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation), "expected ErrValidation, got %v", err)
		})
	}
}

func TestValidateQuantity(t *testing.T) {
	assert.NoError(t, ValidateQuantity(0))
	assert.NoError(t, ValidateQuantity(12))
	assert.ErrorIs(t, ValidateQuantity(-1), ErrValidation)
}

func TestItemTotalValue(t *testing.T) {
	item := Item{Quantity: 150, Price: decimal.RequireFromString("0.30")}
	assert.True(t, item.TotalValue().Equal(decimal.RequireFromString("45")), "got %s", item.TotalValue())

	empty := Item{Quantity: 0, Price: decimal.RequireFromString("1.20")}
	assert.True(t, empty.TotalValue().IsZero())
}

func TestItemExpiry(t *testing.T) {
	today := NewDate(2023, 11, 10)

	tests := []struct {
		name     string
		expiry   *Date
		soon     bool
		expired  bool
		daysLeft int
		hasDays  bool
	}{
		{name: "no expiry", expiry: nil},
		{name: "expires today", expiry: DatePtr(today), soon: true, daysLeft: 0, hasDays: true},
		{name: "window upper bound inclusive", expiry: DatePtr(today.AddDays(7)), soon: true, daysLeft: 7, hasDays: true},
		{name: "just outside window", expiry: DatePtr(today.AddDays(8)), daysLeft: 8, hasDays: true},
		{name: "yesterday", expiry: DatePtr(today.AddDays(-1)), expired: true, daysLeft: -1, hasDays: true},
		{name: "far future", expiry: DatePtr(NewDate(2023, 12, 31)), daysLeft: 51, hasDays: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{Name: "Apple", ExpiryDate: tt.expiry}
			assert.Equal(t, tt.soon, item.IsExpiringSoon(today))
			assert.Equal(t, tt.expired, item.IsExpired(today))

			days, ok := item.DaysUntilExpiry(today)
			assert.Equal(t, tt.hasDays, ok)
			assert.Equal(t, tt.daysLeft, days)
		})
	}
}

func TestItemExpiresWithinCustomWindow(t *testing.T) {
	today := NewDate(2023, 11, 10)
	item := Item{ExpiryDate: DatePtr(NewDate(2023, 11, 12))}

	assert.False(t, item.ExpiresWithin(today, 1))
	assert.True(t, item.ExpiresWithin(today, 2))
	assert.True(t, item.ExpiresWithin(today, 3285000))
	assert.False(t, item.ExpiresWithin(NewDate(2023, 11, 13), 30), "already expired items are not expiring soon")
}

func TestItemDerivedPropertiesFollowTheClock(t *testing.T) {
	item := Item{ExpiryDate: DatePtr(NewDate(2023, 11, 15))}

	assert.False(t, item.IsExpiringSoon(NewDate(2023, 11, 1)))
	assert.True(t, item.IsExpiringSoon(NewDate(2023, 11, 8)))
	assert.True(t, item.IsExpired(NewDate(2023, 11, 16)))
}

func TestItemInputRoundTrip(t *testing.T) {
	item := Item{
		ID:              4,
		Name:            "Strawberry",
		Quantity:        50,
		Price:           decimal.RequireFromString("1.20"),
		StorageLocation: "Freezer",
		ExpiryDate:      DatePtr(NewDate(2023, 11, 10)),
		AddedDate:       NewDate(2023, 11, 1),
	}

	in := item.Input()
	assert.Equal(t, item.Name, in.Name)
	assert.Equal(t, item.Quantity, in.Quantity)
	assert.True(t, item.Price.Equal(in.Price))
	assert.Equal(t, item.StorageLocation, in.StorageLocation)
	assert.Equal(t, item.ExpiryDate, in.ExpiryDate)
}

func TestValidateCategoryName(t *testing.T) {
	assert.NoError(t, ValidateCategoryName("Citrus"))
	assert.ErrorIs(t, ValidateCategoryName(""), ErrValidation)
	assert.ErrorIs(t, ValidateCategoryName(" \t"), ErrValidation)
}

func TestErrorKinds(t *testing.T) {
	assert.ErrorIs(t, ErrDuplicateName, ErrValidation, "duplicate names are validation failures")
	assert.True(t, IsKnownKind(ErrDuplicateName))
	assert.True(t, IsKnownKind(ErrStorageUnavailable))
	assert.False(t, IsKnownKind(errors.New("disk on fire")))
}
