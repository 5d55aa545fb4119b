package sqlstore

import (
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perishables/internal/domain"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"", "%%"},
		{"Apple", "%apple%"},
		{"50%", "%50!%%"},
		{"a_b", "%a!_b%"},
		{"wow!", "%wow!!%"},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPattern(tt.term))
		})
	}
}

func TestQualifiedItemColumns(t *testing.T) {
	assert.Equal(t,
		"i.id, i.name, i.quantity, i.price, i.storage_location, i.expiry_date, i.added_date",
		qualifiedItemColumns("i"))
}

func TestNullDateHelpers(t *testing.T) {
	d, err := nullToDatePtr(sql.NullString{})
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = nullToDatePtr(sql.NullString{String: "2023-11-15", Valid: true})
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "2023-11-15", d.String())

	_, err = nullToDatePtr(sql.NullString{String: "15/11/2023", Valid: true})
	assert.Error(t, err)

	assert.False(t, datePtrToNull(nil).Valid)
	assert.False(t, datePtrToNull(&domain.Date{}).Valid)
	assert.Equal(t, sql.NullString{String: "2023-11-15", Valid: true},
		datePtrToNull(domain.DatePtr(domain.MustParseDate("2023-11-15"))))
}

func TestItemRow_ToDomain(t *testing.T) {
	row := itemRow{
		ID:              7,
		Name:            "Apple",
		Quantity:        100,
		Price:           0.5,
		StorageLocation: "Cold Storage A",
		ExpiryDate:      sql.NullString{String: "2023-12-31", Valid: true},
		AddedDate:       "2023-11-10",
	}

	item, err := row.toDomain()
	require.NoError(t, err)
	assert.Equal(t, int64(7), item.ID)
	assert.True(t, decimal.RequireFromString("0.50").Equal(item.Price))
	require.NotNil(t, item.ExpiryDate)
	assert.Equal(t, "2023-12-31", item.ExpiryDate.String())
	assert.Equal(t, "2023-11-10", item.AddedDate.String())

	row.AddedDate = "yesterday"
	_, err = row.toDomain()
	assert.Error(t, err)
}

func TestItemWriteArgs(t *testing.T) {
	in := domain.ItemInput{
		Name:     "  Mango ",
		Quantity: 30,
		Price:    decimal.RequireFromString("1.50"),
	}
	args := itemWriteArgs(in)
	require.Len(t, args, 5)
	assert.Equal(t, "Mango", args[0])
	assert.Equal(t, 30, args[1])
	assert.Equal(t, 1.5, args[2])
	assert.Equal(t, "", args[3])
	assert.Equal(t, sql.NullString{}, args[4])
}
