package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perishables/internal/domain"
)

func sampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Categories: []domain.Category{{ID: 1, Name: "Citrus"}, {ID: 2, Name: "Berries"}},
		Items: []domain.SnapshotItem{
			{
				Item: domain.Item{
					ID:              1,
					Name:            "Orange",
					Quantity:        80,
					Price:           decimal.RequireFromString("0.6"),
					StorageLocation: "Cold Storage B",
					ExpiryDate:      domain.DatePtr(domain.MustParseDate("2023-12-20")),
					AddedDate:       domain.MustParseDate("2023-11-10"),
				},
				Categories: []string{"Citrus"},
			},
			{
				Item: domain.Item{
					ID:        2,
					Name:      "Honey",
					Quantity:  3,
					Price:     decimal.RequireFromString("7.25"),
					AddedDate: domain.MustParseDate("2023-11-10"),
				},
				Categories: []string{},
			},
		},
	}
}

func TestForFormat(t *testing.T) {
	for _, format := range []string{"json", "yaml", "yml"} {
		c, err := ForFormat(format)
		require.NoError(t, err, format)
		assert.NotNil(t, c)
	}
	_, err := ForFormat("csv")
	assert.Error(t, err)

	assert.Equal(t, "application/yaml", ContentType("yaml"))
	assert.Equal(t, "application/json", ContentType("json"))
}

func TestYAMLExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLCodec().Export(sampleSnapshot(), &buf))

	out := buf.String()
	assert.Contains(t, out, "price: \"0.60\"")
	assert.Contains(t, out, "expiry_date: \"2023-12-20\"")
	assert.Contains(t, out, "- Citrus")
	assert.NotContains(t, out, "expiry_date: \"\"")
}

func TestYAMLRoundTrip(t *testing.T) {
	c := NewYAMLCodec()
	var buf bytes.Buffer
	require.NoError(t, c.Export(sampleSnapshot(), &buf))

	got, err := c.Parse(&buf)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, []string{"Citrus", "Berries"}, got.CategoryNames())

	orange := got.Items[0]
	assert.Equal(t, "Orange", orange.Name)
	assert.True(t, decimal.RequireFromString("0.60").Equal(orange.Price))
	require.NotNil(t, orange.ExpiryDate)
	assert.Equal(t, "2023-12-20", orange.ExpiryDate.String())
	assert.Equal(t, []string{"Citrus"}, orange.Categories)

	assert.Nil(t, got.Items[1].ExpiryDate)
}

func TestYAMLParse_HandWritten(t *testing.T) {
	doc := `
items:
  - name: Kiwi
    quantity: 12
    price: 0.45
    expiry_date: 2023-11-20
    categories: [Exotic]
`
	got, err := NewYAMLCodec().Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, decimal.RequireFromString("0.45").Equal(got.Items[0].Price))
	assert.Equal(t, "2023-11-20", got.Items[0].ExpiryDate.String())
	assert.Equal(t, []string{"Exotic"}, got.CategoryNames())
}

func TestYAMLParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad price", "items:\n  - name: Kiwi\n    quantity: 1\n    price: cheap\n"},
		{"bad date", "items:\n  - name: Kiwi\n    quantity: 1\n    price: \"1\"\n    expiry_date: 20/11/2023\n"},
		{"not yaml", "items: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAMLCodec().Parse(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestYAMLParse_Empty(t *testing.T) {
	got, err := NewYAMLCodec().Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestJSONRoundTrip(t *testing.T) {
	c := NewJSONCodec()
	var buf bytes.Buffer
	require.NoError(t, c.Export(sampleSnapshot(), &buf))
	assert.Contains(t, buf.String(), `"expiry_date": "2023-12-20"`)
	assert.Equal(t, 1, strings.Count(buf.String(), `"expiry_date"`))

	got, err := c.Parse(&buf)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Orange", got.Items[0].Name)
	assert.True(t, decimal.RequireFromString("0.6").Equal(got.Items[0].Price))
	assert.Equal(t, []string{"Citrus"}, got.Items[0].Categories)
	assert.Nil(t, got.Items[1].ExpiryDate)
}
