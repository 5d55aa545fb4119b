package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"perishables/internal/domain"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlSnapshot is the YAML document layout
type yamlSnapshot struct {
	Categories []string   `yaml:"categories,omitempty"`
	Items      []yamlItem `yaml:"items"`
}

// yamlItem keeps price and dates as strings so values survive exactly.
// ID and added date are informational; import assigns new ones.
type yamlItem struct {
	ID              int64    `yaml:"id,omitempty"`
	Name            string   `yaml:"name"`
	Quantity        int      `yaml:"quantity"`
	Price           string   `yaml:"price"`
	StorageLocation string   `yaml:"storage_location,omitempty"`
	ExpiryDate      string   `yaml:"expiry_date,omitempty"`
	AddedDate       string   `yaml:"added_date,omitempty"`
	Categories      []string `yaml:"categories,omitempty"`
}

// Parse imports a snapshot from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Snapshot, error) {
	var ys yamlSnapshot
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&ys); err != nil {
		if err == io.EOF {
			return &domain.Snapshot{Items: []domain.SnapshotItem{}, Categories: []domain.Category{}}, nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	snapshot := &domain.Snapshot{
		Items:      make([]domain.SnapshotItem, 0, len(ys.Items)),
		Categories: make([]domain.Category, 0, len(ys.Categories)),
	}

	for _, name := range ys.Categories {
		snapshot.Categories = append(snapshot.Categories, domain.Category{Name: strings.TrimSpace(name)})
	}

	for i, yi := range ys.Items {
		item, err := yi.toDomain()
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i+1, yi.Name, err)
		}
		snapshot.Items = append(snapshot.Items, item)
	}

	return snapshot, nil
}

func (yi yamlItem) toDomain() (domain.SnapshotItem, error) {
	item := domain.SnapshotItem{
		Item: domain.Item{
			ID:              yi.ID,
			Name:            yi.Name,
			Quantity:        yi.Quantity,
			StorageLocation: yi.StorageLocation,
		},
		Categories: yi.Categories,
	}

	price, err := decimal.NewFromString(strings.TrimSpace(yi.Price))
	if err != nil {
		return item, fmt.Errorf("price %q: %w", yi.Price, err)
	}
	item.Price = price

	if yi.ExpiryDate != "" {
		d, err := domain.ParseDate(yi.ExpiryDate)
		if err != nil {
			return item, err
		}
		item.ExpiryDate = &d
	}
	if yi.AddedDate != "" {
		d, err := domain.ParseDate(yi.AddedDate)
		if err != nil {
			return item, err
		}
		item.AddedDate = d
	}
	return item, nil
}

// Export writes a snapshot as YAML
func (c *YAMLCodec) Export(snapshot *domain.Snapshot, w io.Writer) error {
	ys := yamlSnapshot{
		Categories: make([]string, 0, len(snapshot.Categories)),
		Items:      make([]yamlItem, 0, len(snapshot.Items)),
	}

	for _, category := range snapshot.Categories {
		ys.Categories = append(ys.Categories, category.Name)
	}

	for _, item := range snapshot.Items {
		yi := yamlItem{
			ID:              item.ID,
			Name:            item.Name,
			Quantity:        item.Quantity,
			Price:           item.Price.StringFixed(2),
			StorageLocation: item.StorageLocation,
			AddedDate:       item.AddedDate.String(),
			Categories:      item.Categories,
		}
		if item.ExpiryDate != nil {
			yi.ExpiryDate = item.ExpiryDate.String()
		}
		ys.Items = append(ys.Items, yi)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&ys); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
