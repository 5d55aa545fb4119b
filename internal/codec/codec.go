package codec

import (
	"fmt"
	"io"

	"perishables/internal/domain"
)

// Importer interface for importing inventory snapshots from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Snapshot, error)
	Format() string
}

// Exporter interface for exporting inventory snapshots to various formats
type Exporter interface {
	Export(snapshot *domain.Snapshot, w io.Writer) error
	Format() string
}

// Codec both imports and exports one format
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec for a format name
func ForFormat(format string) (Codec, error) {
	switch format {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want json or yaml)", format)
	}
}

// ContentType is the HTTP media type for a format
func ContentType(format string) string {
	switch format {
	case "yaml", "yml":
		return "application/yaml"
	default:
		return "application/json"
	}
}
