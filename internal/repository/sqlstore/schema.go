package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"perishables/internal/domain"
)

// Initialize provisions the schema. Every statement is "create if not
// exists", so calling it again leaves the schema and its data unchanged.
// Any failure is fatal for the caller and reported as ErrStorageUnavailable.
func (s *Store) Initialize(ctx context.Context) error {
	err := s.write(ctx, "initialize schema", func(ctx context.Context, conn *sql.Conn) error {
		for _, stmt := range s.dialect.Schema() {
			if _, err := conn.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
			}
		}
		return nil
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrStorageUnavailable) {
		return fmt.Errorf("%s: %w", s.dialect.Name(), err)
	}
	return fmt.Errorf("%s: %w: %w", s.dialect.Name(), domain.ErrStorageUnavailable, err)
}
