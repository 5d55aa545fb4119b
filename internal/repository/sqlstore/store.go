package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"perishables/internal/domain"
	"perishables/internal/repository"
)

// DefaultTimeout bounds every store round-trip
const DefaultTimeout = 5 * time.Second

// Violation is a driver error reduced to what the store needs to know
type Violation int

const (
	ViolationNone Violation = iota
	ViolationUnique
	ViolationForeignKey
	ViolationUnavailable
)

// Dialect captures what differs between SQL backends
type Dialect interface {
	// Name identifies the backend in error messages
	Name() string
	// Schema returns idempotent DDL statements, executed in order
	Schema() []string
	// Classify maps a driver error to a Violation
	Classify(err error) Violation
	// Lower wraps a column expression in a Unicode-aware lower-casing call
	Lower(expr string) string
}

// Store implements repository.Repository over database/sql
type Store struct {
	db      *sql.DB
	dialect Dialect
	timeout time.Duration
	now     func() time.Time

	// writeMu serializes writes so concurrent callers cannot lose updates
	writeMu sync.Mutex
}

var _ repository.Repository = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithTimeout overrides the per-call timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock overrides the clock used for added dates and expiry windows
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New wraps an open database. It does not provision the schema; call Initialize.
func New(db *sql.DB, dialect Dialect, opts ...Option) *Store {
	s := &Store{
		db:      db,
		dialect: dialect,
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the store's current calendar date
func (s *Store) Today() domain.Date {
	return domain.DateOf(s.now())
}

// Ping checks the store can be reached within the timeout
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s: %w: %w", s.dialect.Name(), domain.ErrStorageUnavailable, err)
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// withConn runs fn on a connection acquired for this call only. The
// connection is released and the timeout cancelled on every exit path.
func (s *Store) withConn(ctx context.Context, op string, fn func(ctx context.Context, conn *sql.Conn) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return s.fail(op, s.timedOut(ctx, err))
	}
	defer conn.Close()

	if err := fn(ctx, conn); err != nil {
		return s.fail(op, s.timedOut(ctx, err))
	}
	return nil
}

// timedOut replaces err with the deadline error when the call ran out of
// time; drivers report an interrupted statement in their own words.
func (s *Store) timedOut(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !domain.IsKnownKind(err) {
		return context.DeadlineExceeded
	}
	return err
}

// write is withConn under the single-writer lock
func (s *Store) write(ctx context.Context, op string, fn func(ctx context.Context, conn *sql.Conn) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.withConn(ctx, op, fn)
}

// fail attaches an error kind to err unless it already carries one
func (s *Store) fail(op string, err error) error {
	if domain.IsKnownKind(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: timed out after %s", op, domain.ErrStorageUnavailable, s.timeout)
	}
	if s.dialect.Classify(err) == ViolationUnavailable {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

// expectAffected turns "no rows affected" into a not-found error
func expectAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}
