package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"perishables/internal/domain"
)

var (
	errUnique      = errors.New("unique")
	errForeignKey  = errors.New("foreign key")
	errUnavailable = errors.New("locked")
)

// fakeDialect classifies the sentinel errors above
type fakeDialect struct{}

func (fakeDialect) Name() string             { return "fake" }
func (fakeDialect) Schema() []string         { return nil }
func (fakeDialect) Lower(expr string) string { return "LOWER(" + expr + ")" }
func (fakeDialect) Classify(err error) Violation {
	switch {
	case errors.Is(err, errUnique):
		return ViolationUnique
	case errors.Is(err, errForeignKey):
		return ViolationForeignKey
	case errors.Is(err, errUnavailable):
		return ViolationUnavailable
	}
	return ViolationNone
}

// fakeResult is a sql.Result with a fixed affected-row count
type fakeResult struct {
	affected int64
	err      error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.affected, r.err }

func TestNew_Options(t *testing.T) {
	fixed := time.Date(2023, 11, 10, 22, 30, 0, 0, time.UTC)

	s := New(nil, fakeDialect{})
	assert.Equal(t, DefaultTimeout, s.timeout)

	s = New(nil, fakeDialect{}, WithTimeout(time.Second), WithClock(func() time.Time { return fixed }))
	assert.Equal(t, time.Second, s.timeout)
	assert.Equal(t, "2023-11-10", s.Today().String())

	s = New(nil, fakeDialect{}, WithTimeout(0), WithClock(nil))
	assert.Equal(t, DefaultTimeout, s.timeout)
	assert.NotNil(t, s.now)
}

func TestFail(t *testing.T) {
	s := New(nil, fakeDialect{})

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"known kind kept", fmt.Errorf("item 3: %w", domain.ErrNotFound), domain.ErrNotFound},
		{"duplicate kept", domain.ErrDuplicateName, domain.ErrDuplicateName},
		{"deadline", context.DeadlineExceeded, domain.ErrStorageUnavailable},
		{"unavailable", errUnavailable, domain.ErrStorageUnavailable},
		{"unclassified", errors.New("disk says no"), domain.ErrPersistence},
		{"unique outside a handled path", errUnique, domain.ErrPersistence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.fail("op", tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "op: ")
		})
	}
}

func TestFail_KeepsDriverError(t *testing.T) {
	s := New(nil, fakeDialect{})
	err := s.fail("op", errUnavailable)
	assert.ErrorIs(t, err, errUnavailable)
}

func TestTimedOut(t *testing.T) {
	s := New(nil, fakeDialect{})
	driverErr := errors.New("interrupted")

	live := context.Background()
	assert.Equal(t, driverErr, s.timedOut(live, driverErr))

	expired, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	assert.Equal(t, context.DeadlineExceeded, s.timedOut(expired, driverErr))

	notFound := fmt.Errorf("x: %w", domain.ErrNotFound)
	assert.Equal(t, notFound, s.timedOut(expired, notFound))
}

func TestExpectAffected(t *testing.T) {
	assert.NoError(t, expectAffected(fakeResult{affected: 1}, "item 1"))
	assert.ErrorIs(t, expectAffected(fakeResult{affected: 0}, "item 1"), domain.ErrNotFound)

	boom := errors.New("boom")
	assert.ErrorIs(t, expectAffected(fakeResult{err: boom}, "item 1"), boom)
}

func TestCategoryNameError(t *testing.T) {
	s := New(nil, fakeDialect{})

	err := s.categoryNameError("Citrus", errUnique)
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
	assert.ErrorIs(t, err, domain.ErrValidation)

	other := errors.New("other")
	assert.Equal(t, other, s.categoryNameError("Citrus", other))
}
