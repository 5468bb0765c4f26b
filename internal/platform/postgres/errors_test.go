package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/taskboardhq/taskboard-api/internal/store"
)

func TestMapErrorNil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, MapError(nil))
}

func TestMapErrorNoRows(t *testing.T) {
	t.Parallel()

	err := MapError(sql.ErrNoRows)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMapErrorDeadlineExceeded(t *testing.T) {
	t.Parallel()

	err := MapError(fmt.Errorf("query: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestMapErrorPgCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		code string
		want error
	}{
		{"unique violation", "23505", store.ErrDuplicate},
		{"foreign key violation", "23503", store.ErrInvalidEntity},
		{"check violation", "23514", store.ErrInvalidEntity},
		{"not null violation", "23502", store.ErrInvalidEntity},
		{"connection failure", "08006", store.ErrUnavailable},
		{"cannot connect now", "08001", store.ErrUnavailable},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pgErr := &pgconn.PgError{Code: tc.code, ConstraintName: "some_constraint"}
			assert.ErrorIs(t, MapError(pgErr), tc.want)
		})
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	t.Parallel()

	original := errors.New("scan mismatch")
	assert.Equal(t, original, MapError(original))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	err := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	assert.True(t, IsUniqueViolation(err, ""))
	assert.True(t, IsUniqueViolation(err, "users_email_key"))
	assert.False(t, IsUniqueViolation(err, "tasks_pkey"))
	assert.False(t, IsUniqueViolation(errors.New("other"), ""))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t,
		CheckRowsAffected(fakeResult{n: 0}, store.ErrTaskNotFound),
		store.ErrTaskNotFound)
	assert.NoError(t, CheckRowsAffected(fakeResult{n: 1}, store.ErrTaskNotFound))
	assert.Error(t, CheckRowsAffected(nil, store.ErrTaskNotFound))
	assert.Error(t, CheckRowsAffected(fakeResult{err: errors.New("driver")}, store.ErrTaskNotFound))
}

type fakeResult struct {
	n   int64
	err error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.n, r.err }
