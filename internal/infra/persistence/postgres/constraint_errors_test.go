package postgres

import (
	"context"
	"testing"

	"crm/internal/domain/repository"
	"crm/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapDBError_RefusedValues(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "null into NOT NULL column", code: pgNotNullViolation},
		{name: "string longer than varchar", code: pgStringTooLong},
		{name: "numeric overflow", code: pgNumericOutOfRange},
		{name: "datetime out of range", code: pgInvalidDatetime},
		{name: "check constraint", code: pgCheckViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapDBError(&pgconn.PgError{Code: tt.code}, "conditional update of escrows")

			assert.True(t, errors.Is(err, repository.ErrInvalidValue))
			assert.False(t, errors.Is(err, repository.ErrStoreUnavailable))
			assert.Equal(t, tt.code, pgErrorCode(err))
		})
	}
}

func TestWrapDBError_Transient(t *testing.T) {
	err := wrapDBError(&pgconn.PgError{Code: pgTooManyConnections}, "find escrows by id")
	assert.True(t, errors.Is(err, repository.ErrStoreUnavailable))
	assert.False(t, errors.Is(err, repository.ErrInvalidValue))

	err = wrapDBError(context.DeadlineExceeded, "find escrows by id")
	assert.True(t, errors.Is(err, repository.ErrStoreUnavailable))
}

func TestWrapDBError_Untagged(t *testing.T) {
	assert.NoError(t, wrapDBError(nil, "noop"))

	err := wrapDBError(&pgconn.PgError{Code: pgUndefinedTable}, "find escrows by id")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, repository.ErrInvalidValue))
	assert.False(t, errors.Is(err, repository.ErrStoreUnavailable))
	assert.Contains(t, err.Error(), "find escrows by id")
}
