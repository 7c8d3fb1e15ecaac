package postgres

import (
	"context"
	"database/sql/driver"
	"net"

	"crm/internal/domain/repository"
	"crm/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes we branch on.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgStringTooLong       = "22001"
	pgNumericOutOfRange   = "22003"
	pgInvalidDatetime     = "22008"
	pgUndefinedTable      = "42P01"
	pgQueryCanceled       = "57014"
	pgTooManyConnections  = "53300"
	pgCannotConnectNow    = "57P03"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return pgErrorCode(err) == pgUniqueViolation
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	return pgErrorCode(err) == pgForeignKeyViolation
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	return pgErrorCode(err) == pgCheckViolation
}

func isUndefinedTable(err error) bool {
	return pgErrorCode(err) == pgUndefinedTable
}

// isTransientError reports failures worth a client retry.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) || pgconn.Timeout(err) {
		return true
	}

	switch pgErrorCode(err) {
	case pgQueryCanceled, pgTooManyConnections, pgCannotConnectNow:
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}

// isInvalidValue reports values a column refused. The caller sent them, so
// they are client errors, not store failures.
func isInvalidValue(err error) bool {
	if isCheckConstraintViolation(err) {
		return true
	}

	switch pgErrorCode(err) {
	case pgNotNullViolation, pgStringTooLong, pgNumericOutOfRange, pgInvalidDatetime:
		return true
	}

	return false
}

// wrapDBError annotates err and tags it with repository.ErrStoreUnavailable
// when transient or repository.ErrInvalidValue when a column refused the value.
func wrapDBError(err error, message string) error {
	if err == nil {
		return nil
	}
	if isTransientError(err) {
		return errors.Wrap(errors.Join(repository.ErrStoreUnavailable, err), message)
	}
	if isInvalidValue(err) {
		return errors.Wrap(errors.Join(repository.ErrInvalidValue, err), message)
	}

	return errors.Wrap(err, message)
}
