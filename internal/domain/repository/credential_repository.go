// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"time"

	"crm/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrCredentialNotFound is returned when no user row matches.
	ErrCredentialNotFound = errors.New("credential not found")
	// ErrCredentialAlreadyExists is returned on a duplicate email.
	ErrCredentialAlreadyExists = errors.New("credential already exists")
)

// CredentialRepository persists identity rows and their brute-force counters.
// Counter mutations are single atomic statements; callers never read-modify-write.
type CredentialRepository interface {
	// FindByEmail looks up by normalized email, reading from the primary.
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Credential, error)

	Create(ctx context.Context, cred *entity.Credential) error

	// LockForUpdate takes a row lock on the user for the rest of the transaction,
	// serializing session bookkeeping for that user.
	LockForUpdate(ctx context.Context, id uuid.UUID) error

	// RegisterFailedAttempt increments failed_login_attempts by one and, when the new
	// value reaches threshold and no lock is active at now, sets locked_until = lockUntil.
	// The increment and the threshold comparison happen in one statement.
	RegisterFailedAttempt(ctx context.Context, id uuid.UUID, threshold int, lockUntil, now time.Time) (*entity.FailedAttemptResult, error)

	// ResetFailedAttempts zeroes the counter, clears locked_until and stamps last_login_at,
	// but only if the account is not locked at now. It reports whether the reset applied.
	ResetFailedAttempts(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
}
