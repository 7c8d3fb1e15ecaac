package usecase

import (
	"context"

	"crm/internal/domain/entity"
)

// LockoutUsecase decides whether a login attempt is permitted and keeps the failure counter.
type LockoutUsecase interface {
	// Attempt returns the credential when the password matches an OPEN, active account.
	// Every other outcome is ErrInvalidCredentials or ErrAccountLocked.
	Attempt(ctx context.Context, input *LoginInput) (*entity.Credential, error)
}
