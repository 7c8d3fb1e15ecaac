// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"time"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/errors"

	"github.com/google/uuid"
)

// withStoreTimeout bounds the store round trips of one request-path operation.
func withStoreTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}

// translateStoreError turns timeouts and an unreachable store into the opaque
// transient error and refused column values into a validation error.
// Application errors pass through untouched.
func translateStoreError(err error) error {
	if err == nil {
		return nil
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, repository.ErrStoreUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(domainerrors.ErrTransient, err.Error())
	}
	if errors.Is(err, repository.ErrInvalidValue) {
		return errors.WithStack(domainerrors.NewValidationError("a value does not fit its field"))
	}

	return err
}

// newEvent starts a security event with the request's device fingerprint filled in.
func newEvent(eventType entity.EventType, severity entity.Severity, device entity.DeviceInfo) *entity.SecurityEvent {
	return &entity.SecurityEvent{
		EventType: eventType,
		Category:  entity.DefaultCategory(eventType),
		Severity:  severity,
		IPAddress: device.IPAddress,
		UserAgent: device.UserAgent,
	}
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
