package usecase

import (
	"context"

	"crm/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateRecordInput patches one versioned record. A nil ExpectedVersion updates unconditionally.
type UpdateRecordInput struct {
	Resource        string
	ID              uuid.UUID
	ExpectedVersion *int64
	Attributes      map[string]any
	Caller          *Caller
}

// CreateRecordInput creates a record at version 1.
type CreateRecordInput struct {
	Resource   string
	Attributes map[string]any
	Caller     *Caller
}

// RecordUsecase guards versioned business records with optimistic concurrency.
type RecordUsecase interface {
	Get(ctx context.Context, resource string, id uuid.UUID) (*entity.VersionedRecord, error)
	Create(ctx context.Context, input *CreateRecordInput) (*entity.VersionedRecord, error)
	Update(ctx context.Context, input *UpdateRecordInput) (*entity.VersionedRecord, error)
}
