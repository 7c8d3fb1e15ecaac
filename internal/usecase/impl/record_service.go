package impl

import (
	"context"
	"log/slog"
	"time"

	"crm/config"
	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/domain/service"
	"crm/internal/errors"
	"crm/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

// unversionedUpdateAttempts bounds how often an update without an expected
// version re-reads the record after losing the swap to a concurrent writer.
const unversionedUpdateAttempts = 3

// recordService implements the RecordUsecase interface.
type recordService struct {
	recordRepo   repository.VersionedRecordRepository
	recorder     service.SecurityEventRecorder
	rules        map[string][]businessRule
	tracer       trace.Tracer
	storeTimeout time.Duration
	logger       *slog.Logger
}

// RecordServiceParams holds dependencies for RecordService, injected by Fx.
type RecordServiceParams struct {
	fx.In

	RecordRepo repository.VersionedRecordRepository
	Recorder   service.SecurityEventRecorder
	Validator  *validator.Validate `optional:"true"`
	Tracer     trace.Tracer
	Config     *config.Config
	Logger     *slog.Logger
}

// NewRecordService is the constructor for recordService.
func NewRecordService(params RecordServiceParams) usecase.RecordUsecase {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}

	srv := &recordService{
		recordRepo: params.RecordRepo,
		recorder:   params.Recorder,
		rules:      newBusinessRules(validate),
		tracer:     params.Tracer,
		logger:     params.Logger,
	}
	if params.Config != nil && params.Config.Store != nil {
		srv.storeTimeout = params.Config.Store.OperationTimeout
	}

	return srv
}

func (srv *recordService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Get returns the current snapshot, including its version.
func (srv *recordService) Get(ctx context.Context, resourceName string, id uuid.UUID) (*entity.VersionedRecord, error) {
	resource, ok := entity.LookupResource(resourceName)
	if !ok {
		return nil, errors.Wrapf(domainerrors.ErrNotFound, "unknown resource %q", resourceName)
	}

	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	row, err := srv.recordRepo.FindByID(storeCtx, resource.Table, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "record not found")
		}

		return nil, translateStoreError(errors.Wrap(err, "failed to load record"))
	}

	return toVersionedRecord(resource, row), nil
}

// Create inserts a record at version 1 after the same validation and rules as Update.
func (srv *recordService) Create(ctx context.Context, input *usecase.CreateRecordInput) (*entity.VersionedRecord, error) {
	resource, ok := entity.LookupResource(input.Resource)
	if !ok {
		return nil, errors.Wrapf(domainerrors.ErrNotFound, "unknown resource %q", input.Resource)
	}

	fields, patch, err := coerceAttributes(resource, input.Attributes)
	if err != nil {
		return nil, err
	}

	if violations := evaluateRules(srv.rules[resource.Name], nil, patch); len(violations) > 0 {
		srv.recordViolation(ctx, input.Caller, resource, uuid.Nil, violations)

		return nil, errors.WithStack(domainerrors.NewBusinessRuleError(violations))
	}

	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	row, err := srv.recordRepo.Insert(storeCtx, resource.Table, fields)
	if err != nil {
		return nil, translateStoreError(errors.Wrap(err, "failed to create record"))
	}

	return toVersionedRecord(resource, row), nil
}

// Update applies a patch with compare-and-swap on the version. Exactly one of
// several concurrent updates carrying the same expected version succeeds.
// A patch without a version that touches a business rule is swapped against
// the snapshot the rules ran on and re-checked when that snapshot moves.
func (srv *recordService) Update(ctx context.Context, input *usecase.UpdateRecordInput) (*entity.VersionedRecord, error) {
	ctx, span := srv.tracer.Start(ctx, "record.Update", trace.WithAttributes(
		attribute.String("record.resource", input.Resource),
		attribute.String("record.id", input.ID.String()),
	))
	defer span.End()

	record, err := srv.update(ctx, input)
	if err != nil {
		markSpanError(span, err)

		return nil, err
	}
	span.SetAttributes(attribute.Int64("record.version", record.Version))

	return record, nil
}

func (srv *recordService) update(ctx context.Context, input *usecase.UpdateRecordInput) (*entity.VersionedRecord, error) {
	resource, ok := entity.LookupResource(input.Resource)
	if !ok {
		return nil, errors.Wrapf(domainerrors.ErrNotFound, "unknown resource %q", input.Resource)
	}
	if input.ExpectedVersion != nil && *input.ExpectedVersion < 1 {
		return nil, errors.WithStack(domainerrors.NewValidationError("version must be a positive integer"))
	}

	fields, patch, err := coerceAttributes(resource, input.Attributes)
	if err != nil {
		return nil, err
	}

	storeCtx, cancel := withStoreTimeout(ctx, srv.storeTimeout)
	defer cancel()

	rules := srv.rules[resource.Name]
	checkRules := touchesAny(rules, patch)

	for attempt := 1; ; attempt++ {
		expected := input.ExpectedVersion
		if checkRules {
			current, err := srv.recordRepo.FindByID(storeCtx, resource.Table, input.ID)
			if err != nil {
				if errors.Is(err, repository.ErrRecordNotFound) {
					return nil, errors.Wrap(domainerrors.ErrNotFound, "record not found")
				}

				return nil, translateStoreError(errors.Wrap(err, "failed to load record"))
			}

			// Rules hold for the snapshot they ran against, so the write is
			// pinned to that version even when the client sent none.
			if expected == nil {
				expected = &current.Version
			}
			// A stale expected version cannot win the swap; let it report the conflict.
			if current.Version == *expected {
				snapshot := toVersionedRecord(resource, current).Attributes
				if violations := evaluateRules(rules, snapshot, patch); len(violations) > 0 {
					srv.recordViolation(ctx, input.Caller, resource, input.ID, violations)

					return nil, errors.WithStack(domainerrors.NewBusinessRuleError(violations))
				}
			}
		}

		row, err := srv.recordRepo.ConditionalUpdate(storeCtx, resource.Table, input.ID, expected, fields)
		if err == nil {
			return toVersionedRecord(resource, row), nil
		}

		var conflict *repository.VersionConflict
		switch {
		case errors.As(err, &conflict):
			if input.ExpectedVersion == nil && attempt < unversionedUpdateAttempts {
				srv.log(ctx).Debug("Record changed under unversioned update, re-checking rules",
					slog.String("resource", resource.Name),
					slog.Int("attempt", attempt),
				)

				continue
			}
			srv.recordConflict(ctx, input.Caller, resource, input.ID, conflict)

			return nil, errors.WithStack(domainerrors.NewVersionConflictError(conflict.CurrentVersion, conflict.AttemptedVersion))
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, errors.Wrap(domainerrors.ErrNotFound, "record not found")
		case errors.Is(err, repository.ErrInvalidValue):
			return nil, translateStoreError(errors.Wrap(err, "failed to update record"))
		default:
			srv.log(ctx).Error("Conditional update failed", slog.Any("error", err), slog.String("resource", resource.Name))

			return nil, translateStoreError(errors.Wrap(err, "failed to update record"))
		}
	}
}

func (srv *recordService) recordConflict(
	ctx context.Context,
	caller *usecase.Caller,
	resource *entity.Resource,
	id uuid.UUID,
	conflict *repository.VersionConflict,
) {
	event := srv.integrityEvent(entity.EventVersionConflict, caller)
	event.Message = "update rejected: record was modified concurrently"
	event.Metadata = map[string]any{
		"resource":          resource.Name,
		"record_id":         id.String(),
		"current_version":   conflict.CurrentVersion,
		"attempted_version": conflict.AttemptedVersion,
	}
	srv.recorder.Record(ctx, event)
}

func (srv *recordService) recordViolation(
	ctx context.Context,
	caller *usecase.Caller,
	resource *entity.Resource,
	id uuid.UUID,
	violations []domainerrors.RuleViolation,
) {
	rules := make([]string, 0, len(violations))
	for _, v := range violations {
		rules = append(rules, v.Rule)
	}

	event := srv.integrityEvent(entity.EventBusinessRuleViolation, caller)
	event.Message = "update rejected: business rule violation"
	event.Metadata = map[string]any{
		"resource": resource.Name,
		"rules":    rules,
	}
	if id != uuid.Nil {
		event.Metadata["record_id"] = id.String()
	}
	srv.recorder.Record(ctx, event)
}

func (srv *recordService) integrityEvent(eventType entity.EventType, caller *usecase.Caller) *entity.SecurityEvent {
	var device entity.DeviceInfo
	if caller != nil {
		device = caller.Device
	}

	event := newEvent(eventType, entity.SeverityWarning, device)
	if caller != nil {
		event.UserID = uuidPtr(caller.UserID)
		event.Email = caller.Email
	}

	return event
}

// coerceAttributes validates attribute names and types. It returns the column
// map for the store and the attribute map for rule evaluation.
func coerceAttributes(resource *entity.Resource, attributes map[string]any) (map[string]any, map[string]any, error) {
	if len(attributes) == 0 {
		return nil, nil, errors.WithStack(domainerrors.NewValidationError("no attributes to write"))
	}

	fields := make(map[string]any, len(attributes))
	patch := make(map[string]any, len(attributes))
	for name, raw := range attributes {
		field, ok := resource.Fields[name]
		if !ok {
			return nil, nil, errors.WithStack(domainerrors.NewValidationError("unknown attribute " + name))
		}

		value, err := coerceAttribute(name, field, raw)
		if err != nil {
			return nil, nil, errors.WithStack(domainerrors.NewValidationError(err.Error()))
		}
		fields[field.Column] = value
		patch[name] = value
	}

	return fields, patch, nil
}

func toVersionedRecord(resource *entity.Resource, row *entity.VersionedRow) *entity.VersionedRecord {
	attributes := make(map[string]any, len(row.Columns))
	for column, value := range row.Columns {
		if name, ok := resource.AttributeName(column); ok {
			attributes[name] = value
		}
	}

	return &entity.VersionedRecord{
		Resource:   resource.Name,
		ID:         row.ID,
		Version:    row.Version,
		UpdatedAt:  row.UpdatedAt,
		Attributes: attributes,
	}
}
