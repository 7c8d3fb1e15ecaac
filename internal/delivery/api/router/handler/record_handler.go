package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"crm/internal/delivery/api/middleware"
	"crm/internal/delivery/api/response"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// versionField is the body key carrying the expected version of an update.
const versionField = "version"

// RecordHandlerParams holds dependencies for RecordHandler, injected by Fx.
type RecordHandlerParams struct {
	fx.In

	RecordUC usecase.RecordUsecase
	Logger   *slog.Logger
}

// RecordHandler serves the versioned business records (escrows, clients, listings, leads, appointments).
type RecordHandler struct {
	recordUC usecase.RecordUsecase
	logger   *slog.Logger
}

// NewRecordHandler is the constructor for RecordHandler
func NewRecordHandler(params RecordHandlerParams) *RecordHandler {
	return &RecordHandler{
		recordUC: params.RecordUC,
		logger:   params.Logger,
	}
}

// Get serves GET /{resource}/:id
func (h *RecordHandler) Get(resource string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseRecordID(c)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		record, err := h.recordUC.Get(c.Request().Context(), resource, id)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, record)
	}
}

// Create serves POST /{resource}
func (h *RecordHandler) Create(resource string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.create(c, resource)
	}
}

func (h *RecordHandler) create(c echo.Context, resource string) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrInvalidToken)
	}

	attrs, err := decodeAttributes(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	delete(attrs, versionField)

	record, err := h.recordUC.Create(c.Request().Context(), &usecase.CreateRecordInput{
		Resource:   resource,
		Attributes: attrs,
		Caller:     caller,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, record)
}

// Update serves PUT /{resource}/:id with body {...attributes, version}.
// Without version the update is unconditional.
func (h *RecordHandler) Update(resource string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.update(c, resource)
	}
}

func (h *RecordHandler) update(c echo.Context, resource string) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrInvalidToken)
	}

	id, err := parseRecordID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	attrs, err := decodeAttributes(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	expected, err := takeVersion(attrs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	record, err := h.recordUC.Update(c.Request().Context(), &usecase.UpdateRecordInput{
		Resource:        resource,
		ID:              id,
		ExpectedVersion: expected,
		Attributes:      attrs,
		Caller:          caller,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, record)
}

func parseRecordID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.NewValidationError("id must be a uuid")
	}

	return id, nil
}

// decodeAttributes keeps numbers as json.Number so integers survive intact.
func decodeAttributes(c echo.Context) (map[string]any, error) {
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()

	var attrs map[string]any
	if err := dec.Decode(&attrs); err != nil {
		return nil, domainerrors.NewValidationError("body must be a JSON object")
	}

	return attrs, nil
}

// takeVersion removes the version key from attrs and returns it.
func takeVersion(attrs map[string]any) (*int64, error) {
	raw, ok := attrs[versionField]
	if !ok {
		return nil, nil
	}
	delete(attrs, versionField)

	if raw == nil {
		return nil, nil
	}
	num, ok := raw.(json.Number)
	if !ok {
		return nil, domainerrors.NewValidationError("version must be an integer")
	}
	v, err := num.Int64()
	if err != nil {
		return nil, domainerrors.NewValidationError("version must be an integer")
	}

	return &v, nil
}
