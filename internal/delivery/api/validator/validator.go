// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"strings"

	"crm/internal/errors"

	playground "github.com/go-playground/validator/v10"
)

// Validator validates request DTOs by their `validate` tags.
type Validator struct {
	validate *playground.Validate
}

// New builds a Validator around a fresh validator instance.
func New() *Validator {
	return NewWithValidate(playground.New(playground.WithRequiredStructEnabled()))
}

// NewWithValidate shares an existing validator instance, so custom tags registered
// elsewhere apply to request bodies too.
func NewWithValidate(v *playground.Validate) *Validator {
	return &Validator{validate: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(err)
	}

	return &Error{Fields: describe(fieldErrs)}
}

// Error lists the failing fields of one request body.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		parts = append(parts, field+": "+reason)
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

func describe(fieldErrs playground.ValidationErrors) map[string]string {
	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[jsonName(fe)] = reason(fe)
	}

	return out
}

// jsonName lower-cases the first letter of the struct field so the key matches the JSON body.
func jsonName(fe playground.FieldError) string {
	name := fe.Field()
	if name == "" {
		return name
	}

	return strings.ToLower(name[:1]) + name[1:]
}

func reason(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
