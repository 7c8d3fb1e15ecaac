package impl

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/errors"

	"github.com/go-playground/validator/v10"
)

const dateLayout = time.DateOnly

// businessRule checks one invariant of a record. It runs only when the patch
// touches one of its fields, against the stored snapshot merged with the patch.
type businessRule struct {
	name   string
	fields []string
	check  func(record map[string]any) (string, string, bool)
}

func (r businessRule) touchedBy(patch map[string]any) bool {
	for _, f := range r.fields {
		if _, ok := patch[f]; ok {
			return true
		}
	}

	return false
}

func nonNegative(rule, field string) businessRule {
	return businessRule{
		name:   rule,
		fields: []string{field},
		check: func(record map[string]any) (string, string, bool) {
			v, ok := asFloat(record[field])
			if !ok || v >= 0 {
				return "", "", true
			}

			return field, field + " must not be negative", false
		},
	}
}

func orderedDates(rule, startField, endField string) businessRule {
	return businessRule{
		name:   rule,
		fields: []string{startField, endField},
		check: func(record map[string]any) (string, string, bool) {
			start, okStart := asTime(record[startField])
			end, okEnd := asTime(record[endField])
			if !okStart || !okEnd || end.After(start) {
				return "", "", true
			}

			return endField, endField + " must be after " + startField, false
		},
	}
}

func emailFormat(validate *validator.Validate, field string) businessRule {
	return businessRule{
		name:   "email_format",
		fields: []string{field},
		check: func(record map[string]any) (string, string, bool) {
			email, ok := record[field].(string)
			if !ok || email == "" {
				return "", "", true
			}
			if err := validate.Var(email, "email"); err != nil {
				return field, field + " is not a valid email address", false
			}

			return "", "", true
		},
	}
}

func statusAllowed(field string, allowed []string) businessRule {
	return businessRule{
		name:   "status_allowed",
		fields: []string{field},
		check: func(record map[string]any) (string, string, bool) {
			status, ok := record[field].(string)
			if !ok || slices.Contains(allowed, status) {
				return "", "", true
			}

			return field, fmt.Sprintf("%s must be one of %s", field, strings.Join(allowed, ", ")), false
		},
	}
}

// newBusinessRules builds the rule set per resource.
func newBusinessRules(validate *validator.Validate) map[string][]businessRule {
	rules := map[string][]businessRule{
		"escrows": {
			nonNegative("purchase_price_non_negative", "purchasePrice"),
			nonNegative("earnest_money_non_negative", "earnestMoney"),
			orderedDates("closing_after_opening", "openingDate", "closingDate"),
		},
		"listings": {
			nonNegative("list_price_non_negative", "listPrice"),
			orderedDates("expiration_after_listing", "listingDate", "expirationDate"),
		},
		"appointments": {
			orderedDates("end_after_start", "startTime", "endTime"),
		},
		"leads": {
			nonNegative("estimated_value_non_negative", "estimatedValue"),
			emailFormat(validate, "email"),
		},
		"clients": {
			emailFormat(validate, "email"),
		},
	}

	for resource, fields := range entity.AllowedValues {
		for field, allowed := range fields {
			rules[resource] = append(rules[resource], statusAllowed(field, allowed))
		}
	}

	return rules
}

func touchesAny(rules []businessRule, patch map[string]any) bool {
	for _, rule := range rules {
		if rule.touchedBy(patch) {
			return true
		}
	}

	return false
}

// evaluateRules returns every violation among the rules the patch touches.
func evaluateRules(rules []businessRule, snapshot, patch map[string]any) []domainerrors.RuleViolation {
	merged := make(map[string]any, len(snapshot)+len(patch))
	for k, v := range snapshot {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}

	var violations []domainerrors.RuleViolation
	for _, rule := range rules {
		if !rule.touchedBy(patch) {
			continue
		}
		if field, msg, ok := rule.check(merged); !ok {
			violations = append(violations, domainerrors.RuleViolation{Rule: rule.name, Field: field, Message: msg})
		}
	}

	return violations
}

// coerceAttribute converts a decoded JSON value to the column's Go type and
// enforces the column's limits. nil clears a nullable column.
func coerceAttribute(name string, field entity.Field, value any) (any, error) {
	if value == nil {
		if !field.Nullable {
			return nil, errors.Errorf("%s must not be null", name)
		}

		return nil, nil
	}

	switch field.Kind {
	case entity.FieldString:
		s, ok := value.(string)
		if !ok {
			return nil, errors.Errorf("%s must be a string", name)
		}
		if field.MaxLen > 0 && utf8.RuneCountInString(s) > field.MaxLen {
			return nil, errors.Errorf("%s must be at most %d characters", name, field.MaxLen)
		}

		return s, nil
	case entity.FieldNumber:
		f, ok := asFloat(value)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errors.Errorf("%s must be a number", name)
		}
		if field.Max > 0 && math.Abs(f) >= field.Max {
			return nil, errors.Errorf("%s is out of range", name)
		}

		return f, nil
	case entity.FieldInteger:
		f, ok := asFloat(value)
		if !ok || f != math.Trunc(f) {
			return nil, errors.Errorf("%s must be an integer", name)
		}
		if f > math.MaxInt32 || f < math.MinInt32 {
			return nil, errors.Errorf("%s is out of range", name)
		}

		return int64(f), nil
	case entity.FieldTime:
		t, ok := asTime(value)
		if !ok {
			return nil, errors.Errorf("%s must be an RFC 3339 timestamp or a YYYY-MM-DD date", name)
		}

		return t, nil
	default:
		return nil, errors.Errorf("%s has an unsupported type", name)
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()

		return f, err == nil
	default:
		return 0, false
	}
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}

		return *t, true
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse(dateLayout, t); err == nil {
			return parsed, true
		}

		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
