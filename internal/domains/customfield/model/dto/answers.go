package dto

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"sportsassist/internal/domains/customfield/model"
	"sportsassist/shared/catalog"
	"sportsassist/shared/failure"
	"sportsassist/shared/sanitize"
	"sportsassist/shared/timezone"
	"sportsassist/shared/validator"
)

const (
	maxTextLength     = 500
	maxTextareaLength = 5000
	minPhoneDigits    = 7
)

// ValidateAnswers checks raw registration answers, keyed by custom field id,
// against the active fields of an organization and returns the stored string
// value per field. Inactive fields are ignored, unknown ids are rejected.
func ValidateAnswers(fields []model.CustomField, answers map[string]any) (map[string]string, error) {
	active := make(map[string]model.CustomField, len(fields))

	for _, field := range fields {
		if field.Active {
			active[field.ID] = field
		}
	}

	for id := range answers {
		known := slices.ContainsFunc(fields, func(f model.CustomField) bool { return f.ID == id })
		if !known {
			return nil, failure.BadRequestFromString(fmt.Sprintf("unknown custom field %s", id))
		}
	}

	values := make(map[string]string, len(active))

	for _, field := range fields {
		if !field.Active {
			continue
		}

		raw, present := answers[field.ID]
		if !present || isBlank(raw) {
			if field.Required {
				return nil, failure.BadRequestFromString(field.Label + " is required")
			}

			continue
		}

		value, err := normalizeAnswer(field, raw)
		if err != nil {
			return nil, failure.BadRequestFromString(fmt.Sprintf("%s: %s", field.Label, err.Error()))
		}

		values[field.ID] = value
	}

	return values, nil
}

func normalizeAnswer(field model.CustomField, raw any) (string, error) {
	switch field.FieldType {
	case catalog.FieldTypeText, catalog.FieldTypeTextarea:
		return textAnswer(field.FieldType, raw)
	case catalog.FieldTypeNumber:
		return numberAnswer(raw)
	case catalog.FieldTypeDate:
		value, ok := raw.(string)
		if !ok {
			return "", errExpectedDate
		}

		if _, err := timezone.ParseDate(value); err != nil {
			return "", errExpectedDate
		}

		return value, nil
	case catalog.FieldTypeSelect:
		value, ok := raw.(string)
		if !ok || !slices.Contains(field.Options, value) {
			return "", errNotAnOption
		}

		return value, nil
	case catalog.FieldTypeMultiselect:
		return multiselectAnswer(field, raw)
	case catalog.FieldTypeCheckbox:
		return checkboxAnswer(field, raw)
	case catalog.FieldTypeEmail:
		value, ok := raw.(string)
		if !ok {
			return "", errExpectedEmail
		}

		value = strings.TrimSpace(value)
		if validator.ValidateVar(value, "email") != nil {
			return "", errExpectedEmail
		}

		return strings.ToLower(value), nil
	case catalog.FieldTypePhone:
		return phoneAnswer(raw)
	default:
		return "", fmt.Errorf("unsupported field type %s", field.FieldType)
	}
}

func textAnswer(fieldType string, raw any) (string, error) {
	value, ok := raw.(string)
	if !ok {
		return "", errExpectedText
	}

	limit := maxTextLength
	if fieldType == catalog.FieldTypeTextarea {
		limit = maxTextareaLength
	}

	value = sanitize.Text(value)
	if len(value) > limit {
		return "", fmt.Errorf("must be at most %d characters", limit)
	}

	return value, nil
}

// numberAnswer accepts finite numbers only.
func numberAnswer(raw any) (string, error) {
	var number float64

	switch value := raw.(type) {
	case float64:
		number = value
	case int:
		return strconv.Itoa(value), nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return "", errExpectedNumber
		}

		number = parsed
	default:
		return "", errExpectedNumber
	}

	if math.IsNaN(number) || math.IsInf(number, 0) {
		return "", errExpectedNumber
	}

	return strconv.FormatFloat(number, 'f', -1, 64), nil
}

func multiselectAnswer(field model.CustomField, raw any) (string, error) {
	var selected []string

	switch value := raw.(type) {
	case []string:
		selected = value
	case []any:
		for _, item := range value {
			choice, ok := item.(string)
			if !ok {
				return "", errNotAnOption
			}

			selected = append(selected, choice)
		}
	default:
		return "", errNotAnOption
	}

	for _, choice := range selected {
		if !slices.Contains(field.Options, choice) {
			return "", errNotAnOption
		}
	}

	if field.Required && len(selected) == 0 {
		return "", errRequired
	}

	encoded, err := json.Marshal(selected)
	if err != nil {
		return "", fmt.Errorf("failed to encode selection: %w", err)
	}

	return string(encoded), nil
}

// checkboxAnswer accepts booleans and "true"/"false". A required checkbox must
// be ticked, like a consent box.
func checkboxAnswer(field model.CustomField, raw any) (string, error) {
	var checked bool

	switch value := raw.(type) {
	case bool:
		checked = value
	case string:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return "", errExpectedBool
		}

		checked = parsed
	default:
		return "", errExpectedBool
	}

	if field.Required && !checked {
		return "", errRequired
	}

	return strconv.FormatBool(checked), nil
}

func phoneAnswer(raw any) (string, error) {
	value, ok := raw.(string)
	if !ok {
		return "", errExpectedPhone
	}

	value = strings.TrimSpace(value)
	digits := 0

	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune("+-(). ", r):
		default:
			return "", errExpectedPhone
		}
	}

	if digits < minPhoneDigits || len(value) > 30 {
		return "", errExpectedPhone
	}

	return value, nil
}

func isBlank(raw any) bool {
	switch value := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	case []any:
		return len(value) == 0
	case []string:
		return len(value) == 0
	default:
		return false
	}
}
