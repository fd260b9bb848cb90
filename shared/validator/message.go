package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const fallbackMessage = "{field} is invalid"

var messages = map[string]string{
	"required": "{field} is required",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"oneof":    "{field} must be one of {param}",
	"max":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be greater than or equal to {param}",
	"email":    "{field} must be a valid email address",
	"uuid":     "{field} must be a valid UUID",
	"url":      "{field} must be a valid URL",
	"unique":   "{field} must not contain duplicates",
	"datetime": "{field} must match the format {param}",
	"gtefield": "{field} must not be before {param}",
	"gtfield":  "{field} must be after {param}",
	"nefield":  "{field} must differ from {param}",

	"mimetypes":      "{field} must be one of these file types: {param}",
	"maxfilesize":    "{field} must not exceed {param} MB",
	"sport":          "{field} must be a supported sport",
	"skill_level":    "{field} must be a supported skill level",
	"jersey_size":    "{field} must be a supported jersey size",
	"document_type":  "{field} must be a supported document type",
	"signature_type": "{field} must be a supported signature type",
	"gender":         "{field} must be a supported gender",
	"field_type":     "{field} must be a supported field type",
	"password":       "{field} must be 8 to 72 characters with at least one letter and one digit",
}

// message renders every failed field, in declaration order, as one sentence
// list.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	rendered := make([]string, 0, len(fieldErrors))

	for _, fieldErr := range fieldErrors {
		template, ok := messages[fieldErr.Tag()]
		if !ok {
			template = fallbackMessage
		}

		replacer := strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param())
		rendered = append(rendered, replacer.Replace(template))
	}

	return strings.Join(rendered, "; ")
}
