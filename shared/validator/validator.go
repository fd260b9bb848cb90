package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"sportsassist/shared/base64"
	"sportsassist/shared/catalog"
	"sportsassist/shared/constant"
	"sportsassist/shared/failure"
	"sportsassist/shared/password"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func registerMimetypeValidation(field val.FieldLevel) bool {
	var contentType string

	switch file := field.Field().Interface().(type) {
	case multipart.FileHeader:
		contentType = file.Header.Get(constant.RequestHeaderContentType)
	case *multipart.FileHeader:
		if file == nil {
			return false
		}

		contentType = file.Header.Get(constant.RequestHeaderContentType)
	case string:
		contentType = base64.GetContentType(file)

		if contentType == "" {
			return false
		}
	}

	allowedTypes := strings.Split(field.Param(), " ")

	return slices.Contains(allowedTypes, contentType)
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	fileSize := 0

	switch file := field.Field().Interface().(type) {
	case multipart.FileHeader:
		fileSize = int(file.Size)
	case *multipart.FileHeader:
		if file != nil {
			fileSize = int(file.Size)
		}
	case string:
		fileSize = len(file)
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int(maxSizeMB * bytesConversion * bytesConversion)

	return fileSize <= maxSizeBytes
}

// catalogValidation accepts empty values so the tag composes with omitempty
// and required in the usual way.
func catalogValidation(options []catalog.Option) val.Func {
	return func(fl val.FieldLevel) bool {
		value := fl.Field().String()

		return value == "" || catalog.Contains(options, value)
	}
}

func fieldTypeValidation(fl val.FieldLevel) bool {
	value := fl.Field().String()

	return value == "" || catalog.Contains(catalog.FieldTypes, value)
}

func passwordValidation(fl val.FieldLevel) bool {
	return password.Strong(fl.Field().String()) == nil
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		name = strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
	}

	if name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	custom := map[string]val.Func{
		"empty": func(fl val.FieldLevel) bool {
			return fl.Field().IsZero()
		},
		"mimetypes":      registerMimetypeValidation,
		"maxfilesize":    registerFileSizeValidation,
		"sport":          catalogValidation(catalog.Sports),
		"skill_level":    catalogValidation(catalog.SkillLevels),
		"jersey_size":    catalogValidation(catalog.JerseySizes),
		"document_type":  catalogValidation(catalog.DocumentTypes),
		"signature_type": catalogValidation(catalog.SignatureTypes),
		"gender":         catalogValidation(catalog.Genders),
		"field_type":     fieldTypeValidation,
		"password":       passwordValidation,
	}

	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
