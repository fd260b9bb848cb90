package validator_test

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"sportsassist/shared/failure"
	"sportsassist/shared/validator"

	"github.com/stretchr/testify/assert"
)

type childRequest struct {
	FirstName  string    `json:"first_name"  validate:"required,max=100"`
	Email      string    `json:"email"       validate:"omitempty,email"`
	Age        int       `json:"age"         validate:"gte=0,lte=18"`
	Sport      string    `json:"sport"       validate:"omitempty,sport"`
	SkillLevel string    `json:"skill_level" validate:"omitempty,skill_level"`
	JerseySize string    `json:"jersey_size" validate:"omitempty,jersey_size"`
	StartDate  time.Time `json:"start_date"  validate:"required"`
	EndDate    time.Time `json:"end_date"    validate:"required,gtefield=StartDate"`
}

func validChild() childRequest {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	return childRequest{
		FirstName:  "Mia",
		Age:        11,
		Sport:      "soccer",
		SkillLevel: "beginner",
		JerseySize: "YM",
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 5),
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *childRequest)
		contains string
	}{
		{name: "valid request", mutate: func(_ *childRequest) {}},
		{name: "missing first name", mutate: func(r *childRequest) { r.FirstName = "" }, contains: "first_name is required"},
		{name: "invalid email", mutate: func(r *childRequest) { r.Email = "not-an-email" }, contains: "email must be a valid email address"},
		{name: "age out of range", mutate: func(r *childRequest) { r.Age = 40 }, contains: "age must be less than or equal to 18"},
		{name: "unknown sport", mutate: func(r *childRequest) { r.Sport = "quidditch" }, contains: "sport must be a supported sport"},
		{name: "unknown skill level", mutate: func(r *childRequest) { r.SkillLevel = "legend" }, contains: "skill_level"},
		{name: "unknown jersey size", mutate: func(r *childRequest) { r.JerseySize = "XXXXL" }, contains: "jersey_size"},
		{name: "end before start", mutate: func(r *childRequest) { r.EndDate = r.StartDate.AddDate(0, 0, -1) }, contains: "end_date must not be before"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validChild()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.contains == "" {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestValidate_DecodesBody(t *testing.T) {
	var req childRequest

	err := validator.Validate(strings.NewReader(`{"first_name":"Mia","age":9,"start_date":"2026-07-01T00:00:00Z","end_date":"2026-07-03T00:00:00Z"}`), &req)

	assert.NoError(t, err)
	assert.Equal(t, "Mia", req.FirstName)

	err = validator.Validate(strings.NewReader(`{"first_name":`), &req)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode request body")
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "document type", field: "medical_form", tag: "required,document_type"},
		{name: "bad document type", field: "passport", tag: "required,document_type", expectError: true},
		{name: "signature type", field: "drawn", tag: "signature_type"},
		{name: "field type", field: "multiselect", tag: "field_type"},
		{name: "bad field type", field: "slider", tag: "field_type", expectError: true},
		{name: "empty passes catalog tag", field: "", tag: "sport"},
		{name: "uuid", field: "not-a-uuid", tag: "uuid", expectError: true},
		{name: "strong password", field: "goalkeeper9", tag: "required,password"},
		{name: "password without digit", field: "goalkeeper", tag: "required,password", expectError: true},
		{name: "short password", field: "gk9", tag: "required,password", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)
			assert.Equal(t, tt.expectError, err != nil, "err: %v", err)
		})
	}
}

func TestFileValidation(t *testing.T) {
	type upload struct {
		File *multipart.FileHeader `form:"file" validate:"required,mimetypes=application/pdf image/png,maxfilesize=1"`
	}

	header := func(contentType string, size int64) *multipart.FileHeader {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", contentType)

		return &multipart.FileHeader{Filename: "waiver.pdf", Header: h, Size: size}
	}

	assert.NoError(t, validator.ValidateStruct(&upload{File: header("application/pdf", 1024)}))

	err := validator.ValidateStruct(&upload{File: header("text/plain", 1024)})
	assert.ErrorContains(t, err, "file must be one of these file types")

	err = validator.ValidateStruct(&upload{File: header("image/png", 2<<20)})
	assert.ErrorContains(t, err, "file must not exceed 1 MB")
}

func TestValidateStruct_ReportsEveryField(t *testing.T) {
	req := validChild()
	req.FirstName = ""
	req.Age = 40

	err := validator.ValidateStruct(&req)

	assert.EqualError(t, err, "first_name is required; age must be less than or equal to 18")
	assert.Equal(t, 400, failure.GetCode(err))
}
