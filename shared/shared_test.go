package shared_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"sportsassist/shared"
	cacheMocks "sportsassist/shared/cache/mocks"
	"sportsassist/shared/constant"
	"sportsassist/shared/dto"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "valid true string", input: "true", expected: boolPtr(true)},
		{name: "valid false string", input: "false", expected: boolPtr(false)},
		{name: "valid 1 string", input: "1", expected: boolPtr(true)},
		{name: "valid F string", input: "F", expected: boolPtr(false)},
		{name: "invalid string returns nil", input: "invalid", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	value, err := shared.ConvertStringToInt(" 42 ")
	assert.NoError(t, err)
	assert.Equal(t, 42, value)

	_, err = shared.ConvertStringToInt("forty-two")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "negative limit returns 1", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Name       string  `db:"name"`
		Location   string  `db:"location"`
		Capacity   *int    `db:"capacity"`
		NoDBTag    string
		EmptyField *string `db:"empty_field"`
	}

	capacity := 0

	result := shared.TransformFields(updateRequest{
		Name:     "Summer Soccer",
		Capacity: &capacity,
		NoDBTag:  "ignored",
	}, "coach-1")

	assert.Equal(t, "Summer Soccer", result["name"])
	assert.Equal(t, &capacity, result["capacity"])
	assert.NotContains(t, result, "location")
	assert.NotContains(t, result, "empty_field")
	assert.NotContains(t, result, "NoDBTag")
	assert.Equal(t, "coach-1", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("123", "id", "camps")

	assert.Equal(t, dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: "123", Operator: dto.FilterOperatorEq, Table: "camps"},
		},
	}, result)
}

func TestFilterEq(t *testing.T) {
	result := shared.FilterEq("registrations", map[string]any{
		"status":  "confirmed",
		"camp_id": "camp-1",
	})

	where, args := result.GetWhereClause()

	assert.Equal(t, "(registrations.camp_id = :camp_id AND registrations.status = :status)", where)
	assert.Equal(t, map[string]any{"camp_id": "camp-1", "status": "confirmed"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "camp:get", shared.BuildCacheKey("camp:get"))
	assert.Equal(t, "camp:get:abc", shared.BuildCacheKey("camp:get", "abc"))
	assert.Equal(t, "limiter:127.0.0.1:curl", shared.BuildCacheKey("limiter", "127.0.0.1", "curl"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByID("org-1", "organization_id", "camps")

	first := shared.BuildCacheKeyWithQuery("camp:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("camp:gets", params, filter)
	other := shared.BuildCacheKeyWithQuery("camp:gets", dto.QueryParams{Page: 2, Limit: 10}, filter)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Contains(t, first, "camp:gets:")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "camp:gets*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "camp:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "camp:count*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "camp:count")
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)}
	foreign := &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeFkViolation)}

	assert.True(t, shared.IsUniqueViolation(fmt.Errorf("insert: %w", unique)))
	assert.False(t, shared.IsUniqueViolation(foreign))
	assert.False(t, shared.IsUniqueViolation(errors.New("plain")))
	assert.True(t, shared.IsForeignKeyViolation(foreign))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "Riverside FC", expected: "riverside-fc"},
		{input: "  North & South  Soccer!! ", expected: "north-south-soccer"},
		{input: "U12 -- Elite", expected: "u12-elite"},
		{input: "!!!", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.Slugify(tt.input))
		})
	}
}

func TestObjectFileName(t *testing.T) {
	name := shared.ObjectFileName("Waiver.PDF")

	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.Len(t, name, 36+len(".pdf"))
	assert.NotEqual(t, name, shared.ObjectFileName("Waiver.PDF"))
	assert.Len(t, shared.ObjectFileName("noext"), 36)
}

func boolPtr(b bool) *bool {
	return &b
}
