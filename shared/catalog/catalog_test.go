package catalog_test

import (
	"testing"

	"sportsassist/shared/catalog"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	tests := []struct {
		name    string
		options []catalog.Option
		value   string
		want    bool
	}{
		{name: "known sport", options: catalog.Sports, value: "soccer", want: true},
		{name: "label is not a value", options: catalog.Sports, value: "Soccer", want: false},
		{name: "jersey size", options: catalog.JerseySizes, value: "YM", want: true},
		{name: "unknown document type", options: catalog.DocumentTypes, value: "passport", want: false},
		{name: "empty value", options: catalog.SignatureTypes, value: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Contains(tt.options, tt.value))
		})
	}
}

func TestValues(t *testing.T) {
	values := catalog.Values(catalog.SkillLevels)

	assert.Len(t, values, len(catalog.SkillLevels))
	assert.Equal(t, "beginner", values[0])
}

func TestHasOptions(t *testing.T) {
	assert.True(t, catalog.HasOptions(catalog.FieldTypeSelect))
	assert.True(t, catalog.HasOptions(catalog.FieldTypeMultiselect))
	assert.False(t, catalog.HasOptions(catalog.FieldTypeText))
	assert.False(t, catalog.HasOptions(catalog.FieldTypeCheckbox))
}
