package model

import (
	"sportsassist/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "custom_fields"
	EntityName = "custom_field"

	FieldID             = "id"
	FieldOrganizationID = "organization_id"
	FieldDisplayOrder   = "display_order"
	FieldActive         = "active"

	AnswerTableName  = "custom_field_responses"
	AnswerEntityName = "custom_field_response"

	AnswerFieldID             = "id"
	AnswerFieldRegistrationID = "registration_id"
)

type CustomField struct {
	ID             string         `db:"id"`
	OrganizationID string         `db:"organization_id"`
	Label          string         `db:"label"`
	FieldType      string         `db:"field_type"`
	Required       bool           `db:"required"`
	Options        pq.StringArray `db:"options"`
	Placeholder    string         `db:"placeholder"`
	HelpText       string         `db:"help_text"`
	DisplayOrder   int            `db:"display_order"`
	Active         bool           `db:"active"`
	model.Metadata
}

// Answer is one stored response to a custom field on a registration.
// Multiselect values are kept as a JSON array string.
type Answer struct {
	ID             string `db:"id"`
	RegistrationID string `db:"registration_id"`
	CustomFieldID  string `db:"custom_field_id"`
	Value          string `db:"value"`
	model.Metadata
}

// AnswerDetail is an Answer joined with the label and type of its field.
type AnswerDetail struct {
	ID             string `db:"id"`
	RegistrationID string `db:"registration_id"`
	CustomFieldID  string `db:"custom_field_id"`
	Value          string `db:"value"`
	Label          string `column:"label"      db:"field_label" table:"custom_fields"`
	FieldType      string `column:"field_type" db:"field_type"  table:"custom_fields"`
	DisplayOrder   int    `column:"display_order" db:"display_order" table:"custom_fields"`
}

func (AnswerDetail) GetJoinQuery() string {
	return "JOIN custom_fields ON custom_fields.id = custom_field_responses.custom_field_id"
}
