package dto

import (
	"sportsassist/internal/domains/customfield/model"
	"sportsassist/shared/catalog"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"
	gModel "sportsassist/shared/model"
	"sportsassist/shared/sanitize"
	"sportsassist/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateCustomFieldRequest struct {
	Label        string   `json:"label"         validate:"required,max=200"`
	FieldType    string   `json:"field_type"    validate:"required,field_type"`
	Required     bool     `json:"required"`
	Options      []string `json:"options"       validate:"omitempty,max=50,unique,dive,required,max=200"`
	Placeholder  string   `json:"placeholder"   validate:"omitempty,max=200"`
	HelpText     string   `json:"help_text"     validate:"omitempty,max=500"`
	DisplayOrder *int     `json:"display_order" validate:"omitempty,min=0"`
	Active       *bool    `json:"active"`
}

// CheckOptions enforces that select types list choices and other types do not.
func (c *CreateCustomFieldRequest) CheckOptions() error {
	return checkOptions(c.FieldType, c.Options)
}

func (c *CreateCustomFieldRequest) ToModel(user, organizationID string, displayOrder int) model.CustomField {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	options := pq.StringArray(sanitize.TextSlice(c.Options))
	if options == nil {
		options = pq.StringArray{}
	}

	return model.CustomField{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		Label:          sanitize.Text(c.Label),
		FieldType:      c.FieldType,
		Required:       c.Required,
		Options:        options,
		Placeholder:    sanitize.Text(c.Placeholder),
		HelpText:       sanitize.Text(c.HelpText),
		DisplayOrder:   displayOrder,
		Active:         active,
		Metadata:       gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateCustomFieldRequest changes a field in place. The field type is fixed
// once created so stored answers stay readable.
type UpdateCustomFieldRequest struct {
	Label        string         `db:"label"         json:"label"         validate:"omitempty,max=200"`
	Required     *bool          `db:"required"      json:"required"`
	Options      []string       `json:"options"       validate:"omitempty,max=50,unique,dive,required,max=200"`
	OptionsValue pq.StringArray `db:"options"       json:"-"`
	Placeholder  string         `db:"placeholder"   json:"placeholder"   validate:"omitempty,max=200"`
	HelpText     string         `db:"help_text"     json:"help_text"     validate:"omitempty,max=500"`
	DisplayOrder *int           `db:"display_order" json:"display_order" validate:"omitempty,min=0"`
	Active       *bool          `db:"active"        json:"active"`
}

func (u *UpdateCustomFieldRequest) IsEmpty() bool {
	return u.Label == "" && u.Required == nil && u.Options == nil && u.Placeholder == "" &&
		u.HelpText == "" && u.DisplayOrder == nil && u.Active == nil
}

func (u *UpdateCustomFieldRequest) Normalize(fieldType string) error {
	u.Label = sanitize.Text(u.Label)
	u.Placeholder = sanitize.Text(u.Placeholder)
	u.HelpText = sanitize.Text(u.HelpText)

	if u.Options == nil {
		return nil
	}

	if err := checkOptions(fieldType, u.Options); err != nil {
		return err
	}

	u.OptionsValue = pq.StringArray(sanitize.TextSlice(u.Options))

	return nil
}

type ReorderCustomFieldsRequest struct {
	FieldIDs []string `json:"field_ids" validate:"required,min=1,unique,dive,uuid"`
}

type CustomFieldResponse struct {
	ID             string   `json:"id"`
	OrganizationID string   `json:"organization_id"`
	Label          string   `json:"label"`
	FieldType      string   `json:"field_type"`
	Required       bool     `json:"required"`
	Options        []string `json:"options"`
	Placeholder    string   `json:"placeholder"`
	HelpText       string   `json:"help_text"`
	DisplayOrder   int      `json:"display_order"`
	Active         bool     `json:"active"`
	gDto.Metadata
}

func (r *CustomFieldResponse) FromModel(model model.CustomField) {
	r.ID = model.ID
	r.OrganizationID = model.OrganizationID
	r.Label = model.Label
	r.FieldType = model.FieldType
	r.Required = model.Required
	r.Options = []string(model.Options)
	r.Placeholder = model.Placeholder
	r.HelpText = model.HelpText
	r.DisplayOrder = model.DisplayOrder
	r.Active = model.Active

	if r.Options == nil {
		r.Options = []string{}
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetCustomFieldsResponse struct {
	CustomFields []CustomFieldResponse `json:"custom_fields"`
}

func (r *GetCustomFieldsResponse) FromModels(models []model.CustomField) {
	r.CustomFields = make([]CustomFieldResponse, len(models))
	for i, mod := range models {
		r.CustomFields[i].FromModel(mod)
	}
}

type AnswerResponse struct {
	CustomFieldID string `json:"custom_field_id"`
	Label         string `json:"label"`
	FieldType     string `json:"field_type"`
	Value         string `json:"value"`
}

func (r *AnswerResponse) FromModel(model model.AnswerDetail) {
	r.CustomFieldID = model.CustomFieldID
	r.Label = model.Label
	r.FieldType = model.FieldType
	r.Value = model.Value
}

func checkOptions(fieldType string, options []string) error {
	if catalog.HasOptions(fieldType) && len(options) == 0 {
		return failure.BadRequestFromString("options are required for select and multiselect fields")
	}

	if !catalog.HasOptions(fieldType) && len(options) > 0 {
		return failure.BadRequestFromString("options are only allowed for select and multiselect fields")
	}

	return nil
}
