package model

import "sportsassist/shared/model"

const (
	TableName  = "organizations"
	EntityName = "organization"

	FieldID      = "id"
	FieldName    = "name"
	FieldSlug    = "slug"
	FieldLogoURL = "logo_url"
	FieldActive  = "active"
)

type Organization struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Slug         string `db:"slug"`
	Description  string `db:"description"`
	ContactEmail string `db:"contact_email"`
	ContactPhone string `db:"contact_phone"`
	LogoURL      string `db:"logo_url"`
	Website      string `db:"website"`
	Active       bool   `db:"active"`
	model.Metadata
}
