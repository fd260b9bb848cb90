package dto

import (
	"mime/multipart"

	"sportsassist/internal/domains/organization/model"
	"sportsassist/shared"
	gDto "sportsassist/shared/dto"
	gModel "sportsassist/shared/model"
	"sportsassist/shared/sanitize"
	"sportsassist/shared/timezone"

	"github.com/google/uuid"
)

type CreateOrganizationRequest struct {
	Name         string                `json:"name"          validate:"required,max=150"`
	Slug         string                `json:"slug"          validate:"omitempty,max=100"`
	Description  string                `json:"description"   validate:"omitempty,max=2000"`
	ContactEmail string                `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string                `json:"contact_phone" validate:"omitempty,max=30"`
	Website      string                `json:"website"       validate:"omitempty,url"`
	Logo         *multipart.FileHeader `json:"-"             validate:"omitempty,mimetypes=image/png image/jpeg image/webp,maxfilesize=2"`
	LogoFile     multipart.File        `json:"-"`
	Active       *bool                 `json:"active"`
}

// ToModel sanitizes free text and derives the slug from the name when none
// was given.
func (c *CreateOrganizationRequest) ToModel(user, logoURL string) model.Organization {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	name := sanitize.Text(c.Name)

	slug := shared.Slugify(sanitize.Text(c.Slug))
	if slug == "" {
		slug = shared.Slugify(name)
	}

	return model.Organization{
		ID:           uuid.NewString(),
		Name:         name,
		Slug:         slug,
		Description:  sanitize.Text(c.Description),
		ContactEmail: c.ContactEmail,
		ContactPhone: sanitize.Text(c.ContactPhone),
		LogoURL:      logoURL,
		Website:      c.Website,
		Active:       active,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateOrganizationRequest struct {
	Name         string                `db:"name"          json:"name"          validate:"omitempty,max=150"`
	Slug         string                `db:"slug"          json:"slug"          validate:"omitempty,max=100"`
	Description  string                `db:"description"   json:"description"   validate:"omitempty,max=2000"`
	ContactEmail string                `db:"contact_email" json:"contact_email" validate:"omitempty,email"`
	ContactPhone string                `db:"contact_phone" json:"contact_phone" validate:"omitempty,max=30"`
	Website      string                `db:"website"       json:"website"       validate:"omitempty,url"`
	Logo         *multipart.FileHeader `json:"-"             validate:"omitempty,mimetypes=image/png image/jpeg image/webp,maxfilesize=2"`
	LogoFile     multipart.File        `json:"-"`
	Active       *bool                 `db:"active"        json:"active"`
}

// Normalize applies the same text rules as creation.
func (u *UpdateOrganizationRequest) Normalize() {
	u.Name = sanitize.Text(u.Name)
	u.Slug = shared.Slugify(sanitize.Text(u.Slug))
	u.Description = sanitize.Text(u.Description)
	u.ContactPhone = sanitize.Text(u.ContactPhone)
}

type OrganizationResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	LogoURL      string `json:"logo_url"`
	Website      string `json:"website"`
	Active       bool   `json:"active"`
	gDto.Metadata
}

func (r *OrganizationResponse) FromModel(model model.Organization) {
	r.ID = model.ID
	r.Name = model.Name
	r.Slug = model.Slug
	r.Description = model.Description
	r.ContactEmail = model.ContactEmail
	r.ContactPhone = model.ContactPhone
	r.LogoURL = model.LogoURL
	r.Website = model.Website
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetOrganizationsResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetOrganizationsResponse) FromModels(models []model.Organization, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Organizations = make([]OrganizationResponse, len(models))
	for i, mod := range models {
		r.Organizations[i].FromModel(mod)
	}
}
