package model

import (
	"time"

	"sportsassist/shared/model"
)

const (
	TableName  = "camps"
	EntityName = "camp"

	FieldID             = "id"
	FieldOrganizationID = "organization_id"
	FieldName           = "name"
	FieldSport          = "sport"
	FieldSkillLevel     = "skill_level"
	FieldStatus         = "status"
	FieldStartDate      = "start_date"
	FieldCapacity       = "capacity"
	FieldPrice          = "price"
	FieldImageURL       = "image_url"
)

type Camp struct {
	ID                  string     `db:"id"`
	OrganizationID      string     `db:"organization_id"`
	Name                string     `db:"name"`
	Description         string     `db:"description"`
	Sport               string     `db:"sport"`
	SkillLevel          string     `db:"skill_level"`
	Location            string     `db:"location"`
	StartDate           time.Time  `db:"start_date"`
	EndDate             time.Time  `db:"end_date"`
	RegistrationOpenAt  *time.Time `db:"registration_open_at"`
	RegistrationCloseAt *time.Time `db:"registration_close_at"`
	MinAge              *int       `db:"min_age"`
	MaxAge              *int       `db:"max_age"`
	Capacity            int        `db:"capacity"`
	Price               int64      `db:"price"`
	WaitlistEnabled     bool       `db:"waitlist_enabled"`
	Status              string     `db:"status"`
	ImageURL            string     `db:"image_url"`
	model.Metadata
}

// RegistrationOpen reports whether now falls inside the registration window.
// Missing bounds are open ended, but registration always closes at the start
// date.
func (c Camp) RegistrationOpen(now time.Time) bool {
	if c.RegistrationOpenAt != nil && now.Before(*c.RegistrationOpenAt) {
		return false
	}

	if c.RegistrationCloseAt != nil && now.After(*c.RegistrationCloseAt) {
		return false
	}

	return now.Before(c.StartDate)
}

// AcceptsAge reports whether age falls within the optional age bounds.
func (c Camp) AcceptsAge(age int) bool {
	if c.MinAge != nil && age < *c.MinAge {
		return false
	}

	if c.MaxAge != nil && age > *c.MaxAge {
		return false
	}

	return true
}
