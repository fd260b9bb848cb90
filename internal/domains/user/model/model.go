package model

import (
	"time"

	"sportsassist/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID             = "id"
	FieldOrganizationID = "organization_id"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldFullName       = "full_name"
	FieldPhone          = "phone"
	FieldRole           = "role"
	FieldProfileImage   = "profile_image"
	FieldActive         = "active"
	FieldLastLogin      = "last_login"
)

type User struct {
	ID             string     `db:"id"`
	OrganizationID *string    `db:"organization_id"`
	Email          string     `db:"email"`
	Password       string     `db:"password"`
	FullName       string     `db:"full_name"`
	Phone          string     `db:"phone"`
	Role           string     `db:"role"`
	ProfileImage   string     `db:"profile_image"`
	Active         bool       `db:"active"`
	LastLogin      *time.Time `db:"last_login"`
	model.Metadata
}

// Organization returns the organization id or an empty string for parents
// and superadmins.
func (u User) Organization() string {
	if u.OrganizationID == nil {
		return ""
	}

	return *u.OrganizationID
}
