package dto

import (
	"strings"

	"sportsassist/internal/domains/user/model"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	gModel "sportsassist/shared/model"
	"sportsassist/shared/sanitize"
	"sportsassist/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	OrganizationID string `json:"organization_id" validate:"omitempty,uuid"`
	Email          string `json:"email"           validate:"required,email,max=255"`
	Password       string `json:"password"        validate:"required,password"`
	FullName       string `json:"full_name"       validate:"required,max=150"`
	Phone          string `json:"phone"           validate:"omitempty,max=30"`
	Role           string `json:"role"            validate:"required,oneof=superadmin admin staff parent"`
	ProfileImage   string `json:"profile_image"   validate:"omitempty,url"`
}

func (r *CreateUserRequest) ToModel(user, hashedPassword string) model.User {
	var organizationID *string
	if r.OrganizationID != constant.Empty {
		organizationID = &r.OrganizationID
	}

	return model.User{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		Email:          strings.ToLower(strings.TrimSpace(r.Email)),
		Password:       hashedPassword,
		FullName:       sanitize.Text(r.FullName),
		Phone:          sanitize.Text(r.Phone),
		Role:           r.Role,
		ProfileImage:   r.ProfileImage,
		Active:         true,
		Metadata:       gModel.NewMetadata(user, timezone.Now()),
	}
}

type UserResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id,omitempty"`
	Email          string  `json:"email"`
	FullName       string  `json:"full_name"`
	Phone          string  `json:"phone"`
	Role           string  `json:"role"`
	ProfileImage   string  `json:"profile_image"`
	Active         bool    `json:"active"`
	LastLogin      *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.OrganizationID = model.Organization()
	r.Email = model.Email
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.Role = model.Role
	r.ProfileImage = model.ProfileImage
	r.Active = model.Active
	r.LastLogin = nil

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}

// UpdateUserRequest carries profile fields any user may change on themselves
// and the administrative fields only admins may change.
type UpdateUserRequest struct {
	FullName     string `db:"full_name"     json:"full_name"     validate:"omitempty,max=150"`
	Phone        string `db:"phone"         json:"phone"         validate:"omitempty,max=30"`
	ProfileImage string `db:"profile_image" json:"profile_image" validate:"omitempty,url"`
	Role         string `db:"role"          json:"role"          validate:"omitempty,oneof=superadmin admin staff parent"`
	Active       *bool  `db:"active"        json:"active"`
}

func (u *UpdateUserRequest) IsAdministrative() bool {
	return u.Role != constant.Empty || u.Active != nil
}

func (u *UpdateUserRequest) Normalize() {
	u.FullName = sanitize.Text(u.FullName)
	u.Phone = sanitize.Text(u.Phone)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
