package dto

import (
	"mime/multipart"
	"time"

	"sportsassist/internal/domains/camp/model"
	customFieldDto "sportsassist/internal/domains/customfield/model/dto"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"
	gModel "sportsassist/shared/model"
	"sportsassist/shared/sanitize"
	"sportsassist/shared/timezone"

	"github.com/google/uuid"
)

type CreateCampRequest struct {
	OrganizationID      string                `json:"organization_id"       validate:"omitempty,uuid"`
	Name                string                `json:"name"                  validate:"required,max=200"`
	Description         string                `json:"description"           validate:"omitempty,max=10000"`
	Sport               string                `json:"sport"                 validate:"required,sport"`
	SkillLevel          string                `json:"skill_level"           validate:"omitempty,skill_level"`
	Location            string                `json:"location"              validate:"omitempty,max=300"`
	StartDate           string                `json:"start_date"            validate:"required,datetime=2006-01-02"`
	EndDate             string                `json:"end_date"              validate:"required,datetime=2006-01-02"`
	RegistrationOpenAt  string                `json:"registration_open_at"  validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	RegistrationCloseAt string                `json:"registration_close_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	MinAge              *int                  `json:"min_age"               validate:"omitempty,min=0,max=25"`
	MaxAge              *int                  `json:"max_age"               validate:"omitempty,min=0,max=25"`
	Capacity            int                   `json:"capacity"              validate:"required,min=1,max=10000"`
	Price               int64                 `json:"price"                 validate:"min=0"`
	WaitlistEnabled     bool                  `json:"waitlist_enabled"`
	Status              string                `json:"status"                validate:"omitempty,oneof=draft published"`
	Image               *multipart.FileHeader `json:"-"                     validate:"omitempty,mimetypes=image/png image/jpeg image/webp,maxfilesize=5"`
	ImageFile           multipart.File        `json:"-"`
}

// Schedule parses and cross-checks the dates and age bounds of the request.
func (c *CreateCampRequest) Schedule() (Schedule, error) {
	schedule := Schedule{MinAge: c.MinAge, MaxAge: c.MaxAge}

	var err error

	if schedule.StartDate, err = parseDate(c.StartDate); err != nil {
		return schedule, err
	}

	if schedule.EndDate, err = parseDate(c.EndDate); err != nil {
		return schedule, err
	}

	if schedule.RegistrationOpenAt, err = parseTimestamp(c.RegistrationOpenAt); err != nil {
		return schedule, err
	}

	if schedule.RegistrationCloseAt, err = parseTimestamp(c.RegistrationCloseAt); err != nil {
		return schedule, err
	}

	return schedule, schedule.Check()
}

func (c *CreateCampRequest) ToModel(user, organizationID, imageURL string, schedule Schedule) model.Camp {
	status := c.Status
	if status == constant.Empty {
		status = constant.CampStatusDraft
	}

	return model.Camp{
		ID:                  uuid.NewString(),
		OrganizationID:      organizationID,
		Name:                sanitize.Text(c.Name),
		Description:         sanitize.HTML(c.Description),
		Sport:               c.Sport,
		SkillLevel:          c.SkillLevel,
		Location:            sanitize.Text(c.Location),
		StartDate:           schedule.StartDate,
		EndDate:             schedule.EndDate,
		RegistrationOpenAt:  schedule.RegistrationOpenAt,
		RegistrationCloseAt: schedule.RegistrationCloseAt,
		MinAge:              schedule.MinAge,
		MaxAge:              schedule.MaxAge,
		Capacity:            c.Capacity,
		Price:               c.Price,
		WaitlistEnabled:     c.WaitlistEnabled,
		Status:              status,
		ImageURL:            imageURL,
		Metadata:            gModel.NewMetadata(user, timezone.Now()),
	}
}

// Schedule holds the parsed time and age bounds of a camp.
type Schedule struct {
	StartDate           time.Time
	EndDate             time.Time
	RegistrationOpenAt  *time.Time
	RegistrationCloseAt *time.Time
	MinAge              *int
	MaxAge              *int
}

func ScheduleOf(camp model.Camp) Schedule {
	return Schedule{
		StartDate:           camp.StartDate,
		EndDate:             camp.EndDate,
		RegistrationOpenAt:  camp.RegistrationOpenAt,
		RegistrationCloseAt: camp.RegistrationCloseAt,
		MinAge:              camp.MinAge,
		MaxAge:              camp.MaxAge,
	}
}

func (s Schedule) Check() error {
	if s.EndDate.Before(s.StartDate) {
		return failure.BadRequestFromString("end_date must not be before start_date")
	}

	if s.RegistrationOpenAt != nil && s.RegistrationCloseAt != nil && !s.RegistrationCloseAt.After(*s.RegistrationOpenAt) {
		return failure.BadRequestFromString("registration_close_at must be after registration_open_at")
	}

	if s.RegistrationOpenAt != nil && !s.RegistrationOpenAt.Before(s.StartDate) {
		return failure.BadRequestFromString("registration must open before the camp starts")
	}

	if s.MinAge != nil && s.MaxAge != nil && *s.MinAge > *s.MaxAge {
		return failure.BadRequestFromString("min_age must not exceed max_age")
	}

	return nil
}

// UpdateCampRequest uses pointers for every optional value so that zero
// values such as price 0 or waitlist false can be set. The parsed *Value
// fields are filled by Apply.
type UpdateCampRequest struct {
	Name                     string                `db:"name"                  json:"name"                  validate:"omitempty,max=200"`
	Description              string                `db:"description"           json:"description"           validate:"omitempty,max=10000"`
	Sport                    string                `db:"sport"                 json:"sport"                 validate:"omitempty,sport"`
	SkillLevel               string                `db:"skill_level"           json:"skill_level"           validate:"omitempty,skill_level"`
	Location                 string                `db:"location"              json:"location"              validate:"omitempty,max=300"`
	StartDate                string                `json:"start_date"            validate:"omitempty,datetime=2006-01-02"`
	StartDateValue           *time.Time            `db:"start_date"            json:"-"`
	EndDate                  string                `json:"end_date"              validate:"omitempty,datetime=2006-01-02"`
	EndDateValue             *time.Time            `db:"end_date"              json:"-"`
	RegistrationOpenAt       string                `json:"registration_open_at"  validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	RegistrationOpenAtValue  *time.Time            `db:"registration_open_at"  json:"-"`
	RegistrationCloseAt      string                `json:"registration_close_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	RegistrationCloseAtValue *time.Time            `db:"registration_close_at" json:"-"`
	MinAge                   *int                  `db:"min_age"               json:"min_age"               validate:"omitempty,min=0,max=25"`
	MaxAge                   *int                  `db:"max_age"               json:"max_age"               validate:"omitempty,min=0,max=25"`
	Capacity                 *int                  `db:"capacity"              json:"capacity"              validate:"omitempty,min=1,max=10000"`
	Price                    *int64                `db:"price"                 json:"price"                 validate:"omitempty,min=0"`
	WaitlistEnabled          *bool                 `db:"waitlist_enabled"      json:"waitlist_enabled"`
	Status                   string                `db:"status"                json:"status"                validate:"omitempty,oneof=draft published cancelled completed"`
	Image                    *multipart.FileHeader `json:"-"                     validate:"omitempty,mimetypes=image/png image/jpeg image/webp,maxfilesize=5"`
	ImageFile                multipart.File        `json:"-"`
}

func (u *UpdateCampRequest) IsEmpty() bool {
	return u.Name == "" && u.Description == "" && u.Sport == "" && u.SkillLevel == "" && u.Location == "" &&
		u.StartDate == "" && u.EndDate == "" && u.RegistrationOpenAt == "" && u.RegistrationCloseAt == "" &&
		u.MinAge == nil && u.MaxAge == nil && u.Capacity == nil && u.Price == nil && u.WaitlistEnabled == nil &&
		u.Status == "" && u.Image == nil
}

// Apply sanitizes the request, parses its dates and checks the schedule that
// results from merging it onto current.
func (u *UpdateCampRequest) Apply(current model.Camp) error {
	u.Name = sanitize.Text(u.Name)
	u.Description = sanitize.HTML(u.Description)
	u.Location = sanitize.Text(u.Location)

	merged := ScheduleOf(current)

	if u.StartDate != constant.Empty {
		start, err := parseDate(u.StartDate)
		if err != nil {
			return err
		}

		u.StartDateValue, merged.StartDate = &start, start
	}

	if u.EndDate != constant.Empty {
		end, err := parseDate(u.EndDate)
		if err != nil {
			return err
		}

		u.EndDateValue, merged.EndDate = &end, end
	}

	var err error

	if u.RegistrationOpenAt != constant.Empty {
		if u.RegistrationOpenAtValue, err = parseTimestamp(u.RegistrationOpenAt); err != nil {
			return err
		}

		merged.RegistrationOpenAt = u.RegistrationOpenAtValue
	}

	if u.RegistrationCloseAt != constant.Empty {
		if u.RegistrationCloseAtValue, err = parseTimestamp(u.RegistrationCloseAt); err != nil {
			return err
		}

		merged.RegistrationCloseAt = u.RegistrationCloseAtValue
	}

	if u.MinAge != nil {
		merged.MinAge = u.MinAge
	}

	if u.MaxAge != nil {
		merged.MaxAge = u.MaxAge
	}

	return merged.Check()
}

type CampResponse struct {
	ID                  string  `json:"id"`
	OrganizationID      string  `json:"organization_id"`
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	Sport               string  `json:"sport"`
	SkillLevel          string  `json:"skill_level"`
	Location            string  `json:"location"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	RegistrationOpenAt  *string `json:"registration_open_at"`
	RegistrationCloseAt *string `json:"registration_close_at"`
	MinAge              *int    `json:"min_age"`
	MaxAge              *int    `json:"max_age"`
	Capacity            int     `json:"capacity"`
	Price               int64   `json:"price"`
	WaitlistEnabled     bool    `json:"waitlist_enabled"`
	Status              string  `json:"status"`
	ImageURL            string  `json:"image_url"`
	ConfirmedCount      *int    `json:"confirmed_count,omitempty"`
	SpotsRemaining      *int    `json:"spots_remaining,omitempty"`
	gDto.Metadata
}

func (r *CampResponse) FromModel(model model.Camp) {
	r.ID = model.ID
	r.OrganizationID = model.OrganizationID
	r.Name = model.Name
	r.Description = model.Description
	r.Sport = model.Sport
	r.SkillLevel = model.SkillLevel
	r.Location = model.Location
	r.StartDate = model.StartDate.Format(constant.DateOnlyFormat)
	r.EndDate = model.EndDate.Format(constant.DateOnlyFormat)
	r.RegistrationOpenAt = formatOptional(model.RegistrationOpenAt)
	r.RegistrationCloseAt = formatOptional(model.RegistrationCloseAt)
	r.MinAge = model.MinAge
	r.MaxAge = model.MaxAge
	r.Capacity = model.Capacity
	r.Price = model.Price
	r.WaitlistEnabled = model.WaitlistEnabled
	r.Status = model.Status
	r.ImageURL = model.ImageURL
	r.Metadata.FromModel(model.Metadata)
}

// WithAvailability adds the live seat count to the response.
func (r *CampResponse) WithAvailability(confirmed int) {
	remaining := max(r.Capacity-confirmed, 0)

	r.ConfirmedCount = &confirmed
	r.SpotsRemaining = &remaining
}

type GetCampsResponse struct {
	Camps     []CampResponse `json:"camps"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetCampsResponse) FromModels(models []model.Camp, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Camps = make([]CampResponse, len(models))
	for i, mod := range models {
		r.Camps[i].FromModel(mod)
	}
}

// RegistrationFormResponse is everything a parent needs to render the sign-up
// form of a camp.
type RegistrationFormResponse struct {
	Camp         CampResponse                         `json:"camp"`
	CustomFields []customFieldDto.CustomFieldResponse `json:"custom_fields"`
}

func parseDate(value string) (time.Time, error) {
	parsed, err := timezone.ParseDate(value)
	if err != nil {
		return parsed, failure.BadRequestFromString("dates must be formatted as YYYY-MM-DD")
	}

	return parsed, nil
}

func parseTimestamp(value string) (*time.Time, error) {
	if value == constant.Empty {
		return nil, nil //nolint:nilnil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, failure.BadRequestFromString("registration window must be RFC 3339 timestamps")
	}

	return &parsed, nil
}

func formatOptional(value *time.Time) *string {
	if value == nil {
		return nil
	}

	formatted := timezone.Format(*value, constant.DateFormat)

	return &formatted
}
