package dto

import (
	"time"

	"sportsassist/internal/domains/child/model"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	gModel "sportsassist/shared/model"
	"sportsassist/shared/sanitize"
	"sportsassist/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateChildRequest struct {
	ParentID              string   `json:"parent_id"               validate:"omitempty,uuid"`
	FullName              string   `json:"full_name"               validate:"required,max=150"`
	DateOfBirth           string   `json:"date_of_birth"           validate:"required,datetime=2006-01-02"`
	Gender                string   `json:"gender"                  validate:"omitempty,gender"`
	SkillLevel            string   `json:"skill_level"             validate:"omitempty,skill_level"`
	JerseySize            string   `json:"jersey_size"             validate:"omitempty,jersey_size"`
	SportPreferences      []string `json:"sport_preferences"       validate:"omitempty,max=10,dive,sport"`
	MedicalNotes          string   `json:"medical_notes"           validate:"omitempty,max=2000"`
	Allergies             string   `json:"allergies"               validate:"omitempty,max=1000"`
	EmergencyContactName  string   `json:"emergency_contact_name"  validate:"omitempty,max=150"`
	EmergencyContactPhone string   `json:"emergency_contact_phone" validate:"omitempty,max=30"`
}

func (c *CreateChildRequest) ToModel(user string, dateOfBirth time.Time) model.Child {
	preferences := pq.StringArray(c.SportPreferences)
	if preferences == nil {
		preferences = pq.StringArray{}
	}

	return model.Child{
		ID:                    uuid.NewString(),
		ParentID:              c.ParentID,
		FullName:              sanitize.Text(c.FullName),
		DateOfBirth:           dateOfBirth,
		Gender:                c.Gender,
		SkillLevel:            c.SkillLevel,
		JerseySize:            c.JerseySize,
		SportPreferences:      preferences,
		MedicalNotes:          sanitize.Text(c.MedicalNotes),
		Allergies:             sanitize.Text(c.Allergies),
		EmergencyContactName:  sanitize.Text(c.EmergencyContactName),
		EmergencyContactPhone: sanitize.Text(c.EmergencyContactPhone),
		Metadata:              gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateChildRequest leaves DateOfBirthValue and SportPreferencesValue for the
// service to fill from the raw fields after parsing.
type UpdateChildRequest struct {
	FullName              string         `db:"full_name"               json:"full_name"               validate:"omitempty,max=150"`
	DateOfBirth           string         `json:"date_of_birth"           validate:"omitempty,datetime=2006-01-02"`
	DateOfBirthValue      *time.Time     `db:"date_of_birth"           json:"-"`
	Gender                string         `db:"gender"                  json:"gender"                  validate:"omitempty,gender"`
	SkillLevel            string         `db:"skill_level"             json:"skill_level"             validate:"omitempty,skill_level"`
	JerseySize            string         `db:"jersey_size"             json:"jersey_size"             validate:"omitempty,jersey_size"`
	SportPreferences      []string       `json:"sport_preferences"       validate:"omitempty,max=10,dive,sport"`
	SportPreferencesValue pq.StringArray `db:"sport_preferences"       json:"-"`
	MedicalNotes          string         `db:"medical_notes"           json:"medical_notes"           validate:"omitempty,max=2000"`
	Allergies             string         `db:"allergies"               json:"allergies"               validate:"omitempty,max=1000"`
	EmergencyContactName  string         `db:"emergency_contact_name"  json:"emergency_contact_name"  validate:"omitempty,max=150"`
	EmergencyContactPhone string         `db:"emergency_contact_phone" json:"emergency_contact_phone" validate:"omitempty,max=30"`
}

func (u *UpdateChildRequest) IsEmpty() bool {
	return u.FullName == "" && u.DateOfBirth == "" && u.Gender == "" && u.SkillLevel == "" &&
		u.JerseySize == "" && u.SportPreferences == nil && u.MedicalNotes == "" && u.Allergies == "" &&
		u.EmergencyContactName == "" && u.EmergencyContactPhone == ""
}

func (u *UpdateChildRequest) Normalize() error {
	u.FullName = sanitize.Text(u.FullName)
	u.MedicalNotes = sanitize.Text(u.MedicalNotes)
	u.Allergies = sanitize.Text(u.Allergies)
	u.EmergencyContactName = sanitize.Text(u.EmergencyContactName)
	u.EmergencyContactPhone = sanitize.Text(u.EmergencyContactPhone)

	if u.SportPreferences != nil {
		u.SportPreferencesValue = pq.StringArray(u.SportPreferences)
	}

	if u.DateOfBirth != constant.Empty {
		dateOfBirth, err := ParseDateOfBirth(u.DateOfBirth)
		if err != nil {
			return err
		}

		u.DateOfBirthValue = &dateOfBirth
	}

	return nil
}

// ParseDateOfBirth parses a YYYY-MM-DD date and rejects dates in the future.
func ParseDateOfBirth(value string) (time.Time, error) {
	dateOfBirth, err := timezone.ParseDate(value)
	if err != nil {
		return dateOfBirth, errInvalidDate
	}

	if dateOfBirth.After(timezone.Now()) {
		return dateOfBirth, errFutureDate
	}

	return dateOfBirth, nil
}

type ChildResponse struct {
	ID                    string   `json:"id"`
	ParentID              string   `json:"parent_id"`
	FullName              string   `json:"full_name"`
	DateOfBirth           string   `json:"date_of_birth"`
	Age                   int      `json:"age"`
	Gender                string   `json:"gender"`
	SkillLevel            string   `json:"skill_level"`
	JerseySize            string   `json:"jersey_size"`
	SportPreferences      []string `json:"sport_preferences"`
	MedicalNotes          string   `json:"medical_notes"`
	Allergies             string   `json:"allergies"`
	EmergencyContactName  string   `json:"emergency_contact_name"`
	EmergencyContactPhone string   `json:"emergency_contact_phone"`
	gDto.Metadata
}

func (r *ChildResponse) FromModel(model model.Child) {
	r.ID = model.ID
	r.ParentID = model.ParentID
	r.FullName = model.FullName
	r.DateOfBirth = model.DateOfBirth.Format(constant.DateOnlyFormat)
	r.Age = timezone.AgeOn(model.DateOfBirth, timezone.Now())
	r.Gender = model.Gender
	r.SkillLevel = model.SkillLevel
	r.JerseySize = model.JerseySize
	r.SportPreferences = []string(model.SportPreferences)
	r.MedicalNotes = model.MedicalNotes
	r.Allergies = model.Allergies
	r.EmergencyContactName = model.EmergencyContactName
	r.EmergencyContactPhone = model.EmergencyContactPhone

	if r.SportPreferences == nil {
		r.SportPreferences = []string{}
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetChildrenResponse struct {
	Children  []ChildResponse `json:"children"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetChildrenResponse) FromModels(models []model.Child, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Children = make([]ChildResponse, len(models))
	for i, mod := range models {
		r.Children[i].FromModel(mod)
	}
}
