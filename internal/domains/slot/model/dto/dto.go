package dto

import (
	"time"

	"sportsassist/internal/domains/slot/model"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"
	gModel "sportsassist/shared/model"
	"sportsassist/shared/sanitize"
	"sportsassist/shared/timezone"

	"github.com/google/uuid"
)

var errSlotTimes = failure.BadRequestFromString("end_time must be after start_time")

type CreateSlotRequest struct {
	OrganizationID string `json:"organization_id" validate:"omitempty,uuid"`
	CampID         string `json:"camp_id"         validate:"omitempty,uuid"`
	StaffID        string `json:"staff_id"        validate:"omitempty,uuid"`
	Title          string `json:"title"           validate:"required,max=200"`
	StartTime      string `json:"start_time"      validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime        string `json:"end_time"        validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Location       string `json:"location"        validate:"omitempty,max=300"`
	MaxBookings    int    `json:"max_bookings"    validate:"required,min=1,max=1000"`
	Notes          string `json:"notes"           validate:"omitempty,max=2000"`
}

// Window parses the start and end of the request.
func (c *CreateSlotRequest) Window() (time.Time, time.Time, error) {
	start, err := parseTime(c.StartTime)
	if err != nil {
		return start, start, err
	}

	end, err := parseTime(c.EndTime)
	if err != nil {
		return start, end, err
	}

	if !end.After(start) {
		return start, end, errSlotTimes
	}

	return start, end, nil
}

func (c *CreateSlotRequest) ToModel(user, organizationID, staffID string, start, end time.Time) model.Slot {
	var campID *string
	if c.CampID != constant.Empty {
		campID = &c.CampID
	}

	return model.Slot{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		CampID:         campID,
		StaffID:        staffID,
		Title:          sanitize.Text(c.Title),
		StartTime:      start,
		EndTime:        end,
		Location:       sanitize.Text(c.Location),
		MaxBookings:    c.MaxBookings,
		Status:         constant.SlotStatusOpen,
		Notes:          sanitize.Text(c.Notes),
		Metadata:       gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateSlotRequest struct {
	Title          string     `db:"title"        json:"title"        validate:"omitempty,max=200"`
	StartTime      string     `json:"start_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	StartTimeValue *time.Time `db:"start_time"   json:"-"`
	EndTime        string     `json:"end_time"   validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndTimeValue   *time.Time `db:"end_time"     json:"-"`
	Location       string     `db:"location"     json:"location"     validate:"omitempty,max=300"`
	MaxBookings    *int       `db:"max_bookings" json:"max_bookings" validate:"omitempty,min=1,max=1000"`
	Status         string     `db:"status"       json:"status"       validate:"omitempty,oneof=open closed cancelled"`
	Notes          string     `db:"notes"        json:"notes"        validate:"omitempty,max=2000"`
}

func (u *UpdateSlotRequest) IsEmpty() bool {
	return u.Title == "" && u.StartTime == "" && u.EndTime == "" && u.Location == "" &&
		u.MaxBookings == nil && u.Status == "" && u.Notes == ""
}

// Apply sanitizes the request and checks the time window that results from
// merging it onto current.
func (u *UpdateSlotRequest) Apply(current model.Slot) error {
	u.Title = sanitize.Text(u.Title)
	u.Location = sanitize.Text(u.Location)
	u.Notes = sanitize.Text(u.Notes)

	start, end := current.StartTime, current.EndTime

	if u.StartTime != constant.Empty {
		parsed, err := parseTime(u.StartTime)
		if err != nil {
			return err
		}

		u.StartTimeValue, start = &parsed, parsed
	}

	if u.EndTime != constant.Empty {
		parsed, err := parseTime(u.EndTime)
		if err != nil {
			return err
		}

		u.EndTimeValue, end = &parsed, parsed
	}

	if !end.After(start) {
		return errSlotTimes
	}

	return nil
}

// SlotFilter holds the query string filters of the slot listing.
type SlotFilter struct {
	CampID  string
	StaffID string
	Status  string
	From    string
	To      string
}

// FilterGroup converts the filters into where clauses. From and To bound the
// start and end of the slot.
func (f SlotFilter) FilterGroup() (gDto.FilterGroup, error) {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	group.AddEq(model.TableName, model.FieldCampID, f.CampID)
	group.AddEq(model.TableName, model.FieldStaffID, f.StaffID)
	group.AddEq(model.TableName, model.FieldStatus, f.Status)

	if f.From != constant.Empty {
		from, err := parseTime(f.From)
		if err != nil {
			return group, err
		}

		group.Add(gDto.Filter{
			ArgName:  "from",
			Field:    model.FieldStartTime,
			Value:    from,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if f.To != constant.Empty {
		to, err := parseTime(f.To)
		if err != nil {
			return group, err
		}

		group.Add(gDto.Filter{
			ArgName:  "to",
			Field:    model.FieldEndTime,
			Value:    to,
			Operator: gDto.FilterOperatorLessEq,
			Table:    model.TableName,
		})
	}

	return group, nil
}

type SlotResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	CampID         *string `json:"camp_id"`
	StaffID        string  `json:"staff_id"`
	Title          string  `json:"title"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Location       string  `json:"location"`
	MaxBookings    int     `json:"max_bookings"`
	Status         string  `json:"status"`
	Notes          string  `json:"notes"`
	ConfirmedCount *int    `json:"confirmed_count,omitempty"`
	Remaining      *int    `json:"remaining,omitempty"`
	gDto.Metadata
}

func (r *SlotResponse) FromModel(model model.Slot) {
	r.ID = model.ID
	r.OrganizationID = model.OrganizationID
	r.CampID = model.CampID
	r.StaffID = model.StaffID
	r.Title = model.Title
	r.StartTime = timezone.Format(model.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(model.EndTime, constant.DateFormat)
	r.Location = model.Location
	r.MaxBookings = model.MaxBookings
	r.Status = model.Status
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

func (r *SlotResponse) WithAvailability(confirmed int) {
	remaining := max(r.MaxBookings-confirmed, 0)

	r.ConfirmedCount = &confirmed
	r.Remaining = &remaining
}

type GetSlotsResponse struct {
	Slots     []SlotResponse `json:"slots"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetSlotsResponse) FromModels(models []model.Slot, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Slots = make([]SlotResponse, len(models))
	for i, mod := range models {
		r.Slots[i].FromModel(mod)
	}
}

func parseTime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return parsed, failure.BadRequestFromString("slot times must be RFC 3339 timestamps")
	}

	return parsed, nil
}
