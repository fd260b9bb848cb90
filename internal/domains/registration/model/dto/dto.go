package dto

import (
	"time"

	customFieldDto "sportsassist/internal/domains/customfield/model/dto"
	"sportsassist/internal/domains/registration/model"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"
	gModel "sportsassist/shared/model"
	"sportsassist/shared/sanitize"
	"sportsassist/shared/timezone"

	"github.com/google/uuid"
)

// CreateRegistrationRequest signs a child up for a camp. Answers are keyed by
// custom field id.
type CreateRegistrationRequest struct {
	CampID  string         `json:"camp_id"  validate:"required,uuid"`
	ChildID string         `json:"child_id" validate:"required,uuid"`
	Notes   string         `json:"notes"    validate:"omitempty,max=2000"`
	Answers map[string]any `json:"answers"`
}

func (c *CreateRegistrationRequest) ToModel(user, parentID, status string) model.Registration {
	return model.Registration{
		ID:            uuid.NewString(),
		CampID:        c.CampID,
		ChildID:       c.ChildID,
		ParentID:      parentID,
		Status:        status,
		PaymentStatus: constant.PaymentStatusUnpaid,
		Notes:         sanitize.Text(c.Notes),
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRegistrationStatusRequest struct {
	Status        string `db:"status"         json:"status"         validate:"omitempty,oneof=pending confirmed waitlisted cancelled"`
	PaymentStatus string `db:"payment_status" json:"payment_status" validate:"omitempty,oneof=unpaid paid refunded"`
	Notes         string `db:"notes"          json:"notes"          validate:"omitempty,max=2000"`
}

func (u *UpdateRegistrationStatusRequest) Check() error {
	if u.Status == constant.Empty && u.PaymentStatus == constant.Empty && u.Notes == constant.Empty {
		return failure.BadRequestFromString("status, payment_status or notes is required")
	}

	u.Notes = sanitize.Text(u.Notes)

	return nil
}

type RegistrationResponse struct {
	ID            string                          `json:"id"`
	CampID        string                          `json:"camp_id"`
	CampName      string                          `json:"camp_name,omitempty"`
	ChildID       string                          `json:"child_id"`
	ChildName     string                          `json:"child_name,omitempty"`
	ParentID      string                          `json:"parent_id"`
	Status        string                          `json:"status"`
	PaymentStatus string                          `json:"payment_status"`
	Notes         string                          `json:"notes"`
	Answers       []customFieldDto.AnswerResponse `json:"answers,omitempty"`
	gDto.Metadata
}

func (r *RegistrationResponse) FromModel(model model.Registration) {
	r.ID = model.ID
	r.CampID = model.CampID
	r.ChildID = model.ChildID
	r.ParentID = model.ParentID
	r.Status = model.Status
	r.PaymentStatus = model.PaymentStatus
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

func (r *RegistrationResponse) FromDetail(detail model.Detail) {
	r.ID = detail.ID
	r.CampID = detail.CampID
	r.CampName = detail.CampName
	r.ChildID = detail.ChildID
	r.ChildName = detail.ChildName
	r.ParentID = detail.ParentID
	r.Status = detail.Status
	r.PaymentStatus = detail.PaymentStatus
	r.Notes = detail.Notes
	r.Metadata.FromModel(detail.Metadata)
}

type GetRegistrationsResponse struct {
	Registrations []RegistrationResponse `json:"registrations"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetRegistrationsResponse) FromModels(details []model.Detail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Registrations = make([]RegistrationResponse, len(details))
	for i, detail := range details {
		r.Registrations[i].FromDetail(detail)
	}
}

// RosterEntry is what camp staff see about a registered child.
type RosterEntry struct {
	RegistrationID        string `json:"registration_id"`
	Status                string `json:"status"`
	PaymentStatus         string `json:"payment_status"`
	ChildID               string `json:"child_id"`
	ChildName             string `json:"child_name"`
	AgeAtStart            int    `json:"age_at_start"`
	Allergies             string `json:"allergies"`
	MedicalNotes          string `json:"medical_notes"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
	ParentID              string `json:"parent_id"`
	ParentName            string `json:"parent_name"`
	ParentEmail           string `json:"parent_email"`
	RegisteredAt          string `json:"registered_at"`
}

func (r *RosterEntry) FromDetail(detail model.Detail) {
	r.RegistrationID = detail.ID
	r.Status = detail.Status
	r.PaymentStatus = detail.PaymentStatus
	r.ChildID = detail.ChildID
	r.ChildName = detail.ChildName
	r.AgeAtStart = timezone.AgeOn(detail.ChildDateOfBirth, detail.CampStartDate)
	r.Allergies = detail.ChildAllergies
	r.MedicalNotes = detail.ChildMedical
	r.EmergencyContactName = detail.EmergencyName
	r.EmergencyContactPhone = detail.EmergencyPhone
	r.ParentID = detail.ParentID
	r.ParentName = detail.ParentName
	r.ParentEmail = detail.ParentEmail
	r.RegisteredAt = timezone.Format(detail.CreatedAt, constant.DateFormat)
}

type RosterResponse struct {
	CampID     string        `json:"camp_id"`
	Confirmed  int           `json:"confirmed"`
	Waitlisted int           `json:"waitlisted"`
	Entries    []RosterEntry `json:"entries"`
}

func (r *RosterResponse) FromModels(campID string, details []model.Detail) {
	r.CampID = campID
	r.Entries = make([]RosterEntry, len(details))

	for i, detail := range details {
		r.Entries[i].FromDetail(detail)

		switch detail.Status {
		case constant.RegistrationStatusConfirmed:
			r.Confirmed++
		case constant.RegistrationStatusWaitlisted:
			r.Waitlisted++
		}
	}
}

// Event is the payload of registration domain events.
type Event struct {
	RegistrationID string    `json:"registration_id"`
	CampID         string    `json:"camp_id"`
	ChildID        string    `json:"child_id"`
	ParentID       string    `json:"parent_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	ChangedBy      string    `json:"changed_by"`
	ChangedAt      time.Time `json:"changed_at"`
}

func NewEvent(registration model.Registration, previousStatus, changedBy string) Event {
	return Event{
		RegistrationID: registration.ID,
		CampID:         registration.CampID,
		ChildID:        registration.ChildID,
		ParentID:       registration.ParentID,
		Status:         registration.Status,
		PreviousStatus: previousStatus,
		ChangedBy:      changedBy,
		ChangedAt:      timezone.Now(),
	}
}
