package model

import (
	"time"

	"sportsassist/shared/constant"
	"sportsassist/shared/model"
)

const (
	TableName  = "availability_slots"
	EntityName = "slot"

	FieldID             = "id"
	FieldOrganizationID = "organization_id"
	FieldCampID         = "camp_id"
	FieldStaffID        = "staff_id"
	FieldStartTime      = "start_time"
	FieldEndTime        = "end_time"
	FieldMaxBookings    = "max_bookings"
	FieldStatus         = "status"
)

type Slot struct {
	ID             string    `db:"id"`
	OrganizationID string    `db:"organization_id"`
	CampID         *string   `db:"camp_id"`
	StaffID        string    `db:"staff_id"`
	Title          string    `db:"title"`
	StartTime      time.Time `db:"start_time"`
	EndTime        time.Time `db:"end_time"`
	Location       string    `db:"location"`
	MaxBookings    int       `db:"max_bookings"`
	Status         string    `db:"status"`
	Notes          string    `db:"notes"`
	model.Metadata
}

// Bookable reports whether parents may still book the slot at now.
func (s Slot) Bookable(now time.Time) bool {
	return s.Status == constant.SlotStatusOpen && now.Before(s.StartTime)
}
