package model

import (
	"time"

	"sportsassist/shared/constant"
	"sportsassist/shared/model"
)

const (
	TableName  = "slot_bookings"
	EntityName = "slot_booking"

	FieldID        = "id"
	FieldSlotID    = "slot_id"
	FieldParentID  = "parent_id"
	FieldChildID   = "child_id"
	FieldStatus    = "status"
	FieldCreatedAt = "created_at"

	SlotTableName         = "availability_slots"
	SlotFieldOrganization = "organization_id"
	SlotFieldStartTime    = "start_time"
)

type Booking struct {
	ID       string `db:"id"`
	SlotID   string `db:"slot_id"`
	ParentID string `db:"parent_id"`
	ChildID  string `db:"child_id"`
	Status   string `db:"status"`
	Notes    string `db:"notes"`
	model.Metadata
}

func (b Booking) Confirmed() bool {
	return b.Status == constant.BookingStatusConfirmed
}

// Detail is a booking joined with its slot and child.
type Detail struct {
	ID             string    `db:"id"`
	SlotID         string    `db:"slot_id"`
	ParentID       string    `db:"parent_id"`
	ChildID        string    `db:"child_id"`
	Status         string    `db:"status"`
	Notes          string    `db:"notes"`
	OrganizationID string    `column:"organization_id" db:"organization_id" table:"availability_slots"`
	SlotTitle      string    `column:"title"           db:"slot_title"      table:"availability_slots"`
	SlotStartTime  time.Time `column:"start_time"      db:"slot_start_time" table:"availability_slots"`
	SlotEndTime    time.Time `column:"end_time"        db:"slot_end_time"   table:"availability_slots"`
	SlotLocation   string    `column:"location"        db:"slot_location"   table:"availability_slots"`
	ChildName      string    `column:"full_name"       db:"child_name"      table:"children"`
	model.Metadata
}

func (Detail) GetJoinQuery() string {
	return "JOIN availability_slots ON availability_slots.id = slot_bookings.slot_id " +
		"JOIN children ON children.id = slot_bookings.child_id"
}
