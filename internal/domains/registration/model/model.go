package model

import (
	"time"

	"sportsassist/shared/constant"
	"sportsassist/shared/model"
)

const (
	TableName  = "registrations"
	EntityName = "registration"

	FieldID            = "id"
	FieldCampID        = "camp_id"
	FieldChildID       = "child_id"
	FieldParentID      = "parent_id"
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
	FieldCreatedAt     = "created_at"

	CampTableName         = "camps"
	CampFieldOrganization = "organization_id"
)

type Registration struct {
	ID            string `db:"id"`
	CampID        string `db:"camp_id"`
	ChildID       string `db:"child_id"`
	ParentID      string `db:"parent_id"`
	Status        string `db:"status"`
	PaymentStatus string `db:"payment_status"`
	Notes         string `db:"notes"`
	model.Metadata
}

// Detail is a registration joined with its camp and child, used for listings
// and the staff roster.
type Detail struct {
	ID               string    `db:"id"`
	CampID           string    `db:"camp_id"`
	ChildID          string    `db:"child_id"`
	ParentID         string    `db:"parent_id"`
	Status           string    `db:"status"`
	PaymentStatus    string    `db:"payment_status"`
	Notes            string    `db:"notes"`
	OrganizationID   string    `column:"organization_id"        db:"organization_id"        table:"camps"`
	CampName         string    `column:"name"                   db:"camp_name"              table:"camps"`
	CampStartDate    time.Time `column:"start_date"             db:"camp_start_date"        table:"camps"`
	ChildName        string    `column:"full_name"              db:"child_name"             table:"children"`
	ChildDateOfBirth time.Time `column:"date_of_birth"          db:"child_date_of_birth"    table:"children"`
	ChildAllergies   string    `column:"allergies"              db:"child_allergies"        table:"children"`
	ChildMedical     string    `column:"medical_notes"          db:"child_medical_notes"    table:"children"`
	EmergencyName    string    `column:"emergency_contact_name" db:"emergency_contact_name" table:"children"`
	EmergencyPhone   string    `column:"emergency_contact_phone" db:"emergency_contact_phone" table:"children"`
	ParentName       string    `column:"full_name"              db:"parent_name"            table:"users"`
	ParentEmail      string    `column:"email"                  db:"parent_email"           table:"users"`
	model.Metadata
}

func (Detail) GetJoinQuery() string {
	return "JOIN camps ON camps.id = registrations.camp_id " +
		"JOIN children ON children.id = registrations.child_id " +
		"JOIN users ON users.id = registrations.parent_id"
}

// Active reports whether the registration still holds or waits for a seat.
func (r Registration) Active() bool {
	return r.Status != constant.RegistrationStatusCancelled
}
