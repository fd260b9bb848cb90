package model

import (
	"time"

	"sportsassist/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "children"
	EntityName = "child"

	FieldID       = "id"
	FieldParentID = "parent_id"
	FieldFullName = "full_name"
)

type Child struct {
	ID                    string         `db:"id"`
	ParentID              string         `db:"parent_id"`
	FullName              string         `db:"full_name"`
	DateOfBirth           time.Time      `db:"date_of_birth"`
	Gender                string         `db:"gender"`
	SkillLevel            string         `db:"skill_level"`
	JerseySize            string         `db:"jersey_size"`
	SportPreferences      pq.StringArray `db:"sport_preferences"`
	MedicalNotes          string         `db:"medical_notes"`
	Allergies             string         `db:"allergies"`
	EmergencyContactName  string         `db:"emergency_contact_name"`
	EmergencyContactPhone string         `db:"emergency_contact_phone"`
	model.Metadata
}
