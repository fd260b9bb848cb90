package model

import (
	"time"

	"sportsassist/shared/model"
)

const (
	TableName  = "camp_messages"
	EntityName = "camp_message"

	FieldID             = "id"
	FieldCampID         = "camp_id"
	FieldOrganizationID = "organization_id"
	FieldCreatedAt      = "created_at"

	RecipientTableName  = "camp_message_recipients"
	RecipientEntityName = "camp_message_recipient"

	RecipientFieldID          = "id"
	RecipientFieldMessageID   = "message_id"
	RecipientFieldParentID    = "parent_id"
	RecipientFieldReadAt      = "read_at"
	RecipientFieldEmailStatus = "email_status"
)

type Message struct {
	ID             string `db:"id"`
	CampID         string `db:"camp_id"`
	OrganizationID string `db:"organization_id"`
	SenderID       string `db:"sender_id"`
	Subject        string `db:"subject"`
	Body           string `db:"body"`
	SendEmail      bool   `db:"send_email"`
	RecipientCount int    `db:"recipient_count"`
	model.Metadata
}

type Recipient struct {
	ID          string     `db:"id"`
	MessageID   string     `db:"message_id"`
	ParentID    string     `db:"parent_id"`
	ReadAt      *time.Time `db:"read_at"`
	EmailStatus string     `db:"email_status"`
	model.Metadata
}

// InboxItem is a recipient row joined with its message and camp, as a parent
// sees it.
type InboxItem struct {
	ID          string     `db:"id"`
	MessageID   string     `db:"message_id"`
	ParentID    string     `db:"parent_id"`
	ReadAt      *time.Time `db:"read_at"`
	EmailStatus string     `db:"email_status"`
	CampID      string     `column:"camp_id"    db:"camp_id"    table:"camp_messages"`
	Subject     string     `column:"subject"    db:"subject"    table:"camp_messages"`
	Body        string     `column:"body"       db:"body"       table:"camp_messages"`
	SenderID    string     `column:"sender_id"  db:"sender_id"  table:"camp_messages"`
	SentAt      time.Time  `column:"created_at" db:"sent_at"    table:"camp_messages"`
	CampName    string     `column:"name"       db:"camp_name"  table:"camps"`
}

func (InboxItem) GetJoinQuery() string {
	return "JOIN camp_messages ON camp_messages.id = camp_message_recipients.message_id " +
		"JOIN camps ON camps.id = camp_messages.camp_id"
}

// Contact is a parent addressed by a camp message.
type Contact struct {
	ParentID string `db:"parent_id"`
	Email    string `db:"email"`
	FullName string `db:"full_name"`
}
