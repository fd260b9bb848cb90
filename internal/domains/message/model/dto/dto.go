package dto

import (
	"time"

	"sportsassist/internal/domains/message/model"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	gModel "sportsassist/shared/model"
	"sportsassist/shared/sanitize"
	"sportsassist/shared/timezone"

	"github.com/google/uuid"
)

// DefaultRecipientStatuses addresses every parent whose registration is not
// cancelled.
var DefaultRecipientStatuses = []string{
	constant.RegistrationStatusPending,
	constant.RegistrationStatusConfirmed,
	constant.RegistrationStatusWaitlisted,
}

type CreateMessageRequest struct {
	Subject           string   `json:"subject"             validate:"required,max=200"`
	Body              string   `json:"body"                validate:"required,max=20000"`
	SendEmail         bool     `json:"send_email"`
	RecipientStatuses []string `json:"recipient_statuses"  validate:"omitempty,dive,oneof=pending confirmed waitlisted"`
}

func (c *CreateMessageRequest) Statuses() []string {
	if len(c.RecipientStatuses) == 0 {
		return DefaultRecipientStatuses
	}

	return c.RecipientStatuses
}

func (c *CreateMessageRequest) ToModel(user, campID, organizationID string, recipients int) model.Message {
	return model.Message{
		ID:             uuid.NewString(),
		CampID:         campID,
		OrganizationID: organizationID,
		SenderID:       user,
		Subject:        sanitize.Text(c.Subject),
		Body:           sanitize.HTML(c.Body),
		SendEmail:      c.SendEmail,
		RecipientCount: recipients,
		Metadata:       gModel.NewMetadata(user, timezone.Now()),
	}
}

// ToRecipients creates one recipient row per contact. Email status starts as
// pending only when the message will actually be emailed.
func ToRecipients(message model.Message, contacts []model.Contact, emailing bool) []model.Recipient {
	status := constant.EmailStatusSkipped
	if emailing {
		status = constant.EmailStatusPending
	}

	recipients := make([]model.Recipient, len(contacts))
	for i, contact := range contacts {
		recipients[i] = model.Recipient{
			ID:          uuid.NewString(),
			MessageID:   message.ID,
			ParentID:    contact.ParentID,
			EmailStatus: status,
			Metadata:    message.Metadata,
		}
	}

	return recipients
}

type UpdateEmailStatusRequest struct {
	EmailStatus string `db:"email_status"`
}

type MarkReadRequest struct {
	ReadAt time.Time `db:"read_at"`
}

type MessageResponse struct {
	ID             string `json:"id"`
	CampID         string `json:"camp_id"`
	OrganizationID string `json:"organization_id"`
	SenderID       string `json:"sender_id"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	SendEmail      bool   `json:"send_email"`
	RecipientCount int    `json:"recipient_count"`
	gDto.Metadata
}

func (r *MessageResponse) FromModel(model model.Message) {
	r.ID = model.ID
	r.CampID = model.CampID
	r.OrganizationID = model.OrganizationID
	r.SenderID = model.SenderID
	r.Subject = model.Subject
	r.Body = model.Body
	r.SendEmail = model.SendEmail
	r.RecipientCount = model.RecipientCount
	r.Metadata.FromModel(model.Metadata)
}

type GetMessagesResponse struct {
	Messages  []MessageResponse `json:"messages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetMessagesResponse) FromModels(models []model.Message, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Messages = make([]MessageResponse, len(models))
	for i, mod := range models {
		r.Messages[i].FromModel(mod)
	}
}

type InboxItemResponse struct {
	ID        string  `json:"id"`
	MessageID string  `json:"message_id"`
	CampID    string  `json:"camp_id"`
	CampName  string  `json:"camp_name"`
	Subject   string  `json:"subject"`
	Body      string  `json:"body"`
	SenderID  string  `json:"sender_id"`
	SentAt    string  `json:"sent_at"`
	Read      bool    `json:"read"`
	ReadAt    *string `json:"read_at"`
}

func (r *InboxItemResponse) FromModel(item model.InboxItem) {
	r.ID = item.ID
	r.MessageID = item.MessageID
	r.CampID = item.CampID
	r.CampName = item.CampName
	r.Subject = item.Subject
	r.Body = item.Body
	r.SenderID = item.SenderID
	r.SentAt = timezone.Format(item.SentAt, constant.DateFormat)
	r.Read = item.ReadAt != nil

	if item.ReadAt != nil {
		readAt := timezone.Format(*item.ReadAt, constant.DateFormat)
		r.ReadAt = &readAt
	}
}

type GetInboxResponse struct {
	Messages  []InboxItemResponse `json:"messages"`
	Unread    int                 `json:"unread"`
	TotalPage int                 `json:"total_page"`
	TotalData int                 `json:"total_data"`
}

func (r *GetInboxResponse) FromModels(items []model.InboxItem, totalData, unread, limit int) {
	r.TotalData = totalData
	r.Unread = unread
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Messages = make([]InboxItemResponse, len(items))
	for i, item := range items {
		r.Messages[i].FromModel(item)
	}
}

type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

// Event is the payload of camp_message.sent.
type Event struct {
	MessageID      string    `json:"message_id"`
	CampID         string    `json:"camp_id"`
	OrganizationID string    `json:"organization_id"`
	SenderID       string    `json:"sender_id"`
	RecipientCount int       `json:"recipient_count"`
	SendEmail      bool      `json:"send_email"`
	SentAt         time.Time `json:"sent_at"`
}

func NewEvent(message model.Message) Event {
	return Event{
		MessageID:      message.ID,
		CampID:         message.CampID,
		OrganizationID: message.OrganizationID,
		SenderID:       message.SenderID,
		RecipientCount: message.RecipientCount,
		SendEmail:      message.SendEmail,
		SentAt:         message.CreatedAt,
	}
}
