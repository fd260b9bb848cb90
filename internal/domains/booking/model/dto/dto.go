package dto

import (
	"time"

	"sportsassist/internal/domains/booking/model"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	gModel "sportsassist/shared/model"
	"sportsassist/shared/sanitize"
	"sportsassist/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ChildID string `json:"child_id" validate:"required,uuid"`
	Notes   string `json:"notes"    validate:"omitempty,max=1000"`
}

func (c *CreateBookingRequest) ToModel(user, slotID, parentID string) model.Booking {
	return model.Booking{
		ID:       uuid.NewString(),
		SlotID:   slotID,
		ParentID: parentID,
		ChildID:  c.ChildID,
		Status:   constant.BookingStatusConfirmed,
		Notes:    sanitize.Text(c.Notes),
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type CancelBookingRequest struct {
	Status string `db:"status"`
}

type BookingResponse struct {
	ID            string `json:"id"`
	SlotID        string `json:"slot_id"`
	ParentID      string `json:"parent_id"`
	ChildID       string `json:"child_id"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
	SlotTitle     string `json:"slot_title,omitempty"`
	SlotStartTime string `json:"slot_start_time,omitempty"`
	SlotEndTime   string `json:"slot_end_time,omitempty"`
	SlotLocation  string `json:"slot_location,omitempty"`
	ChildName     string `json:"child_name,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.SlotID = model.SlotID
	r.ParentID = model.ParentID
	r.ChildID = model.ChildID
	r.Status = model.Status
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

func (r *BookingResponse) FromDetail(detail model.Detail) {
	r.ID = detail.ID
	r.SlotID = detail.SlotID
	r.ParentID = detail.ParentID
	r.ChildID = detail.ChildID
	r.Status = detail.Status
	r.Notes = detail.Notes
	r.SlotTitle = detail.SlotTitle
	r.SlotStartTime = timezone.Format(detail.SlotStartTime, constant.DateFormat)
	r.SlotEndTime = timezone.Format(detail.SlotEndTime, constant.DateFormat)
	r.SlotLocation = detail.SlotLocation
	r.ChildName = detail.ChildName
	r.Metadata.FromModel(detail.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(details []model.Detail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(details))
	for i, detail := range details {
		r.Bookings[i].FromDetail(detail)
	}
}

// Event is the payload of slot_booking.* messages.
type Event struct {
	BookingID string    `json:"booking_id"`
	SlotID    string    `json:"slot_id"`
	ChildID   string    `json:"child_id"`
	ParentID  string    `json:"parent_id"`
	Status    string    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

func NewEvent(booking model.Booking, by string) Event {
	return Event{
		BookingID: booking.ID,
		SlotID:    booking.SlotID,
		ChildID:   booking.ChildID,
		ParentID:  booking.ParentID,
		Status:    booking.Status,
		ChangedBy: by,
		ChangedAt: booking.ModifiedAt,
	}
}
