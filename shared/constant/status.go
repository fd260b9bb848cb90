package constant

const (
	CampStatusDraft     = "draft"
	CampStatusPublished = "published"
	CampStatusCancelled = "cancelled"
	CampStatusCompleted = "completed"
)

const (
	RegistrationStatusPending    = "pending"
	RegistrationStatusConfirmed  = "confirmed"
	RegistrationStatusWaitlisted = "waitlisted"
	RegistrationStatusCancelled  = "cancelled"
)

const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

const (
	SlotStatusOpen      = "open"
	SlotStatusClosed    = "closed"
	SlotStatusCancelled = "cancelled"
)

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

const (
	EmailStatusPending = "pending"
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
	EmailStatusSkipped = "skipped"
)

// Failure reasons returned alongside 4xx responses.
const (
	ReasonSlotClosed            = "slot_closed"
	ReasonSlotFull              = "slot_full"
	ReasonDuplicateBooking      = "duplicate_booking"
	ReasonRegistrationClosed    = "registration_closed"
	ReasonCampFull              = "camp_full"
	ReasonDuplicateRegistration = "duplicate_registration"
)
