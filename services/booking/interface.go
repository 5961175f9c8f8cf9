package booking

import (
	bookingRepo "medlease/database/repository/booking"
	patientRepo "medlease/database/repository/patient"
	"medlease/models"

	"github.com/go-redis/redis/v8"
)

// Pusher delivers patient-facing push notifications for booking decisions.
type Pusher interface {
	SendPush(payload models.PushPayload) error
}

// BookingService covers the booking lifecycle: creation, the one-shot
// approve/reject decision, service line cancellation, the practitioner
// worklist, and the reconciliation sync feed.
type BookingService interface {
	CreateBooking(input models.CreateBookingInput) (*models.Booking, error)
	GetBooking(id string) (*models.Booking, error)
	GetBookingByNumber(number string) (*models.Booking, error)

	ApproveBooking(id string) (*models.Booking, error)
	RejectBooking(id string) (*models.Booking, error)

	CancelServiceLine(bookingID, serviceID string) (*models.Booking, error)

	Worklist(q models.WorklistQuery) (*models.WorklistPage, error)
	Sync(q models.SyncQuery) (*models.SyncPage, error)

	// InvalidateWorklist drops cached worklist pages after a status change.
	InvalidateWorklist() error
}

// DefaultBookingService is the production implementation. Worklist pages are
// cached in Redis behind a generation counter; bumping the counter orphans
// every cached page at once.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Patients patientRepo.PatientRepository
	Cache    *redis.Client
	Pusher   Pusher
}
