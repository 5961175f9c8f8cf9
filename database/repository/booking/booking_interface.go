package bookingRepo

import (
	"errors"
	"time"

	"medlease/models"
)

// ErrNotFound is returned when no booking (or service line) matches.
var ErrNotFound = errors.New("booking not found")

// ErrConflict is returned when a conditional status update matched the
// document but not the expected current status (e.g. approving a booking that
// is already decided).
var ErrConflict = errors.New("booking status conflict")

// BookingRepository defines persistence operations for bookings and their
// service lines.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	GetByNumber(number string) (*models.Booking, error)

	// UpdateStatus performs a one-shot conditional transition from->to.
	UpdateStatus(id string, from, to models.BookingStatus) error

	// MarkConsent flags consent on the booking and moves every not_started
	// service line to in_progress.
	MarkConsent(id string) error

	// SetServiceLineStatus transitions exactly one service line, guarded by
	// its expected current status. Sibling lines are untouched.
	SetServiceLineStatus(bookingID, serviceID string, from, to models.ServiceLineStatus) error

	Worklist(q models.WorklistQuery) ([]models.Booking, int64, error)
	UpdatedSince(since time.Time, page, perPage int) ([]models.Booking, int64, error)
	CompletedForFacility(facilityID, dateFrom, dateTo string) ([]models.Booking, error)
}
