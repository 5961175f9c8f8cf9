package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "medlease/database/repository/booking"
	"medlease/models"
	"medlease/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidPaymentMode is returned when the payment mode is not one of the
// supported values.
var ErrInvalidPaymentMode = errors.New("invalid payment mode")

// ErrInvalidDate is returned when the booking date is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid booking date")

// ErrLineNotCancellable is returned when the targeted service line is already
// completed or cancelled.
var ErrLineNotCancellable = errors.New("service line cannot be cancelled")

// CreateBooking validates the input, prices the booking from its service
// lines, and persists it in the pending state with every line not started.
func (s *DefaultBookingService) CreateBooking(input models.CreateBookingInput) (*models.Booking, error) {
	if !input.PaymentMode.Valid() {
		return nil, ErrInvalidPaymentMode
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := s.Patients.GetByID(input.PatientID); err != nil {
		return nil, fmt.Errorf("failed to resolve patient %s: %w", input.PatientID, err)
	}

	now := time.Now()
	booking := &models.Booking{
		ID:            uuid.New().String(),
		BookingNumber: newBookingNumber(),
		PatientID:     input.PatientID,
		FacilityID:    input.FacilityID,
		VendorID:      input.VendorID,
		ContractID:    input.ContractID,
		PaymentMode:   input.PaymentMode,
		Date:          input.Date,
		Status:        models.BookingPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, svc := range input.Services {
		booking.Services = append(booking.Services, models.ServiceLine{
			ServiceID:   svc.ServiceID,
			EquipmentID: svc.EquipmentID,
			Name:        svc.Name,
			Cost:        svc.Cost,
			Status:      models.ServiceNotStarted,
		})
		booking.TotalCost += svc.Cost
	}

	if err := s.Repo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	if err := s.InvalidateWorklist(); err != nil {
		utils.GetLogger().Warn("failed to invalidate worklist cache", zap.Error(err))
	}
	return booking, nil
}

func (s *DefaultBookingService) GetBooking(id string) (*models.Booking, error) {
	return s.Repo.GetByID(id)
}

func (s *DefaultBookingService) GetBookingByNumber(number string) (*models.Booking, error) {
	return s.Repo.GetByNumber(number)
}

// ApproveBooking performs the one-shot pending->approved transition. A booking
// already decided yields bookingRepo.ErrConflict; the decision never flips.
func (s *DefaultBookingService) ApproveBooking(id string) (*models.Booking, error) {
	return s.decide(id, models.BookingApproved, "Booking approved",
		"Your equipment booking has been approved.")
}

// RejectBooking performs the one-shot pending->rejected transition.
func (s *DefaultBookingService) RejectBooking(id string) (*models.Booking, error) {
	return s.decide(id, models.BookingRejected, "Booking rejected",
		"Your equipment booking could not be approved.")
}

func (s *DefaultBookingService) decide(id string, to models.BookingStatus, title, body string) (*models.Booking, error) {
	if err := s.Repo.UpdateStatus(id, models.BookingPending, to); err != nil {
		return nil, err
	}
	if err := s.InvalidateWorklist(); err != nil {
		utils.GetLogger().Warn("failed to invalidate worklist cache", zap.Error(err))
	}

	booking, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.notify(booking, title, body)
	return booking, nil
}

// CancelServiceLine cancels one line of a booking. Completed and already
// cancelled lines are immutable.
func (s *DefaultBookingService) CancelServiceLine(bookingID, serviceID string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	line := booking.ServiceLineByID(serviceID)
	if line == nil {
		return nil, bookingRepo.ErrNotFound
	}
	if !line.Status.CanTransition(models.ServiceCancelled) {
		return nil, ErrLineNotCancellable
	}

	if err := s.Repo.SetServiceLineStatus(bookingID, serviceID, line.Status, models.ServiceCancelled); err != nil {
		return nil, err
	}
	if err := s.InvalidateWorklist(); err != nil {
		utils.GetLogger().Warn("failed to invalidate worklist cache", zap.Error(err))
	}
	return s.Repo.GetByID(bookingID)
}

func (s *DefaultBookingService) notify(booking *models.Booking, title, body string) {
	if s.Pusher == nil || booking == nil {
		return
	}
	err := s.Pusher.SendPush(models.PushPayload{
		PatientID: booking.PatientID,
		Title:     title,
		Body:      body,
		Data: map[string]string{
			"booking_id":     booking.ID,
			"booking_number": booking.BookingNumber,
			"status":         string(booking.Status),
		},
	})
	if err != nil {
		utils.GetLogger().Warn("failed to enqueue booking push", zap.String("booking", booking.ID), zap.Error(err))
	}
}

// newBookingNumber builds a short human-quotable reference, e.g. BK-7F3A9C2D.
func newBookingNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "BK-" + raw[:8]
}
