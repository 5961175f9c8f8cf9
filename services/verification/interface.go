package verification

import (
	"time"

	bookingRepo "medlease/database/repository/booking"
	patientRepo "medlease/database/repository/patient"
	"medlease/models"
)

// CodeStore abstracts where outstanding OTP transactions live. The production
// implementation is Redis; entries expire with the code's TTL.
type CodeStore interface {
	Put(key string, tx *models.OTPTransaction, ttl time.Duration) error
	Get(key string) (*models.OTPTransaction, error)
	Delete(key string) error
}

// Dispatcher delivers out-of-band messages. The production implementation
// enqueues asynq tasks handled by the background worker.
type Dispatcher interface {
	SendSMS(payload models.SMSPayload) error
	SendPush(payload models.PushPayload) error
}

// WorklistInvalidator drops cached worklist/booking views so other views
// observe a status change after the next refetch.
type WorklistInvalidator interface {
	InvalidateWorklist() error
}

// VerificationService implements the two OTP flows: patient consent, scoped by
// booking number, and per-service-line completion, scoped by the compound
// (booking id, service id) key. Independent transactions never share state.
type VerificationService interface {
	RequestConsentOTP(bookingNumber string) (*models.OTPTransaction, error)
	ValidateConsentOTP(v models.ConsentOTPValidation) (*models.Booking, error)
	ResendConsentOTP(bookingNumber string) (*models.OTPTransaction, error)

	RequestCompletionOTP(bookingID, serviceID string) (*models.OTPTransaction, error)
	VerifyCompletionOTP(bookingID, serviceID, code string) (*models.Booking, error)
	ResendCompletionOTP(bookingID, serviceID string) (*models.OTPTransaction, error)
}

// DefaultVerificationService is the production implementation.
type DefaultVerificationService struct {
	BookingRepo bookingRepo.BookingRepository
	PatientRepo patientRepo.PatientRepository
	Store       CodeStore
	Dispatcher  Dispatcher
	Worklist    WorklistInvalidator

	// EchoCodes surfaces generated codes in responses instead of requiring the
	// out-of-band channel. Demo/test deployments only.
	EchoCodes bool
}
