package verification

import (
	"crypto/rand"
	"fmt"
	"time"

	"medlease/models"
	"medlease/utils"

	"go.uber.org/zap"
)

const (
	otpLength  = 6
	otpTTL     = 5 * time.Minute
	maxResends = 5
)

func consentKey(bookingNumber string) string {
	return fmt.Sprintf("consent:%s", bookingNumber)
}

func completionKey(bookingID, serviceID string) string {
	return fmt.Sprintf("completion:%s:%s", bookingID, serviceID)
}

// generateNumericOTP generates a secure random numeric code of the given length.
func generateNumericOTP(length int) (string, error) {
	const digits = "0123456789"
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	for i := range buf {
		buf[i] = digits[int(buf[i])%len(digits)]
	}
	return string(buf), nil
}

// RequestConsentOTP generates a consent code for the booking and dispatches it
// to the patient's phone. The booking reference must resolve first; no code is
// generated otherwise.
func (s *DefaultVerificationService) RequestConsentOTP(bookingNumber string) (*models.OTPTransaction, error) {
	booking, err := s.BookingRepo.GetByNumber(bookingNumber)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	return s.issueConsent(booking, 0)
}

// ResendConsentOTP re-triggers code generation for the same booking. An
// already-obtained consent is never reset by a resend.
func (s *DefaultVerificationService) ResendConsentOTP(bookingNumber string) (*models.OTPTransaction, error) {
	booking, err := s.BookingRepo.GetByNumber(bookingNumber)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	resends := 1
	if prev, err := s.Store.Get(consentKey(bookingNumber)); err == nil && prev != nil {
		resends = prev.ResendCount + 1
	}
	if resends > maxResends {
		return nil, ErrTooManyResends
	}
	return s.issueConsent(booking, resends)
}

func (s *DefaultVerificationService) issueConsent(booking *models.Booking, resends int) (*models.OTPTransaction, error) {
	code, err := generateNumericOTP(otpLength)
	if err != nil {
		return nil, err
	}

	phone := s.patientPhone(booking.PatientID)
	now := time.Now()
	tx := &models.OTPTransaction{
		Purpose:       models.OTPPurposeConsent,
		BookingNumber: booking.BookingNumber,
		BookingID:     booking.ID,
		Code:          code,
		Status:        models.OTPRequested,
		ResendCount:   resends,
		PhoneNumber:   phone,
		CreatedAt:     now,
		ExpiresAt:     now.Add(otpTTL),
	}
	key := consentKey(booking.BookingNumber)
	if err := s.Store.Put(key, tx, otpTTL); err != nil {
		return nil, fmt.Errorf("failed to store consent OTP: %w", err)
	}

	if s.dispatchCode(phone, code, fmt.Sprintf("consent code for booking %s", booking.BookingNumber)) {
		s.markSent(key, tx)
	}
	return s.redact(tx), nil
}

// ValidateConsentOTP verifies the operator-entered code against the stored
// transaction. On success the code is consumed and consent is marked on the
// booking; on failure nothing changes and the operator may retry.
func (s *DefaultVerificationService) ValidateConsentOTP(v models.ConsentOTPValidation) (*models.Booking, error) {
	key := consentKey(v.BookingNumber)
	tx, err := s.Store.Get(key)
	if err != nil || tx == nil {
		// Expired and never-requested look identical to the caller.
		return nil, ErrCodeMismatch
	}
	if tx.Code != v.OTPCode {
		return nil, ErrCodeMismatch
	}

	booking, err := s.BookingRepo.GetByNumber(v.BookingNumber)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if err := s.BookingRepo.MarkConsent(booking.ID); err != nil {
		return nil, fmt.Errorf("failed to record consent: %w", err)
	}
	if err := s.Store.Delete(key); err != nil {
		utils.GetLogger().Warn("failed to discard consent OTP", zap.String("booking", v.BookingNumber), zap.Error(err))
	}
	s.invalidate()

	return s.BookingRepo.GetByID(booking.ID)
}

// RequestCompletionOTP generates a completion code scoped to one service line
// of a booking. Sibling lines carry independent transactions.
func (s *DefaultVerificationService) RequestCompletionOTP(bookingID, serviceID string) (*models.OTPTransaction, error) {
	booking, _, err := s.activeLine(bookingID, serviceID)
	if err != nil {
		return nil, err
	}
	return s.issueCompletion(booking, serviceID, 0)
}

// ResendCompletionOTP re-sends a completion-scoped code.
func (s *DefaultVerificationService) ResendCompletionOTP(bookingID, serviceID string) (*models.OTPTransaction, error) {
	booking, _, err := s.activeLine(bookingID, serviceID)
	if err != nil {
		return nil, err
	}

	resends := 1
	if prev, err := s.Store.Get(completionKey(bookingID, serviceID)); err == nil && prev != nil {
		resends = prev.ResendCount + 1
	}
	if resends > maxResends {
		return nil, ErrTooManyResends
	}
	return s.issueCompletion(booking, serviceID, resends)
}

func (s *DefaultVerificationService) issueCompletion(booking *models.Booking, serviceID string, resends int) (*models.OTPTransaction, error) {
	code, err := generateNumericOTP(otpLength)
	if err != nil {
		return nil, err
	}

	phone := s.patientPhone(booking.PatientID)
	now := time.Now()
	tx := &models.OTPTransaction{
		Purpose:       models.OTPPurposeCompletion,
		BookingNumber: booking.BookingNumber,
		BookingID:     booking.ID,
		ServiceID:     serviceID,
		Code:          code,
		Status:        models.OTPRequested,
		ResendCount:   resends,
		PhoneNumber:   phone,
		CreatedAt:     now,
		ExpiresAt:     now.Add(otpTTL),
	}
	key := completionKey(booking.ID, serviceID)
	if err := s.Store.Put(key, tx, otpTTL); err != nil {
		return nil, fmt.Errorf("failed to store completion OTP: %w", err)
	}

	if s.dispatchCode(phone, code, fmt.Sprintf("completion code for booking %s", booking.BookingNumber)) {
		s.markSent(key, tx)
	}
	return s.redact(tx), nil
}

// VerifyCompletionOTP verifies the code and, on success, completes exactly the
// targeted service line and invalidates cached worklist views. Sibling lines
// and the parent booking are never completed automatically.
func (s *DefaultVerificationService) VerifyCompletionOTP(bookingID, serviceID, code string) (*models.Booking, error) {
	key := completionKey(bookingID, serviceID)
	tx, err := s.Store.Get(key)
	if err != nil || tx == nil {
		return nil, ErrCodeMismatch
	}
	if tx.Code != code {
		return nil, ErrCodeMismatch
	}

	if err := s.BookingRepo.SetServiceLineStatus(bookingID, serviceID, models.ServiceInProgress, models.ServiceCompleted); err != nil {
		return nil, fmt.Errorf("failed to complete service line: %w", err)
	}
	if err := s.Store.Delete(key); err != nil {
		utils.GetLogger().Warn("failed to discard completion OTP",
			zap.String("booking", bookingID), zap.String("service", serviceID), zap.Error(err))
	}
	s.invalidate()

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	s.notifyCompletion(booking, serviceID)
	return booking, nil
}

// activeLine resolves the booking and checks the targeted line is in progress.
func (s *DefaultVerificationService) activeLine(bookingID, serviceID string) (*models.Booking, *models.ServiceLine, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, nil, ErrBookingNotFound
	}
	line := booking.ServiceLineByID(serviceID)
	if line == nil {
		return nil, nil, ErrServiceLineNotFound
	}
	if line.Status != models.ServiceInProgress {
		return nil, nil, ErrServiceLineNotActive
	}
	return booking, line, nil
}

func (s *DefaultVerificationService) patientPhone(patientID string) string {
	if s.PatientRepo == nil {
		return ""
	}
	patient, err := s.PatientRepo.GetByID(patientID)
	if err != nil || patient == nil {
		return ""
	}
	return patient.PhoneNumber
}

// dispatchCode hands the code to the SMS queue and reports whether it
// actually left through the out-of-band channel.
func (s *DefaultVerificationService) dispatchCode(phone, code, context string) bool {
	if s.Dispatcher == nil || phone == "" {
		return false
	}
	message := fmt.Sprintf("Your verification code is %s (%s). It expires in %d minutes.",
		code, context, int(otpTTL.Minutes()))
	if err := s.Dispatcher.SendSMS(models.SMSPayload{PhoneNumber: phone, Message: message}); err != nil {
		utils.GetLogger().Error("failed to dispatch OTP SMS", zap.String("phone", phone), zap.Error(err))
		return false
	}
	return true
}

// markSent advances the stored transaction to sent after a dispatch. The code
// stays valid either way, so a failed rewrite is only logged.
func (s *DefaultVerificationService) markSent(key string, tx *models.OTPTransaction) {
	tx.Status = models.OTPSent
	if err := s.Store.Put(key, tx, otpTTL); err != nil {
		utils.GetLogger().Warn("failed to record OTP dispatch", zap.String("key", key), zap.Error(err))
	}
}

func (s *DefaultVerificationService) notifyCompletion(booking *models.Booking, serviceID string) {
	if s.Dispatcher == nil || booking == nil {
		return
	}
	err := s.Dispatcher.SendPush(models.PushPayload{
		PatientID: booking.PatientID,
		Title:     "Service completed",
		Body:      fmt.Sprintf("A service on booking %s has been completed.", booking.BookingNumber),
		Data:      map[string]string{"booking_id": booking.ID, "service_id": serviceID},
	})
	if err != nil {
		utils.GetLogger().Warn("failed to enqueue completion push", zap.String("booking", booking.ID), zap.Error(err))
	}
}

func (s *DefaultVerificationService) invalidate() {
	if s.Worklist == nil {
		return
	}
	if err := s.Worklist.InvalidateWorklist(); err != nil {
		utils.GetLogger().Warn("failed to invalidate worklist cache", zap.Error(err))
	}
}

// redact blanks the code on the returned transaction unless demo echo is on.
func (s *DefaultVerificationService) redact(tx *models.OTPTransaction) *models.OTPTransaction {
	out := *tx
	if !s.EchoCodes {
		out.Code = ""
	}
	return &out
}
