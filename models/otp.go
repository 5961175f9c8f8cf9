package models

import "time"

// OTPPurpose distinguishes the two verification flows.
type OTPPurpose string

const (
	// OTPPurposeConsent gates patient consent; scoped by booking number.
	OTPPurposeConsent OTPPurpose = "consent"
	// OTPPurposeCompletion gates one service line's completion; scoped by
	// (booking id, service id).
	OTPPurposeCompletion OTPPurpose = "completion"
)

// OTPStatus tracks how far an outstanding code got. Transactions are deleted
// on successful validation and expire with their TTL, so terminal outcomes
// never appear in the store.
type OTPStatus string

const (
	// OTPRequested means the code exists but never left through the
	// out-of-band channel (no dispatcher, no phone on file, or the enqueue
	// failed); it is only reachable via the demo echo response.
	OTPRequested OTPStatus = "requested"
	// OTPSent means the code was handed to the SMS queue.
	OTPSent OTPStatus = "sent"
)

// OTPTransaction is the ephemeral record of one verification attempt. It is
// stored in Redis under its compound key, consumed on successful validation,
// and expires with its TTL otherwise.
type OTPTransaction struct {
	Purpose       OTPPurpose `json:"purpose"`
	BookingNumber string     `json:"booking_number,omitempty"`
	BookingID     string     `json:"booking_id,omitempty"`
	ServiceID     string     `json:"service_id,omitempty"`
	Code          string     `json:"code"`
	Status        OTPStatus  `json:"status"`
	ResendCount   int        `json:"resend_count"`
	PhoneNumber   string     `json:"phone_number,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     time.Time  `json:"expires_at"`
}

// ConsentOTPRequest asks for a consent code tied to a booking.
type ConsentOTPRequest struct {
	BookingNumber string `json:"booking_number" binding:"required"`
}

// ConsentOTPValidation submits the operator-entered consent code.
type ConsentOTPValidation struct {
	OTPCode       string `json:"otp_code" binding:"required"`
	BookingNumber string `json:"booking_number" binding:"required"`
}

// CompletionOTPValidation submits the operator-entered completion code for one
// service line.
type CompletionOTPValidation struct {
	OTPCode string `json:"otp_code" binding:"required"`
}
