package verification

import "errors"

// ErrCodeMismatch covers both a wrong code and an expired one; the two are
// deliberately indistinguishable to the caller.
var ErrCodeMismatch = errors.New("invalid or expired code")

// ErrBookingNotFound is returned when the target booking cannot be resolved.
var ErrBookingNotFound = errors.New("booking not found")

// ErrServiceLineNotFound is returned when the target service line is absent.
var ErrServiceLineNotFound = errors.New("service line not found")

// ErrServiceLineNotActive is returned when a completion OTP targets a line
// that is not in progress.
var ErrServiceLineNotActive = errors.New("service line is not in progress")

// ErrTooManyResends is returned when the resend cap for a transaction is hit.
var ErrTooManyResends = errors.New("too many resend attempts")
