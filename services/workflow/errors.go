package workflow

import (
	"errors"
	"fmt"

	"medlease/models"
)

// ErrSessionNotFound is returned when the session is absent or expired.
var ErrSessionNotFound = errors.New("workflow session not found or expired")

// ErrUnknownStep is returned when a step is not part of the canonical order.
var ErrUnknownStep = errors.New("unknown workflow step")

// StepNotReadyError reports that a step's prerequisite data is missing from
// the session, so entering it was refused.
type StepNotReadyError struct {
	Step    models.WorkflowStep
	Missing string
}

func (e *StepNotReadyError) Error() string {
	return fmt.Sprintf("cannot enter step %q: %s required", e.Step, e.Missing)
}

// IsStepNotReady reports whether err is a StepNotReadyError.
func IsStepNotReady(err error) bool {
	var target *StepNotReadyError
	return errors.As(err, &target)
}
