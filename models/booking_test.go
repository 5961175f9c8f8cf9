package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, BookingPending.CanTransition(BookingApproved))
	assert.True(t, BookingPending.CanTransition(BookingRejected))

	// Decisions are terminal in both directions.
	assert.False(t, BookingApproved.CanTransition(BookingRejected))
	assert.False(t, BookingApproved.CanTransition(BookingPending))
	assert.False(t, BookingRejected.CanTransition(BookingApproved))

	assert.False(t, BookingPending.IsTerminal())
	assert.True(t, BookingApproved.IsTerminal())
	assert.True(t, BookingRejected.IsTerminal())
}

func TestServiceLineStatusTransitions(t *testing.T) {
	assert.True(t, ServiceNotStarted.CanTransition(ServiceInProgress))
	assert.True(t, ServiceNotStarted.CanTransition(ServiceCancelled))
	assert.True(t, ServiceInProgress.CanTransition(ServiceCompleted))
	assert.True(t, ServiceInProgress.CanTransition(ServiceCancelled))

	// No skipping straight to completed, no resurrecting terminal lines.
	assert.False(t, ServiceNotStarted.CanTransition(ServiceCompleted))
	assert.False(t, ServiceCompleted.CanTransition(ServiceCancelled))
	assert.False(t, ServiceCancelled.CanTransition(ServiceInProgress))
}

func TestAllServicesCompleted(t *testing.T) {
	b := &Booking{Services: []ServiceLine{
		{ServiceID: "sv-1", Status: ServiceCompleted},
		{ServiceID: "sv-2", Status: ServiceInProgress},
	}}
	assert.False(t, b.AllServicesCompleted())

	b.Services[1].Status = ServiceCompleted
	assert.True(t, b.AllServicesCompleted())

	// Cancelled lines do not block completion.
	b.Services[1].Status = ServiceCancelled
	assert.True(t, b.AllServicesCompleted())

	// A booking with only cancelled lines is not completed.
	b.Services[0].Status = ServiceCancelled
	assert.False(t, b.AllServicesCompleted())

	empty := &Booking{}
	assert.False(t, empty.AllServicesCompleted())
}

func TestWorkflowStepIndex(t *testing.T) {
	assert.Equal(t, 0, StepRegistration.Index())
	assert.Equal(t, len(StepOrder)-1, StepCompletion.Index())
	assert.Equal(t, -1, WorkflowStep("warp").Index())
	assert.False(t, WorkflowStep("warp").Valid())
	assert.True(t, StepConsent.Valid())
}
