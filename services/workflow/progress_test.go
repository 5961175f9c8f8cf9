package workflow

import (
	"testing"

	"medlease/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeProgressEmptySession(t *testing.T) {
	session := &models.WorkflowSession{CurrentStep: models.StepRegistration}
	p := ComputeProgress(session)

	assert.Equal(t, 0, p.Registration)
	assert.Equal(t, 0, p.Service)
	assert.Equal(t, 0, p.Fulfillment)
	assert.Equal(t, 0, p.Overall)
}

func TestComputeProgressTwoOfThreeRoundsUp(t *testing.T) {
	session := &models.WorkflowSession{
		CurrentStep:      models.StepRecommendation,
		Patient:          &models.PatientRef{ID: "p-1"},
		SelectedFacility: &models.FacilityRef{ID: "fac-1"},
	}
	p := ComputeProgress(session)

	// 2/3 rounds to 67, not 66.
	assert.Equal(t, 67, p.Registration)
	assert.Equal(t, 0, p.Service)
}

func TestComputeProgressServicePhase(t *testing.T) {
	consent := true
	session := &models.WorkflowSession{
		CurrentStep:     models.StepConsent,
		SelectedService: &models.ServiceRef{ID: "svc-1"},
		Booking:         &models.BookingRef{ID: "b-1"},
		ConsentObtained: &consent,
	}
	p := ComputeProgress(session)

	assert.Equal(t, 100, p.Service)
}

func TestComputeProgressFulfillmentFollowsStep(t *testing.T) {
	session := &models.WorkflowSession{CurrentStep: models.StepServiceInProgress}
	p := ComputeProgress(session)
	assert.Equal(t, 33, p.Fulfillment)

	session.CurrentStep = models.StepFulfillment
	p = ComputeProgress(session)
	assert.Equal(t, 67, p.Fulfillment)

	session.CurrentStep = models.StepValidation
	p = ComputeProgress(session)
	assert.Equal(t, 100, p.Fulfillment)
}

func TestComputeProgressCompletedFlagShortCircuitsStep(t *testing.T) {
	done := true
	session := &models.WorkflowSession{
		CurrentStep:      models.StepServiceInProgress,
		ServiceCompleted: &done,
	}
	p := ComputeProgress(session)

	assert.Equal(t, 100, p.Fulfillment)
}

func TestComputeProgressFullSession(t *testing.T) {
	consent, done := true, true
	session := &models.WorkflowSession{
		CurrentStep:         models.StepCompletion,
		Patient:             &models.PatientRef{ID: "p-1"},
		SelectedFacility:    &models.FacilityRef{ID: "fac-1"},
		SelectedPaymentMode: models.PaymentModeCash,
		SelectedService:     &models.ServiceRef{ID: "svc-1"},
		Booking:             &models.BookingRef{ID: "b-1"},
		ConsentObtained:     &consent,
		ServiceCompleted:    &done,
	}
	p := ComputeProgress(session)

	assert.Equal(t, 100, p.Registration)
	assert.Equal(t, 100, p.Service)
	assert.Equal(t, 100, p.Fulfillment)
	assert.Equal(t, 100, p.Overall)
}
