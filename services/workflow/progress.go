package workflow

import (
	"math"

	"medlease/models"
)

// The progress view partitions the workflow into three named phases. Phase
// membership is heuristic: registration and service members are derived from
// which optional fields are populated, fulfillment members from the current
// step's position. It is a snapshot computation, recomputed on every read.
const (
	phaseRegistrationSize = 3 // facility, patient, payment mode
	phaseServiceSize      = 3 // recommendation, booking, consent
	phaseFulfillmentSize  = 3 // proceed to tests, service in progress, fulfillment
)

// ComputeProgress derives phase completion percentages from the snapshot.
func ComputeProgress(session *models.WorkflowSession) models.PhaseProgress {
	var registration, service, fulfillment int

	if session.SelectedFacility != nil {
		registration++
	}
	if session.Patient != nil {
		registration++
	}
	if session.SelectedPaymentMode != "" {
		registration++
	}

	if session.SelectedService != nil {
		service++
	}
	if session.Booking != nil {
		service++
	}
	if session.ConsentObtained != nil && *session.ConsentObtained {
		service++
	}

	idx := session.CurrentStep.Index()
	completed := session.ServiceCompleted != nil && *session.ServiceCompleted
	if idx >= models.StepServiceInProgress.Index() {
		fulfillment++ // proceeded to tests
	}
	if idx > models.StepServiceInProgress.Index() || completed {
		fulfillment++ // service ran
	}
	if idx > models.StepFulfillment.Index() || completed {
		fulfillment++ // fulfilled
	}

	total := registration + service + fulfillment
	totalSize := phaseRegistrationSize + phaseServiceSize + phaseFulfillmentSize

	return models.PhaseProgress{
		Registration: percent(registration, phaseRegistrationSize),
		Service:      percent(service, phaseServiceSize),
		Fulfillment:  percent(fulfillment, phaseFulfillmentSize),
		Overall:      percent(total, totalSize),
	}
}

func percent(count, size int) int {
	if size == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(size) * 100))
}
