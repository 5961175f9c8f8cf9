package workflow

import "medlease/models"

// SessionStore abstracts where workflow sessions live for the duration of an
// operator session. The production implementation is Redis with a rolling TTL.
type SessionStore interface {
	Get(sessionID string) (*models.WorkflowSession, error)
	Save(session *models.WorkflowSession) error
	Delete(sessionID string) error
}

// WorkflowService owns every mutation of the workflow session. Handlers and
// collaborator services never write session state directly; they go through
// these transition operations so the single-writer invariant holds.
type WorkflowService interface {
	StartSession(operatorID string) (*models.WorkflowSession, error)
	GetSession(sessionID string) (*models.WorkflowSession, error)
	EndSession(sessionID string) error

	// Navigation. Advance and Back clamp at the boundaries; SetStep validates
	// the target's prerequisites and fails with StepNotReadyError when the
	// session is not ready for it.
	Advance(sessionID string) (*models.WorkflowSession, error)
	Back(sessionID string) (*models.WorkflowSession, error)
	SetStep(sessionID string, step models.WorkflowStep) (*models.WorkflowSession, error)
	Reset(sessionID string) (*models.WorkflowSession, error)

	// Accumulated selections. Each setter is a pure state mutation; the I/O
	// that produced the value happens in collaborator services beforehand.
	SetPatient(sessionID string, patient models.PatientRef) (*models.WorkflowSession, error)
	SetRecommendation(sessionID string, rec Recommendation) (*models.WorkflowSession, error)
	AttachBooking(sessionID string, booking models.BookingRef) (*models.WorkflowSession, error)

	// MarkConsent is only ever called from the success path of a consent OTP
	// validation.
	MarkConsent(sessionID string) (*models.WorkflowSession, error)

	MarkServiceCompleted(sessionID string) (*models.WorkflowSession, error)
	MarkValidated(sessionID string, reportID string) (*models.WorkflowSession, error)
	AttachInvoice(sessionID string, invoice models.InvoiceRef) (*models.WorkflowSession, error)
	MarkPaymentApproved(sessionID string) (*models.WorkflowSession, error)
	MarkDisbursed(sessionID string) (*models.WorkflowSession, error)

	// Progress derives the read-only phase percentages from the snapshot.
	Progress(sessionID string) (models.PhaseProgress, error)
}

// Recommendation carries the selections made during the recommendation step.
type Recommendation struct {
	Service     *models.ServiceRef   `json:"service"`
	Equipment   *models.EquipmentRef `json:"equipment"`
	Facility    *models.FacilityRef  `json:"facility"`
	PaymentMode models.PaymentMode   `json:"payment_mode"`
}

// DefaultWorkflowService implements WorkflowService on top of a SessionStore.
type DefaultWorkflowService struct {
	Store SessionStore
}
