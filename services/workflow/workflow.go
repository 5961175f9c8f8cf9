package workflow

import (
	"fmt"
	"time"

	"medlease/models"
	"medlease/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartSession creates a fresh workflow session at the registration step.
func (s *DefaultWorkflowService) StartSession(operatorID string) (*models.WorkflowSession, error) {
	now := time.Now()
	session := &models.WorkflowSession{
		SessionID:   uuid.New().String(),
		OperatorID:  operatorID,
		CurrentStep: models.StepRegistration,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Save(session); err != nil {
		return nil, fmt.Errorf("failed to store workflow session: %w", err)
	}
	return session, nil
}

// GetSession retrieves the session snapshot.
func (s *DefaultWorkflowService) GetSession(sessionID string) (*models.WorkflowSession, error) {
	return s.Store.Get(sessionID)
}

// EndSession discards the session and all accumulated state.
func (s *DefaultWorkflowService) EndSession(sessionID string) error {
	return s.Store.Delete(sessionID)
}

// stepReady checks the prerequisite data for entering a step. Returns the name
// of the missing prerequisite, or "" when the session is ready.
func stepReady(session *models.WorkflowSession, step models.WorkflowStep) string {
	switch step {
	case models.StepRegistration:
		return ""
	case models.StepRecommendation:
		if session.Patient == nil {
			return "registered patient"
		}
	case models.StepBooking:
		if session.SelectedService == nil || session.SelectedEquipment == nil || session.SelectedFacility == nil {
			return "service, equipment and facility selection"
		}
	case models.StepConsent:
		if session.Booking == nil {
			return "created booking"
		}
	case models.StepServiceInProgress:
		if session.ConsentObtained == nil || !*session.ConsentObtained {
			return "patient consent"
		}
	case models.StepFulfillment:
		if session.Booking == nil {
			return "created booking"
		}
	case models.StepValidation:
		if session.ServiceCompleted == nil || !*session.ServiceCompleted {
			return "completed service lines"
		}
	case models.StepReport:
		if session.ServiceValidated == nil || !*session.ServiceValidated {
			return "service validation"
		}
	case models.StepInvoice:
		if session.ValidationReportID == "" {
			return "validation report"
		}
	case models.StepApproval:
		if session.Invoice == nil {
			return "invoice"
		}
	case models.StepDisbursement:
		if session.PaymentApproved == nil || !*session.PaymentApproved {
			return "payment approval"
		}
	case models.StepCompletion:
		if session.DisbursementComplete == nil || !*session.DisbursementComplete {
			return "completed disbursement"
		}
	}
	return ""
}

// Advance moves the session one step forward in the canonical order. At the
// final step it is a no-op. A current step outside the canonical order is an
// error rather than a silent jump to the start.
func (s *DefaultWorkflowService) Advance(sessionID string) (*models.WorkflowSession, error) {
	return s.mutate(sessionID, func(session *models.WorkflowSession) error {
		idx := session.CurrentStep.Index()
		if idx < 0 {
			return fmt.Errorf("%w: %q", ErrUnknownStep, session.CurrentStep)
		}
		if idx == len(models.StepOrder)-1 {
			return nil // clamped at the terminal step
		}
		target := models.StepOrder[idx+1]
		if missing := stepReady(session, target); missing != "" {
			return &StepNotReadyError{Step: target, Missing: missing}
		}
		session.CurrentStep = target
		return nil
	})
}

// Back moves the session one step backward, clamped at the first step.
// Backward navigation is always allowed.
func (s *DefaultWorkflowService) Back(sessionID string) (*models.WorkflowSession, error) {
	return s.mutate(sessionID, func(session *models.WorkflowSession) error {
		idx := session.CurrentStep.Index()
		if idx < 0 {
			return fmt.Errorf("%w: %q", ErrUnknownStep, session.CurrentStep)
		}
		if idx == 0 {
			return nil // clamped at the first step
		}
		session.CurrentStep = models.StepOrder[idx-1]
		return nil
	})
}

// SetStep jumps directly to the given step after validating its prerequisites.
func (s *DefaultWorkflowService) SetStep(sessionID string, step models.WorkflowStep) (*models.WorkflowSession, error) {
	return s.mutate(sessionID, func(session *models.WorkflowSession) error {
		if !step.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownStep, step)
		}
		if missing := stepReady(session, step); missing != "" {
			return &StepNotReadyError{Step: step, Missing: missing}
		}
		session.CurrentStep = step
		return nil
	})
}

// Reset restores the initial state, discarding all accumulated selections.
func (s *DefaultWorkflowService) Reset(sessionID string) (*models.WorkflowSession, error) {
	return s.mutate(sessionID, func(session *models.WorkflowSession) error {
		*session = models.WorkflowSession{
			SessionID:   session.SessionID,
			OperatorID:  session.OperatorID,
			CurrentStep: models.StepRegistration,
			CreatedAt:   session.CreatedAt,
		}
		return nil
	})
}

// SetPatient records the registered patient on the session.
func (s *DefaultWorkflowService) SetPatient(sessionID string, patient models.PatientRef) (*models.WorkflowSession, error) {
	return s.mutate(sessionID, func(session *models.WorkflowSession) error {
		session.Patient = &patient
		return nil
	})
}

// SetRecommendation records the service/equipment/facility selections.
func (s *DefaultWorkflowService) SetRecommendation(sessionID string, rec Recommendation) (*models.WorkflowSession, error) {
	return s.mutate(sessionID, func(session *models.WorkflowSession) error {
		if rec.PaymentMode != "" && !rec.PaymentMode.Valid() {
			return fmt.Errorf("invalid payment mode %q", rec.PaymentMode)
		}
		if rec.Service != nil {
			session.SelectedService = rec.Service
		}
		if rec.Equipment != nil {
			session.SelectedEquipment = rec.Equipment
		}
		if rec.Facility != nil {
			session.SelectedFacility = rec.Facility
		}
		if rec.PaymentMode != "" {
			session.SelectedPaymentMode = rec.PaymentMode
		}
		return nil
	})
}

// AttachBooking records the created booking reference on the session.
func (s *DefaultWorkflowService) AttachBooking(sessionID string, booking models.BookingRef) (*models.WorkflowSession, error) {
	return s.mutate(sessionID, func(session *models.WorkflowSession) error {
		session.Booking = &booking
		return nil
	})
}

// MarkConsent flags consent on the session. Callers must only invoke this
// after a successful consent OTP validation.
func (s *DefaultWorkflowService) MarkConsent(sessionID string) (*models.WorkflowSession, error) {
	return s.setFlag(sessionID, func(session *models.WorkflowSession, v *bool) {
		session.ConsentObtained = v
	})
}

// MarkServiceCompleted flags that every service line of the session's booking
// has completed.
func (s *DefaultWorkflowService) MarkServiceCompleted(sessionID string) (*models.WorkflowSession, error) {
	return s.setFlag(sessionID, func(session *models.WorkflowSession, v *bool) {
		session.ServiceCompleted = v
	})
}

// MarkValidated records the validation report on the session.
func (s *DefaultWorkflowService) MarkValidated(sessionID string, reportID string) (*models.WorkflowSession, error) {
	return s.mutate(sessionID, func(session *models.WorkflowSession) error {
		v := true
		session.ServiceValidated = &v
		session.ValidationReportID = reportID
		return nil
	})
}

// AttachInvoice records the invoice reference on the session.
func (s *DefaultWorkflowService) AttachInvoice(sessionID string, invoice models.InvoiceRef) (*models.WorkflowSession, error) {
	return s.mutate(sessionID, func(session *models.WorkflowSession) error {
		session.Invoice = &invoice
		return nil
	})
}

// MarkPaymentApproved flags finance approval on the session.
func (s *DefaultWorkflowService) MarkPaymentApproved(sessionID string) (*models.WorkflowSession, error) {
	return s.setFlag(sessionID, func(session *models.WorkflowSession, v *bool) {
		session.PaymentApproved = v
	})
}

// MarkDisbursed flags disbursement completion on the session.
func (s *DefaultWorkflowService) MarkDisbursed(sessionID string) (*models.WorkflowSession, error) {
	return s.setFlag(sessionID, func(session *models.WorkflowSession, v *bool) {
		session.DisbursementComplete = v
	})
}

// Progress recomputes the phase percentages from the current snapshot.
func (s *DefaultWorkflowService) Progress(sessionID string) (models.PhaseProgress, error) {
	session, err := s.Store.Get(sessionID)
	if err != nil {
		return models.PhaseProgress{}, err
	}
	return ComputeProgress(session), nil
}

// mutate loads the session, applies fn, and saves the result. A failed fn
// leaves the stored session untouched.
func (s *DefaultWorkflowService) mutate(sessionID string, fn func(*models.WorkflowSession) error) (*models.WorkflowSession, error) {
	session, err := s.Store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	session.UpdatedAt = time.Now()
	if err := s.Store.Save(session); err != nil {
		utils.GetLogger().Error("failed to save workflow session", zap.String("session", sessionID), zap.Error(err))
		return nil, fmt.Errorf("failed to save workflow session: %w", err)
	}
	return session, nil
}

func (s *DefaultWorkflowService) setFlag(sessionID string, assign func(*models.WorkflowSession, *bool)) (*models.WorkflowSession, error) {
	return s.mutate(sessionID, func(session *models.WorkflowSession) error {
		v := true
		assign(session, &v)
		return nil
	})
}
