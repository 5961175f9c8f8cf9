package workflow

import (
	"testing"

	"medlease/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory SessionStore for tests.
type memStore struct {
	sessions map[string]models.WorkflowSession
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]models.WorkflowSession)}
}

func (s *memStore) Get(sessionID string) (*models.WorkflowSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := session
	return &copied, nil
}

func (s *memStore) Save(session *models.WorkflowSession) error {
	s.sessions[session.SessionID] = *session
	return nil
}

func (s *memStore) Delete(sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func newTestService() (*DefaultWorkflowService, *memStore) {
	store := newMemStore()
	return &DefaultWorkflowService{Store: store}, store
}

func startSession(t *testing.T, svc *DefaultWorkflowService) *models.WorkflowSession {
	t.Helper()
	session, err := svc.StartSession("op-1")
	require.NoError(t, err)
	return session
}

func TestStartSessionBeginsAtRegistration(t *testing.T) {
	svc, _ := newTestService()
	session := startSession(t, svc)

	assert.Equal(t, models.StepRegistration, session.CurrentStep)
	assert.Equal(t, "op-1", session.OperatorID)
	assert.NotEmpty(t, session.SessionID)
	assert.Nil(t, session.Patient)
}

func TestGetSessionUnknownID(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.GetSession("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAdvanceRequiresPatientForRecommendation(t *testing.T) {
	svc, _ := newTestService()
	session := startSession(t, svc)

	_, err := svc.Advance(session.SessionID)
	require.Error(t, err)
	assert.True(t, IsStepNotReady(err))

	// The refused transition must not leak into the store.
	stored, err := svc.GetSession(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepRegistration, stored.CurrentStep)
}

func TestAdvanceThenBackRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	session := startSession(t, svc)

	_, err := svc.SetPatient(session.SessionID, models.PatientRef{ID: "p-1", FullName: "Jane Doe"})
	require.NoError(t, err)

	advanced, err := svc.Advance(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepRecommendation, advanced.CurrentStep)

	back, err := svc.Back(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepRegistration, back.CurrentStep)

	// Accumulated selections survive backward navigation.
	assert.NotNil(t, back.Patient)
}

func TestBackClampsAtFirstStep(t *testing.T) {
	svc, _ := newTestService()
	session := startSession(t, svc)

	for i := 0; i < 3; i++ {
		back, err := svc.Back(session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, models.StepRegistration, back.CurrentStep)
	}
}

func TestSetStepUnknown(t *testing.T) {
	svc, _ := newTestService()
	session := startSession(t, svc)

	_, err := svc.SetStep(session.SessionID, models.WorkflowStep("warp"))
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestSetStepGuarded(t *testing.T) {
	svc, _ := newTestService()
	session := startSession(t, svc)

	_, err := svc.SetStep(session.SessionID, models.StepConsent)
	require.Error(t, err)
	assert.True(t, IsStepNotReady(err))

	var notReady *StepNotReadyError
	require.ErrorAs(t, err, &notReady)
	assert.Equal(t, models.StepConsent, notReady.Step)
}

func TestResetPreservesIdentity(t *testing.T) {
	svc, _ := newTestService()
	session := startSession(t, svc)

	_, err := svc.SetPatient(session.SessionID, models.PatientRef{ID: "p-1"})
	require.NoError(t, err)
	_, err = svc.Advance(session.SessionID)
	require.NoError(t, err)

	reset, err := svc.Reset(session.SessionID)
	require.NoError(t, err)

	assert.Equal(t, session.SessionID, reset.SessionID)
	assert.Equal(t, session.OperatorID, reset.OperatorID)
	assert.Equal(t, models.StepRegistration, reset.CurrentStep)
	assert.Nil(t, reset.Patient)
	assert.Nil(t, reset.Booking)
}

func TestResetIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	session := startSession(t, svc)

	first, err := svc.Reset(session.SessionID)
	require.NoError(t, err)
	second, err := svc.Reset(session.SessionID)
	require.NoError(t, err)

	assert.Equal(t, first.CurrentStep, second.CurrentStep)
	assert.Equal(t, first.SessionID, second.SessionID)
}

// TestFullWalk drives a session through every step to completion, feeding the
// prerequisites each step demands, then verifies the terminal clamp.
func TestFullWalk(t *testing.T) {
	svc, _ := newTestService()
	session := startSession(t, svc)
	id := session.SessionID

	_, err := svc.SetPatient(id, models.PatientRef{ID: "p-1", FullName: "Jane Doe"})
	require.NoError(t, err)
	mustAdvance(t, svc, id, models.StepRecommendation)

	_, err = svc.SetRecommendation(id, Recommendation{
		Service:     &models.ServiceRef{ID: "svc-1", Name: "Dialysis", Cost: 120},
		Equipment:   &models.EquipmentRef{ID: "eq-1", Name: "Dialysis machine"},
		Facility:    &models.FacilityRef{ID: "fac-1", Name: "Mercy General"},
		PaymentMode: models.PaymentModeInsurance,
	})
	require.NoError(t, err)
	mustAdvance(t, svc, id, models.StepBooking)

	_, err = svc.AttachBooking(id, models.BookingRef{ID: "b-1", BookingNumber: "BK-0001", Status: models.BookingPending})
	require.NoError(t, err)
	mustAdvance(t, svc, id, models.StepConsent)

	_, err = svc.MarkConsent(id)
	require.NoError(t, err)
	mustAdvance(t, svc, id, models.StepServiceInProgress)
	mustAdvance(t, svc, id, models.StepFulfillment)

	_, err = svc.MarkServiceCompleted(id)
	require.NoError(t, err)
	mustAdvance(t, svc, id, models.StepValidation)

	_, err = svc.MarkValidated(id, "rep-1")
	require.NoError(t, err)
	mustAdvance(t, svc, id, models.StepReport)
	mustAdvance(t, svc, id, models.StepInvoice)

	_, err = svc.AttachInvoice(id, models.InvoiceRef{InvoiceID: "inv-1", Amount: 120, Status: "pending"})
	require.NoError(t, err)
	mustAdvance(t, svc, id, models.StepApproval)

	_, err = svc.MarkPaymentApproved(id)
	require.NoError(t, err)
	mustAdvance(t, svc, id, models.StepDisbursement)

	_, err = svc.MarkDisbursed(id)
	require.NoError(t, err)
	mustAdvance(t, svc, id, models.StepCompletion)

	// Advancing past the terminal step is a clamped no-op.
	final, err := svc.Advance(id)
	require.NoError(t, err)
	assert.Equal(t, models.StepCompletion, final.CurrentStep)
}

func mustAdvance(t *testing.T, svc *DefaultWorkflowService, sessionID string, want models.WorkflowStep) {
	t.Helper()
	session, err := svc.Advance(sessionID)
	require.NoError(t, err)
	require.Equal(t, want, session.CurrentStep)
}

func TestSetRecommendationRejectsUnknownPaymentMode(t *testing.T) {
	svc, _ := newTestService()
	session := startSession(t, svc)

	_, err := svc.SetRecommendation(session.SessionID, Recommendation{
		PaymentMode: models.PaymentMode("barter"),
	})
	assert.Error(t, err)
}

func TestEndSessionDiscardsState(t *testing.T) {
	svc, _ := newTestService()
	session := startSession(t, svc)

	require.NoError(t, svc.EndSession(session.SessionID))
	_, err := svc.GetSession(session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
