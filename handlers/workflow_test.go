package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medlease/models"
	"medlease/services/workflow"
	"medlease/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSessionStore struct {
	sessions map[string]models.WorkflowSession
}

func (s *memSessionStore) Get(sessionID string) (*models.WorkflowSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, workflow.ErrSessionNotFound
	}
	copied := session
	return &copied, nil
}

func (s *memSessionStore) Save(session *models.WorkflowSession) error {
	s.sessions[session.SessionID] = *session
	return nil
}

func (s *memSessionStore) Delete(sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func newWorkflowRouter(store *memSessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &WorkflowHandler{Workflow: &workflow.DefaultWorkflowService{Store: store}}

	r := gin.New()
	r.GET("/sessions/:sessionID", h.GetSession)
	r.POST("/sessions/:sessionID/next", h.NextStep)
	r.POST("/sessions/:sessionID/goto", h.GotoStep)
	return r
}

func seedSession(store *memSessionStore) models.WorkflowSession {
	session := models.WorkflowSession{
		SessionID:   "s-1",
		OperatorID:  "op-1",
		CurrentStep: models.StepRegistration,
	}
	store.sessions[session.SessionID] = session
	return session
}

func TestGetSessionNotFoundMapsTo404(t *testing.T) {
	r := newWorkflowRouter(&memSessionStore{sessions: map[string]models.WorkflowSession{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sessions/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNextStepGuardMapsTo409WithStableCode(t *testing.T) {
	store := &memSessionStore{sessions: map[string]models.WorkflowSession{}}
	seedSession(store)
	r := newWorkflowRouter(store)

	// A fresh session has no patient, so advancing is refused.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions/s-1/next", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "workflow.next", resp.Code)
}

func TestGotoUnknownStepMapsTo400(t *testing.T) {
	store := &memSessionStore{sessions: map[string]models.WorkflowSession{}}
	seedSession(store)
	r := newWorkflowRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions/s-1/goto",
		strings.NewReader(`{"step":"warp"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
