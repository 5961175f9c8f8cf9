package handlers

import (
	"errors"
	"net/http"

	"medlease/middleware"
	"medlease/models"
	"medlease/services/workflow"
	"medlease/utils"

	"github.com/gin-gonic/gin"
)

// WorkflowHandler exposes the workflow session over HTTP: navigation,
// accumulated selections, and derived progress.
type WorkflowHandler struct {
	Workflow workflow.WorkflowService
}

// workflowError maps workflow service failures onto HTTP statuses with stable
// codes so clients can deduplicate repeated failures of the same action.
func workflowError(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, workflow.ErrSessionNotFound):
		utils.JSONErrorWithCode(c, http.StatusNotFound, code, "workflow session not found or expired", "")
	case errors.Is(err, workflow.ErrUnknownStep):
		utils.JSONErrorWithCode(c, http.StatusBadRequest, code, "unknown workflow step", err.Error())
	case workflow.IsStepNotReady(err):
		utils.JSONErrorWithCode(c, http.StatusConflict, code, "step prerequisites not met", err.Error())
	default:
		utils.JSONErrorWithCode(c, http.StatusInternalServerError, code, "workflow operation failed", err.Error())
	}
}

// StartSession opens a fresh session for the authenticated operator.
func (h *WorkflowHandler) StartSession(c *gin.Context) {
	operatorID := c.GetString(middleware.OperatorIDKey)
	session, err := h.Workflow.StartSession(operatorID)
	if err != nil {
		workflowError(c, "workflow.start", err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSession returns the current session snapshot.
func (h *WorkflowHandler) GetSession(c *gin.Context) {
	session, err := h.Workflow.GetSession(c.Param("sessionID"))
	if err != nil {
		workflowError(c, "workflow.get", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// EndSession discards the session.
func (h *WorkflowHandler) EndSession(c *gin.Context) {
	if err := h.Workflow.EndSession(c.Param("sessionID")); err != nil {
		workflowError(c, "workflow.end", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// NextStep advances one step, clamped at the terminal step.
func (h *WorkflowHandler) NextStep(c *gin.Context) {
	session, err := h.Workflow.Advance(c.Param("sessionID"))
	if err != nil {
		workflowError(c, "workflow.next", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// PrevStep moves one step back, clamped at the first step.
func (h *WorkflowHandler) PrevStep(c *gin.Context) {
	session, err := h.Workflow.Back(c.Param("sessionID"))
	if err != nil {
		workflowError(c, "workflow.prev", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GotoStep jumps to a named step, subject to its prerequisites.
func (h *WorkflowHandler) GotoStep(c *gin.Context) {
	var input struct {
		Step models.WorkflowStep `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session, err := h.Workflow.SetStep(c.Param("sessionID"), input.Step)
	if err != nil {
		workflowError(c, "workflow.goto", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ResetSession clears accumulated state and returns to the first step.
func (h *WorkflowHandler) ResetSession(c *gin.Context) {
	session, err := h.Workflow.Reset(c.Param("sessionID"))
	if err != nil {
		workflowError(c, "workflow.reset", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SetRecommendation records the operator's catalog selections.
func (h *WorkflowHandler) SetRecommendation(c *gin.Context) {
	var input workflow.Recommendation
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session, err := h.Workflow.SetRecommendation(c.Param("sessionID"), input)
	if err != nil {
		workflowError(c, "workflow.recommendation", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// MarkValidated records the validation report against the session.
func (h *WorkflowHandler) MarkValidated(c *gin.Context) {
	var input struct {
		ReportID string `json:"report_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session, err := h.Workflow.MarkValidated(c.Param("sessionID"), input.ReportID)
	if err != nil {
		workflowError(c, "workflow.validate", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// AttachInvoice records the raised invoice on the session.
func (h *WorkflowHandler) AttachInvoice(c *gin.Context) {
	var input models.InvoiceRef
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session, err := h.Workflow.AttachInvoice(c.Param("sessionID"), input)
	if err != nil {
		workflowError(c, "workflow.invoice", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// MarkPaymentApproved records finance approval.
func (h *WorkflowHandler) MarkPaymentApproved(c *gin.Context) {
	session, err := h.Workflow.MarkPaymentApproved(c.Param("sessionID"))
	if err != nil {
		workflowError(c, "workflow.approve", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// MarkDisbursed records disbursement completion.
func (h *WorkflowHandler) MarkDisbursed(c *gin.Context) {
	session, err := h.Workflow.MarkDisbursed(c.Param("sessionID"))
	if err != nil {
		workflowError(c, "workflow.disburse", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetProgress returns the derived phase percentages.
func (h *WorkflowHandler) GetProgress(c *gin.Context) {
	progress, err := h.Workflow.Progress(c.Param("sessionID"))
	if err != nil {
		workflowError(c, "workflow.progress", err)
		return
	}
	c.JSON(http.StatusOK, progress)
}
