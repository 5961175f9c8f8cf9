package handlers

import (
	"errors"
	"net/http"

	"medlease/models"
	"medlease/services/verification"
	"medlease/services/workflow"
	"medlease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VerificationHandler exposes the consent and completion OTP flows. When a
// workflow session ID accompanies the request, the session is updated in the
// same success path so its snapshot tracks the booking.
type VerificationHandler struct {
	Verification verification.VerificationService
	Workflow     workflow.WorkflowService
}

func verificationError(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, verification.ErrCodeMismatch):
		utils.JSONErrorWithCode(c, http.StatusUnprocessableEntity, code, "invalid or expired code", "")
	case errors.Is(err, verification.ErrBookingNotFound):
		utils.JSONErrorWithCode(c, http.StatusNotFound, code, "booking not found", "")
	case errors.Is(err, verification.ErrServiceLineNotFound):
		utils.JSONErrorWithCode(c, http.StatusNotFound, code, "service line not found", "")
	case errors.Is(err, verification.ErrServiceLineNotActive):
		utils.JSONErrorWithCode(c, http.StatusConflict, code, "service line is not in progress", "")
	case errors.Is(err, verification.ErrTooManyResends):
		utils.JSONErrorWithCode(c, http.StatusTooManyRequests, code, "too many resend attempts", "")
	default:
		utils.JSONErrorWithCode(c, http.StatusInternalServerError, code, "verification failed", err.Error())
	}
}

// RequestConsentOTP issues a consent code for a booking.
func (h *VerificationHandler) RequestConsentOTP(c *gin.Context) {
	var input models.ConsentOTPRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	tx, err := h.Verification.RequestConsentOTP(input.BookingNumber)
	if err != nil {
		verificationError(c, "consent.request", err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// ResendConsentOTP re-issues the consent code, bounded by the resend cap.
func (h *VerificationHandler) ResendConsentOTP(c *gin.Context) {
	var input models.ConsentOTPRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	tx, err := h.Verification.ResendConsentOTP(input.BookingNumber)
	if err != nil {
		verificationError(c, "consent.resend", err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// ValidateConsentOTP checks the operator-entered code. On success consent is
// recorded on the booking and, when a session is named, on the workflow
// session. Failure changes nothing; the operator may retry.
func (h *VerificationHandler) ValidateConsentOTP(c *gin.Context) {
	var input struct {
		models.ConsentOTPValidation
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Verification.ValidateConsentOTP(input.ConsentOTPValidation)
	if err != nil {
		verificationError(c, "consent.validate", err)
		return
	}

	if input.SessionID != "" {
		if _, err := h.Workflow.MarkConsent(input.SessionID); err != nil {
			utils.GetLogger().Warn("consent recorded but session update failed",
				zap.String("session", input.SessionID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, booking)
}

// RequestCompletionOTP issues a completion code for one service line.
func (h *VerificationHandler) RequestCompletionOTP(c *gin.Context) {
	tx, err := h.Verification.RequestCompletionOTP(c.Param("id"), c.Param("serviceID"))
	if err != nil {
		verificationError(c, "completion.request", err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// ResendCompletionOTP re-issues the completion code for one service line.
func (h *VerificationHandler) ResendCompletionOTP(c *gin.Context) {
	tx, err := h.Verification.ResendCompletionOTP(c.Param("id"), c.Param("serviceID"))
	if err != nil {
		verificationError(c, "completion.resend", err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// VerifyCompletionOTP checks the code and completes exactly the targeted
// service line. When every line of the booking is done and a session is
// named, the session's service-completed flag is set too.
func (h *VerificationHandler) VerifyCompletionOTP(c *gin.Context) {
	var input struct {
		models.CompletionOTPValidation
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Verification.VerifyCompletionOTP(c.Param("id"), c.Param("serviceID"), input.OTPCode)
	if err != nil {
		verificationError(c, "completion.verify", err)
		return
	}

	if input.SessionID != "" && booking.AllServicesCompleted() {
		if _, err := h.Workflow.MarkServiceCompleted(input.SessionID); err != nil {
			utils.GetLogger().Warn("completion recorded but session update failed",
				zap.String("session", input.SessionID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, booking)
}
