package handlers

import (
	"errors"
	"net/http"

	bookingRepo "medlease/database/repository/booking"
	"medlease/models"
	bookingSvc "medlease/services/booking"
	"medlease/services/workflow"
	"medlease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle, the practitioner worklist,
// and the reconciliation sync feed.
type BookingHandler struct {
	Bookings bookingSvc.BookingService
	Workflow workflow.WorkflowService
}

func bookingError(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, bookingRepo.ErrNotFound):
		utils.JSONErrorWithCode(c, http.StatusNotFound, code, "booking not found", "")
	case errors.Is(err, bookingRepo.ErrConflict):
		utils.JSONErrorWithCode(c, http.StatusConflict, code, "booking already decided", "")
	case errors.Is(err, bookingSvc.ErrInvalidPaymentMode),
		errors.Is(err, bookingSvc.ErrInvalidDate):
		utils.JSONErrorWithCode(c, http.StatusBadRequest, code, "invalid input", err.Error())
	case errors.Is(err, bookingSvc.ErrLineNotCancellable):
		utils.JSONErrorWithCode(c, http.StatusConflict, code, "service line cannot be cancelled", "")
	default:
		utils.JSONErrorWithCode(c, http.StatusInternalServerError, code, "booking operation failed", err.Error())
	}
}

// CreateBooking creates a pending booking. When a session ID is supplied the
// booking is attached to the workflow session and the session advances to the
// consent step.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input struct {
		models.CreateBookingInput
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Bookings.CreateBooking(input.CreateBookingInput)
	if err != nil {
		bookingError(c, "booking.create", err)
		return
	}

	if input.SessionID != "" {
		ref := models.BookingRef{
			ID:            booking.ID,
			BookingNumber: booking.BookingNumber,
			Status:        booking.Status,
		}
		if _, err := h.Workflow.AttachBooking(input.SessionID, ref); err != nil {
			utils.GetLogger().Warn("booking created but session update failed",
				zap.String("session", input.SessionID), zap.Error(err))
		} else if _, err := h.Workflow.Advance(input.SessionID); err != nil {
			utils.GetLogger().Warn("booking attached but session advance failed",
				zap.String("session", input.SessionID), zap.Error(err))
		}
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBooking fetches one booking by ID.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.Bookings.GetBooking(c.Param("id"))
	if err != nil {
		bookingError(c, "booking.get", err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetBookingByNumber fetches one booking by its human-quotable number.
func (h *BookingHandler) GetBookingByNumber(c *gin.Context) {
	booking, err := h.Bookings.GetBookingByNumber(c.Param("number"))
	if err != nil {
		bookingError(c, "booking.get", err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ApproveBooking performs the one-shot approval decision.
func (h *BookingHandler) ApproveBooking(c *gin.Context) {
	booking, err := h.Bookings.ApproveBooking(c.Param("id"))
	if err != nil {
		bookingError(c, "booking.approve", err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// RejectBooking performs the one-shot rejection decision.
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	booking, err := h.Bookings.RejectBooking(c.Param("id"))
	if err != nil {
		bookingError(c, "booking.reject", err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelServiceLine cancels one line of a booking.
func (h *BookingHandler) CancelServiceLine(c *gin.Context) {
	booking, err := h.Bookings.CancelServiceLine(c.Param("id"), c.Param("serviceID"))
	if err != nil {
		bookingError(c, "booking.cancel_line", err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Worklist returns one page of the practitioner worklist.
func (h *BookingHandler) Worklist(c *gin.Context) {
	var q models.WorklistQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid query", err.Error())
		return
	}
	page, err := h.Bookings.Worklist(q)
	if err != nil {
		bookingError(c, "booking.worklist", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Sync returns bookings changed since a given instant for reconciliation.
func (h *BookingHandler) Sync(c *gin.Context) {
	var q models.SyncQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid query", err.Error())
		return
	}
	page, err := h.Bookings.Sync(q)
	if err != nil {
		utils.JSONErrorWithCode(c, http.StatusBadRequest, "booking.sync", "failed to sync bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, page)
}
