package handlers

import (
	"errors"
	"net/http"
	"strconv"

	settlementRepo "medlease/database/repository/settlement"
	"medlease/middleware"
	"medlease/models"
	settlementSvc "medlease/services/settlement"
	"medlease/utils"

	"github.com/gin-gonic/gin"
)

// SettlementHandler exposes settlement batches and facility payments.
type SettlementHandler struct {
	Settlement settlementSvc.SettlementService
}

func settlementError(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, settlementRepo.ErrNotFound):
		utils.JSONErrorWithCode(c, http.StatusNotFound, code, "settlement record not found", "")
	case errors.Is(err, settlementSvc.ErrNoEligibleBookings):
		utils.JSONErrorWithCode(c, http.StatusUnprocessableEntity, code, "no eligible bookings for settlement", "")
	case errors.Is(err, settlementSvc.ErrBatchNotOpen):
		utils.JSONErrorWithCode(c, http.StatusConflict, code, "batch is not open", "")
	default:
		utils.JSONErrorWithCode(c, http.StatusInternalServerError, code, "settlement operation failed", err.Error())
	}
}

// CreateBatch assembles a settlement batch from completed bookings.
func (h *SettlementHandler) CreateBatch(c *gin.Context) {
	var input models.CreateBatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	batch, err := h.Settlement.CreateBatch(input, c.GetString(middleware.OperatorIDKey))
	if err != nil {
		settlementError(c, "settlement.create", err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

// GetBatch fetches one batch.
func (h *SettlementHandler) GetBatch(c *gin.Context) {
	batch, err := h.Settlement.GetBatch(c.Param("id"))
	if err != nil {
		settlementError(c, "settlement.get", err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

// ListBatches lists batches, optionally filtered by facility.
func (h *SettlementHandler) ListBatches(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	batches, total, err := h.Settlement.ListBatches(c.Query("facility_id"), page, perPage)
	if err != nil {
		settlementError(c, "settlement.list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      batches,
		"pagination": models.Pagination{Page: page, PerPage: perPage, Total: total},
	})
}

// DisburseBatch pays out an open batch.
func (h *SettlementHandler) DisburseBatch(c *gin.Context) {
	batch, err := h.Settlement.DisburseBatch(c.Param("id"))
	if err != nil {
		settlementError(c, "settlement.disburse", err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

// ListPayments lists settled facility payments for reconciliation.
func (h *SettlementHandler) ListPayments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	payments, total, err := h.Settlement.ListPayments(c.Query("facility_id"), page, perPage)
	if err != nil {
		settlementError(c, "settlement.payments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      payments,
		"pagination": models.Pagination{Page: page, PerPage: perPage, Total: total},
	})
}
