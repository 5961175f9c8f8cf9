package handlers

import (
	"net/http"
	"strconv"
	"time"

	patientRepo "medlease/database/repository/patient"
	"medlease/middleware"
	"medlease/models"
	"medlease/services/workflow"
	"medlease/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PatientHandler exposes patient registration and lookup. Registration can
// bind the new patient into a workflow session in the same request.
type PatientHandler struct {
	Repo     patientRepo.PatientRepository
	Workflow workflow.WorkflowService
}

// RegisterPatient creates a patient record. When a session ID is supplied the
// patient is also set on the workflow session.
func (h *PatientHandler) RegisterPatient(c *gin.Context) {
	var input struct {
		models.RegisterPatientInput
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	now := time.Now()
	patient := &models.Patient{
		ID:          uuid.New().String(),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		DateOfBirth: input.DateOfBirth,
		NationalID:  input.NationalID,
		InsuranceNo: input.InsuranceNo,
		FCMToken:    input.FCMToken,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	patient.RegisteredBy = c.GetString(middleware.OperatorIDKey)

	if err := h.Repo.Create(patient); err != nil {
		utils.JSONErrorWithCode(c, http.StatusInternalServerError, "patient.register", "failed to register patient", err.Error())
		return
	}

	if input.SessionID != "" {
		_, err := h.Workflow.SetPatient(input.SessionID, models.PatientRef{
			ID:          patient.ID,
			FullName:    patient.FullName(),
			PhoneNumber: patient.PhoneNumber,
			DateOfBirth: patient.DateOfBirth,
		})
		if err != nil {
			utils.GetLogger().Warn("patient registered but session update failed",
				zap.String("session", input.SessionID), zap.Error(err))
		}
	}
	c.JSON(http.StatusCreated, patient)
}

// GetPatient fetches one patient by ID.
func (h *PatientHandler) GetPatient(c *gin.Context) {
	patient, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "patient not found", "")
		return
	}
	c.JSON(http.StatusOK, patient)
}

// SearchPatients searches by name or phone, paginated.
func (h *PatientHandler) SearchPatients(c *gin.Context) {
	term := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	patients, total, err := h.Repo.Search(term, page, perPage)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to search patients", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      patients,
		"pagination": models.Pagination{Page: page, PerPage: perPage, Total: total},
	})
}

// UpdatePatient replaces the mutable fields of a patient record.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var input models.RegisterPatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	patient, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "patient not found", "")
		return
	}
	patient.FirstName = input.FirstName
	patient.LastName = input.LastName
	patient.PhoneNumber = input.PhoneNumber
	patient.DateOfBirth = input.DateOfBirth
	patient.NationalID = input.NationalID
	patient.InsuranceNo = input.InsuranceNo
	if input.FCMToken != "" {
		patient.FCMToken = input.FCMToken
	}
	patient.UpdatedAt = time.Now()

	if err := h.Repo.Update(patient); err != nil {
		utils.JSONErrorWithCode(c, http.StatusInternalServerError, "patient.update", "failed to update patient", err.Error())
		return
	}
	c.JSON(http.StatusOK, patient)
}

// DeletePatient removes a patient record.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	if err := h.Repo.Delete(c.Param("id")); err != nil {
		utils.JSONErrorWithCode(c, http.StatusInternalServerError, "patient.delete", "failed to delete patient", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
