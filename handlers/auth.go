package handlers

import (
	"errors"
	"net/http"

	"medlease/middleware"
	"medlease/models"
	operatorSvc "medlease/services/operator"
	"medlease/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes operator account and session endpoints.
type AuthHandler struct {
	Operators operatorSvc.OperatorService
}

// Signup creates an operator account and returns an open session.
func (h *AuthHandler) Signup(c *gin.Context) {
	var input models.OperatorSignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session, err := h.Operators.Signup(input)
	if err != nil {
		if errors.Is(err, operatorSvc.ErrEmailTaken) {
			utils.JSONErrorWithCode(c, http.StatusConflict, "auth.signup", "email already registered", "")
			return
		}
		utils.JSONErrorWithCode(c, http.StatusInternalServerError, "auth.signup", "failed to create account", err.Error())
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Login verifies credentials and returns an open session.
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.OperatorLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session, err := h.Operators.Login(input)
	if err != nil {
		if errors.Is(err, operatorSvc.ErrInvalidCredentials) {
			utils.JSONErrorWithCode(c, http.StatusUnauthorized, "auth.login", "invalid email or password", "")
			return
		}
		utils.JSONErrorWithCode(c, http.StatusInternalServerError, "auth.login", "failed to log in", err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}

// Logout unpins the authenticated operator's session.
func (h *AuthHandler) Logout(c *gin.Context) {
	operatorID := c.GetString(middleware.OperatorIDKey)
	if err := h.Operators.Logout(operatorID); err != nil {
		utils.JSONErrorWithCode(c, http.StatusInternalServerError, "auth.logout", "failed to log out", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the authenticated operator's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	operatorID := c.GetString(middleware.OperatorIDKey)
	op, err := h.Operators.GetOperator(operatorID)
	if err != nil || op == nil {
		utils.JSONError(c, http.StatusNotFound, "operator not found", "")
		return
	}
	c.JSON(http.StatusOK, op)
}
