package handlers

import (
	"net/http"

	"medlease/utils"

	"github.com/gin-gonic/gin"
)

// HealthCheck returns the latest dependency health snapshot.
func HealthCheck(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
