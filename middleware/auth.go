package middleware

import (
	"net/http"
	"strings"

	operatorSvc "medlease/services/operator"

	"github.com/gin-gonic/gin"
)

// OperatorIDKey is the gin context key carrying the authenticated operator ID.
const OperatorIDKey = "operatorID"

// JWTAuthMiddleware authenticates operator requests via the Authorization
// bearer token and pins the operator ID on the context.
func JWTAuthMiddleware(operators operatorSvc.OperatorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		operatorID, err := operators.VerifySession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(OperatorIDKey, operatorID)
		c.Next()
	}
}

// RequireRole restricts a route group to operators holding one of the given
// roles. Must run after JWTAuthMiddleware.
func RequireRole(operators operatorSvc.OperatorService, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		operatorID := c.GetString(OperatorIDKey)
		if operatorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		op, err := operators.GetOperator(operatorID)
		if err != nil || op == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if op.Role != "admin" && !allowed[op.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
