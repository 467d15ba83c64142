package middleware

import (
	"net/http"

	"go-workforce/internal/policy"
	"go-workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// GetPrincipal rebuilds the policy principal from the context seeded by
// AuthMiddleware.
func GetPrincipal(c *gin.Context) policy.Principal {
	return policy.Principal{
		UserID:     c.GetString("user_id"),
		Role:       c.GetString("role"),
		EmployeeID: c.GetString("employee_id"),
	}
}

// Authorize gates a route on the role permission matrix. Ownership checks
// on individual records stay in the services, where the record is loaded.
func Authorize(service policy.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if p.UserID == "" || p.Role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
			c.Abort()
			return
		}

		decision, err := service.Authorize(p, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
			c.Abort()
			return
		}

		if !decision.Allowed {
			// Generic denial, no detail on why
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to access this resource", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
