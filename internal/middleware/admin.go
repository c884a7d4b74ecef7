package middleware

import (
	"context"                          // Context for the role lookup
	"project_showcase/internal/apperr" // Error kinds
	"project_showcase/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminChecker re-reads a user's stored role
type AdminChecker interface {
	RequireAdmin(ctx context.Context, userID uint) (*domain.User, error)
}

// AdminKey holds the freshly loaded admin user for downstream handlers
const AdminKey = "admin"

// AdminOnlyMiddleware checks the user's role from the database on each request.
// The role claim in the token is ignored so a demotion takes effect immediately.
func AdminOnlyMiddleware(checker AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c) // Get userID from context, 0 if absent
		// Look the user up and check the stored role
		admin, err := checker.RequireAdmin(c.Request.Context(), userID)
		if err != nil {
			kind := apperr.KindOf(err) // Unauthorized, Forbidden or Internal
			// Abort with the status matching the failure
			c.AbortWithStatusJSON(apperr.HTTPStatus(kind), gin.H{"error": apperr.PublicMessage(err), "kind": kind})
			return
		}
		c.Set(AdminKey, admin) // Expose the admin record
		// If admin, proceed to the next handler
		c.Next()
	}
}
