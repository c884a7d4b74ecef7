package middleware

import (
	"net/http"                        // HTTP status codes
	"project_showcase/internal/utils" // JWT utility functions
	"strings"                         // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by the auth middlewares
const (
	UserIDKey = "userID" // Authenticated user ID (uint)
	RoleKey   = "role"   // Role claim carried by the token, informational only
)

// bearerToken extracts the token from an "Authorization: Bearer ..." header
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization") // Get Authorization header
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false // Missing or not a bearer header
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true // Strip the scheme
}

// JWTAuthMiddleware validates JWT tokens and extracts user information
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c) // Extract the token string
		// Check if the Authorization header is present and properly formatted
		if !ok {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header", "kind": "unauthorized"})
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "kind": "unauthorized"})
			return
		}
		c.Set(UserIDKey, claims.UserID) // Store userID in context
		c.Set(RoleKey, claims.Role)     // Store role claim in context
		c.Next()                        // Proceed to the next handler
	}
}

// OptionalJWTMiddleware identifies the caller when a valid token is sent and lets
// anonymous requests through otherwise
func OptionalJWTMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c); ok {
			// A bad token on a public route is treated as anonymous
			if claims, err := utils.ParseJWT(tokenStr, secret); err == nil {
				c.Set(UserIDKey, claims.UserID) // Store userID in context
				c.Set(RoleKey, claims.Role)     // Store role claim in context
			}
		}
		c.Next() // Proceed to the next handler
	}
}

// UserID returns the authenticated user's ID, or 0 for anonymous requests
func UserID(c *gin.Context) uint {
	return c.GetUint(UserIDKey)
}
