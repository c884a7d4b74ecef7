package api

import (
	"errors"                            // Error unwrapping
	"net/http"                          // HTTP status codes
	"project_showcase/internal/apperr"  // Error kinds
	"project_showcase/internal/service" // Business rules
	"strconv"                           // String conversion

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// respondError writes err as {"error", "kind", "field"} with the matching status
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err) // Classify the error
	// Internal errors are logged with their cause and hidden from the client
	if kind == apperr.Internal {
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method, // HTTP method
			"path":   c.FullPath(),     // Route pattern
			"error":  err.Error(),      // Full error chain
		}).Error("Request failed")
	}
	body := gin.H{"error": apperr.PublicMessage(err), "kind": kind} // Response body
	var appErr *apperr.Error
	// Attach the offending field for validation errors
	if errors.As(err, &appErr) && appErr.Field != "" {
		body["field"] = appErr.Field
	}
	c.AbortWithStatusJSON(apperr.HTTPStatus(kind), body) // Write the response
}

// badRequest reports a malformed request body or parameter
func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message, "kind": apperr.Validation})
}

// uintParam parses a numeric path parameter, answering 400 when it is not one
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64) // Parse the parameter
	if err != nil || v == 0 {
		// If invalid, return bad request
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// uintQuery parses an optional numeric query parameter, 0 when absent or invalid.
// Aliases are tried in order when the primary name is not set.
func uintQuery(c *gin.Context, name string, aliases ...string) uint {
	for _, key := range append([]string{name}, aliases...) {
		raw, ok := c.GetQuery(key) // First name present wins
		if !ok {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 64) // Parse the parameter
		if err != nil {
			return 0 // Not a number
		}
		return uint(v)
	}
	return 0 // Absent
}

// pageQuery reads ?page= and ?limit= into a clamped page request
func pageQuery(c *gin.Context) service.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))                                     // Page number
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultPageSize))) // Page size
	return service.NewPage(page, limit)                                                      // Clamp to bounds
}
