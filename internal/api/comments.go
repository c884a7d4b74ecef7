package api

import (
	"net/http"                             // HTTP status codes
	"project_showcase/internal/middleware" // Caller identity
	"project_showcase/internal/service"    // Business rules

	"github.com/gin-gonic/gin" // Gin web framework
)

// CommentRequest is the body of comment create and edit calls
type CommentRequest struct {
	Text string `json:"text"` // Comment body, validated by the service
}

// ListCommentsHandler returns the comments of a project
func ListCommentsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id") // Parse project ID
		if !ok {
			return
		}
		comments, err := svc.ListProjectComments(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"comments": comments}) // Return the comments
	}
}

// AddCommentHandler comments on a project as the caller
func AddCommentHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id") // Parse project ID
		if !ok {
			return
		}
		var req CommentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			badRequest(c, "Invalid request")
			return
		}
		comment, err := svc.AddComment(c.Request.Context(), id, middleware.UserID(c), req.Text)
		if err != nil {
			respondError(c, err) // Validation or Not found
			return
		}
		c.JSON(http.StatusCreated, comment) // Return the new comment
	}
}

// EditCommentHandler changes the text of the caller's own comment
func EditCommentHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CommentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			badRequest(c, "Invalid request")
			return
		}
		// Only the author may edit
		comment, err := svc.EditComment(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Text)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, comment) // Return the edited comment
	}
}

// DeleteCommentHandler removes a comment written by the caller or left on the caller's project
func DeleteCommentHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteComment(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
	}
}
