package api

import (
	"net/http"                          // HTTP status codes
	"project_showcase/internal/service" // Business rules

	"github.com/gin-gonic/gin" // Gin web framework
)

// RoleRequest is the body of a role change
type RoleRequest struct {
	Role string `json:"role" binding:"required"` // New role: user or admin
}

// AdminListUsersHandler returns a page of users, optionally searched by name or email
func AdminListUsersHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := svc.ListUsers(c.Request.Context(), pageQuery(c), c.Query("search"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page) // Return the page
	}
}

// UpdateUserRoleHandler promotes or demotes a user
func UpdateUserRoleHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id") // Parse user ID
		if !ok {
			return
		}
		var req RoleRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			badRequest(c, "Invalid request")
			return
		}
		user, err := svc.UpdateUserRole(c.Request.Context(), id, req.Role)
		if err != nil {
			respondError(c, err) // Invalid role, root admin or not found
			return
		}
		c.JSON(http.StatusOK, user) // Return the updated user
	}
}

// AdminDeleteUserHandler deletes a user with their projects, likes and comments
func AdminDeleteUserHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id") // Parse user ID
		if !ok {
			return
		}
		result, err := svc.DeleteUser(c.Request.Context(), id)
		if err != nil {
			respondError(c, err) // A failed step can be resumed by retrying
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully", "result": result})
	}
}

// AdminListProjectsHandler returns a page of all projects
func AdminListProjectsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Same filters as the public listing
		filter := service.ProjectFilter{
			CreatorID: uintQuery(c, "creator"), // Only this creator's projects
			Search:    c.Query("search"),       // Free text
			Sort:      c.Query("sort"),         // date or likes
		}
		page, err := svc.ListProjects(c.Request.Context(), filter, pageQuery(c), 0)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page) // Return the page
	}
}

// AdminUpdateProjectHandler edits any project
func AdminUpdateProjectHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id") // Parse project ID
		if !ok {
			return
		}
		var req ProjectRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			badRequest(c, "Invalid request")
			return
		}
		project, err := svc.AdminUpdateProject(c.Request.Context(), id, req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, project) // Return the updated project
	}
}

// AdminDeleteProjectHandler removes any project
func AdminDeleteProjectHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id") // Parse project ID
		if !ok {
			return
		}
		if err := svc.AdminDeleteProject(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
	}
}

// AdminListCommentsHandler returns every comment across projects, newest first
func AdminListCommentsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Build the query from query params
		query := service.CommentQuery{
			Page:      pageQuery(c),                         // Page request
			Search:    c.Query("search"),                    // Text search
			ProjectID: uintQuery(c, "projectId", "project"), // Only this project
			UserID:    uintQuery(c, "userId", "user"),       // Only this author
		}
		page, err := svc.ListAllComments(c.Request.Context(), query)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page) // Return the page
	}
}

// AdminEditCommentHandler rewrites any comment
func AdminEditCommentHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CommentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			badRequest(c, "Invalid request")
			return
		}
		comment, err := svc.AdminEditComment(c.Request.Context(), c.Param("id"), req.Text)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, comment) // Return the edited comment
	}
}

// AdminDeleteCommentHandler removes any comment
func AdminDeleteCommentHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.AdminDeleteComment(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
	}
}
