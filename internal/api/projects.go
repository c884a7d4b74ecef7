package api

import (
	"net/http"                             // HTTP status codes
	"project_showcase/internal/middleware" // Caller identity
	"project_showcase/internal/service"    // Business rules

	"github.com/gin-gonic/gin" // Gin web framework
)

// ProjectRequest is the body of project create and update calls
type ProjectRequest struct {
	Title       *string `json:"title"`       // Project title
	Description *string `json:"description"` // Project description
	Image       *string `json:"image"`       // Cover image URL
	Link        *string `json:"link"`        // External link
}

// input converts the request into the service's input
func (r ProjectRequest) input() service.ProjectInput {
	return service.ProjectInput{
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		Link:        r.Link,
	}
}

// ListProjectsHandler returns a page of projects, filtered and sorted by query params
func ListProjectsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Build the filter from query params
		filter := service.ProjectFilter{
			CreatorID: uintQuery(c, "creator"), // Only this creator's projects
			Search:    c.Query("search"),       // Free text
			Sort:      c.Query("sort"),         // date or likes
		}
		// Fetch the page, marking projects the caller liked
		page, err := svc.ListProjects(c.Request.Context(), filter, pageQuery(c), middleware.UserID(c))
		if err != nil {
			respondError(c, err) // Invalid sort or Internal
			return
		}
		c.JSON(http.StatusOK, page) // Return the page
	}
}

// CreateProjectHandler publishes a project owned by the caller
func CreateProjectHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProjectRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			badRequest(c, "Invalid request")
			return
		}
		// Validate and store the project
		project, err := svc.CreateProject(c.Request.Context(), middleware.UserID(c), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, project) // Return the created project
	}
}

// GetProjectHandler returns a project with its comments
func GetProjectHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id") // Parse project ID
		if !ok {
			return
		}
		project, err := svc.GetProject(c.Request.Context(), id, middleware.UserID(c))
		if err != nil {
			respondError(c, err) // Not found
			return
		}
		c.JSON(http.StatusOK, project) // Return the project
	}
}

// UpdateProjectHandler edits a project owned by the caller
func UpdateProjectHandler(svc *service.Service) gin.HandlerFunc {
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
		// Only the creator may edit
		project, err := svc.UpdateProject(c.Request.Context(), id, middleware.UserID(c), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, project) // Return the updated project
	}
}

// DeleteProjectHandler removes a project owned by the caller
func DeleteProjectHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id") // Parse project ID
		if !ok {
			return
		}
		// Only the creator may delete
		if err := svc.DeleteProject(c.Request.Context(), id, middleware.UserID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
	}
}

// ToggleLikeHandler likes or unlikes a project for the caller
func ToggleLikeHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id") // Parse project ID
		if !ok {
			return
		}
		result, err := svc.ToggleLike(c.Request.Context(), id, middleware.UserID(c))
		if err != nil {
			respondError(c, err) // Not found or Conflict
			return
		}
		c.JSON(http.StatusOK, result) // {liked, likesCount}
	}
}
