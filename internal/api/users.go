package api

import (
	"net/http"                             // HTTP status codes
	"project_showcase/internal/middleware" // Caller identity
	"project_showcase/internal/service"    // Business rules

	"github.com/gin-gonic/gin" // Gin web framework
)

// ProfileRequest is the body of a profile update; omitted fields stay unchanged
type ProfileRequest struct {
	Name   *string `json:"name"`   // Display name
	Bio    *string `json:"bio"`    // Short biography
	Phone  *string `json:"phone"`  // Phone number
	Github *string `json:"github"` // GitHub handle
	Image  *string `json:"image"`  // Avatar URL
}

// GetUserHandler returns a public user profile
func GetUserHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id") // Parse user ID
		if !ok {
			return
		}
		user, err := svc.GetUser(c.Request.Context(), id)
		if err != nil {
			respondError(c, err) // Not found
			return
		}
		c.JSON(http.StatusOK, user) // Return the user
	}
}

// ListUserProjectsHandler returns a page of one user's projects
func ListUserProjectsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id") // Parse user ID
		if !ok {
			return
		}
		page, err := svc.ListUserProjects(c.Request.Context(), id, pageQuery(c), middleware.UserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page) // Return the page
	}
}

// GetProfileHandler returns the caller's own profile
func GetProfileHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svc.GetUser(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			respondError(c, err) // Account removed since the token was issued
			return
		}
		c.JSON(http.StatusOK, user) // Return the profile
	}
}

// UpdateProfileHandler edits the caller's own profile
func UpdateProfileHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			badRequest(c, "Invalid request")
			return
		}
		user, err := svc.UpdateProfile(c.Request.Context(), middleware.UserID(c), service.ProfileInput{
			Name:   req.Name,
			Bio:    req.Bio,
			Phone:  req.Phone,
			Github: req.Github,
			Image:  req.Image,
		})
		if err != nil {
			respondError(c, err) // Validation
			return
		}
		c.JSON(http.StatusOK, user) // Return the updated profile
	}
}

// SearchProjectsHandler is the quick project search
func SearchProjectsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := svc.SearchProjects(c.Request.Context(), c.Query("q"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"projects": projects}) // Return the hits
	}
}

// SearchUsersHandler is the quick user search
func SearchUsersHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.SearchUsers(c.Request.Context(), c.Query("q"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users}) // Return the hits
	}
}
