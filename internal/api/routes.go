package api

import (
	"project_showcase/internal/middleware" // Auth and admin gates
	"project_showcase/internal/service"    // Business rules

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterRoutes mounts every endpoint on r. uploader may be nil when uploads are disabled.
func RegisterRoutes(r *gin.Engine, svc *service.Service, uploader Uploader, jwtSecret string) {
	auth := middleware.JWTAuthMiddleware(jwtSecret)         // Token required
	optional := middleware.OptionalJWTMiddleware(jwtSecret) // Token used when present

	// Auth routes
	r.POST("/auth/register", RegisterHandler(svc)) // Registration endpoint
	r.POST("/auth/login", LoginHandler(svc))       // Login endpoint

	// Project routes
	projects := r.Group("/projects")
	projects.GET("", optional, ListProjectsHandler(svc))         // Project listing
	projects.POST("", auth, CreateProjectHandler(svc))           // Create project
	projects.GET("/:id", optional, GetProjectHandler(svc))       // Project detail
	projects.PATCH("/:id", auth, UpdateProjectHandler(svc))      // Edit own project
	projects.DELETE("/:id", auth, DeleteProjectHandler(svc))     // Delete own project
	projects.POST("/:id/like", auth, ToggleLikeHandler(svc))     // Like toggle
	projects.GET("/:id/comments", ListCommentsHandler(svc))      // Project comments
	projects.POST("/:id/comments", auth, AddCommentHandler(svc)) // Add comment

	// Comment routes
	r.PATCH("/comments/:id", auth, EditCommentHandler(svc))    // Edit own comment
	r.DELETE("/comments/:id", auth, DeleteCommentHandler(svc)) // Delete comment

	// Search routes
	r.GET("/search/projects", SearchProjectsHandler(svc)) // Quick project search
	r.GET("/search/users", SearchUsersHandler(svc))       // Quick user search

	// User routes
	r.GET("/users/:id", GetUserHandler(svc))                             // Public profile
	r.GET("/users/:id/projects", optional, ListUserProjectsHandler(svc)) // A user's projects

	// Profile routes (protected by JWT)
	profile := r.Group("/profile", auth)
	profile.GET("", GetProfileHandler(svc))                    // Own profile
	profile.PATCH("", UpdateProfileHandler(svc))               // Edit own profile
	profile.POST("/image", ProfileImageHandler(svc, uploader)) // Avatar upload
	r.POST("/upload", auth, UploadHandler(uploader))           // Project image upload

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	// Protect admin routes with JWT and AdminOnly middleware
	adminGroup.Use(auth, middleware.AdminOnlyMiddleware(svc))
	adminGroup.GET("/users", AdminListUsersHandler(svc))               // List users
	adminGroup.PATCH("/users/:id/role", UpdateUserRoleHandler(svc))    // Change role
	adminGroup.DELETE("/users/:id", AdminDeleteUserHandler(svc))       // Cascade delete
	adminGroup.GET("/projects", AdminListProjectsHandler(svc))         // List projects
	adminGroup.PATCH("/projects/:id", AdminUpdateProjectHandler(svc))  // Moderate project
	adminGroup.DELETE("/projects/:id", AdminDeleteProjectHandler(svc)) // Remove project
	adminGroup.GET("/comments", AdminListCommentsHandler(svc))         // All comments
	adminGroup.PATCH("/comments/:id", AdminEditCommentHandler(svc))    // Moderate comment
	adminGroup.DELETE("/comments/:id", AdminDeleteCommentHandler(svc)) // Remove comment
}
