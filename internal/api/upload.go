package api

import (
	"context"                              // Context for the upload
	"io"                                   // Upload body
	"net/http"                             // HTTP status codes
	"project_showcase/internal/apperr"     // Error kinds
	"project_showcase/internal/middleware" // Caller identity
	"project_showcase/internal/service"    // Business rules
	"project_showcase/internal/storage"    // Object storage

	"github.com/gin-gonic/gin" // Gin web framework
)

// multipartOverhead is the slack allowed on top of the file for form boundaries and headers
const multipartOverhead = 64 << 10

// Uploader stores uploaded files
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, opts storage.UploadOptions) (*storage.Object, error)
	MaxBytes() int64
}

// receive stores the multipart "file" field with opts
func receive(c *gin.Context, uploader Uploader, opts storage.UploadOptions) (*storage.Object, bool) {
	// Uploads are disabled when no bucket is configured
	if uploader == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Uploads are not configured", "kind": apperr.Internal})
		return nil, false
	}
	// Cap the request body before parsing the form
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uploader.MaxBytes()+multipartOverhead)
	header, err := c.FormFile("file") // Read the file field
	if err != nil {
		// If missing or too large, return bad request
		badRequest(c, "No file uploaded")
		return nil, false
	}
	file, err := header.Open() // Open the uploaded file
	if err != nil {
		badRequest(c, "Could not read upload")
		return nil, false
	}
	defer file.Close()

	opts.Name = header.Filename // Keep the original extension as a fallback
	obj, err := uploader.Upload(c.Request.Context(), file, opts)
	if err != nil {
		respondError(c, err) // Validation or Internal
		return nil, false
	}
	return obj, true
}

// UploadHandler stores a project image and returns its URL
func UploadHandler(uploader Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		obj, ok := receive(c, uploader, storage.UploadOptions{Folder: storage.ProjectFolder})
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": obj.URL, "key": obj.Key}) // Return the stored object
	}
}

// ProfileImageHandler stores a new avatar and sets it on the caller's profile
func ProfileImageHandler(svc *service.Service, uploader Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		obj, ok := receive(c, uploader, storage.UploadOptions{Folder: storage.AvatarFolder, ImagesOnly: true})
		if !ok {
			return
		}
		// Point the profile at the new image
		if _, err := svc.UpdateProfile(c.Request.Context(), middleware.UserID(c), service.ProfileInput{Image: &obj.URL}); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"imageUrl": obj.URL}) // Return the avatar URL
	}
}
