package domain

import "time"

// Comment bounds, counted in characters
const (
	CommentMaxLength = 500
)

// Comment is embedded in a Project and has no lifecycle of its own
type Comment struct {
	ID        string     `json:"id"`                  // Comment ID (uuid)
	Text      string     `json:"text"`                // Comment body
	AuthorID  uint       `json:"author"`              // Author user ID
	CreatedAt time.Time  `json:"createdAt"`           // Timestamp of creation
	UpdatedAt *time.Time `json:"updatedAt,omitempty"` // Timestamp of the last edit
}

// CommentRef indexes embedded comments so a comment can be resolved to its project
type CommentRef struct {
	CommentID string    `gorm:"primaryKey;size:36"` // Comment ID
	ProjectID uint      `gorm:"index;not null"`     // Owning project
	AuthorID  uint      `gorm:"index;not null"`     // Comment author
	CreatedAt time.Time `gorm:"index"`              // Comment creation time
}
