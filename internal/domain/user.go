package domain

import "time"

// Roles a user can hold
const (
	RoleUser  = "user"  // Regular member
	RoleAdmin = "admin" // Moderator with access to the admin routes
)

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                       // Primary key
	Name      string    `gorm:"size:100;not null" json:"name"`              // Display name
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"` // Unique email address
	Password  *string   `gorm:"size:255" json:"-"`                          // Hashed password, nil for externally authenticated accounts
	Image     string    `gorm:"size:512" json:"image"`                      // Avatar URL
	Role      string    `gorm:"size:10;default:user;not null" json:"role"`  // Role: user or admin
	Bio       string    `gorm:"size:500" json:"bio"`                        // Short biography
	Phone     string    `gorm:"size:20" json:"phone"`                       // Phone number
	Github    string    `gorm:"size:100" json:"github"`                     // GitHub handle
	CreatedAt time.Time `gorm:"index" json:"createdAt"`                     // Timestamp of creation
}

// IsAdmin reports whether the stored role grants admin access
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// UserSummary is the author/creator projection embedded in responses
type UserSummary struct {
	ID    uint   `json:"id"`    // User ID
	Name  string `json:"name"`  // Display name
	Image string `json:"image"` // Avatar URL
}

// Summary returns the public projection of the user
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Image: u.Image}
}
