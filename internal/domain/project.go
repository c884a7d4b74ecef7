package domain

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

// Project field bounds, counted in characters
const (
	TitleMaxLength       = 100
	DescriptionMaxLength = 1000
)

// Project Model. A row is the whole aggregate: likes and comments live inside it.
type Project struct {
	ID          uint                         `gorm:"primaryKey" json:"id"`                                      // Primary key
	Title       string                       `gorm:"size:100;not null" json:"title"`                            // Project title
	Description string                       `gorm:"size:1000;not null" json:"description"`                     // Project description
	Image       string                       `gorm:"size:512;not null" json:"image"`                            // Cover image URL
	Link        string                       `gorm:"size:512;not null" json:"link"`                             // External link
	CreatorID   uint                         `gorm:"index;not null" json:"creatorId"`                           // Foreign key to the creating User
	Creator     User                         `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"-"` // Creator, preloaded for display
	Likes       datatypes.JSONSlice[uint]    `json:"likes"`                                                     // IDs of users who liked the project
	LikesCount  int                          `gorm:"index;not null;default:0" json:"likesCount"`                // Denormalized len(Likes) for sorting
	Comments    datatypes.JSONSlice[Comment] `json:"-"`                                                         // Embedded comments, oldest first
	Version     uint                         `gorm:"not null;default:0" json:"-"`                               // Optimistic concurrency counter
	CreatedAt   time.Time                    `gorm:"index" json:"createdAt"`                                    // Timestamp of creation
	UpdatedAt   time.Time                    `json:"updatedAt"`                                                 // Timestamp of last change
}

// LikedBy reports whether userID is in the likes list
func (p *Project) LikedBy(userID uint) bool {
	return userID != 0 && slices.Contains(p.Likes, userID)
}

// ToggleLike flips membership of userID and reports whether it is now liked
func (p *Project) ToggleLike(userID uint) bool {
	if i := slices.Index(p.Likes, userID); i >= 0 {
		p.Likes = slices.Delete(p.Likes, i, i+1)
		p.LikesCount = len(p.Likes)
		return false
	}
	p.Likes = append(p.Likes, userID)
	p.LikesCount = len(p.Likes)
	return true
}

// RemoveLike drops userID from the likes list; it reports whether anything changed
func (p *Project) RemoveLike(userID uint) bool {
	before := len(p.Likes)
	p.Likes = slices.DeleteFunc(p.Likes, func(id uint) bool { return id == userID })
	p.LikesCount = len(p.Likes)
	return len(p.Likes) != before
}

// FindComment returns the index of the comment with the given id, or -1
func (p *Project) FindComment(commentID string) int {
	return slices.IndexFunc(p.Comments, func(c Comment) bool { return c.ID == commentID })
}

// RemoveComment deletes the comment with the given id; it reports whether it existed
func (p *Project) RemoveComment(commentID string) bool {
	i := p.FindComment(commentID)
	if i < 0 {
		return false
	}
	p.Comments = slices.Delete(p.Comments, i, i+1)
	return true
}

// RemoveCommentsBy deletes every comment written by authorID and returns how many were removed
func (p *Project) RemoveCommentsBy(authorID uint) int {
	before := len(p.Comments)
	p.Comments = slices.DeleteFunc(p.Comments, func(c Comment) bool { return c.AuthorID == authorID })
	return before - len(p.Comments)
}

// CommentRefs builds the index rows for the embedded comments
func (p *Project) CommentRefs() []CommentRef {
	refs := make([]CommentRef, 0, len(p.Comments))
	for _, c := range p.Comments {
		refs = append(refs, CommentRef{
			CommentID: c.ID,
			ProjectID: p.ID,
			AuthorID:  c.AuthorID,
			CreatedAt: c.CreatedAt,
		})
	}
	return refs
}
