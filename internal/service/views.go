package service

import (
	"time"

	"project_showcase/internal/domain"
)

// CommentView is a comment with its author resolved
type CommentView struct {
	ID        string             `json:"id"`
	Text      string             `json:"text"`
	Author    domain.UserSummary `json:"author"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty"`
}

// ProjectView is a project as shown to a particular viewer
type ProjectView struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Image         string             `json:"image"`
	Link          string             `json:"link"`
	Creator       domain.UserSummary `json:"creator"`
	Likes         []uint             `json:"likes"`
	LikesCount    int                `json:"likesCount"`
	CommentsCount int                `json:"commentsCount"`
	UserLiked     bool               `json:"userLiked"`
	Comments      []CommentView      `json:"comments,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// ProjectPage is one page of a project listing
type ProjectPage struct {
	Items      []ProjectView `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

// AdminComment is a flattened comment with its project attached
type AdminComment struct {
	CommentView
	ProjectID    uint   `json:"projectId"`
	ProjectTitle string `json:"projectTitle"`
}

// CommentPage is one page of the admin comment listing
type CommentPage struct {
	Comments   []AdminComment `json:"comments"`
	Pagination Pagination     `json:"pagination"`
}

// UserPage is one page of the admin user listing
type UserPage struct {
	Users      []domain.User `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

// LikeResult is the authoritative state after a like toggle
type LikeResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

func projectView(p *domain.Project, viewerID uint) ProjectView {
	likes := make([]uint, len(p.Likes))
	copy(likes, p.Likes)
	return ProjectView{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Image:         p.Image,
		Link:          p.Link,
		Creator:       p.Creator.Summary(),
		Likes:         likes,
		LikesCount:    len(p.Likes),
		CommentsCount: len(p.Comments),
		UserLiked:     p.LikedBy(viewerID),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func commentView(c domain.Comment, authors map[uint]domain.UserSummary) CommentView {
	author, ok := authors[c.AuthorID]
	if !ok {
		author = domain.UserSummary{ID: c.AuthorID}
	}
	return CommentView{
		ID:        c.ID,
		Text:      c.Text,
		Author:    author,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
