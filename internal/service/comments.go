package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"project_showcase/internal/apperr"
	"project_showcase/internal/domain"
	"project_showcase/internal/store"

	"github.com/sirupsen/logrus"
)

// commentAuthorizer decides whether the caller may change comment c of project p
type commentAuthorizer func(p *domain.Project, c domain.Comment) error

func validateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return apperr.NewValidation("text", "comment cannot be empty")
	}
	if utf8.RuneCountInString(text) > domain.CommentMaxLength {
		return apperr.NewValidation("text", "comment cannot be longer than 500 characters")
	}
	return nil
}

// AddComment appends a comment by userID to the project
func (s *Service) AddComment(ctx context.Context, projectID, userID uint, text string) (*CommentView, error) {
	if err := s.requireCaller(ctx, userID); err != nil {
		return nil, err
	}
	if err := validateCommentText(text); err != nil {
		return nil, err
	}

	comment := domain.Comment{
		ID:        s.newID(),
		Text:      text,
		AuthorID:  userID,
		CreatedAt: s.now(),
	}
	_, err := s.mutateProject(ctx, projectID, func(p *domain.Project) error {
		p.Comments = append(p.Comments, comment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateComments(ctx)

	logrus.WithFields(logrus.Fields{
		"project_id": projectID,
		"comment_id": comment.ID,
		"user_id":    userID,
	}).Info("Comment added")
	return s.resolveComment(ctx, comment)
}

// EditComment replaces the text of a comment. Only its author may edit it.
func (s *Service) EditComment(ctx context.Context, commentID string, userID uint, text string) (*CommentView, error) {
	if userID == 0 {
		return nil, apperr.NewUnauthorized("authentication required")
	}
	return s.editComment(ctx, commentID, text, func(_ *domain.Project, c domain.Comment) error {
		if c.AuthorID != userID {
			return apperr.NewForbidden("only the author can edit this comment")
		}
		return nil
	})
}

// AdminEditComment replaces the text of any comment
func (s *Service) AdminEditComment(ctx context.Context, commentID, text string) (*CommentView, error) {
	return s.editComment(ctx, commentID, text, func(*domain.Project, domain.Comment) error { return nil })
}

func (s *Service) editComment(ctx context.Context, commentID, text string, authorize commentAuthorizer) (*CommentView, error) {
	if err := validateCommentText(text); err != nil {
		return nil, err
	}
	projectID, err := s.projectForComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	var edited domain.Comment
	_, err = s.mutateProject(ctx, projectID, func(p *domain.Project) error {
		i := p.FindComment(commentID)
		if i < 0 {
			return apperr.NewNotFound("comment not found")
		}
		if err := authorize(p, p.Comments[i]); err != nil {
			return err
		}
		now := s.now()
		p.Comments[i].Text = text
		p.Comments[i].UpdatedAt = &now
		edited = p.Comments[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateComments(ctx)

	logrus.WithFields(logrus.Fields{
		"project_id": projectID,
		"comment_id": commentID,
	}).Info("Comment edited")
	return s.resolveComment(ctx, edited)
}

// DeleteComment removes a comment. Its author and the project's creator may both do so.
func (s *Service) DeleteComment(ctx context.Context, commentID string, userID uint) error {
	if userID == 0 {
		return apperr.NewUnauthorized("authentication required")
	}
	return s.deleteComment(ctx, commentID, func(p *domain.Project, c domain.Comment) error {
		if c.AuthorID != userID && p.CreatorID != userID {
			return apperr.NewForbidden("only the author or the project owner can delete this comment")
		}
		return nil
	})
}

// AdminDeleteComment removes any comment
func (s *Service) AdminDeleteComment(ctx context.Context, commentID string) error {
	return s.deleteComment(ctx, commentID, func(*domain.Project, domain.Comment) error { return nil })
}

func (s *Service) deleteComment(ctx context.Context, commentID string, authorize commentAuthorizer) error {
	projectID, err := s.projectForComment(ctx, commentID)
	if err != nil {
		return err
	}
	_, err = s.mutateProject(ctx, projectID, func(p *domain.Project) error {
		i := p.FindComment(commentID)
		if i < 0 {
			return apperr.NewNotFound("comment not found")
		}
		if err := authorize(p, p.Comments[i]); err != nil {
			return err
		}
		p.RemoveComment(commentID)
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidateComments(ctx)

	logrus.WithFields(logrus.Fields{
		"project_id": projectID,
		"comment_id": commentID,
	}).Info("Comment deleted")
	return nil
}

// ListProjectComments returns the comments of a project, oldest first
func (s *Service) ListProjectComments(ctx context.Context, projectID uint) ([]CommentView, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NewNotFound("project not found")
	}
	if err != nil {
		return nil, apperr.NewInternal("failed to load project", err)
	}
	return s.commentViews(ctx, p.Comments)
}

func (s *Service) projectForComment(ctx context.Context, commentID string) (uint, error) {
	projectID, err := s.store.ProjectIDForComment(ctx, commentID)
	if errors.Is(err, store.ErrNotFound) {
		return 0, apperr.NewNotFound("comment not found")
	}
	if err != nil {
		return 0, apperr.NewInternal("failed to look up comment", err)
	}
	return projectID, nil
}

func (s *Service) resolveComment(ctx context.Context, c domain.Comment) (*CommentView, error) {
	views, err := s.commentViews(ctx, []domain.Comment{c})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) commentViews(ctx context.Context, comments []domain.Comment) ([]CommentView, error) {
	ids := make([]uint, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	authors, err := s.authorSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, commentView(c, authors))
	}
	return views, nil
}
