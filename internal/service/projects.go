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

// ProjectInput carries the editable fields of a project. Nil fields are left unchanged on update.
type ProjectInput struct {
	Title       *string
	Description *string
	Image       *string
	Link        *string
}

func validateProject(p *domain.Project) error {
	switch {
	case strings.TrimSpace(p.Title) == "":
		return apperr.NewValidation("title", "title is required")
	case utf8.RuneCountInString(p.Title) > domain.TitleMaxLength:
		return apperr.NewValidation("title", "title cannot be longer than 100 characters")
	case strings.TrimSpace(p.Description) == "":
		return apperr.NewValidation("description", "description is required")
	case utf8.RuneCountInString(p.Description) > domain.DescriptionMaxLength:
		return apperr.NewValidation("description", "description cannot be longer than 1000 characters")
	case strings.TrimSpace(p.Image) == "":
		return apperr.NewValidation("image", "image is required")
	case strings.TrimSpace(p.Link) == "":
		return apperr.NewValidation("link", "link is required")
	}
	return nil
}

// apply copies the non-empty fields of in onto p
func (in ProjectInput) apply(p *domain.Project) {
	set := func(dst *string, src *string) {
		if src != nil && strings.TrimSpace(*src) != "" {
			*dst = *src
		}
	}
	set(&p.Title, in.Title)
	set(&p.Description, in.Description)
	set(&p.Image, in.Image)
	set(&p.Link, in.Link)
}

// CreateProject publishes a new project owned by userID
func (s *Service) CreateProject(ctx context.Context, userID uint, in ProjectInput) (*ProjectView, error) {
	if err := s.requireCaller(ctx, userID); err != nil {
		return nil, err
	}
	p := &domain.Project{CreatorID: userID, CreatedAt: s.now()}
	in.apply(p)
	if err := validateProject(p); err != nil {
		return nil, err
	}

	creator, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateProject(ctx, p); err != nil {
		return nil, apperr.NewInternal("failed to create project", err)
	}
	p.Creator = *creator

	logrus.WithFields(logrus.Fields{
		"project_id": p.ID,
		"user_id":    userID,
	}).Info("Project created")
	view := projectView(p, userID)
	return &view, nil
}

// GetProject returns a project with its comments resolved
func (s *Service) GetProject(ctx context.Context, projectID, viewerID uint) (*ProjectView, error) {
	p, err := s.store.GetProject(ctx, projectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NewNotFound("project not found")
	}
	if err != nil {
		return nil, apperr.NewInternal("failed to load project", err)
	}
	view := projectView(p, viewerID)
	view.Comments, err = s.commentViews(ctx, p.Comments)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// UpdateProject edits a project. Only its creator may do so.
func (s *Service) UpdateProject(ctx context.Context, projectID, userID uint, in ProjectInput) (*ProjectView, error) {
	if userID == 0 {
		return nil, apperr.NewUnauthorized("authentication required")
	}
	return s.updateProject(ctx, projectID, in, func(p *domain.Project) error {
		if p.CreatorID != userID {
			return apperr.NewForbidden("only the creator can edit this project")
		}
		return nil
	})
}

// AdminUpdateProject edits any project
func (s *Service) AdminUpdateProject(ctx context.Context, projectID uint, in ProjectInput) (*ProjectView, error) {
	return s.updateProject(ctx, projectID, in, func(*domain.Project) error { return nil })
}

func (s *Service) updateProject(ctx context.Context, projectID uint, in ProjectInput, authorize func(*domain.Project) error) (*ProjectView, error) {
	p, err := s.mutateProject(ctx, projectID, func(p *domain.Project) error {
		if err := authorize(p); err != nil {
			return err
		}
		in.apply(p)
		return validateProject(p)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateComments(ctx) // Cached comment pages carry the project title
	logrus.WithField("project_id", projectID).Info("Project updated")
	view := projectView(p, 0)
	return &view, nil
}

// DeleteProject removes a project. Only its creator may do so.
func (s *Service) DeleteProject(ctx context.Context, projectID, userID uint) error {
	if userID == 0 {
		return apperr.NewUnauthorized("authentication required")
	}
	return s.deleteProject(ctx, projectID, func(p *domain.Project) error {
		if p.CreatorID != userID {
			return apperr.NewForbidden("only the creator can delete this project")
		}
		return nil
	})
}

// AdminDeleteProject removes any project
func (s *Service) AdminDeleteProject(ctx context.Context, projectID uint) error {
	return s.deleteProject(ctx, projectID, func(*domain.Project) error { return nil })
}

func (s *Service) deleteProject(ctx context.Context, projectID uint, authorize func(*domain.Project) error) error {
	p, err := s.store.GetProject(ctx, projectID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NewNotFound("project not found")
	}
	if err != nil {
		return apperr.NewInternal("failed to load project", err)
	}
	if err := authorize(p); err != nil {
		return err
	}
	if err := s.store.DeleteProject(ctx, projectID); err != nil {
		return apperr.NewInternal("failed to delete project", err)
	}
	s.invalidateComments(ctx)

	logrus.WithField("project_id", projectID).Info("Project deleted")
	return nil
}
