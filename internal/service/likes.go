package service

import (
	"context"

	"project_showcase/internal/domain"

	"github.com/sirupsen/logrus"
)

// ToggleLike adds userID to the project's likes, or removes it if already there,
// and returns the state after the write.
func (s *Service) ToggleLike(ctx context.Context, projectID, userID uint) (*LikeResult, error) {
	if err := s.requireCaller(ctx, userID); err != nil {
		return nil, err
	}

	var liked bool
	p, err := s.mutateProject(ctx, projectID, func(p *domain.Project) error {
		liked = p.ToggleLike(userID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"project_id":  projectID,
		"user_id":     userID,
		"liked":       liked,
		"likes_count": p.LikesCount,
	}).Info("Like toggled")
	return &LikeResult{Liked: liked, LikesCount: p.LikesCount}, nil
}
