package service

import (
	"context"

	"project_showcase/internal/apperr"
	"project_showcase/internal/domain"

	"github.com/sirupsen/logrus"
)

// CascadeResult reports what deleting a user removed
type CascadeResult struct {
	DeletedProjects int64 `json:"deletedProjects"`
	LikesRemoved    int   `json:"likesRemoved"`
	CommentsRemoved int   `json:"commentsRemoved"`
}

// cascadeStep is one idempotent step of the user deletion sequence
type cascadeStep struct {
	name string
	run  func(ctx context.Context) error
}

// DeleteUser removes a user and everything that depends on them: their projects,
// their likes on other projects and their comments. Steps run in order and each is
// safe to repeat, so a failed deletion is resumed by calling DeleteUser again.
func (s *Service) DeleteUser(ctx context.Context, userID uint) (*CascadeResult, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.isRootAdmin(user) {
		return nil, apperr.NewForbidden("the root admin account cannot be deleted")
	}

	result := &CascadeResult{}
	steps := []cascadeStep{
		{"delete_projects", func(ctx context.Context) error {
			n, err := s.store.DeleteProjectsByCreator(ctx, userID)
			result.DeletedProjects = n
			return err
		}},
		{"strip_likes", func(ctx context.Context) error {
			ids, err := s.store.ProjectIDsLikedBy(ctx, userID)
			if err != nil {
				return err
			}
			result.LikesRemoved, err = s.forEachProject(ctx, ids, func(p *domain.Project) int {
				if p.RemoveLike(userID) {
					return 1
				}
				return 0
			})
			return err
		}},
		{"strip_comments", func(ctx context.Context) error {
			ids, err := s.store.ProjectIDsCommentedBy(ctx, userID)
			if err != nil {
				return err
			}
			result.CommentsRemoved, err = s.forEachProject(ctx, ids, func(p *domain.Project) int {
				return p.RemoveCommentsBy(userID)
			})
			return err
		}},
		{"delete_user", func(ctx context.Context) error {
			return s.store.DeleteUser(ctx, userID)
		}},
	}

	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"step":    step.name,
				"error":   err.Error(),
			}).Error("User deletion step failed")
			return nil, apperr.NewInternal("user deletion stopped at step "+step.name+", retry to resume", err)
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"step":    step.name,
		}).Info("User deletion step completed")
	}
	s.invalidateComments(ctx)

	logrus.WithFields(logrus.Fields{
		"user_id":          userID,
		"deleted_projects": result.DeletedProjects,
		"likes_removed":    result.LikesRemoved,
		"comments_removed": result.CommentsRemoved,
	}).Info("User deleted")
	return result, nil
}

// forEachProject applies fn to each project and sums the changes it reports.
// Projects that vanished meanwhile are skipped; untouched projects are not written.
func (s *Service) forEachProject(ctx context.Context, ids []uint, fn func(p *domain.Project) int) (int, error) {
	total := 0
	for _, id := range ids {
		var n int
		_, err := s.mutateProject(ctx, id, func(p *domain.Project) error {
			if n = fn(p); n == 0 {
				return errNoChange
			}
			return nil
		})
		switch {
		case err == nil:
			total += n
		case apperr.Is(err, apperr.NotFound):
		default:
			return total, err
		}
	}
	return total, nil
}
