package store

import (
	"context"

	"project_showcase/internal/domain"
)

// ProjectIDForComment resolves the project that embeds commentID
func (s *Store) ProjectIDForComment(ctx context.Context, commentID string) (uint, error) {
	var ref domain.CommentRef
	if err := s.db.WithContext(ctx).Where("comment_id = ?", commentID).First(&ref).Error; err != nil {
		return 0, translate(err)
	}
	return ref.ProjectID, nil
}

// ProjectIDsCommentedBy returns the projects holding at least one comment by authorID
func (s *Store) ProjectIDsCommentedBy(ctx context.Context, authorID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&domain.CommentRef{}).
		Where("author_id = ?", authorID).
		Distinct().
		Pluck("project_id", &ids).Error
	return ids, err
}
