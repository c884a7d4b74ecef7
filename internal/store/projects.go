package store

import (
	"context"
	"time"

	"project_showcase/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectSort selects the listing order
type ProjectSort string

const (
	SortByDate  ProjectSort = "date"  // createdAt descending
	SortByLikes ProjectSort = "likes" // likes count descending, then createdAt descending
)

// ProjectQuery filters, orders and pages a project listing
type ProjectQuery struct {
	CreatorID  uint        // Only projects created by this user, 0 for all
	Search     string      // Case-insensitive match on title or description
	CreatorIDs []uint      // Creators whose name matched Search; unioned with the text match
	Sort       ProjectSort // Listing order
	Offset     int         // Rows to skip
	Limit      int         // Page size
}

func normalize(p *domain.Project) {
	if p.Likes == nil {
		p.Likes = datatypes.JSONSlice[uint]{}
	}
	if p.Comments == nil {
		p.Comments = datatypes.JSONSlice[domain.Comment]{}
	}
	p.LikesCount = len(p.Likes)
}

// CreateProject inserts a new project aggregate
func (s *Store) CreateProject(ctx context.Context, p *domain.Project) error {
	normalize(p)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		return syncCommentRefs(tx, p)
	})
}

// GetProject fetches a project aggregate with its creator
func (s *Store) GetProject(ctx context.Context, id uint) (*domain.Project, error) {
	var p domain.Project
	if err := s.db.WithContext(ctx).Preload("Creator").First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	normalize(&p)
	return &p, nil
}

// SaveProject writes the aggregate back if nobody changed it since it was read.
// It returns ErrVersionConflict when the stored version moved on.
func (s *Store) SaveProject(ctx context.Context, p *domain.Project) error {
	normalize(p)
	now := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Project{}).
			Where("id = ? AND version = ?", p.ID, p.Version).
			Updates(map[string]any{
				"title":       p.Title,
				"description": p.Description,
				"image":       p.Image,
				"link":        p.Link,
				"likes":       p.Likes,
				"likes_count": p.LikesCount,
				"comments":    p.Comments,
				"version":     p.Version + 1,
				"updated_at":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}
		return syncCommentRefs(tx, p)
	})
	if err != nil {
		return err
	}
	p.Version++
	p.UpdatedAt = now
	return nil
}

// syncCommentRefs rewrites the comment index rows of p inside tx
func syncCommentRefs(tx *gorm.DB, p *domain.Project) error {
	if err := tx.Where("project_id = ?", p.ID).Delete(&domain.CommentRef{}).Error; err != nil {
		return err
	}
	refs := p.CommentRefs()
	if len(refs) == 0 {
		return nil
	}
	return tx.Create(&refs).Error
}

// DeleteProject removes a project and its comment index rows
func (s *Store) DeleteProject(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&domain.CommentRef{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Project{}, id).Error
	})
}

// DeleteProjectsByCreator removes every project created by creatorID and returns how many went
func (s *Store) DeleteProjectsByCreator(ctx context.Context, creatorID uint) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&domain.Project{}).Where("creator_id = ?", creatorID).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("project_id IN ?", ids).Delete(&domain.CommentRef{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&domain.Project{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}

// ListProjects returns one page of projects and the total number matching q
func (s *Store) ListProjects(ctx context.Context, q ProjectQuery) ([]domain.Project, int64, error) {
	query := s.db.WithContext(ctx).Model(&domain.Project{})
	if q.CreatorID != 0 {
		query = query.Where("creator_id = ?", q.CreatorID)
	}
	if q.Search != "" {
		pattern := likePattern(q.Search)
		// A single OR keeps a project matched by text and by creator name from appearing twice
		if len(q.CreatorIDs) > 0 {
			query = query.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!' OR creator_id IN ?)", pattern, pattern, q.CreatorIDs)
		} else {
			query = query.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", pattern, pattern)
		}
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if q.Sort == SortByLikes {
		query = query.Order("likes_count DESC")
	}
	var projects []domain.Project
	err := query.Order("created_at DESC").Order("id DESC").
		Offset(q.Offset).
		Limit(q.Limit).
		Preload("Creator").
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range projects {
		normalize(&projects[i])
	}
	return projects, total, nil
}

// SearchProjects returns at most limit projects whose title or description contains q
func (s *Store) SearchProjects(ctx context.Context, q string, limit int) ([]domain.Project, error) {
	pattern := likePattern(q)
	var projects []domain.Project
	err := s.db.WithContext(ctx).
		Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Preload("Creator").
		Find(&projects).Error
	return projects, err
}

// ProjectsWithComments loads every project (or just projectID when non-zero), newest first.
// The admin comment listing flattens them in memory.
func (s *Store) ProjectsWithComments(ctx context.Context, projectID uint) ([]domain.Project, error) {
	query := s.db.WithContext(ctx).Select("id", "title", "comments", "created_at")
	if projectID != 0 {
		query = query.Where("id = ?", projectID)
	}
	var projects []domain.Project
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ProjectIDsLikedBy scans likes lists in batches and returns the projects userID liked
func (s *Store) ProjectIDsLikedBy(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	var batch []domain.Project
	err := s.db.WithContext(ctx).
		Select("id", "likes").
		Where("likes_count > 0").
		FindInBatches(&batch, 200, func(tx *gorm.DB, _ int) error {
			for i := range batch {
				if batch[i].LikedBy(userID) {
					ids = append(ids, batch[i].ID)
				}
			}
			return nil
		}).Error
	return ids, err
}
