package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"project_showcase/internal/apperr"
	"project_showcase/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
)

// commentsCachePrefix namespaces cached admin comment pages
const commentsCachePrefix = "admin:comments:"

// CommentQuery filters the admin comment listing
type CommentQuery struct {
	Page      Page
	Search    string // Case-insensitive match on comment text
	ProjectID uint   // Only comments on this project, 0 for all
	UserID    uint   // Only comments by this author, 0 for all
}

func (q CommentQuery) cacheKey() string {
	// Search is free text, so it goes last and quoted
	return fmt.Sprintf("%spage=%d:limit=%d:project=%d:user=%d:search=%q",
		commentsCachePrefix, q.Page.Number, q.Page.Limit, q.ProjectID, q.UserID, q.Search)
}

// ListAllComments flattens the comments of every matching project, filters and sorts
// them newest first, and pages the result in memory.
func (s *Service) ListAllComments(ctx context.Context, q CommentQuery) (*CommentPage, error) {
	q.Search = strings.TrimSpace(q.Search)
	key := q.cacheKey()

	var cached CommentPage
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	} else if err != nil {
		logrus.WithError(err).Warn("Admin comment cache read failed")
	}

	projects, err := s.store.ProjectsWithComments(ctx, q.ProjectID)
	if err != nil {
		return nil, apperr.NewInternal("failed to load comments", err)
	}

	fold := cases.Fold()
	needle := fold.String(q.Search)

	var all []AdminComment
	for _, p := range projects {
		for _, c := range p.Comments {
			if q.UserID != 0 && c.AuthorID != q.UserID {
				continue
			}
			if needle != "" && !strings.Contains(fold.String(c.Text), needle) {
				continue
			}
			all = append(all, AdminComment{
				CommentView: CommentView{
					ID:        c.ID,
					Text:      c.Text,
					Author:    domain.UserSummary{ID: c.AuthorID},
					CreatedAt: c.CreatedAt,
					UpdatedAt: c.UpdatedAt,
				},
				ProjectID:    p.ID,
				ProjectTitle: p.Title,
			})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	start, end := q.Page.window(len(all))
	pageItems := append([]AdminComment{}, all[start:end]...)

	ids := make([]uint, 0, len(pageItems))
	for _, c := range pageItems {
		ids = append(ids, c.Author.ID)
	}
	authors, err := s.authorSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range pageItems {
		if a, ok := authors[pageItems[i].Author.ID]; ok {
			pageItems[i].Author = a
		}
	}

	result := &CommentPage{Comments: pageItems, Pagination: q.Page.Paginate(int64(len(all)))}
	if err := s.cache.Set(ctx, key, result); err != nil {
		logrus.WithError(err).Warn("Admin comment cache write failed")
	}
	return result, nil
}

// invalidateComments drops cached admin comment pages after a comment write
func (s *Service) invalidateComments(ctx context.Context) {
	if err := s.cache.InvalidatePrefix(ctx, commentsCachePrefix); err != nil {
		logrus.WithError(err).Warn("Admin comment cache invalidation failed")
	}
}
