package service

import (
	"context"
	"strings"

	"project_showcase/internal/apperr"
	"project_showcase/internal/domain"
	"project_showcase/internal/store"
)

// quickSearchLimit caps the navbar search endpoints
const quickSearchLimit = 5

// ProjectFilter narrows a project listing
type ProjectFilter struct {
	CreatorID uint   // Only this creator's projects, 0 for all
	Search    string // Free text matched on title, description or creator name
	Sort      string // "date" (default) or "likes"
}

func parseSort(sort string) (store.ProjectSort, error) {
	switch store.ProjectSort(strings.ToLower(sort)) {
	case "", store.SortByDate:
		return store.SortByDate, nil
	case store.SortByLikes:
		return store.SortByLikes, nil
	default:
		return "", apperr.NewValidation("sort", "sort must be date or likes")
	}
}

// ListProjects returns one page of projects. viewerID, when non-zero, drives userLiked.
func (s *Service) ListProjects(ctx context.Context, filter ProjectFilter, page Page, viewerID uint) (*ProjectPage, error) {
	sort, err := parseSort(filter.Sort)
	if err != nil {
		return nil, err
	}

	q := store.ProjectQuery{
		CreatorID: filter.CreatorID,
		Search:    strings.TrimSpace(filter.Search),
		Sort:      sort,
		Offset:    page.Offset(),
		Limit:     page.Limit,
	}
	if q.Search != "" {
		// Creator-name matches are resolved first and unioned with the text match
		ids, err := s.store.UserIDsByName(ctx, q.Search)
		if err != nil {
			return nil, apperr.NewInternal("failed to search users", err)
		}
		q.CreatorIDs = ids
	}

	projects, total, err := s.store.ListProjects(ctx, q)
	if err != nil {
		return nil, apperr.NewInternal("failed to list projects", err)
	}

	items := make([]ProjectView, 0, len(projects))
	for i := range projects {
		items = append(items, projectView(&projects[i], viewerID))
	}
	return &ProjectPage{Items: items, Pagination: page.Paginate(total)}, nil
}

// ListUserProjects lists the projects of one creator, failing if the user does not exist
func (s *Service) ListUserProjects(ctx context.Context, userID uint, page Page, viewerID uint) (*ProjectPage, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.ListProjects(ctx, ProjectFilter{CreatorID: userID}, page, viewerID)
}

// SearchProjects is the quick search: a handful of projects matching q on title or description
func (s *Service) SearchProjects(ctx context.Context, q string) ([]ProjectView, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []ProjectView{}, nil
	}
	projects, err := s.store.SearchProjects(ctx, q, quickSearchLimit)
	if err != nil {
		return nil, apperr.NewInternal("failed to search projects", err)
	}
	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, projectView(&projects[i], 0))
	}
	return views, nil
}

// SearchUsers is the quick search over user names
func (s *Service) SearchUsers(ctx context.Context, q string) ([]domain.UserSummary, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []domain.UserSummary{}, nil
	}
	users, err := s.store.SearchUsers(ctx, q, quickSearchLimit)
	if err != nil {
		return nil, apperr.NewInternal("failed to search users", err)
	}
	out := make([]domain.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}
	return out, nil
}
