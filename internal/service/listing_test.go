package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"project_showcase/internal/apperr"
	"project_showcase/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(items []ProjectView) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Title)
	}
	return out
}

func TestListProjectsSortByLikes(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	owner := createUser(t, st, "owner", domain.RoleUser)
	a := createUser(t, st, "a", domain.RoleUser)
	b := createUser(t, st, "b", domain.RoleUser)

	createProject(t, st, owner.ID, "old-two", epoch.Add(1*time.Hour), a.ID, b.ID)
	createProject(t, st, owner.ID, "new-two", epoch.Add(2*time.Hour), a.ID, b.ID)
	createProject(t, st, owner.ID, "zero", epoch.Add(3*time.Hour))
	createProject(t, st, owner.ID, "one", epoch.Add(4*time.Hour), a.ID)

	page, err := svc.ListProjects(ctx, ProjectFilter{Sort: "likes"}, NewPage(1, 10), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"new-two", "old-two", "one", "zero"}, titles(page.Items))

	page, err = svc.ListProjects(ctx, ProjectFilter{}, NewPage(1, 10), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "zero", "new-two", "old-two"}, titles(page.Items))

	_, err = svc.ListProjects(ctx, ProjectFilter{Sort: "popularity"}, NewPage(1, 10), 0)
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestListProjectsPagination(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	owner := createUser(t, st, "owner", domain.RoleUser)
	// p01 is the newest, p25 the oldest
	for i := 1; i <= 25; i++ {
		createProject(t, st, owner.ID, fmt.Sprintf("p%02d", i), epoch.Add(time.Duration(100-i)*time.Minute))
	}

	second, err := svc.ListProjects(ctx, ProjectFilter{}, NewPage(2, 10), 0)
	require.NoError(t, err)
	require.Len(t, second.Items, 10)
	assert.Equal(t, "p11", second.Items[0].Title)
	assert.Equal(t, "p20", second.Items[9].Title)
	assert.Equal(t, Pagination{
		Total:       25,
		Page:        2,
		Limit:       10,
		TotalPages:  3,
		HasNextPage: true,
		HasPrevPage: true,
	}, second.Pagination)

	third, err := svc.ListProjects(ctx, ProjectFilter{}, NewPage(3, 10), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"p21", "p22", "p23", "p24", "p25"}, titles(third.Items))
	assert.False(t, third.Pagination.HasNextPage)

	beyond, err := svc.ListProjects(ctx, ProjectFilter{}, NewPage(9, 10), 0)
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, int64(25), beyond.Pagination.Total)
}

func TestListProjectsSearchUnion(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, st, "alice", domain.RoleUser)
	bob := createUser(t, st, "bob", domain.RoleUser)

	createProject(t, st, bob.ID, "Alice in Wonderland", epoch.Add(1*time.Hour))
	createProject(t, st, alice.ID, "Compiler", epoch.Add(2*time.Hour))
	createProject(t, st, alice.ID, "Alice's blog", epoch.Add(3*time.Hour))
	createProject(t, st, bob.ID, "Ray tracer", epoch.Add(4*time.Hour))

	page, err := svc.ListProjects(ctx, ProjectFilter{Search: "ALICE"}, NewPage(1, 10), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice's blog", "Compiler", "Alice in Wonderland"}, titles(page.Items))
	assert.Equal(t, int64(3), page.Pagination.Total)

	page, err = svc.ListProjects(ctx, ProjectFilter{Search: "tracer"}, NewPage(1, 10), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ray tracer"}, titles(page.Items))
	assert.Equal(t, "bob", page.Items[0].Creator.Name)

	page, err = svc.ListProjects(ctx, ProjectFilter{Search: "nothing matches"}, NewPage(1, 10), 0)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Pagination.TotalPages)
}

func TestListProjectsUserLiked(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	owner := createUser(t, st, "owner", domain.RoleUser)
	fan := createUser(t, st, "fan", domain.RoleUser)
	createProject(t, st, owner.ID, "liked", epoch.Add(2*time.Hour), fan.ID)
	createProject(t, st, owner.ID, "ignored", epoch.Add(time.Hour))

	page, err := svc.ListProjects(ctx, ProjectFilter{}, NewPage(1, 10), fan.ID)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.Items[0].UserLiked)
	assert.Equal(t, 1, page.Items[0].LikesCount)
	assert.False(t, page.Items[1].UserLiked)

	anonymous, err := svc.ListProjects(ctx, ProjectFilter{}, NewPage(1, 10), 0)
	require.NoError(t, err)
	assert.False(t, anonymous.Items[0].UserLiked)
}

func TestListUserProjects(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, st, "alice", domain.RoleUser)
	bob := createUser(t, st, "bob", domain.RoleUser)
	createProject(t, st, alice.ID, "a1", epoch.Add(time.Hour))
	createProject(t, st, bob.ID, "b1", epoch.Add(2*time.Hour))
	createProject(t, st, alice.ID, "a2", epoch.Add(3*time.Hour))

	page, err := svc.ListUserProjects(ctx, alice.ID, NewPage(1, 10), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a2", "a1"}, titles(page.Items))

	_, err = svc.ListUserProjects(ctx, 999, NewPage(1, 10), 0)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestQuickSearch(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	owner := createUser(t, st, "owner", domain.RoleUser)
	createUser(t, st, "gopher", domain.RoleUser)
	for i := 0; i < 7; i++ {
		createProject(t, st, owner.ID, fmt.Sprintf("go tool %d", i), epoch.Add(time.Duration(i)*time.Minute))
	}

	projects, err := svc.SearchProjects(ctx, "GO TOOL")
	require.NoError(t, err)
	assert.Len(t, projects, quickSearchLimit)
	assert.Equal(t, "go tool 6", projects[0].Title)

	users, err := svc.SearchUsers(ctx, "goph")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "gopher", users[0].Name)

	empty, err := svc.SearchProjects(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNewPage(t *testing.T) {
	assert.Equal(t, Page{Number: 1, Limit: DefaultPageSize}, NewPage(0, 0))
	assert.Equal(t, Page{Number: 3, Limit: MaxPageSize}, NewPage(3, 1000))
	assert.Equal(t, 20, NewPage(3, 10).Offset())

	start, end := NewPage(3, 10).window(25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)
	start, end = NewPage(4, 10).window(25)
	assert.Equal(t, start, end)
}
