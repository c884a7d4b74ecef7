package store

import (
	"context"
	"testing"
	"time"

	"project_showcase/internal/db"
	"project_showcase/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))
	return New(gdb)
}

func seedUser(t *testing.T, s *Store, name string) *domain.User {
	t.Helper()
	u := &domain.User{Name: name, Email: name + "@example.com", Role: domain.RoleUser}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func seedProject(t *testing.T, s *Store, creatorID uint, title string, createdAt time.Time) *domain.Project {
	t.Helper()
	p := &domain.Project{
		Title:       title,
		Description: "about " + title,
		Image:       "img",
		Link:        "link",
		CreatorID:   creatorID,
		CreatedAt:   createdAt,
	}
	require.NoError(t, s.CreateProject(context.Background(), p))
	return p
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "grace")

	got, err := s.GetUserByEmail(ctx, "grace@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, domain.RoleUser, got.Role)

	err = s.CreateUser(ctx, &domain.User{Name: "copy", Email: "grace@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = s.GetUser(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.UpdateUser(ctx, u.ID, map[string]any{"bio": "pioneer"}))
	got, err = s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "pioneer", got.Bio)

	assert.ErrorIs(t, s.UpdateUser(ctx, 404, map[string]any{"bio": "x"}), ErrNotFound)

	byID, err := s.UsersByIDs(ctx, []uint{u.ID, u.ID, 404})
	require.NoError(t, err)
	assert.Len(t, byID, 1)

	require.NoError(t, s.DeleteUser(ctx, u.ID))
	require.NoError(t, s.DeleteUser(ctx, u.ID))
}

func TestSaveProjectDetectsConcurrentWrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "owner")
	p := seedProject(t, s, u.ID, "race", epoch)

	first, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	second, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)

	first.ToggleLike(7)
	require.NoError(t, s.SaveProject(ctx, first))
	assert.Equal(t, uint(1), first.Version)

	second.ToggleLike(8)
	assert.ErrorIs(t, s.SaveProject(ctx, second), ErrVersionConflict)
	assert.Equal(t, uint(0), second.Version)

	stored, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{7}, []uint(stored.Likes))
	assert.Equal(t, 1, stored.LikesCount)
	assert.Equal(t, "owner", stored.Creator.Name)
}

func TestCommentRefsFollowProjectWrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "owner")
	p := seedProject(t, s, u.ID, "p", epoch)

	p.Comments = append(p.Comments,
		domain.Comment{ID: "c1", AuthorID: u.ID, Text: "a", CreatedAt: epoch},
		domain.Comment{ID: "c2", AuthorID: 99, Text: "b", CreatedAt: epoch},
	)
	require.NoError(t, s.SaveProject(ctx, p))

	projectID, err := s.ProjectIDForComment(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, p.ID, projectID)

	ids, err := s.ProjectIDsCommentedBy(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, []uint{p.ID}, ids)

	p.RemoveComment("c2")
	require.NoError(t, s.SaveProject(ctx, p))
	_, err = s.ProjectIDForComment(ctx, "c2")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteProject(ctx, p.ID))
	_, err = s.ProjectIDForComment(ctx, "c1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProjectsOrderAndCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "owner")
	a := seedProject(t, s, u.ID, "a", epoch)
	b := seedProject(t, s, u.ID, "b", epoch.Add(time.Hour))
	seedProject(t, s, u.ID, "c", epoch.Add(2*time.Hour))

	a.Likes = append(a.Likes, 1, 2)
	require.NoError(t, s.SaveProject(ctx, a))
	b.Likes = append(b.Likes, 1, 2)
	require.NoError(t, s.SaveProject(ctx, b))

	projects, total, err := s.ListProjects(ctx, ProjectQuery{Sort: SortByLikes, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, projects, 2)
	assert.Equal(t, "b", projects[0].Title)
	assert.Equal(t, "a", projects[1].Title)

	projects, _, err = s.ListProjects(ctx, ProjectQuery{Sort: SortByDate, Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "a", projects[0].Title)

	liked, err := s.ProjectIDsLikedBy(ctx, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, liked)
}

func TestDeleteProjectsByCreator(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "owner")
	other := seedUser(t, s, "other")
	seedProject(t, s, u.ID, "x", epoch)
	seedProject(t, s, u.ID, "y", epoch)
	keep := seedProject(t, s, other.ID, "z", epoch)

	n, err := s.DeleteProjectsByCreator(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.DeleteProjectsByCreator(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.GetProject(ctx, keep.ID)
	assert.NoError(t, err)
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "owner")
	seedProject(t, s, u.ID, "plain", epoch)
	seedProject(t, s, u.ID, "100% done", epoch.Add(time.Hour))
	seedProject(t, s, u.ID, "snake_case!", epoch.Add(2*time.Hour))

	search := func(q string) []string {
		projects, _, err := s.ListProjects(ctx, ProjectQuery{Search: q, Limit: 10})
		require.NoError(t, err)
		var titles []string
		for _, p := range projects {
			titles = append(titles, p.Title)
		}
		return titles
	}

	assert.Equal(t, []string{"100% done"}, search("%"))
	assert.Equal(t, []string{"snake_case!"}, search("_"))
	assert.Equal(t, []string{"snake_case!"}, search("case!"))
	assert.Len(t, search("about"), 3)

	users, err := s.SearchUsers(ctx, "%", 5)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserExists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "here")

	ok, err := s.UserExists(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.DeleteUser(ctx, u.ID))
	ok, err = s.UserExists(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
