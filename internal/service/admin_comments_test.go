package service

import (
	"context"
	"testing"
	"time"

	"project_showcase/internal/domain"
	"project_showcase/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentTexts(items []AdminComment) []string {
	out := make([]string, 0, len(items))
	for _, c := range items {
		out = append(out, c.Text)
	}
	return out
}

func TestListAllComments(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	owner := createUser(t, st, "owner", domain.RoleUser)
	ann := createUser(t, st, "ann", domain.RoleUser)
	ben := createUser(t, st, "ben", domain.RoleUser)
	p1 := createProject(t, st, owner.ID, "first", epoch)
	p2 := createProject(t, st, owner.ID, "second", epoch.Add(time.Hour))

	// Each AddComment reads the step clock, so later calls are newer
	for _, c := range []struct {
		project uint
		author  uint
		text    string
	}{
		{p1.ID, ann.ID, "Great idea"},
		{p2.ID, ben.ID, "needs tests"},
		{p1.ID, ben.ID, "GREAT execution"},
		{p2.ID, ann.ID, "love it"},
	} {
		_, err := svc.AddComment(ctx, c.project, c.author, c.text)
		require.NoError(t, err)
	}

	t.Run("all newest first", func(t *testing.T) {
		page, err := svc.ListAllComments(ctx, CommentQuery{Page: NewPage(1, 10)})
		require.NoError(t, err)
		assert.Equal(t, []string{"love it", "GREAT execution", "needs tests", "Great idea"}, commentTexts(page.Comments))
		assert.Equal(t, int64(4), page.Pagination.Total)

		top := page.Comments[0]
		assert.Equal(t, p2.ID, top.ProjectID)
		assert.Equal(t, "second", top.ProjectTitle)
		assert.Equal(t, ann.Summary(), top.Author)
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		page, err := svc.ListAllComments(ctx, CommentQuery{Page: NewPage(1, 10), Search: "great"})
		require.NoError(t, err)
		assert.Equal(t, []string{"GREAT execution", "Great idea"}, commentTexts(page.Comments))
	})

	t.Run("filter by project", func(t *testing.T) {
		page, err := svc.ListAllComments(ctx, CommentQuery{Page: NewPage(1, 10), ProjectID: p1.ID})
		require.NoError(t, err)
		assert.Equal(t, []string{"GREAT execution", "Great idea"}, commentTexts(page.Comments))
	})

	t.Run("filter by user", func(t *testing.T) {
		page, err := svc.ListAllComments(ctx, CommentQuery{Page: NewPage(1, 10), UserID: ben.ID})
		require.NoError(t, err)
		assert.Equal(t, []string{"GREAT execution", "needs tests"}, commentTexts(page.Comments))
	})

	t.Run("paged after filtering", func(t *testing.T) {
		page, err := svc.ListAllComments(ctx, CommentQuery{Page: NewPage(2, 3)})
		require.NoError(t, err)
		assert.Equal(t, []string{"Great idea"}, commentTexts(page.Comments))
		assert.Equal(t, 2, page.Pagination.TotalPages)
		assert.True(t, page.Pagination.HasPrevPage)
	})
}

func TestListAllCommentsCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	svc, st := newTestServiceWithCache(t, utils.NewCache(rdb, time.Minute))
	ctx := context.Background()
	owner := createUser(t, st, "owner", domain.RoleUser)
	p := createProject(t, st, owner.ID, "p", epoch)

	_, err := svc.AddComment(ctx, p.ID, owner.ID, "cached")
	require.NoError(t, err)

	q := CommentQuery{Page: NewPage(1, 10)}
	page, err := svc.ListAllComments(ctx, q)
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)
	assert.True(t, mr.Exists(q.cacheKey()))

	// A write that bypasses the service leaves the cached page in place
	stale := loadProject(t, st, p.ID)
	stale.Comments = append(stale.Comments, domain.Comment{ID: "direct", Text: "behind the cache", AuthorID: owner.ID, CreatedAt: epoch.Add(time.Hour)})
	require.NoError(t, st.SaveProject(ctx, stale))

	page, err = svc.ListAllComments(ctx, q)
	require.NoError(t, err)
	assert.Len(t, page.Comments, 1)

	// A service write invalidates it
	_, err = svc.AddComment(ctx, p.ID, owner.ID, "fresh")
	require.NoError(t, err)
	assert.False(t, mr.Exists(q.cacheKey()))

	page, err = svc.ListAllComments(ctx, q)
	require.NoError(t, err)
	assert.Len(t, page.Comments, 3)
}

func TestListAllCommentsCacheFollowsProjectAndProfileEdits(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	svc, st := newTestServiceWithCache(t, utils.NewCache(rdb, time.Minute))
	ctx := context.Background()
	owner := createUser(t, st, "owner", domain.RoleUser)
	p := createProject(t, st, owner.ID, "old", epoch)
	_, err := svc.AddComment(ctx, p.ID, owner.ID, "hello")
	require.NoError(t, err)

	q := CommentQuery{Page: NewPage(1, 10)}
	page, err := svc.ListAllComments(ctx, q)
	require.NoError(t, err)
	require.Equal(t, "old", page.Comments[0].ProjectTitle)

	_, err = svc.UpdateProject(ctx, p.ID, owner.ID, ProjectInput{Title: ptr("new")})
	require.NoError(t, err)

	page, err = svc.ListAllComments(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "new", page.Comments[0].ProjectTitle)

	_, err = svc.UpdateProfile(ctx, owner.ID, ProfileInput{Name: ptr("renamed")})
	require.NoError(t, err)

	page, err = svc.ListAllComments(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "renamed", page.Comments[0].Author.Name)
}

func TestCommentQueryCacheKeysDoNotCollide(t *testing.T) {
	crafted := CommentQuery{Page: NewPage(1, 10), Search: "x:project=7:user=0"}
	filtered := CommentQuery{Page: NewPage(1, 10), Search: "x", ProjectID: 7}
	assert.NotEqual(t, crafted.cacheKey(), filtered.cacheKey())

	crafted = CommentQuery{Page: NewPage(1, 10), Search: `a" user=1`}
	filtered = CommentQuery{Page: NewPage(1, 10), Search: "a", UserID: 1}
	assert.NotEqual(t, crafted.cacheKey(), filtered.cacheKey())
}
