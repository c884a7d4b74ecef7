package service

import (
	"context"
	"sync"
	"testing"

	"project_showcase/internal/apperr"
	"project_showcase/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLike(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	owner := createUser(t, st, "owner", domain.RoleUser)
	u1 := createUser(t, st, "u1", domain.RoleUser)
	u2 := createUser(t, st, "u2", domain.RoleUser)
	p := createProject(t, st, owner.ID, "p", epoch, u1.ID, u2.ID)

	res, err := svc.ToggleLike(ctx, p.ID, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, LikeResult{Liked: false, LikesCount: 1}, *res)

	res, err = svc.ToggleLike(ctx, p.ID, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, LikeResult{Liked: true, LikesCount: 2}, *res)

	stored := loadProject(t, st, p.ID)
	assert.ElementsMatch(t, []uint{u1.ID, u2.ID}, []uint(stored.Likes))
	assert.Equal(t, 2, stored.LikesCount)
}

func TestToggleLikeTwiceRestoresMembership(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	owner := createUser(t, st, "owner", domain.RoleUser)
	fan := createUser(t, st, "fan", domain.RoleUser)
	p := createProject(t, st, owner.ID, "p", epoch)

	first, err := svc.ToggleLike(ctx, p.ID, fan.ID)
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, 1, first.LikesCount)

	second, err := svc.ToggleLike(ctx, p.ID, fan.ID)
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, 0, second.LikesCount)
	assert.Empty(t, loadProject(t, st, p.ID).Likes)
}

func TestToggleLikeErrors(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	owner := createUser(t, st, "owner", domain.RoleUser)
	p := createProject(t, st, owner.ID, "p", epoch)

	_, err := svc.ToggleLike(ctx, p.ID, 0)
	assert.True(t, apperr.Is(err, apperr.Unauthorized))

	_, err = svc.ToggleLike(ctx, 9999, owner.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestToggleLikeConcurrentWritersNeverLoseUpdates(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	owner := createUser(t, st, "owner", domain.RoleUser)
	p := createProject(t, st, owner.ID, "p", epoch)

	const fans = 8
	users := make([]*domain.User, fans)
	for i := range users {
		users[i] = createUser(t, st, "fan"+string(rune('a'+i)), domain.RoleUser)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for _, u := range users {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			_, err := svc.ToggleLike(ctx, p.ID, userID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			assert.True(t, apperr.Is(err, apperr.Conflict), "unexpected error: %v", err)
		}(u.ID)
	}
	wg.Wait()

	stored := loadProject(t, st, p.ID)
	assert.Equal(t, successes, stored.LikesCount)
	assert.Len(t, stored.Likes, successes)
}
