package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"project_showcase/internal/db"
	"project_showcase/internal/domain"
	"project_showcase/internal/store"
	"project_showcase/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// stepClock advances one second on every reading so creation order is deterministic
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database, so keep exactly one
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func newTestService(t *testing.T) (*Service, *store.Store) {
	return newTestServiceWithCache(t, nil)
}

func newTestServiceWithCache(t *testing.T, cache *utils.Cache) (*Service, *store.Store) {
	t.Helper()
	st := store.New(openTestDB(t))
	svc := New(st, Options{
		Cache:          cache,
		RootAdminEmail: "admin@gmail.com",
		JWTSecret:      "test-secret",
		JWTTTL:         time.Hour,
		Clock:          (&stepClock{now: epoch}).Now,
	})
	return svc, st
}

func createUser(t *testing.T, st *store.Store, name, role string) *domain.User {
	t.Helper()
	u := &domain.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
		Image: "https://img.example.com/" + name + ".png",
	}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func createProject(t *testing.T, st *store.Store, creatorID uint, title string, createdAt time.Time, likes ...uint) *domain.Project {
	t.Helper()
	p := &domain.Project{
		Title:       title,
		Description: "description of " + title,
		Image:       "https://img.example.com/p.png",
		Link:        "https://example.com/" + title,
		CreatorID:   creatorID,
		Likes:       likes,
		CreatedAt:   createdAt,
	}
	require.NoError(t, st.CreateProject(context.Background(), p))
	return p
}

func loadProject(t *testing.T, st *store.Store, id uint) *domain.Project {
	t.Helper()
	p, err := st.GetProject(context.Background(), id)
	require.NoError(t, err)
	return p
}
