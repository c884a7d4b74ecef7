// Package service holds the showcase's business rules: likes, comments, listings,
// moderation and account management. Handlers stay thin and call into it.
package service

import (
	"context"
	"errors"
	"time"

	"project_showcase/internal/apperr"
	"project_showcase/internal/domain"
	"project_showcase/internal/store"
	"project_showcase/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// maxWriteAttempts bounds the read-modify-write retries on a version conflict
const maxWriteAttempts = 3

// errNoChange tells mutateProject that the mutation left the aggregate untouched
var errNoChange = errors.New("no change")

// Options configures a Service
type Options struct {
	Cache          *utils.Cache     // Optional Redis cache
	RootAdminEmail string           // Account protected from deletion and demotion
	JWTSecret      string           // Secret used to sign session tokens
	JWTTTL         time.Duration    // Session token lifetime
	Clock          func() time.Time // Time source, defaults to time.Now in UTC
	NewID          func() string    // Comment id generator, defaults to uuid
}

// Service implements the showcase operations over a store
type Service struct {
	store          *store.Store
	cache          *utils.Cache
	rootAdminEmail string
	jwtSecret      string
	jwtTTL         time.Duration
	now            func() time.Time
	newID          func() string
}

// New creates a service over st
func New(st *store.Store, opts Options) *Service {
	s := &Service{
		store:          st,
		cache:          opts.Cache,
		rootAdminEmail: opts.RootAdminEmail,
		jwtSecret:      opts.JWTSecret,
		jwtTTL:         opts.JWTTTL,
		now:            opts.Clock,
		newID:          opts.NewID,
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.jwtTTL == 0 {
		s.jwtTTL = 24 * time.Hour
	}
	return s
}

// mutateProject loads the aggregate, applies fn and writes it back. On a version
// conflict the whole cycle is retried against a fresh copy.
func (s *Service) mutateProject(ctx context.Context, projectID uint, fn func(p *domain.Project) error) (*domain.Project, error) {
	for attempt := 1; ; attempt++ {
		p, err := s.store.GetProject(ctx, projectID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NewNotFound("project not found")
		}
		if err != nil {
			return nil, apperr.NewInternal("failed to load project", err)
		}

		if err := fn(p); err != nil {
			if errors.Is(err, errNoChange) {
				return p, nil
			}
			return nil, err
		}

		err = s.store.SaveProject(ctx, p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, store.ErrVersionConflict) {
			return nil, apperr.NewInternal("failed to save project", err)
		}
		if attempt == maxWriteAttempts {
			return nil, apperr.NewConflict("project was modified concurrently, please retry")
		}
		logrus.WithFields(logrus.Fields{
			"project_id": projectID,
			"attempt":    attempt,
		}).Debug("Project version conflict, retrying")
	}
}

// requireCaller fails with Unauthorized unless userID names an existing account.
// Tokens outlive deleted users, so writes on their behalf are refused here.
func (s *Service) requireCaller(ctx context.Context, userID uint) error {
	if userID == 0 {
		return apperr.NewUnauthorized("authentication required")
	}
	ok, err := s.store.UserExists(ctx, userID)
	if err != nil {
		return apperr.NewInternal("failed to load user", err)
	}
	if !ok {
		return apperr.NewUnauthorized("account no longer exists")
	}
	return nil
}

// authorSummaries resolves user ids to their display projection
func (s *Service) authorSummaries(ctx context.Context, ids []uint) (map[uint]domain.UserSummary, error) {
	users, err := s.store.UsersByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.NewInternal("failed to resolve users", err)
	}
	out := make(map[uint]domain.UserSummary, len(users))
	for id, u := range users {
		out[id] = u.Summary()
	}
	return out, nil
}
