package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"project_showcase/internal/apperr"
	"project_showcase/internal/domain"
	"project_showcase/internal/store"
	"project_showcase/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// minPasswordLength is the shortest password accepted at registration
const minPasswordLength = 6

// RegisterInput carries a credentials registration
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// ProfileInput carries profile edits. Nil fields are left unchanged.
type ProfileInput struct {
	Name   *string
	Bio    *string
	Phone  *string
	Github *string
	Image  *string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a credentials account with the user role
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	switch {
	case name == "":
		return nil, apperr.NewValidation("name", "name is required")
	case email == "":
		return nil, apperr.NewValidation("email", "email is required")
	case utf8.RuneCountInString(in.Password) < minPasswordLength:
		return nil, apperr.NewValidation("password", "password must be at least 6 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.NewValidation("email", "email is not valid")
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, apperr.NewConflict("email is already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NewInternal("failed to check email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.NewInternal("failed to hash password", err)
	}
	hashed := string(hash)
	user := &domain.User{
		Name:      name,
		Email:     email,
		Password:  &hashed,
		Role:      domain.RoleUser,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.NewConflict("email is already registered")
		}
		return nil, apperr.NewInternal("failed to create user", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")
	return user, nil
}

// Login checks credentials and issues a session token
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.store.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, apperr.NewUnauthorized("invalid credentials")
	}
	if err != nil {
		return "", nil, apperr.NewInternal("failed to load user", err)
	}
	// Externally authenticated accounts have no password to compare against
	if user.Password == nil {
		return "", nil, apperr.NewUnauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)); err != nil {
		return "", nil, apperr.NewUnauthorized("invalid credentials")
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, apperr.NewInternal("failed to generate token", err)
	}
	return token, user, nil
}

// GetUser returns a user by id
func (s *Service) GetUser(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NewNotFound("user not found")
	}
	if err != nil {
		return nil, apperr.NewInternal("failed to load user", err)
	}
	return user, nil
}

// UpdateProfile edits the caller's own profile
func (s *Service) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*domain.User, error) {
	if userID == 0 {
		return nil, apperr.NewUnauthorized("authentication required")
	}
	changes := map[string]any{}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		if utf8.RuneCountInString(*in.Name) > 100 {
			return nil, apperr.NewValidation("name", "name cannot be longer than 100 characters")
		}
		changes["name"] = strings.TrimSpace(*in.Name)
	}
	limits := []struct {
		field string
		value *string
		max   int
	}{
		{"bio", in.Bio, 500},
		{"phone", in.Phone, 20},
		{"github", in.Github, 100},
	}
	for _, l := range limits {
		if l.value == nil {
			continue
		}
		if utf8.RuneCountInString(*l.value) > l.max {
			return nil, apperr.NewValidation(l.field, l.field+" is too long")
		}
		changes[l.field] = *l.value
	}
	if in.Image != nil && strings.TrimSpace(*in.Image) != "" {
		changes["image"] = *in.Image
	}

	if len(changes) > 0 {
		if err := s.store.UpdateUser(ctx, userID, changes); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperr.NewNotFound("user not found")
			}
			return nil, apperr.NewInternal("failed to update profile", err)
		}
		s.invalidateComments(ctx) // Cached comment pages carry author names and images
	}
	return s.GetUser(ctx, userID)
}

// RequireAdmin re-reads the caller's record and fails unless its stored role is admin.
// Role claims carried by the session are never consulted.
func (s *Service) RequireAdmin(ctx context.Context, userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, apperr.NewUnauthorized("authentication required")
	}
	user, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NewForbidden("admin access required")
	}
	if err != nil {
		return nil, apperr.NewInternal("failed to load user", err)
	}
	if !user.IsAdmin() {
		return nil, apperr.NewForbidden("admin access required")
	}
	return user, nil
}

// ListUsers pages through users for the admin screen
func (s *Service) ListUsers(ctx context.Context, page Page, search string) (*UserPage, error) {
	users, total, err := s.store.ListUsers(ctx, strings.TrimSpace(search), page.Offset(), page.Limit)
	if err != nil {
		return nil, apperr.NewInternal("failed to list users", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return &UserPage{Users: users, Pagination: page.Paginate(total)}, nil
}

// UpdateUserRole changes a user's role. The root admin cannot be demoted.
func (s *Service) UpdateUserRole(ctx context.Context, userID uint, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, apperr.NewValidation("role", "role must be user or admin")
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.isRootAdmin(user) && role != domain.RoleAdmin {
		return nil, apperr.NewForbidden("the root admin account cannot be demoted")
	}
	if err := s.store.UpdateUser(ctx, userID, map[string]any{"role": role}); err != nil {
		return nil, apperr.NewInternal("failed to update role", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"role":    role,
	}).Info("User role updated")
	user.Role = role
	return user, nil
}

func (s *Service) isRootAdmin(user *domain.User) bool {
	return s.rootAdminEmail != "" && strings.EqualFold(user.Email, s.rootAdminEmail)
}

// EnsureRootAdmin creates the root admin account. An existing non-admin account with that
// email is only promoted when promote is set, since anyone may have registered it.
// password is only used when the account has to be created.
func (s *Service) EnsureRootAdmin(ctx context.Context, name, password string, promote bool) (*domain.User, bool, error) {
	if s.rootAdminEmail == "" {
		return nil, false, apperr.NewValidation("email", "root admin email is not configured")
	}
	existing, err := s.store.GetUserByEmail(ctx, normalizeEmail(s.rootAdminEmail))
	switch {
	case err == nil:
		if existing.IsAdmin() {
			return existing, false, nil
		}
		if !promote {
			return nil, false, apperr.NewConflict("an account with the root admin email already exists; rerun with -promote to make it admin")
		}
		if err := s.store.UpdateUser(ctx, existing.ID, map[string]any{"role": domain.RoleAdmin}); err != nil {
			return nil, false, apperr.NewInternal("failed to promote root admin", err)
		}
		existing.Role = domain.RoleAdmin
		logrus.WithFields(logrus.Fields{"user_id": existing.ID, "name": existing.Name}).Warn("Existing account promoted to root admin")
		return existing, false, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, false, apperr.NewInternal("failed to load root admin", err)
	}

	user, err := s.Register(ctx, RegisterInput{Name: name, Email: s.rootAdminEmail, Password: password})
	if err != nil {
		return nil, false, err
	}
	image := "https://ui-avatars.com/api/?name=Admin&background=01684B&color=fff"
	changes := map[string]any{"role": domain.RoleAdmin, "image": image}
	if err := s.store.UpdateUser(ctx, user.ID, changes); err != nil {
		return nil, false, apperr.NewInternal("failed to promote root admin", err)
	}
	user.Role = domain.RoleAdmin
	user.Image = image
	logrus.WithField("user_id", user.ID).Info("Root admin created")
	return user, true, nil
}
