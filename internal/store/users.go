package store

import (
	"context"

	"project_showcase/internal/domain"

	"gorm.io/gorm"
)

// CreateUser inserts a new user
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

// GetUser fetches a user by id
func (s *Store) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetUserByEmail fetches a user by email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UserExists reports whether a user row with id is present
func (s *Store) UserExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// UsersByIDs resolves a set of user ids for display
func (s *Store) UsersByIDs(ctx context.Context, ids []uint) (map[uint]domain.User, error) {
	users := make(map[uint]domain.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	var rows []domain.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, u := range rows {
		users[u.ID] = u
	}
	return users, nil
}

// UserIDsByName returns the ids of users whose name contains q, case-insensitively
func (s *Store) UserIDsByName(ctx context.Context, q string) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("LOWER(name) LIKE ? ESCAPE '!'", likePattern(q)).
		Pluck("id", &ids).Error
	return ids, err
}

// SearchUsers returns at most limit users whose name contains q
func (s *Store) SearchUsers(ctx context.Context, q string, limit int) ([]domain.User, error) {
	var users []domain.User
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? ESCAPE '!'", likePattern(q)).
		Order("name ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// ListUsers pages through users, newest first, optionally filtered on name or email
func (s *Store) ListUsers(ctx context.Context, search string, offset, limit int) ([]domain.User, int64, error) {
	query := s.db.WithContext(ctx).Model(&domain.User{})
	if search != "" {
		pattern := likePattern(search)
		query = query.Where("(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!')", pattern, pattern)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []domain.User
	err := query.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

// UpdateUser applies the given column changes to a user
func (s *Store) UpdateUser(ctx context.Context, id uint, changes map[string]any) error {
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports zero rows for a no-op update, so confirm the row exists
		if _, err := s.GetUser(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// DeleteUser removes a user row; deleting a missing user is not an error
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&domain.User{}, id).Error
}
