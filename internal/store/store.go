// Package store persists users and project aggregates with GORM.
package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict is returned when a project changed since it was read
	ErrVersionConflict = errors.New("project was modified concurrently")
	// ErrDuplicate is returned when a unique column already holds the value
	ErrDuplicate = errors.New("duplicate key")
)

// Store wraps the shared database handle
type Store struct {
	db *gorm.DB
}

// New creates a store over db
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying database handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// likeEscaper makes user input match literally inside a LIKE pattern.
// '!' is the escape character: a backslash literal differs between MySQL and Postgres.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likePattern builds a case-insensitive "contains" pattern; pair it with ESCAPE '!'
func likePattern(q string) string {
	return "%" + likeEscaper.Replace(toLower(q)) + "%"
}

func toLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
