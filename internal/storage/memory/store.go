// Package memory is an in-process UserStore used by tests and local runs.
package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/hongminglow/hospcare-be/internal/models"
	"github.com/hongminglow/hospcare-be/internal/storage"
)

var _ storage.UserStore = (*Store)(nil)

// Store keeps users per category in insertion order.
type Store struct {
	mu         sync.RWMutex
	partitions map[models.Category][]models.User
	seq        int
}

// New returns an empty store.
func New() *Store {
	return &Store{partitions: make(map[models.Category][]models.User)}
}

// CreateUser enforces email uniqueness per partition.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.partitions[user.Category] {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	s.seq++
	user.ID = strconv.Itoa(s.seq)
	s.partitions[user.Category] = append(s.partitions[user.Category], user)
	return user, nil
}

func (s *Store) FindByEmail(ctx context.Context, category models.Category, email string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.partitions[category] {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) ListByCategory(ctx context.Context, category models.Category) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.partitions[category]))
	copy(out, s.partitions[category])
	return out, nil
}

// Count returns the number of users in a partition.
func (s *Store) Count(category models.Category) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.partitions[category])
}
