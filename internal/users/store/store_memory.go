package store

import (
	"context"
	"sync"

	"appealboard/internal/users/models"
	id "appealboard/pkg/domain"
	"appealboard/pkg/platform/sentinel"
)

// InMemoryStore keeps users in a map; the development and test backend.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[id.UserID]*models.User
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{users: make(map[id.UserID]*models.User)}
}

func (s *InMemoryStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return sentinel.ErrConflict
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *InMemoryStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *InMemoryStore) ListByRoles(ctx context.Context, roles ...models.Role) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		wanted[r] = true
	}
	var out []*models.User
	for _, user := range s.users {
		if wanted[user.Role] {
			copied := *user
			out = append(out, &copied)
		}
	}
	return out, nil
}
