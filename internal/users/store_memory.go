package users

import (
	"context"
	"sync"

	id "paperflow/pkg/domain"
	"paperflow/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu    sync.RWMutex
	users map[id.UserID]User
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[id.UserID]User)}
}

func (s *InMemoryStore) Save(_ context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, userID id.UserID) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return User{}, sentinel.ErrNotFound
	}
	return user, nil
}
