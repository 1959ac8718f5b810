package user

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]UserWithHash
}

// NewMemoryRepository builds an in-memory user store for tests and DB-less
// development. Uniqueness is enforced under the mutex, matching the atomic
// insert contract of the interface.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]UserWithHash)}
}

func (r *memoryRepository) Create(_ context.Context, user UserWithHash) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return ErrDuplicateUser
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user.User, nil
}

func (r *memoryRepository) FindByEmailWithHash(_ context.Context, email string) (UserWithHash, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return UserWithHash{}, ErrNotFound
}

func (r *memoryRepository) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email || user.Username == username {
			return true, nil
		}
	}
	return false, nil
}
