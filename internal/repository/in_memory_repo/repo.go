package in_memory_repo

import (
	"sync"

	"duobot/internal/entities"
	"duobot/internal/repository"
)

type inMemoryRepo struct {
	mu     sync.RWMutex
	users  map[int64]entities.User
	writes int
}

// Repo is the in-memory repository; Writes is exposed for tests.
type Repo interface {
	repository.Repository
	// Writes counts successful StoreUser and UpdateExpenses calls.
	Writes() int
}

func New() Repo {
	return &inMemoryRepo{users: make(map[int64]entities.User)}
}

func (r *inMemoryRepo) StoreUser(user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Id]; ok {
		return repository.ErrUserExists
	}
	r.users[user.Id] = *user
	r.writes++
	return nil
}

func (r *inMemoryRepo) GetUser(id int64) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &user, nil
}

func (r *inMemoryRepo) UpdateExpenses(id int64, expenses []entities.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.SetExpenses(expenses)
	r.users[id] = user
	r.writes++
	return nil
}

func (r *inMemoryRepo) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}
