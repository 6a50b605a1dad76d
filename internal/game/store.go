package game

import (
	"sync"

	"duobot/internal/entities"
)

// ChallengeStore keeps the latest challenge of every player.
type ChallengeStore struct {
	mu         sync.RWMutex
	challenges map[int64]entities.Challenge
}

func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{challenges: make(map[int64]entities.Challenge)}
}

func (s *ChallengeStore) Put(c entities.Challenge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[c.UserId] = c
}

func (s *ChallengeStore) Get(userID int64) (entities.Challenge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.challenges[userID]
	return c, ok
}
