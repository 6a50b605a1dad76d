// Package conversation drives multi-step chat forms: a per-user session store
// and an engine that validates each reply and commits the answers once.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/shopspring/decimal"
)

// Step names a position in a flow.
type Step string

// StepCommitted is the terminal step every flow advances to after its last prompt.
const StepCommitted Step = "committed"

const eventAnswer = "answer"

var ErrNoActiveSession = errors.New("no active session")

// Answers maps a field name to its validated value: a string or a decimal.Decimal.
type Answers map[string]any

func (a Answers) Text(field string) string {
	s, _ := a[field].(string)
	return s
}

func (a Answers) Amount(field string) decimal.Decimal {
	d, _ := a[field].(decimal.Decimal)
	return d
}

type Session struct {
	RunID   uuid.UUID
	UserID  int64
	Step    Step
	Answers Answers
}

type entry struct {
	Session
	machine *fsm.FSM
}

func (e *entry) snapshot() Session {
	s := e.Session
	s.Answers = maps.Clone(e.Answers)
	return s
}

// Store keeps at most one session per user. Sessions advance along the step
// chain given to NewStore and end at StepCommitted.
type Store struct {
	mu       sync.Mutex
	initial  Step
	events   fsm.Events
	sessions map[int64]*entry
}

func NewStore(steps ...Step) *Store {
	if len(steps) == 0 {
		panic("conversation: store needs at least one step")
	}
	events := make(fsm.Events, 0, len(steps))
	for i, step := range steps {
		next := StepCommitted
		if i+1 < len(steps) {
			next = steps[i+1]
		}
		events = append(events, fsm.EventDesc{Name: eventAnswer, Src: []string{string(step)}, Dst: string(next)})
	}
	return &Store{
		initial:  steps[0],
		events:   events,
		sessions: make(map[int64]*entry),
	}
}

// Start opens a session at the first step, replacing any session the user already had.
func (s *Store) Start(userID int64) Session {
	e := &entry{
		Session: Session{
			RunID:   uuid.New(),
			UserID:  userID,
			Step:    s.initial,
			Answers: Answers{},
		},
		machine: fsm.NewFSM(string(s.initial), s.events, nil),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = e
	return e.snapshot()
}

func (s *Store) Get(userID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[userID]
	if !ok {
		return Session{}, false
	}
	return e.snapshot(), true
}

// Update records value under field and advances the session to the next step.
// Nothing is recorded when the session cannot advance.
func (s *Store) Update(ctx context.Context, userID int64, field string, value any) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[userID]
	if !ok {
		return Session{}, ErrNoActiveSession
	}
	if err := e.machine.Event(ctx, eventAnswer); err != nil {
		return e.snapshot(), fmt.Errorf("advance from %s: %w", e.Step, err)
	}
	e.Answers[field] = value
	e.Step = Step(e.machine.Current())
	return e.snapshot(), nil
}

func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
