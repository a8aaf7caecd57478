package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jordan-pw/minesweeper/internal/mines"
)

var ErrNotFound = errors.New("game session not found")

// Session is one live game. Every engine call goes through Do, so a game
// is never touched by two goroutines at once.
type Session struct {
	ID        string
	StartedAt time.Time

	mu       sync.Mutex
	game     *mines.Game
	endedAt  time.Time
	lastUsed time.Time
	now      func() time.Time
}

// Do runs fn against a copy of the game and keeps the copy only if fn
// succeeds. The returned snapshot is that of the live game afterwards.
func (s *Session) Do(fn func(g *mines.Game) error) (mines.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUsed = s.now()
	next := s.game.Clone()
	if err := fn(next); err != nil {
		return s.game.Snapshot(), err
	}
	s.game = next

	switch {
	case s.game.Phase().Terminal() && s.endedAt.IsZero():
		s.endedAt = s.lastUsed
	case !s.game.Phase().Terminal():
		s.endedAt = time.Time{}
	}
	return s.game.Snapshot(), nil
}

func (s *Session) Snapshot() mines.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = s.now()
	return s.game.Snapshot()
}

// EndedAt is the moment the game was won or lost, or zero while it is
// still going.
func (s *Session) EndedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedAt
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Store keeps sessions in memory, keyed by id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	now       func() time.Time
	newPlacer func() mines.Placer
}

// NewStore returns an empty store. Every created game gets its own placer
// from newPlacer; nil means a freshly seeded random placer per game.
func NewStore(newPlacer func() mines.Placer) *Store {
	if newPlacer == nil {
		newPlacer = func() mines.Placer {
			return mines.RandomPlacer(mines.NewSource())
		}
	}
	return &Store{
		sessions:  make(map[string]*Session),
		now:       time.Now,
		newPlacer: newPlacer,
	}
}

func (st *Store) Create(params mines.GameParams) (*Session, error) {
	g, err := mines.NewGame(params, st.newPlacer())
	if err != nil {
		return nil, err
	}
	now := st.now()
	s := &Session{
		ID:        uuid.NewString(),
		StartedAt: now,
		game:      g,
		lastUsed:  now,
		now:       st.now,
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s, nil
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(st.sessions, id)
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep evicts sessions unused for longer than idle and returns their ids.
func (st *Store) Sweep(idle time.Duration) (evicted []string) {
	deadline := st.now().Add(-idle)

	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range st.sessions {
		if s.idleSince().Before(deadline) {
			delete(st.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return
}

// RunSweeper calls Sweep every interval until ctx is done.
func (st *Store) RunSweeper(
	ctx context.Context, interval, idle time.Duration, logger *logrus.Logger,
) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if evicted := st.Sweep(idle); len(evicted) > 0 {
				logger.WithFields(logrus.Fields{
					"evicted":   len(evicted),
					"remaining": st.Len(),
				}).Info("swept idle game sessions")
			}
		}
	}
}
