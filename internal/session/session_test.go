package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan-pw/minesweeper/internal/command"
	"github.com/jordan-pw/minesweeper/internal/mines"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestStore(layout ...mines.Point) (*Store, *clock) {
	c := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	st := NewStore(func() mines.Placer { return mines.FixedPlacer(layout...) })
	st.now = c.Now
	return st, c
}

var params2x2 = mines.GameParams{Width: 2, Height: 2, MineCount: 1}

func TestCreateGetDelete(t *testing.T) {
	st, _ := newTestStore(mines.Point{X: 0, Y: 0})

	s, err := st.Create(params2x2)
	require.NoError(t, err)
	assert.Len(t, s.ID, 36)
	assert.Equal(t, 1, st.Len())

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	other, err := st.Create(params2x2)
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, other.ID)

	require.NoError(t, st.Delete(s.ID))
	_, err = st.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.Delete(s.ID), ErrNotFound)
	assert.Equal(t, 1, st.Len())
}

func TestCreateRejectsInvalidParams(t *testing.T) {
	st, _ := newTestStore()
	_, err := st.Create(mines.GameParams{Width: 2, Height: 2, MineCount: 4})
	assert.ErrorIs(t, err, mines.ErrInvalidConfiguration)
	assert.Zero(t, st.Len())
}

func TestDoIsAtomic(t *testing.T) {
	st, _ := newTestStore(mines.Point{X: 0, Y: 0})
	s, err := st.Create(params2x2)
	require.NoError(t, err)

	boom := errors.New("boom")
	snap, err := s.Do(func(g *mines.Game) error {
		if _, err := g.Reveal(1, 1); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, mines.NotStarted, snap.Phase)
	assert.Zero(t, snap.Moves)

	snap, err = s.Do(func(g *mines.Game) error {
		_, err := g.Reveal(1, 1)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, mines.InProgress, snap.Phase)
	assert.Equal(t, 1, s.Snapshot().Moves)
}

func TestFailedDoKeepsLayout(t *testing.T) {
	params := mines.GameParams{Width: 9, Height: 9, MineCount: 10}
	st := NewStore(func() mines.Placer { return mines.RandomPlacer(rand.NewPCG(42, 1)) })
	s, err := st.Create(params)
	require.NoError(t, err)

	_, err = s.Do(func(g *mines.Game) error {
		_, err := command.Run(g, "o 4 4\nbogus")
		return err
	})
	var lineErr *command.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)

	var got mines.Board
	_, err = s.Do(func(g *mines.Game) error {
		_, err := g.Reveal(4, 4)
		got = g.Board()
		return err
	})
	require.NoError(t, err)

	ref, err := mines.NewGame(params, mines.RandomPlacer(rand.NewPCG(42, 1)))
	require.NoError(t, err)
	_, err = ref.Reveal(4, 4)
	require.NoError(t, err)
	assert.Equal(t, ref.Board(), got)
}

func TestEndedAt(t *testing.T) {
	st, c := newTestStore(mines.Point{X: 0, Y: 0})
	s, err := st.Create(params2x2)
	require.NoError(t, err)

	reveal := func(x, y int) func(*mines.Game) error {
		return func(g *mines.Game) error {
			_, err := g.Reveal(x, y)
			return err
		}
	}

	_, err = s.Do(reveal(1, 1))
	require.NoError(t, err)
	assert.True(t, s.EndedAt().IsZero())

	c.Advance(time.Minute)
	_, err = s.Do(reveal(0, 0))
	require.NoError(t, err)
	assert.Equal(t, st.now(), s.EndedAt())

	_, err = s.Do(func(g *mines.Game) error { return g.Configure(params2x2) })
	require.NoError(t, err)
	assert.True(t, s.EndedAt().IsZero())
}

func TestConcurrentDo(t *testing.T) {
	st, _ := newTestStore()
	s, err := st.Create(mines.GameParams{Width: 8, Height: 8, MineCount: 0})
	require.NoError(t, err)
	_, err = s.Do(func(g *mines.Game) error {
		_, err := g.Reveal(0, 0)
		return err
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do(func(g *mines.Game) error {
				_, err := g.Reveal(3, 3)
				return err
			})
		}()
	}
	wg.Wait()

	// The second reveal on a mine-free board wins, later ones are rejected.
	assert.Equal(t, 2, s.Snapshot().Moves)
	assert.Equal(t, mines.Won, s.Snapshot().Phase)
}

func TestSweep(t *testing.T) {
	st, c := newTestStore()
	stale, err := st.Create(params2x2)
	require.NoError(t, err)
	fresh, err := st.Create(params2x2)
	require.NoError(t, err)

	c.Advance(20 * time.Minute)
	fresh.Snapshot()
	c.Advance(20 * time.Minute)

	evicted := st.Sweep(30 * time.Minute)
	assert.Equal(t, []string{stale.ID}, evicted)
	assert.Equal(t, 1, st.Len())
	_, err = st.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestRunSweeper(t *testing.T) {
	st, c := newTestStore()
	_, err := st.Create(params2x2)
	require.NoError(t, err)
	c.Advance(time.Hour)

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- st.RunSweeper(ctx, time.Millisecond, time.Minute, logger)
	}()

	assert.Eventually(t, func() bool { return st.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}
