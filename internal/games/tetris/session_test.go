package tetris

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func newTestSession(t *testing.T, kinds ...Kind) *Session {
	t.Helper()
	if len(kinds) == 0 {
		kinds = []Kind{KindT}
	}
	opts := DefaultOptions()
	opts.Source = NewSequence(kinds...)
	s, err := NewSession(opts)
	require.NoError(t, err)
	return s
}

func clearBoard(g *Grid) {
	for row := range g.cells {
		g.cells[row] = make([]Cell, g.width)
	}
}

// completeRows sets up n full bottom rows finished by an upright I in
// column 0, then locks it.
func completeRows(t *testing.T, s *Session, n int) {
	t.Helper()
	g := s.Grid()
	clearBoard(g)
	for row := g.Height() - n; row < g.Height(); row++ {
		fillRow(g, row, 0)
	}
	placeActive(g, KindI, 1, -2, g.Height()-4)
	require.False(t, g.Collides(g.Active()))
	s.lockAndAdvance()
}

func TestNewSessionValidation(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 0
	_, err := NewSession(opts)
	assert.True(t, errors.Is(err, ErrInvalidDimensions))

	opts = DefaultOptions()
	opts.InitialDropInterval = 0
	_, err = NewSession(opts)
	assert.Error(t, err)
}

func TestSessionStartsReady(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, 0, s.Lines())
	assert.Equal(t, DefaultDropInterval, s.DropInterval())
	assert.Nil(t, s.Grid().Active())

	assert.False(t, s.MoveLeft())
	assert.False(t, s.Rotate())
	assert.False(t, s.SoftDrop())
	assert.Equal(t, 0, s.HardDrop())
	assert.False(t, s.TogglePause())
}

func TestStartNewGame(t *testing.T) {
	s := newTestSession(t)

	require.True(t, s.StartNewGame())
	assert.Equal(t, StateRunning, s.State())
	assert.NotNil(t, s.Grid().Active())
	assert.NotNil(t, s.Grid().Next())

	assert.False(t, s.StartNewGame(), "already running")
	require.True(t, s.TogglePause())
	assert.False(t, s.StartNewGame(), "paused")
}

func TestLineClearScoring(t *testing.T) {
	tests := []struct {
		rows     int
		level    int
		expected int
	}{
		{1, 1, 100},
		{2, 1, 300},
		{3, 1, 500},
		{4, 1, 800},
		{1, 2, 200},
		{4, 2, 1600},
	}

	for _, tc := range tests {
		s := newTestSession(t)
		require.True(t, s.StartNewGame())
		s.level = tc.level
		s.lines = (tc.level - 1) * LinesPerLevel

		completeRows(t, s, tc.rows)

		if s.Score() != tc.expected {
			t.Errorf("%d rows at level %d scored %d, expected %d", tc.rows, tc.level, s.Score(), tc.expected)
		}
		assert.Equal(t, (tc.level-1)*LinesPerLevel+tc.rows, s.Lines())
	}
}

func TestLineClearScore(t *testing.T) {
	assert.Equal(t, 0, LineClearScore(0, 3))
	assert.Equal(t, 800, LineClearScore(4, 1))
	assert.Equal(t, 2400, LineClearScore(4, 3))
}

func TestLevelProgression(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.StartNewGame())

	for range 9 {
		completeRows(t, s, 1)
	}
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, time.Second, s.DropInterval())

	completeRows(t, s, 1)
	assert.Equal(t, 10, s.Lines())
	assert.Equal(t, 2, s.Level())
	assert.Equal(t, 900*time.Millisecond, s.DropInterval())

	// 10 + 22*4 + 2 = 100 lines
	for range 22 {
		completeRows(t, s, 4)
	}
	completeRows(t, s, 2)
	assert.Equal(t, 100, s.Lines())
	assert.Equal(t, 11, s.Level())
	assert.Equal(t, MinDropInterval, s.DropInterval())

	completeRows(t, s, 4)
	assert.Equal(t, MinDropInterval, s.DropInterval(), "interval is floored")
	assert.Equal(t, StateRunning, s.State())
}

func TestDropIntervalForLevel(t *testing.T) {
	tests := []struct {
		initial  time.Duration
		level    int
		expected time.Duration
	}{
		{time.Second, 1, time.Second},
		{time.Second, 2, 900 * time.Millisecond},
		{time.Second, 10, 100 * time.Millisecond},
		{time.Second, 25, 100 * time.Millisecond},
		{500 * time.Millisecond, 3, 300 * time.Millisecond},
	}
	for _, tc := range tests {
		if got := DropIntervalForLevel(tc.initial, tc.level); got != tc.expected {
			t.Errorf("DropIntervalForLevel(%s, %d) = %s, expected %s", tc.initial, tc.level, got, tc.expected)
		}
	}
}

func TestSoftDrop(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.StartNewGame())
	y := s.Grid().Active().Position().Y

	require.True(t, s.SoftDrop())
	assert.Equal(t, y+1, s.Grid().Active().Position().Y)
	assert.Equal(t, SoftDropPoints, s.Score())
}

func TestSoftDropBlockedScoresNothing(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.StartNewGame())
	s.Grid().HardDrop()

	assert.False(t, s.SoftDrop())
	assert.Equal(t, 0, s.Score())
}

func TestHardDrop(t *testing.T) {
	// Building the grid and starting the game each queue one piece
	s := newTestSession(t, KindT, KindO, KindT)
	require.True(t, s.StartNewGame())
	require.Equal(t, KindO, s.Grid().Active().Kind())
	first := s.Grid().Active()

	distance := s.HardDrop()

	assert.Equal(t, 18, distance)
	assert.Equal(t, distance*HardDropPoints, s.Score())
	assert.NotSame(t, first, s.Grid().Active())
	assert.Equal(t, KindT, s.Grid().Active().Kind())
	assert.True(t, s.Grid().Cell(19, 4).Filled)
	assert.True(t, s.Grid().Cell(18, 5).Filled)
}

func TestOnTickRequiresStrictlyMoreThanInterval(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.StartNewGame())
	active := s.Grid().Active()

	s.OnTick(time.Second)
	assert.Equal(t, 0, active.Position().Y, "exactly one interval")

	s.OnTick(time.Millisecond)
	assert.Equal(t, 1, active.Position().Y)

	// Accumulator was reset
	s.OnTick(999 * time.Millisecond)
	assert.Equal(t, 1, active.Position().Y)

	s.OnTick(2 * time.Millisecond)
	assert.Equal(t, 2, active.Position().Y)
}

func TestOnTickLocksRestingPiece(t *testing.T) {
	s := newTestSession(t, KindO)
	require.True(t, s.StartNewGame())
	resting := s.Grid().Active()
	s.Grid().HardDrop()

	s.OnTick(DefaultDropInterval + time.Millisecond)

	assert.NotSame(t, resting, s.Grid().Active())
	for _, c := range resting.Cells() {
		assert.True(t, s.Grid().Cell(c.Y, c.X).Filled)
	}
	assert.Equal(t, 0, s.Score(), "gravity earns no points")
}

func TestPauseFreezesSession(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.StartNewGame())
	active := s.Grid().Active()
	start := active.Position()

	require.True(t, s.TogglePause())
	assert.True(t, s.IsPaused())

	s.OnTick(10 * time.Second)
	assert.False(t, s.MoveLeft())
	assert.False(t, s.MoveRight())
	assert.False(t, s.Rotate())
	assert.False(t, s.SoftDrop())
	assert.Equal(t, 0, s.HardDrop())
	assert.Equal(t, start, active.Position())
	assert.Equal(t, 0, active.Rotation())

	require.True(t, s.TogglePause())
	assert.Equal(t, StateRunning, s.State())
	assert.True(t, s.MoveLeft())
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	s := newTestSession(t, KindO)
	require.True(t, s.StartNewGame())
	g := s.Grid()

	// Nearly full top rows; the missing column keeps them from clearing
	fillRow(g, 0, 9)
	fillRow(g, 1, 9)
	placeActive(g, KindO, 0, 0, 18)

	s.lockAndAdvance()

	require.True(t, s.IsOver())
	assert.Equal(t, StateGameOver, s.State())

	score := s.Score()
	pos := g.Active().Position()
	assert.False(t, s.MoveLeft())
	assert.False(t, s.MoveRight())
	assert.False(t, s.Rotate())
	assert.False(t, s.SoftDrop())
	assert.Equal(t, 0, s.HardDrop())
	assert.False(t, s.TogglePause())
	s.OnTick(time.Hour)
	assert.Equal(t, score, s.Score())
	assert.Equal(t, pos, g.Active().Position())
}

func TestStartNewGameAfterGameOver(t *testing.T) {
	s := newTestSession(t, KindO)
	require.True(t, s.StartNewGame())
	g := s.Grid()
	fillRow(g, 0, 9)
	fillRow(g, 1, 9)
	placeActive(g, KindO, 0, 0, 18)
	s.score = 1234
	s.lockAndAdvance()
	require.True(t, s.IsOver())

	require.True(t, s.StartNewGame())
	assert.Equal(t, StateRunning, s.State())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, 0, s.Lines())
	assert.False(t, g.Cell(0, 0).Filled)
	assert.Equal(t, core.Point{X: 4, Y: 0}, g.Active().Position())
}
