package tetris

import (
	"fmt"
	"time"
)

// State is a position in the session lifecycle.
type State int

const (
	StateReady State = iota
	StateRunning
	StatePaused
	StateGameOver
)

// String returns a lowercase name for the state.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Scoring and speed constants.
const (
	LinesPerLevel       = 10
	DefaultDropInterval = 1000 * time.Millisecond
	MinDropInterval     = 100 * time.Millisecond
	DropIntervalStep    = 100 * time.Millisecond
	SoftDropPoints      = 1 // per row
	HardDropPoints      = 2 // per row
)

// lineClearPoints is indexed by the number of rows cleared at once and
// multiplied by the current level.
var lineClearPoints = [...]int{0, 100, 300, 500, 800}

// LineClearScore returns the points for clearing rows at once on level.
func LineClearScore(rows, level int) int {
	if rows <= 0 {
		return 0
	}
	rows = min(rows, len(lineClearPoints)-1)
	return lineClearPoints[rows] * level
}

// DropIntervalForLevel returns the automatic fall interval for level,
// starting from initial and never below MinDropInterval.
func DropIntervalForLevel(initial time.Duration, level int) time.Duration {
	return max(MinDropInterval, initial-time.Duration(level-1)*DropIntervalStep)
}

// Options configures a new session.
type Options struct {
	Width               int
	Height              int
	InitialDropInterval time.Duration
	Source              Source
}

// DefaultOptions returns a 10x20 board with a one-second fall interval.
func DefaultOptions() Options {
	return Options{
		Width:               DefaultWidth,
		Height:              DefaultHeight,
		InitialDropInterval: DefaultDropInterval,
	}
}

// Session drives one game: it owns the grid, the score counters and the
// lifecycle state. Callers advance it with OnTick and player actions; it
// is not safe for concurrent use.
type Session struct {
	grid  *Grid
	state State

	score int
	level int
	lines int

	initialDrop  time.Duration
	dropInterval time.Duration
	elapsed      time.Duration
}

// NewSession builds a session in the Ready state.
func NewSession(opts Options) (*Session, error) {
	if opts.InitialDropInterval <= 0 {
		return nil, fmt.Errorf("tetris: drop interval must be positive, got %s", opts.InitialDropInterval)
	}
	grid, err := NewGrid(opts.Width, opts.Height, opts.Source)
	if err != nil {
		return nil, err
	}

	s := &Session{
		grid:        grid,
		state:       StateReady,
		initialDrop: opts.InitialDropInterval,
	}
	s.resetCounters()
	return s, nil
}

func (s *Session) resetCounters() {
	s.score = 0
	s.level = 1
	s.lines = 0
	s.elapsed = 0
	s.dropInterval = s.initialDrop
}

// Grid returns the playfield for rendering.
func (s *Session) Grid() *Grid { return s.grid }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Score returns the points earned this game.
func (s *Session) Score() int { return s.score }

// Level returns the current level, starting at 1.
func (s *Session) Level() int { return s.level }

// Lines returns the total rows cleared this game.
func (s *Session) Lines() int { return s.lines }

// IsOver reports whether the game has ended.
func (s *Session) IsOver() bool { return s.state == StateGameOver }

// IsPaused reports whether the game is paused.
func (s *Session) IsPaused() bool { return s.state == StatePaused }

// DropInterval returns the current automatic fall interval.
func (s *Session) DropInterval() time.Duration { return s.dropInterval }

// StartNewGame resets the board and counters and spawns the first piece.
// Only accepted from Ready or GameOver.
func (s *Session) StartNewGame() bool {
	if s.state != StateReady && s.state != StateGameOver {
		return false
	}
	s.grid.Reset()
	s.resetCounters()
	s.state = StateRunning
	if !s.grid.SpawnNext() {
		s.state = StateGameOver
	}
	return true
}

// TogglePause switches between Running and Paused. Other states ignore it.
func (s *Session) TogglePause() bool {
	switch s.state {
	case StateRunning:
		s.state = StatePaused
	case StatePaused:
		s.state = StateRunning
	default:
		return false
	}
	return true
}

// OnTick advances the fall timer by elapsed. Once more than one drop
// interval has accumulated the active piece falls one row, locking if it
// cannot.
func (s *Session) OnTick(elapsed time.Duration) {
	if s.state != StateRunning {
		return
	}
	s.elapsed += elapsed
	if s.elapsed <= s.dropInterval {
		return
	}
	if !s.grid.Move(0, 1) {
		s.lockAndAdvance()
	}
	s.elapsed = 0
}

// MoveLeft shifts the active piece one column left.
func (s *Session) MoveLeft() bool {
	return s.running() && s.grid.Move(-1, 0)
}

// MoveRight shifts the active piece one column right.
func (s *Session) MoveRight() bool {
	return s.running() && s.grid.Move(1, 0)
}

// Rotate turns the active piece clockwise, with wall kicks.
func (s *Session) Rotate() bool {
	return s.running() && s.grid.Rotate()
}

// SoftDrop moves the active piece down one row, scoring a point on success.
func (s *Session) SoftDrop() bool {
	if !s.running() || !s.grid.Move(0, 1) {
		return false
	}
	s.score += SoftDropPoints
	return true
}

// HardDrop drops the active piece to rest, scores two points per row and
// locks it immediately. Returns the distance dropped.
func (s *Session) HardDrop() int {
	if !s.running() {
		return 0
	}
	distance := s.grid.HardDrop()
	s.score += distance * HardDropPoints
	s.lockAndAdvance()
	return distance
}

func (s *Session) running() bool {
	return s.state == StateRunning
}

// lockAndAdvance commits the active piece, scores any cleared rows and
// brings in the next piece, ending the game if it has no room.
func (s *Session) lockAndAdvance() {
	s.grid.LockActivePiece()

	if cleared := s.grid.ClearCompletedRows(); cleared > 0 {
		s.lines += cleared
		s.score += LineClearScore(cleared, s.level)

		if level := s.lines/LinesPerLevel + 1; level != s.level {
			s.level = level
			s.dropInterval = DropIntervalForLevel(s.initialDrop, level)
		}
	}

	if !s.grid.SpawnNext() {
		s.state = StateGameOver
	}
}
