// Package tetris implements the falling-block puzzle: pieces, the grid,
// the scoring session and the registry.Game adapter that drives them.
package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// ID is the registry and score-storage identifier.
const ID = "tetris"

// Game adapts a Session to the platform's fixed-tick registry.Game
// contract.
type Game struct {
	cfg     config.TetrisConfig
	session *Session
	tick    uint64

	// Simulated time per Step, derived from the tick rate
	tickDuration time.Duration
}

// Package-level config, set by the CLI before the registry creates games
var configured = config.DefaultTetrisConfig()

// Configure sets the board and timing used by games created afterwards.
func Configure(cfg config.TetrisConfig) {
	configured = cfg
}

// New creates a game using the configured board and timing.
func New() *Game {
	return &Game{cfg: configured}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Options converts the game's configuration into session options.
func (g *Game) Options(src Source) Options {
	return Options{
		Width:               g.cfg.Board.Width,
		Height:              g.cfg.Board.Height,
		InitialDropInterval: g.cfg.Timing.InitialDropInterval(),
		Source:              src,
	}
}

// Reset builds a fresh session in the Ready state.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.tickDuration = time.Second / time.Duration(tickRate)
	g.tick = 0

	src := NewSeededSource(cfg.Seed)
	session, err := NewSession(g.Options(src))
	if err != nil {
		// Config is validated by the loader; an unvalidated one falls back
		opts := DefaultOptions()
		opts.Source = src
		if session, err = NewSession(opts); err != nil {
			panic(fmt.Sprintf("tetris: default options rejected: %v", err))
		}
	}
	g.session = session
}

// Session exposes the underlying engine.
func (g *Game) Session() *Session {
	return g.session
}

// Step applies this tick's input and advances the fall timer.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	s := g.session

	switch s.State() {
	case StateReady, StateGameOver:
		if in.Has(core.ActionStart) {
			s.StartNewGame()
		}

	case StatePaused:
		// Hard drop doubles as resume while paused
		if in.Has(core.ActionPause) || in.Has(core.ActionHardDrop) {
			s.TogglePause()
		}

	case StateRunning:
		if in.Has(core.ActionPause) {
			s.TogglePause()
			break
		}
		g.applyMoves(in)
		s.OnTick(g.tickDuration)
	}

	return core.StepResult{State: g.State()}
}

// applyMoves runs the player's actions in a fixed order: shift, rotate,
// soft drop, then hard drop.
func (g *Game) applyMoves(in core.InputFrame) {
	s := g.session
	if in.Has(core.ActionLeft) {
		s.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		s.MoveRight()
	}
	if in.Has(core.ActionRotate) {
		s.Rotate()
	}
	if in.Has(core.ActionSoftDrop) {
		s.SoftDrop()
	}
	if in.Has(core.ActionHardDrop) {
		s.HardDrop()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.session
	return core.GameState{
		Score:    s.Score(),
		Level:    s.Level(),
		Lines:    s.Lines(),
		Started:  s.State() != StateReady,
		GameOver: s.IsOver(),
		Paused:   s.IsPaused(),
	}
}
