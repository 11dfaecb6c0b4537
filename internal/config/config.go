// Package config provides YAML-based game configuration loading with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned when a loaded configuration cannot be used.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Smallest playable board: four columns fit the I piece lying flat and two
// rows fit every spawn.
const (
	MinBoardWidth  = 4
	MinBoardHeight = 2
)

// TetrisConfig contains all configuration for the game.
type TetrisConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Timing TimingConfig `yaml:"timing"`
}

// BoardConfig defines the playfield size in cells.
type BoardConfig struct {
	Width  int `yaml:"width" env:"TETRIS_BOARD_WIDTH"`
	Height int `yaml:"height" env:"TETRIS_BOARD_HEIGHT"`
}

// TimingConfig defines the automatic fall speed at level 1.
type TimingConfig struct {
	InitialDropIntervalMs int `yaml:"initial_drop_interval_ms" env:"TETRIS_DROP_INTERVAL_MS"`
}

// InitialDropInterval returns the level-1 fall interval as a duration.
func (t TimingConfig) InitialDropInterval() time.Duration {
	return time.Duration(t.InitialDropIntervalMs) * time.Millisecond
}

// Validate checks the board against the minimum playable size and that the
// drop interval is positive.
func (c TetrisConfig) Validate() error {
	if c.Board.Width < MinBoardWidth || c.Board.Height < MinBoardHeight {
		return fmt.Errorf("%w: board must be at least %dx%d, got %dx%d",
			ErrInvalidConfig, MinBoardWidth, MinBoardHeight, c.Board.Width, c.Board.Height)
	}
	if c.Timing.InitialDropIntervalMs <= 0 {
		return fmt.Errorf("%w: initial_drop_interval_ms must be positive, got %d",
			ErrInvalidConfig, c.Timing.InitialDropIntervalMs)
	}
	return nil
}
