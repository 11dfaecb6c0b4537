package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := loadTetrisFile(writeConfig(t, string(defaultTetrisYAML)))
	require.NoError(t, err)
	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := writeConfig(t, "board:\n  width: 12\n  height: 22\ntiming:\n  initial_drop_interval_ms: 800\n")

	cfg, err := LoadTetris(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Board.Width)
	assert.Equal(t, 22, cfg.Board.Height)
	assert.Equal(t, 800*time.Millisecond, cfg.Timing.InitialDropInterval())
}

func TestLoadTetrisPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "board:\n  width: 8\n")

	cfg, err := LoadTetris(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Board.Width)
	assert.Equal(t, 20, cfg.Board.Height)
	assert.Equal(t, 1000, cfg.Timing.InitialDropIntervalMs)
}

func TestLoadTetrisEnvOverrides(t *testing.T) {
	t.Setenv("TETRIS_BOARD_HEIGHT", "30")
	t.Setenv("TETRIS_DROP_INTERVAL_MS", "500")

	cfg, err := LoadTetris(writeConfig(t, "board:\n  width: 10\n  height: 20\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Board.Width)
	assert.Equal(t, 30, cfg.Board.Height)
	assert.Equal(t, 500, cfg.Timing.InitialDropIntervalMs)
}

func TestLoadTetrisErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{"zero width", "board:\n  width: 0\n  height: 20\n", true},
		{"negative height", "board:\n  width: 10\n  height: -1\n", true},
		{"narrower than the I piece", "board:\n  width: 3\n  height: 20\n", true},
		{"single row", "board:\n  width: 10\n  height: 1\n", true},
		{"zero interval", "timing:\n  initial_drop_interval_ms: 0\n", true},
		{"malformed yaml", "board: [", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadTetris(writeConfig(t, tc.content))
			require.Error(t, err)
			assert.Equal(t, tc.invalid, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestLoadTetrisSmallestBoard(t *testing.T) {
	cfg, err := LoadTetris(writeConfig(t, "board:\n  width: 4\n  height: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, MinBoardWidth, cfg.Board.Width)
	assert.Equal(t, MinBoardHeight, cfg.Board.Height)
}

func TestLoadTetrisMissingFile(t *testing.T) {
	_, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadTetrisBadEnv(t *testing.T) {
	t.Setenv("TETRIS_BOARD_WIDTH", "wide")

	_, err := LoadTetris(writeConfig(t, "board:\n  width: 10\n"))
	assert.Error(t, err)
}
