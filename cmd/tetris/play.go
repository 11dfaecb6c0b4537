package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagConfig  string
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Left/A, Right/D   - Move
  Up/W/X            - Rotate clockwise
  Down/S            - Soft drop
  Space             - Hard drop (also resumes when paused)
  P/Esc             - Pause
  Enter/R           - New game
  Tab               - High scores (before or after a game)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Board size and speed come from the config file. Environment variables
TETRIS_BOARD_WIDTH, TETRIS_BOARD_HEIGHT and TETRIS_DROP_INTERVAL_MS
override it.

Examples:
  tetris play
  tetris play --seed 42
  tetris play --config ./my-tetris.yaml --log ./tetris.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write game events to this file")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// play runs one terminal session. Deferred cleanup runs before runPlay exits.
func play() error {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return err
	}
	tetris.Configure(cfg)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rtCfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(tetris.ID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	var opts []tui.ModelOption
	if flagLogFile != "" {
		logFile, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer logFile.Close()

		logger := log.NewWithOptions(logFile, log.Options{
			ReportTimestamp: true,
			Prefix:          "tetris",
		})
		logger.Info("config loaded",
			"width", cfg.Board.Width,
			"height", cfg.Board.Height,
			"drop_interval", cfg.Timing.InitialDropInterval(),
		)
		opts = append(opts, tui.WithLogger(logger))
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
	}

	if err := tui.Run(game, store, rtCfg, opts...); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
