package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// captureStdout runs fn and returns what it printed.
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe() failed: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	runErr := fn()
	os.Stdout = orig
	w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading output failed: %v", err)
	}
	if runErr != nil {
		t.Fatalf("command failed: %v", runErr)
	}
	return string(out)
}

func seedScores(t *testing.T, results ...storage.Result) {
	t.Helper()
	store, err := storage.Open(flagDBPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	for _, r := range results {
		if _, err := store.SaveResult(tetris.ID, r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}
}

func useScoresFlags(t *testing.T, clearScores bool) {
	t.Helper()
	oldDB, oldLimit, oldClear := flagDBPath, flagLimit, flagClear
	t.Cleanup(func() { flagDBPath, flagLimit, flagClear = oldDB, oldLimit, oldClear })

	flagDBPath = filepath.Join(t.TempDir(), "scores.db")
	flagLimit = 10
	flagClear = clearScores
}

func TestShowScoresPrintsBest(t *testing.T) {
	useScoresFlags(t, false)
	seedScores(t,
		storage.Result{Score: 300, Level: 1, Lines: 3},
		storage.Result{Score: 1200, Level: 2, Lines: 11},
	)

	out := captureStdout(t, showScores)
	if !strings.Contains(out, "Best: 1200") {
		t.Errorf("output missing best score:\n%s", out)
	}
	if !strings.Contains(out, "Games: 2") {
		t.Errorf("output missing games count:\n%s", out)
	}
}

func TestShowScoresEmpty(t *testing.T) {
	useScoresFlags(t, false)

	out := captureStdout(t, showScores)
	if !strings.Contains(out, "No scores recorded yet.") {
		t.Errorf("expected empty message:\n%s", out)
	}
}

func TestShowScoresClear(t *testing.T) {
	useScoresFlags(t, true)
	seedScores(t, storage.Result{Score: 500, Level: 1, Lines: 4})

	out := captureStdout(t, showScores)
	if !strings.Contains(out, "cleared") {
		t.Errorf("expected clear confirmation:\n%s", out)
	}

	flagClear = false
	out = captureStdout(t, showScores)
	if !strings.Contains(out, "No scores recorded yet.") {
		t.Errorf("scores remain after --clear:\n%s", out)
	}
}
