package tetris

import (
	"strings"
	"time"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick         uint64
	State        string
	Score        int
	Level        int
	Lines        int
	DropInterval time.Duration
	Active       string // Kind letter, empty before the first spawn
	ActiveX      int
	ActiveY      int
	Rotation     int
	Next         string
	Board        []string // '#' locked, '.' empty; row 0 first
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	grid := s.Grid()

	snap := Snapshot{
		Tick:         g.tick,
		State:        s.State().String(),
		Score:        s.Score(),
		Level:        s.Level(),
		Lines:        s.Lines(),
		DropInterval: s.DropInterval(),
		Next:         grid.Next().Kind().String(),
		Board:        make([]string, grid.Height()),
	}

	if p := grid.Active(); p != nil {
		snap.Active = p.Kind().String()
		snap.ActiveX = p.Position().X
		snap.ActiveY = p.Position().Y
		snap.Rotation = p.Rotation()
	}

	for row := range grid.Height() {
		var sb strings.Builder
		for col := range grid.Width() {
			if grid.Cell(row, col).Filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		snap.Board[row] = sb.String()
	}
	return snap
}
