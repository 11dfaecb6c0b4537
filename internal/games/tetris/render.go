package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Layout constants, in screen characters.
const (
	cellWidth    = 2  // Each board cell is drawn two characters wide
	sidebarGap   = 2  // Space between the board and the sidebar
	sidebarWidth = 14 // NEXT box and counters
	previewCols  = 4  // Preview area in cells
	previewRows  = 2
)

// Cell glyphs.
const (
	blockRune = '█'
	ghostRune = '░'
	emptyRune = '·'
)

// Layout is where the board and sidebar sit on a screen of a given size.
type Layout struct {
	Board   core.Rect // Outer board box, borders included
	Sidebar core.Rect
	Fits    bool
}

// ComputeLayout centres the board and sidebar on a screen.
func ComputeLayout(screenW, screenH, gridW, gridH int) Layout {
	boardW := gridW*cellWidth + 2
	boardH := gridH + 2
	totalW := boardW + sidebarGap + sidebarWidth

	x := max(0, (screenW-totalW)/2)
	y := max(0, (screenH-boardH)/2)

	return Layout{
		Board:   core.NewRect(x, y, boardW, boardH),
		Sidebar: core.NewRect(x+boardW+sidebarGap, y, sidebarWidth, boardH),
		Fits:    screenW >= totalW && screenH >= boardH,
	}
}

// Render draws the board, the next-piece preview, the counters and any
// state overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	grid := g.session.Grid()
	layout := ComputeLayout(dst.Width(), dst.Height(), grid.Width(), grid.Height())
	if !layout.Fits {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", layout.Sidebar.Right()-layout.Board.X, layout.Board.H))
		return
	}

	g.renderBoard(dst, layout.Board)
	g.renderSidebar(dst, layout.Sidebar)

	switch g.session.State() {
	case StateReady:
		g.renderOverlay(dst, layout.Board, "TETRIS", "Enter to start")
	case StatePaused:
		g.renderOverlay(dst, layout.Board, "PAUSED", "P to resume")
	case StateGameOver:
		g.renderOverlay(dst, layout.Board, "GAME OVER", "Enter to retry")
	}
}

// renderBoard draws the border and every snapshot cell.
func (g *Game) renderBoard(dst *core.Screen, box core.Rect) {
	dst.DrawBox(box, core.ColorGray)

	// Only show pieces once a game is underway
	var cells [][]Cell
	if g.session.State() == StateReady {
		cells = emptySnapshot(g.session.Grid())
	} else {
		cells = g.session.Grid().Snapshot()
	}

	for row, line := range cells {
		for col, c := range line {
			x := box.X + 1 + col*cellWidth
			y := box.Y + 1 + row
			switch {
			case c.Filled:
				dst.SetCell(x, y, blockRune, c.Color)
				dst.SetCell(x+1, y, blockRune, c.Color)
			case c.Ghost:
				dst.SetCell(x, y, ghostRune, c.Color)
				dst.SetCell(x+1, y, ghostRune, c.Color)
			default:
				dst.SetCell(x, y, ' ', core.ColorDefault)
				dst.SetCell(x+1, y, emptyRune, core.ColorGray)
			}
		}
	}
}

func emptySnapshot(grid *Grid) [][]Cell {
	cells := make([][]Cell, grid.Height())
	for r := range cells {
		cells[r] = make([]Cell, grid.Width())
	}
	return cells
}

// renderSidebar draws the next-piece preview and the counters.
func (g *Game) renderSidebar(dst *core.Screen, area core.Rect) {
	preview := core.NewRect(area.X, area.Y, previewCols*cellWidth+4, previewRows+4)
	dst.DrawBox(preview, core.ColorGray)
	dst.DrawText(preview.X+2, preview.Y, " NEXT ")

	if g.session.State() != StateReady {
		g.renderPreview(dst, preview)
	}

	s := g.session
	y := preview.Bottom() + 1
	stats := []struct {
		label string
		value int
	}{
		{"SCORE", s.Score()},
		{"LEVEL", s.Level()},
		{"LINES", s.Lines()},
	}
	for _, st := range stats {
		dst.DrawTextColored(area.X, y, st.label, core.ColorGray)
		dst.DrawTextColored(area.X, y+1, fmt.Sprintf("%d", st.value), core.ColorBrightWhite)
		y += 3
	}
}

// renderPreview centres the queued piece inside the preview box using its
// bounding box.
func (g *Game) renderPreview(dst *core.Screen, box core.Rect) {
	next := g.session.Grid().Next()
	bb := next.BoundingBox()

	// Inner area starts one cell inside the border padding
	originX := box.X + 2 + (previewCols-bb.Width)*cellWidth/2
	originY := box.Y + 2 + (previewRows-bb.Height)/2

	for _, c := range next.Cells() {
		x := originX + (c.X-bb.MinX)*cellWidth
		y := originY + (c.Y - bb.MinY)
		dst.SetCell(x, y, blockRune, next.Color())
		dst.SetCell(x+1, y, blockRune, next.Color())
	}
}

// renderOverlay draws a small framed message centred on the board.
func (g *Game) renderOverlay(dst *core.Screen, board core.Rect, line1, line2 string) {
	maxLen := max(len(line1), len(line2))
	boxW := min(maxLen+4, board.W)
	boxH := 5
	cx, cy := board.Center()
	box := core.NewRect(cx-boxW/2, cy-boxH/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	drawCentered(dst, box, box.Y+1, line1, core.ColorBrightWhite)
	drawCentered(dst, box, box.Y+3, line2, core.ColorGray)
}

func drawCentered(dst *core.Screen, box core.Rect, y int, text string, c core.Color) {
	x := box.X + (box.W-len(text))/2
	dst.DrawTextColored(x, y, text, c)
}
