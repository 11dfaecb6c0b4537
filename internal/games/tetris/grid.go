package tetris

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Default board dimensions.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// ErrInvalidDimensions is returned when a grid is built with a non-positive
// width or height.
var ErrInvalidDimensions = errors.New("tetris: grid dimensions must be positive")

// Cell is one board position. Locked cells and active-piece cells are
// Filled; ghost projection cells only appear in snapshots and carry the
// Ghost flag instead.
type Cell struct {
	Filled bool
	Ghost  bool
	Color  core.Color
}

// Empty reports whether nothing occupies the cell.
func (c Cell) Empty() bool {
	return !c.Filled && !c.Ghost
}

// Grid is the playfield: locked cells plus the active and queued pieces.
// Row 0 is the top row.
type Grid struct {
	width  int
	height int
	cells  [][]Cell
	active *Piece
	next   *Piece
	src    Source
}

// NewGrid creates an empty grid and draws the first queued piece. Any
// positive size is accepted; boards narrower than the I piece may end the
// game on the first spawn.
func NewGrid(width, height int, src Source) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if src == nil {
		src = NewSeededSource(1)
	}

	g := &Grid{
		width:  width,
		height: height,
		src:    src,
	}
	g.Reset()
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Active returns the piece under player control, or nil before the first
// spawn.
func (g *Grid) Active() *Piece { return g.active }

// Next returns the queued piece.
func (g *Grid) Next() *Piece { return g.next }

// Cell returns the locked state at (row, col). Out-of-range positions are
// reported empty.
func (g *Grid) Cell(row, col int) Cell {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return Cell{}
	}
	return g.cells[row][col]
}

// SetCell overwrites a locked cell. Out-of-range positions are ignored.
func (g *Grid) SetCell(row, col int, c Cell) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return
	}
	g.cells[row][col] = c
}

// Reset clears every locked cell, removes the active piece and draws a new
// queued piece.
func (g *Grid) Reset() {
	g.cells = make([][]Cell, g.height)
	for r := range g.cells {
		g.cells[r] = make([]Cell, g.width)
	}
	g.active = nil
	g.next = g.newPiece()
}

// newPiece draws a random kind positioned at the spawn offset: centred
// horizontally on the top row.
func (g *Grid) newPiece() *Piece {
	p := NewPiece(drawKind(g.src))
	p.SetPosition(core.Point{X: (g.width - p.Size()) / 2, Y: 0})
	return p
}

// SpawnNext promotes the queued piece to active and queues a fresh one.
// It returns false when the new active piece already collides; the piece
// is installed regardless.
func (g *Grid) SpawnNext() bool {
	g.active = g.next
	g.next = g.newPiece()
	return !g.Collides(g.active)
}

// Collides reports whether any cell of p is outside the side walls, below
// the floor, or on a locked cell. Cells above the top row only have their
// column checked.
func (g *Grid) Collides(p *Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= g.width || c.Y >= g.height {
			return true
		}
		if c.Y >= 0 && g.cells[c.Y][c.X].Filled {
			return true
		}
	}
	return false
}

// LockActivePiece writes the active piece into the locked cells. Cells
// above the top row are dropped.
func (g *Grid) LockActivePiece() {
	if g.active == nil {
		return
	}
	color := g.active.Color()
	for _, c := range g.active.Cells() {
		if c.Y < 0 || c.Y >= g.height || c.X < 0 || c.X >= g.width {
			continue
		}
		g.cells[c.Y][c.X] = Cell{Filled: true, Color: color}
	}
}

// Move shifts the active piece by (dx, dy) if the destination is free.
func (g *Grid) Move(dx, dy int) bool {
	if g.active == nil {
		return false
	}
	g.active.Translate(dx, dy)
	if g.Collides(g.active) {
		g.active.Translate(-dx, -dy)
		return false
	}
	return true
}

// Rotate turns the active piece clockwise. A blocked rotation is retried
// one column left, then one column right; if both fail the piece is put
// back exactly as it was.
func (g *Grid) Rotate() bool {
	p := g.active
	if p == nil {
		return false
	}

	saved := p.saveOrientation()
	p.RotateClockwise()
	if !g.Collides(p) {
		return true
	}

	p.Translate(-1, 0)
	if !g.Collides(p) {
		return true
	}

	p.Translate(2, 0)
	if !g.Collides(p) {
		return true
	}

	p.Translate(-1, 0)
	p.restoreOrientation(saved)
	return false
}

// rowComplete reports whether every column of row is locked.
func (g *Grid) rowComplete(row int) bool {
	for _, c := range g.cells[row] {
		if !c.Filled {
			return false
		}
	}
	return true
}

// ClearCompletedRows removes every full row, shifting the rows above down
// and inserting empty rows at the top. Returns the number removed.
func (g *Grid) ClearCompletedRows() int {
	cleared := 0
	for row := g.height - 1; row >= 0; {
		if !g.rowComplete(row) {
			row--
			continue
		}
		copy(g.cells[1:row+1], g.cells[:row])
		g.cells[0] = make([]Cell, g.width)
		cleared++
		// Same index again: the row above has moved into it.
	}
	return cleared
}

// GhostPosition returns a copy of the active piece dropped as far as it
// can go, or nil when there is no active piece. A piece that already
// collides (a topped-out spawn) has no free row to step back into, so its
// ghost is returned at the piece's own position.
func (g *Grid) GhostPosition() *Piece {
	if g.active == nil {
		return nil
	}
	ghost := g.active.Clone()
	if g.Collides(ghost) {
		return ghost
	}
	for !g.Collides(ghost) {
		ghost.Translate(0, 1)
	}
	ghost.Translate(0, -1)
	return ghost
}

// HardDrop moves the active piece down until it rests and returns the
// number of rows travelled.
func (g *Grid) HardDrop() int {
	distance := 0
	for g.Move(0, 1) {
		distance++
	}
	return distance
}

// Snapshot returns a height x width view of the board for rendering:
// locked cells, the active piece on top, and the ghost projection in
// whatever cells remain empty.
func (g *Grid) Snapshot() [][]Cell {
	snap := make([][]Cell, g.height)
	for r := range g.cells {
		snap[r] = append([]Cell(nil), g.cells[r]...)
	}

	if g.active == nil {
		return snap
	}

	color := g.active.Color()
	for _, c := range g.active.Cells() {
		if g.inBounds(c) {
			snap[c.Y][c.X] = Cell{Filled: true, Color: color}
		}
	}

	if ghost := g.GhostPosition(); ghost != nil {
		for _, c := range ghost.Cells() {
			if g.inBounds(c) && snap[c.Y][c.X].Empty() {
				snap[c.Y][c.X] = Cell{Ghost: true, Color: color}
			}
		}
	}
	return snap
}

func (g *Grid) inBounds(p core.Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}
