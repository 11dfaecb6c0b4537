package tetris

import (
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// Kinds lists every tetromino in canonical order. Random selection indexes
// into this slice.
var Kinds = []Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindZ:
		return "Z"
	default:
		return "?"
	}
}

// Color returns the display color for the kind.
func (k Kind) Color() core.Color {
	switch k {
	case KindI:
		return core.ColorCyan
	case KindJ:
		return core.ColorBlue
	case KindL:
		return core.ColorOrange
	case KindO:
		return core.ColorYellow
	case KindS:
		return core.ColorGreen
	case KindT:
		return core.ColorMagenta
	case KindZ:
		return core.ColorRed
	default:
		return core.ColorWhite
	}
}

// canonicalShapes holds the rotation-0 matrix of each kind, row 0 on top.
var canonicalShapes = map[Kind][]string{
	KindI: {
		"....",
		"XXXX",
		"....",
		"....",
	},
	KindJ: {
		"X..",
		"XXX",
		"...",
	},
	KindL: {
		"..X",
		"XXX",
		"...",
	},
	KindO: {
		"XX",
		"XX",
	},
	KindS: {
		".XX",
		"XX.",
		"...",
	},
	KindT: {
		".X.",
		"XXX",
		"...",
	},
	KindZ: {
		"XX.",
		".XX",
		"...",
	},
}

// Shape is a square occupancy matrix indexed [row][col].
type Shape [][]bool

// newShape parses a canonical layout into a fresh matrix.
func newShape(rows []string) Shape {
	s := make(Shape, len(rows))
	for r, line := range rows {
		s[r] = make([]bool, len(rows))
		for c, ch := range line {
			s[r][c] = ch == 'X'
		}
	}
	return s
}

// Clone returns a deep copy of the matrix.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for r := range s {
		out[r] = append([]bool(nil), s[r]...)
	}
	return out
}

// Equal reports whether two matrices have identical occupancy.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for r := range s {
		if len(s[r]) != len(other[r]) {
			return false
		}
		for c := range s[r] {
			if s[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// rotatedClockwise returns the matrix turned a quarter clockwise:
// new[i][j] = old[N-1-j][i].
func (s Shape) rotatedClockwise() Shape {
	n := len(s)
	out := make(Shape, n)
	for i := range n {
		out[i] = make([]bool, n)
		for j := range n {
			out[i][j] = s[n-1-j][i]
		}
	}
	return out
}

// BoundingBox is the tight box around a piece's occupied cells.
type BoundingBox struct {
	MinX, MinY int
	MaxX, MaxY int
	Width      int
	Height     int
}

// Piece is a tetromino placed in grid space. The kind is fixed; the shape
// and position are mutated in place by translation and rotation.
type Piece struct {
	kind     Kind
	shape    Shape
	pos      core.Point
	rotation int
}

// NewPiece creates a piece of the given kind in its canonical rotation at
// the origin.
func NewPiece(kind Kind) *Piece {
	return &Piece{
		kind:  kind,
		shape: newShape(canonicalShapes[kind]),
	}
}

// Kind returns the tetromino kind.
func (p *Piece) Kind() Kind { return p.kind }

// Color returns the piece's display color.
func (p *Piece) Color() core.Color { return p.kind.Color() }

// Rotation returns the number of clockwise quarter turns applied, mod 4.
func (p *Piece) Rotation() int { return p.rotation }

// Size returns the side length of the shape matrix.
func (p *Piece) Size() int { return len(p.shape) }

// Shape returns a copy of the current shape matrix.
func (p *Piece) Shape() Shape { return p.shape.Clone() }

// Position returns the grid offset of the matrix origin.
func (p *Piece) Position() core.Point { return p.pos }

// SetPosition moves the matrix origin to pos.
func (p *Piece) SetPosition(pos core.Point) { p.pos = pos }

// Cells returns the absolute grid coordinates of every occupied cell.
func (p *Piece) Cells() []core.Point {
	cells := make([]core.Point, 0, 4)
	for r, row := range p.shape {
		for c, filled := range row {
			if filled {
				cells = append(cells, p.pos.Add(c, r))
			}
		}
	}
	return cells
}

// Translate shifts the piece by (dx, dy). Legality is the grid's concern.
func (p *Piece) Translate(dx, dy int) {
	p.pos = p.pos.Add(dx, dy)
}

// RotateClockwise turns the piece a quarter clockwise. The O piece is
// rotation invariant and is left untouched.
func (p *Piece) RotateClockwise() {
	if p.kind == KindO {
		return
	}
	p.shape = p.shape.rotatedClockwise()
	p.rotation = (p.rotation + 1) % 4
}

// BoundingBox returns the extent of the occupied cells.
func (p *Piece) BoundingBox() BoundingBox {
	cells := p.Cells()
	if len(cells) == 0 {
		return BoundingBox{}
	}

	bb := BoundingBox{
		MinX: cells[0].X, MaxX: cells[0].X,
		MinY: cells[0].Y, MaxY: cells[0].Y,
	}
	for _, c := range cells[1:] {
		bb.MinX = min(bb.MinX, c.X)
		bb.MaxX = max(bb.MaxX, c.X)
		bb.MinY = min(bb.MinY, c.Y)
		bb.MaxY = max(bb.MaxY, c.Y)
	}
	bb.Width = bb.MaxX - bb.MinX + 1
	bb.Height = bb.MaxY - bb.MinY + 1
	return bb
}

// Clone returns an independent copy sharing no mutable state.
func (p *Piece) Clone() *Piece {
	return &Piece{
		kind:     p.kind,
		shape:    p.shape.Clone(),
		pos:      p.pos,
		rotation: p.rotation,
	}
}

// orientation is the restorable part of a piece's rotation state.
type orientation struct {
	shape    Shape
	rotation int
}

func (p *Piece) saveOrientation() orientation {
	return orientation{shape: p.shape, rotation: p.rotation}
}

func (p *Piece) restoreOrientation(o orientation) {
	p.shape = o.shape
	p.rotation = o.rotation
}
