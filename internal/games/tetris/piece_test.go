package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestPieceSizes(t *testing.T) {
	tests := map[Kind]int{
		KindI: 4, KindJ: 3, KindL: 3, KindO: 2, KindS: 3, KindT: 3, KindZ: 3,
	}
	for kind, size := range tests {
		t.Run(kind.String(), func(t *testing.T) {
			p := NewPiece(kind)
			assert.Equal(t, size, p.Size())
			assert.Len(t, p.Cells(), 4)
			assert.Equal(t, 0, p.Rotation())
		})
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			p := NewPiece(kind)
			original := p.Shape()

			for i := range 4 {
				p.RotateClockwise()
				assert.Len(t, p.Cells(), 4, "rotation %d", i+1)
			}

			assert.True(t, original.Equal(p.Shape()), "shape after four turns")
			assert.Equal(t, 0, p.Rotation())
		})
	}
}

func TestRotateOIsFixedPoint(t *testing.T) {
	p := NewPiece(KindO)
	before := p.Shape()

	p.RotateClockwise()

	assert.True(t, before.Equal(p.Shape()))
	assert.Equal(t, 0, p.Rotation())
}

func TestRotateClockwiseMatrix(t *testing.T) {
	p := NewPiece(KindT)
	p.RotateClockwise()

	expected := newShape([]string{
		".X.",
		".XX",
		".X.",
	})
	assert.True(t, expected.Equal(p.Shape()), "got %v", p.Shape())
	assert.Equal(t, 1, p.Rotation())

	p.RotateClockwise()
	expected = newShape([]string{
		"...",
		"XXX",
		".X.",
	})
	assert.True(t, expected.Equal(p.Shape()), "got %v", p.Shape())
	assert.Equal(t, 2, p.Rotation())
}

func TestPieceTranslateAndCells(t *testing.T) {
	p := NewPiece(KindO)
	p.Translate(3, -1)

	assert.Equal(t, core.Point{X: 3, Y: -1}, p.Position())
	assert.ElementsMatch(t, []core.Point{
		{X: 3, Y: -1}, {X: 4, Y: -1},
		{X: 3, Y: 0}, {X: 4, Y: 0},
	}, p.Cells())
}

func TestPieceBoundingBox(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		turns    int
		expected BoundingBox
	}{
		{"I flat", KindI, 0, BoundingBox{MinX: 0, MinY: 1, MaxX: 3, MaxY: 1, Width: 4, Height: 1}},
		{"I upright", KindI, 1, BoundingBox{MinX: 2, MinY: 0, MaxX: 2, MaxY: 3, Width: 1, Height: 4}},
		{"O", KindO, 0, BoundingBox{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1, Width: 2, Height: 2}},
		{"T", KindT, 0, BoundingBox{MinX: 0, MinY: 0, MaxX: 2, MaxY: 1, Width: 3, Height: 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPiece(tc.kind)
			for range tc.turns {
				p.RotateClockwise()
			}
			assert.Equal(t, tc.expected, p.BoundingBox())
		})
	}
}

func TestPieceCloneIsIndependent(t *testing.T) {
	p := NewPiece(KindL)
	p.Translate(2, 5)
	p.RotateClockwise()

	clone := p.Clone()
	require.Equal(t, p.Cells(), clone.Cells())
	require.Equal(t, p.Rotation(), clone.Rotation())
	require.Equal(t, p.Kind(), clone.Kind())

	clone.Translate(1, 1)
	clone.RotateClockwise()

	assert.Equal(t, core.Point{X: 2, Y: 5}, p.Position())
	assert.Equal(t, 1, p.Rotation())
	assert.NotEqual(t, p.Cells(), clone.Cells())
}

func TestKindColorsAreDistinct(t *testing.T) {
	seen := make(map[core.Color]Kind)
	for _, kind := range Kinds {
		c := kind.Color()
		if other, ok := seen[c]; ok {
			t.Errorf("%s and %s share color %d", kind, other, c)
		}
		seen[c] = kind
	}
}

func TestSequenceSource(t *testing.T) {
	src := NewSequence(KindZ, KindO)
	assert.Equal(t, KindZ, drawKind(src))
	assert.Equal(t, KindO, drawKind(src))
	assert.Equal(t, KindZ, drawKind(src))
}

func TestSeededSourceIsDeterministic(t *testing.T) {
	a, b := NewSeededSource(7), NewSeededSource(7)
	for range 20 {
		assert.Equal(t, drawKind(a), drawKind(b))
	}
}
