package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestPointAdd(t *testing.T) {
	p := Point{X: 3, Y: -1}.Add(2, 4)
	if p != (Point{X: 5, Y: 3}) {
		t.Errorf("Add(2, 4) = %+v, expected {X:5 Y:3}", p)
	}
}
