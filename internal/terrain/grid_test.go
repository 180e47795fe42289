package terrain

import "testing"

func TestStateOrdinals(t *testing.T) {
	if Empty != 0 || Diggable != 1 || Undiggable != 2 {
		t.Fatalf("ordinals changed: empty=%d diggable=%d undiggable=%d", Empty, Diggable, Undiggable)
	}
}

func TestNewGridIsEmpty(t *testing.T) {
	g := NewGrid(4, 3)
	if g.Width() != 4 || g.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", g.Width(), g.Height())
	}
	if got := g.Count(Empty); got != 12 {
		t.Errorf("Count(Empty) = %d, want 12", got)
	}
}

func TestGetOutOfBounds(t *testing.T) {
	g := NewGrid(3, 3)

	tests := []struct {
		x, y int
	}{
		{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {3, 3}, {-5, 10},
	}
	for _, tc := range tests {
		if got := g.Get(tc.x, tc.y); got != Undiggable {
			t.Errorf("Get(%d, %d) = %v, want undiggable", tc.x, tc.y, got)
		}
	}
}

func TestSetOutOfBoundsIsNoop(t *testing.T) {
	g := NewGrid(2, 2)
	before := g.Content()

	g.Set(-1, 0, Diggable)
	g.Set(2, 1, Diggable)
	g.Set(0, 5, Diggable)

	after := g.Content()
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if before.Cells[y][x] != after.Cells[y][x] {
				t.Errorf("cell (%d,%d) changed from %v to %v", x, y, before.Cells[y][x], after.Cells[y][x])
			}
		}
	}
}

func TestDig(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(1, 1, Diggable)
	g.Set(2, 2, Undiggable)

	if !g.Dig(1, 1) {
		t.Fatal("Dig on diggable cell should succeed")
	}
	if got := g.Get(1, 1); got != Empty {
		t.Errorf("after Dig, cell = %v, want empty", got)
	}
	if g.Dig(1, 1) {
		t.Error("second Dig on the same cell should fail")
	}
	if got := g.Get(1, 1); got != Empty {
		t.Errorf("failed Dig mutated cell to %v", got)
	}
	if g.Dig(2, 2) {
		t.Error("Dig on undiggable cell should fail")
	}
	if got := g.Get(2, 2); got != Undiggable {
		t.Errorf("undiggable cell became %v", got)
	}
	if g.Dig(0, 0) {
		t.Error("Dig on empty cell should fail")
	}
	if g.Dig(-1, -1) {
		t.Error("Dig out of bounds should fail")
	}
}

func TestReplaceResizesAndCopies(t *testing.T) {
	g := NewGrid(2, 2)
	content := NewContent(5, 4, Diggable)

	g.Replace(content)
	if g.Width() != 5 || g.Height() != 4 {
		t.Fatalf("size = %dx%d, want 5x4", g.Width(), g.Height())
	}

	// The grid must own its cells.
	content.Cells[0][0] = Undiggable
	if got := g.Get(0, 0); got != Diggable {
		t.Errorf("grid shares storage with replaced content: got %v", got)
	}

	snapshot := g.Content()
	snapshot.Cells[1][1] = Empty
	if got := g.Get(1, 1); got != Diggable {
		t.Errorf("grid shares storage with its snapshot: got %v", got)
	}
}

func TestContentAt(t *testing.T) {
	c := NewContent(2, 2, Empty)
	c.Cells[1][0] = Diggable
	if got := c.At(0, 1); got != Diggable {
		t.Errorf("At(0,1) = %v, want diggable", got)
	}
	if got := c.At(2, 0); got != Undiggable {
		t.Errorf("At(2,0) = %v, want undiggable", got)
	}
}
