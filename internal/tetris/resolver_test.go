package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveBlockedByWallsAndStack(t *testing.T) {
	g := NewGrid(10, 20, 2)
	r := NewResolver(g)

	p := Piece{Type: TypeO, X: -1, Y: 5} // cells in columns 0 and 1
	assert.False(t, r.Move(&p, -1, 0), "left wall")
	assert.Equal(t, -1, p.X)

	assert.True(t, r.Move(&p, 1, 0))
	assert.Equal(t, 0, p.X)

	g.SetCell(3, 6, Cell(TypeI))
	assert.False(t, r.Move(&p, 1, 0), "stack")
	assert.Equal(t, 0, p.X)
}

func TestRotateFullTurnIsIdentity(t *testing.T) {
	g := NewGrid(10, 20, 2)
	r := NewResolver(g)

	for _, typ := range AllTypes {
		t.Run(typ.String(), func(t *testing.T) {
			start := Piece{Type: typ, X: 3, Y: 8}
			p := start
			for i := 0; i < 4; i++ {
				require.True(t, r.Rotate(&p, true))
			}
			assert.Equal(t, start, p)

			require.True(t, r.Rotate(&p, true))
			require.True(t, r.Rotate(&p, false))
			assert.Equal(t, start, p)
		})
	}
}

func TestRotateIsDeterministic(t *testing.T) {
	g := NewGrid(10, 20, 2)
	fillRow(g, 21, 0, 1)
	fillRow(g, 20, 0, 1, 2)
	r := NewResolver(g)

	a := Piece{Type: TypeT, X: 0, Y: 18, Rotation: 1}
	b := a
	okA := r.Rotate(&a, true)
	okB := r.Rotate(&b, true)

	assert.Equal(t, okA, okB)
	assert.Equal(t, a, b)
}

func TestRotateUsesWallKicks(t *testing.T) {
	tests := []struct {
		name      string
		piece     Piece
		clockwise bool
		expected  Piece
	}{
		{
			// Vertical I hugging the left wall: only the third offset fits.
			name:      "I off left wall",
			piece:     Piece{Type: TypeI, X: -2, Y: 5, Rotation: 1},
			clockwise: true,
			expected:  Piece{Type: TypeI, X: 0, Y: 5, Rotation: 2},
		},
		{
			name:      "T off left wall",
			piece:     Piece{Type: TypeT, X: -1, Y: 5, Rotation: 1},
			clockwise: false,
			expected:  Piece{Type: TypeT, X: 0, Y: 5, Rotation: 0},
		},
		{
			name:      "O never moves",
			piece:     Piece{Type: TypeO, X: 3, Y: 5},
			clockwise: true,
			expected:  Piece{Type: TypeO, X: 3, Y: 5, Rotation: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(NewGrid(10, 20, 2))
			p := tt.piece
			require.True(t, r.Rotate(&p, tt.clockwise))
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestRotateFailureLeavesPieceUntouched(t *testing.T) {
	g := NewGrid(10, 20, 2)
	p := Piece{Type: TypeT, X: 4, Y: 10}
	for y := 0; y < g.Height(); y++ {
		fillRow(g, y)
	}
	for _, c := range p.Cells() {
		g.SetCell(c.X, c.Y, Empty)
	}

	r := NewResolver(g)
	before := p
	assert.False(t, r.Rotate(&p, true))
	assert.False(t, r.Rotate(&p, false))
	assert.Equal(t, before, p)
}

func TestKicksTableOrder(t *testing.T) {
	assert.Equal(t, []Offset{{0, 0}}, Kicks(TypeO, 0, 1))
	assert.Equal(t,
		[]Offset{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		Kicks(TypeT, 0, 1))
	assert.Equal(t,
		[]Offset{{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		Kicks(TypeI, 0, 1))
	assert.Equal(t, Kicks(TypeJ, 3, 0), Kicks(TypeL, -1, 4), "rotations are normalized")
	assert.Equal(t, []Offset{{0, 0}}, Kicks(TypeS, 0, 2), "no table entry falls back to identity")
	assert.Panics(t, func() { Kicks(TypeNone, 0, 1) })
}

func TestHardDropAndGhost(t *testing.T) {
	g := NewGrid(10, 20, 2)
	g.SetCell(4, 15, Cell(TypeJ))
	r := NewResolver(g)

	p := Piece{Type: TypeO, X: 3, Y: 0}
	ghost := r.Ghost(p)
	assert.Equal(t, 13, ghost.Y)
	assert.Equal(t, 0, p.Y, "ghost must not move the piece")

	rows := r.HardDrop(&p)
	assert.Equal(t, 13, rows)
	assert.Equal(t, ghost, p)
	assert.True(t, r.Grounded(p))
	assert.Equal(t, 0, r.HardDrop(&p))
}

func TestToppedOut(t *testing.T) {
	r := NewResolver(NewGrid(10, 20, 2))

	assert.True(t, r.ToppedOut(Piece{Type: TypeO, X: 3, Y: 0}))
	assert.True(t, r.ToppedOut(Piece{Type: TypeO, X: 3, Y: 1}))
	assert.False(t, r.ToppedOut(Piece{Type: TypeO, X: 3, Y: 2}))
}

func TestCompletedRowsAscending(t *testing.T) {
	g := NewGrid(10, 20, 2)
	fillRow(g, 21)
	fillRow(g, 12)
	fillRow(g, 15, 3)
	fillRow(g, 18)

	assert.Equal(t, []int{12, 18, 21}, NewResolver(g).CompletedRows())
}

func TestClearRows(t *testing.T) {
	t.Run("single row shifts everything above", func(t *testing.T) {
		g := NewGrid(10, 20, 2)
		fillRow(g, 21)
		g.SetCell(0, 20, Cell(TypeT))
		g.SetCell(9, 0, Cell(TypeI))
		r := NewResolver(g)

		r.ClearRows([]int{21})

		assert.True(t, g.IsOccupied(0, 21))
		assert.False(t, g.IsOccupied(0, 20))
		assert.True(t, g.IsOccupied(9, 1))
		assert.Equal(t, make([]Cell, 10), g.Row(0))
		assert.Empty(t, r.CompletedRows())
	})

	t.Run("non adjacent rows", func(t *testing.T) {
		g := NewGrid(10, 20, 2)
		fillRow(g, 21)
		fillRow(g, 10)
		g.SetCell(1, 15, Cell(TypeS)) // between the two cleared rows
		g.SetCell(2, 5, Cell(TypeZ))  // above both
		r := NewResolver(g)

		r.ClearRows([]int{10, 21})

		assert.True(t, g.IsOccupied(1, 16))
		assert.True(t, g.IsOccupied(2, 7))
		assert.Empty(t, r.CompletedRows())
		count := 0
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				if g.IsOccupied(x, y) {
					count++
				}
			}
		}
		assert.Equal(t, 2, count)
	})

	t.Run("every row", func(t *testing.T) {
		g := NewGrid(10, 20, 2)
		for y := 0; y < g.Height(); y++ {
			fillRow(g, y)
		}
		r := NewResolver(g)

		r.ClearRows(r.CompletedRows())

		for y := 0; y < g.Height(); y++ {
			assert.Equal(t, make([]Cell, 10), g.Row(y), "row %d", y)
		}
	})

	t.Run("duplicates and out of range ignored", func(t *testing.T) {
		g := NewGrid(10, 20, 2)
		fillRow(g, 21)
		fillRow(g, 20, 5)
		r := NewResolver(g)

		r.ClearRows([]int{21, 21, -1, 40})

		assert.False(t, g.IsOccupied(5, 21))
		assert.True(t, g.IsOccupied(4, 21))
		assert.False(t, g.IsOccupied(4, 20))
	})

	t.Run("clearing completed rows twice is a no-op", func(t *testing.T) {
		g := NewGrid(10, 20, 2)
		fillRow(g, 21)
		fillRow(g, 20, 2)
		r := NewResolver(g)

		r.ClearRows(r.CompletedRows())
		snapshot := g.Clone()
		r.ClearRows(r.CompletedRows())

		for y := 0; y < g.Height(); y++ {
			assert.Equal(t, snapshot.Row(y), g.Row(y))
		}
	})
}
