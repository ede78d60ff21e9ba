package tetris

import "slices"

// Offset is a kick translation tried during rotation.
type Offset struct {
	DX, DY int
}

type transition struct {
	from, to int
}

// Kick tables in grid coordinates (y grows downward). Order matters: the
// first offset that fits wins.
var (
	kicksJLSTZ = map[transition][]Offset{
		{0, 1}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		{1, 0}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		{1, 2}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		{2, 1}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		{2, 3}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		{3, 2}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{3, 0}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{0, 3}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	}
	kicksI = map[transition][]Offset{
		{0, 1}: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		{1, 0}: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		{1, 2}: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
		{2, 1}: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		{2, 3}: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		{3, 2}: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		{3, 0}: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		{0, 3}: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
	}
	kickIdentity = []Offset{{0, 0}}
)

// Kicks returns the ordered kick offsets for rotating a piece of type t
// from one rotation state to another.
func Kicks(t Type, from, to int) []Offset {
	key := transition{normRotation(from), normRotation(to)}
	var table map[transition][]Offset
	switch t {
	case TypeO:
		return kickIdentity
	case TypeI:
		table = kicksI
	default:
		Lookup(t)
		table = kicksJLSTZ
	}
	if k, ok := table[key]; ok {
		return k
	}
	return kickIdentity
}

// Resolver answers legality questions against a grid and performs the
// moves that pass them. Every operation reduces to CanPlace.
type Resolver struct {
	grid *Grid
}

// NewResolver binds a resolver to g.
func NewResolver(g *Grid) *Resolver {
	return &Resolver{grid: g}
}

// Grid returns the grid the resolver works on.
func (r *Resolver) Grid() *Grid {
	return r.grid
}

// CanPlace reports whether every cell of p is inside the grid and empty.
func (r *Resolver) CanPlace(p Piece) bool {
	for _, c := range p.Cells() {
		if r.grid.IsOccupied(c.X, c.Y) {
			return false
		}
	}
	return true
}

// Move translates p by (dx, dy) if the destination is legal.
func (r *Resolver) Move(p *Piece, dx, dy int) bool {
	candidate := p.Moved(dx, dy)
	if !r.CanPlace(candidate) {
		return false
	}
	*p = candidate
	return true
}

// Rotate turns p a quarter turn, trying kick offsets in table order. The
// piece is updated in one assignment or not at all.
func (r *Resolver) Rotate(p *Piece, clockwise bool) bool {
	from := normRotation(p.Rotation)
	to := (from + 3) % 4
	if clockwise {
		to = (from + 1) % 4
	}
	for _, k := range Kicks(p.Type, from, to) {
		candidate := Piece{Type: p.Type, X: p.X + k.DX, Y: p.Y + k.DY, Rotation: to}
		if r.CanPlace(candidate) {
			*p = candidate
			return true
		}
	}
	return false
}

// dropDistance counts how many rows p can fall before it is blocked.
func (r *Resolver) dropDistance(p Piece) int {
	d := 0
	for r.CanPlace(p.Moved(0, d+1)) {
		d++
	}
	return d
}

// Ghost returns a copy of p moved down as far as it can go.
func (r *Resolver) Ghost(p Piece) Piece {
	return p.Moved(0, r.dropDistance(p))
}

// HardDrop moves p to its ghost position and returns the rows descended.
func (r *Resolver) HardDrop(p *Piece) int {
	d := r.dropDistance(*p)
	p.Y += d
	return d
}

// Grounded reports whether p cannot move down one row.
func (r *Resolver) Grounded(p Piece) bool {
	return !r.CanPlace(p.Moved(0, 1))
}

// ToppedOut reports whether any cell of p lies in the hidden rows.
func (r *Resolver) ToppedOut(p Piece) bool {
	for _, c := range p.Cells() {
		if c.Y < r.grid.hidden {
			return true
		}
	}
	return false
}

// CompletedRows returns the indexes of full rows in ascending order.
func (r *Resolver) CompletedRows() []int {
	var rows []int
	for y := 0; y < r.grid.height; y++ {
		if r.grid.rowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearRows removes the given rows and inserts one empty row at the top for
// each. Rows are removed bottom-up; every removal pulls the rows above it
// down by one, so the remaining indexes are offset by the removals done.
func (r *Resolver) ClearRows(rows []int) {
	sorted := make([]int, 0, len(rows))
	for _, y := range rows {
		if y >= 0 && y < r.grid.height {
			sorted = append(sorted, y)
		}
	}
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	removed := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		r.grid.removeRow(sorted[i] + removed)
		removed++
	}
}
