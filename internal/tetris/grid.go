package tetris

// Grid is the playing field. Rows 0..hidden-1 are the spawn buffer above
// the visible area. Cells are stored in one flat slice so Clone is a
// single copy with no shared backing storage.
type Grid struct {
	width  int
	height int
	hidden int
	cells  []Cell
}

// NewGrid creates an empty grid of width × (visible+hidden) cells.
func NewGrid(width, visible, hidden int) *Grid {
	if width <= 0 || visible <= 0 || hidden < 0 {
		panic("tetris: invalid grid dimensions")
	}
	h := visible + hidden
	return &Grid{
		width:  width,
		height: h,
		hidden: hidden,
		cells:  make([]Cell, width*h),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the total number of rows, hidden rows included.
func (g *Grid) Height() int {
	return g.height
}

// Hidden returns the number of buffer rows above the visible area.
func (g *Grid) Hidden() int {
	return g.hidden
}

// IsValidPosition reports whether (x, y) lies inside the grid.
func (g *Grid) IsValidPosition(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsOccupied reports whether (x, y) is filled. Out-of-bounds counts as
// occupied, which makes the walls and floor implicit.
func (g *Grid) IsOccupied(x, y int) bool {
	if !g.IsValidPosition(x, y) {
		return true
	}
	return g.cells[y*g.width+x] != Empty
}

// Cell returns the value at (x, y); ok is false outside the grid.
func (g *Grid) Cell(x, y int) (c Cell, ok bool) {
	if !g.IsValidPosition(x, y) {
		return Empty, false
	}
	return g.cells[y*g.width+x], true
}

// SetCell writes v at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) SetCell(x, y int, v Cell) {
	if !g.IsValidPosition(x, y) {
		return
	}
	g.cells[y*g.width+x] = v
}

// AddPiece writes the piece color into each of its cells, skipping any
// cell outside the grid.
func (g *Grid) AddPiece(p Piece) {
	color := p.Color()
	for _, c := range p.Cells() {
		g.SetCell(c.X, c.Y, color)
	}
}

// Row returns a copy of row y, or nil when y is out of range.
func (g *Grid) Row(y int) []Cell {
	if y < 0 || y >= g.height {
		return nil
	}
	row := make([]Cell, g.width)
	copy(row, g.cells[y*g.width:(y+1)*g.width])
	return row
}

// Clear empties every cell.
func (g *Grid) Clear() {
	clear(g.cells)
}

// Clone returns an independent deep copy.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = make([]Cell, len(g.cells))
	copy(c.cells, g.cells)
	return &c
}

// rowFull reports whether every cell in row y is non-empty.
func (g *Grid) rowFull(y int) bool {
	for _, v := range g.cells[y*g.width : (y+1)*g.width] {
		if v == Empty {
			return false
		}
	}
	return true
}

// removeRow deletes row y, shifting rows above it down by one and leaving
// an empty row at the top.
func (g *Grid) removeRow(y int) {
	copy(g.cells[g.width:(y+1)*g.width], g.cells[:y*g.width])
	clear(g.cells[:g.width])
}
