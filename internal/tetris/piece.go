// Package tetris implements the rules engine of the falling-block game:
// grid, pieces, randomizer, placement, spin detection, scoring and the
// session state machine. It has no I/O and no dependencies on the platform
// layer, so every rule is deterministic given a seed and an input trace.
package tetris

import "fmt"

// Type identifies one of the seven piece shapes.
type Type uint8

// Piece types. The zero value is not a valid type.
const (
	TypeNone Type = iota
	TypeI
	TypeO
	TypeT
	TypeS
	TypeZ
	TypeJ
	TypeL
)

// AllTypes lists the seven playable types in bag order before shuffling.
var AllTypes = [7]Type{TypeI, TypeO, TypeT, TypeS, TypeZ, TypeJ, TypeL}

// String returns the single-letter name of the type.
func (t Type) String() string {
	switch t {
	case TypeI:
		return "I"
	case TypeO:
		return "O"
	case TypeT:
		return "T"
	case TypeS:
		return "S"
	case TypeZ:
		return "Z"
	case TypeJ:
		return "J"
	case TypeL:
		return "L"
	default:
		return "?"
	}
}

// Cell is a grid cell value. Zero is empty, anything else is the color
// token of the piece that filled it.
type Cell uint8

// Empty is the value of an unoccupied cell.
const Empty Cell = 0

// Shape is a square occupancy matrix indexed [row][col].
type Shape [][]bool

// Definition is the static description of a piece type.
type Definition struct {
	Type   Type
	Color  Cell
	Shapes [4]Shape
}

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Spawn anchor for every new or swapped piece.
const (
	SpawnX = 3
	SpawnY = 0
)

func shape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, ch := range row {
			s[y][x] = ch == '#'
		}
	}
	return s
}

// definitions are indexed by Type. Color tokens equal the type value so a
// grid cell always tells the renderer which piece left it.
var definitions = [...]Definition{
	TypeI: {Type: TypeI, Color: Cell(TypeI), Shapes: [4]Shape{
		shape("....", "####", "....", "...."),
		shape("..#.", "..#.", "..#.", "..#."),
		shape("....", "....", "####", "...."),
		shape(".#..", ".#..", ".#..", ".#.."),
	}},
	TypeO: {Type: TypeO, Color: Cell(TypeO), Shapes: [4]Shape{
		shape(".##", ".##", "..."),
		shape(".##", ".##", "..."),
		shape(".##", ".##", "..."),
		shape(".##", ".##", "..."),
	}},
	TypeT: {Type: TypeT, Color: Cell(TypeT), Shapes: [4]Shape{
		shape(".#.", "###", "..."),
		shape(".#.", ".##", ".#."),
		shape("...", "###", ".#."),
		shape(".#.", "##.", ".#."),
	}},
	TypeS: {Type: TypeS, Color: Cell(TypeS), Shapes: [4]Shape{
		shape(".##", "##.", "..."),
		shape(".#.", ".##", "..#"),
		shape("...", ".##", "##."),
		shape("#..", "##.", ".#."),
	}},
	TypeZ: {Type: TypeZ, Color: Cell(TypeZ), Shapes: [4]Shape{
		shape("##.", ".##", "..."),
		shape("..#", ".##", ".#."),
		shape("...", "##.", ".##"),
		shape(".#.", "##.", "#.."),
	}},
	TypeJ: {Type: TypeJ, Color: Cell(TypeJ), Shapes: [4]Shape{
		shape("#..", "###", "..."),
		shape(".##", ".#.", ".#."),
		shape("...", "###", "..#"),
		shape(".#.", ".#.", "##."),
	}},
	TypeL: {Type: TypeL, Color: Cell(TypeL), Shapes: [4]Shape{
		shape("..#", "###", "..."),
		shape(".#.", ".#.", ".##"),
		shape("...", "###", "#.."),
		shape("##.", ".#.", ".#."),
	}},
}

// Lookup returns the definition for t. An unknown type is a programming
// error and panics.
func Lookup(t Type) *Definition {
	if t == TypeNone || int(t) >= len(definitions) {
		panic(fmt.Sprintf("tetris: unknown piece type %d", t))
	}
	return &definitions[t]
}

// Piece is a positioned instance of a piece type.
type Piece struct {
	Type     Type
	X, Y     int
	Rotation int
}

// NewPiece returns a piece of type t at the spawn anchor, rotation 0.
func NewPiece(t Type) Piece {
	Lookup(t) // fail fast on bad types
	return Piece{Type: t, X: SpawnX, Y: SpawnY}
}

// Color returns the color token written into the grid for this piece.
func (p Piece) Color() Cell {
	return Lookup(p.Type).Color
}

// Shape returns the occupancy matrix for the current rotation.
func (p Piece) Shape() Shape {
	return Lookup(p.Type).Shapes[normRotation(p.Rotation)]
}

// Cells returns the grid cells covered by the piece.
func (p Piece) Cells() []Point {
	s := p.Shape()
	cells := make([]Point, 0, 4)
	for row := range s {
		for col, filled := range s[row] {
			if filled {
				cells = append(cells, Point{X: p.X + col, Y: p.Y + row})
			}
		}
	}
	return cells
}

// Moved returns a copy translated by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// respawned returns the piece back at the spawn anchor in rotation 0.
func (p Piece) respawned() Piece {
	return Piece{Type: p.Type, X: SpawnX, Y: SpawnY}
}

func normRotation(r int) int {
	r %= 4
	if r < 0 {
		r += 4
	}
	return r
}
