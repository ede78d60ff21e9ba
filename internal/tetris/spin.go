package tetris

// Action is the last successful movement applied to the active piece.
type Action uint8

const (
	ActionNone Action = iota
	ActionMove
	ActionRotate
)

func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionRotate:
		return "rotate"
	default:
		return "none"
	}
}

// SpinKind distinguishes mini spins from full ones.
type SpinKind uint8

const (
	SpinNone SpinKind = iota
	SpinMini
	SpinNormal
)

func (k SpinKind) String() string {
	switch k {
	case SpinMini:
		return "mini"
	case SpinNormal:
		return "normal"
	default:
		return "none"
	}
}

// SpinResult is the classification of a lock.
type SpinResult struct {
	Spin bool
	Kind SpinKind
}

// Corner indexes into the slice returned by spinCorners.
const (
	cornerTopLeft = iota
	cornerTopRight
	cornerBottomLeft
	cornerBottomRight
)

// frontCorners maps a T rotation to the corner pair its point faces.
var frontCorners = [4][2]int{
	{cornerTopLeft, cornerTopRight},       // pointing up
	{cornerTopRight, cornerBottomRight},   // pointing right
	{cornerBottomLeft, cornerBottomRight}, // pointing down
	{cornerTopLeft, cornerBottomLeft},     // pointing left
}

// SpinDetector classifies locks using the three-corner rule. It only
// needs read access to the grid and the last action tag kept by the
// session.
type SpinDetector struct {
	grid       *Grid
	lastAction Action
}

// NewSpinDetector creates a detector reading occupancy from g.
func NewSpinDetector(g *Grid) *SpinDetector {
	return &SpinDetector{grid: g}
}

// SetLastAction records the most recent successful action.
func (d *SpinDetector) SetLastAction(a Action) {
	d.lastAction = a
}

// LastAction returns the recorded action.
func (d *SpinDetector) LastAction() Action {
	return d.lastAction
}

// spinCorners returns the four diagonal neighbours of the T center,
// which sits at (1,1) of the 3×3 box in every rotation.
func spinCorners(p Piece) [4]Point {
	cx, cy := p.X+1, p.Y+1
	return [4]Point{
		cornerTopLeft:     {cx - 1, cy - 1},
		cornerTopRight:    {cx + 1, cy - 1},
		cornerBottomLeft:  {cx - 1, cy + 1},
		cornerBottomRight: {cx + 1, cy + 1},
	}
}

// Detect reports whether locking p now counts as a spin. Only a T piece
// whose last action was a rotation qualifies, and at least three of its
// four corners must be occupied (walls and floor count).
func (d *SpinDetector) Detect(p Piece) SpinResult {
	if p.Type != TypeT || d.lastAction != ActionRotate {
		return SpinResult{}
	}

	corners := spinCorners(p)
	var occupied [4]bool
	count := 0
	for i, c := range corners {
		if d.grid.IsOccupied(c.X, c.Y) {
			occupied[i] = true
			count++
		}
	}
	if count < 3 {
		return SpinResult{}
	}

	front := frontCorners[normRotation(p.Rotation)]
	frontCount := 0
	for _, i := range front {
		if occupied[i] {
			frontCount++
		}
	}
	if frontCount < 2 {
		return SpinResult{Spin: true, Kind: SpinMini}
	}
	return SpinResult{Spin: true, Kind: SpinNormal}
}
