package blockfall

// Snapshot captures the observable session state for determinism testing
// and simulation reports. Uses primitive types only for stable hashing.
type Snapshot struct {
	Tick      uint64
	Status    string
	Score     int
	HighScore int
	Level     int
	Lines     int
	Combo     int
	LockSeq   uint64

	// Active piece: Type, X, Y, Rotation. Type 0 means none.
	Active [4]int
	Held   int
	Queue  []int

	// Board is the full grid, hidden rows first, row-major.
	Board []int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	if s == nil {
		return Snapshot{Tick: g.tick}
	}

	snap := Snapshot{
		Tick:      g.tick,
		Status:    s.Status().String(),
		Score:     s.Score(),
		HighScore: s.HighScore(),
		Level:     s.Level(),
		Lines:     s.Lines(),
		Combo:     s.Combo(),
		LockSeq:   s.LastLock().Seq,
	}

	if p, ok := s.Active(); ok {
		snap.Active = [4]int{int(p.Type), p.X, p.Y, p.Rotation}
	}
	if t, ok := s.Held(); ok {
		snap.Held = int(t)
	}
	for _, t := range s.Queue() {
		snap.Queue = append(snap.Queue, int(t))
	}

	grid := s.Grid()
	snap.Board = make([]int, 0, grid.Width()*grid.Height())
	for y := range grid.Height() {
		for _, c := range grid.Row(y) {
			snap.Board = append(snap.Board, int(c))
		}
	}
	return snap
}

// Filled counts occupied board cells.
func (snap *Snapshot) Filled() int {
	n := 0
	for _, c := range snap.Board {
		if c != 0 {
			n++
		}
	}
	return n
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, r := range snap.Status {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HighScore) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lines)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Combo)     //#nosec G115 -- hash computation
	h = h*31 + snap.LockSeq
	for _, v := range snap.Active {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.Held) //#nosec G115 -- hash computation
	for _, v := range snap.Queue {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.Board {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
