package tetris

// Scorer tracks score, cleared lines, combo and level for one session.
type Scorer struct {
	table     ScoreTable
	falls     []float64
	minFall   float64
	score     int
	highScore int
	lines     int
	combo     int
	level     int
}

// NewScorer creates a scorer at level 1 with the given high score carried
// over from earlier sessions.
func NewScorer(rules Rules, highScore int) *Scorer {
	return &Scorer{
		table:     rules.Score,
		falls:     rules.FallIntervals,
		minFall:   rules.MinFallMs,
		highScore: highScore,
		level:     1,
	}
}

// LinePoints returns the points for a lock clearing n rows at level,
// before the combo bonus. A spin replaces the line table: mini spins pay
// a flat bonus, normal spins pay per row count. A normal spin clearing
// four rows has no entry of its own and keeps the line table value.
func (s *Scorer) LinePoints(n, level int, spin SpinResult) int {
	t := s.table
	var base int
	switch n {
	case 1:
		base = t.Single
	case 2:
		base = t.Double
	case 3:
		base = t.Triple
	case 4:
		base = t.Tetris
	}

	if spin.Spin {
		switch spin.Kind {
		case SpinMini:
			base = t.TSpinMini
		case SpinNormal:
			switch n {
			case 0:
				base = t.TSpin
			case 1:
				base = t.TSpinSingle
			case 2:
				base = t.TSpinDouble
			case 3:
				base = t.TSpinTriple
			}
		}
	}
	return base * level
}

// AddLock scores a lock that cleared n rows and returns the points added.
// The combo bonus uses the combo count before this lock, so the first
// clear of a chain earns none. A lock with no cleared rows resets the
// combo.
func (s *Scorer) AddLock(n int, spin SpinResult) int {
	points := s.LinePoints(n, s.level, spin)
	if n > 0 {
		points += s.table.ComboBonus * s.combo * s.level
		s.lines += n
		s.combo++
	} else {
		s.combo = 0
	}
	s.add(points)
	return points
}

// AddSoftDrop awards soft-drop points for rows descended manually.
func (s *Scorer) AddSoftDrop(rows int) int {
	p := rows * s.table.SoftDrop
	s.add(p)
	return p
}

// AddHardDrop awards hard-drop points for rows descended.
func (s *Scorer) AddHardDrop(rows int) int {
	p := rows * s.table.HardDrop
	s.add(p)
	return p
}

func (s *Scorer) add(points int) {
	if points <= 0 {
		return
	}
	s.score += points
	if s.score > s.highScore {
		s.highScore = s.score
	}
}

// UpdateLevel recomputes the level from the total cleared lines.
func (s *Scorer) UpdateLevel() int {
	s.level = LevelForLines(s.lines, s.table.LinesPerLevel)
	return s.level
}

// LevelForLines returns floor(lines/perLevel)+1.
func LevelForLines(lines, perLevel int) int {
	if perLevel <= 0 {
		perLevel = 10
	}
	return lines/perLevel + 1
}

// FallInterval returns the gravity interval in ms for the current level.
func (s *Scorer) FallInterval() float64 {
	return FallIntervalFor(s.level, s.falls, s.minFall)
}

// FallIntervalFor looks level up in table, falling back to minMs past the
// end of the table.
func FallIntervalFor(level int, table []float64, minMs float64) float64 {
	if level >= 1 && level <= len(table) {
		return table[level-1]
	}
	return minMs
}

// Reset clears everything except the high score.
func (s *Scorer) Reset() {
	s.score = 0
	s.lines = 0
	s.combo = 0
	s.level = 1
}

func (s *Scorer) Score() int { return s.score }
func (s *Scorer) HighScore() int { return s.highScore }
func (s *Scorer) Lines() int { return s.lines }
func (s *Scorer) Combo() int { return s.combo }
func (s *Scorer) Level() int { return s.level }
