package tetris

import (
	"math/rand"
	"strconv"
)

// Status is the session state machine position.
type Status uint8

const (
	StatusPlaying Status = iota
	StatusPaused
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// LockResult describes the most recent lock so the presentation layer can
// react (banners, effects) without the engine pushing events.
type LockResult struct {
	Seq          uint64 // increments on every lock; 0 means no lock yet
	Piece        Piece
	Rows         []int // cleared row indexes, ascending, before removal
	Spin         SpinResult
	Points       int // line, spin and combo points; drop points excluded
	Combo        int // combo counter after this lock
	HardDropRows int
	ToppedOut    bool
}

// Cleared returns the number of rows removed by the lock.
func (l LockResult) Cleared() int {
	return len(l.Rows)
}

// Session owns one game: grid, randomizer, active and held pieces, timers
// and score. All methods are synchronous and must be called from a single
// goroutine.
type Session struct {
	rules    Rules
	grid     *Grid
	resolver *Resolver
	spin     *SpinDetector
	scorer   *Scorer
	bag      *Randomizer
	prefs    Prefs

	status  Status
	active  *Piece
	held    *Piece
	canHold bool

	lockActive bool
	lockTimer  float64
	lockResets int
	fallTimer  float64

	muted     bool
	savedHigh int
	last      LockResult
}

// NewSession starts a game. rules must validate; rng drives the bag and
// must not be shared. A nil prefs uses an in-memory store.
func NewSession(rules Rules, rng *rand.Rand, prefs Prefs) *Session {
	if err := rules.Validate(); err != nil {
		panic(err.Error())
	}
	if prefs == nil {
		prefs = NewMemoryPrefs()
	}
	grid := NewGrid(rules.Width, rules.Visible, rules.Hidden)
	high := loadInt(prefs, PrefHighScore)
	s := &Session{
		rules:     rules,
		grid:      grid,
		resolver:  NewResolver(grid),
		spin:      NewSpinDetector(grid),
		scorer:    NewScorer(rules, high),
		bag:       NewRandomizer(rng, rules.QueueSize),
		prefs:     prefs,
		muted:     loadBool(prefs, PrefMuted),
		savedHigh: high,
	}
	s.start()
	return s
}

func (s *Session) start() {
	s.status = StatusPlaying
	s.active = nil
	s.held = nil
	s.canHold = true
	s.fallTimer = 0
	s.cancelLockDelay()
	s.last = LockResult{}
	s.spawn()
}

// Reset returns the session to its construction-time state. The high
// score and mute flag survive.
func (s *Session) Reset() {
	s.grid.Clear()
	s.scorer.Reset()
	s.bag.Restart()
	s.start()
}

// spawn pulls the next piece and resets per-piece state. A piece that
// overlaps the stack on arrival ends the game.
func (s *Session) spawn() {
	p := s.bag.Next()
	s.active = &p
	s.canHold = true
	s.cancelLockDelay()
	s.spin.SetLastAction(ActionNone)
	if !s.resolver.CanPlace(p) {
		s.status = StatusGameOver
	}
}

func (s *Session) playable() bool {
	return s.status == StatusPlaying && s.active != nil
}

// MoveLeft shifts the active piece one column left.
func (s *Session) MoveLeft() bool {
	return s.shift(-1)
}

// MoveRight shifts the active piece one column right.
func (s *Session) MoveRight() bool {
	return s.shift(1)
}

func (s *Session) shift(dx int) bool {
	if !s.playable() {
		return false
	}
	if !s.resolver.Move(s.active, dx, 0) {
		return false
	}
	s.spin.SetLastAction(ActionMove)
	s.resetLockDelay()
	return true
}

// MoveDown soft-drops the active piece one row, awarding soft-drop points.
// When the piece is resting on something the lock delay starts instead.
func (s *Session) MoveDown() bool {
	return s.stepDown(true)
}

func (s *Session) stepDown(manual bool) bool {
	if !s.playable() {
		return false
	}
	if !s.resolver.Move(s.active, 0, 1) {
		s.startLockDelay()
		return false
	}
	s.spin.SetLastAction(ActionMove)
	if manual {
		s.scorer.AddSoftDrop(1)
	}
	s.resetLockDelay()
	return true
}

// Rotate turns the active piece using kick resolution.
func (s *Session) Rotate(clockwise bool) bool {
	if !s.playable() {
		return false
	}
	if !s.resolver.Rotate(s.active, clockwise) {
		return false
	}
	s.spin.SetLastAction(ActionRotate)
	s.resetLockDelay()
	return true
}

// HardDrop drops the active piece to the floor and locks it immediately.
// It returns the rows descended.
func (s *Session) HardDrop() int {
	if !s.playable() {
		return 0
	}
	rows := s.resolver.HardDrop(s.active)
	s.scorer.AddHardDrop(rows)
	s.lock(rows)
	return rows
}

// Hold stores the active piece, or swaps it with the held one. Allowed
// once per piece.
func (s *Session) Hold() bool {
	if !s.playable() || !s.canHold {
		return false
	}
	current := s.active.respawned()
	if s.held == nil {
		s.held = &current
		s.spawn()
	} else {
		swapped := s.held.respawned()
		s.active = &swapped
		s.held = &current
		if !s.resolver.CanPlace(swapped) {
			s.status = StatusGameOver
		}
	}
	s.canHold = false
	s.cancelLockDelay()
	s.spin.SetLastAction(ActionNone)
	return true
}

// TogglePause switches between playing and paused. It has no effect after
// game over.
func (s *Session) TogglePause() {
	switch s.status {
	case StatusPlaying:
		s.status = StatusPaused
	case StatusPaused:
		s.status = StatusPlaying
	}
}

// Update advances gravity and the lock delay by dt milliseconds.
func (s *Session) Update(dt float64) {
	if !s.playable() || dt <= 0 {
		return
	}

	s.fallTimer += dt
	if s.fallTimer >= s.scorer.FallInterval() {
		s.fallTimer = 0
		s.stepDown(false)
	}

	if s.lockActive && s.playable() {
		s.lockTimer += dt
		// Expiry always locks, even if the piece was moved off its
		// support in the meantime.
		if s.lockTimer >= s.rules.LockDelayMs {
			s.lock(0)
		}
	}
}

func (s *Session) startLockDelay() {
	if !s.lockActive {
		s.lockActive = true
		s.lockTimer = 0
	}
}

func (s *Session) resetLockDelay() {
	if s.lockActive && s.lockResets < s.rules.MaxLockResets {
		s.lockTimer = 0
		s.lockResets++
	}
}

func (s *Session) cancelLockDelay() {
	s.lockActive = false
	s.lockTimer = 0
	s.lockResets = 0
}

// lock merges the active piece into the grid, scores it and spawns the
// next piece. Topping out ends the game before any scoring.
func (s *Session) lock(hardDropRows int) {
	p := *s.active
	spin := s.spin.Detect(p)
	s.grid.AddPiece(p)

	result := LockResult{
		Seq:          s.last.Seq + 1,
		Piece:        p,
		Spin:         spin,
		HardDropRows: hardDropRows,
	}

	if s.resolver.ToppedOut(p) {
		result.ToppedOut = true
		result.Combo = s.scorer.Combo()
		s.last = result
		s.status = StatusGameOver
		s.persistHighScore()
		return
	}

	rows := s.resolver.CompletedRows()
	result.Rows = rows
	result.Points = s.scorer.AddLock(len(rows), spin)
	result.Combo = s.scorer.Combo()
	if len(rows) > 0 {
		s.resolver.ClearRows(rows)
	}
	s.scorer.UpdateLevel()
	s.last = result
	s.persistHighScore()
	s.spawn()
}

func (s *Session) persistHighScore() {
	high := s.scorer.HighScore()
	if high <= s.savedHigh {
		return
	}
	//nolint:errcheck // storage failures fall back to the in-memory value
	s.prefs.Set(PrefHighScore, strconv.Itoa(high))
	s.savedHigh = high
}

// Muted reports the persisted mute preference.
func (s *Session) Muted() bool {
	return s.muted
}

// SetMuted updates and persists the mute preference.
func (s *Session) SetMuted(m bool) {
	s.muted = m
	//nolint:errcheck // storage failures fall back to the in-memory value
	s.prefs.Set(PrefMuted, strconv.FormatBool(m))
}

// ToggleMute flips the mute preference and returns the new value.
func (s *Session) ToggleMute() bool {
	s.SetMuted(!s.muted)
	return s.muted
}

// SetHighScore raises the high score, e.g. from an external score table.
// Lower values are ignored.
func (s *Session) SetHighScore(n int) {
	if n > s.scorer.highScore {
		s.scorer.highScore = n
		s.persistHighScore()
	}
}

// Status returns the current state.
func (s *Session) Status() Status { return s.status }

// Active returns the active piece.
func (s *Session) Active() (Piece, bool) {
	if s.active == nil {
		return Piece{}, false
	}
	return *s.active, true
}

// Ghost returns where the active piece would land.
func (s *Session) Ghost() (Piece, bool) {
	if s.active == nil {
		return Piece{}, false
	}
	return s.resolver.Ghost(*s.active), true
}

// Held returns the held piece type.
func (s *Session) Held() (Type, bool) {
	if s.held == nil {
		return TypeNone, false
	}
	return s.held.Type, true
}

// Queue returns the upcoming piece types without consuming them.
func (s *Session) Queue() []Type { return s.bag.Peek() }

// Grid exposes the field for rendering. Callers must not mutate it.
func (s *Session) Grid() *Grid { return s.grid }

// Rules returns the rules the session was built with.
func (s *Session) Rules() Rules { return s.rules }

// LastLock returns the most recent lock result.
func (s *Session) LastLock() LockResult { return s.last }

// LastAction returns the movement tag used for spin eligibility.
func (s *Session) LastAction() Action { return s.spin.LastAction() }

func (s *Session) CanHold() bool { return s.canHold }
func (s *Session) LockDelayActive() bool { return s.lockActive }
func (s *Session) LockResets() int { return s.lockResets }
func (s *Session) FallInterval() float64 { return s.scorer.FallInterval() }
func (s *Session) Score() int { return s.scorer.Score() }
func (s *Session) HighScore() int { return s.scorer.HighScore() }
func (s *Session) Level() int { return s.scorer.Level() }
func (s *Session) Lines() int { return s.scorer.Lines() }
func (s *Session) Combo() int { return s.scorer.Combo() }
