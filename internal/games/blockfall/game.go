// Package blockfall adapts the tetris engine to the arcade game interface:
// it turns input frames into session commands, fixed ticks into elapsed
// milliseconds, and draws the session into a core.Screen.
package blockfall

import (
	"math/rand"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// GameID is the registry and score table identifier.
const GameID = "blockfall"

// bannerMs is how long a clear label stays on screen.
const bannerMs = 1500

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names reset to
// the preset from the config file.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game implements registry.Game on top of a tetris.Session.
type Game struct {
	session *tetris.Session
	rules   tetris.Rules
	// fixedRules skips config loading on Reset.
	fixedRules bool
	prefs      tetris.Prefs

	runtime core.RuntimeConfig
	tickMs  float64
	tick    uint64
	lastSeq uint64

	banner      string
	bannerColor core.Color
	bannerTicks int
}

// New creates a game that loads its rules from the config search path on
// every Reset.
func New() *Game {
	return &Game{}
}

// NewWithRules creates a game with explicit rules, bypassing config files.
func NewWithRules(rules tetris.Rules) *Game {
	return &Game{rules: rules, fixedRules: true}
}

// SetPrefs sets the preference store used by the next Reset. nil means an
// in-memory store.
func (g *Game) SetPrefs(p tetris.Prefs) {
	g.prefs = p
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Blockfall"
}

// Reset starts a fresh session. The random source is seeded from the
// runtime config so equal seeds replay identically.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.tickMs = runtime.TickMs()

	if !g.fixedRules {
		rules, err := config.LoadRules(configPath, difficultyPreset)
		if err != nil {
			rules = tetris.DefaultRules()
		}
		g.rules = rules
	}
	if g.rules.Validate() != nil {
		g.rules = tetris.DefaultRules()
	}

	g.session = tetris.NewSession(g.rules, rand.New(rand.NewSource(runtime.Seed)), g.prefs)
	g.tick = 0
	g.lastSeq = 0
	g.clearBanner()
}

// Session exposes the engine for callers that need more than GameState.
func (g *Game) Session() *tetris.Session {
	return g.session
}

// Step applies one frame of input and advances the clock by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	s := g.session

	if in.Has(core.ActionMute) {
		s.ToggleMute()
	}

	if in.Has(core.ActionRestart) && s.Status() == tetris.StatusGameOver {
		s.Reset()
		g.lastSeq = 0
		g.clearBanner()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		s.TogglePause()
	}
	if s.Status() != tetris.StatusPlaying {
		return core.StepResult{State: g.State()}
	}

	// Gameplay actions run in arrival order so the last one decides
	// spin eligibility.
	for _, a := range in.Actions {
		if s.Status() != tetris.StatusPlaying {
			break
		}
		switch a {
		case core.ActionHold:
			s.Hold()
		case core.ActionLeft:
			s.MoveLeft()
		case core.ActionRight:
			s.MoveRight()
		case core.ActionRotateCW:
			s.Rotate(true)
		case core.ActionRotateCCW:
			s.Rotate(false)
		case core.ActionDown:
			s.MoveDown()
		case core.ActionHardDrop:
			s.HardDrop()
		}
	}

	s.Update(g.tickMs)

	if g.bannerTicks > 0 {
		g.bannerTicks--
	}
	locked := false
	if last := s.LastLock(); last.Seq != g.lastSeq {
		g.lastSeq = last.Seq
		locked = true
		if label, color := ClearLabel(last); label != "" {
			g.banner = label
			g.bannerColor = color
			g.bannerTicks = int(bannerMs / g.tickMs)
		}
	}

	return core.StepResult{State: g.State(), Locked: locked}
}

func (g *Game) clearBanner() {
	g.banner = ""
	g.bannerTicks = 0
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Level:    g.session.Level(),
		Lines:    g.session.Lines(),
		GameOver: g.session.Status() == tetris.StatusGameOver,
		Paused:   g.session.Status() == tetris.StatusPaused,
	}
}
