// Package prism implements the Prism color guessing game: the player reads
// the gradient around a hidden center tile and dials the three control
// tiles until the guess matches the hidden color.
//
// The puzzle engine lives in the core subpackage. This package adapts it to
// the platform: layout, pointer gestures, keyboard and keypad entry,
// celebration timing and rendering.
package prism

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-prism/internal/config"
	"github.com/vovakirdan/tui-prism/internal/core"
	pcore "github.com/vovakirdan/tui-prism/internal/games/prism/core"
	"github.com/vovakirdan/tui-prism/internal/registry"
)

// Registered mode IDs.
const (
	ModeFull    = "prism"
	ModeTrimmed = "prism_trimmed"
)

const (
	maxScore  = 1000
	hexDigits = 6
)

func init() {
	registry.Register(ModeFull, func() registry.Game { return New() })
	registry.Register(ModeTrimmed, func() registry.Game { return NewTrimmed() })
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied after loading.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// gesture tracks one pointer press until its release.
type gesture struct {
	active   bool
	tile     pcore.Coord
	startY   int
	dragging bool
	channel  pcore.Channel
}

// Game adapts the puzzle engine to the registry.Game interface.
type Game struct {
	id     string
	title  string
	mode   pcore.NeighborMode
	cfg    config.PrismConfig
	pinned bool // cfg was supplied by the caller; Reset does not reload it

	runtime  core.RuntimeConfig
	src      pcore.SeedSource
	machine  *pcore.Machine
	layout   layout
	palette  palette
	tooSmall bool

	cursor  pcore.Coord
	keypad  []rune
	gesture gesture

	celebrateTicks int
	celebrateToken uint64

	state core.GameState
	tick  uint64
}

// New creates a game using the full neighbor rule.
func New() *Game {
	return &Game{id: ModeFull, title: "Prism", mode: pcore.NeighborsFull}
}

// NewTrimmed creates a game using the edge-trimmed neighbor rule.
func NewTrimmed() *Game {
	return &Game{id: ModeTrimmed, title: "Prism (trimmed)", mode: pcore.NeighborsTrimmed}
}

// NewWithConfig creates a game that always uses cfg instead of loading
// configuration files.
func NewWithConfig(mode pcore.NeighborMode, cfg config.PrismConfig) *Game {
	g := New()
	if mode == pcore.NeighborsTrimmed {
		g = NewTrimmed()
	}
	g.cfg = cfg
	g.pinned = true
	return g
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset loads configuration and starts a new puzzle sized for the screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.pinned {
		g.cfg = loadConfig()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = cfg
	g.palette = newPalette(g.cfg.Render)
	g.src = pcore.NewRandSource(cfg.Seed)
	g.tick = 0
	g.build(fitRows(cfg.ScreenH, g.cfg.Grid))
}

func loadConfig() config.PrismConfig {
	cfg, err := config.LoadPrism(configPath)
	if err != nil {
		log.Warn("falling back to default config", "path", configPath, "err", err)
		cfg = config.DefaultPrismConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPrismPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// build replaces the machine with one of the given size. The seed source
// carries over so puzzles keep coming from the same sequence.
func (g *Game) build(rows int) {
	m, err := pcore.NewMachine(pcore.MachineConfig{
		Rows:           rows,
		Mode:           g.mode,
		DragMultiplier: g.cfg.Guess.DragMultiplier,
		CelebrateAbove: g.cfg.Celebration.Threshold,
	}, g.src)
	if err != nil {
		// fitRows never goes below minPlayableRows.
		panic(fmt.Sprintf("prism: cannot build %d-row puzzle: %v", rows, err))
	}
	g.machine = m
	g.layout = newLayout(g.runtime.ScreenW, rows)
	g.tooSmall = !g.layout.fits(g.runtime.ScreenW, g.runtime.ScreenH)
	g.resetInteraction()
	g.state = core.GameState{}
	g.logPuzzle(m.Snapshot())
}

// Resize adapts the layout to a new screen size. The current puzzle is
// kept unless the screen now calls for a different row count.
func (g *Game) Resize(width, height int) {
	if g.machine == nil {
		return
	}
	g.runtime.ScreenW, g.runtime.ScreenH = width, height
	rows := fitRows(height, g.cfg.Grid)
	if rows != g.machine.Topology().Rows() {
		log.Debug("grid resized", "mode", g.id, "rows", rows)
		g.build(rows)
		return
	}
	g.layout = newLayout(width, rows)
	g.tooSmall = !g.layout.fits(width, height)
}

func (g *Game) resetInteraction() {
	g.cursor = g.machine.Topology().Start()
	g.keypad = g.keypad[:0]
	g.gesture = gesture{}
	g.celebrateTicks = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.machine == nil {
		return core.StepResult{State: g.state}
	}
	g.tick++

	var round *core.RoundResult
	keep := func(r *core.RoundResult) {
		if r != nil {
			round = r
		}
	}

	if !g.tooSmall {
		for _, ev := range in.Pointer {
			keep(g.handlePointer(ev))
		}
		keep(g.handleActions(in))
		g.handleRunes(in.Runes)
	}
	g.advanceCelebration()

	return core.StepResult{State: g.state, Round: round}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.state
}

func (g *Game) handlePointer(ev core.PointerEvent) *core.RoundResult {
	switch ev.Kind {
	case core.PointerPress:
		c, ok := g.layout.tileAt(ev.X, ev.Y)
		g.gesture = gesture{active: ok, tile: c, startY: ev.Y}
		if ok {
			g.cursor = c
		}

	case core.PointerMotion:
		if !g.gesture.active {
			return nil
		}
		raw := float64(ev.Y-g.gesture.startY) * g.cfg.Guess.PixelsPerCell
		if !g.gesture.dragging && raw == 0 {
			return nil
		}
		snap, ok := g.machine.DragTile(g.gesture.tile, raw)
		if ok && !snap.Revealed() {
			g.gesture.dragging = true
			g.gesture.channel = snap.DragChannel
			g.keypad = g.keypad[:0]
		}

	case core.PointerRelease:
		gs := g.gesture
		g.gesture = gesture{}
		if gs.dragging {
			g.machine.OnDragEnded(gs.channel)
			return nil
		}
		if !gs.active {
			return nil
		}
		if c, ok := g.layout.tileAt(ev.X, ev.Y); ok && c == gs.tile {
			return g.tap(c)
		}
	}
	return nil
}

func (g *Game) handleActions(in core.InputFrame) *core.RoundResult {
	rows := g.machine.Topology().Rows()
	if in.Has(core.ActionUp) {
		g.cursor = moveCursor(g.cursor, -1, 0, rows)
	}
	if in.Has(core.ActionDown) {
		g.cursor = moveCursor(g.cursor, 1, 0, rows)
	}
	if in.Has(core.ActionLeft) {
		g.cursor = moveCursor(g.cursor, 0, -1, rows)
	}
	if in.Has(core.ActionRight) {
		g.cursor = moveCursor(g.cursor, 0, 1, rows)
	}
	if in.Has(core.ActionIncrease) {
		g.nudge(1)
	}
	if in.Has(core.ActionDecrease) {
		g.nudge(-1)
	}
	if in.Has(core.ActionClear) {
		g.keypad = g.keypad[:0]
	}
	if in.Has(core.ActionBack) && g.machine.Snapshot().Celebrating {
		g.machine.CancelCelebration()
		g.celebrateTicks = 0
	}

	var round *core.RoundResult
	if in.Has(core.ActionConfirm) {
		round = g.tap(g.cursor)
	}
	if in.Has(core.ActionRestart) {
		before := g.machine.Snapshot()
		if !before.Revealed() {
			log.Debug("puzzle abandoned", "mode", g.id, "session", before.SessionID)
		}
		g.apply(g.machine.Reset())
	}
	return round
}

// nudge moves the channel under the cursor by one key step.
func (g *Game) nudge(sign int) {
	ch, ok := g.machine.Topology().ControlChannel(g.cursor)
	if !ok {
		return
	}
	snap := g.machine.Snapshot()
	if snap.Revealed() {
		return
	}
	values := snap.Guess.CommitAll().Values()
	values[ch] += sign * g.cfg.Guess.KeyStep
	g.machine.SetGuess(values)
	g.gesture = gesture{}
}

// handleRunes feeds typed hex digits to the keypad. Six digits replace the
// guess.
func (g *Game) handleRunes(runes []rune) {
	for _, r := range runes {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			continue
		}
		if g.machine.Snapshot().Revealed() {
			g.keypad = g.keypad[:0]
			return
		}
		g.keypad = append(g.keypad, unicode.ToUpper(r))
		if len(g.keypad) < hexDigits {
			continue
		}
		values, err := pcore.ParseHexGuess(string(g.keypad))
		g.keypad = g.keypad[:0]
		if err != nil {
			log.Debug("keypad entry rejected", "err", err)
			continue
		}
		g.machine.SetGuess(values)
		g.gesture = gesture{}
	}
}

func (g *Game) tap(c pcore.Coord) *core.RoundResult {
	before := g.machine.Snapshot()
	snap, cmds := g.machine.OnTap(c.Row, c.Col)
	if !before.Revealed() && snap.SessionID != before.SessionID {
		log.Debug("puzzle abandoned", "mode", g.id, "session", before.SessionID)
	}
	if !before.Revealed() && snap.Revealed() && len(cmds) == 0 {
		// Already scored: the first result is back, nothing to record.
		g.state.GameOver = true
		g.keypad = g.keypad[:0]
		log.Debug("reveal shown again", "mode", g.id, "session", snap.SessionID)
	}
	return g.apply(snap, cmds)
}

// apply reacts to the commands of one machine transition. It returns the
// round result when the transition was a reveal.
func (g *Game) apply(snap pcore.Snapshot, cmds []pcore.Command) *core.RoundResult {
	var round *core.RoundResult
	for _, cmd := range cmds {
		switch cmd {
		case pcore.CmdNewSession:
			g.resetInteraction()
			g.state = core.GameState{}
			g.logPuzzle(snap)
		case pcore.CmdReveal:
			round = g.roundResult(snap)
			g.state = core.GameState{Score: round.Score, GameOver: true}
			g.keypad = g.keypad[:0]
			log.Info("round revealed",
				"mode", g.id,
				"session", snap.SessionID,
				"seed", round.SeedHex,
				"guess", round.GuessHex,
				"accuracy", fmt.Sprintf("%.3f", round.Accuracy),
				"score", round.Score,
			)
		case pcore.CmdCelebrate:
			g.celebrateToken = snap.SessionID
			g.celebrateTicks = g.celebrationTicks()
		case pcore.CmdCancelCelebration:
			g.celebrateTicks = 0
		case pcore.CmdDismiss:
			g.state.GameOver = false
			log.Debug("reveal dismissed", "mode", g.id, "session", snap.SessionID)
		}
	}
	return round
}

func (g *Game) roundResult(snap pcore.Snapshot) *core.RoundResult {
	return &core.RoundResult{
		Rows:     snap.Grid.RowCount(),
		SeedHex:  pcore.HexColor(snap.Seed),
		GuessHex: snap.Guess.Hex(),
		Accuracy: snap.Accuracy,
		DeltaE:   deltaE(snap.Guess.Color(), snap.Seed),
		Score:    scoreFor(snap.Accuracy),
	}
}

func scoreFor(accuracy float64) int {
	return int(math.Round(accuracy * maxScore))
}

func (g *Game) celebrationTicks() int {
	return max(1, g.cfg.Celebration.DurationMs*g.runtime.TickRate/1000)
}

// advanceCelebration runs the celebration timer. Expiry goes through the
// session token, so a timer outliving its puzzle clears nothing.
func (g *Game) advanceCelebration() {
	if g.celebrateTicks == 0 {
		return
	}
	g.celebrateTicks--
	if g.celebrateTicks == 0 {
		g.machine.ClearCelebration(g.celebrateToken)
	}
}

func (g *Game) logPuzzle(snap pcore.Snapshot) {
	log.Debug("puzzle generated",
		"mode", g.id,
		"session", snap.SessionID,
		"rows", snap.Grid.RowCount(),
		"neighbors", g.mode,
	)
}
