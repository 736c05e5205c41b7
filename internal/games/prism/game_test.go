package prism

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-prism/internal/config"
	"github.com/vovakirdan/tui-prism/internal/core"
	pcore "github.com/vovakirdan/tui-prism/internal/games/prism/core"
	"github.com/vovakirdan/tui-prism/internal/registry"
)

func testConfig() config.PrismConfig {
	cfg := config.DefaultPrismConfig()
	cfg.Grid.Rows = 10
	cfg.Guess.DragMultiplier = 0.5
	cfg.Celebration.DurationMs = 100 // 3 ticks at 30 fps
	return cfg
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 30, Seed: 42}
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewWithConfig(pcore.NeighborsFull, testConfig())
	g.Reset(testRuntime())
	return g
}

func click(g *Game, c pcore.Coord) core.StepResult {
	r := g.layout.tileRect(c)
	in := core.NewInputFrame()
	in.AddPointer(core.PointerPress, r.X+1, r.Y)
	in.AddPointer(core.PointerRelease, r.X+1, r.Y)
	return g.Step(in)
}

func act(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func typeRunes(g *Game, s string) core.StepResult {
	in := core.NewInputFrame()
	for _, r := range s {
		in.AddRune(r)
	}
	return g.Step(in)
}

func center(g *Game) pcore.Coord {
	return g.machine.Topology().Start()
}

func control(g *Game, ch pcore.Channel) pcore.Coord {
	return g.machine.Topology().ControlCoord(ch)
}

// guessSeed types the hidden color on the keypad.
func guessSeed(t *testing.T, g *Game) {
	t.Helper()
	typeRunes(g, pcore.HexColor(g.Snapshot().Seed))
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{ModeFull, ModeTrimmed} {
		if !registry.Exists(id) {
			t.Fatalf("mode %q not registered", id)
		}
		game, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if game.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, game.ID())
		}
	}
}

func TestResetStartsIdlePuzzle(t *testing.T) {
	g := newTestGame(t)
	s := g.Snapshot()

	if s.Rows != 10 {
		t.Errorf("rows = %d, expected 10", s.Rows)
	}
	if s.SessionID != 1 || s.Phase != pcore.PhaseIdle {
		t.Errorf("session = %d phase = %v, expected 1 idle", s.SessionID, s.Phase)
	}
	if s.Guess != [3]int{255, 255, 255} {
		t.Errorf("guess = %v, expected white", s.Guess)
	}
	if s.Cursor != center(g) {
		t.Errorf("cursor = %v, expected center %v", s.Cursor, center(g))
	}
	if s.GameOver || s.TooSmall {
		t.Errorf("unexpected state: %+v", s)
	}
}

func TestSameSeedSamePuzzle(t *testing.T) {
	a, b := newTestGame(t), newTestGame(t)
	if a.Snapshot().Seed != b.Snapshot().Seed {
		t.Error("same runtime seed produced different puzzles")
	}
}

func TestTapCenterRevealsThenStartsNewPuzzle(t *testing.T) {
	g := newTestGame(t)

	res := click(g, center(g))
	if res.Round == nil {
		t.Fatal("expected a round result on reveal")
	}
	s := g.Snapshot()
	if s.Phase != pcore.PhaseRevealed || !res.State.GameOver {
		t.Fatalf("phase = %v, GameOver = %v, expected revealed", s.Phase, res.State.GameOver)
	}
	if res.Round.GuessHex != "FFFFFF" {
		t.Errorf("guess hex = %q, expected FFFFFF", res.Round.GuessHex)
	}
	if res.Round.SeedHex != pcore.HexColor(s.Seed) {
		t.Errorf("seed hex = %q", res.Round.SeedHex)
	}
	if res.Round.Rows != 10 || res.Round.Score != scoreFor(s.Accuracy) || res.State.Score != res.Round.Score {
		t.Errorf("round = %+v, state = %+v", res.Round, res.State)
	}

	if again := g.Step(core.NewInputFrame()); again.Round != nil {
		t.Error("round result must only be reported on the revealing tick")
	}

	res = click(g, center(g))
	s = g.Snapshot()
	if s.SessionID != 2 || s.Phase != pcore.PhaseIdle || res.State.GameOver {
		t.Errorf("expected fresh idle session 2, got %+v", s)
	}
	if s.Guess != [3]int{255, 255, 255} {
		t.Errorf("guess = %v, expected reset to white", s.Guess)
	}
}

func TestTapOtherTile(t *testing.T) {
	g := newTestGame(t)
	corner := pcore.C(0, 0)

	click(g, corner)
	if s := g.Snapshot(); s.SessionID != 2 || s.Phase != pcore.PhaseIdle {
		t.Fatalf("tap before reveal should start a new puzzle, got %+v", s)
	}

	click(g, center(g))
	score := g.State().Score

	click(g, corner)
	s := g.Snapshot()
	if s.SessionID != 2 {
		t.Errorf("dismiss must keep the puzzle, session = %d", s.SessionID)
	}
	if s.Phase != pcore.PhaseIdle || s.GameOver {
		t.Errorf("dismiss should return to idle, got %+v", s)
	}
	if s.Score != score {
		t.Errorf("dismiss changed score from %d to %d", score, s.Score)
	}
}

func TestDismissedRoundIsNotScoredAgain(t *testing.T) {
	g := newTestGame(t)

	first := click(g, center(g))
	if first.Round == nil {
		t.Fatal("center tap should reveal")
	}
	click(g, pcore.C(0, 0))

	// The answer is on screen now; typing it must not earn a second round.
	guessSeed(t, g)
	res := click(g, center(g))
	if res.Round != nil {
		t.Fatalf("session scored twice: %+v then %+v", *first.Round, *res.Round)
	}
	s := g.Snapshot()
	if s.SessionID != 1 || !s.GameOver || s.Phase != pcore.PhaseRevealed {
		t.Errorf("expected the first result shown again, got %+v", s)
	}
	if s.Score != first.Round.Score || hexOf(s.Guess) != first.Round.GuessHex {
		t.Errorf("shown result = score %d guess %s, expected %d %s",
			s.Score, hexOf(s.Guess), first.Round.Score, first.Round.GuessHex)
	}
	if len(s.Keypad) != 0 {
		t.Errorf("keypad = %q, expected empty", s.Keypad)
	}

	click(g, center(g))
	if s := g.Snapshot(); s.SessionID != 2 || s.GameOver {
		t.Errorf("next tap should start a new puzzle, got %+v", s)
	}
}

func TestTapControlTileDoesNothing(t *testing.T) {
	g := newTestGame(t)
	for _, ch := range pcore.AllChannels() {
		res := click(g, control(g, ch))
		if res.Round != nil {
			t.Errorf("%v control tap revealed", ch)
		}
	}
	if s := g.Snapshot(); s.SessionID != 1 || s.Phase != pcore.PhaseIdle {
		t.Errorf("control taps changed the puzzle: %+v", s)
	}
}

func TestDragControlTile(t *testing.T) {
	g := newTestGame(t)
	r := g.layout.tileRect(control(g, pcore.ChannelRed))

	in := core.NewInputFrame()
	in.AddPointer(core.PointerPress, r.X+1, r.Y)
	in.AddPointer(core.PointerMotion, r.X+1, r.Y+2) // 2 lines down = 32 px
	g.Step(in)

	s := g.Snapshot()
	if s.Phase != pcore.PhaseDragging {
		t.Fatalf("phase = %v, expected dragging", s.Phase)
	}
	// 255 - 0.5*32 = 239 = EF
	if s.LiveHex != "EFFFFF" {
		t.Errorf("live hex = %q, expected EFFFFF", s.LiveHex)
	}
	if s.Guess[pcore.ChannelRed] != 255 {
		t.Errorf("drag must not commit before release, red = %d", s.Guess[pcore.ChannelRed])
	}

	in = core.NewInputFrame()
	in.AddPointer(core.PointerRelease, r.X+1, r.Y+2)
	res := g.Step(in)

	s = g.Snapshot()
	if s.Phase != pcore.PhaseIdle || s.Guess != [3]int{239, 255, 255} {
		t.Errorf("after release: phase %v guess %v", s.Phase, s.Guess)
	}
	if res.Round != nil {
		t.Error("a drag release must not count as a tap")
	}
}

func TestDragUpwardIncreases(t *testing.T) {
	g := newTestGame(t)
	typeRunes(g, "808080")
	r := g.layout.tileRect(control(g, pcore.ChannelGreen))

	in := core.NewInputFrame()
	in.AddPointer(core.PointerPress, r.X+1, r.Y+1)
	in.AddPointer(core.PointerMotion, r.X+1, r.Y)
	in.AddPointer(core.PointerRelease, r.X+1, r.Y)
	g.Step(in)

	// 128 + 0.5*16 = 136
	if got := g.Snapshot().Guess[pcore.ChannelGreen]; got != 136 {
		t.Errorf("green = %d, expected 136", got)
	}
}

func TestDragNonControlIsIgnored(t *testing.T) {
	g := newTestGame(t)
	r := g.layout.tileRect(pcore.C(0, 0))

	in := core.NewInputFrame()
	in.AddPointer(core.PointerPress, r.X+1, r.Y)
	in.AddPointer(core.PointerMotion, r.X+1, r.Y+4)
	in.AddPointer(core.PointerRelease, r.X+1, r.Y+4)
	g.Step(in)

	s := g.Snapshot()
	if s.Guess != [3]int{255, 255, 255} || s.SessionID != 1 {
		t.Errorf("drag off a control changed state: %+v", s)
	}
}

func TestKeyboardNudge(t *testing.T) {
	g := newTestGame(t)

	act(g, core.ActionLeft)
	if g.Snapshot().Cursor != control(g, pcore.ChannelRed) {
		t.Fatalf("cursor = %v, expected red control", g.Snapshot().Cursor)
	}
	act(g, core.ActionDecrease)
	act(g, core.ActionDecrease)
	if got := g.Snapshot().Guess; got != [3]int{239, 255, 255} {
		t.Errorf("guess = %v, expected red lowered by two key steps", got)
	}

	for i := 0; i < 3; i++ {
		act(g, core.ActionIncrease)
	}
	if got := g.Snapshot().Guess; got != [3]int{255, 255, 255} {
		t.Errorf("guess = %v, expected clamp at 255", got)
	}

	act(g, core.ActionUp) // (5,1), beside the green control
	act(g, core.ActionDecrease)
	if got := g.Snapshot().Guess; got != [3]int{255, 255, 255} {
		t.Errorf("nudge off a control tile changed guess to %v", got)
	}
}

func TestKeyboardNavigatesToGreenControl(t *testing.T) {
	g := newTestGame(t)
	act(g, core.ActionUp)
	if got := g.Snapshot().Cursor; got != control(g, pcore.ChannelGreen) {
		t.Errorf("cursor = %v, expected green control", got)
	}
}

func TestKeypadEntry(t *testing.T) {
	g := newTestGame(t)

	typeRunes(g, "1a")
	if got := g.Snapshot().Keypad; got != "1A" {
		t.Errorf("keypad = %q, expected 1A", got)
	}
	typeRunes(g, "zq!")
	if got := g.Snapshot().Keypad; got != "1A" {
		t.Errorf("non-hex runes changed keypad to %q", got)
	}

	act(g, core.ActionClear)
	if got := g.Snapshot().Keypad; got != "" {
		t.Errorf("keypad = %q after clear", got)
	}

	typeRunes(g, "10203")
	typeRunes(g, "0")
	s := g.Snapshot()
	if s.Keypad != "" || s.Guess != [3]int{0x10, 0x20, 0x30} {
		t.Errorf("keypad %q guess %v, expected committed 102030", s.Keypad, s.Guess)
	}
}

func TestKeypadIgnoredWhileRevealed(t *testing.T) {
	g := newTestGame(t)
	act(g, core.ActionConfirm)
	typeRunes(g, "000000")

	s := g.Snapshot()
	if s.Guess != [3]int{255, 255, 255} || s.Keypad != "" {
		t.Errorf("revealed puzzle accepted keypad input: %+v", s)
	}
}

func TestPerfectGuessCelebratesThenExpires(t *testing.T) {
	g := newTestGame(t)
	guessSeed(t, g)

	res := act(g, core.ActionConfirm)
	if res.Round == nil || res.Round.Accuracy <= 0.9 {
		t.Fatalf("expected a high scoring reveal, got %+v", res.Round)
	}
	if res.Round.DeltaE > 2 {
		t.Errorf("delta E = %v, expected a near match", res.Round.DeltaE)
	}
	if !g.Snapshot().Celebrating {
		t.Fatal("expected celebration after a near perfect guess")
	}

	g.Step(core.NewInputFrame())
	if !g.Snapshot().Celebrating {
		t.Fatal("celebration ended early")
	}
	g.Step(core.NewInputFrame())
	if g.Snapshot().Celebrating {
		t.Error("celebration should end after its duration")
	}
	if !g.State().GameOver {
		t.Error("celebration expiry must not leave the revealed state")
	}
}

func TestPoorGuessDoesNotCelebrate(t *testing.T) {
	g := newTestGame(t)
	seed := g.Snapshot().Seed
	// Push every channel to the far end from the seed.
	var far [3]int
	for _, ch := range pcore.AllChannels() {
		if seed.Channel(ch) < 0.5 {
			far[ch] = 255
		}
	}
	typeRunes(g, strings.ToLower(hexOf(far)))

	act(g, core.ActionConfirm)
	if g.Snapshot().Celebrating {
		t.Errorf("accuracy %v should not celebrate", g.Snapshot().Accuracy)
	}
}

func hexOf(v [3]int) string {
	return strings.TrimPrefix(string(core.HexColor(v[0], v[1], v[2])), "#")
}

func TestRestartCancelsCelebration(t *testing.T) {
	g := newTestGame(t)
	guessSeed(t, g)
	act(g, core.ActionConfirm)
	if !g.Snapshot().Celebrating {
		t.Fatal("expected celebration")
	}

	res := act(g, core.ActionRestart)
	s := g.Snapshot()
	if s.Celebrating || g.celebrateTicks != 0 {
		t.Error("restart must cancel the celebration")
	}
	if s.SessionID != 2 || res.State.GameOver || res.State.Score != 0 {
		t.Errorf("restart should start a fresh puzzle, got %+v", s)
	}
}

func TestEscapeCancelsCelebration(t *testing.T) {
	g := newTestGame(t)
	guessSeed(t, g)
	act(g, core.ActionConfirm)

	act(g, core.ActionBack)
	s := g.Snapshot()
	if s.Celebrating {
		t.Error("escape should cancel the celebration")
	}
	if s.Phase != pcore.PhaseRevealed {
		t.Errorf("escape should keep the reveal, phase = %v", s.Phase)
	}
}

func TestResizeKeepsPuzzle(t *testing.T) {
	g := newTestGame(t)
	typeRunes(g, "123456")

	g.Resize(120, 50)
	s := g.Snapshot()
	if s.SessionID != 1 || s.Guess != [3]int{0x12, 0x34, 0x56} {
		t.Errorf("resize lost the puzzle: %+v", s)
	}
	if g.layout.originX != (120-gridWidth())/2 {
		t.Errorf("originX = %d, layout not recentered", g.layout.originX)
	}

	g.Resize(30, 10)
	if !g.Snapshot().TooSmall {
		t.Fatal("expected too small")
	}
	act(g, core.ActionConfirm)
	if g.Snapshot().Phase == pcore.PhaseRevealed {
		t.Error("input must be ignored while the window is too small")
	}
}

func TestResizeRefitsRows(t *testing.T) {
	cfg := testConfig()
	cfg.Grid.Rows = 0
	g := NewWithConfig(pcore.NeighborsFull, cfg)
	rt := testRuntime()
	rt.ScreenH = 24
	g.Reset(rt)

	if got := g.Snapshot().Rows; got != 9 {
		t.Fatalf("rows = %d, expected 9", got)
	}
	g.Resize(80, 30)
	if got := g.Snapshot().Rows; got != 12 {
		t.Errorf("rows = %d after resize, expected 12", got)
	}
}

func TestTrimmedModeBuildsFullGrid(t *testing.T) {
	g := NewWithConfig(pcore.NeighborsTrimmed, testConfig())
	g.Reset(testRuntime())

	if g.ID() != ModeTrimmed {
		t.Errorf("ID() = %q", g.ID())
	}
	if n := g.machine.Snapshot().Grid.UnsetCount(); n != 0 {
		t.Errorf("%d tiles left uncolored", n)
	}
}

func TestRenderHidesCenterUntilReveal(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 40)

	g.Render(screen)
	c := center(g)
	r := g.layout.tileRect(c)
	// The center column is odd, so its wide row is the top one.
	if got := screen.GetCell(r.X+1, r.Y).Rune; got != '?' {
		t.Errorf("center label = %q, expected '?'", got)
	}
	red := g.layout.tileRect(control(g, pcore.ChannelRed))
	if got := screen.GetCell(red.X+1, red.Y+1).Rune; got != 'R' {
		t.Errorf("red control label = %q, expected 'R'", got)
	}
	if !strings.Contains(screen.Row(1), "#FFFFFF") {
		t.Errorf("readout row = %q, expected #FFFFFF", screen.Row(1))
	}

	act(g, core.ActionConfirm)
	g.Render(screen)
	cell := screen.GetCell(r.X+1, r.Y)
	if cell.Rune == '?' {
		t.Error("center still hidden after reveal")
	}
	if cell.FG != g.palette.tile(g.Snapshot().Seed) {
		t.Errorf("center color = %q, expected the seed", cell.FG)
	}
	if !strings.Contains(screen.String(), "answer") {
		t.Error("footer should show the answer after reveal")
	}
}

func TestRenderCursorAndKeypad(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 40)

	typeRunes(g, "ab")
	g.Render(screen)
	if !strings.Contains(screen.Row(1), "#AB____") {
		t.Errorf("readout row = %q, expected keypad buffer", screen.Row(1))
	}

	r := g.layout.tileRect(g.Snapshot().Cursor)
	// Center points down, so its narrow row is the bottom one.
	if got := screen.GetCell(r.X, r.Y+1).BG; got != core.ColorAccent {
		t.Errorf("cursor corner background = %q, expected accent", got)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := NewWithConfig(pcore.NeighborsFull, testConfig())
	rt := testRuntime()
	rt.ScreenW, rt.ScreenH = 20, 10
	g.Reset(rt)

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too small message, got:\n%s", screen.String())
	}
}
