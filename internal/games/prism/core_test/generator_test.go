package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-prism/internal/games/prism/core"
)

var testSeed = core.RGB(0.3, 0.6, 0.2)

func TestGenerateColorsEveryTile(t *testing.T) {
	modes := []core.NeighborMode{core.NeighborsFull, core.NeighborsTrimmed}

	for _, mode := range modes {
		for rows := 2; rows <= 30; rows++ {
			topo := core.MustTopology(rows, mode)
			g := core.Generate(topo, testSeed)

			if n := g.UnsetCount(); n != 0 {
				t.Errorf("mode=%v rows=%d: %d tiles left unset", mode, rows, n)
			}
			if g.RowCount() != rows {
				t.Errorf("mode=%v rows=%d: RowCount() = %d", mode, rows, g.RowCount())
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	topo := core.MustTopology(14, core.NeighborsFull)

	g1 := core.Generate(topo, testSeed)
	g2 := core.Generate(topo, testSeed)
	if !sameGrid(g1, g2) {
		t.Error("same topology and seed should produce identical grids")
	}

	src1 := core.NewRandSource(42)
	src2 := core.NewRandSource(42)
	a, seedA, err := core.GenerateRows(12, core.NeighborsTrimmed, src1)
	if err != nil {
		t.Fatalf("GenerateRows failed: %v", err)
	}
	b, seedB, err := core.GenerateRows(12, core.NeighborsTrimmed, src2)
	if err != nil {
		t.Fatalf("GenerateRows failed: %v", err)
	}
	if seedA != seedB || !sameGrid(a, b) {
		t.Error("same RNG seed should produce identical grids")
	}
}

func TestGenerateSeedsCenterAndControls(t *testing.T) {
	for _, rows := range []int{3, 4, 10, 17} {
		topo := core.MustTopology(rows, core.NeighborsFull)
		g := core.Generate(topo, testSeed)

		if got := g.Cell(topo.Start()); got != core.Colored(testSeed) {
			t.Errorf("rows=%d: center = %v, expected seed %v", rows, got, testSeed)
		}

		for _, ch := range core.AllChannels() {
			c := topo.ControlCoord(ch)
			expected := core.Colored(core.MarkChannel(testSeed, ch))
			if got := g.Cell(c); got != expected {
				t.Errorf("rows=%d: %v control at %v = %v, expected %v", rows, ch, c, got, expected)
			}
		}
	}
}

func TestGenerateFirstWave(t *testing.T) {
	topo := core.MustTopology(10, core.NeighborsFull)
	g := core.Generate(topo, testSeed)

	red := core.MarkChannel(testSeed, core.ChannelRed)
	green := core.MarkChannel(testSeed, core.ChannelGreen)
	blue := core.MarkChannel(testSeed, core.ChannelBlue)

	tests := []struct {
		c        core.Coord
		expected core.Color
	}{
		{core.C(6, 1), core.Fade(red)},
		{core.C(7, 1), core.Fade(red)},
		{core.C(6, 5), core.Fade(blue)},
		{core.C(7, 3), core.Fade(blue)},
		{core.C(5, 1), core.Fade(green)},
		{core.C(5, 3), core.Fade(green)},
	}

	for _, tc := range tests {
		got, ok := g.ColorAt(tc.c.Row, tc.c.Col)
		if !ok {
			t.Errorf("%v is unset", tc.c)
			continue
		}
		if !colorsClose(got, tc.expected) {
			t.Errorf("%v = %v, expected %v", tc.c, got, tc.expected)
		}
	}
}

func TestGenerateTrimmedBlendSources(t *testing.T) {
	red := core.Fade(core.MarkChannel(testSeed, core.ChannelRed))
	blue := core.Fade(core.MarkChannel(testSeed, core.ChannelBlue))

	full := core.Generate(core.MustTopology(10, core.NeighborsFull), testSeed)
	trimmed := core.Generate(core.MustTopology(10, core.NeighborsTrimmed), testSeed)

	// (7,2) sits between the first red and blue tiles below the center row.
	got, _ := full.ColorAt(7, 2)
	expected := core.FadeCell(core.Blend(core.Colored(red), core.Colored(blue))).Color
	if !colorsClose(got, expected) {
		t.Errorf("full (7,2) = %v, expected %v", got, expected)
	}

	got, _ = trimmed.ColorAt(7, 2)
	expected = core.Fade(blue)
	if !colorsClose(got, expected) {
		t.Errorf("trimmed (7,2) = %v, expected %v", got, expected)
	}

	if sameGrid(full, trimmed) {
		t.Error("trimmed grid should differ from full grid")
	}
}

func TestGenerateAlphaDecays(t *testing.T) {
	topo := core.MustTopology(16, core.NeighborsFull)
	g := core.Generate(topo, testSeed)

	seeded := map[core.Coord]bool{topo.Start(): true}
	for _, c := range topo.ControlCoords() {
		seeded[c] = true
	}

	for _, c := range g.Coords() {
		if seeded[c] {
			continue
		}
		cell := g.Cell(c)
		if cell.Color.A > 0.7+eps {
			t.Errorf("%v alpha = %v, expected at most 0.7", c, cell.Color.A)
		}
		if cell.Color.A <= 0 {
			t.Errorf("%v alpha = %v, expected positive", c, cell.Color.A)
		}
	}
}

func TestGenerateTwoRows(t *testing.T) {
	topo := core.MustTopology(2, core.NeighborsFull)
	g := core.Generate(topo, testSeed)

	// Only the green control lands inside a 2-row grid.
	green := core.MarkChannel(testSeed, core.ChannelGreen)
	if got, ok := g.ColorAt(1, 2); !ok || got != green {
		t.Errorf("(1,2) = %v, expected green mark %v", got, green)
	}
	if g.UnsetCount() != 0 {
		t.Errorf("expected no unset tiles, got %d", g.UnsetCount())
	}
}

func TestGenerateRowsRejectsTooFewRows(t *testing.T) {
	_, _, err := core.GenerateRows(1, core.NeighborsFull, core.NewRandSource(1))
	if !errors.Is(err, core.ErrTooFewRows) {
		t.Errorf("expected ErrTooFewRows, got %v", err)
	}
}

func TestRandomSeedRange(t *testing.T) {
	src := core.NewRandSource(7)
	for i := 0; i < 200; i++ {
		c := src.NextSeed()
		for _, ch := range core.AllChannels() {
			v := c.Channel(ch)
			if v < 0 || v >= 1 {
				t.Fatalf("seed channel %v = %v out of [0, 1)", ch, v)
			}
		}
		if c.A != 1 {
			t.Fatalf("seed alpha = %v, expected 1", c.A)
		}
	}
}

// sameGrid reports whether two grids have the same shape and cells.
func sameGrid(a, b *core.Grid) bool {
	if a.Topology() != b.Topology() {
		return false
	}
	for _, c := range a.Coords() {
		if a.Cell(c) != b.Cell(c) {
			return false
		}
	}
	return true
}

func TestGridClone(t *testing.T) {
	g := core.Generate(core.MustTopology(6, core.NeighborsFull), testSeed)
	clone := g.Clone()
	if !sameGrid(g, clone) {
		t.Error("clone should equal original")
	}
	if g.Size() != clone.Size() {
		t.Errorf("Size() = %d, clone Size() = %d", g.Size(), clone.Size())
	}
}

func TestGridOutOfBoundsReadsUnset(t *testing.T) {
	g := core.Generate(core.MustTopology(4, core.NeighborsFull), testSeed)

	for _, c := range []core.Coord{core.C(-1, 0), core.C(4, 0), core.C(1, 5), core.C(0, 7)} {
		if _, ok := g.ColorAt(c.Row, c.Col); ok {
			t.Errorf("ColorAt%v should report unset", c)
		}
	}
}
