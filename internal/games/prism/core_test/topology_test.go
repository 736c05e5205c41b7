package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-prism/internal/games/prism/core"
)

func TestRowWidth(t *testing.T) {
	for row := 0; row < 12; row++ {
		expected := 5
		if row%2 == 0 {
			expected = 7
		}
		if got := core.RowWidth(row); got != expected {
			t.Errorf("RowWidth(%d) = %d, expected %d", row, got, expected)
		}
	}
}

func TestOrientationDependsOnlyOnColumn(t *testing.T) {
	for col := 0; col < 7; col++ {
		expected := core.Up
		if col%2 == 1 {
			expected = core.Down
		}
		if got := core.OrientationOf(col); got != expected {
			t.Errorf("OrientationOf(%d) = %v, expected %v", col, got, expected)
		}
	}
}

func TestStartingCoord(t *testing.T) {
	tests := []struct {
		rows     int
		expected core.Coord
	}{
		{2, core.C(2, 3)},
		{3, core.C(2, 3)},
		{4, core.C(2, 3)},
		{5, core.C(2, 3)},
		{6, core.C(4, 3)},
		{10, core.C(6, 3)},
		{11, core.C(6, 3)},
		{12, core.C(6, 3)},
		{13, core.C(6, 3)},
		{14, core.C(8, 3)},
	}

	for _, tc := range tests {
		got := core.StartingCoord(tc.rows)
		if got != tc.expected {
			t.Errorf("StartingCoord(%d) = %v, expected %v", tc.rows, got, tc.expected)
		}
	}
}

func TestStartingCoordInvariant(t *testing.T) {
	for rows := 2; rows < 60; rows++ {
		s := core.StartingCoord(rows)
		if s.Row%2 != 0 {
			t.Errorf("rows=%d: starting row %d is odd", rows, s.Row)
		}
		if s.Col != core.RowWidth(s.Row)/2 {
			t.Errorf("rows=%d: starting col %d, expected %d", rows, s.Col, core.RowWidth(s.Row)/2)
		}
	}
}

func TestNeighbors(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		expected []core.Coord
	}{
		{"up tile even row", 6, 2, []core.Coord{core.C(6, 1), core.C(6, 3), core.C(7, 1)}},
		{"down tile even row", 6, 3, []core.Coord{core.C(6, 2), core.C(6, 4), core.C(5, 2)}},
		{"up tile odd row", 5, 2, []core.Coord{core.C(5, 1), core.C(5, 3), core.C(6, 3)}},
		{"down tile odd row", 5, 1, []core.Coord{core.C(5, 0), core.C(5, 2), core.C(4, 2)}},
		{"corner", 0, 0, []core.Coord{core.C(0, -1), core.C(0, 1), core.C(1, -1)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := core.Neighbors(tc.row, tc.col)
			if len(got) != len(tc.expected) {
				t.Fatalf("Neighbors(%d, %d) = %v, expected %v", tc.row, tc.col, got, tc.expected)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("Neighbors(%d, %d)[%d] = %v, expected %v", tc.row, tc.col, i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestNeighborsSymmetricInBounds(t *testing.T) {
	topo := core.MustTopology(12, core.NeighborsFull)
	g := core.NewGrid(topo)

	for _, c := range g.Coords() {
		for _, n := range core.Neighbors(c.Row, c.Col) {
			if !topo.InBounds(n) {
				continue
			}
			found := false
			for _, back := range core.Neighbors(n.Row, n.Col) {
				if back == c {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%v lists %v as neighbor but not the reverse", c, n)
			}
		}
	}
}

func TestTopologyInBounds(t *testing.T) {
	topo := core.MustTopology(4, core.NeighborsFull)

	tests := []struct {
		c        core.Coord
		expected bool
	}{
		{core.C(0, 0), true},
		{core.C(0, 6), true},
		{core.C(1, 4), true},
		{core.C(1, 5), false}, // odd rows are narrower
		{core.C(3, 4), true},
		{core.C(4, 0), false},
		{core.C(-1, 0), false},
		{core.C(0, -1), false},
		{core.C(0, 7), false},
	}

	for _, tc := range tests {
		if got := topo.InBounds(tc.c); got != tc.expected {
			t.Errorf("InBounds(%v) = %v, expected %v", tc.c, got, tc.expected)
		}
	}
}

func TestNewTopologyRejectsTooFewRows(t *testing.T) {
	for _, rows := range []int{-1, 0, 1} {
		_, err := core.NewTopology(rows, core.NeighborsFull)
		if !errors.Is(err, core.ErrTooFewRows) {
			t.Errorf("NewTopology(%d) error = %v, expected ErrTooFewRows", rows, err)
		}
	}

	if _, err := core.NewTopology(2, core.NeighborsFull); err != nil {
		t.Errorf("NewTopology(2) should succeed: %v", err)
	}
}

func TestTrimmedNeighbors(t *testing.T) {
	topo := core.MustTopology(10, core.NeighborsTrimmed) // center row 6

	tests := []struct {
		name     string
		c        core.Coord
		expected []core.Coord
	}{
		{"upper half drops right", core.C(4, 2), []core.Coord{core.C(4, 1), core.C(5, 1)}},
		{"center row keeps all", core.C(6, 2), []core.Coord{core.C(6, 1), core.C(6, 3), core.C(7, 1)}},
		{"lower half drops left", core.C(8, 3), []core.Coord{core.C(8, 4), core.C(7, 2)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := topo.Neighbors(tc.c)
			if len(got) != len(tc.expected) {
				t.Fatalf("Neighbors(%v) = %v, expected %v", tc.c, got, tc.expected)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("Neighbors(%v)[%d] = %v, expected %v", tc.c, i, got[i], tc.expected[i])
				}
			}
		})
	}

	full := core.MustTopology(10, core.NeighborsFull)
	if got := full.Neighbors(core.C(4, 2)); len(got) != 3 {
		t.Errorf("full mode should keep 3 neighbors, got %v", got)
	}
}

func TestControlCoords(t *testing.T) {
	topo := core.MustTopology(10, core.NeighborsFull)

	ctl := topo.ControlCoords()
	expected := [3]core.Coord{core.C(6, 2), core.C(6, 4), core.C(5, 2)}
	if ctl != expected {
		t.Errorf("ControlCoords() = %v, expected %v", ctl, expected)
	}

	tests := []struct {
		c      core.Coord
		ch     core.Channel
		isCtrl bool
	}{
		{core.C(6, 2), core.ChannelRed, true},
		{core.C(6, 4), core.ChannelBlue, true},
		{core.C(5, 2), core.ChannelGreen, true},
		{core.C(6, 3), 0, false},
		{core.C(0, 0), 0, false},
	}

	for _, tc := range tests {
		ch, ok := topo.ControlChannel(tc.c)
		if ok != tc.isCtrl || (ok && ch != tc.ch) {
			t.Errorf("ControlChannel(%v) = (%v, %v), expected (%v, %v)", tc.c, ch, ok, tc.ch, tc.isCtrl)
		}
		if ok && topo.ControlCoord(ch) != tc.c {
			t.Errorf("ControlCoord(%v) = %v, expected %v", ch, topo.ControlCoord(ch), tc.c)
		}
	}
}
