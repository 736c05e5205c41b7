package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-prism/internal/games/prism/core"
)

func TestNewGuess(t *testing.T) {
	g := core.NewGuess(0)

	if g.Multiplier() != core.DefaultDragMultiplier {
		t.Errorf("Multiplier() = %v, expected default %v", g.Multiplier(), core.DefaultDragMultiplier)
	}
	if g.Hex() != "FFFFFF" {
		t.Errorf("Hex() = %q, expected FFFFFF", g.Hex())
	}
	if g.Pending() {
		t.Error("new guess should have no pending delta")
	}
}

func TestGuessDragDoesNotCommit(t *testing.T) {
	g := core.NewGuess(0.5).WithDelta(core.ChannelRed, -80)

	if got := g.LiveHex(); got != "D7FFFF" {
		t.Errorf("LiveHex() = %q, expected D7FFFF", got)
	}
	if got := g.Hex(); got != "FFFFFF" {
		t.Errorf("Hex() = %q, expected FFFFFF while dragging", got)
	}
	if !g.Pending() {
		t.Error("expected pending delta")
	}

	g = g.Commit(core.ChannelRed)
	if got := g.Hex(); got != "D7FFFF" {
		t.Errorf("after commit Hex() = %q, expected D7FFFF", got)
	}
	if g.Pending() {
		t.Error("commit should clear the delta")
	}
}

func TestGuessClamps(t *testing.T) {
	g := core.NewGuess(0.5)

	g = g.WithDelta(core.ChannelGreen, 1000).Commit(core.ChannelGreen)
	if got := g.Committed(core.ChannelGreen); got != 255 {
		t.Errorf("green = %v, expected clamp to 255", got)
	}

	g = g.WithDelta(core.ChannelBlue, -1000).Commit(core.ChannelBlue)
	if got := g.Committed(core.ChannelBlue); got != 0 {
		t.Errorf("blue = %v, expected clamp to 0", got)
	}

	g = g.WithValues(-5, 300, 12.9)
	if got := g.Values(); got != [3]int{0, 255, 12} {
		t.Errorf("Values() = %v, expected [0 255 12]", got)
	}
}

func TestGuessCommitAll(t *testing.T) {
	g := core.NewGuess(0.5).
		WithDelta(core.ChannelRed, -10).
		WithDelta(core.ChannelBlue, -20).
		CommitAll()

	if got := g.Values(); got != [3]int{250, 255, 245} {
		t.Errorf("Values() = %v, expected [250 255 245]", got)
	}
	if g.Pending() {
		t.Error("CommitAll should clear every delta")
	}
}

func TestParseHexGuess(t *testing.T) {
	tests := []struct {
		in       string
		expected [3]int
		wantErr  bool
	}{
		{"FF0000", [3]int{255, 0, 0}, false},
		{"#00ff80", [3]int{0, 255, 128}, false},
		{" 123456 ", [3]int{0x12, 0x34, 0x56}, false},
		{"FFF", [3]int{}, true},
		{"GG0000", [3]int{}, true},
		{"", [3]int{}, true},
		{"#1234567", [3]int{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := core.ParseHexGuess(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseHexGuess(%q) expected error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexGuess(%q) error: %v", tc.in, err)
			}
			if got != tc.expected {
				t.Errorf("ParseHexGuess(%q) = %v, expected %v", tc.in, got, tc.expected)
			}
		})
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		c        core.Color
		expected string
	}{
		{core.RGB(1, 0, 0), "FF0000"},
		{core.RGB(0, 0, 0), "000000"},
		{core.RGB(0.5, 0.5, 0.5), "808080"},
		{core.RGB(2, -1, 1), "FF00FF"},
	}

	for _, tc := range tests {
		if got := core.HexColor(tc.c); got != tc.expected {
			t.Errorf("HexColor(%v) = %q, expected %q", tc.c, got, tc.expected)
		}
	}
}
