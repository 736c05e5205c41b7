package prism

import (
	pcore "github.com/vovakirdan/tui-prism/internal/games/prism/core"
)

// Snapshot captures the adapter state for tests and debugging.
type Snapshot struct {
	Tick        uint64
	Mode        string
	Rows        int
	SessionID   uint64
	Phase       pcore.Phase
	Seed        pcore.Color
	Guess       [pcore.ChannelCount]int // Committed channels
	LiveHex     string
	Accuracy    float64
	Celebrating bool
	Cursor      pcore.Coord
	Keypad      string
	Score       int
	GameOver    bool
	TooSmall    bool
}

// Snapshot returns the current adapter state.
func (g *Game) Snapshot() Snapshot {
	if g.machine == nil {
		return Snapshot{Mode: g.id}
	}
	s := g.machine.Snapshot()
	return Snapshot{
		Tick:        g.tick,
		Mode:        g.id,
		Rows:        s.Grid.RowCount(),
		SessionID:   s.SessionID,
		Phase:       s.Phase,
		Seed:        s.Seed,
		Guess:       s.Guess.Values(),
		LiveHex:     s.Guess.LiveHex(),
		Accuracy:    s.Accuracy,
		Celebrating: s.Celebrating,
		Cursor:      g.cursor,
		Keypad:      string(g.keypad),
		Score:       g.state.Score,
		GameOver:    g.state.GameOver,
		TooSmall:    g.tooSmall,
	}
}
