package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Guess channel limits.
const (
	ChannelMax = 255.0
	ChannelMin = 0.0

	// DefaultDragMultiplier converts drag pixels into channel units.
	DefaultDragMultiplier = 0.4
)

// ChannelGuess is one channel of a guess: the committed base plus the
// delta accumulated by an in-progress drag.
type ChannelGuess struct {
	Base  float64
	Delta float64
}

// Guess is the player's three-channel answer. It is a value; every
// operation returns a new Guess.
type Guess struct {
	channels   [ChannelCount]ChannelGuess
	multiplier float64
}

// NewGuess returns a guess of (255, 255, 255) with no pending deltas.
func NewGuess(multiplier float64) Guess {
	if multiplier == 0 {
		multiplier = DefaultDragMultiplier
	}
	g := Guess{multiplier: multiplier}
	for i := range g.channels {
		g.channels[i].Base = ChannelMax
	}
	return g
}

// Multiplier returns the drag multiplier.
func (g Guess) Multiplier() float64 {
	return g.multiplier
}

// Channel returns the raw state of one channel.
func (g Guess) Channel(ch Channel) ChannelGuess {
	if ch >= ChannelCount {
		return ChannelGuess{}
	}
	return g.channels[ch]
}

// WithDelta replaces the pending delta of ch.
func (g Guess) WithDelta(ch Channel, delta float64) Guess {
	if ch < ChannelCount {
		g.channels[ch].Delta = delta
	}
	return g
}

// Commit folds the pending delta of ch into its base and clears it.
func (g Guess) Commit(ch Channel) Guess {
	if ch < ChannelCount {
		g.channels[ch] = ChannelGuess{Base: g.Live(ch)}
	}
	return g
}

// CommitAll commits every channel.
func (g Guess) CommitAll() Guess {
	for _, ch := range AllChannels() {
		g = g.Commit(ch)
	}
	return g
}

// Pending reports whether any channel has an uncommitted delta.
func (g Guess) Pending() bool {
	for _, c := range g.channels {
		if c.Delta != 0 {
			return true
		}
	}
	return false
}

// WithValues sets all three bases and clears pending deltas.
// Values are clamped to [0, 255].
func (g Guess) WithValues(r, gr, b float64) Guess {
	g.channels[ChannelRed] = ChannelGuess{Base: clampChannel(r)}
	g.channels[ChannelGreen] = ChannelGuess{Base: clampChannel(gr)}
	g.channels[ChannelBlue] = ChannelGuess{Base: clampChannel(b)}
	return g
}

// Committed returns the committed value of ch.
func (g Guess) Committed(ch Channel) float64 {
	return g.Channel(ch).Base
}

// Live returns clamp(base + multiplier*delta) for ch: the value the
// channel will have once the current drag is committed.
func (g Guess) Live(ch Channel) float64 {
	c := g.Channel(ch)
	return clampChannel(c.Base + g.multiplier*c.Delta)
}

// Values returns the committed channels truncated to integers.
func (g Guess) Values() [ChannelCount]int {
	var out [ChannelCount]int
	for _, ch := range AllChannels() {
		out[ch] = int(g.Committed(ch))
	}
	return out
}

// LiveValues returns the live channels truncated to integers.
func (g Guess) LiveValues() [ChannelCount]int {
	var out [ChannelCount]int
	for _, ch := range AllChannels() {
		out[ch] = int(g.Live(ch))
	}
	return out
}

// Hex returns the committed guess as six uppercase hex digits.
func (g Guess) Hex() string {
	return hexString(g.Values())
}

// LiveHex returns the live guess as six uppercase hex digits.
func (g Guess) LiveHex() string {
	return hexString(g.LiveValues())
}

// Color returns the committed guess as an opaque color.
func (g Guess) Color() Color {
	v := g.Values()
	return RGB(float64(v[0])/ChannelMax, float64(v[1])/ChannelMax, float64(v[2])/ChannelMax)
}

// CommittedHexString returns the readout for g.
func CommittedHexString(g Guess) string {
	return g.Hex()
}

// ParseHexGuess parses six hex digits (an optional leading '#' is allowed)
// into channel values.
func ParseHexGuess(s string) ([ChannelCount]int, error) {
	var out [ChannelCount]int
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 2*int(ChannelCount) {
		return out, fmt.Errorf("prism: hex guess %q must have 6 digits", s)
	}
	for i := range out {
		v, err := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if err != nil {
			return out, fmt.Errorf("prism: invalid hex guess %q: %w", s, err)
		}
		out[i] = int(v)
	}
	return out, nil
}

// HexColor formats a color's RGB channels as six uppercase hex digits.
func HexColor(c Color) string {
	return hexString([ChannelCount]int{
		int(math.Round(clampUnit(c.R) * ChannelMax)),
		int(math.Round(clampUnit(c.G) * ChannelMax)),
		int(math.Round(clampUnit(c.B) * ChannelMax)),
	})
}

func hexString(v [ChannelCount]int) string {
	return fmt.Sprintf("%02X%02X%02X", v[0], v[1], v[2])
}

func clampChannel(v float64) float64 {
	return math.Max(ChannelMin, math.Min(ChannelMax, v))
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
