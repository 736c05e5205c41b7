// Package core provides the triangular-grid color engine for Prism:
// topology, flood-fill generation, scoring and the interaction state machine.
// This package is UI-agnostic and deterministic.
package core

import "fmt"

// Bias factors used when deriving the control tile colors from the seed.
const (
	convergeFactor = 0.8  // Fraction of the remaining distance moved toward 1
	divergeFactor  = 0.85 // Multiplier applied when moving toward 0
	fadeFactor     = 0.7  // Alpha multiplier for one propagation step
)

// Color is an RGBA color with every channel in [0, 1].
// Colors are values; all operations return new colors.
type Color struct {
	R, G, B, A float64
}

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// String returns a compact representation for test output and logs.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%.3f,%.3f,%.3f,%.3f)", c.R, c.G, c.B, c.A)
}

// Channel returns the value of the given channel.
func (c Color) Channel(ch Channel) float64 {
	switch ch {
	case ChannelRed:
		return c.R
	case ChannelGreen:
		return c.G
	case ChannelBlue:
		return c.B
	default:
		return 0
	}
}

// Channel identifies one of the three RGB channels.
type Channel uint8

const (
	ChannelRed Channel = iota
	ChannelGreen
	ChannelBlue
	ChannelCount // Sentinel value for iteration
)

// String returns the string representation of a channel.
func (ch Channel) String() string {
	switch ch {
	case ChannelRed:
		return "red"
	case ChannelGreen:
		return "green"
	case ChannelBlue:
		return "blue"
	default:
		return "unknown"
	}
}

// AllChannels returns the channels in RGB order.
func AllChannels() []Channel {
	return []Channel{ChannelRed, ChannelGreen, ChannelBlue}
}

// Bias moves v toward 1 (80% of the remaining distance) or toward 0
// (scaled by 0.85).
func Bias(v float64, towardOne bool) float64 {
	if towardOne {
		return v + convergeFactor*(1-v)
	}
	return v * divergeFactor
}

// MarkChannel returns seed with ch biased toward 1 and the other two
// channels biased toward 0. Alpha is unchanged.
func MarkChannel(seed Color, ch Channel) Color {
	return Color{
		R: Bias(seed.R, ch == ChannelRed),
		G: Bias(seed.G, ch == ChannelGreen),
		B: Bias(seed.B, ch == ChannelBlue),
		A: seed.A,
	}
}

// Fade keeps RGB and multiplies alpha by 0.7.
func Fade(c Color) Color {
	c.A *= fadeFactor
	return c
}

// Cell is a grid slot: either Unset or holding a color.
// The zero value is Unset.
type Cell struct {
	Set   bool  // Whether the cell has been colored
	Color Color // Valid only when Set is true
}

// Unset returns an empty cell.
func Unset() Cell {
	return Cell{}
}

// Colored returns a cell holding c.
func Colored(c Color) Cell {
	return Cell{Set: true, Color: c}
}

// Blend averages a and b with equal weights.
func Blend(a, b Cell) Cell {
	return BlendWeighted(a, b, 0.5, 0.5)
}

// BlendWeighted returns the per-channel weighted average of a and b,
// alpha included, normalized by wa+wb.
// Unset is the identity on either side. If one weight is zero the other
// operand is returned unchanged.
func BlendWeighted(a, b Cell, wa, wb float64) Cell {
	if !a.Set {
		return b
	}
	if !b.Set {
		return a
	}

	total := wa + wb
	if total <= 0 {
		return a
	}
	la := wa / total
	lb := wb / total
	if la <= 0 {
		return b
	}
	if lb <= 0 {
		return a
	}

	ca, cb := a.Color, b.Color
	return Colored(Color{
		R: la*ca.R + lb*cb.R,
		G: la*ca.G + lb*cb.G,
		B: la*ca.B + lb*cb.B,
		A: la*ca.A + lb*cb.A,
	})
}

// FadeCell fades a colored cell. Unset stays Unset.
func FadeCell(c Cell) Cell {
	if !c.Set {
		return c
	}
	return Colored(Fade(c.Color))
}
