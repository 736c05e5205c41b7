package core

import "fmt"

// Color is a terminal color for a screen cell: either an ANSI 256 palette
// index ("245") or a true-color hex string ("#FF8800"). The empty string is
// the terminal default.
type Color string

// Interface colors shared by every screen.
const (
	ColorDefault Color = ""
	ColorText    Color = "252"
	ColorDim     Color = "240"
	ColorMuted   Color = "245"
	ColorAccent  Color = "229"
	ColorAlert   Color = "203"
	ColorGood    Color = "114"
	ColorBlack   Color = "16"
	ColorWhite   Color = "231"
)

// HexColor builds a true-color value from 8-bit channels.
// Channels outside [0, 255] are clamped.
func HexColor(r, g, b int) Color {
	return Color(fmt.Sprintf("#%02X%02X%02X", Clamp(r, 0, 255), Clamp(g, 0, 255), Clamp(b, 0, 255)))
}

// IsDefault reports whether c is the terminal default color.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}
