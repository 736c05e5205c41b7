package prism

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-prism/internal/config"
	"github.com/vovakirdan/tui-prism/internal/core"
	pcore "github.com/vovakirdan/tui-prism/internal/games/prism/core"
)

// palette turns engine colors into terminal colors.
type palette struct {
	composite  bool
	background colorful.Color
}

func newPalette(cfg config.RenderConfig) palette {
	bg, err := colorful.Hex(cfg.Background)
	if err != nil {
		bg = colorful.Color{R: 1, G: 1, B: 1}
	}
	return palette{composite: cfg.CompositeAlpha, background: bg}
}

func toColorful(c pcore.Color) colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped()
}

func hex(c colorful.Color) core.Color {
	return core.Color(strings.ToUpper(c.Clamped().Hex()))
}

// tile returns the display color of a tile. With compositing on, the
// tile's alpha blends it over the background.
func (p palette) tile(c pcore.Color) core.Color {
	out := toColorful(c)
	if p.composite {
		out = p.background.BlendRgb(out, core.ClampF(c.A, 0, 1))
	}
	return hex(out)
}

// solid ignores alpha.
func (p palette) solid(c pcore.Color) core.Color {
	return hex(toColorful(c))
}

func (p palette) card() core.Color {
	return hex(p.background)
}

// contrast picks black or white text for a background color.
func contrast(bg core.Color) core.Color {
	c, err := colorful.Hex(string(bg))
	if err != nil {
		return core.ColorText
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return core.ColorBlack
	}
	return core.ColorWhite
}

// deltaE is the CIEDE2000 distance between two colors on the usual
// 0..100 scale. Below about 2 the colors are hard to tell apart.
func deltaE(a, b pcore.Color) float64 {
	return toColorful(a).DistanceCIEDE2000(toColorful(b)) * 100
}
