package prism

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-prism/internal/core"
	pcore "github.com/vovakirdan/tui-prism/internal/games/prism/core"
)

const (
	swatchWidth = 6
	barWidth    = 20
)

// Triangle glyphs: row 0 then row 1 of a tile.
var (
	upGlyphs   = [tileLines]string{"▗█▖", "███"}
	downGlyphs = [tileLines]string{"███", "▝█▘"}
)

// span is a run of text in one color.
type span struct {
	text string
	fg   core.Color
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.machine == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.machine.Snapshot()
	g.renderHeader(dst, snap)
	g.renderGrid(dst, snap)
	g.renderFooter(dst, snap)
	if snap.Celebrating {
		g.renderCelebration(dst)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCenteredColor(y, "Window too small", core.ColorAlert)
	need := fmt.Sprintf("need %dx%d", gridWidth(), hudTop+g.layout.rows*tileLines+hudBottom)
	dst.DrawTextCenteredColor(y+1, need, core.ColorDim)
}

func (g *Game) renderHeader(dst *core.Screen, snap pcore.Snapshot) {
	dst.DrawTextCenteredColor(0, strings.ToUpper(g.title), core.ColorAccent)

	var readout []span
	switch {
	case len(g.keypad) > 0:
		typed := "#" + string(g.keypad) + strings.Repeat("_", hexDigits-len(g.keypad))
		readout = []span{{typed, core.ColorAccent}}
	case snap.Revealed():
		readout = []span{{"#" + snap.Guess.Hex(), core.ColorText}}
	default:
		readout = []span{{"#" + snap.Guess.LiveHex(), core.ColorText}}
		if snap.Phase == pcore.PhaseDragging {
			readout = append(readout, span{"  " + snap.DragChannel.String(), core.ColorMuted})
		}
	}
	drawSpans(dst, 1, readout)
}

func (g *Game) renderGrid(dst *core.Screen, snap pcore.Snapshot) {
	topo := snap.Grid.Topology()
	start := topo.Start()

	for _, c := range snap.Grid.Coords() {
		fg := g.palette.tile(snap.Grid.Cell(c).Color)
		label := rune(0)

		switch ch, isControl := topo.ControlChannel(c); {
		case c == start && !snap.Revealed():
			fg = g.palette.card()
			label = '?'
		case isControl:
			label = channelLabel(ch)
		}

		g.drawTile(dst, c, fg, label, c == g.cursor)
	}
}

// drawTile paints one triangle. The label sits on the wide row; the
// cursor shows on the narrow row's corners.
func (g *Game) drawTile(dst *core.Screen, c pcore.Coord, fg core.Color, label rune, cursor bool) {
	r := g.layout.tileRect(c)
	glyphs, wide, narrow := upGlyphs, 1, 0
	if pcore.OrientationOf(c.Col) == pcore.Down {
		glyphs, wide, narrow = downGlyphs, 0, 1
	}

	for dy, line := range glyphs {
		dx := 0
		for _, ch := range line {
			cell := core.Cell{Rune: ch, FG: fg}
			if cursor && dy == narrow && dx != tileCols/2 {
				cell.BG = core.ColorAccent
			}
			dst.SetCell(r.X+dx, r.Y+dy, cell)
			dx++
		}
	}

	if label != 0 {
		dst.SetCell(r.X+tileCols/2, r.Y+wide, core.Cell{Rune: label, FG: contrast(fg), BG: fg})
	}
}

func channelLabel(ch pcore.Channel) rune {
	switch ch {
	case pcore.ChannelRed:
		return 'R'
	case pcore.ChannelGreen:
		return 'G'
	default:
		return 'B'
	}
}

func (g *Game) renderFooter(dst *core.Screen, snap pcore.Snapshot) {
	y := g.layout.bounds().Bottom() + 1

	live := snap.Guess.LiveValues()
	guess := core.HexColor(live[0], live[1], live[2])
	swatches := []span{
		{"guess ", core.ColorMuted},
		{strings.Repeat("█", swatchWidth), guess},
	}
	if snap.Revealed() {
		swatches = append(swatches,
			span{"   answer ", core.ColorMuted},
			span{strings.Repeat("█", swatchWidth), g.palette.solid(snap.Seed)},
			span{" #" + pcore.HexColor(snap.Seed), core.ColorText},
		)
	}
	drawSpans(dst, y, swatches)

	if !snap.Revealed() {
		drawSpans(dst, y+1, []span{{"drag R G B, tap ? to reveal", core.ColorDim}})
		return
	}

	filled := int(snap.Accuracy*barWidth + 0.5)
	bar := []span{
		{strings.Repeat("█", filled), accuracyColor(snap.Accuracy)},
		{strings.Repeat("░", barWidth-filled), core.ColorDim},
		{fmt.Sprintf(" %5.1f%%", snap.Accuracy*100), core.ColorText},
	}
	if g.cfg.Render.ShowDeltaE {
		bar = append(bar, span{fmt.Sprintf("  ΔE %.1f", deltaE(snap.Guess.Color(), snap.Seed)), core.ColorMuted})
	}
	drawSpans(dst, y+1, bar)
}

func accuracyColor(acc float64) core.Color {
	switch {
	case acc >= 0.9:
		return core.ColorGood
	case acc >= 0.6:
		return core.ColorAccent
	default:
		return core.ColorAlert
	}
}

func (g *Game) renderCelebration(dst *core.Screen) {
	msg := "★ brilliant ★"
	w := utf8.RuneCountInString(msg) + 4
	b := g.layout.bounds()
	cx, cy := b.Center()
	box := core.NewRect(cx-w/2, cy-1, w, 3)

	dst.FillRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box, core.ColorAccent)
	dst.DrawTextColor(box.X+2, box.Y+1, msg, core.ColorAccent, core.ColorDefault)
}

// drawSpans draws colored runs centered on row y.
func drawSpans(dst *core.Screen, y int, spans []span) {
	total := 0
	for _, s := range spans {
		total += utf8.RuneCountInString(s.text)
	}
	x := (dst.Width() - total) / 2
	for _, s := range spans {
		dst.DrawTextColor(x, y, s.text, s.fg, core.ColorDefault)
		x += utf8.RuneCountInString(s.text)
	}
}
