package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-prism/internal/core"
)

// styleKey identifies a foreground/background pair.
type styleKey struct {
	fg, bg core.Color
}

var (
	stylesMu sync.Mutex
	styles   = map[styleKey]lipgloss.Style{}
)

// styleFor returns the lipgloss style for a color pair. Tile colors come
// from an unbounded true-color space, so styles are built on demand.
func styleFor(fg, bg core.Color) lipgloss.Style {
	k := styleKey{fg, bg}

	stylesMu.Lock()
	defer stylesMu.Unlock()

	if s, ok := styles[k]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if !fg.IsDefault() {
		s = s.Foreground(lipgloss.Color(fg))
	}
	if !bg.IsDefault() {
		s = s.Background(lipgloss.Color(bg))
	}
	styles[k] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, n := 0, s.Height(); y < n; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			first := s.GetCell(x, y)
			fg, bg := first.FG, first.BG

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != fg || cell.BG != bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if fg.IsDefault() && bg.IsDefault() {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(fg, bg).Render(run.String()))
		}
	}
	return sb.String()
}
