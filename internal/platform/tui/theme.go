package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles shared by the Prism screens that are
// built from lipgloss rather than the cell buffer.
type Theme struct {
	// Chrome
	Title  lipgloss.Style
	Border lipgloss.Style
	Help   lipgloss.Style
	Empty  lipgloss.Style

	// Mode picker
	ModeNormal lipgloss.Style
	ModeActive lipgloss.Style

	// Round history
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
	StatLabel     lipgloss.Style
	StatValue     lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Border: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Empty:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),

		ModeNormal: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		ModeActive: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true).Padding(0, 1),

		TableHeader:   lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true),
		TableSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		StatLabel:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		StatValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	}
}

// swatch renders a block in a true-color hex value, for table cells that
// show guess and answer colors.
func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#" + hex)).Render("██")
}
