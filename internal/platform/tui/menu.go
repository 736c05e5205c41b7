package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-prism/internal/config"
	"github.com/vovakirdan/tui-prism/internal/core"
	"github.com/vovakirdan/tui-prism/internal/registry"
	"github.com/vovakirdan/tui-prism/internal/storage"
)

// MenuItem represents a selectable mode in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   int
}

// MenuKeyMap defines the key bindings for the launcher.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Difficulty key.Binding
	Select     key.Binding
	History    key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Difficulty, k.Select, k.History, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Difficulty: key.NewBinding(key.WithKeys("left", "right", "h", "l", "d"), key.WithHelp("←/→", "difficulty")),
		Select:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		History:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "history")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// difficultyChoices starts with the empty preset, which keeps the
// loaded configuration as is.
var difficultyChoices = append([]config.DifficultyPreset{""}, config.Presets()...)

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	difficulty  int
	width       int
	height      int
	config      core.RuntimeConfig
	keys        MenuKeyMap
	help        help.Model
	theme       Theme
	quitting    bool
	selected    *MenuItem // Set when user picks a mode
	openHistory bool      // True if user pressed Tab for history
}

// NewMenuModel creates a new menu model. preset is the difficulty shown
// first; store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			if best, err := store.HighScore(g.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	m := MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
		theme:  DefaultTheme(),
	}
	for i, p := range difficultyChoices {
		if p == preset {
			m.difficulty = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Difficulty):
		step := 1
		if s := msg.String(); s == "left" || s == "h" {
			step = -1
		}
		n := len(difficultyChoices)
		m.difficulty = (m.difficulty + step + n) % n

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the puzzle
		}

	case key.Matches(msg, m.keys.History):
		m.openHistory = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("  P R I S M  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Guess the hidden color", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := m.theme.ModeNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.ModeActive
		}
		line := cursor + style.Render(item.Title)
		if item.Best > 0 {
			line += m.theme.StatLabel.Render(fmt.Sprintf("  best %d", item.Best))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	diff := m.theme.StatLabel.Render("difficulty ") + m.theme.StatValue.Render(presetLabel(m.Difficulty()))
	b.WriteString(centerText(diff, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Help.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

func presetLabel(p config.DifficultyPreset) string {
	if p == "" {
		return "config"
	}
	return string(p)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Difficulty returns the preset currently shown.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return difficultyChoices[m.difficulty]
}

// centerText pads text to center it in width columns.
func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID       string
	Difficulty   config.DifficultyPreset
	Config       core.RuntimeConfig
	WantsHistory bool
	Quit         bool
}

// result converts the final menu state to a result.
func (m MenuModel) result() MenuResult {
	result := MenuResult{Config: m.config, Difficulty: m.Difficulty()}
	switch {
	case m.openHistory:
		result.WantsHistory = true
	case m.quitting || m.selected == nil:
		result.Quit = true
	default:
		result.GameID = m.selected.GameID
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, cfg, preset),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Difficulty: preset}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Difficulty: preset, Quit: true}, nil
	}
	return m.result(), nil
}
