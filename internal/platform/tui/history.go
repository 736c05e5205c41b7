package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-prism/internal/registry"
	"github.com/vovakirdan/tui-prism/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the mode sidebar
	sidebarWidth       = 22  // Width of the mode sidebar
	maxHistoryRounds   = 200 // Max rounds to load
	historyChrome      = 10  // Lines used by title, stats, detail and help
)

// allModes is the pseudo mode that lists rounds from every mode.
var allModes = registry.GameInfo{ID: "", Title: "All modes"}

// HistoryKeyMap defines the key bindings for the round history.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextMode, k.PrevMode, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing revealed rounds.
type HistoryModel struct {
	modes       []registry.GameInfo
	modeCursor  int
	store       *storage.Store
	rounds      []storage.RoundRecord
	stats       *storage.GameStats
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	theme       Theme
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history view. initialMode selects the first
// mode shown; empty means all modes.
func NewHistoryModel(store *storage.Store, initialMode string, width, height int) HistoryModel {
	modes := append([]registry.GameInfo{allModes}, registry.List()...)

	m := HistoryModel{
		modes:       modes,
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        help.New(),
		theme:       DefaultTheme(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, mode := range modes {
		if mode.ID == initialMode {
			m.modeCursor = i
		}
	}

	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a table sized for the current window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 12},
		{Title: "Mode", Width: 8},
		{Title: "Rows", Width: 4},
		{Title: "Guess", Width: 7},
		{Title: "Answer", Width: 7},
		{Title: "Acc", Width: 6},
		{Title: "ΔE", Width: 5},
		{Title: "Score", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-historyChrome)),
	)

	s := table.DefaultStyles()
	s.Header = m.theme.TableHeader
	s.Selected = m.theme.TableSelected
	t.SetStyles(s)
	return t
}

func (m *HistoryModel) currentMode() registry.GameInfo {
	return m.modes[m.modeCursor]
}

// load reads rounds and stats for the selected mode.
func (m *HistoryModel) load() {
	m.rounds, m.stats = nil, nil
	if m.store != nil {
		mode := m.currentMode().ID
		rounds, err := m.store.RecentRounds(mode, maxHistoryRounds)
		if err != nil {
			log.Warn("failed to load rounds", "mode", mode, "err", err)
		}
		m.rounds = rounds

		if mode != "" {
			stats, err := m.store.GetGameStats(mode)
			if err != nil {
				log.Warn("failed to load stats", "mode", mode, "err", err)
			}
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded rounds.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		rows[i] = table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			shortMode(r.GameID),
			fmt.Sprintf("%d", r.Rows),
			"#" + r.GuessHex,
			"#" + r.SeedHex,
			fmt.Sprintf("%.1f%%", r.Accuracy*100),
			fmt.Sprintf("%.1f", r.DeltaE),
			fmt.Sprintf("%d", r.Score),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func shortMode(id string) string {
	if strings.HasSuffix(id, "_trimmed") {
		return "trimmed"
	}
	return "full"
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			m.modeCursor = (m.modeCursor + 1) % len(m.modes)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			m.modeCursor = (m.modeCursor - 1 + len(m.modes)) % len(m.modes)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("ROUND HISTORY - %s", m.currentMode().Title)
	b.WriteString(m.theme.Title.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	main := m.theme.Border.Render(m.renderTableContent())
	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", main))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n")
		b.WriteString(main)
	}
	b.WriteString("\n")

	if line := m.renderStats(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if line := m.renderSelected(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m HistoryModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Modes\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	for i, mode := range m.modes {
		if i == m.modeCursor {
			sb.WriteString(m.theme.ModeActive.Render(mode.Title))
		} else {
			sb.WriteString(m.theme.ModeNormal.Render(mode.Title))
		}
		sb.WriteString("\n")
	}
	return m.theme.Border.Width(sidebarWidth).Render(sb.String())
}

func (m HistoryModel) renderTabs() string {
	tabs := make([]string, len(m.modes))
	for i, mode := range m.modes {
		if i == m.modeCursor {
			tabs[i] = m.theme.ModeActive.Render(mode.Title)
		} else {
			tabs[i] = m.theme.ModeNormal.Render(mode.Title)
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.rounds) == 0 {
		return m.theme.Empty.Render("No rounds recorded yet.\nReveal a puzzle to start your history!")
	}
	return m.table.View()
}

func (m HistoryModel) renderStats() string {
	if m.stats == nil || m.stats.RoundsCount == 0 {
		return ""
	}
	stat := func(label, value string) string {
		return m.theme.StatLabel.Render(label+" ") + m.theme.StatValue.Render(value)
	}
	return strings.Join([]string{
		stat("rounds", fmt.Sprintf("%d", m.stats.RoundsCount)),
		stat("best", fmt.Sprintf("%d", m.stats.HighScore)),
		stat("avg", fmt.Sprintf("%.1f%%", m.stats.AvgAccuracy*100)),
		stat("top", fmt.Sprintf("%.1f%%", m.stats.BestAccuracy*100)),
	}, "   ")
}

// renderSelected shows the colors of the highlighted round side by side.
func (m HistoryModel) renderSelected() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rounds) {
		return ""
	}
	r := m.rounds[i]
	return fmt.Sprintf("%s %s #%s   %s %s #%s",
		m.theme.StatLabel.Render("guess"), swatch(r.GuessHex), r.GuessHex,
		m.theme.StatLabel.Render("answer"), swatch(r.SeedHex), r.SeedHex,
	)
}

// RunHistory runs the round history screen.
func RunHistory(store *storage.Store, initialMode string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, initialMode, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
