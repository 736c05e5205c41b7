package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-prism/internal/core"
	"github.com/vovakirdan/tui-prism/internal/registry"
	"github.com/vovakirdan/tui-prism/internal/storage"
)

// Help footer heights: the short view is one line, the full view is as
// tall as the longest FullHelp column.
const (
	shortHelpLines = 1
	fullHelpLines  = 4
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	theme      Theme
	inputFrame core.InputFrame
	gameState  core.GameState
	termW      int
	termH      int
	quitting   bool
	rounds     int // Rounds revealed this run
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	termW, termH := cfg.ScreenW, cfg.ScreenH
	cfg.ScreenH = max(0, termH-shortHelpLines)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		termW:      termW,
		termH:      termH,
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       h,
		theme:      DefaultTheme(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the tick loop. Run resets the game before the program starts.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keys.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.relayout(), nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.termW, m.termH = msg.Width, msg.Height
	return m.relayout(), nil
}

// relayout splits the terminal between the game screen and the help footer.
func (m Model) relayout() Model {
	footer := shortHelpLines
	if m.help.ShowAll {
		footer = fullHelpLines
	}
	m.config.ScreenW = m.termW
	m.config.ScreenH = max(0, m.termH-footer)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = m.termW

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Round != nil {
		m.rounds++
		m.recordRound(*result.Round)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordRound persists a revealed round. Storage failures are logged and
// play continues.
func (m Model) recordRound(r core.RoundResult) {
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRound(storage.RoundRecord{
		GameID:   m.game.ID(),
		Rows:     r.Rows,
		SeedHex:  r.SeedHex,
		GuessHex: r.GuessHex,
		Accuracy: r.Accuracy,
		DeltaE:   r.DeltaE,
		Score:    r.Score,
	}); err != nil {
		log.Warn("failed to save round", "game", m.game.ID(), "err", err)
	}
	if r.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), r.Score); err != nil {
			log.Warn("failed to save score", "game", m.game.ID(), "err", err)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".prism", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		log.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys.Keys)
	if m.rounds > 0 {
		footer = fmt.Sprintf("%s  %s", m.theme.StatLabel.Render(fmt.Sprintf("rounds %d", m.rounds)), footer)
	}
	return RenderScreen(m.screen) + "\n" + m.theme.Help.Render(footer)
}

// Run resets the game for the initial screen and starts the Bubble Tea
// program.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)
	game.Reset(model.config)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Press, drag and release on tiles
	)

	_, err := p.Run()
	return err
}
