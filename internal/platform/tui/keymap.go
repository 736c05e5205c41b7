package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-prism/internal/core"
)

// GameKeyMap defines the key bindings used while playing.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Tap        key.Binding
	Increase   key.Binding
	Decrease   key.Binding
	Hex        key.Binding
	Clear      key.Binding
	New        key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Increase, k.Hex, k.New, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Tap, k.Increase, k.Decrease},
		{k.Hex, k.Clear, k.Back},
		{k.New, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings. Letters a-f stay free
// for hex entry, so movement uses arrows and vim keys only.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Tap: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "tap tile"),
		),
		Increase: key.NewBinding(
			key.WithKeys("+", "=", "w"),
			key.WithHelp("+/w", "raise channel"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-", "_", "s"),
			key.WithHelp("-/s", "lower channel"),
		),
		Hex: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
				"a", "b", "c", "d", "e", "f", "A", "B", "C", "D", "E", "F"),
			key.WithHelp("0-f", "type hex"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x", "backspace"),
			key.WithHelp("x", "clear hex"),
		),
		New: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new puzzle"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key and mouse messages to game input.
// This centralizes bindings and makes them testable.
type KeyMapper struct {
	Keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{Keys: DefaultGameKeyMap()}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
// Hex digits map to ActionNone; MapKeyToFrame forwards them as runes.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.Keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Tap):
		return core.ActionConfirm, false
	case key.Matches(msg, k.Increase):
		return core.ActionIncrease, false
	case key.Matches(msg, k.Decrease):
		return core.ActionDecrease, false
	case key.Matches(msg, k.Clear):
		return core.ActionClear, false
	case key.Matches(msg, k.New):
		return core.ActionRestart, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	if key.Matches(msg, km.Keys.Hex) {
		for _, r := range msg.Runes {
			frame.AddRune(r)
		}
		return false
	}
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouseToFrame records left-button gestures as pointer events.
// Other buttons and the wheel are ignored.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) {
	x, y := msg.X, msg.Y
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			frame.AddPointer(core.PointerPress, x, y)
		}
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft {
			frame.AddPointer(core.PointerMotion, x, y)
		}
	case tea.MouseActionRelease:
		frame.AddPointer(core.PointerRelease, x, y)
	}
}
