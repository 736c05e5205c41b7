package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // K, Up arrow - move cursor up
	ActionDown            // J, Down arrow - move cursor down
	ActionLeft            // H, Left arrow - move cursor left
	ActionRight           // L, Right arrow - move cursor right
	ActionConfirm         // Enter, Space - tap the tile under the cursor
	ActionIncrease        // +, W - raise the channel under the cursor
	ActionDecrease        // -, S - lower the channel under the cursor
	ActionClear           // X, Backspace - clear the keypad buffer
	ActionRestart         // R - abandon the puzzle and start a new one
	ActionBack            // Esc - dismiss overlays
	ActionQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionIncrease:
		return "Increase"
	case ActionDecrease:
		return "Decrease"
	case ActionClear:
		return "Clear"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// PointerKind distinguishes the phases of a pointer gesture.
type PointerKind uint8

const (
	PointerPress PointerKind = iota
	PointerMotion
	PointerRelease
)

// String returns the string representation of a pointer kind.
func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerMotion:
		return "motion"
	case PointerRelease:
		return "release"
	default:
		return "unknown"
	}
}

// PointerEvent is one mouse event in screen cells.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}

// InputFrame represents the input collected during one simulation tick.
// Actions are deduplicated; pointer events and typed runes keep their order.
type InputFrame struct {
	Actions map[Action]bool
	Pointer []PointerEvent
	Runes   []rune
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddPointer appends a pointer event.
func (f *InputFrame) AddPointer(kind PointerKind, x, y int) {
	f.Pointer = append(f.Pointer, PointerEvent{Kind: kind, X: x, Y: y})
}

// AddRune appends a typed character.
func (f *InputFrame) AddRune(r rune) {
	f.Runes = append(f.Runes, r)
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Pointer) == 0 && len(f.Runes) == 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = f.Pointer[:0]
	f.Runes = f.Runes[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = append([]PointerEvent(nil), f.Pointer...)
	clone.Runes = append([]rune(nil), f.Runes...)
	return clone
}
