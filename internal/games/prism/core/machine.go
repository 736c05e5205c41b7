package core

import "fmt"

// DefaultCelebrateAbove is the accuracy a reveal must exceed to celebrate.
const DefaultCelebrateAbove = 0.9

// Phase is the state of the interaction machine.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseRevealed
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseRevealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Command is a side effect requested by a transition. The view layer
// carries it out (timers, animation, logging, persistence).
type Command uint8

const (
	// CmdNewSession: a fresh grid and seed replaced the previous ones.
	CmdNewSession Command = iota
	// CmdReveal: the guess was submitted and scored.
	CmdReveal
	// CmdCelebrate: the reveal beat the celebration threshold.
	CmdCelebrate
	// CmdCancelCelebration: any running celebration timer must stop.
	CmdCancelCelebration
	// CmdDismiss: the reveal was dismissed without regenerating.
	CmdDismiss
)

// String returns the string representation of a command.
func (c Command) String() string {
	switch c {
	case CmdNewSession:
		return "new_session"
	case CmdReveal:
		return "reveal"
	case CmdCelebrate:
		return "celebrate"
	case CmdCancelCelebration:
		return "cancel_celebration"
	case CmdDismiss:
		return "dismiss"
	default:
		return "unknown"
	}
}

// MachineConfig configures a Machine.
type MachineConfig struct {
	Rows           int          // Row count; the center tile must fit, so at least 3
	Mode           NeighborMode // Adjacency rule for generation
	DragMultiplier float64      // Drag pixels to channel units (0 = default)
	CelebrateAbove float64      // Accuracy threshold (0 = default)
}

// session is one grid with the seed it was generated from.
// It is never mutated after creation.
type session struct {
	id   uint64
	grid *Grid
	seed Color
}

// Snapshot is an immutable view of the machine after a transition.
// Grid is a copy owned by the snapshot.
type Snapshot struct {
	SessionID   uint64
	Phase       Phase
	DragChannel Channel // Valid only in PhaseDragging
	Grid        *Grid
	Seed        Color
	Guess       Guess
	Accuracy    float64 // Valid only in PhaseRevealed
	Celebrating bool
}

// Revealed reports whether the snapshot is in the revealed phase.
func (s Snapshot) Revealed() bool {
	return s.Phase == PhaseRevealed
}

// Machine is the interaction state machine over one puzzle session.
// It is not safe for concurrent use; every call runs to completion.
type Machine struct {
	topo       Topology
	src        SeedSource
	multiplier float64
	threshold  float64

	cur         session
	nextID      uint64
	guess       Guess
	phase       Phase
	dragCh      Channel
	accuracy    float64
	celebrating bool

	// The first reveal of a session is final. A dismissed session keeps
	// it here and a later center tap shows it again.
	scored      bool
	scoredGuess Guess
	scoredAcc   float64
}

// NewMachine validates cfg and starts a first session.
func NewMachine(cfg MachineConfig, src SeedSource) (*Machine, error) {
	topo, err := NewTopology(cfg.Rows, cfg.Mode)
	if err != nil {
		return nil, err
	}
	if !topo.InBounds(topo.Start()) {
		return nil, fmt.Errorf("%w: the center of a %d-row grid falls outside it", ErrTooFewRows, cfg.Rows)
	}

	multiplier := cfg.DragMultiplier
	if multiplier == 0 {
		multiplier = DefaultDragMultiplier
	}
	if src == nil {
		src = NewRandSource(0)
	}
	threshold := cfg.CelebrateAbove
	if threshold == 0 {
		threshold = DefaultCelebrateAbove
	}

	m := &Machine{
		topo:       topo,
		src:        src,
		multiplier: multiplier,
		threshold:  threshold,
	}
	m.newSession()
	return m, nil
}

// Topology returns the machine's grid shape.
func (m *Machine) Topology() Topology {
	return m.topo
}

// newSession replaces grid, seed and guess as one unit.
func (m *Machine) newSession() {
	seed := m.src.NextSeed()
	grid := Generate(m.topo, seed)

	m.nextID++
	m.cur = session{id: m.nextID, grid: grid, seed: seed}
	m.guess = NewGuess(m.multiplier)
	m.phase = PhaseIdle
	m.accuracy = 0
	m.celebrating = false
	m.scored = false
}

// Reset abandons the current session and starts a new one.
func (m *Machine) Reset() (Snapshot, []Command) {
	cmds := m.cancelCelebration(nil)
	m.newSession()
	return m.Snapshot(), append(cmds, CmdNewSession)
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		SessionID:   m.cur.id,
		Phase:       m.phase,
		DragChannel: m.dragCh,
		Grid:        m.cur.grid.Clone(),
		Seed:        m.cur.seed,
		Guess:       m.guess,
		Accuracy:    m.accuracy,
		Celebrating: m.celebrating,
	}
}

// ColorAt returns the color of a tile in the current grid.
func (m *Machine) ColorAt(row, col int) (Color, bool) {
	return m.cur.grid.ColorAt(row, col)
}

// CommittedHex returns the readout for the committed guess.
func (m *Machine) CommittedHex() string {
	return CommittedHexString(m.guess)
}

// CurrentAccuracy returns the score of the last reveal. ok is false
// unless the machine is revealed.
func (m *Machine) CurrentAccuracy() (accuracy float64, ok bool) {
	if m.phase != PhaseRevealed {
		return 0, false
	}
	return m.accuracy, true
}

// OnDragChanged sets the pending delta of ch from the raw drag
// translation in pixels. Dragging upward (negative raw delta) increases
// the channel. Ignored while revealed.
func (m *Machine) OnDragChanged(ch Channel, rawDeltaPixels float64) Snapshot {
	if m.phase == PhaseRevealed || ch >= ChannelCount {
		return m.Snapshot()
	}
	if m.phase == PhaseDragging && m.dragCh != ch {
		m.guess = m.guess.Commit(m.dragCh)
	}
	m.phase = PhaseDragging
	m.dragCh = ch
	m.guess = m.guess.WithDelta(ch, -rawDeltaPixels)
	return m.Snapshot()
}

// OnDragEnded commits the pending delta of ch.
func (m *Machine) OnDragEnded(ch Channel) Snapshot {
	if m.phase == PhaseRevealed || ch >= ChannelCount {
		return m.Snapshot()
	}
	m.guess = m.guess.Commit(ch)
	if m.phase == PhaseDragging && m.dragCh == ch {
		m.phase = PhaseIdle
	}
	return m.Snapshot()
}

// DragTile routes a drag over the tile at c. Tiles other than the three
// controls are ignored and ok is false.
func (m *Machine) DragTile(c Coord, rawDeltaPixels float64) (snap Snapshot, ok bool) {
	ch, ok := m.topo.ControlChannel(c)
	if !ok {
		return m.Snapshot(), false
	}
	return m.OnDragChanged(ch, rawDeltaPixels), true
}

// SetGuess replaces the committed guess directly (keypad entry).
// Ignored while revealed.
func (m *Machine) SetGuess(values [ChannelCount]int) Snapshot {
	if m.phase == PhaseRevealed {
		return m.Snapshot()
	}
	m.guess = m.guess.WithValues(float64(values[0]), float64(values[1]), float64(values[2]))
	m.phase = PhaseIdle
	return m.Snapshot()
}

// OnTap applies the tap semantics of the tile at (row, col).
//
// Center: submit when not revealed, start a new session when revealed.
// A session is scored once; after a dismiss the center shows the first
// result again with no new reveal command.
// Controls: no effect. Any other tile: start a new session when not
// revealed, dismiss the reveal otherwise. Taps outside the grid are
// ignored.
func (m *Machine) OnTap(row, col int) (Snapshot, []Command) {
	c := C(row, col)
	if !m.topo.InBounds(c) {
		return m.Snapshot(), nil
	}

	revealed := m.phase == PhaseRevealed

	if c == m.topo.Start() {
		if revealed {
			return m.Reset()
		}
		if m.scored {
			return m.reshow(), nil
		}
		return m.reveal()
	}

	if _, isControl := m.topo.ControlChannel(c); isControl {
		return m.Snapshot(), nil
	}

	if revealed {
		cmds := m.cancelCelebration(nil)
		m.phase = PhaseIdle
		m.accuracy = 0
		return m.Snapshot(), append(cmds, CmdDismiss)
	}
	return m.Reset()
}

// reveal commits any in-progress drag, scores the guess and freezes it.
func (m *Machine) reveal() (Snapshot, []Command) {
	m.guess = m.guess.CommitAll()
	m.accuracy = GuessAccuracy(m.guess, m.cur.seed)
	m.phase = PhaseRevealed
	m.scored = true
	m.scoredGuess = m.guess
	m.scoredAcc = m.accuracy

	cmds := []Command{CmdReveal}
	if m.accuracy > m.threshold {
		m.celebrating = true
		cmds = append(cmds, CmdCelebrate)
	}
	return m.Snapshot(), cmds
}

// reshow restores the frozen result of a dismissed session. Edits made
// since the dismiss are dropped.
func (m *Machine) reshow() Snapshot {
	m.guess = m.scoredGuess
	m.accuracy = m.scoredAcc
	m.phase = PhaseRevealed
	return m.Snapshot()
}

// ClearCelebration is the timer callback. It clears the flag only when
// sessionID still names the current session, so a callback scheduled
// before a reset is a no-op. It returns whether the flag was cleared.
func (m *Machine) ClearCelebration(sessionID uint64) bool {
	if sessionID != m.cur.id || !m.celebrating {
		return false
	}
	m.celebrating = false
	return true
}

// CancelCelebration clears the flag immediately, regardless of timers.
func (m *Machine) CancelCelebration() Snapshot {
	m.celebrating = false
	return m.Snapshot()
}

func (m *Machine) cancelCelebration(cmds []Command) []Command {
	if !m.celebrating {
		return cmds
	}
	m.celebrating = false
	return append(cmds, CmdCancelCelebration)
}
