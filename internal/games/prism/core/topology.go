package core

import (
	"errors"
	"fmt"
)

// Row widths: even rows carry two extra triangles.
const (
	baseRowWidth = 5
	evenRowExtra = 2
	controlTiles = 3
)

// MinRows is the smallest row count a topology accepts.
const MinRows = 2

// ErrTooFewRows is returned when a topology is built with fewer than MinRows rows.
var ErrTooFewRows = errors.New("prism: row count must be at least 2")

// Coord addresses a tile by row and column.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Orientation is the direction a triangle's apex points.
type Orientation uint8

const (
	Up Orientation = iota
	Down
)

// String returns the string representation of an orientation.
func (o Orientation) String() string {
	if o == Up {
		return "up"
	}
	return "down"
}

// NeighborMode selects the adjacency rule.
type NeighborMode uint8

const (
	// NeighborsFull is the unrestricted 3-neighbor rule.
	NeighborsFull NeighborMode = iota
	// NeighborsTrimmed drops the left candidate below the center row and
	// the right candidate above it.
	NeighborsTrimmed
)

// String returns the string representation of a neighbor mode.
func (m NeighborMode) String() string {
	switch m {
	case NeighborsFull:
		return "full"
	case NeighborsTrimmed:
		return "trimmed"
	default:
		return "unknown"
	}
}

// RowWidth returns the number of tiles in row.
func RowWidth(row int) int {
	if isEven(row) {
		return baseRowWidth + evenRowExtra
	}
	return baseRowWidth
}

// OrientationOf returns the orientation of tiles in column col.
// It never depends on the row.
func OrientationOf(col int) Orientation {
	if isEven(col) {
		return Up
	}
	return Down
}

// StartingCoord returns the center tile for a grid with rowCount rows.
// The row is rowCount/2 forced up to even; the column is the midpoint.
func StartingCoord(rowCount int) Coord {
	row := rowCount / 2
	if !isEven(row) {
		row++
	}
	return Coord{Row: row, Col: RowWidth(row) / 2}
}

// Neighbors returns the three adjacency candidates of (row, col) before
// bounds filtering: left, right, then the vertical neighbor.
func Neighbors(row, col int) []Coord {
	shift := 1
	if isEven(row) {
		shift = -1
	}

	vertical := Coord{Row: row + 1, Col: col + shift}
	if OrientationOf(col) == Down {
		vertical.Row = row - 1
	}

	return []Coord{
		{Row: row, Col: col - 1},
		{Row: row, Col: col + 1},
		vertical,
	}
}

// Topology describes a grid shape: its row count and adjacency rule.
// It replaces any process-wide screen configuration.
type Topology struct {
	rows int
	mode NeighborMode
}

// NewTopology validates rowCount and returns a topology.
func NewTopology(rowCount int, mode NeighborMode) (Topology, error) {
	if rowCount < MinRows {
		return Topology{}, fmt.Errorf("%w (got %d)", ErrTooFewRows, rowCount)
	}
	return Topology{rows: rowCount, mode: mode}, nil
}

// MustTopology is like NewTopology but panics on invalid input.
func MustTopology(rowCount int, mode NeighborMode) Topology {
	t, err := NewTopology(rowCount, mode)
	if err != nil {
		panic(err)
	}
	return t
}

// Rows returns the row count.
func (t Topology) Rows() int {
	return t.rows
}

// Mode returns the adjacency rule.
func (t Topology) Mode() NeighborMode {
	return t.mode
}

// Start returns the center tile.
func (t Topology) Start() Coord {
	return StartingCoord(t.rows)
}

// InBounds reports whether c addresses a tile of this topology.
func (t Topology) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < t.rows && c.Col >= 0 && c.Col < RowWidth(c.Row)
}

// Neighbors returns the adjacency candidates of c under the topology's
// mode, unfiltered by bounds.
func (t Topology) Neighbors(c Coord) []Coord {
	all := Neighbors(c.Row, c.Col)
	if t.mode != NeighborsTrimmed {
		return all
	}

	center := t.Start().Row
	switch {
	case c.Row > center:
		return all[1:] // lower half: no left
	case c.Row < center:
		return []Coord{all[0], all[2]} // upper half: no right
	default:
		return all
	}
}

// ControlCoords returns the red, blue and green control tiles in that
// order: left of center, right of center, and the midpoint of the row above.
func (t Topology) ControlCoords() [controlTiles]Coord {
	s := t.Start()
	above := s.Row - 1
	return [controlTiles]Coord{
		{Row: s.Row, Col: s.Col - 1},
		{Row: s.Row, Col: s.Col + 1},
		{Row: above, Col: RowWidth(above) / 2},
	}
}

// ControlChannel reports which channel the tile at c controls, if any.
func (t Topology) ControlChannel(c Coord) (Channel, bool) {
	ctl := t.ControlCoords()
	switch c {
	case ctl[0]:
		return ChannelRed, true
	case ctl[1]:
		return ChannelBlue, true
	case ctl[2]:
		return ChannelGreen, true
	}
	return 0, false
}

// ControlCoord returns the tile that controls ch.
func (t Topology) ControlCoord(ch Channel) Coord {
	ctl := t.ControlCoords()
	switch ch {
	case ChannelRed:
		return ctl[0]
	case ChannelBlue:
		return ctl[1]
	default:
		return ctl[2]
	}
}

func isEven(n int) bool {
	return n%2 == 0
}
