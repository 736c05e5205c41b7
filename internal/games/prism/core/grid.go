package core

// Grid holds the cells of a triangular tiling, one slice per row.
// Row widths follow RowWidth.
type Grid struct {
	topo  Topology
	cells [][]Cell
}

// NewGrid allocates a grid for topo with every cell Unset.
func NewGrid(topo Topology) *Grid {
	cells := make([][]Cell, topo.Rows())
	for row := range cells {
		cells[row] = make([]Cell, RowWidth(row))
	}
	return &Grid{topo: topo, cells: cells}
}

// Topology returns the grid's shape.
func (g *Grid) Topology() Topology {
	return g.topo
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int {
	return len(g.cells)
}

// RowWidth returns the width of the given row, or 0 if out of range.
func (g *Grid) RowWidth(row int) int {
	if row < 0 || row >= len(g.cells) {
		return 0
	}
	return len(g.cells[row])
}

// InBounds reports whether c addresses a tile of the grid.
func (g *Grid) InBounds(c Coord) bool {
	return g.topo.InBounds(c)
}

// Cell returns the cell at c. Out-of-bounds coordinates read as Unset.
func (g *Grid) Cell(c Coord) Cell {
	if !g.InBounds(c) {
		return Unset()
	}
	return g.cells[c.Row][c.Col]
}

// ColorAt returns the color at (row, col) and whether the tile is colored.
func (g *Grid) ColorAt(row, col int) (Color, bool) {
	cell := g.Cell(C(row, col))
	return cell.Color, cell.Set
}

// set writes a cell. Out-of-bounds writes are dropped.
func (g *Grid) set(c Coord, cell Cell) {
	if g.InBounds(c) {
		g.cells[c.Row][c.Col] = cell
	}
}

// Coords returns every tile coordinate, ordered by row then column.
func (g *Grid) Coords() []Coord {
	coords := make([]Coord, 0, g.Size())
	for row := range g.cells {
		for col := range g.cells[row] {
			coords = append(coords, C(row, col))
		}
	}
	return coords
}

// Size returns the total number of tiles.
func (g *Grid) Size() int {
	n := 0
	for _, r := range g.cells {
		n += len(r)
	}
	return n
}

// UnsetCount returns the number of tiles that have not been colored.
func (g *Grid) UnsetCount() int {
	count := 0
	for _, r := range g.cells {
		for _, cell := range r {
			if !cell.Set {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([][]Cell, len(g.cells))
	for i, r := range g.cells {
		cells[i] = make([]Cell, len(r))
		copy(cells[i], r)
	}
	return &Grid{topo: g.topo, cells: cells}
}
