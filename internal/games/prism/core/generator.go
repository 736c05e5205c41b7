package core

import "math/rand"

// SeedSource draws the seed color for a new session.
type SeedSource interface {
	NextSeed() Color
}

// RandSource draws uniform RGB seeds from a math/rand generator.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource creates a seed source with a deterministic RNG.
func NewRandSource(seed int64) *RandSource {
	return &RandSource{rng: rand.New(rand.NewSource(seed))}
}

// NextSeed implements SeedSource.
func (s *RandSource) NextSeed() Color {
	return RandomSeed(s.rng)
}

// RandomSeed returns an opaque color with each channel uniform in [0, 1).
func RandomSeed(rng *rand.Rand) Color {
	return RGB(rng.Float64(), rng.Float64(), rng.Float64())
}

// Generate colors a grid for topo starting from seed.
//
// The center tile gets the seed, the three control tiles get the seed
// marked toward red, blue and green, and every other tile is filled by a
// breadth-first sweep from the control tiles: each tile becomes the faded
// blend of its already-colored neighbors. A tile is colored exactly once.
//
// Propagation always follows the full 3-neighbor rule; the topology's mode
// only selects which neighbors contribute to a tile's blend.
func Generate(topo Topology, seed Color) *Grid {
	g := NewGrid(topo)

	ctl := topo.ControlCoords()
	g.set(topo.Start(), Colored(seed))
	g.set(ctl[0], Colored(MarkChannel(seed, ChannelRed)))
	g.set(ctl[1], Colored(MarkChannel(seed, ChannelBlue)))
	g.set(ctl[2], Colored(MarkChannel(seed, ChannelGreen)))

	queue := make([]Coord, 0, g.Size()*maxQueueFanout)
	for _, c := range ctl {
		queue = append(queue, Neighbors(c.Row, c.Col)...)
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if !g.InBounds(cur) || g.Cell(cur).Set {
			continue
		}

		blended := g.blendNeighbors(topo.Neighbors(cur))
		if !blended.Set && topo.Mode() == NeighborsTrimmed {
			// Trimmed sources can all be pending; fall back to the full rule.
			blended = g.blendNeighbors(Neighbors(cur.Row, cur.Col))
		}
		if !blended.Set {
			continue
		}

		g.set(cur, FadeCell(blended))
		queue = append(queue, Neighbors(cur.Row, cur.Col)...)
	}

	return g
}

// maxQueueFanout is the number of coordinates pushed per colored tile.
const maxQueueFanout = 3

// blendNeighbors folds Blend over the in-bounds coordinates, starting
// from Unset.
func (g *Grid) blendNeighbors(coords []Coord) Cell {
	acc := Unset()
	for _, c := range coords {
		if g.InBounds(c) {
			acc = Blend(acc, g.Cell(c))
		}
	}
	return acc
}

// GenerateRows validates rowCount and generates a grid with a seed drawn
// from src. It returns the grid together with the seed.
func GenerateRows(rowCount int, mode NeighborMode, src SeedSource) (*Grid, Color, error) {
	topo, err := NewTopology(rowCount, mode)
	if err != nil {
		return nil, Color{}, err
	}
	seed := src.NextSeed()
	return Generate(topo, seed), seed, nil
}
