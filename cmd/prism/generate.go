package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	pcore "github.com/vovakirdan/tui-prism/internal/games/prism/core"
)

var (
	flagGenRows  int
	flagGenMode  string
	flagGenAlpha bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a generated grid as hex values",
	Long: `Generate one puzzle and print every tile as RRGGBB, row by row.
The center tile is shown in brackets, control tiles in parentheses and
uncolored tiles as dashes.

Examples:
  prism generate
  prism generate --rows 6 --seed 7
  prism generate --mode trimmed --alpha`,
	Args: cobra.NoArgs,
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&flagGenRows, "rows", 10, "Number of grid rows")
	generateCmd.Flags().StringVar(&flagGenMode, "mode", "full", "Neighbor mode: full or trimmed")
	generateCmd.Flags().BoolVar(&flagGenAlpha, "alpha", false, "Append each tile's alpha")
}

func runGenerate(cmd *cobra.Command, args []string) {
	var mode pcore.NeighborMode
	switch strings.ToLower(flagGenMode) {
	case "full":
		mode = pcore.NeighborsFull
	case "trimmed":
		mode = pcore.NeighborsTrimmed
	default:
		fatal("unknown neighbor mode %q (want full or trimmed)", flagGenMode)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	grid, color, err := pcore.GenerateRows(flagGenRows, mode, pcore.NewRandSource(seed))
	if err != nil {
		fatal("%v", err)
	}
	topo := grid.Topology()

	fmt.Printf("seed %d  rows %d  mode %s  answer #%s\n\n", seed, topo.Rows(), topo.Mode(), pcore.HexColor(color))
	for row, rows := 0, grid.RowCount(); row < rows; row++ {
		cells := make([]string, 0, grid.RowWidth(row))
		if row%2 == 1 {
			// Narrow rows start one slot in.
			cells = append(cells, strings.Repeat(" ", len(formatTile(pcore.Color{}, false))+2))
		}
		for col, cols := 0, grid.RowWidth(row); col < cols; col++ {
			c, ok := grid.ColorAt(row, col)
			tile := formatTile(c, ok)
			at := pcore.C(row, col)
			switch {
			case at == topo.Start():
				tile = "[" + tile + "]"
			case isControl(topo, at):
				tile = "(" + tile + ")"
			default:
				tile = " " + tile + " "
			}
			cells = append(cells, tile)
		}
		fmt.Println(strings.Join(cells, ""))
	}
}

func formatTile(c pcore.Color, ok bool) string {
	width := 6
	if flagGenAlpha {
		width = 9
	}
	if !ok {
		return strings.Repeat("-", width)
	}
	if flagGenAlpha {
		return fmt.Sprintf("%s/%02X", pcore.HexColor(c), int(c.A*255+0.5))
	}
	return pcore.HexColor(c)
}

func isControl(topo pcore.Topology, c pcore.Coord) bool {
	_, ok := topo.ControlChannel(c)
	return ok
}
