package prism

import (
	"github.com/vovakirdan/tui-prism/internal/config"
	"github.com/vovakirdan/tui-prism/internal/core"
	pcore "github.com/vovakirdan/tui-prism/internal/games/prism/core"
)

// Layout constants, in screen cells.
const (
	tileCols  = 3 // Width of one tile step
	tileLines = 2 // Height of one tile row
	rowSlots  = 7 // Tile steps spanned by an even (widest) row

	hudTop    = 3 // Title, readout, spacer
	hudBottom = 3 // Spacer, swatches, accuracy bar

	// minPlayableRows is the smallest grid whose center row exists.
	// With two rows the center lands on row 2, outside the grid.
	minPlayableRows = 3
)

// layout maps tiles to screen rectangles and back.
//
// Triangles tessellate on a grid of slots: tile (r, c) sits in slot c on
// even rows and slot c+1 on odd rows, so an up triangle always shares its
// slot with the down triangle directly below it.
type layout struct {
	originX int
	originY int
	rows    int
}

func newLayout(screenW, rows int) layout {
	return layout{
		originX: (screenW - gridWidth()) / 2,
		originY: hudTop,
		rows:    rows,
	}
}

func gridWidth() int {
	return rowSlots * tileCols
}

// fitRows picks the grid size for a screen height. A fixed row count in
// cfg wins over fitting.
func fitRows(screenH int, cfg config.GridConfig) int {
	if cfg.Rows > 0 {
		return max(cfg.Rows, minPlayableRows)
	}
	rows := (screenH - hudTop - hudBottom) / tileLines
	rows = core.Clamp(rows, cfg.MinRows, cfg.MaxRows)
	return max(rows, minPlayableRows)
}

func slot(c pcore.Coord) int {
	if c.Row%2 == 0 {
		return c.Col
	}
	return c.Col + 1
}

func colForSlot(row, s int) int {
	if row%2 == 0 {
		return s
	}
	return s - 1
}

// bounds is the screen area covered by the grid.
func (l layout) bounds() core.Rect {
	return core.NewRect(l.originX, l.originY, gridWidth(), l.rows*tileLines)
}

// fits reports whether the grid and HUD fit on a screen.
func (l layout) fits(screenW, screenH int) bool {
	return screenW >= gridWidth() && screenH >= hudTop+l.rows*tileLines+hudBottom
}

func (l layout) tileRect(c pcore.Coord) core.Rect {
	return core.NewRect(
		l.originX+slot(c)*tileCols,
		l.originY+c.Row*tileLines,
		tileCols,
		tileLines,
	)
}

// tileAt returns the tile under screen cell (x, y).
func (l layout) tileAt(x, y int) (pcore.Coord, bool) {
	if !l.bounds().Contains(x, y) {
		return pcore.Coord{}, false
	}
	row := (y - l.originY) / tileLines
	col := colForSlot(row, (x-l.originX)/tileCols)
	if col < 0 || col >= pcore.RowWidth(row) {
		return pcore.Coord{}, false
	}
	return pcore.C(row, col), true
}

// moveCursor steps the keyboard cursor. Vertical moves keep the slot so
// the cursor travels straight up and down.
func moveCursor(c pcore.Coord, dRow, dCol, rows int) pcore.Coord {
	if dRow != 0 {
		row := core.Clamp(c.Row+dRow, 0, rows-1)
		col := colForSlot(row, slot(c))
		return pcore.C(row, core.Clamp(col, 0, pcore.RowWidth(row)-1))
	}
	return pcore.C(c.Row, core.Clamp(c.Col+dCol, 0, pcore.RowWidth(c.Row)-1))
}
