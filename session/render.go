package session

import "termsweeper/types"

// Render merges the overlay with a display value.
// A flag is only drawn while the cell is hidden; once revealed the cell's own glyph wins.
func Render(cell types.Cell, flagged bool) types.Glyph {
	if flagged && cell.IsHidden() {
		return types.GlyphFlag
	}
	return types.GlyphFor(cell)
}

// CellView is one rendered cell.
type CellView struct {
	Glyph  types.Glyph
	Dimmed bool
}

// View is a rendered copy of a session, safe to draw without the session lock.
type View struct {
	Cells     [][]CellView
	FlagsUsed int
	Banner    types.Banner
	Phase     types.Phase
	Pending   bool
	Size      int
	NumMines  int
	Status    string
}

// Dimmed reports whether cells are drawn with the ended modifier.
func (v *View) Dimmed() bool {
	return v.Phase.Terminal()
}

func renderBoard(cells [][]types.Cell, flags *FlagOverlay, dimmed bool) [][]CellView {
	out := make([][]CellView, len(cells))
	for r := range cells {
		out[r] = make([]CellView, len(cells[r]))
		for c, cell := range cells[r] {
			out[r][c] = CellView{
				Glyph:  Render(cell, flags.IsFlagged(types.BoardPos{Row: r, Col: c})),
				Dimmed: dimmed,
			}
		}
	}
	return out
}
