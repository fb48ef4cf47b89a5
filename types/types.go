// Package types contains shared data structures for termsweeper.
package types

import "fmt"

// BoardPos represents a position on the board.
// Row and Col are 0-based, row 0 is the top row.
type BoardPos struct {
	Row int
	Col int
}

func (p BoardPos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// CellKind tags the display value of a cell.
type CellKind int

const (
	Hidden CellKind = iota
	Revealed
	Detonated
	LastMove
)

func (k CellKind) String() string {
	switch k {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Detonated:
		return "detonated"
	case LastMove:
		return "last_move"
	}
	return fmt.Sprintf("CellKind(%d)", int(k))
}

// Cell is the canonical display value of one cell as reported by the engine.
// The zero value is a hidden cell.
type Cell struct {
	kind  CellKind
	count int
}

// HiddenCell returns a cell that has not been revealed yet.
func HiddenCell() Cell { return Cell{kind: Hidden} }

// RevealedCell returns a revealed cell with n adjacent mines. n must be in [0,8].
func RevealedCell(n int) Cell {
	if n < 0 || n > 8 {
		panic(fmt.Sprintf("types: adjacency count %d out of range", n))
	}
	return Cell{kind: Revealed, count: n}
}

// DetonatedCell returns a mine cell, only shown after the game ended.
func DetonatedCell() Cell { return Cell{kind: Detonated} }

// LastMoveCell returns the cell whose reveal lost the game.
func LastMoveCell() Cell { return Cell{kind: LastMove} }

// Kind returns the cell tag.
func (c Cell) Kind() CellKind { return c.kind }

// Count returns the adjacency count. Only meaningful for revealed cells.
func (c Cell) Count() int { return c.count }

// IsHidden reports whether the cell is still unrevealed.
func (c Cell) IsHidden() bool { return c.kind == Hidden }

func (c Cell) String() string {
	if c.kind == Revealed {
		return fmt.Sprintf("revealed(%d)", c.count)
	}
	return c.kind.String()
}

// Glyph identifies what is drawn for a cell.
// The numbered glyphs share their value with the adjacency count.
type Glyph int

const (
	Glyph0 Glyph = iota
	Glyph1
	Glyph2
	Glyph3
	Glyph4
	Glyph5
	Glyph6
	Glyph7
	Glyph8
	GlyphUnrevealed
	GlyphFlag
	GlyphBomb
	GlyphBoom
)

// NumGlyphs is the size of the glyph set.
const NumGlyphs = 13

// String returns the glyph name used for assets and config keys.
func (g Glyph) String() string {
	switch {
	case g >= Glyph0 && g <= Glyph8:
		return fmt.Sprintf("%d", int(g))
	case g == GlyphUnrevealed:
		return "unrevealed"
	case g == GlyphFlag:
		return "flag"
	case g == GlyphBomb:
		return "bomb"
	case g == GlyphBoom:
		return "boom"
	}
	return fmt.Sprintf("Glyph(%d)", int(g))
}

// GlyphFor returns the glyph for a display value, ignoring flags.
func GlyphFor(c Cell) Glyph {
	switch c.kind {
	case Revealed:
		return Glyph(c.count)
	case Detonated:
		return GlyphBomb
	case LastMove:
		return GlyphBoom
	}
	return GlyphUnrevealed
}

// Phase is the client side game phase.
type Phase int

const (
	Active Phase = iota
	Won
	Lost
)

// Terminal returns true if the game is over.
func (p Phase) Terminal() bool {
	return p == Won || p == Lost
}

func (p Phase) String() string {
	switch p {
	case Active:
		return "active"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// BannerColor is the semantic color of the outcome banner.
type BannerColor int

const (
	ColorNone BannerColor = iota
	ColorGreen
	ColorRed
	ColorOrange
)

// Banner is the outcome message shown under the board.
type Banner struct {
	Text  string
	Color BannerColor
}

var (
	BannerNone    = Banner{}
	BannerVictory = Banner{Text: "Victory!", Color: ColorGreen}
	BannerLost    = Banner{Text: "Lost!", Color: ColorRed}
	BannerInvalid = Banner{Text: "Invalid action!", Color: ColorOrange}
)

// NewHiddenBoard creates an all hidden board of the given size.
func NewHiddenBoard(size int) [][]Cell {
	board := make([][]Cell, size)
	for i := range board {
		board[i] = make([]Cell, size)
	}
	return board
}
