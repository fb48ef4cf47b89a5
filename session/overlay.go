package session

import "termsweeper/types"

// FlagOverlay is the client owned flag mask. The engine never sees it.
type FlagOverlay struct {
	mask  [][]bool
	count int
}

// NewFlagOverlay returns an all clear overlay for a size x size board.
func NewFlagOverlay(size int) *FlagOverlay {
	o := &FlagOverlay{}
	o.Reset(size)
	return o
}

// Reset reallocates an all clear mask of the given size.
func (o *FlagOverlay) Reset(size int) {
	o.mask = make([][]bool, size)
	for i := range o.mask {
		o.mask[i] = make([]bool, size)
	}
	o.count = 0
}

// Toggle flips the flag at pos and returns the new value.
// Gating on phase and cell state is the caller's job.
func (o *FlagOverlay) Toggle(pos types.BoardPos) bool {
	if !o.inside(pos) {
		return false
	}
	v := !o.mask[pos.Row][pos.Col]
	o.mask[pos.Row][pos.Col] = v
	if v {
		o.count++
	} else {
		o.count--
	}
	return v
}

// IsFlagged reports whether pos carries a flag.
func (o *FlagOverlay) IsFlagged(pos types.BoardPos) bool {
	return o.inside(pos) && o.mask[pos.Row][pos.Col]
}

// Count returns the number of flags, including flags on cells revealed since.
func (o *FlagOverlay) Count() int {
	return o.count
}

// Size returns the board size the overlay was reset to.
func (o *FlagOverlay) Size() int {
	return len(o.mask)
}

func (o *FlagOverlay) inside(pos types.BoardPos) bool {
	return pos.Row >= 0 && pos.Row < len(o.mask) && pos.Col >= 0 && pos.Col < len(o.mask)
}
