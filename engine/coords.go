package engine

import "fmt"

// Coordinate system:
// - Row: 0..size-1, top to bottom
// - Col: 0..size-1, left to right
// - Action: row-major index, the only wire representation of a move
// - Example: (2, 3) on an 8x8 board -> 19

// EncodeMove converts board coordinates to the action code the engine expects.
// Coordinates come from rendered cells, so out of range input is a bug and panics.
func EncodeMove(row, col, size int) int {
	if row < 0 || row >= size || col < 0 || col >= size {
		panic(fmt.Sprintf("engine: move (%d,%d) outside %dx%d board", row, col, size, size))
	}
	return row*size + col
}
