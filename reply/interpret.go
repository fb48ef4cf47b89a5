package reply

import (
	"fmt"

	"termsweeper/types"
)

// Outcome is the game outcome signaled by a move reply.
type Outcome int

const (
	Continue Outcome = iota
	Win
	Lose
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Rejected:
		return "invalid action"
	}
	return "unknown"
}

// Phase returns the phase a reply moves the game to, if any.
func (o Outcome) Phase() (types.Phase, bool) {
	switch o {
	case Win:
		return types.Won, true
	case Lose:
		return types.Lost, true
	}
	return types.Active, false
}

// Interpretation is a move reply in canonical form.
type Interpretation struct {
	Outcome Outcome
	// Cells is the full display grid, nil for rejected moves.
	Cells  [][]types.Cell
	Banner types.Banner
}

// Interpret normalizes a decoded move reply for the move at pos on a size x size board.
func Interpret(r MoveReply, pos types.BoardPos, size int) (*Interpretation, error) {
	outcome, grid, err := resolve(r)
	if err != nil {
		return nil, err
	}
	if outcome == Rejected {
		return &Interpretation{Outcome: Rejected, Banner: types.BannerInvalid}, nil
	}

	cells, err := toCells(grid, size)
	if err != nil {
		return nil, err
	}
	it := &Interpretation{Outcome: outcome, Cells: cells}
	switch outcome {
	case Win:
		it.Banner = types.BannerVictory
	case Lose:
		it.Banner = types.BannerLost
		if pos.Row >= 0 && pos.Row < size && pos.Col >= 0 && pos.Col < size {
			cells[pos.Row][pos.Col] = types.LastMoveCell()
		}
	}
	return it, nil
}

// InitialBoard returns the board of a start reply. Engines that do not send
// one get an all hidden board.
func InitialBoard(r *StartReply, size int) ([][]types.Cell, error) {
	if r == nil || r.Board == nil {
		return types.NewHiddenBoard(size), nil
	}
	return toCells(r.Board, size)
}

// resolve picks the outcome and the grid that carries it.
func resolve(r MoveReply) (Outcome, wireGrid, error) {
	switch r := r.(type) {
	case *TaggedReply:
		switch r.Result {
		case "", "continue":
			return Continue, r.Board, nil
		case "win", "lose":
			outcome := Win
			if r.Result == "lose" {
				outcome = Lose
			}
			if r.ActualBoard != nil {
				return outcome, r.ActualBoard, nil
			}
			return outcome, r.Board, nil
		case "invalid action", "invalid":
			return Rejected, nil, nil
		}
		return 0, nil, malformed("unknown result %q", r.Result)
	case *LegacyReply:
		switch {
		case r.Done && r.Reward > 0:
			return Win, r.Board, nil
		case r.Done:
			return Lose, r.Board, nil
		case r.Reward == 0:
			// Legacy engines reward 0 for an already revealed tile.
			return Rejected, nil, nil
		}
		return Continue, r.Board, nil
	case nil:
		return 0, nil, malformed("empty reply")
	}
	return 0, nil, malformed("unsupported reply convention %q", r.convention())
}

func toCells(grid wireGrid, size int) ([][]types.Cell, error) {
	if grid == nil {
		return nil, malformed("missing board")
	}
	if len(grid) != size {
		return nil, malformed("board has %d rows, want %d", len(grid), size)
	}
	cells := types.NewHiddenBoard(size)
	for row := range grid {
		if len(grid[row]) != size {
			return nil, malformed("row %d has %d cells, want %d", row, len(grid[row]), size)
		}
		for col, v := range grid[row] {
			cell, err := toCell(v)
			if err != nil {
				return nil, malformed("cell (%d,%d): %v", row, col, err)
			}
			cells[row][col] = cell
		}
	}
	return cells, nil
}

func toCell(v wireCell) (types.Cell, error) {
	switch {
	case v == wireMine:
		return types.DetonatedCell(), nil
	case v == wireHidden:
		return types.HiddenCell(), nil
	case v >= 0 && v <= 8:
		return types.RevealedCell(int(v)), nil
	}
	return types.Cell{}, fmt.Errorf("value %d out of range", int(v))
}
