package session

import (
	"errors"

	"termsweeper/reply"
	"termsweeper/types"
)

var (
	// ErrGameOver is returned for input after the game was won or lost.
	ErrGameOver = errors.New("game is over")
	// ErrMovePending is returned while a previous move has not resolved.
	ErrMovePending = errors.New("move already in flight")
)

// PhaseController gates input on the game phase.
//
//	Active --BeginMove--> Active+pending --FinishMove(win|lose)--> Won | Lost
//	                                     --FinishMove(other)/AbortMove--> Active
//
// Won and Lost are terminal; only a new session returns to Active.
type PhaseController struct {
	phase   types.Phase
	pending bool
}

// Phase returns the current phase.
func (p *PhaseController) Phase() types.Phase {
	return p.phase
}

// Pending reports whether a move is in flight.
func (p *PhaseController) Pending() bool {
	return p.pending
}

// AcceptsFlags reports whether flag input is allowed. Flags do not wait for pending moves.
func (p *PhaseController) AcceptsFlags() bool {
	return p.phase == types.Active
}

// BeginMove claims the single move slot.
func (p *PhaseController) BeginMove() error {
	if p.phase.Terminal() {
		return ErrGameOver
	}
	if p.pending {
		return ErrMovePending
	}
	p.pending = true
	return nil
}

// FinishMove releases the move slot and applies the outcome's transition.
func (p *PhaseController) FinishMove(o reply.Outcome) {
	p.pending = false
	if p.phase.Terminal() {
		return
	}
	if next, ok := o.Phase(); ok {
		p.phase = next
	}
}

// AbortMove releases the move slot without a transition.
func (p *PhaseController) AbortMove() {
	p.pending = false
}
