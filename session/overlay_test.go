package session

import (
	"testing"

	"termsweeper/reply"
	"termsweeper/types"
)

func TestFlagOverlay(t *testing.T) {
	o := NewFlagOverlay(3)
	a := types.BoardPos{Row: 0, Col: 2}
	b := types.BoardPos{Row: 2, Col: 1}

	if !o.Toggle(a) || !o.Toggle(b) {
		t.Fatal("Toggle should set the flag")
	}
	if o.Count() != 2 {
		t.Errorf("Count = %d, want 2", o.Count())
	}
	if o.Toggle(a) {
		t.Error("second Toggle should clear the flag")
	}
	if o.IsFlagged(a) || !o.IsFlagged(b) || o.Count() != 1 {
		t.Errorf("after untoggle: a=%v b=%v count=%d", o.IsFlagged(a), o.IsFlagged(b), o.Count())
	}

	if o.Toggle(types.BoardPos{Row: 3, Col: 0}) || o.IsFlagged(types.BoardPos{Row: -1, Col: 0}) {
		t.Error("out of range positions must be ignored")
	}

	o.Reset(5)
	if o.Size() != 5 || o.Count() != 0 || o.IsFlagged(b) {
		t.Errorf("Reset: size=%d count=%d", o.Size(), o.Count())
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		cell    types.Cell
		flagged bool
		want    types.Glyph
	}{
		{types.HiddenCell(), false, types.GlyphUnrevealed},
		{types.HiddenCell(), true, types.GlyphFlag},
		{types.RevealedCell(0), true, types.Glyph0},
		{types.RevealedCell(8), false, types.Glyph8},
		{types.DetonatedCell(), true, types.GlyphBomb},
		{types.LastMoveCell(), false, types.GlyphBoom},
	}
	for _, tt := range tests {
		if got := Render(tt.cell, tt.flagged); got != tt.want {
			t.Errorf("Render(%v, %v) = %v, want %v", tt.cell, tt.flagged, got, tt.want)
		}
	}
}

func TestPhaseController(t *testing.T) {
	var p PhaseController
	if p.Phase() != types.Active || !p.AcceptsFlags() {
		t.Fatal("controller must start active")
	}
	if err := p.BeginMove(); err != nil {
		t.Fatalf("BeginMove: %v", err)
	}
	if err := p.BeginMove(); err != ErrMovePending {
		t.Errorf("BeginMove while pending = %v, want ErrMovePending", err)
	}
	p.FinishMove(reply.Rejected)
	if p.Pending() || p.Phase() != types.Active {
		t.Errorf("after rejected: pending=%v phase=%v", p.Pending(), p.Phase())
	}

	p.BeginMove()
	p.AbortMove()
	if p.Pending() {
		t.Error("AbortMove left the move pending")
	}

	p.BeginMove()
	p.FinishMove(reply.Win)
	if p.Phase() != types.Won || p.AcceptsFlags() {
		t.Errorf("after win: phase=%v flags=%v", p.Phase(), p.AcceptsFlags())
	}
	if err := p.BeginMove(); err != ErrGameOver {
		t.Errorf("BeginMove after win = %v, want ErrGameOver", err)
	}
	p.FinishMove(reply.Lose)
	if p.Phase() != types.Won {
		t.Errorf("terminal phase changed to %v", p.Phase())
	}
}
