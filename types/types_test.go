package types

import "testing"

func TestGlyphFor(t *testing.T) {
	tests := []struct {
		cell Cell
		want Glyph
	}{
		{Cell{}, GlyphUnrevealed},
		{HiddenCell(), GlyphUnrevealed},
		{RevealedCell(0), Glyph0},
		{RevealedCell(5), Glyph5},
		{DetonatedCell(), GlyphBomb},
		{LastMoveCell(), GlyphBoom},
	}
	for _, tt := range tests {
		if got := GlyphFor(tt.cell); got != tt.want {
			t.Errorf("GlyphFor(%v) = %v, want %v", tt.cell, got, tt.want)
		}
	}
}

func TestGlyphNames(t *testing.T) {
	want := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "unrevealed", "flag", "bomb", "boom"}
	if len(want) != NumGlyphs {
		t.Fatalf("NumGlyphs = %d, want %d", NumGlyphs, len(want))
	}
	for i, name := range want {
		if got := Glyph(i).String(); got != name {
			t.Errorf("Glyph(%d) = %q, want %q", i, got, name)
		}
	}
}

func TestRevealedCellRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RevealedCell(9) did not panic")
		}
	}()
	RevealedCell(9)
}

func TestPhaseTerminal(t *testing.T) {
	if Active.Terminal() || !Won.Terminal() || !Lost.Terminal() {
		t.Error("only won and lost are terminal")
	}
}
