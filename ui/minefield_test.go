package ui

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termsweeper/config"
	"termsweeper/engine"
	"termsweeper/session"
	"termsweeper/types"
)

type stubEngine struct {
	mu      sync.Mutex
	start   string
	replies []string
	moves   int
}

func (e *stubEngine) Start(ctx context.Context, cfg engine.GameConfig) ([]byte, error) {
	return []byte(e.start), nil
}

func (e *stubEngine) Move(ctx context.Context, action int, gameID json.RawMessage) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.moves++
	r := e.replies[0]
	e.replies = e.replies[1:]
	return []byte(r), nil
}

func (e *stubEngine) Close() error { return nil }

func newTestField(t *testing.T, eng *stubEngine) (*MinefieldUI, *session.Session) {
	t.Helper()
	cfg := config.DefaultConfig
	s, err := session.Start(context.Background(), eng, engine.GameConfig{BoardSize: 2, NumMines: 1}, nil)
	if err != nil {
		t.Fatalf("session.Start: %v", err)
	}
	m := NewMinefield(tview.NewApplication(), &cfg, tview.NewTextView(), nil)
	return m, s
}

func TestCellStyleRunes(t *testing.T) {
	m, s := newTestField(t, &stubEngine{start: `{"board":[[9,3],[0,9]]}`})
	s.ToggleFlag(0, 0)
	m.SetSession(s)

	sym := m.cfg.Theme.Symbols
	tests := []struct {
		row, col int
		want     rune
	}{
		{0, 0, sym.Flag},
		{0, 1, '3'},
		{1, 0, sym.Empty},
		{1, 1, ' '},
	}
	for _, tt := range tests {
		r, style := m.cellStyle(m.view.Cells[tt.row][tt.col], tt.row, tt.col, false)
		if r != tt.want {
			t.Errorf("cell (%d,%d) rune = %q, want %q", tt.row, tt.col, r, tt.want)
		}
		if _, _, attr := style.Decompose(); attr&tcell.AttrDim != 0 {
			t.Errorf("cell (%d,%d) is dimmed during play", tt.row, tt.col)
		}
	}

	_, style := m.cellStyle(m.view.Cells[0][1], 0, 1, true)
	if _, bg, _ := style.Decompose(); bg != m.styles[colCursorBG] {
		t.Errorf("selected background = %v, want cursor color", bg)
	}
}

func TestFinishedBoardIsDimmed(t *testing.T) {
	eng := &stubEngine{
		start:   `{"board":[[9,9],[9,9]]}`,
		replies: []string{`{"actual_board":[[-1,1],[1,1]],"info":{"result":"lose"}}`},
	}
	m, s := newTestField(t, eng)
	if err := s.Reveal(context.Background(), 0, 0); err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	m.SetSession(s)

	if !m.IsFinished() {
		t.Fatal("IsFinished = false after a loss")
	}
	r, style := m.cellStyle(m.view.Cells[0][0], 0, 0, false)
	if r != m.cfg.Theme.Symbols.Boom {
		t.Errorf("last move rune = %q, want %q", r, m.cfg.Theme.Symbols.Boom)
	}
	if _, bg, attr := style.Decompose(); attr&tcell.AttrDim == 0 || bg != m.styles[colBoomBG] {
		t.Errorf("last move style = %v %v, want dimmed on boom background", bg, attr)
	}
	if !strings.Contains(m.hint.GetText(false), types.BannerLost.Text) {
		t.Errorf("hint = %q, want the loss banner", m.hint.GetText(false))
	}
}

func TestDrawAndCellAt(t *testing.T) {
	m, s := newTestField(t, &stubEngine{start: `{"board":[[9,3],[0,9]]}`})
	m.SetSession(s)

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 10)

	m.draw(screen, 0, 0, 20, 10)
	if r, _, _, _ := screen.GetContent(1+cellWidth, 0); r != '3' {
		t.Errorf("content at cell (0,1) = %q, want '3'", r)
	}

	tests := []struct {
		x, y     int
		row, col int
		ok       bool
	}{
		{1, 0, 0, 0, true},
		{2, 0, 0, 0, true},
		{3, 1, 1, 1, true},
		{0, 0, 0, 0, false},
		{5, 0, 0, 0, false},
		{1, 2, 0, 0, false},
	}
	for _, tt := range tests {
		row, col, ok := m.cellAt(tt.x, tt.y)
		if ok != tt.ok || (ok && (row != tt.row || col != tt.col)) {
			t.Errorf("cellAt(%d, %d) = %d, %d, %v, want %d, %d, %v", tt.x, tt.y, row, col, ok, tt.row, tt.col, tt.ok)
		}
	}
}

func TestRevealFlaggedCellSendsNothing(t *testing.T) {
	eng := &stubEngine{start: `{"board":[[9,9],[9,9]]}`}
	m, s := newTestField(t, eng)
	m.SetSession(s)

	m.ToggleFlag(1, 1)
	if m.view.Cells[1][1].Glyph != types.GlyphFlag {
		t.Fatalf("glyph = %v, want flag", m.view.Cells[1][1].Glyph)
	}
	m.Reveal(1, 1)
	if eng.moves != 0 {
		t.Errorf("engine saw %d moves, want 0", eng.moves)
	}
	if s.Pending() {
		t.Error("session is pending after an ignored reveal")
	}
}

func TestMoveSelection(t *testing.T) {
	m, s := newTestField(t, &stubEngine{start: `{}`})
	m.SetSession(s)

	m.MoveSelection(0, 1)
	if sel := m.SelectedTile(); sel == nil || *sel != (types.BoardPos{Row: 1, Col: 1}) {
		t.Fatalf("first move selects %v, want the center (1,1)", sel)
	}
	m.MoveSelection(1, 0)
	if sel := m.SelectedTile(); *sel != (types.BoardPos{Row: 1, Col: 1}) {
		t.Errorf("selection left the board: %v", sel)
	}
	m.MoveSelection(-1, -1)
	if sel := m.SelectedTile(); *sel != (types.BoardPos{Row: 0, Col: 0}) {
		t.Errorf("selection = %v, want (0,0)", sel)
	}
	m.ResetSelection()
	if m.SelectedTile() != nil {
		t.Error("selection survived reset")
	}
}
