// Package ui specifies custom controls for tview to play minesweeper in the terminal.
package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"termsweeper/config"
	"termsweeper/session"
	"termsweeper/types"
)

// cellWidth is the number of terminal columns per cell, for a square look.
const cellWidth = 2

// Palette indexes into MinefieldUI.styles.
const (
	colCovered = iota
	colCoveredAlt
	colRevealed
	colRevealedAlt
	colFlag
	colMine
	colBoomBG
	colCursorBG
	colNumber0 // 9 entries follow
)

type MinefieldUI struct {
	Box       *tview.Box
	session   *session.Session
	view      *session.View
	hint      *tview.TextView
	cfg       *config.Config
	selRow    int
	selCol    int
	originX   int
	originY   int
	app       *tview.Application
	styles    []tcell.Color
	infoPanel *GameInfoPanel
	log       *zap.Logger
	timeout   time.Duration
}

func NewMinefield(app *tview.Application, c *config.Config, hint *tview.TextView, log *zap.Logger) *MinefieldUI {
	if log == nil {
		log = zap.NewNop()
	}
	field := &MinefieldUI{
		Box:     tview.NewBox(),
		hint:    hint,
		app:     app,
		log:     log,
		selRow:  -1,
		selCol:  -1,
		timeout: c.Engine.Timeout(),
	}
	field.SetConfig(c)
	field.Box.SetDrawFunc(field.draw)
	field.Box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action != tview.MouseLeftClick && action != tview.MouseRightClick {
			return action, event
		}
		mx, my := event.Position()
		row, col, ok := field.cellAt(mx, my)
		if !ok {
			return action, event
		}
		field.selRow, field.selCol = row, col
		if action == tview.MouseLeftClick {
			field.Reveal(row, col)
		} else {
			field.ToggleFlag(row, col)
		}
		return action, nil
	})
	return field
}

// SetSession swaps in a new game. The previous session is closed.
func (m *MinefieldUI) SetSession(s *session.Session) {
	if m.session != nil && m.session != s {
		m.closeSession(m.session)
	}
	m.session = s
	m.ResetSelection()
	if s != nil {
		s.OnChange(func() {
			m.app.QueueUpdateDraw(func() {
				if m.session == s {
					m.refresh()
				}
			})
		})
	}
	m.refresh()
}

// Session returns the current game, nil before the first game.
func (m *MinefieldUI) Session() *session.Session {
	return m.session
}

func (m *MinefieldUI) SelectedTile() *types.BoardPos {
	if m.selRow == -1 && m.selCol == -1 {
		return nil
	}
	return &types.BoardPos{Row: m.selRow, Col: m.selCol}
}

func (m *MinefieldUI) MoveSelection(dRow, dCol int) {
	if m.view == nil {
		return
	}
	if m.SelectedTile() == nil {
		// Start from the board center
		m.selRow = m.view.Size / 2
		m.selCol = m.view.Size / 2
		return
	}
	if m.selRow+dRow < 0 || m.selRow+dRow >= m.view.Size {
		return
	}
	if m.selCol+dCol < 0 || m.selCol+dCol >= m.view.Size {
		return
	}
	m.selRow += dRow
	m.selCol += dCol
}

func (m *MinefieldUI) ResetSelection() {
	m.selRow = -1
	m.selCol = -1
}

// Reveal submits a reveal without blocking the event loop.
// The board redraws when the engine answers.
func (m *MinefieldUI) Reveal(row, col int) {
	s := m.session
	if s == nil {
		return
	}
	if s.Phase().Terminal() || s.Pending() {
		return
	}
	if s.IsFlagged(row, col) && s.Cell(row, col).IsHidden() {
		return
	}
	go func() {
		ctx := context.Background()
		if m.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, m.timeout)
			defer cancel()
		}
		err := s.Reveal(ctx, row, col)
		if err == nil {
			return
		}
		if !errors.Is(err, session.ErrCellFlagged) {
			m.log.Debug("reveal not applied", zap.Error(err))
		}
		// Gated moves never reach OnChange; clear the waiting hint.
		m.app.QueueUpdateDraw(func() {
			if m.session == s {
				m.refresh()
			}
		})
	}()
	if m.hint != nil {
		m.hint.SetText("  ◌ Waiting for engine...")
	}
}

// ToggleFlag flips the flag under (row, col) if the game allows it.
func (m *MinefieldUI) ToggleFlag(row, col int) {
	if m.session == nil {
		return
	}
	if m.session.ToggleFlag(row, col) {
		m.refresh()
	}
}

// RevealSelected reveals the cell under the cursor.
func (m *MinefieldUI) RevealSelected() {
	if sel := m.SelectedTile(); sel != nil {
		m.Reveal(sel.Row, sel.Col)
	}
}

// FlagSelected toggles the flag under the cursor.
func (m *MinefieldUI) FlagSelected() {
	if sel := m.SelectedTile(); sel != nil {
		m.ToggleFlag(sel.Row, sel.Col)
	}
}

// Close ends the current game.
func (m *MinefieldUI) Close() {
	if m.session == nil {
		return
	}
	m.closeSession(m.session)
	m.session = nil
	m.view = nil
}

// closeSession closes s off the UI goroutine; a websocket close waits for an
// in-flight move.
func (m *MinefieldUI) closeSession(s *session.Session) {
	go func() {
		if err := s.Close(); err != nil {
			m.log.Debug("closing session", zap.Error(err))
		}
	}()
}

func (m *MinefieldUI) SetConfig(c *config.Config) {
	colors := c.Theme.Colors
	m.styles = []tcell.Color{
		tcell.PaletteColor(colors.CoveredColor),     // 0
		tcell.PaletteColor(colors.CoveredColorAlt),  // 1
		tcell.PaletteColor(colors.RevealedColor),    // 2
		tcell.PaletteColor(colors.RevealedColorAlt), // 3
		tcell.PaletteColor(colors.FlagColor),        // 4
		tcell.PaletteColor(colors.MineColor),        // 5
		tcell.PaletteColor(colors.BoomColorBG),      // 6
		tcell.PaletteColor(colors.CursorColorBG),    // 7
	}
	for _, n := range colors.NumberColors {
		m.styles = append(m.styles, tcell.PaletteColor(n)) // 8..16
	}
	m.cfg = c
}

// refresh re-renders the session and updates the side panels.
func (m *MinefieldUI) refresh() {
	if m.session != nil {
		m.view = m.session.Snapshot()
	}
	if m.infoPanel != nil {
		m.infoPanel.SetView(m.view, m.settings())
	}
	m.refreshHint()
}

func (m *MinefieldUI) settings() string {
	if m.session == nil {
		return ""
	}
	return m.session.Settings()
}

func (m *MinefieldUI) refreshHint() {
	if m.hint == nil {
		return
	}
	if m.view == nil {
		m.hint.SetText("")
		return
	}

	var statusLine, controlsLine string
	switch {
	case m.view.Phase.Terminal():
		statusLine = fmt.Sprintf("  %s\n", m.view.Banner.Text)
		controlsLine = "  n · new game   q · return to menu"
	case m.view.Pending:
		statusLine = "  ◌ Waiting for engine...\n"
	case m.view.Status != "":
		statusLine = fmt.Sprintf("  %s\n", m.view.Status)
	}
	if controlsLine == "" {
		controlsLine = "  click/⏎ reveal   right-click/f flag   hjkl/↑↓←→ move   n new   q quit"
	}
	m.hint.SetText(statusLine + controlsLine)
}

// IsFinished returns true if the game is over.
func (m *MinefieldUI) IsFinished() bool {
	return m.view != nil && m.view.Phase.Terminal()
}

func (m *MinefieldUI) draw(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
	if m.view == nil || m.view.Size == 0 {
		return x, y, 1, 1
	}
	size := m.view.Size
	m.originX, m.originY = x+1, y
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			selected := row == m.selRow && col == m.selCol
			r, style := m.cellStyle(m.view.Cells[row][col], row, col, selected)
			drawCell(screen, style, r, m.originX+col*cellWidth, m.originY+row)
		}
	}
	return x, y, size*cellWidth + 1, size
}

// cellStyle picks the rune and style of one cell.
func (m *MinefieldUI) cellStyle(cv session.CellView, row, col int, selected bool) (rune, tcell.Style) {
	theme := m.cfg.Theme
	alt := (row%2+col%2) == 1

	bg := m.styles[colRevealed]
	if alt {
		bg = m.styles[colRevealedAlt]
	}
	var r rune
	var fg tcell.Color
	switch g := cv.Glyph; {
	case g == types.GlyphUnrevealed || g == types.GlyphFlag:
		bg = m.styles[colCovered]
		if alt {
			bg = m.styles[colCoveredAlt]
		}
		r, fg = theme.Symbols.Unrevealed, m.styles[colCovered]
		if g == types.GlyphFlag {
			r, fg = theme.Symbols.Flag, m.styles[colFlag]
		} else if theme.DrawCellBackground {
			r = ' '
		}
	case g == types.Glyph0:
		r, fg = theme.Symbols.Empty, m.styles[colNumber0]
	case g > types.Glyph0 && g <= types.Glyph8:
		r, fg = rune('0'+int(g)), m.styles[colNumber0+int(g)]
	case g == types.GlyphBomb:
		r, fg = theme.Symbols.Bomb, m.styles[colMine]
	case g == types.GlyphBoom:
		r, fg = theme.Symbols.Boom, m.styles[colMine]
		bg = m.styles[colBoomBG]
	}

	style := tcell.StyleDefault.Foreground(fg)
	if theme.DrawCellBackground {
		style = style.Background(bg)
	}
	if selected && theme.DrawCursorBackground {
		style = style.Background(m.styles[colCursorBG])
	}
	if cv.Dimmed && theme.DimFinishedBoard {
		style = style.Dim(true)
	}
	return r, style
}

// cellAt maps a screen position to a board cell.
func (m *MinefieldUI) cellAt(sx, sy int) (int, int, bool) {
	if m.view == nil {
		return 0, 0, false
	}
	if sx < m.originX || sy < m.originY {
		return 0, 0, false
	}
	row := sy - m.originY
	col := (sx - m.originX) / cellWidth
	if row >= m.view.Size || col >= m.view.Size {
		return 0, 0, false
	}
	return row, col, true
}

// drawCell draws a cell (2 characters wide)
func drawCell(s tcell.Screen, c tcell.Style, r rune, l, t int) {
	s.SetContent(l, t, r, nil, c)
	s.SetContent(l+1, t, ' ', nil, c)
}
