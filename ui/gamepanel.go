package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"termsweeper/config"
	"termsweeper/session"
	"termsweeper/types"
)

// GameInfoPanel displays game information alongside the board.
type GameInfoPanel struct {
	box      *tview.TextView
	view     *session.View
	settings string
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetView updates the panel with the current rendered game.
func (p *GameInfoPanel) SetView(view *session.View, settings string) {
	p.view = view
	p.settings = settings
	p.refresh()
}

// Text returns the panel content, color tags included.
func (p *GameInfoPanel) Text() string {
	return p.box.GetText(false)
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	if p.view == nil {
		p.box.SetText("")
		return
	}

	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	if p.settings != "" {
		text += fmt.Sprintf("[dimgray]%s[-]\n\n", p.settings)
	}

	text += fmt.Sprintf("[white]Flags used:[-:-:-] %d\n", p.view.FlagsUsed)
	text += fmt.Sprintf("[white]Mines:[-:-:-] %d\n", p.view.NumMines)
	text += fmt.Sprintf("[white]Max mines hint:[-:-:-] %d\n", config.MaxMinesHint(p.view.Size))

	if banner := bannerText(p.view.Banner); banner != "" {
		text += "\n" + banner + "\n"
	}

	p.box.SetText(text)
}

// bannerText renders the outcome banner with its color.
func bannerText(b types.Banner) string {
	if b.Text == "" {
		return ""
	}
	color := "white"
	switch b.Color {
	case types.ColorGreen:
		color = "green"
	case types.ColorRed:
		color = "red"
	case types.ColorOrange:
		color = "orange"
	}
	return fmt.Sprintf("[%s::b]%s[-:-:-]", color, b.Text)
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *MinefieldUI, hint *tview.TextView) *tview.Flex {
	// Create the info panel
	infoPanel := NewGameInfoPanel()

	// Store panel reference in board for updates
	board.infoPanel = infoPanel

	// Create horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)         // Board (flexible, takes remaining space)
	boardRow.AddItem(infoPanel.Box(), 30, 0, false) // Info panel (fixed width)

	// Main vertical flex: board area on top, compact status bar at bottom
	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(hint, 4, 0, false)

	return mainFlex
}

// CenterPage centers p in a box of at most width x height cells.
func CenterPage(p tview.Primitive, width, height int) *tview.Flex {
	row := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(p, height, 0, true).
		AddItem(nil, 0, 1, false)
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(row, width, 0, true).
		AddItem(nil, 0, 1, false)
}
