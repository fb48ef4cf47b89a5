package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termsweeper/config"
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	status    *tview.TextView
	cfg       *config.Config
	onDone    func()

	// Current selection
	selectedCovered  int
	selectedRevealed int
	editingRevealed  bool // true = editing revealed cells, false = editing covered cells
}

type paletteEntry struct {
	code int
	name string
}

// Covered cell colors, light tones that stand out from revealed cells
var coveredColors = []paletteEntry{
	{250, "Gray"},
	{252, "Light Gray"},
	{248, "Medium Gray"},
	{244, "Dark Gray"},
	{109, "Steel Blue"},
	{110, "Light Steel Blue"},
	{67, "Slate Blue"},
	{151, "Pale Green"},
	{108, "Sage"},
	{180, "Tan"},
	{222, "Gold"},
	{223, "Peach"},
}

// Revealed cell colors, darker tones the numbers contrast with
var revealedColors = []paletteEntry{
	{236, "Dark Gray"},
	{235, "Charcoal"},
	{234, "Almost Black"},
	{238, "Graphite"},
	{240, "Gray"},
	{17, "Navy Blue"},
	{23, "Teal"},
	{22, "Dark Green"},
	{52, "Dark Maroon"},
	{54, "Purple"},
	{16, "True Black"},
	{231, "White"},
}

// previewBoard is drawn by the preview; -2 is a flag, -1 a covered cell.
var previewBoard = [5][5]int{
	{0, 0, 1, -1, -1},
	{0, 1, 2, -2, -1},
	{1, 2, -2, 3, -1},
	{-1, -1, 2, 1, 1},
	{-1, -1, 1, 0, 0},
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:              cfg,
		onDone:           onDone,
		selectedCovered:  cfg.Theme.Colors.CoveredColor,
		selectedRevealed: cfg.Theme.Colors.RevealedColor,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.SetBorderColor(MenuColors.Border)
	cc.colorList.SetTitleColor(MenuColors.Title)
	cc.colorList.SetSelectedBackgroundColor(MenuColors.Selected)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	// Selection change previews the color
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		entries := cc.entries()
		if index < 0 || index >= len(entries) {
			return
		}
		if cc.editingRevealed {
			cc.selectedRevealed = entries[index].code
		} else {
			cc.selectedCovered = entries[index].code
		}
	})

	// Enter applies it
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(cc.entries()) {
			return
		}
		cc.apply()
		if err := cc.cfg.Save(); err != nil {
			cc.status.SetText(fmt.Sprintf("[#%06x]Could not save config: %s[-]", MenuColors.Error.Hex(), err))
			return
		}
		if cc.editingRevealed {
			// Switch back to covered color selection
			cc.editingRevealed = false
			cc.populateColorList()
			return
		}
		cc.status.SetText("")
		onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetBorderColor(MenuColors.Border)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.status = tview.NewTextView().SetDynamicColors(true)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(cc.preview, 0, 1, false).
		AddItem(cc.status, 1, 0, false)

	// Layout: list on left, preview on right
	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 32, 0, true).
		AddItem(right, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) entries() []paletteEntry {
	if cc.editingRevealed {
		return revealedColors
	}
	return coveredColors
}

// apply writes the previewed colors into the theme.
func (cc *ColorConfigUI) apply() {
	colors := &cc.cfg.Theme.Colors
	colors.CoveredColor = cc.selectedCovered
	colors.CoveredColorAlt = cc.selectedCovered
	colors.RevealedColor = cc.selectedRevealed
	colors.RevealedColorAlt = cc.selectedRevealed
}

// populateColorList fills the list with appropriate colors based on editing mode.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	current := cc.selectedCovered
	if cc.editingRevealed {
		cc.colorList.SetTitle(" Revealed Color (Tab: covered) ")
		current = cc.selectedRevealed
	} else {
		cc.colorList.SetTitle(" Covered Color (Tab: revealed) ")
	}
	for i, c := range cc.entries() {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range cc.entries() {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	size := len(previewBoard)
	if width < size*cellWidth+4 || height < size+4 {
		return x, y, width, height
	}

	colors := cc.cfg.Theme.Colors
	symbols := cc.cfg.Theme.Symbols
	covered := tcell.StyleDefault.Background(tcell.PaletteColor(cc.selectedCovered))
	revealed := tcell.StyleDefault.Background(tcell.PaletteColor(cc.selectedRevealed))

	startX := x + 2
	startY := y + 1
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			var r rune
			var style tcell.Style
			switch v := previewBoard[row][col]; {
			case v == -2:
				r = symbols.Flag
				style = covered.Foreground(tcell.PaletteColor(colors.FlagColor))
			case v == -1:
				r = ' '
				style = covered
			case v == 0:
				r = symbols.Empty
				style = revealed.Foreground(tcell.PaletteColor(colors.NumberColors[0]))
			default:
				r = rune('0' + v)
				style = revealed.Foreground(tcell.PaletteColor(colors.NumberColors[v]))
			}
			drawCell(screen, style, r, startX+col*cellWidth, startY+row)
		}
	}

	info := fmt.Sprintf("Covered: %d  Revealed: %d", cc.selectedCovered, cc.selectedRevealed)
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+size+1, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between covered and revealed color editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingRevealed = !cc.editingRevealed
	cc.populateColorList()
}
