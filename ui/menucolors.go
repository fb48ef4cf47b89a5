package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette of the setup and color screens. The minefield
// takes its colors from the config theme instead.
var MenuColors = struct {
	Border     tcell.Color
	Title      tcell.Color
	Label      tcell.Color
	Hint       tcell.Color
	FieldBG    tcell.Color
	Selected   tcell.Color // list highlight
	ButtonBG   tcell.Color
	ButtonText tcell.Color
	Error      tcell.Color
}{
	Border:     tcell.PaletteColor(60),
	Title:      tcell.PaletteColor(255),
	Label:      tcell.PaletteColor(250),
	Hint:       tcell.PaletteColor(245),
	FieldBG:    tcell.PaletteColor(238),
	Selected:   tcell.PaletteColor(109),
	ButtonBG:   tcell.PaletteColor(60),
	ButtonText: tcell.PaletteColor(255),
	Error:      tcell.PaletteColor(208),
}
