package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termsweeper/config"
	"termsweeper/engine"
)

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	mines    *tview.InputField
	errText  *tview.TextView
	onStart  func(engine.GameConfig, string)
	onCancel func()
	onColors func()

	boardSize int
	numMines  int
	url       string
}

func digitsOnly(text string, lastChar rune) bool {
	return lastChar >= '0' && lastChar <= '9'
}

func minesLabel(boardSize int) string {
	return fmt.Sprintf("Mines (max %d)", config.MaxMinesHint(boardSize))
}

// NewGameSetup creates a new game setup form prefilled from the engine config.
func NewGameSetup(ec config.EngineConfig, onStart func(engine.GameConfig, string), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:   onStart,
		onCancel:  onCancel,
		onColors:  onColors,
		boardSize: ec.DefaultBoardSize,
		numMines:  ec.DefaultMines,
		url:       ec.URL,
	}

	form := tview.NewForm()

	form.AddInputField("Board size", strconv.Itoa(setup.boardSize), 6, digitsOnly, func(text string) {
		if val, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			setup.boardSize = val
			if setup.mines != nil {
				setup.mines.SetLabel(minesLabel(val))
			}
		}
	})

	setup.mines = tview.NewInputField().
		SetLabel(minesLabel(setup.boardSize)).
		SetText(strconv.Itoa(setup.numMines)).
		SetFieldWidth(6).
		SetAcceptanceFunc(digitsOnly).
		SetChangedFunc(func(text string) {
			if val, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
				setup.numMines = val
			}
		})
	form.AddFormItem(setup.mines)

	form.AddInputField("Engine URL", setup.url, 40, nil, func(text string) {
		setup.url = strings.TrimSpace(text)
	})

	form.AddButton("Start Game", func() {
		cfg, err := setup.Config()
		if err != nil {
			setup.errText.SetText(err.Error())
			return
		}
		setup.errText.SetText("")
		onStart(cfg, setup.url)
	})

	form.AddButton("Colors", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetBorderColor(MenuColors.Border)
	form.SetTitleColor(MenuColors.Title)
	form.SetLabelColor(MenuColors.Label)
	form.SetFieldBackgroundColor(MenuColors.FieldBG)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	setup.errText = tview.NewTextView().SetTextAlign(tview.AlignCenter)
	setup.errText.SetTextColor(MenuColors.Error)

	// Create help text
	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	// Create flex layout with form and help text
	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(setup.errText, 1, 0, false).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// Config validates the form and returns the game to start.
// The mine count is not checked against the max hint.
func (s *GameSetupUI) Config() (engine.GameConfig, error) {
	if s.boardSize < config.MinBoardSize || s.boardSize > config.MaxBoardSize {
		return engine.GameConfig{}, fmt.Errorf("board size must be between %d and %d", config.MinBoardSize, config.MaxBoardSize)
	}
	if s.numMines < 1 {
		return engine.GameConfig{}, fmt.Errorf("at least one mine is required")
	}
	if s.url == "" {
		return engine.GameConfig{}, fmt.Errorf("engine url is required")
	}
	return engine.GameConfig{BoardSize: s.boardSize, NumMines: s.numMines}, nil
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
// Form fields see keys only after the capture passes them on.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
