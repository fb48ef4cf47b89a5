// termsweeper is a terminal client to play minesweeper against a remote engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"termsweeper/config"
	"termsweeper/engine"
	_ "termsweeper/engine/httpengine"
	_ "termsweeper/engine/wsengine"
	"termsweeper/logging"
	"termsweeper/session"
	"termsweeper/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagURL        = flag.String("url", "", "Engine URL (http://, https://, ws:// or wss://)")
	flagBoardSize  = flag.Int("size", 0, "Board size (cells per side)")
	flagMines      = flag.Int("mines", 0, "Number of mines")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagDebug      = flag.Bool("debug", false, "Write debug level logs")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.MinefieldUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var log *zap.Logger

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("termsweeper %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *flagURL != "" {
		cfg.Engine.URL = *flagURL
	}
	if *flagDebug {
		cfg.Log.Debug = true
	}

	log = setupLogger()
	defer log.Sync()
	zap.ReplaceGlobals(log)
	log.Info("termsweeper starting", zap.String("version", Version), zap.String("engine", cfg.Engine.URL))

	quickStart := *flagQuickStart || *flagBoardSize > 0 || *flagMines > 0

	app = tview.NewApplication()
	app.EnableMouse(true)
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ✸ termsweeper ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewMinefield(app, cfg, gameHint, log)

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	// Game board input handling
	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if gameBoard.SelectedTile() != nil {
				gameBoard.ResetSelection()
			} else {
				gameBoard.Close()
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveSelection(-1, 0)
		case tcell.KeyDown:
			gameBoard.MoveSelection(1, 0)
		case tcell.KeyLeft:
			gameBoard.MoveSelection(0, -1)
		case tcell.KeyRight:
			gameBoard.MoveSelection(0, 1)
		case tcell.KeyEnter:
			gameBoard.RevealSelected()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveSelection(0, -1)
			case 'j':
				gameBoard.MoveSelection(1, 0)
			case 'k':
				gameBoard.MoveSelection(-1, 0)
			case 'l':
				gameBoard.MoveSelection(0, 1)
			case ' ':
				gameBoard.RevealSelected()
			case 'f':
				gameBoard.FlagSelected()
			case 'n':
				if s := gameBoard.Session(); s != nil {
					startGame(s.Config(), cfg.Engine.URL)
				}
			}
		}
		return event
	})

	// Game setup screen
	setupUI := ui.NewGameSetup(cfg.Engine,
		func(gameCfg engine.GameConfig, url string) {
			cfg.Engine.URL = url
			startGame(gameCfg, url)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	// Esc leaves from the setup screen; every other key goes to the form.
	setupUI.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			app.Stop()
			return nil
		}
		return event
	})

	// Color configuration screen
	colorConfig := ui.NewColorConfig(cfg, func() {
		// Refresh the game board with new colors
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	// Add pages - start on setup by default, or gameview if quick start
	rootPage.AddPage("setup", ui.CenterPage(setupUI.Form(), 60, 16), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(buildGameConfigFromFlags(), cfg.Engine.URL)
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		log.Error("ui stopped", zap.Error(err))
		panic(err)
	}
	if s := gameBoard.Session(); s != nil {
		s.Close()
	}
}

// setupLogger opens the debug log. Logging is never a reason not to play.
func setupLogger() *zap.Logger {
	path, err := cfg.LogPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %s\n", err)
		return logging.Nop()
	}
	l, err := logging.New(path, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %s\n", err)
		return logging.Nop()
	}
	return l
}

// startGame connects to the engine and starts a game off the UI goroutine.
func startGame(gameCfg engine.GameConfig, url string) {
	gameHint.SetText("  ◌ Connecting to " + url + "...")
	rootPage.SwitchToPage("gameview")

	go func() {
		eng, err := engine.New(engine.Options{URL: url, Timeout: cfg.Engine.Timeout()})
		if err != nil {
			app.QueueUpdateDraw(func() { showError(err) })
			return
		}

		ctx := context.Background()
		if t := cfg.Engine.Timeout(); t > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, t)
			defer cancel()
		}
		s, err := session.Start(ctx, eng, gameCfg, log)
		if err != nil {
			eng.Close()
			log.Warn("game start failed", zap.Error(err), zap.String("engine", url))
			app.QueueUpdateDraw(func() { showError(err) })
			return
		}
		app.QueueUpdateDraw(func() {
			gameBoard.SetSession(s)
		})
	}()
}

func showError(err error) {
	modal := tview.NewModal().
		SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("error")
			rootPage.SwitchToPage("setup")
		})
	rootPage.AddPage("error", modal, true, true)
}

// buildGameConfigFromFlags creates a GameConfig from command-line flags.
func buildGameConfigFromFlags() engine.GameConfig {
	gameCfg := engine.GameConfig{
		BoardSize: cfg.Engine.DefaultBoardSize,
		NumMines:  cfg.Engine.DefaultMines,
	}

	if *flagBoardSize >= config.MinBoardSize && *flagBoardSize <= config.MaxBoardSize {
		gameCfg.BoardSize = *flagBoardSize
	}

	// Mines above the max hint are passed through; the engine decides.
	if *flagMines >= 1 {
		gameCfg.NumMines = *flagMines
	}

	return gameCfg
}
