package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termsweeper/config"
	"termsweeper/engine"
	"termsweeper/session"
	"termsweeper/types"
)

func TestBannerText(t *testing.T) {
	tests := []struct {
		banner types.Banner
		want   string
	}{
		{types.BannerNone, ""},
		{types.BannerVictory, "[green::b]Victory![-:-:-]"},
		{types.BannerLost, "[red::b]Lost![-:-:-]"},
		{types.BannerInvalid, "[orange::b]Invalid action![-:-:-]"},
	}
	for _, tt := range tests {
		if got := bannerText(tt.banner); got != tt.want {
			t.Errorf("bannerText(%+v) = %q, want %q", tt.banner, got, tt.want)
		}
	}
}

func TestInfoPanelShowsFlagsAndBanner(t *testing.T) {
	p := NewGameInfoPanel()
	p.SetView(&session.View{
		FlagsUsed: 3,
		Size:      8,
		NumMines:  10,
		Banner:    types.BannerVictory,
	}, "size 8 minesweeper board with 10 mines")

	text := p.Text()
	for _, want := range []string{
		"size 8 minesweeper board with 10 mines",
		"Flags used:[-:-:-] 3",
		"Mines:[-:-:-] 10",
		"Max mines hint:[-:-:-] 54",
		"Victory!",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("panel text %q does not contain %q", text, want)
		}
	}

	p.SetView(nil, "")
	if p.Text() != "" {
		t.Errorf("panel text = %q after clearing, want empty", p.Text())
	}
}

func TestGameSetupConfig(t *testing.T) {
	var started engine.GameConfig
	setup := NewGameSetup(config.DefaultConfig.Engine, func(c engine.GameConfig, url string) {
		started = c
	}, func() {}, nil)

	cfg, err := setup.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.BoardSize != 8 || cfg.NumMines != 10 {
		t.Errorf("Config = %+v, want the engine defaults", cfg)
	}

	// The max mines hint is advisory only.
	setup.numMines = 200
	if _, err := setup.Config(); err != nil {
		t.Errorf("Config with many mines: %v", err)
	}

	tests := []struct {
		name  string
		apply func(*GameSetupUI)
	}{
		{"board too small", func(s *GameSetupUI) { s.boardSize = 1 }},
		{"board too large", func(s *GameSetupUI) { s.boardSize = config.MaxBoardSize + 1 }},
		{"no mines", func(s *GameSetupUI) { s.numMines = 0 }},
		{"no url", func(s *GameSetupUI) { s.url = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := *setup
			s.boardSize, s.numMines, s.url = 8, 10, "http://localhost:5000"
			tt.apply(&s)
			if _, err := s.Config(); err == nil {
				t.Error("Config succeeded, want an error")
			}
		})
	}
	if started != (engine.GameConfig{}) {
		t.Errorf("onStart called without pressing Start: %+v", started)
	}
}

func TestCenterPage(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(100, 40)

	inner := tview.NewBox()
	page := CenterPage(inner, 60, 16)
	page.SetRect(0, 0, 100, 40)
	page.Draw(screen)

	x, y, w, h := inner.GetRect()
	if x != 20 || y != 12 || w != 60 || h != 16 {
		t.Errorf("inner rect = %d,%d %dx%d, want 20,12 60x16", x, y, w, h)
	}
}
