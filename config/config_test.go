package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	c := DefaultConfig
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.Engine.Timeout() != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", c.Engine.Timeout())
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `{"engine":{"url":"ws://mines.local/ws","default_board_size":12,"default_mines":20,"timeout_seconds":3}}`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Engine.URL != "ws://mines.local/ws" {
		t.Errorf("URL = %q", c.Engine.URL)
	}
	if c.Engine.DefaultBoardSize != 12 || c.Engine.DefaultMines != 20 {
		t.Errorf("defaults = %d/%d, want 12/20", c.Engine.DefaultBoardSize, c.Engine.DefaultMines)
	}
	if c.Theme.Symbols.Flag != DefaultTheme.Symbols.Flag {
		t.Errorf("theme not kept from defaults: flag = %q", c.Theme.Symbols.Flag)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Engine != DefaultConfig.Engine {
		t.Errorf("Engine = %+v, want defaults", c.Engine)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad json", `{"engine":`},
		{"control symbol", `{"theme":{"symbols":{"flag":7}}}`},
		{"no url", `{"engine":{"url":""}}`},
		{"board too large", `{"engine":{"default_board_size":99}}`},
		{"no mines", `{"engine":{"default_mines":0}}`},
		{"negative timeout", `{"engine":{"timeout_seconds":-1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			var invalid *InvalidConfig
			if !errors.As(err, &invalid) {
				t.Errorf("err = %v, want *InvalidConfig", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	c := DefaultConfig
	c.Theme.Colors.CoveredColor = 180
	if err := saveCfgFile(path, &c, 0644); err != nil {
		t.Fatalf("saveCfgFile: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Theme.Colors.CoveredColor != 180 {
		t.Errorf("CoveredColor = %d, want 180", loaded.Theme.Colors.CoveredColor)
	}
}

func TestMaxMinesHint(t *testing.T) {
	tests := []struct{ size, want int }{
		{8, 54},
		{10, 90},
		{3, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := MaxMinesHint(tt.size); got != tt.want {
			t.Errorf("MaxMinesHint(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestLogPathOverride(t *testing.T) {
	c := DefaultConfig
	c.Log.Path = "/tmp/x.log"
	if p, err := c.LogPath(); err != nil || p != "/tmp/x.log" {
		t.Errorf("LogPath = %q, %v", p, err)
	}
}
