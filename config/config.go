package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

var (
	cfgFile = "termsweeper/config.json"
	logFile = "termsweeper/debug.log"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	CoveredColor     int    `json:"covered"`
	CoveredColorAlt  int    `json:"covered_alt"`
	RevealedColor    int    `json:"revealed"`
	RevealedColorAlt int    `json:"revealed_alt"`
	FlagColor        int    `json:"flag"`
	MineColor        int    `json:"bomb"`
	BoomColorBG      int    `json:"boom_bg"`
	CursorColorBG    int    `json:"cursor_bg"`
	NumberColors     [9]int `json:"numbers"`
}

type ConfigSymbols struct {
	Unrevealed rune `json:"unrevealed"`
	Flag       rune `json:"flag"`
	Empty      rune `json:"empty"`
	Bomb       rune `json:"bomb"`
	Boom       rune `json:"boom"`
}

type Theme struct {
	DrawCellBackground   bool          `json:"draw_cell_bg"`
	DrawCursorBackground bool          `json:"draw_cursor_bg"`
	DimFinishedBoard     bool          `json:"dim_finished_board"`
	Colors               ConfigColors  `json:"colors"`
	Symbols              ConfigSymbols `json:"symbols"`
}

// EngineConfig holds remote engine settings.
type EngineConfig struct {
	URL              string `json:"url"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	DefaultBoardSize int    `json:"default_board_size"`
	DefaultMines     int    `json:"default_mines"`
}

// Timeout returns the per request timeout.
func (e EngineConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

type LogConfig struct {
	Debug bool   `json:"debug"`
	Path  string `json:"path"`
}

type Config struct {
	Theme  Theme        `json:"theme"`
	Engine EngineConfig `json:"engine"`
	Log    LogConfig    `json:"log"`
}

// Board size limits accepted by the setup form and flags.
const (
	MinBoardSize = 2
	MaxBoardSize = 30
)

func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig
		return &config, nil
	}
	return Load(absPath)
}

// Load reads a config file over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	s := c.Theme.Symbols
	for _, r := range []rune{s.Unrevealed, s.Flag, s.Empty, s.Bomb, s.Boom} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if c.Engine.URL == "" {
		return &InvalidConfig{"engine url is required"}
	}
	if c.Engine.TimeoutSeconds < 0 {
		return &InvalidConfig{"engine timeout must not be negative"}
	}
	if c.Engine.DefaultBoardSize < MinBoardSize || c.Engine.DefaultBoardSize > MaxBoardSize {
		return &InvalidConfig{fmt.Sprintf("default board size must be between %d and %d", MinBoardSize, MaxBoardSize)}
	}
	if c.Engine.DefaultMines < 1 {
		return &InvalidConfig{"default mines must be at least 1"}
	}
	return nil
}

// LogPath returns the debug log location, under the XDG state dir by default.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	return xdg.StateFile(logFile)
}

// MaxMinesHint is the largest mine count suggested for a board.
// It is advisory: nothing enforces it, neither for mines nor for flags.
func MaxMinesHint(boardSize int) int {
	n := boardSize*boardSize - 10
	if n < 1 {
		n = 1
	}
	return n
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
