package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCellBackground:   true,
		DrawCursorBackground: true,
		DimFinishedBoard:     true,
		Colors: ConfigColors{
			CoveredColor:     250,
			CoveredColorAlt:  248,
			RevealedColor:    236,
			RevealedColorAlt: 237,
			FlagColor:        196,
			MineColor:        255,
			BoomColorBG:      160,
			CursorColorBG:    4,
			NumberColors: [9]int{
				240, // 0
				33,  // 1
				34,  // 2
				196, // 3
				19,  // 4
				88,  // 5
				37,  // 6
				255, // 7
				244, // 8
			},
		},
		Symbols: ConfigSymbols{
			Unrevealed: '■',
			Flag:       '⚑',
			Empty:      '·',
			Bomb:       '✱',
			Boom:       '✸',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Engine: EngineConfig{
			URL:              "http://localhost:5000",
			TimeoutSeconds:   10,
			DefaultBoardSize: 8,
			DefaultMines:     10,
		},
	}
}
