package config

import (
	_ "embed"
)

//go:embed defaults/battleship.yaml
var defaultBattleshipYAML []byte

// DefaultBattleshipConfig returns the default battleship configuration.
func DefaultBattleshipConfig() BattleshipConfig {
	return BattleshipConfig{
		Board: BoardConfig{
			Width:     8,
			Height:    8,
			MaxWidth:  20,
			MaxHeight: 16,
		},
		Display: DisplayConfig{
			CellWidth:      2,
			FinishLingerMS: 3000,
		},
		Palette: []string{
			"red",
			"orange",
			"yellow",
			"lime",
			"cyan",
			"bright_blue",
			"magenta",
			"pink",
		},
	}
}
