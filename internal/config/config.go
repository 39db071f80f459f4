// Package config provides YAML-based game configuration loading and
// board size presets for the battleship game.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/games/battleship"
)

// BattleshipConfig contains all configuration for the battleship game.
type BattleshipConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Display DisplayConfig `yaml:"display"`
	Palette []string      `yaml:"palette"` // Boat colors by name, see core.ParseColor
}

// BoardConfig defines the sea size and how far setup may grow it.
type BoardConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
}

// DisplayConfig defines presentation parameters.
type DisplayConfig struct {
	CellWidth      int `yaml:"cell_width"`       // Characters per tile
	FinishLingerMS int `yaml:"finish_linger_ms"` // How long the finish overlay ignores input
}

// SizePreset represents a named board size.
type SizePreset string

const (
	SizeSmall  SizePreset = "small"
	SizeNormal SizePreset = "normal"
	SizeLarge  SizePreset = "large"
)

// SizePresets lists the presets in menu order.
var SizePresets = []SizePreset{SizeSmall, SizeNormal, SizeLarge}

// ParseSizePreset validates a preset name.
func ParseSizePreset(name string) (SizePreset, error) {
	p := SizePreset(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case SizeSmall, SizeNormal, SizeLarge:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown size %q (use small, normal or large)", name)
}

// Dimensions returns the board width and height of a preset.
func (p SizePreset) Dimensions() (width, height int) {
	switch p {
	case SizeSmall:
		return 6, 6
	case SizeLarge:
		return 10, 10
	default:
		return 8, 8
	}
}

// ApplySizePreset sets the board size from a preset, raising the maximum
// when the preset exceeds it.
func ApplySizePreset(cfg *BattleshipConfig, preset SizePreset) {
	w, h := preset.Dimensions()
	ApplySize(cfg, w, h)
}

// ApplySize sets explicit board dimensions. Non-positive values keep the
// current dimension.
func ApplySize(cfg *BattleshipConfig, width, height int) {
	if width > 0 {
		cfg.Board.Width = width
		cfg.Board.MaxWidth = max(cfg.Board.MaxWidth, width)
	}
	if height > 0 {
		cfg.Board.Height = height
		cfg.Board.MaxHeight = max(cfg.Board.MaxHeight, height)
	}
}

// Validate checks the configuration for values the game cannot use.
func (c BattleshipConfig) Validate() error {
	b := c.Board
	if b.Width < 1 || b.Height < 1 {
		return fmt.Errorf("config: board size must be at least 1x1, got %dx%d", b.Width, b.Height)
	}
	if b.MaxWidth < b.Width || b.MaxHeight < b.Height {
		return fmt.Errorf("config: board maximum %dx%d is smaller than the board %dx%d",
			b.MaxWidth, b.MaxHeight, b.Width, b.Height)
	}
	if c.Display.CellWidth < 1 || c.Display.CellWidth > 4 {
		return fmt.Errorf("config: cell_width must be between 1 and 4, got %d", c.Display.CellWidth)
	}
	if c.Display.FinishLingerMS < 0 {
		return fmt.Errorf("config: finish_linger_ms must not be negative, got %d", c.Display.FinishLingerMS)
	}
	for _, name := range c.Palette {
		if _, ok := core.ParseColor(name); !ok {
			return fmt.Errorf("config: unknown palette color %q", name)
		}
	}
	return nil
}

// GameOptions converts the configuration into game options.
// Unknown palette colors are skipped.
func (c BattleshipConfig) GameOptions() battleship.Options {
	opts := battleship.Options{
		Width:        c.Board.Width,
		Height:       c.Board.Height,
		MaxWidth:     c.Board.MaxWidth,
		MaxHeight:    c.Board.MaxHeight,
		CellWidth:    c.Display.CellWidth,
		FinishLinger: time.Duration(c.Display.FinishLingerMS) * time.Millisecond,
	}
	for _, name := range c.Palette {
		if color, ok := core.ParseColor(name); ok {
			opts.Palette = append(opts.Palette, color)
		}
	}
	return opts
}
