// Package config provides YAML-based configuration loading and difficulty
// presets for Prism.
package config

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

//go:embed defaults/prism.yaml
var defaultPrismYAML []byte

// PrismConfig contains all tunables of the game.
type PrismConfig struct {
	Grid        GridConfig        `yaml:"grid"`
	Guess       GuessConfig       `yaml:"guess"`
	Celebration CelebrationConfig `yaml:"celebration"`
	Render      RenderConfig      `yaml:"render"`
}

// GridConfig controls the size of generated grids.
type GridConfig struct {
	Rows    int `yaml:"rows"`     // Fixed row count; 0 fits the grid to the screen
	MinRows int `yaml:"min_rows"` // Lower bound when fitting to the screen
	MaxRows int `yaml:"max_rows"` // Upper bound when fitting to the screen
}

// GuessConfig controls how input changes the guess.
type GuessConfig struct {
	DragMultiplier float64 `yaml:"drag_multiplier"` // Channel units per drag pixel
	PixelsPerCell  float64 `yaml:"pixels_per_cell"` // Drag pixels per terminal row of mouse motion
	KeyStep        int     `yaml:"key_step"`        // Channel units per +/- key press
}

// CelebrationConfig controls the reward shown after a good reveal.
type CelebrationConfig struct {
	Threshold  float64 `yaml:"threshold"`   // Accuracy that must be exceeded
	DurationMs int     `yaml:"duration_ms"` // How long the celebration lasts
}

// RenderConfig controls how tile colors reach the terminal.
type RenderConfig struct {
	// CompositeAlpha blends each tile over Background using its alpha.
	// When false, alpha is ignored and tiles render at full strength.
	CompositeAlpha bool   `yaml:"composite_alpha"`
	Background     string `yaml:"background"`
	ShowDeltaE     bool   `yaml:"show_delta_e"`
}

// Bounds on configurable values.
const (
	MinGridRows = 2
	MaxGridRows = 64
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("config: invalid prism config")

// DefaultPrismConfig returns the hardcoded configuration, used when no YAML
// source can be read.
func DefaultPrismConfig() PrismConfig {
	return PrismConfig{
		Grid: GridConfig{
			Rows:    0,
			MinRows: 4,
			MaxRows: 16,
		},
		Guess: GuessConfig{
			DragMultiplier: 0.4,
			PixelsPerCell:  16,
			KeyStep:        8,
		},
		Celebration: CelebrationConfig{
			Threshold:  0.9,
			DurationMs: 2000,
		},
		Render: RenderConfig{
			CompositeAlpha: false,
			Background:     "#FFFFFF",
			ShowDeltaE:     true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPrismYAML
}

// Validate reports the first invalid field, wrapped around ErrInvalidConfig.
func (c PrismConfig) Validate() error {
	switch {
	case c.Grid.Rows != 0 && (c.Grid.Rows < MinGridRows || c.Grid.Rows > MaxGridRows):
		return fmt.Errorf("%w: grid.rows must be 0 or in [%d, %d], got %d", ErrInvalidConfig, MinGridRows, MaxGridRows, c.Grid.Rows)
	case c.Grid.MinRows < MinGridRows:
		return fmt.Errorf("%w: grid.min_rows must be at least %d, got %d", ErrInvalidConfig, MinGridRows, c.Grid.MinRows)
	case c.Grid.MaxRows < c.Grid.MinRows || c.Grid.MaxRows > MaxGridRows:
		return fmt.Errorf("%w: grid.max_rows must be in [min_rows, %d], got %d", ErrInvalidConfig, MaxGridRows, c.Grid.MaxRows)
	case c.Guess.DragMultiplier <= 0:
		return fmt.Errorf("%w: guess.drag_multiplier must be positive, got %v", ErrInvalidConfig, c.Guess.DragMultiplier)
	case c.Guess.PixelsPerCell <= 0:
		return fmt.Errorf("%w: guess.pixels_per_cell must be positive, got %v", ErrInvalidConfig, c.Guess.PixelsPerCell)
	case c.Guess.KeyStep <= 0 || c.Guess.KeyStep > 255:
		return fmt.Errorf("%w: guess.key_step must be in [1, 255], got %d", ErrInvalidConfig, c.Guess.KeyStep)
	case c.Celebration.Threshold <= 0 || c.Celebration.Threshold > 1:
		return fmt.Errorf("%w: celebration.threshold must be in (0, 1], got %v", ErrInvalidConfig, c.Celebration.Threshold)
	case c.Celebration.DurationMs < 0:
		return fmt.Errorf("%w: celebration.duration_ms must not be negative, got %d", ErrInvalidConfig, c.Celebration.DurationMs)
	}
	if _, err := colorful.Hex(c.Render.Background); err != nil {
		return fmt.Errorf("%w: render.background must be #RRGGBB, got %q", ErrInvalidConfig, c.Render.Background)
	}
	return nil
}
