package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// FixedRows is the row count the fixed preset uses when grid.rows is unset.
const FixedRows = 10

// Presets lists the known presets in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset converts a flag value to a preset. The empty string means
// no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, p := range Presets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// ApplyPrismPreset modifies the config based on a difficulty preset.
//
// Easy lowers the celebration bar and makes drags coarser, hard raises the
// bar and makes drags finer, and fixed pins the grid size so every puzzle
// has the same shape regardless of the terminal.
func ApplyPrismPreset(cfg *PrismConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Celebration.Threshold = 0.8
		cfg.Guess.DragMultiplier = 0.6
		cfg.Guess.KeyStep = 16
		cfg.Grid.MaxRows = min(cfg.Grid.MaxRows, 10)
		cfg.Grid.MinRows = min(cfg.Grid.MinRows, cfg.Grid.MaxRows)
	case DifficultyHard:
		cfg.Celebration.Threshold = 0.95
		cfg.Guess.DragMultiplier = 0.25
		cfg.Guess.KeyStep = 4
	case DifficultyFixed:
		if cfg.Grid.Rows == 0 {
			cfg.Grid.Rows = FixedRows
		}
	}
}
