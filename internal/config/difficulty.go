package config

import "math"

// ProgressionConfig defines how the game gets harder from level to level.
type ProgressionConfig struct {
	Enabled       bool    `yaml:"enabled"`
	SpeedStep     float64 `yaml:"speed_step"`     // Speed added per level beyond the first
	MaxMultiplier float64 `yaml:"max_multiplier"` // Upper bound on the speed multiplier
}

// DifficultyManager calculates level-dependent game parameters.
type DifficultyManager struct {
	cfg ProgressionConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg ProgressionConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// Multiplier returns the speed multiplier for a level (1-based).
func (d *DifficultyManager) Multiplier(level int) float64 {
	if !d.cfg.Enabled || level <= 1 {
		return 1.0
	}
	m := 1.0 + float64(level-1)*d.cfg.SpeedStep
	if d.cfg.MaxMultiplier >= 1.0 {
		m = clampF(m, 1.0, d.cfg.MaxMultiplier)
	}
	return m
}

// Speed returns baseSpeed scaled for the given level.
func (d *DifficultyManager) Speed(baseSpeed float64, level int) float64 {
	return baseSpeed * d.Multiplier(level)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
