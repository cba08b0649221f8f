package config

import "math"

// DifficultyManager turns a difficulty block into a level in [0, 1] and
// the tick intervals derived from it.
type DifficultyManager struct {
	cfg   DifficultyConfig
	floor float64 // level at the start of a game
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:   cfg,
		floor: unit(cfg.InitialLevel),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	if !d.cfg.Enabled {
		return false
	}
	switch d.cfg.Progression.Type {
	case ProgressionScore, ProgressionTime:
		return true
	}
	return false
}

// progress is how far along the progression axis the game is, in [0, 1].
func (d *DifficultyManager) progress(score, ticks int) float64 {
	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))
	if d.cfg.Progression.Type == ProgressionTime {
		return unit(float64(ticks) / maxAt)
	}
	return unit(float64(score) / maxAt)
}

// Level returns the difficulty level for the given score and tick count.
// It rises linearly from the initial level to 1.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.floor
	}
	return d.floor + d.progress(score, ticks)*(1-d.floor)
}

// Interval returns a tick interval that shrinks from base toward minimum
// as the difficulty level rises. Never returns less than 1.
func (d *DifficultyManager) Interval(base, minimum, score, ticks int) int {
	minimum = min(minimum, base)
	level := d.Level(score, ticks)
	result := base - int(math.Round(level*float64(base-minimum)))
	return max(result, minimum, 1)
}

// unit clamps v to [0, 1].
func unit(v float64) float64 {
	return min(max(v, 0), 1)
}
