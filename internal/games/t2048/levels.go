// Package t2048 implements the classic 2048 puzzle game with campaign and endless modes.
package t2048

import "github.com/vovakirdan/grid-arcade/internal/config"

// DefaultLevels returns the campaign levels from the active configuration.
func DefaultLevels() []config.T2048Level {
	cfg, err := config.LoadT2048("")
	if err != nil {
		return nil
	}
	return cfg.Levels
}

// LevelNames returns the names of all levels.
func LevelNames(levels []config.T2048Level) []string {
	names := make([]string, len(levels))
	for i, lvl := range levels {
		names[i] = lvl.Name
	}
	return names
}

// LevelTargets returns the targets of all levels.
func LevelTargets(levels []config.T2048Level) []int {
	targets := make([]int, len(levels))
	for i, lvl := range levels {
		targets[i] = lvl.Target
	}
	return targets
}
