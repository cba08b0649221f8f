package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration for gameID into a T.
// Search order: customPath -> ~/.arcade/configs/<game>.yaml ->
// ./configs/<game>.yaml -> embedded default.
// A broken custom path is an error; broken fallbacks are skipped.
func Load[T any](gameID, customPath string) (T, error) {
	var cfg T

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := gameID + ".yaml"
	candidates := []string{filepath.Join("configs", filename)}
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}

	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		var fromFile T
		if err := yaml.Unmarshal(data, &fromFile); err == nil {
			return fromFile, nil
		}
	}

	// Use embedded default YAML
	data := DefaultYAML(gameID)
	if data == nil {
		return cfg, fmt.Errorf("config: no defaults for %q", gameID)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot parse embedded %s: %w", filename, err)
	}
	return cfg, nil
}

// Snapshot encodes cfg so a replay can rebuild the rules it was played with.
func Snapshot(cfg any) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot snapshot: %w", err)
	}
	return data, nil
}

// FromSnapshot decodes a Snapshot back into a T. Empty data yields the
// regular Load defaults for gameID.
func FromSnapshot[T any](gameID string, data []byte) (T, error) {
	if len(data) == 0 {
		return Load[T](gameID, "")
	}
	var cfg T
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot parse %s snapshot: %w", gameID, err)
	}
	return cfg, nil
}

// LoadSnake loads Snake configuration.
func LoadSnake(customPath string) (SnakeConfig, error) {
	return Load[SnakeConfig]("snake", customPath)
}

// LoadT2048 loads 2048 configuration.
func LoadT2048(customPath string) (T2048Config, error) {
	return Load[T2048Config]("2048", customPath)
}

// LoadTetris loads Tetris configuration.
func LoadTetris(customPath string) (TetrisConfig, error) {
	return Load[TetrisConfig]("tetris", customPath)
}

// LoadPacman loads Pac-Man configuration.
func LoadPacman(customPath string) (PacmanConfig, error) {
	return Load[PacmanConfig]("pacman", customPath)
}

// LoadCheckers loads Checkers configuration.
func LoadCheckers(customPath string) (CheckersConfig, error) {
	return Load[CheckersConfig]("checkers", customPath)
}

// LoadChess loads Chess configuration.
func LoadChess(customPath string) (ChessConfig, error) {
	return Load[ChessConfig]("chess", customPath)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
