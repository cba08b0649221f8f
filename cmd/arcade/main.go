// arcade is a terminal arcade of grid games: Snake, 2048, Tetris, Pac-Man,
// Checkers and Chess.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores or match history for a game
//	arcade replay <id>       - Re-simulate a recorded game and check it
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/grid-arcade/internal/games/checkers"
	_ "github.com/vovakirdan/grid-arcade/internal/games/chess"
	_ "github.com/vovakirdan/grid-arcade/internal/games/pacman"
	_ "github.com/vovakirdan/grid-arcade/internal/games/snake"
	_ "github.com/vovakirdan/grid-arcade/internal/games/t2048"
	_ "github.com/vovakirdan/grid-arcade/internal/games/tetris"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Grid Arcade - classic grid games in your terminal",
	Long: `Grid Arcade is a terminal gaming platform for classic grid games:
Snake, 2048, Tetris, Pac-Man, Checkers and Chess.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and match history
  replay   - List recorded games or verify one

Examples:
  arcade list
  arcade play tetris
  arcade play chess
  arcade menu
  arcade serve --ssh :2222
  arcade scores snake
  arcade replay --list`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		lvl, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			log.Warn("Unknown log level, using warn", "level", flagLogLevel)
			lvl = log.WarnLevel
		}
		log.SetLevel(lvl)
		log.SetReportTimestamp(true)
		log.SetPrefix("arcade")
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
}

// runtimeConfig builds the game configuration from the global flags and
// the current terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStoreOrWarn opens the scores database. Play continues without
// persistence when it cannot be opened.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("Could not open scores database, scores will not be saved", "err", err)
		return nil
	}
	return store
}
