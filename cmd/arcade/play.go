package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-arcade/internal/platform/tui"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     bool
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD   - Move, steer or move the board cursor
  X/E, Z        - Rotate clockwise / counter-clockwise (Tetris)
  Space         - Hard drop (Tetris), pick/place (board games)
  Enter         - Pick/place (board games)
  Backspace     - Drop the picked piece (board games)
  P             - Pause
  Esc/B         - Pause, or leave a paused/finished game
  R             - Restart (after game over)
  Q/Ctrl+C      - Quit

Games with a campaign (snake, 2048) open a level picker first unless
--level is given.

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play tetris
  arcade play snake --level 3
  arcade play pacman --difficulty hard
  arcade play tetris --config ./my-tetris.yaml
  arcade play chess --record`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Store a replay of every finished game")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Starting campaign level (1-based, skips the level picker)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	cfg := runtimeConfig()
	cfg.ConfigPath = flagConfig
	cfg.Difficulty = flagDifficulty

	// Campaign games pick a mode and level first
	leveled, isLeveled := game.(registry.Leveled)
	switch {
	case flagLevel > 0:
		cfg.Level = flagLevel - 1
	case isLeveled && !strings.HasSuffix(gameID, "_endless"):
		selection, selErr := tui.RunLevelMenu(gameID, leveled, game.Title(), cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}

		// User pressed back or quit
		if selection == nil {
			return
		}

		cfg.Level = selection.Level
		if selection.GameID != gameID {
			game, err = registry.Create(selection.GameID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
				os.Exit(1)
			}
		}
	}

	store := openStoreOrWarn()

	runErr := tui.Run(game, cfg, tui.ModelOptions{
		Store:  store,
		Player: os.Getenv("USER"),
		Record: flagRecord,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
