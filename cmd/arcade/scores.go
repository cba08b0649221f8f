package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/multiplayer"
	"github.com/vovakirdan/grid-arcade/internal/platform/tui"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

var flagScoresRedis string

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores or match history for a game",
	Long: `Display the top 10 high scores for the specified game.
Two-player board games show their win tally and the last 10 matches.
With --redis (or ARCADE_REDIS_ENABLED) the shared leaderboard that
arcade servers mirror their scores to is listed as well.

Examples:
  arcade scores tetris
  arcade scores snake
  arcade scores chess
  arcade scores tetris --redis localhost:6379`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresRedis, "redis", "", "Also show the shared Redis leaderboard at host:port")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if _, ok := game.(multiplayer.BoardGame); ok {
		err = printMatches(store, gameID, game.Title())
	} else {
		err = printScores(store, gameID, game.Title())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	if _, ok := game.(multiplayer.BoardGame); !ok {
		showShared(cmd, gameID)
	}
}

// showShared prints the Redis leaderboard when one is configured. An
// unreachable server is reported but does not fail the command.
func showShared(cmd *cobra.Command, gameID string) {
	cfg, err := config.LoadServer("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if cmd.Flags().Changed("redis") {
		if err := useRedis(&cfg.Redis, flagScoresRedis); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
	}
	if !cfg.Redis.Enabled {
		return
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	lb, err := storage.NewLeaderboard(ctx, cfg.Redis)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Shared leaderboard unavailable: %v\n", err)
		return
	}
	defer lb.Close()

	fmt.Println()
	if err := printShared(ctx, os.Stdout, lb, gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// printShared writes the top 10 of the shared ranking for gameID to w.
func printShared(ctx context.Context, w io.Writer, src tui.ScoreSource, gameID string) error {
	scores, err := src.Top(ctx, gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving shared scores: %w", err)
	}

	fmt.Fprintln(w, "Shared Leaderboard (all servers)")
	fmt.Fprintln(w)
	if len(scores) == 0 {
		fmt.Fprintln(w, "No shared scores yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "Rank", "Score", "Player")
	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "----", "-----", "------")
	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(w, "  %-4d  %-10d  %s\n", i+1, entry.Score, player)
	}
	return nil
}

func printScores(store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-12s  %s\n", "Rank", "Score", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-12s  %s\n", "----", "-----", "------", "----")

	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-12s  %s\n", i+1, entry.Score, player, dateStr)
	}

	fmt.Println()
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printMatches(store *storage.Store, gameID, title string) error {
	wins, err := store.Wins(gameID)
	if err != nil {
		return fmt.Errorf("retrieving tally: %w", err)
	}
	matches, err := store.RecentMatches(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving matches: %w", err)
	}

	fmt.Printf("Match History - %s\n", title)
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' with a friend to record one!\n", gameID)
		return nil
	}

	fmt.Printf("%s %d  |  %s %d  |  Draws %d\n",
		side(gameID, 1), wins[1], side(gameID, 2), wins[2], wins[0])
	fmt.Println()

	fmt.Printf("  %-8s  %-12s  %-6s  %s\n", "Winner", "Reason", "Plies", "Date")
	fmt.Printf("  %-8s  %-12s  %-6s  %s\n", "------", "------", "-----", "----")

	for _, m := range matches {
		var winner string
		switch {
		case m.Result.Draw():
			winner = "Draw"
		case m.Result.Winner == multiplayer.NoPlayer:
			winner = "-"
		default:
			winner = side(gameID, m.Result.Winner)
		}
		dateStr := m.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-8s  %-12s  %-6d  %s\n", winner, m.Reason, m.Result.Plies, dateStr)
	}
	return nil
}

// side names a player the way the board labels them.
func side(gameID string, p multiplayer.PlayerID) string {
	switch {
	case gameID == "chess" && p == multiplayer.Player1:
		return "White"
	case gameID == "chess":
		return "Black"
	case p == multiplayer.Player1:
		return "Blue"
	default:
		return "Red"
	}
}
