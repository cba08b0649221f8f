package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/engine"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

var (
	flagReplayList    bool
	flagReplayGame    string
	flagReplayLimit   int
	flagReplayVerbose bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [id]",
	Short: "List recorded games or verify one",
	Long: `Recorded games store their seed and every move. Replaying one runs
the rules again from the seed and checks that the final board matches
the recorded one.

Games are recorded with 'arcade play --record' or by the SSH server.

Examples:
  arcade replay --list
  arcade replay --list --game tetris
  arcade replay 3f6c2a1e-...
  arcade replay 3f6c2a1e-... --verbose`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayList, "list", false, "List stored replays, newest first")
	replayCmd.Flags().StringVar(&flagReplayGame, "game", "", "Only list replays of this game")
	replayCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of replays to list")
	replayCmd.Flags().BoolVarP(&flagReplayVerbose, "verbose", "v", false, "Print every event while replaying")
}

func runReplay(cmd *cobra.Command, args []string) {
	if !flagReplayList && len(args) == 0 {
		_ = cmd.Help()
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	if flagReplayList {
		err = listReplays(store)
	} else {
		err = verifyReplay(cmd.Context(), store, args[0])
	}
	store.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func listReplays(store *storage.Store) error {
	recs, err := store.Replays(flagReplayGame, flagReplayLimit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No replays recorded yet.")
		return nil
	}

	fmt.Printf("  %-36s  %-14s  %-8s  %-6s  %-10s  %s\n", "ID", "Game", "Score", "Moves", "Result", "Date")
	fmt.Printf("  %-36s  %-14s  %-8s  %-6s  %-10s  %s\n", "--", "----", "-----", "-----", "------", "----")
	for _, rec := range recs {
		outcome := rec.Outcome
		if outcome == "" {
			outcome = "abandoned"
		}
		fmt.Printf("  %-36s  %-14s  %-8d  %-6d  %-10s  %s\n",
			rec.ID, rec.GameID, rec.Score, rec.Plies, outcome, rec.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func verifyReplay(ctx context.Context, store *storage.Store, id string) error {
	rec, err := store.Replay(id)
	if err != nil {
		return err
	}

	game, err := registry.Create(rec.GameID)
	if err != nil {
		return err
	}
	rp, ok := game.(registry.Replayable)
	if !ok {
		return fmt.Errorf("%s does not support replays", rec.GameID)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var opts engine.ReplayOptions
	if flagReplayVerbose {
		opts.OnEvents = func(tick uint64, events core.Events) {
			for _, e := range events {
				fmt.Printf("  %6d  %s\n", tick, e)
			}
		}
	}

	fmt.Printf("Replaying %s (%s, seed %d, %d moves)\n", rec.ID, game.Title(), rec.Seed, rec.Plies)

	err = rp.Verify(ctx, rec, opts)
	switch {
	case errors.Is(err, engine.ErrReplayMismatch):
		return fmt.Errorf("replay diverged: %w", err)
	case err != nil:
		return err
	}

	fmt.Printf("OK: final state %016x, score %d\n", rec.FinalHash, rec.Score)
	return nil
}
