package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-arcade/internal/multiplayer"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Kind")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----")

	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, describe(g.ID))
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}

// describe summarizes how a game is played.
func describe(id string) string {
	game, err := registry.Create(id)
	if err != nil {
		return ""
	}
	var kinds []string
	if _, ok := game.(multiplayer.BoardGame); ok {
		kinds = append(kinds, "2 players")
	} else {
		kinds = append(kinds, "solo")
	}
	if lv, ok := game.(registry.Leveled); ok && !strings.HasSuffix(id, "_endless") {
		kinds = append(kinds, fmt.Sprintf("%d levels", len(lv.LevelNames())))
	}
	if _, ok := game.(registry.Replayable); ok {
		kinds = append(kinds, "replays")
	}
	return strings.Join(kinds, ", ")
}
