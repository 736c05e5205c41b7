package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-prism/internal/registry"
	"github.com/vovakirdan/tui-prism/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top scores and round statistics for the specified mode.

Examples:
  prism scores prism
  prism scores prism_trimmed --limit 20`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fatal("unknown mode %q\nRun 'prism list' to see available modes.", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fatal("creating game: %v", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening rounds database: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		store.Close()
		fatal("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'prism play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil || stats == nil {
		return
	}
	fmt.Println()
	fmt.Printf("Rounds: %d   Best: %d   Avg accuracy: %.1f%%   Best accuracy: %.1f%%\n",
		stats.RoundsCount, stats.HighScore, stats.AvgAccuracy*100, stats.BestAccuracy*100)
}
