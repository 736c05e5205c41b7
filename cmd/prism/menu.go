package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-prism/internal/games/prism"
	"github.com/vovakirdan/tui-prism/internal/platform/tui"
	"github.com/vovakirdan/tui-prism/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and difficulty interactively",
	Long: `Start Prism in interactive menu mode.

Use arrow keys or j/k to pick a mode, left/right to change difficulty and
Enter to play. Quitting a puzzle returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter/Space  - Play
  Tab          - Round history
  Q            - Quit`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	cfg := runtimeConfig()
	preset := difficulty

	for {
		result, err := tui.RunMenu(store, cfg, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = result.Config
		preset = result.Difficulty

		if result.Quit {
			break
		}

		if result.WantsHistory {
			if err := tui.RunHistory(store, "", cfg.ScreenW, cfg.ScreenH); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			continue
		}

		prism.SetDifficultyPreset(preset)
		game, err := registry.Create(result.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh seed for each puzzle unless pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
