package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-prism/internal/core"
	"github.com/vovakirdan/tui-prism/internal/games/prism"
	"github.com/vovakirdan/tui-prism/internal/platform/tui"
	"github.com/vovakirdan/tui-prism/internal/registry"
	"github.com/vovakirdan/tui-prism/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a puzzle",
	Long: `Start a puzzle in the given mode (default: prism).

Controls:
  Mouse drag       - Drag a control tile up or down to change its channel
  Click ?          - Reveal the answer
  Arrows/hjkl      - Move the cursor
  +/-, w/s         - Raise or lower the control under the cursor
  0-9 a-f          - Type a hex guess
  Enter/Space      - Tap the tile under the cursor
  R                - New puzzle
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Lower celebration bar, coarser drags, smaller grids
  normal - Configured defaults
  hard   - Higher celebration bar, finer drags
  fixed  - Same grid size regardless of terminal

Examples:
  prism play
  prism play prism_trimmed
  prism play --difficulty hard
  prism play --config ./my-prism.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := prism.ModeFull
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fatal("unknown mode %q\nRun 'prism list' to see available modes.", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fatal("creating game: %v", err)
	}

	store := openStore()
	runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fatal("running game: %v", runErr)
	}
}

// runtimeConfig sizes the screen from the terminal and applies the global
// flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the rounds database. Play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open rounds database: %v\n", err)
		log.Warn("storage unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
