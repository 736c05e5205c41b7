package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-prism/internal/platform/tui"
	"github.com/vovakirdan/tui-prism/internal/registry"
	"github.com/vovakirdan/tui-prism/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history [mode]",
	Short: "Browse revealed rounds",
	Long: `Open a table of recently revealed rounds with their guess, answer,
accuracy and score. Tab switches between modes.

Examples:
  prism history
  prism history prism_trimmed`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
		if !registry.Exists(mode) {
			fatal("unknown mode %q\nRun 'prism list' to see available modes.", mode)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening rounds database: %v", err)
	}
	defer store.Close()

	cfg := runtimeConfig()
	if err := tui.RunHistory(store, mode, cfg.ScreenW, cfg.ScreenH); err != nil {
		store.Close()
		fatal("running history: %v", err)
	}
}
