// prism is a terminal color-guessing puzzle on a triangular grid.
//
// Usage:
//
//	prism play [mode]        - Play a puzzle (default mode: prism)
//	prism menu               - Pick a mode and difficulty interactively
//	prism list               - List available modes
//	prism scores <mode>      - Show high scores for a mode
//	prism history [mode]     - Browse revealed rounds
//	prism generate           - Print a generated grid as hex values
//	prism config             - Print the resolved configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible puzzles
//	--db <path>          - Set database path (default: ~/.prism/prism.db)
//	--log <path>         - Set log file ("" disables logging)
//	--debug              - Log at debug level
//	--config <path>      - Custom prism.yaml
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-prism/internal/config"
	"github.com/vovakirdan/tui-prism/internal/games/prism"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogPath    string
	flagDebug      bool
	flagConfig     string
	flagDifficulty string

	// difficulty is flagDifficulty after validation.
	difficulty config.DifficultyPreset

	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "prism",
	Short: "Prism - guess the hidden color of a triangular grid",
	Long: `Prism hides a color at the center of a grid of triangles. The tiles
around it are blends of that color, and three control tiles let you
dial in red, green and blue until you think you have it.

Available commands:
  play      - Play a puzzle
  menu      - Interactive mode picker
  list      - Show all available modes
  scores    - View high scores
  history   - Browse revealed rounds
  generate  - Print a generated grid
  config    - Print the resolved configuration

Examples:
  prism play
  prism play prism_trimmed --difficulty hard
  prism generate --rows 6 --seed 7
  prism history`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.prism/prism.db", "Path to rounds database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.prism/prism.log", "Path to log file (empty disables logging)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom prism.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(configCmd)
}

// setup validates shared flags, hands config options to the game package
// and points the default logger at the log file.
func setup(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	difficulty = preset
	prism.SetConfigPath(flagConfig)
	prism.SetDifficultyPreset(preset)

	w, err := openLog(flagLogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		w = io.Discard
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "prism",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
	return nil
}

// openLog opens path for appending. The TUI owns the terminal, so logs
// never go to stderr.
func openLog(path string) (io.Writer, error) {
	if path == "" {
		return io.Discard, nil
	}
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	logFile = f
	return f, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	if logFile != nil {
		logFile.Close()
	}
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
