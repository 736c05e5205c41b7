package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-prism/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long: `Print the configuration Prism would play with, after the search
order (--config, ~/.prism/configs/prism.yaml, ./configs/prism.yaml,
embedded default) and the --difficulty preset are applied.

Examples:
  prism config
  prism config --difficulty easy
  prism config --defaults > ~/.prism/configs/prism.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the embedded defaults instead")
}

func runConfig(cmd *cobra.Command, args []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, source, err := config.ResolvePrism(flagConfig)
	if err != nil {
		fatal("%v", err)
	}
	config.ApplyPrismPreset(&cfg, difficulty)

	data, err := config.MarshalPrism(cfg)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("# source: %s\n", source)
	if difficulty != "" {
		fmt.Printf("# difficulty: %s\n", difficulty)
	}
	os.Stdout.Write(data)
}
