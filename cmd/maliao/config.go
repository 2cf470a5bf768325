package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Murat2283plus/maliao/internal/config"
)

var flagDefaultConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration maliao would run with, after the config file,
MALIAO_* environment variables and flags are applied. With --default it
prints the built-in defaults, a good starting point for ~/.maliao/config.yaml.

Examples:
  maliao config
  maliao config --default > ~/.maliao/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaultConfig, "default", false, "Print the built-in default configuration")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if flagDefaultConfig {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("# source: %s\n", cfg.Source)
	_, err = os.Stdout.Write(data)
	return err
}
