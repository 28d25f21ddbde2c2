package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-ada/adac/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print adac's current configuration",
	Long: `Print the configuration adac would use for a build: the
configured file's values layered on top of the built-in defaults, or
the built-in defaults unchanged if no config file exists yet at
~/.config/adac/config.toml.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Printf("# %s\n", config.Path())
	return toml.NewEncoder(os.Stdout).Encode(cfg)
}
