package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"burnish/internal/config"
)

// loadConfig honors --config when set, otherwise searches upward from the
// working directory and falls back to the defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		cfg, loadErr := config.Load(path)
		if loadErr != nil {
			return config.Config{}, loadErr
		}
		return cfg, nil
	}
	cfg, _, err := config.Discover(".")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
