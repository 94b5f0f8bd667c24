package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"burnish/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop the on-disk result cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cache, err := driver.OpenDiskCache("burnish")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to drop cache: %w", err)
		}

		quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
		if err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "cache dropped")
		}
		return nil
	},
}
