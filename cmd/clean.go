package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cruxrec/cruxrec/internal"
)

// cleanCmd removes leftover subtitle files and run workspaces. Acquisition
// deliberately leaves its downloads on disk; this is the explicit cleanup.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove downloaded subtitle files and run workspaces",
	Example: `  # Purge leftover downloads from the cache directory
  cruxrec clean`,
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := internal.CleanupRunDirs(config.CacheDir)
		if err != nil {
			return err
		}

		if !config.Quiet {
			if removed == 0 {
				fmt.Println("Nothing to clean")
			} else {
				fmt.Printf("Removed %d workspace(s)\n", removed)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
