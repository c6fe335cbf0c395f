package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reagle/thunderdell/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new thunderdell library",
	Long: `Initialize a new thunderdell library in the current directory.

Creates:
  .thunderdell/
  ├── config.json     # Default config
  └── cache/          # Query cache (gitignored)`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	// Check if already initialized
	if config.IsLibrary(root) {
		exitWithError(ExitError, "directory already contains a thunderdell library")
	}

	// Create directory structure
	if err := os.MkdirAll(config.ThunderdellPath(root), 0755); err != nil {
		exitWithError(ExitError, "creating .thunderdell directory: %v", err)
	}
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	// Create default config
	cfg := &config.Config{
		EmitFormat: "biblatex",
	}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "creating config.json: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized thunderdell library in %s\n", root)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   root,
		})
	}

	return nil
}
