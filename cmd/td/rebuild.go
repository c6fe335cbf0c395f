package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reagle/thunderdell/internal/biblio"
	"github.com/reagle/thunderdell/internal/config"
	"github.com/reagle/thunderdell/internal/storage"
)

var rebuildChase bool

func init() {
	rebuildCmd.Flags().BoolVar(&rebuildChase, "chase", false, "Follow links to other mindmap files")
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild [map.mm]",
	Short: "Rebuild the query cache from the mindmaps",
	Long: `Rebuild the SQLite query cache by walking the mindmaps.

Use this after editing maps so that td search sees the changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status  string `json:"status"`
	Entries int    `json:"entries"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	libRoot := mustFindLibrary()
	mapPath := resolveMap(args)

	entries, err := walkAll(mapPath, rebuildChase, biblio.CiteOptions{})
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	// Ensure cache directory exists
	cacheDir := config.CachePath(libRoot)
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	db, err := storage.OpenDB(config.DBPath(libRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	count, err := db.Rebuild(entries)
	if err != nil {
		exitWithError(ExitDataError, "rebuilding database: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt query cache with %d entries\n", count)
	} else {
		outputJSON(RebuildResult{
			Status:  "rebuilt",
			Entries: count,
		})
	}

	return nil
}
