package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reagle/thunderdell/internal/biblio"
	"github.com/reagle/thunderdell/internal/config"
	"github.com/reagle/thunderdell/internal/storage"
)

var (
	exportFormat string
	exportKeys   string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "biblatex", "Output format: biblatex, yaml, json, wikipedia, console")
	exportCmd.Flags().StringVar(&exportKeys, "keys", "", "Export only specified identifiers (comma-separated)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export cached entries",
	Long: `Export entries from the query cache.

Run td rebuild first to populate the cache from the mindmaps.

Examples:
  td export > readings.bib
  td export --format yaml
  td export --keys Turkle2011at,Callon1991ten`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	libRoot := mustFindLibrary()

	db, err := storage.OpenDB(config.DBPath(libRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	var cached []*biblio.Entry

	if exportKeys != "" {
		for _, key := range strings.Split(exportKeys, ",") {
			key = strings.TrimSpace(key)
			e, err := db.GetByID(key)
			if err != nil {
				exitWithError(ExitError, "getting entry %s: %v", key, err)
			}
			if e == nil {
				exitWithError(ExitError, "unknown identifier: %s", key)
			}
			cached = append(cached, e)
		}
	} else {
		cached, err = db.ListAll(0)
		if err != nil {
			exitWithError(ExitError, "listing entries: %v", err)
		}
	}

	entries := biblio.NewEntries()
	for _, e := range cached {
		entries.Add(e)
	}

	out, err := renderEntries(entries, exportFormat)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	// Exported bibliographies are always text output, never wrapped in JSON
	fmt.Print(string(out))
	return nil
}
