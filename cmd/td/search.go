package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reagle/thunderdell/internal/biblio"
	"github.com/reagle/thunderdell/internal/config"
	"github.com/reagle/thunderdell/internal/storage"
)

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search cached entries by keyword",
	Long: `Search the query cache by keyword.

Run td rebuild first to populate the cache from the mindmaps.

Query Syntax:
  Plain text     - Searches title, annotation, authors, and field values
  author:name    - Search author names only
  title:text     - Search title only

Examples:
  td search "big data"
  td search "author:Turkle"
  td search "title:together"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	libRoot := mustFindLibrary()

	db, err := storage.OpenDB(config.DBPath(libRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	q := args[0]
	var entries []*biblio.Entry

	// Check for field-specific searches
	if strings.HasPrefix(q, "author:") {
		entries, err = db.SearchField("author", strings.TrimPrefix(q, "author:"), searchLimit)
	} else if strings.HasPrefix(q, "title:") {
		entries, err = db.SearchField("title", strings.TrimPrefix(q, "title:"), searchLimit)
	} else {
		entries, err = db.Search(q, searchLimit)
	}

	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	v := biblio.Default()
	summaries := make([]EntrySummary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, summarize(e, v))
	}

	if humanOutput {
		if len(summaries) == 0 {
			fmt.Println("No entries found")
		} else {
			fmt.Printf("Found %d entries:\n\n", len(summaries))
			for i, s := range summaries {
				printEntrySummary(i+1, s)
			}
		}
	} else {
		outputJSON(summaries)
	}

	return nil
}
