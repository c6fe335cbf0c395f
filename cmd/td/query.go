package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/reagle/thunderdell/internal/biblio"
	"github.com/reagle/thunderdell/internal/query"
)

var queryChase bool

func init() {
	queryCmd.Flags().BoolVar(&queryChase, "chase", false, "Follow links to other mindmap files")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <pattern> [map.mm]",
	Short: "Search a mindmap's entries by regular expression",
	Long: `Search a mindmap's entries by case-insensitive regular expression.

The pattern is matched against titles, authors, annotations, and field
values; matches are wrapped in <strong> markers.

Examples:
  td query "big data"
  td query --chase "Wikipedia" readings.mm`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	mapPath := resolveMap(args[1:])

	entries, err := walkAll(mapPath, queryChase, biblio.CiteOptions{})
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	results, err := query.Search(entries, args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if results == nil {
		results = []query.Result{}
	}

	if humanOutput {
		if len(results) == 0 {
			fmt.Println("No entries found")
			return nil
		}
		fmt.Printf("Found %d entries:\n\n", len(results))
		for i, r := range results {
			fmt.Printf("[%d] %s\n", i+1, r.Identifier)
			fmt.Printf("    %s (%s)\n", truncateString(r.Title, SummaryTitleMaxLen), r.Year)
			fields := make([]string, 0, len(r.Matched))
			for field := range r.Matched {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				fmt.Printf("    %s: %s\n", field, truncateString(r.Matched[field], SummaryTitleMaxLen))
			}
			fmt.Println()
		}
	} else {
		outputJSON(results)
	}

	return nil
}
