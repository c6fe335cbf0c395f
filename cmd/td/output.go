package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/reagle/thunderdell/internal/biblio"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for search/list commands

	SummaryTitleMaxLen = 70 // Title truncation in search summaries
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
	Count  int    `json:"count,omitempty"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// EntrySummary represents one entry in search and list output.
type EntrySummary struct {
	Identifier string              `json:"identifier"`
	Title      string              `json:"title"`
	Authors    []biblio.PersonName `json:"authors"`
	Year       string              `json:"year"`
	Container  string              `json:"container,omitempty"`
}

// summarize converts an entry for search/list output.
func summarize(e *biblio.Entry, v *biblio.Vocabulary) EntrySummary {
	s := EntrySummary{
		Identifier: e.Identifier,
		Title:      e.Title,
		Authors:    e.Authors,
		Year:       e.Year(),
	}
	if _, value, _ := v.Container(e); value != "" {
		s.Container = value
	} else if e.Has("journal") {
		s.Container = e.Get("journal")
	} else if e.Has("booktitle") {
		s.Container = e.Get("booktitle")
	}
	return s
}

// printEntrySummary prints one entry in human-readable format.
func printEntrySummary(num int, s EntrySummary) {
	fmt.Printf("[%d] %s\n", num, s.Identifier)
	fmt.Printf("    %s\n", truncateString(s.Title, SummaryTitleMaxLen))
	if len(s.Authors) > 0 {
		fmt.Printf("    %s\n", formatAuthorsShort(s.Authors, 3))
	}
	if s.Container != "" {
		fmt.Printf("    %s (%s)\n", s.Container, s.Year)
	} else {
		fmt.Printf("    (%s)\n", s.Year)
	}
	fmt.Println()
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatAuthorsShort formats authors with "et al." for more than maxCount.
func formatAuthorsShort(authors []biblio.PersonName, maxCount int) string {
	if len(authors) == 0 {
		return ""
	}

	var names []string
	for i, a := range authors {
		if i >= maxCount {
			names = append(names, "et al.")
			break
		}
		names = append(names, a.FullName())
	}
	return strings.Join(names, ", ")
}
