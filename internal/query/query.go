// Package query searches a built entries collection, highlighting matches
// for the console and HTTP result renderers.
package query

import (
	"fmt"
	"regexp"

	"github.com/reagle/thunderdell/internal/biblio"
)

// Highlight markers wrapped around matched text. The identifier generator
// strips these, so highlighted entries can still be keyed.
const (
	markOpen  = "<strong>"
	markClose = "</strong>"
)

// Result is one matched entry with highlighted text.
type Result struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Year       string `json:"year"`
	// Matched holds the highlighted field values that matched, keyed by
	// field name ("title", "annotation", or a long field name).
	Matched map[string]string `json:"matched,omitempty"`
}

// Search finds entries matching the query, a case-insensitive regular
// expression, and returns them in the collection's insertion order with
// matches wrapped in highlight markup.
func Search(entries *biblio.Entries, pattern string) ([]Result, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling query %q: %w", pattern, err)
	}

	var results []Result
	for _, e := range entries.All() {
		matched := map[string]string{}
		if re.MatchString(e.Title) {
			matched["title"] = highlight(e.Title, re)
		}
		if re.MatchString(e.OriAuthor) {
			matched["author"] = highlight(e.OriAuthor, re)
		}
		if e.Annotation != "" && re.MatchString(e.Annotation) {
			matched["annotation"] = highlight(e.Annotation, re)
		}
		for _, field := range e.FieldNames() {
			if re.MatchString(e.Get(field)) {
				matched[field] = highlight(e.Get(field), re)
			}
		}
		if len(matched) == 0 {
			continue
		}
		results = append(results, Result{
			Identifier: e.Identifier,
			Title:      e.Title,
			Author:     e.OriAuthor,
			Year:       e.Year(),
			Matched:    matched,
		})
	}
	return results, nil
}

func highlight(s string, re *regexp.Regexp) string {
	return re.ReplaceAllString(s, markOpen+"$0"+markClose)
}
