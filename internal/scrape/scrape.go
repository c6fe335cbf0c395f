// Package scrape turns externally harvested bibliographic data into
// entries by funneling it through the shortcode citation language, so
// scraped and mindmap sources share the same parsing pipeline.
package scrape

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/reagle/thunderdell/internal/biblio"
)

// Biblio is a flat scraped record keyed by long field name ("author",
// "title", "date", "doi", ...). Values are plain text.
type Biblio map[string]string

// leadFields are rendered first, in this order, before the remaining
// fields in sorted order.
var leadFields = []string{"author", "title", "date"}

// ToCiteString renders the record into the shortcode citation language.
// Fields without a shortcode are logged and skipped.
func (b Biblio) ToCiteString(v *biblio.Vocabulary) string {
	var parts []string

	emit := func(field string) {
		value := strings.TrimSpace(b[field])
		if value == "" {
			return
		}
		short, ok := v.FieldToShort[field]
		if !ok {
			log.Printf("scrape: no shortcode for field %q, dropping", field)
			return
		}
		parts = append(parts, short+"="+value)
	}

	for _, field := range leadFields {
		emit(field)
	}

	rest := make([]string, 0, len(b))
	for field := range b {
		lead := false
		for _, l := range leadFields {
			if field == l {
				lead = true
				break
			}
		}
		if !lead {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	for _, field := range rest {
		emit(field)
	}

	return strings.Join(parts, " ")
}

// ToEntry builds an entry from the record through the citation parser.
func ToEntry(b Biblio, v *biblio.Vocabulary, opts biblio.CiteOptions) (*biblio.Entry, error) {
	e := biblio.NewEntry()
	e.Cite = b.ToCiteString(v)
	if err := v.PullCitation(e, opts); err != nil {
		return nil, fmt.Errorf("parsing scraped citation: %w", err)
	}
	if len(e.Authors) == 0 {
		e.Authors = []biblio.PersonName{{Last: "Unknown"}}
	}
	if e.Title == "" {
		e.Title = "Unknown"
	}
	return e, nil
}
