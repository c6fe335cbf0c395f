package emit

import (
	"fmt"
	"strings"

	"github.com/reagle/thunderdell/internal/biblio"
)

// ToWikipedia renders one entry as a Wikipedia citation template. The
// template name follows the inferred BibLaTeX type; parameters appear in a
// fixed order so output is deterministic.
func ToWikipedia(e *biblio.Entry, v *biblio.Vocabulary) (string, error) {
	entryType, err := v.GuessBiblatexType(e)
	if err != nil {
		return "", fmt.Errorf("entry %s: %w", e.Identifier, err)
	}

	var b strings.Builder
	b.WriteString("{{cite " + wikiTemplate(entryType))

	for i, n := range e.Authors {
		idx := fmt.Sprintf("%d", i+1)
		last := n.Last
		if n.Particle != "" {
			last = n.Particle + " " + last
		}
		writeParam(&b, "last"+idx, last)
		writeParam(&b, "first"+idx, n.First)
	}

	writeParam(&b, "title", e.Title)
	if _, value, _ := v.Container(e); value != "" {
		writeParam(&b, containerParam(entryType), value)
	} else if e.Has("journal") {
		writeParam(&b, "journal", e.Get("journal"))
	}
	writeParam(&b, "volume", e.Get("volume"))
	writeParam(&b, "issue", e.Get("number"))
	writeParam(&b, "pages", e.Get("pages"))
	writeParam(&b, "publisher", e.Get("publisher"))
	writeParam(&b, "location", e.Get("address"))
	if e.Date != nil {
		writeParam(&b, "date", e.Date.ISO())
	}
	writeParam(&b, "doi", e.Get("doi"))
	writeParam(&b, "isbn", e.Get("isbn"))
	writeParam(&b, "url", e.Get("url"))
	if e.URLDate != nil {
		writeParam(&b, "access-date", e.URLDate.ISO())
	}
	writeParam(&b, "ref", e.Identifier)

	b.WriteString(" }}")
	return b.String(), nil
}

// ToWikipediaList renders the whole collection, one template per line.
func ToWikipediaList(entries *biblio.Entries, v *biblio.Vocabulary) (string, error) {
	var b strings.Builder
	for _, e := range entries.All() {
		t, err := ToWikipedia(e, v)
		if err != nil {
			return "", err
		}
		b.WriteString(t)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func writeParam(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(" |" + name + "=" + value)
}

// wikiTemplate maps a BibLaTeX type to a citation template name.
func wikiTemplate(entryType string) string {
	switch entryType {
	case "article":
		return "journal"
	case "book", "collection", "proceedings":
		return "book"
	case "inbook", "incollection", "inproceedings":
		return "book"
	case "report", "techreport":
		return "report"
	case "mastersthesis", "phdthesis", "thesis":
		return "thesis"
	case "inreference":
		return "encyclopedia"
	default:
		return "web"
	}
}

// containerParam picks the template parameter the container value fills.
func containerParam(entryType string) string {
	switch entryType {
	case "article":
		return "journal"
	case "inreference":
		return "encyclopedia"
	default:
		return "website"
	}
}
