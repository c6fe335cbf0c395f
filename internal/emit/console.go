package emit

import (
	"fmt"
	"strings"

	"github.com/reagle/thunderdell/internal/biblio"
)

// ToConsole renders a compact human-readable listing of the collection.
func ToConsole(entries *biblio.Entries) string {
	var b strings.Builder
	for i, e := range entries.All() {
		b.WriteString(fmt.Sprintf("[%d] %s\n", i+1, e.Identifier))
		b.WriteString(fmt.Sprintf("    %s (%s)\n", e.Title, e.Year()))
		if len(e.Authors) > 0 {
			b.WriteString("    " + formatAuthorsShort(e.Authors, 3) + "\n")
		}
		for _, field := range e.FieldNames() {
			b.WriteString(fmt.Sprintf("    %s: %s\n", field, e.Get(field)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatAuthorsShort abbreviates to "Last F" with "et al." past maxCount.
func formatAuthorsShort(authors []biblio.PersonName, maxCount int) string {
	var names []string
	for i, a := range authors {
		if i >= maxCount {
			names = append(names, "et al.")
			break
		}
		n := a.Last
		if a.First != "" {
			n += " " + string([]rune(a.First)[0])
		}
		names = append(names, n)
	}
	return strings.Join(names, ", ")
}
