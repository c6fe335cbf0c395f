// Package emit renders a built entries collection into the supported
// bibliography output formats. Output is deterministic byte-for-byte for a
// given collection: fields are enumerated in sorted order.
package emit

import (
	"fmt"
	"strings"

	"github.com/reagle/thunderdell/internal/biblio"
)

// ToBibLaTeX converts one entry to a BibLaTeX record.
func ToBibLaTeX(e *biblio.Entry, v *biblio.Vocabulary) (string, error) {
	entryType, err := v.GuessBiblatexType(e)
	if err != nil {
		return "", fmt.Errorf("entry %s: %w", e.Identifier, err)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, e.Identifier))

	if len(e.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatNames(e.Authors)))
	}
	if len(e.Editors) > 0 {
		b.WriteString(fmt.Sprintf("  editor = {%s},\n", formatNames(e.Editors)))
	}
	if len(e.Translators) > 0 {
		b.WriteString(fmt.Sprintf("  translator = {%s},\n", formatNames(e.Translators)))
	}

	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(e.Title)))
	b.WriteString(fmt.Sprintf("  date = {%s},\n", dateValue(e)))
	if e.URLDate != nil {
		b.WriteString(fmt.Sprintf("  urldate = {%s},\n", e.URLDate.ISO()))
	}
	if e.OrigDate != nil {
		b.WriteString(fmt.Sprintf("  origdate = {%s},\n", e.OrigDate.ISO()))
	}

	for _, field := range e.FieldNames() {
		name, ok := biblatexFieldName(field)
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", name, escapeLatex(e.Get(field))))
	}

	b.WriteString("}\n")
	return b.String(), nil
}

// ToBibLaTeXList converts a whole collection, entries in insertion order.
func ToBibLaTeXList(entries *biblio.Entries, v *biblio.Vocabulary) (string, error) {
	var records []string
	for _, e := range entries.All() {
		rec, err := ToBibLaTeX(e, v)
		if err != nil {
			return "", err
		}
		records = append(records, rec)
	}
	return strings.Join(records, "\n"), nil
}

// dateValue renders the entry date, marking approximate dates with a
// trailing "~" per the EDTF convention BibLaTeX understands.
func dateValue(e *biblio.Entry) string {
	if e.Date == nil {
		return "0000"
	}
	s := e.Date.ISO()
	if e.Date.Circa {
		s += "~"
	}
	return s
}

// biblatexFieldName maps a long field name to the BibLaTeX field it is
// emitted as. Container shortcuts fold into journaltitle or organization;
// bookkeeping fields are dropped.
func biblatexFieldName(field string) (string, bool) {
	switch field {
	case "journal", "c_journal", "c_magazine", "c_newspaper":
		return "journaltitle", true
	case "c_dictionary", "c_encyclopedia", "c_forum", "c_blog", "c_web":
		return "organization", true
	case "custom1":
		return "", false
	}
	if strings.HasPrefix(field, "_") {
		return "", false
	}
	return field, true
}

// formatNames formats names BibTeX style: "von Last, First and ...".
func formatNames(names []biblio.PersonName) string {
	formatted := make([]string, len(names))
	for i, n := range names {
		formatted[i] = n.SortName()
	}
	return strings.Join(formatted, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// & must come first so later escapes cannot produce one.
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
