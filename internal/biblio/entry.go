// Package biblio defines the core bibliographic entry model: person names,
// partial dates, entries keyed by citation identifier, and the vocabulary
// tables that tie the compact shortcode citation language to the BibLaTeX
// and CSL field vocabularies.
package biblio

import "sort"

// PersonName represents one author, editor, or translator.
// Last is never empty once parsed; a bare token becomes a last name.
type PersonName struct {
	First    string `json:"first,omitempty"`
	Particle string `json:"particle,omitempty"`
	Last     string `json:"last"`
	Suffix   string `json:"suffix,omitempty"`
}

// FullName formats the name as "First particle Last, Suffix".
func (p PersonName) FullName() string {
	s := p.Last
	if p.Particle != "" {
		s = p.Particle + " " + s
	}
	if p.First != "" {
		s = p.First + " " + s
	}
	if p.Suffix != "" {
		s += ", " + p.Suffix
	}
	return s
}

// SortName formats the name surname-first: "particle Last, First, Suffix".
func (p PersonName) SortName() string {
	s := p.Last
	if p.Particle != "" {
		s = p.Particle + " " + s
	}
	if p.First != "" {
		s += ", " + p.First
	}
	if p.Suffix != "" {
		s += ", " + p.Suffix
	}
	return s
}

// PubDate represents a possibly partial publication date. Year is always
// present ("0000" when unknown); Month and Day are two-character zero-padded
// strings when present. Circa marks an approximate date; Time carries a
// free-text time/timezone suffix verbatim.
type PubDate struct {
	Year  string `json:"year"`
	Month string `json:"month,omitempty"`
	Day   string `json:"day,omitempty"`
	Circa bool   `json:"circa,omitempty"`
	Time  string `json:"time,omitempty"`
}

// ISO formats the date as YYYY[-MM[-DD]].
func (d PubDate) ISO() string {
	s := d.Year
	if d.Month != "" {
		s += "-" + d.Month
	}
	if d.Day != "" {
		s += "-" + d.Day
	}
	return s
}

// Entry is one bibliographic record. The frequently used fields with
// structure (names, dates) are typed; everything else keyed by long field
// name lives in Fields. Provenance fields (MMFile, TitleNode) are
// bookkeeping and are never emitted.
type Entry struct {
	Identifier string

	Authors     []PersonName
	Editors     []PersonName
	Translators []PersonName
	OriAuthor   string // author text as written in the source, before parsing

	Title      string
	Date       *PubDate
	URLDate    *PubDate
	OrigDate   *PubDate
	Cite       string // raw shortcode citation string, consumed by PullCitation
	Annotation string
	EntryType  string // explicit type from et=, validated at inference time

	// Fields holds the remaining long-name fields (journal, volume, url,
	// c_blog, ...). Values are plain strings.
	Fields map[string]string

	// Provenance
	MMFile    string
	TitleNode string
}

// NewEntry returns an empty entry with an initialized field map.
func NewEntry() *Entry {
	return &Entry{Fields: map[string]string{}}
}

// Get returns the value of a long-name field from the field map.
func (e *Entry) Get(field string) string {
	return e.Fields[field]
}

// Has reports whether a long-name field is present and non-empty.
func (e *Entry) Has(field string) bool {
	return e.Fields[field] != ""
}

// Set assigns a long-name field in the field map.
func (e *Entry) Set(field, value string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = value
}

// Delete removes a long-name field from the field map.
func (e *Entry) Delete(field string) {
	delete(e.Fields, field)
}

// FieldNames returns the populated field-map names in sorted order.
// Emitters rely on this for byte-for-byte deterministic output.
func (e *Entry) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name, v := range e.Fields {
		if v != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Year returns the entry's publication year, "0000" when undated.
func (e *Entry) Year() string {
	if e.Date == nil || e.Date.Year == "" {
		return "0000"
	}
	return e.Date.Year
}

// Entries is a collection of entries keyed by identifier, preserving
// insertion order. Keys are unique within one build; uniqueness is
// enforced by the identifier generator's collision resolution.
type Entries struct {
	order []string
	byID  map[string]*Entry
}

// NewEntries returns an empty collection.
func NewEntries() *Entries {
	return &Entries{byID: map[string]*Entry{}}
}

// Add inserts an entry under its Identifier. Inserting a duplicate
// identifier replaces the previous entry without changing order; callers
// that generate identifiers through GetIdentifier never hit that case.
func (es *Entries) Add(e *Entry) {
	if _, ok := es.byID[e.Identifier]; !ok {
		es.order = append(es.order, e.Identifier)
	}
	es.byID[e.Identifier] = e
}

// Get returns the entry with the given identifier.
func (es *Entries) Get(id string) (*Entry, bool) {
	e, ok := es.byID[id]
	return e, ok
}

// Has reports whether an identifier is present.
func (es *Entries) Has(id string) bool {
	_, ok := es.byID[id]
	return ok
}

// Len returns the number of entries.
func (es *Entries) Len() int {
	return len(es.order)
}

// All returns the entries in insertion order.
func (es *Entries) All() []*Entry {
	out := make([]*Entry, 0, len(es.order))
	for _, id := range es.order {
		out = append(out, es.byID[id])
	}
	return out
}

// Identifiers returns the identifiers in insertion order.
func (es *Entries) Identifiers() []string {
	out := make([]string, len(es.order))
	copy(out, es.order)
	return out
}
