package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/reagle/thunderdell/internal/biblio"
)

// CSLName is one contributor in CSL input format.
type CSLName struct {
	Family              string `json:"family" yaml:"family"`
	Given               string `json:"given,omitempty" yaml:"given,omitempty"`
	NonDroppingParticle string `json:"non-dropping-particle,omitempty" yaml:"non-dropping-particle,omitempty"`
	Suffix              string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

// CSLDate is a CSL date-parts value.
type CSLDate struct {
	DateParts [][]int `json:"date-parts" yaml:"date-parts"`
	Circa     bool    `json:"circa,omitempty" yaml:"circa,omitempty"`
}

// CSLItem is one CSL-data item, restricted to the fields this tool
// produces. Field order here fixes the emitted order, which keeps output
// deterministic.
type CSLItem struct {
	ID              string    `json:"id" yaml:"id"`
	Type            string    `json:"type" yaml:"type"`
	Author          []CSLName `json:"author,omitempty" yaml:"author,omitempty"`
	Editor          []CSLName `json:"editor,omitempty" yaml:"editor,omitempty"`
	Translator      []CSLName `json:"translator,omitempty" yaml:"translator,omitempty"`
	Title           string    `json:"title,omitempty" yaml:"title,omitempty"`
	TitleShort      string    `json:"title-short,omitempty" yaml:"title-short,omitempty"`
	ContainerTitle  string    `json:"container-title,omitempty" yaml:"container-title,omitempty"`
	CollectionTitle string    `json:"collection-title,omitempty" yaml:"collection-title,omitempty"`
	EventTitle      string    `json:"event-title,omitempty" yaml:"event-title,omitempty"`
	EventPlace      string    `json:"event-place,omitempty" yaml:"event-place,omitempty"`
	Issued          *CSLDate  `json:"issued,omitempty" yaml:"issued,omitempty"`
	Accessed        *CSLDate  `json:"accessed,omitempty" yaml:"accessed,omitempty"`
	OriginalDate    *CSLDate  `json:"original-date,omitempty" yaml:"original-date,omitempty"`
	Edition         string    `json:"edition,omitempty" yaml:"edition,omitempty"`
	Volume          string    `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue           string    `json:"issue,omitempty" yaml:"issue,omitempty"`
	Page            string    `json:"page,omitempty" yaml:"page,omitempty"`
	ChapterNumber   string    `json:"chapter-number,omitempty" yaml:"chapter-number,omitempty"`
	Publisher       string    `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PublisherPlace  string    `json:"publisher-place,omitempty" yaml:"publisher-place,omitempty"`
	Genre           string    `json:"genre,omitempty" yaml:"genre,omitempty"`
	Medium          string    `json:"medium,omitempty" yaml:"medium,omitempty"`
	URL             string    `json:"URL,omitempty" yaml:"URL,omitempty"`
	DOI             string    `json:"DOI,omitempty" yaml:"DOI,omitempty"`
	ISBN            string    `json:"ISBN,omitempty" yaml:"ISBN,omitempty"`
	Keyword         string    `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Note            string    `json:"note,omitempty" yaml:"note,omitempty"`
}

// cslBibliography is the pandoc-style YAML wrapper.
type cslBibliography struct {
	References []CSLItem `yaml:"references"`
}

// ToCSLItems converts a collection to CSL items in insertion order.
func ToCSLItems(entries *biblio.Entries, v *biblio.Vocabulary) ([]CSLItem, error) {
	items := make([]CSLItem, 0, entries.Len())
	for _, e := range entries.All() {
		item, err := toCSLItem(e, v)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ToCSLYAML renders the collection as a pandoc references YAML document.
func ToCSLYAML(entries *biblio.Entries, v *biblio.Vocabulary) ([]byte, error) {
	items, err := ToCSLItems(entries, v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cslBibliography{References: items}); err != nil {
		return nil, fmt.Errorf("encoding CSL YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding CSL YAML: %w", err)
	}
	buf.WriteString("...\n")
	return buf.Bytes(), nil
}

// ToCSLJSON renders the collection as a CSL-JSON array.
func ToCSLJSON(entries *biblio.Entries, v *biblio.Vocabulary) ([]byte, error) {
	items, err := ToCSLItems(entries, v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return nil, fmt.Errorf("encoding CSL JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func toCSLItem(e *biblio.Entry, v *biblio.Vocabulary) (CSLItem, error) {
	cslType, genre, medium, err := v.GuessCSLType(e)
	if err != nil {
		return CSLItem{}, fmt.Errorf("entry %s: %w", e.Identifier, err)
	}

	item := CSLItem{
		ID:         e.Identifier,
		Type:       cslType,
		Author:     cslNames(e.Authors),
		Editor:     cslNames(e.Editors),
		Translator: cslNames(e.Translators),
		Title:      e.Title,
		Genre:      genre,
		Medium:     medium,
		Issued:     cslDate(e.Date),
		Accessed:   cslDate(e.URLDate),
	}
	if e.OrigDate != nil {
		item.OriginalDate = cslDate(e.OrigDate)
	}
	if item.Issued == nil {
		item.Issued = &CSLDate{DateParts: [][]int{{0}}}
	}

	// The container comes from an explicit container shortcut or, failing
	// that, the journal/booktitle structure.
	if _, value, _ := v.Container(e); value != "" {
		item.ContainerTitle = value
	} else if e.Has("journal") {
		item.ContainerTitle = e.Get("journal")
	} else if e.Has("booktitle") {
		item.ContainerTitle = e.Get("booktitle")
	}

	item.TitleShort = e.Get("shorttitle")
	item.CollectionTitle = e.Get("series")
	item.EventTitle = e.Get("eventtitle")
	item.EventPlace = e.Get("venue")
	item.Edition = e.Get("edition")
	item.Volume = e.Get("volume")
	item.Issue = e.Get("number")
	item.Page = e.Get("pages")
	item.ChapterNumber = e.Get("chapter")
	item.PublisherPlace = e.Get("address")
	item.URL = e.Get("url")
	item.DOI = e.Get("doi")
	item.ISBN = e.Get("isbn")
	item.Keyword = e.Get("keyword")
	item.Note = e.Get("note")

	// publisher, institution, school, and organization all land in the
	// CSL publisher slot; first present wins in that order.
	for _, f := range []string{"publisher", "institution", "school", "organization"} {
		if e.Has(f) {
			item.Publisher = e.Get(f)
			break
		}
	}

	return item, nil
}

func cslNames(names []biblio.PersonName) []CSLName {
	if len(names) == 0 {
		return nil
	}
	out := make([]CSLName, len(names))
	for i, n := range names {
		out[i] = CSLName{
			Family:              n.Last,
			Given:               n.First,
			NonDroppingParticle: n.Particle,
			Suffix:              n.Suffix,
		}
	}
	return out
}

func cslDate(d *biblio.PubDate) *CSLDate {
	if d == nil {
		return nil
	}
	parts := []int{atoiOrZero(d.Year)}
	if d.Month != "" {
		parts = append(parts, atoiOrZero(d.Month))
	}
	if d.Day != "" {
		parts = append(parts, atoiOrZero(d.Day))
	}
	return &CSLDate{DateParts: [][]int{parts}, Circa: d.Circa}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
