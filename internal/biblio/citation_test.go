package biblio

import (
	"testing"
)

func TestPullCitation_EndToEnd(t *testing.T) {
	e := NewEntry()
	e.Cite = "d=20030723 j=Research Policy v=32 n=7 pp=1217-1241"

	if err := Default().PullCitation(e, CiteOptions{}); err != nil {
		t.Fatalf("PullCitation() error = %v", err)
	}

	want := PubDate{Year: "2003", Month: "07", Day: "23"}
	if e.Date == nil || *e.Date != want {
		t.Errorf("Date = %+v, want %+v", e.Date, want)
	}
	fields := map[string]string{
		"journal": "Research Policy",
		"volume":  "32",
		"number":  "7",
		"pages":   "1217-1241",
	}
	for field, wantVal := range fields {
		if got := e.Get(field); got != wantVal {
			t.Errorf("Get(%q) = %q, want %q", field, got, wantVal)
		}
	}
}

func TestPullCitation_UnknownShortcodeSkipped(t *testing.T) {
	e := NewEntry()
	e.Cite = "zz=ignored j=Nature"

	if err := Default().PullCitation(e, CiteOptions{}); err != nil {
		t.Fatalf("PullCitation() error = %v", err)
	}
	if got := e.Get("journal"); got != "Nature" {
		t.Errorf("journal = %q, want Nature", got)
	}
	if e.Has("zz") {
		t.Error("unknown shortcode was assigned as a field")
	}
}

func TestPullCitation_MalformedDateIsFatal(t *testing.T) {
	e := NewEntry()
	e.Cite = "d=12345"

	if err := Default().PullCitation(e, CiteOptions{}); err == nil {
		t.Fatal("PullCitation() expected error for malformed date")
	}
}

func TestPullCitation_ReadDateBecomesURLDate(t *testing.T) {
	e := NewEntry()
	e.Cite = "r=20200101 url=https://example.com/page"

	if err := Default().PullCitation(e, CiteOptions{}); err != nil {
		t.Fatalf("PullCitation() error = %v", err)
	}
	if e.URLDate == nil || e.URLDate.Year != "2020" {
		t.Errorf("URLDate = %+v, want year 2020", e.URLDate)
	}
	if e.Has("custom1") {
		t.Error("custom1 should be deleted after reinterpretation")
	}
}

func TestPullCitation_ReadDateWithoutURLStays(t *testing.T) {
	e := NewEntry()
	e.Cite = "r=20200101"

	if err := Default().PullCitation(e, CiteOptions{}); err != nil {
		t.Fatalf("PullCitation() error = %v", err)
	}
	if e.URLDate != nil {
		t.Errorf("URLDate = %+v, want nil without a url field", e.URLDate)
	}
	if !e.Has("custom1") {
		t.Error("custom1 should remain when no url is present")
	}
}

func TestPullCitation_ShortTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"subtitle", "Thunderdell: a bibliography tool", "Thunderdell"},
		{"reply subject", "Re: your question", ""},
		{"no colon", "Plain title", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEntry()
			e.Title = tt.title
			if err := Default().PullCitation(e, CiteOptions{}); err != nil {
				t.Fatalf("PullCitation() error = %v", err)
			}
			if got := e.Get("shorttitle"); got != tt.want {
				t.Errorf("shorttitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPullCitation_OldidShortening(t *testing.T) {
	e := NewEntry()
	e.Title = "Neutral point of view"
	e.Cite = "url=https://en.wikipedia.org/w/index.php?title=NPOV&oldid=12345"

	if err := Default().PullCitation(e, CiteOptions{}); err != nil {
		t.Fatalf("PullCitation() error = %v", err)
	}
	if got := e.Get("url"); got != "https://en.wikipedia.org/?oldid=12345" {
		t.Errorf("url = %q", got)
	}
	if got := e.Get("shorttitle"); got != "Neutral point of view (oldid=12345)" {
		t.Errorf("shorttitle = %q", got)
	}
}

func TestPullCitation_OldidLongURL(t *testing.T) {
	raw := "https://en.wikipedia.org/w/index.php?title=NPOV&oldid=12345"
	e := NewEntry()
	e.Title = "Neutral point of view"
	e.Cite = "url=" + raw

	if err := Default().PullCitation(e, CiteOptions{LongURL: true}); err != nil {
		t.Fatalf("PullCitation() error = %v", err)
	}
	if got := e.Get("url"); got != raw {
		t.Errorf("url = %q, want original %q", got, raw)
	}
}

func TestPullCitation_EditorTranslatorReparsed(t *testing.T) {
	e := NewEntry()
	e.Cite = "e=Jane Doe tr=Gregory Rabassa"

	if err := Default().PullCitation(e, CiteOptions{}); err != nil {
		t.Fatalf("PullCitation() error = %v", err)
	}
	if len(e.Editors) != 1 || e.Editors[0].Last != "Doe" {
		t.Errorf("Editors = %+v", e.Editors)
	}
	if len(e.Translators) != 1 || e.Translators[0].Last != "Rabassa" {
		t.Errorf("Translators = %+v", e.Translators)
	}
	if e.Has("editor") || e.Has("translator") {
		t.Error("raw editor/translator fields should be deleted after reparse")
	}
}

func TestPullCitation_AuthorShortcode(t *testing.T) {
	e := NewEntry()
	e.Cite = "au=Nissenbaum, Helen ti=Privacy in Context d=2010"

	if err := Default().PullCitation(e, CiteOptions{}); err != nil {
		t.Fatalf("PullCitation() error = %v", err)
	}
	if len(e.Authors) != 1 || e.Authors[0].Last != "Nissenbaum" || e.Authors[0].First != "Helen" {
		t.Errorf("Authors = %+v", e.Authors)
	}
	if e.Title != "Privacy in Context" {
		t.Errorf("Title = %q", e.Title)
	}
	if e.OriAuthor != "Nissenbaum, Helen" {
		t.Errorf("OriAuthor = %q", e.OriAuthor)
	}
}

func TestPullCitation_ContainerConflict(t *testing.T) {
	e := NewEntry()
	e.Cite = "cb=Some Blog cj=Some Journal"

	if err := Default().PullCitation(e, CiteOptions{}); err != nil {
		t.Fatalf("PullCitation() error = %v", err)
	}
	// c_journal precedes c_blog in canonical container order.
	if !e.Has("c_journal") {
		t.Error("c_journal should be kept")
	}
	if e.Has("c_blog") {
		t.Error("c_blog should be dropped in favor of c_journal")
	}
}

func TestPullCitation_FourCharShortcode(t *testing.T) {
	e := NewEntry()
	e.Cite = "url=https://example.com urld=20240101"

	if err := Default().PullCitation(e, CiteOptions{}); err != nil {
		t.Fatalf("PullCitation() error = %v", err)
	}
	if e.URLDate == nil || e.URLDate.Year != "2024" {
		t.Errorf("URLDate = %+v, want year 2024", e.URLDate)
	}
}
