package mindmap

import (
	"strings"
	"testing"

	"github.com/reagle/thunderdell/internal/biblio"
)

const sampleMap = `<map version="freeplane 1.9.13">
<node TEXT="readings">
  <node TEXT="Danah Boyd, Kate Crawford" STYLE_REF="author">
    <node TEXT="Critical questions for big data" STYLE_REF="title" LINK="https://example.com/bigdata">
      <node TEXT="d=2012 j=Information, Communication &amp; Society v=15 n=5 pp=662-679" STYLE_REF="cite"/>
      <node TEXT="Provocations about data epistemology." STYLE_REF="annotation"/>
    </node>
    <node TEXT="Six provocations for big data" STYLE_REF="title">
      <node TEXT="d=2011 ev=A Decade in Internet Time" STYLE_REF="cite"/>
    </node>
  </node>
  <node TEXT="Sherry Turkle" STYLE_REF="author">
    <node TEXT="Alone Together" STYLE_REF="title">
      <node TEXT="d=2011 p=Basic Books a=New York" STYLE_REF="cite"/>
    </node>
  </node>
</node>
</map>`

func walkSample(t *testing.T) *biblio.Entries {
	t.Helper()
	entries := biblio.NewEntries()
	_, err := WalkReader(strings.NewReader(sampleMap), "sample.mm", entries, biblio.Default(), biblio.CiteOptions{})
	if err != nil {
		t.Fatalf("WalkReader() error = %v", err)
	}
	return entries
}

func TestWalk_CommitBoundaries(t *testing.T) {
	entries := walkSample(t)

	if entries.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", entries.Len())
	}

	all := entries.All()
	first, second := all[0], all[1]

	// Two titles under one author share the author but not the identifier.
	if first.OriAuthor != "Danah Boyd, Kate Crawford" || second.OriAuthor != first.OriAuthor {
		t.Errorf("OriAuthors = %q, %q", first.OriAuthor, second.OriAuthor)
	}
	if first.Title == second.Title {
		t.Error("titles should differ")
	}
	if first.Identifier == second.Identifier {
		t.Errorf("identifiers collide: %q", first.Identifier)
	}
	if len(first.Authors) != 2 || first.Authors[0].Last != "Boyd" {
		t.Errorf("Authors = %+v", first.Authors)
	}
}

func TestWalk_CiteAndAnnotation(t *testing.T) {
	entries := walkSample(t)
	e := entries.All()[0]

	if e.Date == nil || e.Date.Year != "2012" {
		t.Errorf("Date = %+v, want year 2012", e.Date)
	}
	if got := e.Get("journal"); got != "Information, Communication & Society" {
		t.Errorf("journal = %q", got)
	}
	if got := e.Get("pages"); got != "662-679" {
		t.Errorf("pages = %q", got)
	}
	if e.Annotation != "Provocations about data epistemology." {
		t.Errorf("Annotation = %q", e.Annotation)
	}
	if got := e.Get("url"); got != "https://example.com/bigdata" {
		t.Errorf("url = %q (title LINK should seed url)", got)
	}
}

func TestWalk_TrailingCommit(t *testing.T) {
	entries := walkSample(t)
	last := entries.All()[2]

	// The final entry is committed at traversal end, no trailing title.
	if last.Title != "Alone Together" {
		t.Errorf("Title = %q", last.Title)
	}
	if got := last.Get("publisher"); got != "Basic Books" {
		t.Errorf("publisher = %q", got)
	}
}

func TestWalk_AuthorlessDefaults(t *testing.T) {
	const m = `<map version="freeplane 1.9.13">
<node TEXT="root">
  <node TEXT="" STYLE_REF="author">
    <node TEXT="" STYLE_REF="title"/>
  </node>
</node>
</map>`

	entries := biblio.NewEntries()
	_, err := WalkReader(strings.NewReader(m), "empty.mm", entries, biblio.Default(), biblio.CiteOptions{})
	if err != nil {
		t.Fatalf("WalkReader() error = %v", err)
	}
	if entries.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", entries.Len())
	}
	e := entries.All()[0]
	if e.Title != "Unknown" {
		t.Errorf("Title = %q, want Unknown", e.Title)
	}
	if len(e.Authors) != 1 || e.Authors[0].Last != "Unknown" {
		t.Errorf("Authors = %+v, want placeholder Unknown", e.Authors)
	}
	if e.Year() != "0000" {
		t.Errorf("Year() = %q, want 0000", e.Year())
	}
}

func TestWalk_MissingAuthorAncestorFatal(t *testing.T) {
	const m = `<map version="freeplane 1.9.13">
<node TEXT="root">
  <node TEXT="Orphan title" STYLE_REF="title"/>
</node>
</map>`

	entries := biblio.NewEntries()
	_, err := WalkReader(strings.NewReader(m), "broken.mm", entries, biblio.Default(), biblio.CiteOptions{})
	if err == nil {
		t.Fatal("expected error for title without author ancestor")
	}
	if !strings.Contains(err.Error(), "broken.mm") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestWalk_MalformedCiteAborts(t *testing.T) {
	const m = `<map version="freeplane 1.9.13">
<node TEXT="root">
  <node TEXT="Bob Smith" STYLE_REF="author">
    <node TEXT="Bad date" STYLE_REF="title">
      <node TEXT="d=12345" STYLE_REF="cite"/>
    </node>
  </node>
</node>
</map>`

	entries := biblio.NewEntries()
	_, err := WalkReader(strings.NewReader(m), "bad.mm", entries, biblio.Default(), biblio.CiteOptions{})
	if err == nil {
		t.Fatal("expected error for malformed cite date")
	}
	if !strings.Contains(err.Error(), "Bob Smith") || !strings.Contains(err.Error(), "bad.mm") {
		t.Errorf("error should name author and file: %v", err)
	}
}

func TestWalk_ChaseLinks(t *testing.T) {
	const m = `<map version="freeplane 1.9.13">
<node TEXT="root">
  <node TEXT="see also" LINK="other/readings.mm"/>
  <node TEXT="web link" LINK="https://example.com/page.mm"/>
</node>
</map>`

	entries := biblio.NewEntries()
	chase, err := WalkReader(strings.NewReader(m), "maps/main.mm", entries, biblio.Default(), biblio.CiteOptions{})
	if err != nil {
		t.Fatalf("WalkReader() error = %v", err)
	}
	if len(chase) != 1 {
		t.Fatalf("chase = %v, want 1 relative link", chase)
	}
	if chase[0] != "maps/other/readings.mm" {
		t.Errorf("chase[0] = %q, want maps/other/readings.mm", chase[0])
	}
}
