package scrape

import (
	"testing"

	"github.com/reagle/thunderdell/internal/biblio"
)

func TestToCiteString_Order(t *testing.T) {
	v := biblio.Default()
	b := Biblio{
		"publisher": "Basic Books",
		"title":     "Alone Together",
		"author":    "Sherry Turkle",
		"date":      "2011",
		"isbn":      "978-0465031467",
	}

	got := b.ToCiteString(v)
	want := "au=Sherry Turkle ti=Alone Together d=2011 i=978-0465031467 p=Basic Books"
	if got != want {
		t.Errorf("ToCiteString() = %q, want %q", got, want)
	}
}

func TestToCiteString_SkipsEmptyAndUnknown(t *testing.T) {
	v := biblio.Default()
	b := Biblio{
		"title":    "Something",
		"date":     "",
		"nonfield": "dropped",
	}

	got := b.ToCiteString(v)
	want := "ti=Something"
	if got != want {
		t.Errorf("ToCiteString() = %q, want %q", got, want)
	}
}

func TestToEntry(t *testing.T) {
	v := biblio.Default()
	b := Biblio{
		"author": "Danah Boyd, Kate Crawford",
		"title":  "Critical questions for big data",
		"date":   "2012",
		"doi":    "10.1080/1369118X.2012.678878",
		"url":    "https://doi.org/10.1080/1369118X.2012.678878",
	}

	e, err := ToEntry(b, v, biblio.CiteOptions{})
	if err != nil {
		t.Fatalf("ToEntry() error = %v", err)
	}

	if len(e.Authors) != 2 || e.Authors[0].Last != "Boyd" || e.Authors[1].Last != "Crawford" {
		t.Errorf("Authors = %+v", e.Authors)
	}
	if e.Title != "Critical questions for big data" {
		t.Errorf("Title = %q", e.Title)
	}
	if e.Date == nil || e.Date.Year != "2012" {
		t.Errorf("Date = %+v", e.Date)
	}
	if e.Get("doi") != "10.1080/1369118X.2012.678878" {
		t.Errorf("doi = %q", e.Get("doi"))
	}
}

func TestToEntry_Defaults(t *testing.T) {
	v := biblio.Default()

	e, err := ToEntry(Biblio{"date": "2020"}, v, biblio.CiteOptions{})
	if err != nil {
		t.Fatalf("ToEntry() error = %v", err)
	}
	if len(e.Authors) != 1 || e.Authors[0].Last != "Unknown" {
		t.Errorf("Authors = %+v, want Unknown", e.Authors)
	}
	if e.Title != "Unknown" {
		t.Errorf("Title = %q, want Unknown", e.Title)
	}
}

func TestToEntry_BadDate(t *testing.T) {
	v := biblio.Default()
	if _, err := ToEntry(Biblio{"title": "X", "date": "12345"}, v, biblio.CiteOptions{}); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"plain DOI",
			"See https://doi.org/10.1080/1369118X.2012.678878 for details",
			"10.1080/1369118X.2012.678878",
		},
		{
			"trailing punctuation",
			"doi: 10.1145/2380718.2380723.",
			"10.1145/2380718.2380723",
		},
		{"no DOI", "Nothing to see here", ""},
		{"too short", "10.1/x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findDOI(tt.text)
			if got != tt.want {
				t.Errorf("findDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsValidDOI(t *testing.T) {
	tests := []struct {
		doi  string
		want bool
	}{
		{"10.1080/1369118X.2012.678878", true},
		{"10.1145/2380718.2380723", true},
		{"10.1/x", false},
		{"11.1080/nope.12345", false},
		{"10.1080nothingafter", false},
	}

	for _, tt := range tests {
		t.Run(tt.doi, func(t *testing.T) {
			if got := isValidDOI(tt.doi); got != tt.want {
				t.Errorf("isValidDOI(%q) = %v, want %v", tt.doi, got, tt.want)
			}
		})
	}
}

func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Journal of Important Studies", true},
		{"Volume 12, Issue 3", true},
		{"Copyright 2012 The Authors", true},
		{"Critical questions for big data", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := isHeaderLine(tt.line); got != tt.want {
				t.Errorf("isHeaderLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
