package biblio

import (
	"reflect"
	"testing"
)

func TestEntries_InsertionOrder(t *testing.T) {
	es := NewEntries()
	for _, id := range []string{"Zed2001z", "Adams1999a", "Mill1850m"} {
		e := NewEntry()
		e.Identifier = id
		es.Add(e)
	}

	want := []string{"Zed2001z", "Adams1999a", "Mill1850m"}
	if got := es.Identifiers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Identifiers() = %v, want %v", got, want)
	}
	if es.Len() != 3 {
		t.Errorf("Len() = %d, want 3", es.Len())
	}
}

func TestEntries_GetHas(t *testing.T) {
	es := NewEntries()
	e := NewEntry()
	e.Identifier = "Smith2008abc"
	es.Add(e)

	if !es.Has("Smith2008abc") {
		t.Error("Has() = false for inserted key")
	}
	if got, ok := es.Get("Smith2008abc"); !ok || got != e {
		t.Error("Get() did not return the inserted entry")
	}
	if _, ok := es.Get("missing"); ok {
		t.Error("Get() found a missing key")
	}
}

func TestEntry_FieldNamesSorted(t *testing.T) {
	e := NewEntry()
	e.Set("volume", "32")
	e.Set("journal", "Research Policy")
	e.Set("pages", "1217-1241")
	e.Set("number", "")

	want := []string{"journal", "pages", "volume"}
	if got := e.FieldNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("FieldNames() = %v, want %v", got, want)
	}
}

func TestEntry_Year(t *testing.T) {
	e := NewEntry()
	if got := e.Year(); got != "0000" {
		t.Errorf("Year() = %q, want 0000 for undated entry", got)
	}
	e.Date = &PubDate{Year: "2003"}
	if got := e.Year(); got != "2003" {
		t.Errorf("Year() = %q, want 2003", got)
	}
}

func TestVocabulary_Bidirectional(t *testing.T) {
	v := Default()
	for short, field := range v.ShortToField {
		if got := v.FieldToShort[field]; got != short {
			t.Errorf("FieldToShort[%q] = %q, want %q", field, got, short)
		}
	}
}

func TestVocabulary_ContainerResolution(t *testing.T) {
	v := Default()

	e := NewEntry()
	e.Set("c_blog", "BoingBoing")
	e.Set("c_journal", "First Monday")

	field, value, populated := v.Container(e)
	if field != "c_journal" || value != "First Monday" {
		t.Errorf("Container() = %q %q, want c_journal First Monday", field, value)
	}
	if len(populated) != 2 {
		t.Errorf("populated = %v, want 2 containers", populated)
	}
}

func TestVocabulary_SpecShortcodes(t *testing.T) {
	// The shortcodes promised by the citation mini-language.
	want := map[string]string{
		"au": "author", "ti": "title", "d": "date", "p": "publisher",
		"j": "journal", "v": "volume", "n": "number", "pp": "pages",
		"a": "address", "e": "editor", "url": "url", "urld": "urldate",
		"od": "origdate", "doi": "doi", "i": "isbn", "kw": "keyword",
		"cj": "c_journal", "cm": "c_magazine", "cn": "c_newspaper",
		"cd": "c_dictionary", "cy": "c_encyclopedia", "cf": "c_forum",
		"cb": "c_blog", "cw": "c_web",
	}
	v := Default()
	for short, field := range want {
		if got := v.ShortToField[short]; got != field {
			t.Errorf("ShortToField[%q] = %q, want %q", short, got, field)
		}
	}
}
