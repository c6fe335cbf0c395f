package biblio

import "fmt"

// UnknownTypeError reports an explicit entry_type that belongs to neither
// the BibLaTeX nor the CSL vocabulary. Silently guessing would hide a typo
// in hand-authored data, so this is a hard error.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown entry type %q (neither BibLaTeX nor CSL)", e.Type)
}

// GuessBiblatexType returns the entry's BibLaTeX type.
//
// An explicit entry_type is validated against both vocabularies and
// translated when it belongs to CSL. Otherwise the type is inferred from an
// ordered first-match rule list: container shortcuts are the strongest
// signal, then event, book, journal, and institutional structure, then a
// bare URL. The rule order is a heuristic, deterministic for identical
// field sets. Defaults to "misc".
func (v *Vocabulary) GuessBiblatexType(e *Entry) (string, error) {
	if e.EntryType != "" {
		switch {
		case v.BiblatexTypes[e.EntryType]:
			return e.EntryType, nil
		case v.CSLTypes[e.EntryType]:
			return v.CSLToBibType[e.EntryType], nil
		default:
			return "", &UnknownTypeError{Type: e.EntryType}
		}
	}

	for _, c := range v.Containers {
		if e.Has(c) {
			return v.ContainerBibType[c], nil
		}
	}

	switch {
	case e.Has("eventtitle"):
		return "inproceedings", nil
	case e.Has("booktitle") && len(e.Editors) > 0:
		return "incollection", nil
	case e.Has("booktitle"):
		return "inbook", nil
	case e.Has("journal"):
		return "article", nil
	case e.Has("institution") || e.Has("school"):
		return "report", nil
	case e.Has("publisher"):
		return "book", nil
	case e.Has("url"):
		return "online", nil
	}
	return "misc", nil
}

// GuessCSLType returns the entry's CSL type plus optional genre and medium
// refinements. Theses translate from the BibLaTeX side with a genre string
// ("Master's thesis", "PhD thesis") since CSL has a single thesis type.
func (v *Vocabulary) GuessCSLType(e *Entry) (cslType, genre, medium string, err error) {
	genre = e.Get("genre")
	medium = e.Get("medium")

	if e.EntryType != "" {
		switch {
		case v.CSLTypes[e.EntryType]:
			return e.EntryType, genre, medium, nil
		case e.EntryType == "mastersthesis":
			if genre == "" {
				genre = "Master's thesis"
			}
			return "thesis", genre, medium, nil
		case e.EntryType == "phdthesis":
			if genre == "" {
				genre = "PhD thesis"
			}
			return "thesis", genre, medium, nil
		case v.BiblatexTypes[e.EntryType]:
			return v.BibToCSLType[e.EntryType], genre, medium, nil
		default:
			return "", "", "", &UnknownTypeError{Type: e.EntryType}
		}
	}

	for _, c := range v.Containers {
		if e.Has(c) {
			return v.ContainerCSLType[c], genre, medium, nil
		}
	}

	switch {
	case e.Has("eventtitle"):
		return "paper-conference", genre, medium, nil
	case e.Has("booktitle"):
		return "chapter", genre, medium, nil
	case e.Has("journal"):
		return "article-journal", genre, medium, nil
	case e.Has("institution") || e.Has("school"):
		return "report", genre, medium, nil
	case e.Has("publisher"):
		return "book", genre, medium, nil
	case e.Has("url"):
		return "webpage", genre, medium, nil
	}
	return "no-type", genre, medium, nil
}
