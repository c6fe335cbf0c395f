package biblio

import (
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
)

// shortcodePat anchors a shortcode token: a short run of word characters
// at a word boundary, immediately followed by "=". The value of a pair runs
// to the start of the next shortcode token, so values may contain spaces
// without any delimiter.
var shortcodePat = regexp.MustCompile(`\b(\w{1,4})=`)

// CiteOptions adjusts citation post-processing.
type CiteOptions struct {
	// LongURL keeps MediaWiki permalink URLs at full length instead of
	// shortening them to the host + oldid form.
	LongURL bool
}

// PullCitation parses the entry's accumulated Cite string into fields and
// runs the fixed post-processing pipeline over the result.
//
// The cite string is an alternating sequence of shortcode=value pairs; an
// unknown shortcode is logged and skipped, never fatal. A malformed date in
// a date-valued field is a hard error for the entry.
func (v *Vocabulary) PullCitation(e *Entry, opts CiteOptions) error {
	if e.Cite != "" {
		v.pullPairs(e)
	}

	// The steps below depend on earlier steps having populated fields, so
	// the order is fixed.
	if err := v.applyDates(e); err != nil {
		return err
	}
	v.applyShortTitle(e)
	if err := applyOldidShortening(e, opts.LongURL); err != nil {
		return err
	}
	v.applyContributorNames(e)
	v.applyContainerConflict(e)
	return nil
}

// pullPairs splits the cite string on shortcode anchors and assigns each
// pair through the vocabulary table.
func (v *Vocabulary) pullPairs(e *Entry) {
	matches := shortcodePat.FindAllStringSubmatchIndex(e.Cite, -1)
	for i, m := range matches {
		code := e.Cite[m[2]:m[3]]
		end := len(e.Cite)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		value := strings.TrimSpace(e.Cite[m[1]:end])

		field, ok := v.ShortToField[code]
		if !ok {
			log.Printf("unknown citation shortcode %q=%q (skipped)", code, value)
			continue
		}

		switch field {
		case "author":
			e.Authors = v.ParseNames(value)
			if e.OriAuthor == "" {
				e.OriAuthor = value
			}
		case "title":
			e.Title = value
		case "annotation":
			e.Annotation = value
		case "entry_type":
			e.EntryType = value
		default:
			e.Set(field, value)
		}
	}
}

// applyDates parses the raw date-valued fields into structured dates.
// custom1 is the read date; when a URL is present it is reinterpreted as
// the urldate (access date).
func (v *Vocabulary) applyDates(e *Entry) error {
	if raw := e.Get("date"); raw != "" {
		d, err := ParseDate(raw)
		if err != nil {
			return fmt.Errorf("date: %w", err)
		}
		e.Date = &d
		e.Delete("date")
	}

	if raw := e.Get("custom1"); raw != "" && e.Has("url") {
		d, err := ParseDate(raw)
		if err != nil {
			return fmt.Errorf("custom1 read date: %w", err)
		}
		e.URLDate = &d
		e.Delete("custom1")
	}
	if raw := e.Get("urldate"); raw != "" {
		d, err := ParseDate(raw)
		if err != nil {
			return fmt.Errorf("urldate: %w", err)
		}
		e.URLDate = &d
		e.Delete("urldate")
	}

	if raw := e.Get("origdate"); raw != "" {
		d, err := ParseDate(raw)
		if err != nil {
			return fmt.Errorf("origdate: %w", err)
		}
		e.OrigDate = &d
		e.Delete("origdate")
	}
	return nil
}

// applyShortTitle derives shorttitle from a subtitled title unless the
// title is a "Re:" reply subject.
func (v *Vocabulary) applyShortTitle(e *Entry) {
	if e.Has("shorttitle") {
		return
	}
	if !strings.Contains(e.Title, ": ") || strings.HasPrefix(e.Title, "Re:") {
		return
	}
	e.Set("shorttitle", e.Title[:strings.Index(e.Title, ":")])
}

// applyOldidShortening handles MediaWiki permanent-revision URLs: the
// oldid is folded into the short title, and unless longURL is set the URL
// is collapsed to its host plus the oldid query.
func applyOldidShortening(e *Entry, longURL bool) error {
	raw := e.Get("url")
	if raw == "" || !strings.Contains(raw, "oldid=") {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing url %q: %w", raw, err)
	}
	oldid := u.Query().Get("oldid")
	if oldid == "" {
		return nil
	}

	short := e.Get("shorttitle")
	if short == "" {
		short = e.Title
	}
	e.Set("shorttitle", fmt.Sprintf("%s (oldid=%s)", short, oldid))

	if !longURL {
		shortURL := fmt.Sprintf("%s://%s/?oldid=%s", u.Scheme, u.Host, oldid)
		if diff := u.Query().Get("diff"); diff != "" {
			shortURL += "&diff=" + diff
		}
		e.Set("url", shortURL)
	}
	return nil
}

// applyContributorNames reparses editor/translator fields that arrived as
// raw strings into structured names.
func (v *Vocabulary) applyContributorNames(e *Entry) {
	if raw := e.Get("editor"); raw != "" {
		e.Editors = v.ParseNames(raw)
		e.Delete("editor")
	}
	if raw := e.Get("translator"); raw != "" {
		e.Translators = v.ParseNames(raw)
		e.Delete("translator")
	}
}

// applyContainerConflict enforces the at-most-one-container invariant:
// when merging leaves several c_* fields populated, the first in canonical
// order is kept and the rest are dropped with a warning.
func (v *Vocabulary) applyContainerConflict(e *Entry) {
	_, _, populated := v.Container(e)
	if len(populated) < 2 {
		return
	}
	log.Printf("entry %q: multiple container fields %v, keeping %s",
		e.Title, populated, populated[0])
	for _, c := range populated[1:] {
		e.Delete(c)
	}
}
