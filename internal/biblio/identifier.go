package biblio

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Characters illegal in XML ids and BibTeX keys, plus the markup the
	// query highlighter wraps around matches.
	keyCleaner = strings.NewReplacer(
		":", "", "'", "", ".", "", "@", "", "[", "", "]", "",
		"<strong>", "", "</strong>", "",
	)

	versionDotPat  = regexp.MustCompile(`(\d)\.(\d)`)
	titleSplitPat  = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	trailDigitsPat = regexp.MustCompile(`\d+$`)

	// stripAccents removes combining marks after NFD decomposition, so
	// "Pérez" keys as "Perez".
	stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// GetIdentifier builds a unique citation key for the entry against the
// current state of existing: author surnames + year + a short title
// abbreviation, with a trailing digit bumped until no collision remains.
//
// The result depends on which keys already exist, so the caller must insert
// each entry immediately after generating its key; reusing the collection
// out of order can produce different keys for the same entry. The existing
// collection itself is never mutated here.
func (v *Vocabulary) GetIdentifier(e *Entry, existing *Entries) string {
	return v.GetIdentifierDelim(e, existing, "")
}

// GetIdentifierDelim is GetIdentifier with a delimiter between author
// surnames, for human-readable keys (e.g. " & " in Wikipedia citations).
func (v *Vocabulary) GetIdentifierDelim(e *Entry, existing *Entries, delim string) string {
	key := cleanKey(v.nameStub(e, delim) + e.Year() + v.titleSuffix(e.Title))

	if key != "" && key[0] >= '0' && key[0] <= '9' {
		// BibTeX and pandoc forbid keys starting with a digit.
		key = "a" + key
	}

	for existing != nil && existing.Has(key) {
		key = bumpKey(key)
	}
	return key
}

// nameStub joins the surnames of up to three authors; four or more become
// the first surname plus "Etal".
func (v *Vocabulary) nameStub(e *Entry, delim string) string {
	if len(e.Authors) == 0 {
		return "Unknown"
	}
	if len(e.Authors) > 3 {
		return surnameToken(e.Authors[0]) + "Etal"
	}
	parts := make([]string, len(e.Authors))
	for i, a := range e.Authors {
		parts[i] = surnameToken(a)
	}
	return strings.Join(parts, delim)
}

// surnameToken returns particle+last with internal spaces removed.
func surnameToken(p PersonName) string {
	return strings.ReplaceAll(p.Particle+p.Last, " ", "")
}

// titleSuffix abbreviates a title into a short disambiguation suffix: the
// first letters of up to three significant words, or for a single
// significant word its first, second-to-last, and last characters.
func (v *Vocabulary) titleSuffix(title string) string {
	if title == "" {
		return ""
	}

	// A wiki namespace prefix (colon with no following space) is not part
	// of the title proper.
	if i := strings.Index(title, ":"); i > 0 && i+1 < len(title) && title[i+1] != ' ' {
		title = title[i+1:]
	}
	title = strings.NewReplacer("'", "", "’", "").Replace(title)
	// Keep version markers like "2.0" as a single word.
	title = versionDotPat.ReplaceAllString(title, "$1$2")

	var words []string
	for _, w := range titleSplitPat.Split(title, -1) {
		w = strings.ToLower(w)
		if w == "" || v.BoringWords[w] {
			continue
		}
		words = append(words, w)
	}

	switch {
	case len(words) == 0:
		return ""
	case len(words) == 1:
		w := words[0]
		if len(w) < 3 {
			return w
		}
		return string(w[0]) + string(w[len(w)-2]) + string(w[len(w)-1])
	default:
		var b strings.Builder
		for i := 0; i < len(words) && i < 3; i++ {
			b.WriteByte(words[i][0])
		}
		return b.String()
	}
}

// cleanKey strips illegal key characters and diacritics.
func cleanKey(key string) string {
	key = keyCleaner.Replace(key)
	if out, _, err := transform.String(stripAccents, key); err == nil {
		key = out
	}
	return key
}

// bumpKey resolves a collision by appending "1", or incrementing the
// trailing digits if the key already ends in one.
func bumpKey(key string) string {
	loc := trailDigitsPat.FindStringIndex(key)
	if loc == nil {
		return key + "1"
	}
	n, err := strconv.Atoi(key[loc[0]:])
	if err != nil {
		return key + "1"
	}
	return key[:loc[0]] + strconv.Itoa(n+1)
}
