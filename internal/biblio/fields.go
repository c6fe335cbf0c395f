package biblio

// Vocabulary holds the static mappings between the compact shortcode
// citation language and the BibLaTeX and CSL field vocabularies, plus the
// word sets used by name parsing and identifier abbreviation. A Vocabulary
// is read-only after construction and safe to share across goroutines.
type Vocabulary struct {
	// ShortToField maps a 1-3 character shortcode to a long field name.
	ShortToField map[string]string
	// FieldToShort is the reverse mapping.
	FieldToShort map[string]string

	// FieldToCSL maps a long (BibLaTeX-ish) field name to its CSL
	// equivalent for the CSL emitters.
	FieldToCSL map[string]string

	// BiblatexTypes and CSLTypes are the known type names per vocabulary.
	BiblatexTypes map[string]bool
	CSLTypes      map[string]bool

	// BibToCSLType and CSLToBibType translate entry types across the two
	// vocabularies.
	BibToCSLType map[string]string
	CSLToBibType map[string]string

	// Containers lists the mutually exclusive container shortcut fields in
	// canonical precedence order.
	Containers []string
	// ContainerCSLType and ContainerBibType map a container field to the
	// entry type it implies.
	ContainerCSLType map[string]string
	ContainerBibType map[string]string

	// BoringWords are title words skipped when abbreviating a title into
	// an identifier suffix.
	BoringWords map[string]bool

	// Particles and Suffixes drive name parsing.
	Particles map[string]bool
	Suffixes  map[string]bool
}

var defaultVocabulary = newDefaultVocabulary()

// Default returns the process-wide default vocabulary.
func Default() *Vocabulary {
	return defaultVocabulary
}

func newDefaultVocabulary() *Vocabulary {
	shortToField := map[string]string{
		"a":    "address",
		"an":   "annotation",
		"au":   "author",
		"bt":   "booktitle",
		"ch":   "chapter",
		"d":    "date",
		"doi":  "doi",
		"e":    "editor",
		"ed":   "edition",
		"et":   "entry_type",
		"ev":   "eventtitle",
		"g":    "genre",
		"i":    "isbn",
		"in":   "institution",
		"j":    "journal",
		"kw":   "keyword",
		"md":   "medium",
		"n":    "number",
		"nt":   "note",
		"ol":   "organization",
		"od":   "origdate",
		"p":    "publisher",
		"pp":   "pages",
		"r":    "custom1",
		"sc":   "school",
		"se":   "series",
		"st":   "shorttitle",
		"t":    "type",
		"ti":   "title",
		"tr":   "translator",
		"url":  "url",
		"urld": "urldate",
		"v":    "volume",
		"ve":   "venue",

		// CSL container shortcuts
		"cj": "c_journal",
		"cm": "c_magazine",
		"cn": "c_newspaper",
		"cd": "c_dictionary",
		"cy": "c_encyclopedia",
		"cf": "c_forum",
		"cb": "c_blog",
		"cw": "c_web",
	}

	fieldToShort := make(map[string]string, len(shortToField))
	for s, f := range shortToField {
		fieldToShort[f] = s
	}

	fieldToCSL := map[string]string{
		"address":        "publisher-place",
		"annotation":     "note",
		"booktitle":      "container-title",
		"chapter":        "chapter-number",
		"date":           "issued",
		"doi":            "DOI",
		"edition":        "edition",
		"eventtitle":     "event-title",
		"genre":          "genre",
		"isbn":           "ISBN",
		"institution":    "publisher",
		"journal":        "container-title",
		"keyword":        "keyword",
		"medium":         "medium",
		"number":         "issue",
		"note":           "note",
		"organization":   "publisher",
		"origdate":       "original-date",
		"pages":          "page",
		"publisher":      "publisher",
		"school":         "publisher",
		"series":         "collection-title",
		"shorttitle":     "title-short",
		"title":          "title",
		"url":            "URL",
		"urldate":        "accessed",
		"venue":          "event-place",
		"volume":         "volume",
		"c_journal":      "container-title",
		"c_magazine":     "container-title",
		"c_newspaper":    "container-title",
		"c_dictionary":   "container-title",
		"c_encyclopedia": "container-title",
		"c_forum":        "container-title",
		"c_blog":         "container-title",
		"c_web":          "container-title",
	}

	biblatexTypes := toSet([]string{
		"article", "book", "booklet", "collection", "inbook",
		"incollection", "inproceedings", "inreference", "manual",
		"mastersthesis", "misc", "online", "patent", "phdthesis",
		"proceedings", "report", "techreport", "thesis", "unpublished",
	})

	cslTypes := toSet([]string{
		"article", "article-journal", "article-magazine",
		"article-newspaper", "book", "chapter", "entry",
		"entry-dictionary", "entry-encyclopedia", "interview",
		"manuscript", "map", "motion_picture", "no-type", "pamphlet",
		"paper-conference", "patent", "personal_communication", "post",
		"post-weblog", "report", "speech", "thesis", "webpage",
	})

	bibToCSLType := map[string]string{
		"article":       "article-journal",
		"book":          "book",
		"booklet":       "pamphlet",
		"collection":    "book",
		"inbook":        "chapter",
		"incollection":  "chapter",
		"inproceedings": "paper-conference",
		"inreference":   "entry",
		"manual":        "report",
		"mastersthesis": "thesis",
		"misc":          "no-type",
		"online":        "webpage",
		"patent":        "patent",
		"phdthesis":     "thesis",
		"proceedings":   "book",
		"report":        "report",
		"techreport":    "report",
		"thesis":        "thesis",
		"unpublished":   "manuscript",
	}

	cslToBibType := map[string]string{
		"article":                "misc",
		"article-journal":        "article",
		"article-magazine":       "article",
		"article-newspaper":      "article",
		"book":                   "book",
		"chapter":                "incollection",
		"entry":                  "inreference",
		"entry-dictionary":       "inreference",
		"entry-encyclopedia":     "inreference",
		"interview":              "misc",
		"manuscript":             "unpublished",
		"no-type":                "misc",
		"pamphlet":               "booklet",
		"paper-conference":       "inproceedings",
		"patent":                 "patent",
		"personal_communication": "misc",
		"post":                   "online",
		"post-weblog":            "online",
		"report":                 "report",
		"speech":                 "misc",
		"thesis":                 "thesis",
		"webpage":                "online",
	}

	containers := []string{
		"c_journal", "c_magazine", "c_newspaper", "c_dictionary",
		"c_encyclopedia", "c_forum", "c_blog", "c_web",
	}

	containerCSLType := map[string]string{
		"c_journal":      "article-journal",
		"c_magazine":     "article-magazine",
		"c_newspaper":    "article-newspaper",
		"c_dictionary":   "entry-dictionary",
		"c_encyclopedia": "entry-encyclopedia",
		"c_forum":        "post",
		"c_blog":         "post-weblog",
		"c_web":          "webpage",
	}

	containerBibType := map[string]string{
		"c_journal":      "article",
		"c_magazine":     "article",
		"c_newspaper":    "article",
		"c_dictionary":   "inreference",
		"c_encyclopedia": "inreference",
		"c_forum":        "online",
		"c_blog":         "online",
		"c_web":          "online",
	}

	boringWords := toSet([]string{
		"a", "an", "the", "and", "but", "or", "nor", "so", "yet",
		"as", "at", "by", "for", "in", "of", "on", "to", "up", "re",
		"with", "from", "into", "onto",
	})

	particles := toSet([]string{
		"al", "bin", "da", "de", "de la", "del", "della", "der", "di",
		"du", "ibn", "la", "le", "ter", "van", "van den", "van der",
		"von", "von der",
	})

	suffixes := toSet([]string{
		"Jr.", "Sr.", "Jr", "Sr", "II", "III", "IV",
	})

	return &Vocabulary{
		ShortToField:     shortToField,
		FieldToShort:     fieldToShort,
		FieldToCSL:       fieldToCSL,
		BiblatexTypes:    biblatexTypes,
		CSLTypes:         cslTypes,
		BibToCSLType:     bibToCSLType,
		CSLToBibType:     cslToBibType,
		Containers:       containers,
		ContainerCSLType: containerCSLType,
		ContainerBibType: containerBibType,
		BoringWords:      boringWords,
		Particles:        particles,
		Suffixes:         suffixes,
	}
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Container returns the entry's container field and value, resolving
// conflicts deterministically: when more than one container shortcut is
// present, the first in canonical order wins. The full list of populated
// containers is returned so callers can log the dropped ones.
func (v *Vocabulary) Container(e *Entry) (field, value string, populated []string) {
	for _, c := range v.Containers {
		if e.Has(c) {
			populated = append(populated, c)
		}
	}
	if len(populated) == 0 {
		return "", "", nil
	}
	return populated[0], e.Get(populated[0]), populated
}
