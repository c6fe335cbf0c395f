package scrape

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// FromPDF builds a scraped record from a local PDF: a DOI when one is
// found on the first pages, and a best-effort title.
func FromPDF(filePath string) (Biblio, error) {
	b := Biblio{}

	doi, err := ExtractDOI(filePath)
	if err != nil {
		return nil, err
	}
	if doi != "" {
		b["doi"] = doi
		b["url"] = "https://doi.org/" + doi
	}

	title, err := ExtractTitle(filePath)
	if err != nil {
		return nil, err
	}
	if title != "" {
		b["title"] = title
	}

	return b, nil
}

// ExtractDOI extracts a DOI from a PDF file.
// It searches the first few pages for DOI patterns.
func ExtractDOI(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// DOI is usually on the first page
	maxPages := 3
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if doi := findDOI(text); doi != "" {
			return doi, nil
		}
	}

	return "", nil // No DOI found (not an error)
}

// ExtractTitle attempts to extract the title from a PDF.
// This is a best-effort heuristic based on the first substantial line.
func ExtractTitle(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return "", nil
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return "", nil
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", nil
	}

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		// Skip short lines, headers, etc.
		if len(line) > 20 && !isHeaderLine(line) {
			return line, nil
		}
	}

	return "", nil
}

// findDOI finds a DOI in text.
func findDOI(text string) string {
	matches := doiPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}

	for _, match := range matches {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}

	return ""
}

// isValidDOI performs basic validation on a DOI.
func isValidDOI(doi string) bool {
	if len(doi) < 10 {
		return false
	}
	if !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	if slashIdx == -1 || slashIdx >= len(doi)-1 {
		return false
	}
	return true
}

// isHeaderLine checks if a line is likely a header/footer.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "journal") {
		return true
	}
	if strings.Contains(lower, "volume") && strings.Contains(lower, "issue") {
		return true
	}
	if strings.Contains(lower, "copyright") {
		return true
	}
	if strings.Contains(lower, "article") && strings.Contains(lower, "published") {
		return true
	}
	return false
}
