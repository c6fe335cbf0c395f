// Package mindmap walks Freeplane mindmap XML files and assembles
// bibliographic entries from their styled nodes.
package mindmap

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/reagle/thunderdell/internal/biblio"
)

// NodeStyle is the closed set of node styles relevant to entry assembly.
// Styles arrive as STYLE_REF attribute strings and are parsed once at
// ingestion time.
type NodeStyle int

const (
	StyleOther NodeStyle = iota
	StyleAuthor
	StyleTitle
	StyleCite
	StyleAnnotation
)

func styleOf(el *etree.Element) NodeStyle {
	switch el.SelectAttrValue("STYLE_REF", "") {
	case "author":
		return StyleAuthor
	case "title":
		return StyleTitle
	case "cite":
		return StyleCite
	case "annotation":
		return StyleAnnotation
	default:
		return StyleOther
	}
}

// walker carries the traversal state for one mindmap file.
type walker struct {
	vocab   *biblio.Vocabulary
	opts    biblio.CiteOptions
	entries *biblio.Entries
	file    string
	chase   []string
	cur     *biblio.Entry
}

// Walk parses the mindmap file at path and commits its entries into
// entries, which must have been created by the caller so multiple files
// can merge into one collection. It returns any same-mindmap chase links
// discovered (relative .mm hyperlinks, resolved against the file's
// directory); following them, with a visited set for cycle safety, is the
// caller's responsibility.
//
// A commit that fails (e.g. a malformed date in a cite string) aborts the
// whole walk with the offending author and file named: bibliographies are
// hand-curated, and a silent partial build is worse than a loud stop.
func Walk(path string, entries *biblio.Entries, v *biblio.Vocabulary, opts biblio.CiteOptions) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("reading mindmap %s: %w", path, err)
	}
	return walkDoc(doc, path, entries, v, opts)
}

// WalkReader is Walk over an already-open reader; file is used for
// provenance and error messages.
func WalkReader(r io.Reader, file string, entries *biblio.Entries, v *biblio.Vocabulary, opts biblio.CiteOptions) ([]string, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("reading mindmap %s: %w", file, err)
	}
	return walkDoc(doc, file, entries, v, opts)
}

func walkDoc(doc *etree.Document, file string, entries *biblio.Entries, v *biblio.Vocabulary, opts biblio.CiteOptions) ([]string, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("mindmap %s: no root element", file)
	}

	w := &walker{vocab: v, opts: opts, entries: entries, file: file}
	for _, node := range root.SelectElements("node") {
		if err := w.walk(node); err != nil {
			return nil, err
		}
	}
	// The last entry has no following title node to trigger its commit.
	if err := w.commit(); err != nil {
		return nil, err
	}
	return w.chase, nil
}

// walk visits one node and its children depth-first.
func (w *walker) walk(el *etree.Element) error {
	text := el.SelectAttrValue("TEXT", "")

	if link := el.SelectAttrValue("LINK", ""); link != "" {
		w.recordChase(link)
	}

	switch styleOf(el) {
	case StyleAuthor:
		// Authors are pulled lazily from the title node's ancestry.
	case StyleTitle:
		if err := w.commit(); err != nil {
			return err
		}
		if err := w.startEntry(el, text); err != nil {
			return err
		}
	case StyleCite:
		if w.cur != nil {
			if w.cur.Cite != "" {
				w.cur.Cite += " "
			}
			w.cur.Cite += text
		}
	case StyleAnnotation:
		if w.cur != nil {
			w.cur.Annotation = text
		}
	}

	for _, child := range el.SelectElements("node") {
		if err := w.walk(child); err != nil {
			return err
		}
	}
	return nil
}

// startEntry opens a new in-progress entry seeded from a title node and
// its nearest author ancestor.
func (w *walker) startEntry(el *etree.Element, title string) error {
	authorText, err := w.authorAncestor(el)
	if err != nil {
		return err
	}

	e := biblio.NewEntry()
	e.Title = title
	e.OriAuthor = authorText
	e.Authors = w.vocab.ParseNames(authorText)
	e.MMFile = w.file
	e.TitleNode = el.SelectAttrValue("ID", "")

	// A title node's hyperlink is the work's URL.
	if link := el.SelectAttrValue("LINK", ""); strings.HasPrefix(link, "http") {
		e.Set("url", link)
	}

	w.cur = e
	return nil
}

// authorAncestor walks up the tree to the nearest author-styled node.
// Every title has an author ancestor in a well-formed mindmap; a miss
// indicates broken input and is fatal.
func (w *walker) authorAncestor(el *etree.Element) (string, error) {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p.Tag == "node" && styleOf(p) == StyleAuthor {
			return p.SelectAttrValue("TEXT", ""), nil
		}
	}
	return "", fmt.Errorf("mindmap %s: title node %q has no author ancestor",
		w.file, el.SelectAttrValue("TEXT", ""))
}

// commit finalizes the in-progress entry: defaults, citation parse,
// identifier, insert.
func (w *walker) commit() error {
	e := w.cur
	if e == nil {
		return nil
	}
	w.cur = nil

	if len(e.Authors) == 0 {
		e.Authors = []biblio.PersonName{{Last: "Unknown"}}
	}
	if e.Title == "" {
		e.Title = "Unknown"
	}
	// Date stays absent when unknown; identifiers default the year to 0000.

	if err := w.vocab.PullCitation(e, w.opts); err != nil {
		return fmt.Errorf("entry by %q in %s: %w", e.OriAuthor, w.file, err)
	}

	e.Identifier = w.vocab.GetIdentifier(e, w.entries)
	w.entries.Add(e)
	return nil
}

// recordChase collects relative links to other mindmap files.
func (w *walker) recordChase(link string) {
	if !strings.HasSuffix(link, ".mm") || strings.HasPrefix(link, "http:") ||
		strings.HasPrefix(link, "https:") {
		return
	}
	if !filepath.IsAbs(link) {
		link = filepath.Join(filepath.Dir(w.file), link)
	}
	w.chase = append(w.chase, link)
}
