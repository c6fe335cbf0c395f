// Package storage caches built entries in SQLite so repeated queries do
// not have to re-walk the mindmaps.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/reagle/thunderdell/internal/biblio"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectEntryFields contains the standard field list for SELECT queries.
const selectEntryFields = `id, entry_type, title, ori_author, annotation,
	mm_file, title_node, pub_year,
	date_json, urldate_json, origdate_json,
	authors_json, editors_json, translators_json, fields_json`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- Main entries table
		CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			entry_type TEXT,
			title TEXT NOT NULL,
			ori_author TEXT,
			annotation TEXT,
			mm_file TEXT,
			title_node TEXT,
			pub_year INTEGER NOT NULL,
			date_json TEXT,
			urldate_json TEXT,
			origdate_json TEXT,
			authors_json TEXT NOT NULL,
			editors_json TEXT,
			translators_json TEXT,
			fields_json TEXT
		);

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
			id,
			title,
			annotation,
			authors_text,
			fields_text,
			pub_year
		);
	`

	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the database and repopulates it from a built collection.
func (d *DB) Rebuild(entries *biblio.Entries) (int, error) {
	if _, err := d.db.Exec("DELETE FROM entries"); err != nil {
		return 0, fmt.Errorf("clearing entries table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM entries_fts"); err != nil {
		return 0, fmt.Errorf("clearing entries_fts table: %w", err)
	}

	entryStmt, err := d.db.Prepare(`
		INSERT INTO entries (
			id, entry_type, title, ori_author, annotation,
			mm_file, title_node, pub_year,
			date_json, urldate_json, origdate_json,
			authors_json, editors_json, translators_json, fields_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing entries insert: %w", err)
	}
	defer entryStmt.Close()

	ftsStmt, err := d.db.Prepare(`
		INSERT INTO entries_fts (id, title, annotation, authors_text, fields_text, pub_year)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	all := entries.All()
	for _, e := range all {
		authorsJSON, err := json.Marshal(e.Authors)
		if err != nil {
			return 0, fmt.Errorf("marshaling authors for %s: %w", e.Identifier, err)
		}
		editorsJSON, err := marshalNames(e.Editors)
		if err != nil {
			return 0, fmt.Errorf("marshaling editors for %s: %w", e.Identifier, err)
		}
		translatorsJSON, err := marshalNames(e.Translators)
		if err != nil {
			return 0, fmt.Errorf("marshaling translators for %s: %w", e.Identifier, err)
		}
		var fieldsJSON []byte
		if len(e.Fields) > 0 {
			fieldsJSON, err = json.Marshal(e.Fields)
			if err != nil {
				return 0, fmt.Errorf("marshaling fields for %s: %w", e.Identifier, err)
			}
		}
		dateJSON, err := marshalDate(e.Date)
		if err != nil {
			return 0, fmt.Errorf("marshaling date for %s: %w", e.Identifier, err)
		}
		urldateJSON, err := marshalDate(e.URLDate)
		if err != nil {
			return 0, fmt.Errorf("marshaling urldate for %s: %w", e.Identifier, err)
		}
		origdateJSON, err := marshalDate(e.OrigDate)
		if err != nil {
			return 0, fmt.Errorf("marshaling origdate for %s: %w", e.Identifier, err)
		}

		year, _ := strconv.Atoi(e.Year())

		_, err = entryStmt.Exec(
			e.Identifier, nullableStringValue(e.EntryType), e.Title,
			nullableStringValue(e.OriAuthor), nullableStringValue(e.Annotation),
			nullableStringValue(e.MMFile), nullableStringValue(e.TitleNode), year,
			nullableString(dateJSON), nullableString(urldateJSON), nullableString(origdateJSON),
			string(authorsJSON), nullableString(editorsJSON), nullableString(translatorsJSON),
			nullableString(fieldsJSON),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting entry %s: %w", e.Identifier, err)
		}

		_, err = ftsStmt.Exec(
			e.Identifier, e.Title, e.Annotation,
			formatAuthorsText(e.Authors), formatFieldsText(e), e.Year(),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", e.Identifier, err)
		}
	}

	return len(all), nil
}

// formatAuthorsText creates a searchable text representation of authors.
func formatAuthorsText(names []biblio.PersonName) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, n.FullName())
	}
	return strings.Join(parts, ", ")
}

// formatFieldsText flattens the field-map values for full-text search.
func formatFieldsText(e *biblio.Entry) string {
	var parts []string
	for _, name := range e.FieldNames() {
		parts = append(parts, e.Get(name))
	}
	return strings.Join(parts, " ")
}

// GetByID retrieves an entry by its identifier.
func (d *DB) GetByID(id string) (*biblio.Entry, error) {
	row := d.db.QueryRow(`SELECT `+selectEntryFields+` FROM entries WHERE id = ?`, id)
	return scanEntry(row)
}

// Search performs a full-text search and returns matching entries.
func (d *DB) Search(query string, limit int) ([]*biblio.Entry, error) {
	ftsQuery := prepareFTSQuery(query)

	rows, err := d.db.Query(`
		SELECT `+selectEntryFields+`
		FROM entries
		WHERE id IN (SELECT id FROM entries_fts WHERE entries_fts MATCH ?)
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// SearchField performs a search on a specific field.
func (d *DB) SearchField(field, value string, limit int) ([]*biblio.Entry, error) {
	var ftsQuery string

	switch field {
	case "author":
		ftsQuery = "authors_text:" + prepareAuthorQuery(value)
	case "title":
		ftsQuery = "title:" + prepareFTSQuery(value)
	default:
		return nil, fmt.Errorf("unknown search field: %s", field)
	}

	rows, err := d.db.Query(`
		SELECT `+selectEntryFields+`
		FROM entries
		WHERE id IN (SELECT id FROM entries_fts WHERE entries_fts MATCH ?)
		LIMIT ?
	`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", field, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// SearchFilters contains optional filters for SearchWithFilters.
type SearchFilters struct {
	Keyword  string   // General keyword search across all fields
	Authors  []string // Author names to search for (AND logic, fuzzy prefix matching)
	YearFrom int      // Minimum publication year (0 = no minimum)
	YearTo   int      // Maximum publication year (0 = no maximum)
	Title    string   // Search in title only (FTS)
}

// SearchWithFilters performs a search with multiple optional filters.
// Returns entries matching ALL specified criteria (AND logic).
func (d *DB) SearchWithFilters(filters SearchFilters, limit int) ([]*biblio.Entry, error) {
	var ftsTerms []string
	var args []interface{}

	if filters.Keyword != "" {
		ftsTerms = append(ftsTerms, prepareFTSQuery(filters.Keyword))
	}
	if filters.Title != "" {
		ftsTerms = append(ftsTerms, "title:"+prepareFTSQuery(filters.Title))
	}
	for _, author := range filters.Authors {
		if author != "" {
			ftsTerms = append(ftsTerms, "authors_text:"+prepareAuthorQuery(author))
		}
	}

	var query string
	if len(ftsTerms) > 0 {
		ftsQuery := strings.Join(ftsTerms, " AND ")
		query = `SELECT ` + selectEntryFields + `
			FROM entries
			WHERE id IN (SELECT id FROM entries_fts WHERE entries_fts MATCH ?)`
		args = append(args, ftsQuery)
	} else {
		query = `SELECT ` + selectEntryFields + ` FROM entries WHERE 1=1`
	}

	if filters.YearFrom > 0 {
		query += " AND pub_year >= ?"
		args = append(args, filters.YearFrom)
	}
	if filters.YearTo > 0 {
		query += " AND pub_year <= ?"
		args = append(args, filters.YearTo)
	}

	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching with filters: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// prepareAuthorQuery prepares an author name for FTS5 search with prefix matching.
// It adds a wildcard (*) to enable fuzzy matching (e.g., "Tim" matches "Timothy").
func prepareAuthorQuery(author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return author
	}

	parts := strings.Fields(author)
	var terms []string
	for _, part := range parts {
		escaped := strings.ReplaceAll(part, "\"", "\"\"")
		terms = append(terms, "\""+escaped+"\"*")
	}

	// Use OR for multi-word author queries (match any part)
	return "(" + strings.Join(terms, " OR ") + ")"
}

// ListAll returns all entries ordered by identifier, optionally limited.
func (d *DB) ListAll(limit int) ([]*biblio.Entry, error) {
	query := `SELECT ` + selectEntryFields + ` FROM entries ORDER BY id`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Count returns the total number of cached entries.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(s scanner) (*biblio.Entry, error) {
	e := biblio.NewEntry()
	var entryType, oriAuthor, annotation, mmFile, titleNode sql.NullString
	var dateJSON, urldateJSON, origdateJSON sql.NullString
	var authorsJSON, editorsJSON, translatorsJSON, fieldsJSON sql.NullString
	var pubYear int

	err := s.Scan(
		&e.Identifier, &entryType, &e.Title, &oriAuthor, &annotation,
		&mmFile, &titleNode, &pubYear,
		&dateJSON, &urldateJSON, &origdateJSON,
		&authorsJSON, &editorsJSON, &translatorsJSON, &fieldsJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	e.EntryType = entryType.String
	e.OriAuthor = oriAuthor.String
	e.Annotation = annotation.String
	e.MMFile = mmFile.String
	e.TitleNode = titleNode.String

	if e.Date, err = unmarshalDate(dateJSON); err != nil {
		return nil, fmt.Errorf("parsing date JSON for %s: %w", e.Identifier, err)
	}
	if e.URLDate, err = unmarshalDate(urldateJSON); err != nil {
		return nil, fmt.Errorf("parsing urldate JSON for %s: %w", e.Identifier, err)
	}
	if e.OrigDate, err = unmarshalDate(origdateJSON); err != nil {
		return nil, fmt.Errorf("parsing origdate JSON for %s: %w", e.Identifier, err)
	}

	if authorsJSON.Valid {
		if err := json.Unmarshal([]byte(authorsJSON.String), &e.Authors); err != nil {
			return nil, fmt.Errorf("parsing authors JSON for %s: %w", e.Identifier, err)
		}
	}
	if editorsJSON.Valid && editorsJSON.String != "" {
		if err := json.Unmarshal([]byte(editorsJSON.String), &e.Editors); err != nil {
			return nil, fmt.Errorf("parsing editors JSON for %s: %w", e.Identifier, err)
		}
	}
	if translatorsJSON.Valid && translatorsJSON.String != "" {
		if err := json.Unmarshal([]byte(translatorsJSON.String), &e.Translators); err != nil {
			return nil, fmt.Errorf("parsing translators JSON for %s: %w", e.Identifier, err)
		}
	}
	if fieldsJSON.Valid && fieldsJSON.String != "" {
		if err := json.Unmarshal([]byte(fieldsJSON.String), &e.Fields); err != nil {
			return nil, fmt.Errorf("parsing fields JSON for %s: %w", e.Identifier, err)
		}
	}

	return e, nil
}

func scanEntries(rows *sql.Rows) ([]*biblio.Entry, error) {
	var entries []*biblio.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		if e != nil {
			entries = append(entries, e)
		}
	}
	return entries, rows.Err()
}

func marshalNames(names []biblio.PersonName) ([]byte, error) {
	if len(names) == 0 {
		return nil, nil
	}
	return json.Marshal(names)
}

func marshalDate(d *biblio.PubDate) ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

func unmarshalDate(s sql.NullString) (*biblio.PubDate, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var d biblio.PubDate
	if err := json.Unmarshal([]byte(s.String), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func nullableString(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	// FTS5 uses double quotes for phrase matching
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
