// Package server exposes a built entries collection over local HTTP for
// browser-based searching.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/reagle/thunderdell/internal/biblio"
	"github.com/reagle/thunderdell/internal/emit"
	"github.com/reagle/thunderdell/internal/query"
)

// Server serves queries over a built collection. The collection is
// read-only once handed to the server.
type Server struct {
	entries *biblio.Entries
	vocab   *biblio.Vocabulary
	limiter *rate.Limiter
}

// New returns a server over the given collection. Requests beyond 10 per
// second (burst 20) are rejected with 429.
func New(entries *biblio.Entries, v *biblio.Vocabulary) *Server {
	return &Server{
		entries: entries,
		vocab:   v,
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/query", s.handleQuery)
	mux.HandleFunc("/entries", s.handleEntries)
	mux.HandleFunc("/entry/", s.handleEntry)
	return s.limit(mux)
}

// limit rejects requests once the rate limiter is exhausted.
func (s *Server) limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleQuery runs a regex query and returns highlighted results as JSON.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "missing q parameter", http.StatusBadRequest)
		return
	}

	results, err := query.Search(s.entries, q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if results == nil {
		results = []query.Result{}
	}

	writeJSON(w, results)
}

// handleEntries returns the whole collection as CSL JSON.
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	data, err := emit.ToCSLJSON(s.entries, s.vocab)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// handleEntry returns one entry as CSL JSON, addressed by identifier.
func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Path[len("/entry/"):]
	e, ok := s.entries.Get(id)
	if !ok {
		http.Error(w, fmt.Sprintf("no entry %q", id), http.StatusNotFound)
		return
	}

	single := biblio.NewEntries()
	single.Add(e)
	data, err := emit.ToCSLJSON(single, s.vocab)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}
