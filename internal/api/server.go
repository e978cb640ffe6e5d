// Package api exposes the potion calculator over HTTP/JSON.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jblackburn/alembic/internal/data"
)

// Server serves the calculator API on top of a loaded catalog.
type Server struct {
	catalog *data.Catalog
	mux     *http.ServeMux
}

// NewServer builds the API router for the given catalog.
func NewServer(catalog *data.Catalog) *Server {
	s := &Server{
		catalog: catalog,
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /api/potions", s.handleCalculatePotions)
	s.mux.HandleFunc("GET /api/ingredients", s.handleListIngredients)
	s.mux.HandleFunc("GET /api/effects", s.handleListEffects)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encoding response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
