package httpapi

import (
	"context"
	"net/http"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/chart"
)

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	toJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readyz reports readiness. Stores with external dependencies expose Ready;
// the in-memory store is always ready.
func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if probe, ok := s.store.(interface{ Ready(context.Context) error }); ok {
		if err := probe.Ready(r.Context()); err != nil {
			toJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	toJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getDefaultChart serves the curated chart templates, optionally filtered to
// one account kind via ?kind=.
func (s *Server) getDefaultChart(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("kind"); raw != "" {
		kind := book.AccountKind(raw)
		if !kind.Valid() {
			badRequest(w, "invalid account kind")
			return
		}
		toJSON(w, http.StatusOK, chart.ByKind(kind))
		return
	}
	toJSON(w, http.StatusOK, chart.Default())
}
