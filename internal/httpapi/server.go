// Package httpapi wires the HTTP surface of the bookkeeper service.
// It keeps handlers thin, delegating business rules to the service layer.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/service/account"
	"github.com/finrep/bookkeeper/internal/service/entry"
	"github.com/finrep/bookkeeper/internal/service/invoice"
	"github.com/finrep/bookkeeper/internal/service/party"
	"github.com/finrep/bookkeeper/internal/service/report"
)

// Storage is the full set of repository/writer operations the API needs.
// Both the memory and the postgres store satisfy it.
type Storage interface {
	account.Repo
	account.Writer
	party.Repo
	party.Writer
	entry.Repo
	entry.Writer
	invoice.Repo
	invoice.Writer
	report.Repo

	CreateAdministration(ctx context.Context, a book.Administration) (book.Administration, error)
}

// Server wires handlers and middleware using Chi. It composes read (repo)
// and write (writer) dependencies through services.
type Server struct {
	accountSvc account.Service
	partySvc   party.Service
	entrySvc   entry.Service
	invoiceSvc invoice.Service
	reportSvc  report.Service
	store      Storage
	log        *slog.Logger
	rt         *chi.Mux
}

// New constructs the HTTP server with routes and middleware. The logger is
// used by basic request/response logging and panic recovery.
func New(store Storage, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		accountSvc: account.New(store, store),
		partySvc:   party.New(store, store),
		entrySvc:   entry.New(store, store),
		invoiceSvc: invoice.New(store, store),
		reportSvc:  report.New(store),
		store:      store,
		log:        logger,
		rt:         r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }
