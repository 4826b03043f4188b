package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/finrep/bookkeeper/internal/book"
)

func (s *Server) postAdministration(w http.ResponseWriter, r *http.Request) {
	var req administrationRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}
	if _, err := book.Zero(req.Currency); err != nil {
		badRequest(w, "invalid currency code")
		return
	}

	admin, err := s.store.CreateAdministration(r.Context(), book.Administration{
		ID:       uuid.New(),
		Name:     req.Name,
		Currency: req.Currency,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if req.SeedDefaultChart {
		if _, err := s.accountSvc.SeedDefaultChart(r.Context(), admin.ID); err != nil {
			writeDomainErr(w, err)
			return
		}
	}
	toJSON(w, http.StatusCreated, administrationResponse{ID: admin.ID, Name: admin.Name, Currency: admin.Currency})
}

func (s *Server) getAdministration(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	admin, err := s.store.GetAdministration(r.Context(), adminID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, administrationResponse{ID: admin.ID, Name: admin.Name, Currency: admin.Currency})
}
