package httpapi

import (
	"net/http"

	"github.com/finrep/bookkeeper/internal/book"
)

func (s *Server) postParty(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req partyRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	p, err := s.partySvc.Create(r.Context(), book.Party{AdministrationID: adminID, Name: req.Name})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, partyResponse{ID: p.ID, Name: p.Name})
}

func (s *Server) listParties(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	parties, err := s.partySvc.List(r.Context(), adminID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]partyResponse, 0, len(parties))
	for _, p := range parties {
		out = append(out, partyResponse{ID: p.ID, Name: p.Name})
	}
	toJSON(w, http.StatusOK, out)
}
