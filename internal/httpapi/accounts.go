package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/meta"
)

func (s *Server) postAccount(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req accountRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	a, err := s.accountSvc.Create(r.Context(), book.Account{
		AdministrationID: adminID,
		Code:             req.Code,
		Name:             req.Name,
		Kind:             req.Kind,
		Metadata:         meta.Metadata(req.Metadata),
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toAccountResponse(a))
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	accounts, err := s.accountSvc.List(r.Context(), adminID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	a, err := s.accountSvc.Get(r.Context(), adminID, chi.URLParam(r, "code"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(a))
}

// getAccountLedger serves the period history of one account: start balance,
// in-period postings, total mutations and end balance.
func (s *Server) getAccountLedger(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	periodStart, reportEnd, err := periodFromQuery(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	a, err := s.accountSvc.Get(r.Context(), adminID, chi.URLParam(r, "code"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	rep, err := s.reportSvc.BuildReport(r.Context(), adminID, periodStart, reportEnd)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	lines, ok := rep.LedgerOf(a.Code)
	if !ok {
		notFound(w)
		return
	}
	toJSON(w, http.StatusOK, ledgerResponse{
		AccountCode: a.Code,
		PeriodStart: rep.PeriodStart(),
		ReportEnd:   rep.ReportEnd(),
		Lines:       toLedgerLines(lines),
	})
}
