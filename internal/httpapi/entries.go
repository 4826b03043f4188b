package httpapi

import (
	"net/http"

	"github.com/govalues/money"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/meta"
	"github.com/finrep/bookkeeper/internal/service/entry"
)

func (s *Server) postEntry(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	admin, err := s.store.GetAdministration(r.Context(), adminID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	details := make([]book.EntryDetail, 0, len(req.Details))
	for _, d := range req.Details {
		amount, err := money.NewAmountFromMinorUnits(admin.Currency, d.AmountMinor)
		if err != nil {
			badRequest(w, "invalid detail amount")
			return
		}
		details = append(details, book.EntryDetail{
			AccountCode: d.AccountCode,
			Side:        d.Side,
			Amount:      amount,
			InvoiceID:   d.InvoiceID,
			PaymentID:   d.PaymentID,
		})
	}

	e, err := s.entrySvc.Create(r.Context(), entry.Input{
		AdministrationID: adminID,
		Description:      req.Description,
		Date:             req.Date,
		Details:          details,
		CreatesInvoiceID: req.CreatesInvoiceID,
		Metadata:         meta.Metadata(req.Metadata),
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toEntryResponse(e))
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	entries, err := s.entrySvc.List(r.Context(), adminID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	entryID, err := uuidParam(r, "entryID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	e, err := s.entrySvc.Get(r.Context(), adminID, entryID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toEntryResponse(e))
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	entryID, err := uuidParam(r, "entryID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := s.entrySvc.Delete(r.Context(), adminID, entryID); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
