package httpapi

import (
	"net/http"

	"github.com/govalues/money"

	"github.com/finrep/bookkeeper/internal/book"
)

func (s *Server) postInvoice(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req invoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	admin, err := s.store.GetAdministration(r.Context(), adminID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	amount, err := money.NewAmountFromMinorUnits(admin.Currency, req.AmountMinor)
	if err != nil {
		badRequest(w, "invalid amount")
		return
	}
	inv, err := s.invoiceSvc.Create(r.Context(), book.Invoice{
		AdministrationID: adminID,
		PartyID:          req.PartyID,
		Amount:           amount,
		Date:             req.Date,
		Description:      req.Description,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toInvoiceResponse(inv))
}

func (s *Server) listInvoices(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	invoices, err := s.invoiceSvc.List(r.Context(), adminID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getInvoice(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	invoiceID, err := uuidParam(r, "invoiceID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	inv, err := s.invoiceSvc.Get(r.Context(), adminID, invoiceID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toInvoiceResponse(inv))
}

func (s *Server) postPayment(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuidParam(r, "adminID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	invoiceID, err := uuidParam(r, "invoiceID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	admin, err := s.store.GetAdministration(r.Context(), adminID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	amount, err := money.NewAmountFromMinorUnits(admin.Currency, req.AmountMinor)
	if err != nil {
		badRequest(w, "invalid amount")
		return
	}
	p, err := s.invoiceSvc.AddPayment(r.Context(), adminID, invoiceID, amount, req.Date, req.Description)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	minor, _ := p.Amount.MinorUnits()
	toJSON(w, http.StatusCreated, paymentResponse{
		ID:          p.ID,
		InvoiceID:   p.InvoiceID,
		AmountMinor: minor,
		Date:        p.Date,
		Description: p.Description,
	})
}
