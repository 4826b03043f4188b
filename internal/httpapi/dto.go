package httpapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/report"
)

type administrationRequest struct {
	Name             string `json:"name"`
	Currency         string `json:"currency"`
	SeedDefaultChart bool   `json:"seed_default_chart"`
}

type administrationResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Currency string    `json:"currency"`
}

type accountRequest struct {
	Code     string            `json:"code"`
	Name     string            `json:"name"`
	Kind     book.AccountKind  `json:"kind"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type accountResponse struct {
	Code     string            `json:"code"`
	Name     string            `json:"name"`
	Kind     book.AccountKind  `json:"kind"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type partyRequest struct {
	Name string `json:"name"`
}

type partyResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type entryRequest struct {
	Date             time.Time         `json:"date"`
	Description      string            `json:"description"`
	Details          []detailRequest   `json:"details"`
	CreatesInvoiceID *uuid.UUID        `json:"creates_invoice_id,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

type detailRequest struct {
	AccountCode string     `json:"account_code"`
	Side        book.Side  `json:"side"`
	AmountMinor int64      `json:"amount_minor"`
	InvoiceID   *uuid.UUID `json:"invoice_id,omitempty"`
	PaymentID   *uuid.UUID `json:"payment_id,omitempty"`
}

type entryResponse struct {
	ID               uuid.UUID         `json:"id"`
	Date             time.Time         `json:"date"`
	Description      string            `json:"description"`
	Details          []detailResponse  `json:"details"`
	CreatesInvoiceID *uuid.UUID        `json:"creates_invoice_id,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

type detailResponse struct {
	AccountCode string     `json:"account_code"`
	Side        book.Side  `json:"side"`
	AmountMinor int64      `json:"amount_minor"`
	InvoiceID   *uuid.UUID `json:"invoice_id,omitempty"`
	PaymentID   *uuid.UUID `json:"payment_id,omitempty"`
}

type invoiceRequest struct {
	PartyID     uuid.UUID `json:"party_id"`
	AmountMinor int64     `json:"amount_minor"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

type invoiceResponse struct {
	ID          uuid.UUID `json:"id"`
	PartyID     uuid.UUID `json:"party_id"`
	AmountMinor int64     `json:"amount_minor"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

type paymentRequest struct {
	AmountMinor int64     `json:"amount_minor"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

type paymentResponse struct {
	ID          uuid.UUID `json:"id"`
	InvoiceID   uuid.UUID `json:"invoice_id"`
	AmountMinor int64     `json:"amount_minor"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

type balanceLineResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	AmountMinor int64  `json:"amount_minor"`
	Synthetic   bool   `json:"synthetic,omitempty"`
}

type partyLineResponse struct {
	PartyID     uuid.UUID `json:"party_id"`
	Name        string    `json:"name"`
	AmountMinor int64     `json:"amount_minor"`
}

type reportResponse struct {
	PeriodStart           time.Time             `json:"period_start"`
	ReportEnd             time.Time             `json:"report_end"`
	Currency              string                `json:"currency"`
	Assets                []balanceLineResponse `json:"assets"`
	Liabilities           []balanceLineResponse `json:"liabilities"`
	Expenses              []balanceLineResponse `json:"expenses"`
	Revenues              []balanceLineResponse `json:"revenues"`
	ResultMinor           int64                 `json:"result_of_operations_minor"`
	TotalAssetsMinor      int64                 `json:"total_assets_minor"`
	TotalLiabilitiesMinor int64                 `json:"total_liabilities_minor"`
	Debtors               []partyLineResponse   `json:"debtors"`
	Creditors             []partyLineResponse   `json:"creditors"`
	TotalDebtorsMinor     int64                 `json:"total_debtors_minor"`
	TotalCreditorsMinor   int64                 `json:"total_creditors_minor"`
}

type ledgerLineResponse struct {
	Kind        report.LineKind `json:"kind"`
	Date        *time.Time      `json:"date,omitempty"`
	EntryID     *uuid.UUID      `json:"entry_id,omitempty"`
	Description string          `json:"description"`
	DebitMinor  *int64          `json:"debit_minor,omitempty"`
	CreditMinor *int64          `json:"credit_minor,omitempty"`
	InvoiceID   *uuid.UUID      `json:"invoice_id,omitempty"`
}

type ledgerResponse struct {
	AccountCode string               `json:"account_code"`
	PeriodStart time.Time            `json:"period_start"`
	ReportEnd   time.Time            `json:"report_end"`
	Lines       []ledgerLineResponse `json:"lines"`
}

func toAccountResponse(a book.Account) accountResponse {
	return accountResponse{Code: a.Code, Name: a.Name, Kind: a.Kind, Metadata: a.Metadata}
}

func toEntryResponse(e book.JournalEntry) entryResponse {
	details := make([]detailResponse, 0, len(e.Details))
	for _, d := range e.Details {
		minor, _ := d.Amount.MinorUnits()
		details = append(details, detailResponse{
			AccountCode: d.AccountCode,
			Side:        d.Side,
			AmountMinor: minor,
			InvoiceID:   d.InvoiceID,
			PaymentID:   d.PaymentID,
		})
	}
	return entryResponse{
		ID:               e.ID,
		Date:             e.Date,
		Description:      e.Description,
		Details:          details,
		CreatesInvoiceID: e.CreatesInvoiceID,
		Metadata:         e.Metadata,
	}
}

func toInvoiceResponse(inv book.Invoice) invoiceResponse {
	minor, _ := inv.Amount.MinorUnits()
	return invoiceResponse{
		ID:          inv.ID,
		PartyID:     inv.PartyID,
		AmountMinor: minor,
		Date:        inv.Date,
		Description: inv.Description,
	}
}

func toBalanceLines(in []report.BalanceLine) []balanceLineResponse {
	out := make([]balanceLineResponse, 0, len(in))
	for _, l := range in {
		minor, _ := l.Amount.MinorUnits()
		out = append(out, balanceLineResponse{Code: l.Code, Name: l.Name, AmountMinor: minor, Synthetic: l.Synthetic})
	}
	return out
}

func toPartyLines(in []report.PartyLine) []partyLineResponse {
	out := make([]partyLineResponse, 0, len(in))
	for _, l := range in {
		minor, _ := l.Amount.MinorUnits()
		out = append(out, partyLineResponse{PartyID: l.PartyID, Name: l.Name, AmountMinor: minor})
	}
	return out
}

func toLedgerLines(in []report.LedgerLine) []ledgerLineResponse {
	out := make([]ledgerLineResponse, 0, len(in))
	for _, l := range in {
		resp := ledgerLineResponse{Kind: l.Kind, Date: l.Date, Description: l.Description, InvoiceID: l.InvoiceID}
		if l.EntryID != uuid.Nil {
			id := l.EntryID
			resp.EntryID = &id
		}
		if l.Debit != nil {
			minor, _ := l.Debit.MinorUnits()
			resp.DebitMinor = &minor
		}
		if l.Credit != nil {
			minor, _ := l.Credit.MinorUnits()
			resp.CreditMinor = &minor
		}
		out = append(out, resp)
	}
	return out
}
