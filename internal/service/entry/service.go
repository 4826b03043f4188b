// Package entry implements journal-entry creation: the intrinsic
// debit/credit balance check at construction, the cross-check of postings
// against the invoices they settle, and append-only corrections
// (delete and re-add, never in-place mutation).
package entry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/errs"
	"github.com/finrep/bookkeeper/internal/meta"
	"github.com/finrep/bookkeeper/internal/report"
)

type Repo interface {
	GetAdministration(ctx context.Context, administrationID uuid.UUID) (book.Administration, error)
	ListAccounts(ctx context.Context, administrationID uuid.UUID) ([]book.Account, error)
	ListEntries(ctx context.Context, administrationID uuid.UUID) ([]book.JournalEntry, error)
	GetEntry(ctx context.Context, administrationID, entryID uuid.UUID) (book.JournalEntry, error)
	InvoicesByIDs(ctx context.Context, administrationID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]book.Invoice, error)
}

type Writer interface {
	CreateJournalEntry(ctx context.Context, e book.JournalEntry) (book.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, administrationID, entryID uuid.UUID) error
}

// Input is a candidate journal entry before construction.
type Input struct {
	AdministrationID uuid.UUID
	Description      string
	Date             time.Time
	Details          []book.EntryDetail
	CreatesInvoiceID *uuid.UUID
	Metadata         meta.Metadata
}

type Service interface {
	// Create validates, cross-checks and persists a new entry. The entry is
	// rejected before anything is written: an unbalanced entry fails with
	// DebitCreditMismatchError, one that does not reconcile with its
	// invoices with a debtor/creditor mismatch error.
	Create(ctx context.Context, in Input) (book.JournalEntry, error)
	List(ctx context.Context, administrationID uuid.UUID) ([]book.JournalEntry, error)
	Get(ctx context.Context, administrationID, entryID uuid.UUID) (book.JournalEntry, error)
	// Delete removes an entry from the log. Corrections are modeled as
	// delete plus re-add.
	Delete(ctx context.Context, administrationID, entryID uuid.UUID) error
}

type service struct {
	repo   Repo
	writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func (s *service) Create(ctx context.Context, in Input) (book.JournalEntry, error) {
	if in.AdministrationID == uuid.Nil {
		return book.JournalEntry{}, errs.ErrInvalid
	}
	admin, err := s.repo.GetAdministration(ctx, in.AdministrationID)
	if err != nil {
		return book.JournalEntry{}, err
	}

	e, err := book.NewJournalEntry(uuid.New(), in.AdministrationID, in.Description, in.Date.UTC(), in.Details, in.CreatesInvoiceID)
	if err != nil {
		return book.JournalEntry{}, err
	}
	if in.Metadata != nil {
		if err := in.Metadata.Validate(); err != nil {
			return book.JournalEntry{}, err
		}
		e.Metadata = in.Metadata.Clone()
	}
	if e.Currency() != admin.Currency {
		return book.JournalEntry{}, errs.ErrCurrencyMismatch
	}

	accounts, err := s.repo.ListAccounts(ctx, in.AdministrationID)
	if err != nil {
		return book.JournalEntry{}, err
	}
	byCode := make(map[string]book.Account, len(accounts))
	debtorCodes := make(map[string]struct{})
	creditorCodes := make(map[string]struct{})
	for _, a := range accounts {
		byCode[a.Code] = a
		switch a.Kind {
		case book.KindDebtor:
			debtorCodes[a.Code] = struct{}{}
		case book.KindCreditor:
			creditorCodes[a.Code] = struct{}{}
		}
	}
	for _, d := range e.Details {
		if _, ok := byCode[d.AccountCode]; !ok {
			return book.JournalEntry{}, errs.ErrReferenceNotFound
		}
	}

	invoices, err := s.referencedInvoices(ctx, in.AdministrationID, e.Details)
	if err != nil {
		return book.JournalEntry{}, err
	}
	if err := report.CrossCheck(e.Details, invoices, debtorCodes, creditorCodes, admin.Currency); err != nil {
		return book.JournalEntry{}, err
	}

	return s.writer.CreateJournalEntry(ctx, e)
}

func (s *service) referencedInvoices(ctx context.Context, administrationID uuid.UUID, details []book.EntryDetail) (map[uuid.UUID]book.Invoice, error) {
	ids := make([]uuid.UUID, 0, len(details))
	seen := make(map[uuid.UUID]struct{}, len(details))
	for _, d := range details {
		if d.InvoiceID == nil {
			continue
		}
		if _, ok := seen[*d.InvoiceID]; ok {
			continue
		}
		seen[*d.InvoiceID] = struct{}{}
		ids = append(ids, *d.InvoiceID)
	}
	if len(ids) == 0 {
		return map[uuid.UUID]book.Invoice{}, nil
	}
	invoices, err := s.repo.InvoicesByIDs(ctx, administrationID, ids)
	if err != nil {
		return nil, err
	}
	if len(invoices) != len(ids) {
		return nil, errs.ErrReferenceNotFound
	}
	return invoices, nil
}

func (s *service) List(ctx context.Context, administrationID uuid.UUID) ([]book.JournalEntry, error) {
	if administrationID == uuid.Nil {
		return nil, errs.ErrInvalid
	}
	return s.repo.ListEntries(ctx, administrationID)
}

func (s *service) Get(ctx context.Context, administrationID, entryID uuid.UUID) (book.JournalEntry, error) {
	if administrationID == uuid.Nil || entryID == uuid.Nil {
		return book.JournalEntry{}, errs.ErrInvalid
	}
	return s.repo.GetEntry(ctx, administrationID, entryID)
}

func (s *service) Delete(ctx context.Context, administrationID, entryID uuid.UUID) error {
	if administrationID == uuid.Nil || entryID == uuid.Nil {
		return errs.ErrInvalid
	}
	if _, err := s.repo.GetEntry(ctx, administrationID, entryID); err != nil {
		return err
	}
	return s.writer.DeleteJournalEntry(ctx, administrationID, entryID)
}
