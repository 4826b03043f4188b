package book

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/finrep/bookkeeper/internal/errs"
	"github.com/finrep/bookkeeper/internal/meta"
)

// EntryDetail is a single debit-or-credit posting within a journal entry.
// The amount is always non-negative; the side carries the sign. A detail may
// reference the invoice (and payment) it settles.
type EntryDetail struct {
	AccountCode string
	Side        Side
	Amount      money.Amount
	InvoiceID   *uuid.UUID
	PaymentID   *uuid.UUID
}

// JournalEntry is one dated, self-balancing bookkeeping transaction. Use
// NewJournalEntry to construct one; an entry whose details do not balance
// never exists. Entries are append-only: a correction is a delete plus a
// re-add, never an in-place change.
type JournalEntry struct {
	ID               uuid.UUID
	AdministrationID uuid.UUID
	Description      string
	Date             time.Time
	Details          []EntryDetail
	// CreatesInvoiceID is set when this entry books a new invoice into the
	// debtor or creditor position.
	CreatesInvoiceID *uuid.UUID
	Metadata         meta.Metadata
}

// NewJournalEntry validates and constructs a journal entry. It enforces the
// fundamental invariant: the sum of debit amounts equals the sum of credit
// amounts. Account existence is the caller's concern, not checked here.
func NewJournalEntry(id, administrationID uuid.UUID, description string, date time.Time, details []EntryDetail, createsInvoiceID *uuid.UUID) (JournalEntry, error) {
	if id == uuid.Nil || administrationID == uuid.Nil {
		return JournalEntry{}, errs.ErrInvalid
	}
	if len(details) == 0 {
		return JournalEntry{}, errors.New("entry must have at least one detail")
	}

	currency := details[0].Amount.Curr().Code()
	totalDebit := MustZero(currency)
	totalCredit := totalDebit
	for _, d := range details {
		if d.AccountCode == "" {
			return JournalEntry{}, errors.New("detail account code is required")
		}
		if !d.Side.Valid() {
			return JournalEntry{}, errors.New("detail side must be debit or credit")
		}
		if d.Amount.IsNeg() {
			return JournalEntry{}, errors.New("detail amount must not be negative")
		}
		var err error
		switch d.Side {
		case SideDebit:
			totalDebit, err = totalDebit.Add(d.Amount)
		case SideCredit:
			totalCredit, err = totalCredit.Add(d.Amount)
		}
		if err != nil {
			return JournalEntry{}, errs.ErrCurrencyMismatch
		}
	}

	if cmp, err := totalDebit.Cmp(totalCredit); err != nil {
		return JournalEntry{}, errs.ErrCurrencyMismatch
	} else if cmp != 0 {
		return JournalEntry{}, &errs.DebitCreditMismatchError{Debit: totalDebit, Credit: totalCredit}
	}

	copied := make([]EntryDetail, len(details))
	copy(copied, details)
	return JournalEntry{
		ID:               id,
		AdministrationID: administrationID,
		Description:      description,
		Date:             date,
		Details:          copied,
		CreatesInvoiceID: createsInvoiceID,
	}, nil
}

// Currency returns the currency code of the entry's amounts.
func (e JournalEntry) Currency() string {
	if len(e.Details) == 0 {
		return ""
	}
	return e.Details[0].Amount.Curr().Code()
}

// TotalDebit sums the debit side of the entry. For a constructed entry it
// equals TotalCredit.
func (e JournalEntry) TotalDebit() money.Amount { return e.sumSide(SideDebit) }

// TotalCredit sums the credit side of the entry.
func (e JournalEntry) TotalCredit() money.Amount { return e.sumSide(SideCredit) }

func (e JournalEntry) sumSide(side Side) money.Amount {
	if len(e.Details) == 0 {
		return money.Amount{}
	}
	total := MustZero(e.Currency())
	for _, d := range e.Details {
		if d.Side != side {
			continue
		}
		if v, err := total.Add(d.Amount); err == nil {
			total = v
		}
	}
	return total
}
