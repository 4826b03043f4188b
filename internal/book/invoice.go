package book

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"
)

// Invoice is an amount owed by or to a party as of its issue date. A
// positive amount means the party owes the organization (a sale); a negative
// amount means the organization owes the party (a purchase).
type Invoice struct {
	ID               uuid.UUID
	AdministrationID uuid.UUID
	PartyID          uuid.UUID
	Amount           money.Amount
	Date             time.Time
	Description      string
}

// IsSale reports whether the invoice puts the party in the debtor position.
func (i Invoice) IsSale() bool { return i.Amount.IsPos() }

// IsPurchase reports whether the invoice puts the party in the creditor position.
func (i Invoice) IsPurchase() bool { return i.Amount.IsNeg() }

// Payment is applied against an invoice over time; its amount is subtracted
// from the invoice's amount to be paid. The sign convention follows the
// invoice's.
type Payment struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	Amount      money.Amount
	Date        time.Time
	Description string
}
