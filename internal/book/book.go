// Package book holds the bookkeeping domain: administrations, the chart of
// accounts, balanced journal entries, and the invoice/payment catalog.
package book

import (
	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/finrep/bookkeeper/internal/meta"
)

// Side represents the accounting position of an entry detail.
type Side string

const (
	// SideDebit records a value on the debit side of an account.
	SideDebit Side = "debit"
	// SideCredit records a value on the credit side of an account.
	SideCredit Side = "credit"
)

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool { return s == SideDebit || s == SideCredit }

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideDebit {
		return SideCredit
	}
	return SideDebit
}

// AccountKind classifies an account in the chart of accounts. The kind fixes
// the account's natural balance side and whether it belongs to the balance
// sheet or to the operational result.
type AccountKind string

const (
	// KindAsset increases on the debit side and holds resources owned by the organization.
	KindAsset AccountKind = "asset"
	// KindLiability increases on the credit side and tracks obligations.
	KindLiability AccountKind = "liability"
	// KindEquity captures the owners' residual interest.
	KindEquity AccountKind = "equity"
	// KindExpense represents outflows for the period.
	KindExpense AccountKind = "expense"
	// KindRevenue represents inflows for the period.
	KindRevenue AccountKind = "revenue"
	// KindDebtor is the asset-side account holding outstanding sale invoices.
	KindDebtor AccountKind = "debtor"
	// KindCreditor is the liability-side account holding outstanding purchase invoices.
	KindCreditor AccountKind = "creditor"
)

// Valid reports whether k is a known account kind.
func (k AccountKind) Valid() bool {
	switch k {
	case KindAsset, KindLiability, KindEquity, KindExpense, KindRevenue, KindDebtor, KindCreditor:
		return true
	}
	return false
}

// NormalSide returns the side on which a positive balance of this kind lives.
func (k AccountKind) NormalSide() Side {
	switch k {
	case KindAsset, KindExpense, KindDebtor:
		return SideDebit
	default:
		return SideCredit
	}
}

// OnBalanceSheet reports whether accounts of this kind appear on the balance
// sheet; the remaining kinds are flow accounts summarized in the operational
// result.
func (k AccountKind) OnBalanceSheet() bool {
	switch k {
	case KindAsset, KindLiability, KindEquity, KindDebtor, KindCreditor:
		return true
	}
	return false
}

// AssetSide reports whether the kind belongs to the asset column of the
// balance sheet.
func (k AccountKind) AssetSide() bool { return k == KindAsset || k == KindDebtor }

// LiabilitySide reports whether the kind belongs to the liability column of
// the balance sheet (liabilities, equity, creditors).
func (k AccountKind) LiabilitySide() bool {
	return k == KindLiability || k == KindEquity || k == KindCreditor
}

// Administration is one self-contained bookkeeping: a chart of accounts, a
// journal, parties and an invoice catalog, all in a single currency.
type Administration struct {
	ID       uuid.UUID
	Name     string
	Currency string
}

// Party is a counterparty of the administration: a customer, supplier or
// both, depending on the sign of its outstanding invoices.
type Party struct {
	ID               uuid.UUID
	AdministrationID uuid.UUID
	Name             string
}

// Account is one line of the chart of accounts. The code is unique within an
// administration and is used for ordering and display. Accounts are
// configuration data: created once, never mutated while reports are built.
type Account struct {
	AdministrationID uuid.UUID
	Code             string
	Name             string
	Kind             AccountKind
	Metadata         meta.Metadata
}

// Zero returns the zero amount for a currency.
func Zero(currency string) (money.Amount, error) {
	return money.NewAmountFromMinorUnits(currency, 0)
}

// MustZero is Zero for currencies known to be valid (an administration's own
// currency). It panics on an unknown currency code.
func MustZero(currency string) money.Amount {
	z, err := Zero(currency)
	if err != nil {
		panic(err)
	}
	return z
}
