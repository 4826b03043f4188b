// Package report implements the ledger accumulation and report-building
// engine: pure folds over an administration's entry log and invoice catalog
// that produce an immutable, queryable report for a reporting period.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/finrep/bookkeeper/internal/book"
)

// LineKind tags each row of an account's period history.
type LineKind string

const (
	// LineStartBalance carries the account's balance accumulated before the
	// period start.
	LineStartBalance LineKind = "start_balance"
	// LinePosting is one in-period entry detail applied to the account.
	LinePosting LineKind = "posting"
	// LineTotalMutations carries the period's debit and credit sums.
	LineTotalMutations LineKind = "total_mutations"
	// LineEndBalance carries the closing balance as of the report end.
	LineEndBalance LineKind = "end_balance"
)

// LedgerLine is one row of an account's period history. For postings exactly
// one of Debit/Credit is set; the total-mutations line sets both.
type LedgerLine struct {
	Kind        LineKind
	Date        *time.Time
	EntryID     uuid.UUID
	Description string
	Debit       *money.Amount
	Credit      *money.Amount
	InvoiceID   *uuid.UUID
}

// Accumulation is the result of folding the entry log: per-account balances
// in the account's natural sign, and per-account period histories.
type Accumulation struct {
	AmountByAccount map[string]money.Amount
	LinesByAccount  map[string][]LedgerLine
}

// accountFold tracks one account's running state during accumulation.
type accountFold struct {
	kind         book.AccountKind
	balance      money.Amount // natural sign, over the whole horizon so far
	startBalance money.Amount // natural sign, entries before periodStart
	periodDebit  money.Amount
	periodCredit money.Amount
	lines        []LedgerLine
}

// Accumulate folds a chronological entry log over a reporting period.
// Entries must be supplied sorted by date; same-day entries keep their given
// relative order. Every entry dated on or before reportEnd contributes to
// the balances; only entries inside [periodStart, reportEnd] appear as
// posting lines. Every configured account appears in the result, including
// accounts with no postings at all.
func Accumulate(accounts []book.Account, entries []book.JournalEntry, currency string, periodStart, reportEnd time.Time) (Accumulation, error) {
	zero, err := book.Zero(currency)
	if err != nil {
		return Accumulation{}, err
	}

	folds := make(map[string]*accountFold, len(accounts))
	order := make([]string, 0, len(accounts))
	for _, a := range accounts {
		folds[a.Code] = &accountFold{
			kind:         a.Kind,
			balance:      zero,
			startBalance: zero,
			periodDebit:  zero,
			periodCredit: zero,
		}
		order = append(order, a.Code)
	}

	for _, e := range entries {
		if e.Date.After(reportEnd) {
			continue
		}
		inPeriod := !e.Date.Before(periodStart)
		for _, d := range e.Details {
			f, ok := folds[d.AccountCode]
			if !ok {
				// Unknown account: inputs are assumed referentially intact,
				// postings to codes outside the chart are skipped.
				continue
			}
			f.balance, err = applySigned(f.balance, d.Amount, d.Side, f.kind.NormalSide())
			if err != nil {
				return Accumulation{}, err
			}
			if !inPeriod {
				f.startBalance, err = applySigned(f.startBalance, d.Amount, d.Side, f.kind.NormalSide())
				if err != nil {
					return Accumulation{}, err
				}
				continue
			}
			switch d.Side {
			case book.SideDebit:
				f.periodDebit, err = f.periodDebit.Add(d.Amount)
			case book.SideCredit:
				f.periodCredit, err = f.periodCredit.Add(d.Amount)
			}
			if err != nil {
				return Accumulation{}, err
			}
			date := e.Date
			line := LedgerLine{
				Kind:        LinePosting,
				Date:        &date,
				EntryID:     e.ID,
				Description: e.Description,
				InvoiceID:   d.InvoiceID,
			}
			amt := d.Amount
			if d.Side == book.SideDebit {
				line.Debit = &amt
			} else {
				line.Credit = &amt
			}
			f.lines = append(f.lines, line)
		}
	}

	out := Accumulation{
		AmountByAccount: make(map[string]money.Amount, len(folds)),
		LinesByAccount:  make(map[string][]LedgerLine, len(folds)),
	}
	for _, code := range order {
		f := folds[code]
		lines := make([]LedgerLine, 0, len(f.lines)+3)
		lines = append(lines, balanceLine(LineStartBalance, "Start balance", f.startBalance, f.kind.NormalSide()))
		lines = append(lines, f.lines...)
		pd, pc := f.periodDebit, f.periodCredit
		lines = append(lines, LedgerLine{
			Kind:        LineTotalMutations,
			Description: "Total mutations",
			Debit:       &pd,
			Credit:      &pc,
		})
		lines = append(lines, balanceLine(LineEndBalance, "End balance", f.balance, f.kind.NormalSide()))
		out.AmountByAccount[code] = f.balance
		out.LinesByAccount[code] = lines
	}
	return out, nil
}

// applySigned updates a natural-sign balance with one posting: the amount is
// added when the posting side matches the account's natural side and
// subtracted otherwise.
func applySigned(balance, amount money.Amount, side book.Side, normal book.Side) (money.Amount, error) {
	if side == normal {
		return balance.Add(amount)
	}
	return balance.Sub(amount)
}

// balanceLine renders a natural-sign balance as a synthetic ledger line,
// placed on the debit or credit side depending on its sign. A zero balance
// sits on the account's natural side.
func balanceLine(kind LineKind, description string, balance money.Amount, normal book.Side) LedgerLine {
	side := normal
	if balance.IsNeg() {
		side = normal.Opposite()
	}
	abs := balance.Abs()
	line := LedgerLine{Kind: kind, Description: description}
	if side == book.SideDebit {
		line.Debit = &abs
	} else {
		line.Credit = &abs
	}
	return line
}
