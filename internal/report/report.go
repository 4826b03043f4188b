package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"
)

// Sentinel codes of the synthesized result pseudo-accounts. They exist only
// inside a built report and never in the chart of accounts.
const (
	ProfitAccountCode = "RESULT.P"
	LossAccountCode   = "RESULT.L"
)

// BalanceLine is one row of the balance sheet or the operational result:
// an account code, its display name and the accumulated amount in the
// account's natural sign. Synthetic marks the profit/loss plug.
type BalanceLine struct {
	Code      string
	Name      string
	Amount    money.Amount
	Synthetic bool
}

// PartyLine is one debtor or creditor row with the party's display name.
type PartyLine struct {
	PartyID uuid.UUID
	Name    string
	Amount  money.Amount
}

// Report is the read-only result of a build: balance sheet lines,
// operational result lines, per-account ledger histories and the open
// debtor/creditor positions, for a fixed reporting period. It is never
// mutated after construction and is safe for concurrent readers; a new
// report is built when the entry log changes or another period is requested.
type Report struct {
	periodStart time.Time
	reportEnd   time.Time
	currency    string

	assets      []BalanceLine // includes the loss plug when present
	liabilities []BalanceLine // liabilities and equity, includes the profit plug
	expenses    []BalanceLine
	revenues    []BalanceLine
	result      money.Amount

	amounts   map[string]money.Amount
	lines     map[string][]LedgerLine
	remaining map[uuid.UUID]money.Amount
	debtors   []PartyLine
	creditors []PartyLine
}

func (r *Report) PeriodStart() time.Time { return r.periodStart }
func (r *Report) ReportEnd() time.Time   { return r.reportEnd }
func (r *Report) Currency() string       { return r.currency }

// Assets returns the asset side of the balance sheet, ordered by account
// code, with the loss plug appended when the period ran at a loss.
func (r *Report) Assets() []BalanceLine { return copyLines(r.assets) }

// Liabilities returns the liability side of the balance sheet (liabilities
// and equity), with the profit plug appended when the period ran a profit.
func (r *Report) Liabilities() []BalanceLine { return copyLines(r.liabilities) }

// Expenses returns the expense rows of the operational result.
func (r *Report) Expenses() []BalanceLine { return copyLines(r.expenses) }

// Revenues returns the revenue rows of the operational result.
func (r *Report) Revenues() []BalanceLine { return copyLines(r.revenues) }

// ResultOfOperations is the period's profit (positive) or loss (negative):
// the plug amount that closes the balance sheet.
func (r *Report) ResultOfOperations() money.Amount { return r.result }

// AmountOf returns the accumulated natural-sign amount of an account.
func (r *Report) AmountOf(code string) (money.Amount, bool) {
	a, ok := r.amounts[code]
	return a, ok
}

// LedgerOf returns the period history of an account: the start-balance line,
// the in-period postings, the total-mutations line and the end-balance line.
func (r *Report) LedgerOf(code string) ([]LedgerLine, bool) {
	ls, ok := r.lines[code]
	if !ok {
		return nil, false
	}
	out := make([]LedgerLine, len(ls))
	copy(out, ls)
	return out, true
}

// RemainingOf returns an invoice's remaining amount as of the report end.
// Settled invoices report zero.
func (r *Report) RemainingOf(invoiceID uuid.UUID) (money.Amount, bool) {
	a, ok := r.remaining[invoiceID]
	return a, ok
}

// Debtors returns the open debtor balances, sorted by party id.
func (r *Report) Debtors() []PartyLine { return copyParties(r.debtors) }

// Creditors returns the open creditor balances, sorted by party id.
func (r *Report) Creditors() []PartyLine { return copyParties(r.creditors) }

// TotalAssets sums the asset side including the loss plug.
func (r *Report) TotalAssets() money.Amount { return r.sum(r.assets) }

// TotalLiabilities sums the liability side including the profit plug.
func (r *Report) TotalLiabilities() money.Amount { return r.sum(r.liabilities) }

// TotalDebtors sums the open debtor balances.
func (r *Report) TotalDebtors() money.Amount { return sumParties(r.currency, r.debtors) }

// TotalCreditors sums the open creditor balances.
func (r *Report) TotalCreditors() money.Amount { return sumParties(r.currency, r.creditors) }

func (r *Report) sum(lines []BalanceLine) money.Amount {
	total, err := money.NewAmountFromMinorUnits(r.currency, 0)
	if err != nil {
		return money.Amount{}
	}
	for _, l := range lines {
		if v, err := total.Add(l.Amount); err == nil {
			total = v
		}
	}
	return total
}

func sumParties(currency string, lines []PartyLine) money.Amount {
	total, err := money.NewAmountFromMinorUnits(currency, 0)
	if err != nil {
		return money.Amount{}
	}
	for _, l := range lines {
		if v, err := total.Add(l.Amount); err == nil {
			total = v
		}
	}
	return total
}

func copyLines(in []BalanceLine) []BalanceLine {
	out := make([]BalanceLine, len(in))
	copy(out, in)
	return out
}

func copyParties(in []PartyLine) []PartyLine {
	out := make([]PartyLine, len(in))
	copy(out, in)
	return out
}
