package report

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/finrep/bookkeeper/internal/book"
)

// Input carries everything a build reads. The builder never mutates any of
// it: accounts, entries, invoices and payments are supplied by the storage
// collaborators and only read.
type Input struct {
	Currency          string
	Accounts          []book.Account
	Entries           []book.JournalEntry // chronological; same-day order preserved
	Invoices          []book.Invoice
	PaymentsByInvoice map[uuid.UUID][]book.Payment
	PartyNames        map[uuid.UUID]string
	PeriodStart       time.Time
	ReportEnd         time.Time
}

// Build runs the ledger accumulation and the invoice netting, derives the
// profit/loss plug and assembles the immutable report. The plug guarantees
// the balance-sheet identity: total assets (plus loss) equal total
// liabilities (plus profit), exactly.
func Build(in Input) (*Report, error) {
	acc, err := Accumulate(in.Accounts, in.Entries, in.Currency, in.PeriodStart, in.ReportEnd)
	if err != nil {
		return nil, err
	}
	net, err := Net(in.Invoices, in.PaymentsByInvoice, in.ReportEnd)
	if err != nil {
		return nil, err
	}

	r := &Report{
		periodStart: in.PeriodStart,
		reportEnd:   in.ReportEnd,
		currency:    in.Currency,
		amounts:     acc.AmountByAccount,
		lines:       acc.LinesByAccount,
		remaining:   net.RemainingByInvoice,
	}

	accounts := make([]book.Account, len(in.Accounts))
	copy(accounts, in.Accounts)
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })

	for _, a := range accounts {
		line := BalanceLine{Code: a.Code, Name: a.Name, Amount: acc.AmountByAccount[a.Code]}
		switch {
		case a.Kind.OnBalanceSheet() && a.Kind.AssetSide():
			r.assets = append(r.assets, line)
		case a.Kind.OnBalanceSheet():
			r.liabilities = append(r.liabilities, line)
		case a.Kind == book.KindExpense:
			r.expenses = append(r.expenses, line)
		case a.Kind == book.KindRevenue:
			r.revenues = append(r.revenues, line)
		}
	}

	// Result of operations closes the balance sheet: whatever the asset side
	// exceeds the liability side by is the period's profit, booked as a
	// synthetic credit-side account; a shortfall is a loss on the asset side.
	assetTotal := r.sum(r.assets)
	liabilityTotal := r.sum(r.liabilities)
	result, err := assetTotal.Sub(liabilityTotal)
	if err != nil {
		return nil, err
	}
	r.result = result
	switch {
	case result.IsPos():
		r.liabilities = append(r.liabilities, BalanceLine{
			Code: ProfitAccountCode, Name: "Profit", Amount: result, Synthetic: true,
		})
	case result.IsNeg():
		r.assets = append(r.assets, BalanceLine{
			Code: LossAccountCode, Name: "Loss", Amount: result.Neg(), Synthetic: true,
		})
	}

	r.debtors = namedParties(net.Debtors, in.PartyNames)
	r.creditors = namedParties(net.Creditors, in.PartyNames)
	return r, nil
}

func namedParties(balances []PartyBalance, names map[uuid.UUID]string) []PartyLine {
	out := make([]PartyLine, 0, len(balances))
	for _, b := range balances {
		out = append(out, PartyLine{PartyID: b.PartyID, Name: names[b.PartyID], Amount: b.Amount})
	}
	return out
}
