package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/finrep/bookkeeper/internal/book"
)

// PartyBalance is one party's aggregated outstanding position. Debtor and
// creditor balances are both expressed as positive amounts.
type PartyBalance struct {
	PartyID uuid.UUID
	Amount  money.Amount
}

// Netting is the result of folding invoices and their payments as of the
// report end: the remaining amount per invoice and the open debtor/creditor
// balances per party.
type Netting struct {
	RemainingByInvoice map[uuid.UUID]money.Amount
	Debtors            []PartyBalance
	Creditors          []PartyBalance
}

// Net computes the remaining amount of every invoice at reportEnd and
// attributes non-zero remainders to the invoice's party. Invoices issued
// after reportEnd are ignored: they are not part of the position as of the
// report date. Fully settled invoices keep a queryable zero remainder but do
// not appear as open balances. A party holding both an open sale and an open
// purchase invoice appears in both lists. Party lists are sorted by party id.
func Net(invoices []book.Invoice, paymentsByInvoice map[uuid.UUID][]book.Payment, reportEnd time.Time) (Netting, error) {
	out := Netting{RemainingByInvoice: make(map[uuid.UUID]money.Amount, len(invoices))}
	debtors := make(map[uuid.UUID]money.Amount)
	creditors := make(map[uuid.UUID]money.Amount)

	for _, inv := range invoices {
		if inv.Date.After(reportEnd) {
			continue
		}
		remaining := inv.Amount
		for _, p := range paymentsByInvoice[inv.ID] {
			if p.Date.After(reportEnd) {
				continue
			}
			var err error
			remaining, err = remaining.Sub(p.Amount)
			if err != nil {
				return Netting{}, err
			}
		}
		out.RemainingByInvoice[inv.ID] = remaining
		if remaining.IsZero() {
			continue
		}
		if remaining.IsPos() {
			if err := addToParty(debtors, inv.PartyID, remaining); err != nil {
				return Netting{}, err
			}
		} else {
			if err := addToParty(creditors, inv.PartyID, remaining.Neg()); err != nil {
				return Netting{}, err
			}
		}
	}

	out.Debtors = sortedBalances(debtors)
	out.Creditors = sortedBalances(creditors)
	return out, nil
}

func addToParty(m map[uuid.UUID]money.Amount, partyID uuid.UUID, amount money.Amount) error {
	if cur, ok := m[partyID]; ok {
		v, err := cur.Add(amount)
		if err != nil {
			return err
		}
		m[partyID] = v
		return nil
	}
	m[partyID] = amount
	return nil
}

func sortedBalances(m map[uuid.UUID]money.Amount) []PartyBalance {
	out := make([]PartyBalance, 0, len(m))
	for id, amt := range m {
		out = append(out, PartyBalance{PartyID: id, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartyID.String() < out[j].PartyID.String() })
	return out
}
