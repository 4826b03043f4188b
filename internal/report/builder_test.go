package report

import (
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finrep/bookkeeper/internal/book"
)

func TestBuildProfitPlugClosesBalanceSheet(t *testing.T) {
	accounts := []book.Account{
		acct("A100", book.KindAsset),
		acct("R100", book.KindRevenue),
	}
	entries := []book.JournalEntry{
		mustEntry(t, day(10), "cash sale",
			book.EntryDetail{AccountCode: "A100", Side: book.SideDebit, Amount: amt(t, 10000)},
			book.EntryDetail{AccountCode: "R100", Side: book.SideCredit, Amount: amt(t, 10000)},
		),
	}
	rep, err := Build(Input{
		Currency:    "EUR",
		Accounts:    accounts,
		Entries:     entries,
		PeriodStart: day(1),
		ReportEnd:   day(30),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := minor(t, rep.ResultOfOperations()); got != 10000 {
		t.Fatalf("result = %d, want 10000 profit", got)
	}
	liabilities := rep.Liabilities()
	if len(liabilities) == 0 {
		t.Fatal("no liability lines")
	}
	plug := liabilities[len(liabilities)-1]
	if !plug.Synthetic || plug.Code != ProfitAccountCode || plug.Name != "Profit" {
		t.Fatalf("last liability line = %+v, want synthetic profit plug", plug)
	}
	if got := minor(t, plug.Amount); got != 10000 {
		t.Fatalf("plug amount = %d, want 10000", got)
	}
	for _, l := range rep.Assets() {
		if l.Synthetic {
			t.Fatalf("unexpected synthetic asset line %+v in a profit period", l)
		}
	}

	if a, l := minor(t, rep.TotalAssets()), minor(t, rep.TotalLiabilities()); a != l {
		t.Fatalf("balance sheet does not close: assets %d vs liabilities %d", a, l)
	}
}

func TestBuildLossPlugOnAssetSide(t *testing.T) {
	accounts := []book.Account{
		acct("A100", book.KindAsset),
		acct("X110", book.KindExpense),
	}
	entries := []book.JournalEntry{
		mustEntry(t, day(10), "office rent",
			book.EntryDetail{AccountCode: "X110", Side: book.SideDebit, Amount: amt(t, 2500)},
			book.EntryDetail{AccountCode: "A100", Side: book.SideCredit, Amount: amt(t, 2500)},
		),
	}
	rep, err := Build(Input{
		Currency:    "EUR",
		Accounts:    accounts,
		Entries:     entries,
		PeriodStart: day(1),
		ReportEnd:   day(30),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := minor(t, rep.ResultOfOperations()); got != -2500 {
		t.Fatalf("result = %d, want -2500 loss", got)
	}
	assets := rep.Assets()
	plug := assets[len(assets)-1]
	if !plug.Synthetic || plug.Code != LossAccountCode || plug.Name != "Loss" {
		t.Fatalf("last asset line = %+v, want synthetic loss plug", plug)
	}
	if got := minor(t, plug.Amount); got != 2500 {
		t.Fatalf("plug amount = %d, want positive 2500", got)
	}
	if a, l := minor(t, rep.TotalAssets()), minor(t, rep.TotalLiabilities()); a != l {
		t.Fatalf("balance sheet does not close: assets %d vs liabilities %d", a, l)
	}
}

func TestBuildZeroResultHasNoPlug(t *testing.T) {
	accounts := []book.Account{
		acct("A100", book.KindAsset),
		acct("E100", book.KindEquity),
	}
	entries := []book.JournalEntry{
		mustEntry(t, day(1), "capital deposit",
			book.EntryDetail{AccountCode: "A100", Side: book.SideDebit, Amount: amt(t, 50000)},
			book.EntryDetail{AccountCode: "E100", Side: book.SideCredit, Amount: amt(t, 50000)},
		),
	}
	rep, err := Build(Input{
		Currency:    "EUR",
		Accounts:    accounts,
		Entries:     entries,
		PeriodStart: day(1),
		ReportEnd:   day(30),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !rep.ResultOfOperations().IsZero() {
		t.Fatalf("result = %v, want zero", rep.ResultOfOperations())
	}
	for _, l := range append(rep.Assets(), rep.Liabilities()...) {
		if l.Synthetic {
			t.Fatalf("unexpected plug %+v on a balanced period", l)
		}
	}
}

func TestBuildNamesAndSortsLines(t *testing.T) {
	partyID := uuid.New()
	accounts := []book.Account{
		{Code: "D100", Name: "Accounts receivable", Kind: book.KindDebtor},
		{Code: "A100", Name: "Bank", Kind: book.KindAsset},
	}
	inv := book.Invoice{ID: uuid.New(), PartyID: partyID, Amount: amt(t, 12000), Date: day(3)}
	rep, err := Build(Input{
		Currency:    "EUR",
		Accounts:    accounts,
		Invoices:    []book.Invoice{inv},
		PartyNames:  map[uuid.UUID]string{partyID: "Acme Ltd"},
		PeriodStart: day(1),
		ReportEnd:   day(30),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	assets := rep.Assets()
	if len(assets) != 2 || assets[0].Code != "A100" || assets[1].Code != "D100" {
		t.Fatalf("assets = %+v, want ordered by code", assets)
	}
	debtors := rep.Debtors()
	if len(debtors) != 1 || debtors[0].Name != "Acme Ltd" {
		t.Fatalf("debtors = %+v, want named Acme Ltd", debtors)
	}
	if got := minor(t, rep.TotalDebtors()); got != 12000 {
		t.Fatalf("total debtors = %d, want 12000", got)
	}
	if remaining, ok := rep.RemainingOf(inv.ID); !ok || minor(t, remaining) != 12000 {
		t.Fatalf("RemainingOf = %v/%v, want 12000", remaining, ok)
	}
}

// TestBuildRandomizedBalanceIdentity generates random balanced entry logs and
// checks the invariants that must hold for every one of them: the plugged
// balance sheet closes exactly, the operational result equals revenues minus
// expenses, and every account ledger satisfies start + mutations = end.
func TestBuildRandomizedBalanceIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	accounts := []book.Account{
		acct("A100", book.KindAsset),
		acct("D100", book.KindDebtor),
		acct("L100", book.KindLiability),
		acct("C100", book.KindCreditor),
		acct("E100", book.KindEquity),
		acct("R100", book.KindRevenue),
		acct("X100", book.KindExpense),
	}
	for round := 0; round < 25; round++ {
		n := 1 + rng.Intn(40)
		entries := make([]book.JournalEntry, 0, n)
		for i := 0; i < n; i++ {
			debited := accounts[rng.Intn(len(accounts))]
			credited := accounts[rng.Intn(len(accounts))]
			amount := amt(t, int64(1+rng.Intn(100000)))
			// May is before the period, June inside, July after the horizon.
			date := time.Date(2024, time.Month(5+rng.Intn(3)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC)
			entries = append(entries, mustEntry(t, date, "generated",
				book.EntryDetail{AccountCode: debited.Code, Side: book.SideDebit, Amount: amount},
				book.EntryDetail{AccountCode: credited.Code, Side: book.SideCredit, Amount: amount},
			))
		}
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })

		rep, err := Build(Input{
			Currency:    "EUR",
			Accounts:    accounts,
			Entries:     entries,
			PeriodStart: day(1),
			ReportEnd:   day(30),
		})
		if err != nil {
			t.Fatalf("round %d: Build: %v", round, err)
		}

		if a, l := minor(t, rep.TotalAssets()), minor(t, rep.TotalLiabilities()); a != l {
			t.Fatalf("round %d: balance sheet does not close: assets %d vs liabilities %d", round, a, l)
		}
		rev := sumBalanceMinor(t, rep.Revenues())
		exp := sumBalanceMinor(t, rep.Expenses())
		if res := minor(t, rep.ResultOfOperations()); res != rev-exp {
			t.Fatalf("round %d: result %d != revenues %d - expenses %d", round, res, rev, exp)
		}

		for _, a := range accounts {
			lines, ok := rep.LedgerOf(a.Code)
			if !ok || len(lines) < 3 {
				t.Fatalf("round %d: no ledger for %s", round, a.Code)
			}
			start := signedLineMinor(t, lines[0], a.Kind.NormalSide())
			end := signedLineMinor(t, lines[len(lines)-1], a.Kind.NormalSide())
			totals := lines[len(lines)-2]
			mutations := minor(t, *totals.Debit) - minor(t, *totals.Credit)
			if a.Kind.NormalSide() == book.SideCredit {
				mutations = -mutations
			}
			if start+mutations != end {
				t.Fatalf("round %d: %s ledger does not close: start %d + mutations %d != end %d",
					round, a.Code, start, mutations, end)
			}
		}
	}
}

func sumBalanceMinor(t *testing.T, lines []BalanceLine) int64 {
	t.Helper()
	var total int64
	for _, l := range lines {
		if !l.Synthetic {
			total += minor(t, l.Amount)
		}
	}
	return total
}

// signedLineMinor reads a balance line in the account's natural sign: the
// amount is positive when it sits on the natural side and negative otherwise.
func signedLineMinor(t *testing.T, l LedgerLine, normal book.Side) int64 {
	t.Helper()
	switch {
	case l.Debit != nil:
		if normal == book.SideDebit {
			return minor(t, *l.Debit)
		}
		return -minor(t, *l.Debit)
	case l.Credit != nil:
		if normal == book.SideCredit {
			return minor(t, *l.Credit)
		}
		return -minor(t, *l.Credit)
	default:
		t.Fatalf("balance line %+v has no amount", l)
		return 0
	}
}

func TestBuildIsRepeatable(t *testing.T) {
	accounts := []book.Account{
		acct("A100", book.KindAsset),
		acct("R100", book.KindRevenue),
	}
	entries := []book.JournalEntry{
		mustEntry(t, day(10), "sale",
			book.EntryDetail{AccountCode: "A100", Side: book.SideDebit, Amount: amt(t, 777)},
			book.EntryDetail{AccountCode: "R100", Side: book.SideCredit, Amount: amt(t, 777)},
		),
	}
	in := Input{Currency: "EUR", Accounts: accounts, Entries: entries, PeriodStart: day(1), ReportEnd: day(30)}

	first, err := Build(in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := Build(in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if a, b := minor(t, first.TotalAssets()), minor(t, second.TotalAssets()); a != b {
		t.Fatalf("rebuild diverged: %d vs %d", a, b)
	}
	if a, b := minor(t, first.ResultOfOperations()), minor(t, second.ResultOfOperations()); a != b {
		t.Fatalf("rebuild diverged on result: %d vs %d", a, b)
	}
}
