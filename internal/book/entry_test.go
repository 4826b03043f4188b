package book

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/finrep/bookkeeper/internal/errs"
)

func eur(t *testing.T, minor int64) money.Amount {
	t.Helper()
	a, err := money.NewAmountFromMinorUnits("EUR", minor)
	if err != nil {
		t.Fatalf("amount: %v", err)
	}
	return a
}

func TestNewJournalEntryBalanced(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	e, err := NewJournalEntry(uuid.New(), uuid.New(), "sale", date, []EntryDetail{
		{AccountCode: "A100", Side: SideDebit, Amount: eur(t, 10000)},
		{AccountCode: "R100", Side: SideCredit, Amount: eur(t, 10000)},
	}, nil)
	if err != nil {
		t.Fatalf("NewJournalEntry: %v", err)
	}
	if got, want := e.Currency(), "EUR"; got != want {
		t.Fatalf("currency = %q, want %q", got, want)
	}
	if cmp, err := e.TotalDebit().Cmp(e.TotalCredit()); err != nil || cmp != 0 {
		t.Fatalf("debit %v != credit %v", e.TotalDebit(), e.TotalCredit())
	}
}

func TestNewJournalEntryUnbalanced(t *testing.T) {
	_, err := NewJournalEntry(uuid.New(), uuid.New(), "oops", time.Now(), []EntryDetail{
		{AccountCode: "A100", Side: SideDebit, Amount: eur(t, 10000)},
		{AccountCode: "R100", Side: SideCredit, Amount: eur(t, 9999)},
	}, nil)
	var mismatch *errs.DebitCreditMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want DebitCreditMismatchError", err)
	}
	if d, _ := mismatch.Debit.MinorUnits(); d != 10000 {
		t.Fatalf("mismatch debit = %d, want 10000", d)
	}
	if c, _ := mismatch.Credit.MinorUnits(); c != 9999 {
		t.Fatalf("mismatch credit = %d, want 9999", c)
	}
}

func TestNewJournalEntryMixedCurrencies(t *testing.T) {
	gbp, err := money.NewAmountFromMinorUnits("GBP", 5000)
	if err != nil {
		t.Fatalf("amount: %v", err)
	}
	_, err = NewJournalEntry(uuid.New(), uuid.New(), "mixed", time.Now(), []EntryDetail{
		{AccountCode: "A100", Side: SideDebit, Amount: eur(t, 5000)},
		{AccountCode: "R100", Side: SideCredit, Amount: gbp},
	}, nil)
	if !errors.Is(err, errs.ErrCurrencyMismatch) {
		t.Fatalf("err = %v, want ErrCurrencyMismatch", err)
	}
}

func TestNewJournalEntryRejectsBadDetails(t *testing.T) {
	if _, err := NewJournalEntry(uuid.New(), uuid.New(), "empty", time.Now(), nil, nil); err == nil {
		t.Fatal("expected error for empty details")
	}
	if _, err := NewJournalEntry(uuid.New(), uuid.New(), "bad side", time.Now(), []EntryDetail{
		{AccountCode: "A100", Side: Side("both"), Amount: eur(t, 100)},
	}, nil); err == nil {
		t.Fatal("expected error for invalid side")
	}
	if _, err := NewJournalEntry(uuid.Nil, uuid.New(), "nil id", time.Now(), []EntryDetail{
		{AccountCode: "A100", Side: SideDebit, Amount: eur(t, 100)},
		{AccountCode: "R100", Side: SideCredit, Amount: eur(t, 100)},
	}, nil); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestNewJournalEntryCopiesDetails(t *testing.T) {
	details := []EntryDetail{
		{AccountCode: "A100", Side: SideDebit, Amount: eur(t, 100)},
		{AccountCode: "R100", Side: SideCredit, Amount: eur(t, 100)},
	}
	e, err := NewJournalEntry(uuid.New(), uuid.New(), "copy", time.Now(), details, nil)
	if err != nil {
		t.Fatalf("NewJournalEntry: %v", err)
	}
	details[0].AccountCode = "MUTATED"
	if e.Details[0].AccountCode != "A100" {
		t.Fatal("entry details aliased the caller's slice")
	}
}

func TestAccountKindSides(t *testing.T) {
	cases := []struct {
		kind   AccountKind
		normal Side
		asset  bool
		liab   bool
	}{
		{KindAsset, SideDebit, true, false},
		{KindExpense, SideDebit, false, false},
		{KindDebtor, SideDebit, true, false},
		{KindLiability, SideCredit, false, true},
		{KindEquity, SideCredit, false, true},
		{KindRevenue, SideCredit, false, false},
		{KindCreditor, SideCredit, false, true},
	}
	for _, c := range cases {
		if got := c.kind.NormalSide(); got != c.normal {
			t.Errorf("%s normal side = %s, want %s", c.kind, got, c.normal)
		}
		if got := c.kind.AssetSide(); got != c.asset {
			t.Errorf("%s asset side = %v, want %v", c.kind, got, c.asset)
		}
		if got := c.kind.LiabilitySide(); got != c.liab {
			t.Errorf("%s liability side = %v, want %v", c.kind, got, c.liab)
		}
	}
}
