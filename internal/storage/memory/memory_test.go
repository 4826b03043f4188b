package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/finrep/bookkeeper/internal/book"
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

func mustEntry(t *testing.T, adminID uuid.UUID, date time.Time, desc string) book.JournalEntry {
	t.Helper()
	e, err := book.NewJournalEntry(uuid.New(), adminID, desc, date, []book.EntryDetail{
		{AccountCode: "A100", Side: book.SideDebit, Amount: eur(t, 100)},
		{AccountCode: "R100", Side: book.SideCredit, Amount: eur(t, 100)},
	}, nil)
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	return e
}

func TestListEntriesOrderedByDateThenInsertion(t *testing.T) {
	ctx := context.Background()
	store := New()
	adminID := uuid.New()

	jan2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Insert out of date order, plus two same-day entries.
	later := mustEntry(t, adminID, jan2, "second day")
	firstSameDay := mustEntry(t, adminID, jan1, "first of jan 1")
	secondSameDay := mustEntry(t, adminID, jan1, "second of jan 1")
	for _, e := range []book.JournalEntry{later, firstSameDay, secondSameDay} {
		if _, err := store.CreateJournalEntry(ctx, e); err != nil {
			t.Fatalf("CreateJournalEntry: %v", err)
		}
	}

	entries, err := store.ListEntries(ctx, adminID)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	got := []string{entries[0].Description, entries[1].Description, entries[2].Description}
	want := []string{"first of jan 1", "second of jan 1", "second day"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestDeleteJournalEntry(t *testing.T) {
	ctx := context.Background()
	store := New()
	adminID := uuid.New()

	e := mustEntry(t, adminID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "to delete")
	if _, err := store.CreateJournalEntry(ctx, e); err != nil {
		t.Fatalf("CreateJournalEntry: %v", err)
	}
	if err := store.DeleteJournalEntry(ctx, adminID, e.ID); err != nil {
		t.Fatalf("DeleteJournalEntry: %v", err)
	}
	if _, err := store.GetEntry(ctx, adminID, e.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("GetEntry after delete: %v, want ErrNotFound", err)
	}
	entries, err := store.ListEntries(ctx, adminID)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("len(entries) = %d, want 0", len(entries))
	}
	if err := store.DeleteJournalEntry(ctx, adminID, e.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second delete: %v, want ErrNotFound", err)
	}
}

func TestCreateAccountConflict(t *testing.T) {
	ctx := context.Background()
	store := New()
	adminID := uuid.New()

	a := book.Account{AdministrationID: adminID, Code: "A100", Name: "Bank", Kind: book.KindAsset}
	if _, err := store.CreateAccount(ctx, a); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if _, err := store.CreateAccount(ctx, a); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("duplicate create: %v, want ErrConflict", err)
	}
}

func TestPaymentsScopedToAdministration(t *testing.T) {
	ctx := context.Background()
	store := New()
	adminA := uuid.New()
	adminB := uuid.New()

	inv := book.Invoice{ID: uuid.New(), AdministrationID: adminA, PartyID: uuid.New(), Amount: eur(t, 5000), Date: time.Now().UTC()}
	if _, err := store.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	p := book.Payment{ID: uuid.New(), InvoiceID: inv.ID, Amount: eur(t, 2000), Date: time.Now().UTC()}
	if _, err := store.CreatePayment(ctx, adminA, p); err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	// wrong administration
	if _, err := store.CreatePayment(ctx, adminB, p); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("cross-admin payment: %v, want ErrNotFound", err)
	}

	byInvoice, err := store.PaymentsByInvoice(ctx, adminA)
	if err != nil {
		t.Fatalf("PaymentsByInvoice: %v", err)
	}
	if len(byInvoice[inv.ID]) != 1 {
		t.Fatalf("payments = %d, want 1", len(byInvoice[inv.ID]))
	}
	other, err := store.PaymentsByInvoice(ctx, adminB)
	if err != nil {
		t.Fatalf("PaymentsByInvoice: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("adminB payments = %d, want 0", len(other))
	}
}
