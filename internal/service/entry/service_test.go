package entry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/errs"
	"github.com/finrep/bookkeeper/internal/service/entry"
	"github.com/finrep/bookkeeper/internal/storage/memory"
)

func amount(t *testing.T, currency string, minor int64) money.Amount {
	t.Helper()
	a, err := money.NewAmountFromMinorUnits(currency, minor)
	if err != nil {
		t.Fatalf("amount: %v", err)
	}
	return a
}

func setup(t *testing.T) (*memory.Store, entry.Service, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	admin, err := store.CreateAdministration(ctx, book.Administration{ID: uuid.New(), Name: "Test Co", Currency: "EUR"})
	if err != nil {
		t.Fatalf("CreateAdministration: %v", err)
	}
	for _, a := range []book.Account{
		{AdministrationID: admin.ID, Code: "A100", Name: "Bank", Kind: book.KindAsset},
		{AdministrationID: admin.ID, Code: "R100", Name: "Sales", Kind: book.KindRevenue},
		{AdministrationID: admin.ID, Code: "D100", Name: "Accounts receivable", Kind: book.KindDebtor},
	} {
		if _, err := store.CreateAccount(ctx, a); err != nil {
			t.Fatalf("CreateAccount: %v", err)
		}
	}
	return store, entry.New(store, store), admin.ID
}

func TestCreateEntry(t *testing.T) {
	_, svc, adminID := setup(t)

	e, err := svc.Create(context.Background(), entry.Input{
		AdministrationID: adminID,
		Description:      "cash sale",
		Date:             time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Details: []book.EntryDetail{
			{AccountCode: "A100", Side: book.SideDebit, Amount: amount(t, "EUR", 10000)},
			{AccountCode: "R100", Side: book.SideCredit, Amount: amount(t, "EUR", 10000)},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID == uuid.Nil {
		t.Fatal("entry got no id")
	}

	entries, err := svc.List(context.Background(), adminID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
}

func TestCreateEntryCurrencyMismatch(t *testing.T) {
	_, svc, adminID := setup(t)

	_, err := svc.Create(context.Background(), entry.Input{
		AdministrationID: adminID,
		Description:      "wrong currency",
		Date:             time.Now(),
		Details: []book.EntryDetail{
			{AccountCode: "A100", Side: book.SideDebit, Amount: amount(t, "GBP", 100)},
			{AccountCode: "R100", Side: book.SideCredit, Amount: amount(t, "GBP", 100)},
		},
	})
	if !errors.Is(err, errs.ErrCurrencyMismatch) {
		t.Fatalf("err = %v, want ErrCurrencyMismatch", err)
	}
}

func TestCreateEntryUnknownAccount(t *testing.T) {
	_, svc, adminID := setup(t)

	_, err := svc.Create(context.Background(), entry.Input{
		AdministrationID: adminID,
		Description:      "ghost account",
		Date:             time.Now(),
		Details: []book.EntryDetail{
			{AccountCode: "Z999", Side: book.SideDebit, Amount: amount(t, "EUR", 100)},
			{AccountCode: "R100", Side: book.SideCredit, Amount: amount(t, "EUR", 100)},
		},
	})
	if !errors.Is(err, errs.ErrReferenceNotFound) {
		t.Fatalf("err = %v, want ErrReferenceNotFound", err)
	}
}

func TestCreateEntryUnknownInvoiceReference(t *testing.T) {
	_, svc, adminID := setup(t)
	ghost := uuid.New()

	_, err := svc.Create(context.Background(), entry.Input{
		AdministrationID: adminID,
		Description:      "settles nothing",
		Date:             time.Now(),
		Details: []book.EntryDetail{
			{AccountCode: "R100", Side: book.SideCredit, Amount: amount(t, "EUR", 100), InvoiceID: &ghost},
			{AccountCode: "D100", Side: book.SideDebit, Amount: amount(t, "EUR", 100)},
		},
	})
	if !errors.Is(err, errs.ErrReferenceNotFound) {
		t.Fatalf("err = %v, want ErrReferenceNotFound", err)
	}
}

func TestDeleteThenRecreate(t *testing.T) {
	_, svc, adminID := setup(t)
	ctx := context.Background()

	in := entry.Input{
		AdministrationID: adminID,
		Description:      "typo",
		Date:             time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Details: []book.EntryDetail{
			{AccountCode: "A100", Side: book.SideDebit, Amount: amount(t, "EUR", 900)},
			{AccountCode: "R100", Side: book.SideCredit, Amount: amount(t, "EUR", 900)},
		},
	}
	e, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, adminID, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	in.Description = "corrected"
	in.Details[0].Amount = amount(t, "EUR", 1900)
	in.Details[1].Amount = amount(t, "EUR", 1900)
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatalf("re-create: %v", err)
	}

	entries, err := svc.List(ctx, adminID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Description != "corrected" {
		t.Fatalf("entries = %+v, want single corrected entry", entries)
	}
}
