package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/chart"
	"github.com/finrep/bookkeeper/internal/service/account"
	"github.com/finrep/bookkeeper/internal/storage/memory"
)

func TestCreateNormalizesCode(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := account.New(store, store)
	adminID := uuid.New()

	a, err := svc.Create(ctx, book.Account{
		AdministrationID: adminID,
		Code:             " a100 ",
		Name:             "Bank",
		Kind:             book.KindAsset,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Code != "A100" {
		t.Fatalf("code = %q, want A100", a.Code)
	}
	if _, err := svc.Get(ctx, adminID, "a100"); err != nil {
		t.Fatalf("Get with lowercase code: %v", err)
	}
}

func TestCreateDuplicateCode(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := account.New(store, store)
	adminID := uuid.New()

	first := book.Account{AdministrationID: adminID, Code: "A100", Name: "Bank", Kind: book.KindAsset}
	if _, err := svc.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, book.Account{AdministrationID: adminID, Code: "a100", Name: "Other", Kind: book.KindAsset})
	if !errors.Is(err, account.ErrCodeExists) {
		t.Fatalf("duplicate create: %v, want account.ErrCodeExists", err)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := account.New(store, store)
	adminID := uuid.New()

	cases := []book.Account{
		{AdministrationID: adminID, Code: "100A", Name: "Bad code", Kind: book.KindAsset},
		{AdministrationID: adminID, Code: "A100", Name: "", Kind: book.KindAsset},
		{AdministrationID: adminID, Code: "A100", Name: "Bad kind", Kind: book.AccountKind("fund")},
	}
	for _, c := range cases {
		if _, err := svc.Create(ctx, c); err == nil {
			t.Errorf("Create(%+v) succeeded, want error", c)
		}
	}
}

func TestSeedDefaultChart(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := account.New(store, store)
	adminID := uuid.New()

	created, err := svc.SeedDefaultChart(ctx, adminID)
	if err != nil {
		t.Fatalf("SeedDefaultChart: %v", err)
	}
	if len(created) != len(chart.Default()) {
		t.Fatalf("created = %d accounts, want %d", len(created), len(chart.Default()))
	}

	// Seeding again is a no-op for existing codes.
	again, err := svc.SeedDefaultChart(ctx, adminID)
	if err != nil {
		t.Fatalf("second SeedDefaultChart: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second seed created %d accounts, want 0", len(again))
	}
}
