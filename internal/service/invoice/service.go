// Package invoice manages the invoice catalog and the payments applied
// against it.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/errs"
)

type Repo interface {
	GetAdministration(ctx context.Context, administrationID uuid.UUID) (book.Administration, error)
	GetParty(ctx context.Context, administrationID, partyID uuid.UUID) (book.Party, error)
	ListInvoices(ctx context.Context, administrationID uuid.UUID) ([]book.Invoice, error)
	GetInvoice(ctx context.Context, administrationID, invoiceID uuid.UUID) (book.Invoice, error)
	// PaymentsByInvoice returns every payment of the administration grouped
	// by invoice, each group ordered by payment date.
	PaymentsByInvoice(ctx context.Context, administrationID uuid.UUID) (map[uuid.UUID][]book.Payment, error)
}

type Writer interface {
	CreateInvoice(ctx context.Context, inv book.Invoice) (book.Invoice, error)
	CreatePayment(ctx context.Context, administrationID uuid.UUID, p book.Payment) (book.Payment, error)
}

type Service interface {
	Create(ctx context.Context, inv book.Invoice) (book.Invoice, error)
	List(ctx context.Context, administrationID uuid.UUID) ([]book.Invoice, error)
	Get(ctx context.Context, administrationID, invoiceID uuid.UUID) (book.Invoice, error)
	// AddPayment records a payment against an invoice. The payment currency
	// must match the invoice's.
	AddPayment(ctx context.Context, administrationID, invoiceID uuid.UUID, amount money.Amount, date time.Time, description string) (book.Payment, error)
}

type service struct {
	repo   Repo
	writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func (s *service) Create(ctx context.Context, inv book.Invoice) (book.Invoice, error) {
	if inv.AdministrationID == uuid.Nil || inv.PartyID == uuid.Nil {
		return book.Invoice{}, errs.ErrInvalid
	}
	if inv.Amount.IsZero() {
		return book.Invoice{}, fmt.Errorf("%w: invoice amount must not be zero", errs.ErrUnprocessable)
	}
	admin, err := s.repo.GetAdministration(ctx, inv.AdministrationID)
	if err != nil {
		return book.Invoice{}, err
	}
	if inv.Amount.Curr().Code() != admin.Currency {
		return book.Invoice{}, errs.ErrCurrencyMismatch
	}
	if _, err := s.repo.GetParty(ctx, inv.AdministrationID, inv.PartyID); err != nil {
		return book.Invoice{}, err
	}
	inv.ID = uuid.New()
	inv.Date = inv.Date.UTC()
	return s.writer.CreateInvoice(ctx, inv)
}

func (s *service) List(ctx context.Context, administrationID uuid.UUID) ([]book.Invoice, error) {
	if administrationID == uuid.Nil {
		return nil, errs.ErrInvalid
	}
	return s.repo.ListInvoices(ctx, administrationID)
}

func (s *service) Get(ctx context.Context, administrationID, invoiceID uuid.UUID) (book.Invoice, error) {
	if administrationID == uuid.Nil || invoiceID == uuid.Nil {
		return book.Invoice{}, errs.ErrInvalid
	}
	return s.repo.GetInvoice(ctx, administrationID, invoiceID)
}

func (s *service) AddPayment(ctx context.Context, administrationID, invoiceID uuid.UUID, amount money.Amount, date time.Time, description string) (book.Payment, error) {
	if administrationID == uuid.Nil || invoiceID == uuid.Nil {
		return book.Payment{}, errs.ErrInvalid
	}
	inv, err := s.repo.GetInvoice(ctx, administrationID, invoiceID)
	if err != nil {
		return book.Payment{}, err
	}
	if amount.Curr().Code() != inv.Amount.Curr().Code() {
		return book.Payment{}, errs.ErrCurrencyMismatch
	}
	p := book.Payment{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		Amount:      amount,
		Date:        date.UTC(),
		Description: description,
	}
	return s.writer.CreatePayment(ctx, administrationID, p)
}
