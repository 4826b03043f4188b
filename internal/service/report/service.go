// Package report (service) assembles builder inputs from storage and exposes
// BuildReport as the single reporting entry point.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/errs"
	"github.com/finrep/bookkeeper/internal/report"
)

var reportBuildsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "bookkeeper",
		Name:      "report_builds_total",
		Help:      "Total number of report builds",
	},
	[]string{"outcome"},
)

// Repo provides the collaborator data a build reads: the chart of accounts,
// the ordered entry log, the invoice catalog and the party lookup.
type Repo interface {
	GetAdministration(ctx context.Context, administrationID uuid.UUID) (book.Administration, error)
	ListAccounts(ctx context.Context, administrationID uuid.UUID) ([]book.Account, error)
	// ListEntries returns the entry log ordered by date, same-day entries in
	// insertion order.
	ListEntries(ctx context.Context, administrationID uuid.UUID) ([]book.JournalEntry, error)
	ListInvoices(ctx context.Context, administrationID uuid.UUID) ([]book.Invoice, error)
	PaymentsByInvoice(ctx context.Context, administrationID uuid.UUID) (map[uuid.UUID][]book.Payment, error)
	ListParties(ctx context.Context, administrationID uuid.UUID) ([]book.Party, error)
}

type Service interface {
	// BuildReport builds the balance sheet, operational result, ledger
	// histories and debtor/creditor positions for the period. The result is
	// immutable; rebuild after the entry log changes.
	BuildReport(ctx context.Context, administrationID uuid.UUID, periodStart, reportEnd time.Time) (*report.Report, error)
}

type service struct {
	repo Repo
}

func New(repo Repo) Service { return &service{repo: repo} }

func (s *service) BuildReport(ctx context.Context, administrationID uuid.UUID, periodStart, reportEnd time.Time) (*report.Report, error) {
	r, err := s.build(ctx, administrationID, periodStart, reportEnd)
	if err != nil {
		reportBuildsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	reportBuildsTotal.WithLabelValues("ok").Inc()
	return r, nil
}

func (s *service) build(ctx context.Context, administrationID uuid.UUID, periodStart, reportEnd time.Time) (*report.Report, error) {
	if administrationID == uuid.Nil {
		return nil, errs.ErrInvalid
	}
	if reportEnd.Before(periodStart) {
		return nil, errs.ErrInvalid
	}
	admin, err := s.repo.GetAdministration(ctx, administrationID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.repo.ListAccounts(ctx, administrationID)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListEntries(ctx, administrationID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.repo.ListInvoices(ctx, administrationID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.PaymentsByInvoice(ctx, administrationID)
	if err != nil {
		return nil, err
	}
	parties, err := s.repo.ListParties(ctx, administrationID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(parties))
	for _, p := range parties {
		names[p.ID] = p.Name
	}

	return report.Build(report.Input{
		Currency:          admin.Currency,
		Accounts:          accounts,
		Entries:           entries,
		Invoices:          invoices,
		PaymentsByInvoice: payments,
		PartyNames:        names,
		PeriodStart:       periodStart.UTC(),
		ReportEnd:         reportEnd.UTC(),
	})
}
