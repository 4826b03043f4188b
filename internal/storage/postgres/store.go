package postgres

// Package postgres provides a pgx-backed storage implementation that
// satisfies the repository and writer interfaces used by the services.
//
// It is intentionally small and explicit. Migrations that create the
// expected schema live under db/migrations. This package focuses on mapping
// between the domain entities and SQL rows and running the necessary
// statements/transactions.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/govalues/money"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/errs"
	"github.com/finrep/bookkeeper/internal/meta"
)

// Store holds a pgx connection pool and implements the read/write interfaces
// used across the service layer. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// --- Administrations ---

func (s *Store) CreateAdministration(ctx context.Context, a book.Administration) (book.Administration, error) {
	_, err := s.pool.Exec(ctx, `
        insert into administrations (id, name, currency)
        values ($1,$2,$3)
    `, a.ID, a.Name, a.Currency)
	if err != nil {
		return book.Administration{}, err
	}
	return a, nil
}

func (s *Store) GetAdministration(ctx context.Context, administrationID uuid.UUID) (book.Administration, error) {
	var a book.Administration
	err := s.pool.QueryRow(ctx, `
        select id, name, currency from administrations where id = $1
    `, administrationID).Scan(&a.ID, &a.Name, &a.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return book.Administration{}, errs.ErrNotFound
	}
	if err != nil {
		return book.Administration{}, err
	}
	return a, nil
}

// --- Accounts ---

func (s *Store) CreateAccount(ctx context.Context, a book.Account) (book.Account, error) {
	md, _ := json.Marshal(a.Metadata)
	_, err := s.pool.Exec(ctx, `
        insert into accounts (administration_id, code, name, kind, metadata)
        values ($1,$2,$3,$4,$5)
    `, a.AdministrationID, a.Code, a.Name, a.Kind, md)
	if err != nil {
		return book.Account{}, err
	}
	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context, administrationID uuid.UUID) ([]book.Account, error) {
	rows, err := s.pool.Query(ctx, `
        select administration_id, code, name, kind, metadata
        from accounts
        where administration_id = $1
        order by code asc
    `, administrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]book.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) GetAccount(ctx context.Context, administrationID uuid.UUID, accountCode string) (book.Account, error) {
	row := s.pool.QueryRow(ctx, `
        select administration_id, code, name, kind, metadata
        from accounts
        where administration_id = $1 and code = $2
    `, administrationID, accountCode)
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return book.Account{}, errs.ErrNotFound
	}
	if err != nil {
		return book.Account{}, err
	}
	return a, nil
}

func scanAccount(row pgx.Row) (book.Account, error) {
	var a book.Account
	var mdBytes []byte
	if err := row.Scan(&a.AdministrationID, &a.Code, &a.Name, &a.Kind, &mdBytes); err != nil {
		return book.Account{}, err
	}
	a.Metadata = unmarshalMetadata(mdBytes)
	return a, nil
}

func unmarshalMetadata(b []byte) meta.Metadata {
	if len(b) == 0 {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil || len(m) == 0 {
		return nil
	}
	return meta.New(m)
}

// --- Parties ---

func (s *Store) CreateParty(ctx context.Context, p book.Party) (book.Party, error) {
	_, err := s.pool.Exec(ctx, `
        insert into parties (id, administration_id, name)
        values ($1,$2,$3)
    `, p.ID, p.AdministrationID, p.Name)
	if err != nil {
		return book.Party{}, err
	}
	return p, nil
}

func (s *Store) ListParties(ctx context.Context, administrationID uuid.UUID) ([]book.Party, error) {
	rows, err := s.pool.Query(ctx, `
        select id, administration_id, name
        from parties
        where administration_id = $1
        order by id asc
    `, administrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]book.Party, 0)
	for rows.Next() {
		var p book.Party
		if err := rows.Scan(&p.ID, &p.AdministrationID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetParty(ctx context.Context, administrationID, partyID uuid.UUID) (book.Party, error) {
	var p book.Party
	err := s.pool.QueryRow(ctx, `
        select id, administration_id, name
        from parties
        where id = $1 and administration_id = $2
    `, partyID, administrationID).Scan(&p.ID, &p.AdministrationID, &p.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return book.Party{}, errs.ErrNotFound
	}
	if err != nil {
		return book.Party{}, err
	}
	return p, nil
}

// --- Entries ---

// CreateJournalEntry inserts an entry header + its details in a transaction.
func (s *Store) CreateJournalEntry(ctx context.Context, e book.JournalEntry) (book.JournalEntry, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return book.JournalEntry{}, err
	}
	if err := createEntry(ctx, tx, e); err != nil {
		_ = tx.Rollback(ctx)
		return book.JournalEntry{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return book.JournalEntry{}, err
	}
	return e, nil
}

func createEntry(ctx context.Context, tx pgx.Tx, e book.JournalEntry) error {
	md, _ := json.Marshal(e.Metadata)
	if _, err := tx.Exec(ctx, `
        insert into entries (id, administration_id, date, description, creates_invoice_id, metadata)
        values ($1,$2,$3,$4,$5,$6)
    `, e.ID, e.AdministrationID, e.Date, e.Description, e.CreatesInvoiceID, md); err != nil {
		return err
	}
	for i, d := range e.Details {
		minor, _ := d.Amount.MinorUnits()
		if _, err := tx.Exec(ctx, `
            insert into entry_details (entry_id, line_no, account_code, side, amount_minor, invoice_id, payment_id)
            values ($1,$2,$3,$4,$5,$6,$7)
        `, e.ID, i, d.AccountCode, d.Side, minor, d.InvoiceID, d.PaymentID); err != nil {
			return fmt.Errorf("insert detail: %w", err)
		}
	}
	return nil
}

// DeleteJournalEntry removes an entry and its details.
func (s *Store) DeleteJournalEntry(ctx context.Context, administrationID, entryID uuid.UUID) error {
	ct, err := s.pool.Exec(ctx, `
        delete from entries where id = $1 and administration_id = $2
    `, entryID, administrationID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ListEntries returns entries with details populated, ordered by date and
// insertion order (the seq column).
func (s *Store) ListEntries(ctx context.Context, administrationID uuid.UUID) ([]book.JournalEntry, error) {
	currency, err := s.currencyOf(ctx, administrationID)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
        select id, administration_id, date, description, creates_invoice_id, metadata
        from entries
        where administration_id = $1
        order by date asc, seq asc
    `, administrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]book.JournalEntry, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var e book.JournalEntry
		var mdBytes []byte
		if err := rows.Scan(&e.ID, &e.AdministrationID, &e.Date, &e.Description, &e.CreatesInvoiceID, &mdBytes); err != nil {
			return nil, err
		}
		e.Metadata = unmarshalMetadata(mdBytes)
		entries = append(entries, e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}
	detailRows, err := s.pool.Query(ctx, `
        select entry_id, account_code, side, amount_minor, invoice_id, payment_id
        from entry_details
        where entry_id = any($1)
        order by entry_id, line_no asc
    `, ids)
	if err != nil {
		return nil, err
	}
	defer detailRows.Close()
	idx := make(map[uuid.UUID]*book.JournalEntry, len(entries))
	for i := range entries {
		idx[entries[i].ID] = &entries[i]
	}
	for detailRows.Next() {
		var entryID uuid.UUID
		d, err := scanDetail(detailRows, currency, &entryID)
		if err != nil {
			return nil, err
		}
		if e := idx[entryID]; e != nil {
			e.Details = append(e.Details, d)
		}
	}
	return entries, detailRows.Err()
}

// GetEntry returns an entry by id with details populated.
func (s *Store) GetEntry(ctx context.Context, administrationID, entryID uuid.UUID) (book.JournalEntry, error) {
	currency, err := s.currencyOf(ctx, administrationID)
	if err != nil {
		return book.JournalEntry{}, err
	}
	var e book.JournalEntry
	var mdBytes []byte
	err = s.pool.QueryRow(ctx, `
        select id, administration_id, date, description, creates_invoice_id, metadata
        from entries
        where id = $1 and administration_id = $2
    `, entryID, administrationID).Scan(&e.ID, &e.AdministrationID, &e.Date, &e.Description, &e.CreatesInvoiceID, &mdBytes)
	if errors.Is(err, pgx.ErrNoRows) {
		return book.JournalEntry{}, errs.ErrNotFound
	}
	if err != nil {
		return book.JournalEntry{}, err
	}
	e.Metadata = unmarshalMetadata(mdBytes)
	rows, err := s.pool.Query(ctx, `
        select entry_id, account_code, side, amount_minor, invoice_id, payment_id
        from entry_details
        where entry_id = $1
        order by line_no asc
    `, entryID)
	if err != nil {
		return book.JournalEntry{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		d, err := scanDetail(rows, currency, &id)
		if err != nil {
			return book.JournalEntry{}, err
		}
		e.Details = append(e.Details, d)
	}
	return e, rows.Err()
}

func scanDetail(row pgx.Row, currency string, entryID *uuid.UUID) (book.EntryDetail, error) {
	var d book.EntryDetail
	var minor int64
	if err := row.Scan(entryID, &d.AccountCode, &d.Side, &minor, &d.InvoiceID, &d.PaymentID); err != nil {
		return book.EntryDetail{}, err
	}
	amt, err := money.NewAmountFromMinorUnits(currency, minor)
	if err != nil {
		return book.EntryDetail{}, err
	}
	d.Amount = amt
	return d, nil
}

// --- Invoices & payments ---

func (s *Store) CreateInvoice(ctx context.Context, inv book.Invoice) (book.Invoice, error) {
	minor, _ := inv.Amount.MinorUnits()
	_, err := s.pool.Exec(ctx, `
        insert into invoices (id, administration_id, party_id, amount_minor, date, description)
        values ($1,$2,$3,$4,$5,$6)
    `, inv.ID, inv.AdministrationID, inv.PartyID, minor, inv.Date, inv.Description)
	if err != nil {
		return book.Invoice{}, err
	}
	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, administrationID uuid.UUID) ([]book.Invoice, error) {
	currency, err := s.currencyOf(ctx, administrationID)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
        select id, administration_id, party_id, amount_minor, date, description
        from invoices
        where administration_id = $1
        order by date asc, id asc
    `, administrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]book.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows, currency)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (s *Store) GetInvoice(ctx context.Context, administrationID, invoiceID uuid.UUID) (book.Invoice, error) {
	currency, err := s.currencyOf(ctx, administrationID)
	if err != nil {
		return book.Invoice{}, err
	}
	row := s.pool.QueryRow(ctx, `
        select id, administration_id, party_id, amount_minor, date, description
        from invoices
        where id = $1 and administration_id = $2
    `, invoiceID, administrationID)
	inv, err := scanInvoice(row, currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return book.Invoice{}, errs.ErrNotFound
	}
	if err != nil {
		return book.Invoice{}, err
	}
	return inv, nil
}

func (s *Store) InvoicesByIDs(ctx context.Context, administrationID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]book.Invoice, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]book.Invoice{}, nil
	}
	currency, err := s.currencyOf(ctx, administrationID)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
        select id, administration_id, party_id, amount_minor, date, description
        from invoices
        where administration_id = $1 and id = any($2)
    `, administrationID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[uuid.UUID]book.Invoice)
	for rows.Next() {
		inv, err := scanInvoice(rows, currency)
		if err != nil {
			return nil, err
		}
		out[inv.ID] = inv
	}
	return out, rows.Err()
}

func scanInvoice(row pgx.Row, currency string) (book.Invoice, error) {
	var inv book.Invoice
	var minor int64
	if err := row.Scan(&inv.ID, &inv.AdministrationID, &inv.PartyID, &minor, &inv.Date, &inv.Description); err != nil {
		return book.Invoice{}, err
	}
	amt, err := money.NewAmountFromMinorUnits(currency, minor)
	if err != nil {
		return book.Invoice{}, err
	}
	inv.Amount = amt
	return inv, nil
}

func (s *Store) CreatePayment(ctx context.Context, administrationID uuid.UUID, p book.Payment) (book.Payment, error) {
	// The invoice must belong to the administration.
	if _, err := s.GetInvoice(ctx, administrationID, p.InvoiceID); err != nil {
		return book.Payment{}, err
	}
	minor, _ := p.Amount.MinorUnits()
	_, err := s.pool.Exec(ctx, `
        insert into payments (id, invoice_id, amount_minor, date, description)
        values ($1,$2,$3,$4,$5)
    `, p.ID, p.InvoiceID, minor, p.Date, p.Description)
	if err != nil {
		return book.Payment{}, err
	}
	return p, nil
}

func (s *Store) PaymentsByInvoice(ctx context.Context, administrationID uuid.UUID) (map[uuid.UUID][]book.Payment, error) {
	currency, err := s.currencyOf(ctx, administrationID)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
        select p.id, p.invoice_id, p.amount_minor, p.date, p.description
        from payments p
        join invoices i on i.id = p.invoice_id
        where i.administration_id = $1
        order by p.date asc, p.id asc
    `, administrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[uuid.UUID][]book.Payment)
	for rows.Next() {
		var p book.Payment
		var minor int64
		if err := rows.Scan(&p.ID, &p.InvoiceID, &minor, &p.Date, &p.Description); err != nil {
			return nil, err
		}
		amt, err := money.NewAmountFromMinorUnits(currency, minor)
		if err != nil {
			return nil, err
		}
		p.Amount = amt
		out[p.InvoiceID] = append(out[p.InvoiceID], p)
	}
	return out, rows.Err()
}

func (s *Store) currencyOf(ctx context.Context, administrationID uuid.UUID) (string, error) {
	var currency string
	err := s.pool.QueryRow(ctx, `
        select currency from administrations where id = $1
    `, administrationID).Scan(&currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", errs.ErrNotFound
	}
	return currency, err
}
