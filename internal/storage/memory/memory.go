package memory

// Package memory provides a simple in-memory implementation used for
// development and tests. It keeps code paths easy to follow while allowing
// us to plug in a real DB later.
import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/errs"
)

// entryKey tracks ordering for entries per administration: sorted asc by
// (Date, Seq). Seq is a per-store insertion counter, so same-day entries
// keep the order in which they were appended.
type entryKey struct {
	Date time.Time
	Seq  uint64
	ID   uuid.UUID
}

// Store is an in-memory implementation of the repositories and writers used
// by the services. It is guarded by an RWMutex for concurrent reads/writes.
type Store struct {
	mu      sync.RWMutex
	admins  map[uuid.UUID]book.Administration
	parties map[uuid.UUID]book.Party
	// accounts by administration, keyed by code
	accounts map[uuid.UUID]map[string]book.Account
	entries  map[uuid.UUID]*book.JournalEntry
	// Per-administration sorted index of entries for ordered scans
	entryKeysByAdmin map[uuid.UUID][]entryKey
	seq              uint64
	invoices         map[uuid.UUID]book.Invoice
	invoiceIDsByAdmin map[uuid.UUID][]uuid.UUID
	// payments grouped by invoice id, kept sorted by date
	payments map[uuid.UUID][]book.Payment
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		admins:            make(map[uuid.UUID]book.Administration),
		parties:           make(map[uuid.UUID]book.Party),
		accounts:          make(map[uuid.UUID]map[string]book.Account),
		entries:           make(map[uuid.UUID]*book.JournalEntry),
		entryKeysByAdmin:  make(map[uuid.UUID][]entryKey),
		invoices:          make(map[uuid.UUID]book.Invoice),
		invoiceIDsByAdmin: make(map[uuid.UUID][]uuid.UUID),
		payments:          make(map[uuid.UUID][]book.Payment),
	}
}

// Reset clears all data; used between tests.
func (s *Store) Reset() {
	s.mu.Lock()
	s.admins = map[uuid.UUID]book.Administration{}
	s.parties = map[uuid.UUID]book.Party{}
	s.accounts = map[uuid.UUID]map[string]book.Account{}
	s.entries = map[uuid.UUID]*book.JournalEntry{}
	s.entryKeysByAdmin = map[uuid.UUID][]entryKey{}
	s.invoices = map[uuid.UUID]book.Invoice{}
	s.invoiceIDsByAdmin = map[uuid.UUID][]uuid.UUID{}
	s.payments = map[uuid.UUID][]book.Payment{}
	s.seq = 0
	s.mu.Unlock()
}

// CreateAdministration persists a new administration.
func (s *Store) CreateAdministration(_ context.Context, a book.Administration) (book.Administration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[a.ID] = a
	return a, nil
}

// GetAdministration returns an administration by id.
func (s *Store) GetAdministration(_ context.Context, administrationID uuid.UUID) (book.Administration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.admins[administrationID]
	if !ok {
		return book.Administration{}, errs.ErrNotFound
	}
	return a, nil
}

// CreateAccount persists a new account in the administration's chart.
func (s *Store) CreateAccount(_ context.Context, a book.Account) (book.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.accounts[a.AdministrationID]
	if !ok {
		m = make(map[string]book.Account)
		s.accounts[a.AdministrationID] = m
	}
	if _, exists := m[a.Code]; exists {
		return book.Account{}, errs.ErrConflict
	}
	m[a.Code] = a
	return a, nil
}

// ListAccounts returns the chart of accounts sorted by code.
func (s *Store) ListAccounts(_ context.Context, administrationID uuid.UUID) ([]book.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m := s.accounts[administrationID]
	out := make([]book.Account, 0, len(m))
	for _, a := range m {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// GetAccount returns one account by code.
func (s *Store) GetAccount(_ context.Context, administrationID uuid.UUID, accountCode string) (book.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[administrationID][accountCode]
	if !ok {
		return book.Account{}, errs.ErrNotFound
	}
	return a, nil
}

// CreateParty persists a new party.
func (s *Store) CreateParty(_ context.Context, p book.Party) (book.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parties[p.ID] = p
	return p, nil
}

// ListParties returns the administration's parties sorted by id.
func (s *Store) ListParties(_ context.Context, administrationID uuid.UUID) ([]book.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]book.Party, 0)
	for _, p := range s.parties {
		if p.AdministrationID == administrationID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

// GetParty returns a party by id.
func (s *Store) GetParty(_ context.Context, administrationID, partyID uuid.UUID) (book.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.parties[partyID]
	if !ok || p.AdministrationID != administrationID {
		return book.Party{}, errs.ErrNotFound
	}
	return p, nil
}

// CreateJournalEntry appends an entry to the log.
func (s *Store) CreateJournalEntry(_ context.Context, entry book.JournalEntry) (book.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// store shallow copy
	e := entry
	s.seq++
	s.entries[e.ID] = &e
	s.insertEntryIndexLocked(e.AdministrationID, entryKey{Date: e.Date, Seq: s.seq, ID: e.ID})
	return e, nil
}

// DeleteJournalEntry removes an entry and its index key. Corrections are
// delete plus re-add.
func (s *Store) DeleteJournalEntry(_ context.Context, administrationID, entryID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[entryID]
	if !ok || e.AdministrationID != administrationID {
		return errs.ErrNotFound
	}
	delete(s.entries, entryID)
	keys := s.entryKeysByAdmin[administrationID]
	for i, k := range keys {
		if k.ID == entryID {
			s.entryKeysByAdmin[administrationID] = append(keys[:i], keys[i+1:]...)
			break
		}
	}
	return nil
}

// ListEntries returns all entries ordered by (date, insertion order).
func (s *Store) ListEntries(_ context.Context, administrationID uuid.UUID) ([]book.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := s.entryKeysByAdmin[administrationID]
	out := make([]book.JournalEntry, 0, len(keys))
	for _, k := range keys {
		if e, ok := s.entries[k.ID]; ok && e.AdministrationID == administrationID {
			out = append(out, *e)
		}
	}
	return out, nil
}

// GetEntry returns a single entry.
func (s *Store) GetEntry(_ context.Context, administrationID, entryID uuid.UUID) (book.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[entryID]
	if !ok || e.AdministrationID != administrationID {
		return book.JournalEntry{}, errs.ErrNotFound
	}
	return *e, nil
}

// CreateInvoice persists a new invoice.
func (s *Store) CreateInvoice(_ context.Context, inv book.Invoice) (book.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices[inv.ID] = inv
	s.invoiceIDsByAdmin[inv.AdministrationID] = append(s.invoiceIDsByAdmin[inv.AdministrationID], inv.ID)
	return inv, nil
}

// ListInvoices returns the administration's invoices in insertion order.
func (s *Store) ListInvoices(_ context.Context, administrationID uuid.UUID) ([]book.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.invoiceIDsByAdmin[administrationID]
	out := make([]book.Invoice, 0, len(ids))
	for _, id := range ids {
		if inv, ok := s.invoices[id]; ok {
			out = append(out, inv)
		}
	}
	return out, nil
}

// GetInvoice returns an invoice by id.
func (s *Store) GetInvoice(_ context.Context, administrationID, invoiceID uuid.UUID) (book.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invoices[invoiceID]
	if !ok || inv.AdministrationID != administrationID {
		return book.Invoice{}, errs.ErrNotFound
	}
	return inv, nil
}

// InvoicesByIDs returns the administration's invoices filtered by id.
func (s *Store) InvoicesByIDs(_ context.Context, administrationID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]book.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[uuid.UUID]book.Invoice, len(ids))
	for _, id := range ids {
		if inv, ok := s.invoices[id]; ok && inv.AdministrationID == administrationID {
			out[id] = inv
		}
	}
	return out, nil
}

// CreatePayment appends a payment to its invoice, keeping the group sorted
// by date.
func (s *Store) CreatePayment(_ context.Context, administrationID uuid.UUID, p book.Payment) (book.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[p.InvoiceID]
	if !ok || inv.AdministrationID != administrationID {
		return book.Payment{}, errs.ErrNotFound
	}
	group := append(s.payments[p.InvoiceID], p)
	sort.SliceStable(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })
	s.payments[p.InvoiceID] = group
	return p, nil
}

// PaymentsByInvoice returns all payments of the administration grouped by
// invoice, each group ordered by date.
func (s *Store) PaymentsByInvoice(_ context.Context, administrationID uuid.UUID) (map[uuid.UUID][]book.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[uuid.UUID][]book.Payment)
	for invID, group := range s.payments {
		inv, ok := s.invoices[invID]
		if !ok || inv.AdministrationID != administrationID {
			continue
		}
		cp := make([]book.Payment, len(group))
		copy(cp, group)
		out[invID] = cp
	}
	return out, nil
}

// insertEntryIndexLocked inserts k into the per-administration sorted index,
// keeping order asc by (Date, Seq). Caller must hold s.mu (write lock).
func (s *Store) insertEntryIndexLocked(administrationID uuid.UUID, k entryKey) {
	keys := s.entryKeysByAdmin[administrationID]
	// binary search for first position > k (stable insert after equal dates)
	i := sort.Search(len(keys), func(i int) bool {
		if keys[i].Date.After(k.Date) {
			return true
		}
		if keys[i].Date.Equal(k.Date) {
			return keys[i].Seq > k.Seq
		}
		return false
	})
	if i == len(keys) {
		s.entryKeysByAdmin[administrationID] = append(keys, k)
		return
	}
	keys = append(keys, entryKey{})
	copy(keys[i+1:], keys[i:])
	keys[i] = k
	s.entryKeysByAdmin[administrationID] = keys
}
