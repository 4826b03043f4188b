// Package account implements chart-of-accounts rules: validated kinds,
// normalized unique codes per administration, and default chart seeding.
package account

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/chart"
	"github.com/finrep/bookkeeper/internal/code"
	"github.com/finrep/bookkeeper/internal/errs"
)

type Repo interface {
	ListAccounts(ctx context.Context, administrationID uuid.UUID) ([]book.Account, error)
	GetAccount(ctx context.Context, administrationID uuid.UUID, accountCode string) (book.Account, error)
}

type Writer interface {
	CreateAccount(ctx context.Context, a book.Account) (book.Account, error)
}

type Service interface {
	ValidateCreate(a book.Account) error
	Create(ctx context.Context, a book.Account) (book.Account, error)
	List(ctx context.Context, administrationID uuid.UUID) ([]book.Account, error)
	Get(ctx context.Context, administrationID uuid.UUID, accountCode string) (book.Account, error)
	// SeedDefaultChart creates the curated default chart for a fresh
	// administration. Codes that already exist are left untouched.
	SeedDefaultChart(ctx context.Context, administrationID uuid.UUID) ([]book.Account, error)
}

type service struct {
	repo   Repo
	writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

// ErrCodeExists indicates an account with the same code already exists in
// the administration.
var ErrCodeExists = errors.New("account code already exists")

func (s *service) ValidateCreate(a book.Account) error {
	if a.AdministrationID == uuid.Nil {
		return errs.ErrInvalid
	}
	if a.Name == "" {
		return errors.New("name is required")
	}
	if !code.IsCode(code.Normalize(a.Code)) {
		return errors.New("invalid account code")
	}
	if !a.Kind.Valid() {
		return errors.New("invalid account kind")
	}
	if a.Metadata != nil {
		if err := a.Metadata.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, a book.Account) (book.Account, error) {
	a.Code = code.Normalize(a.Code)
	if err := s.ValidateCreate(a); err != nil {
		return book.Account{}, err
	}
	existing, err := s.repo.ListAccounts(ctx, a.AdministrationID)
	if err != nil {
		return book.Account{}, err
	}
	for _, other := range existing {
		if strings.EqualFold(other.Code, a.Code) {
			return book.Account{}, ErrCodeExists
		}
	}
	return s.writer.CreateAccount(ctx, a)
}

func (s *service) List(ctx context.Context, administrationID uuid.UUID) ([]book.Account, error) {
	if administrationID == uuid.Nil {
		return nil, errs.ErrInvalid
	}
	return s.repo.ListAccounts(ctx, administrationID)
}

func (s *service) Get(ctx context.Context, administrationID uuid.UUID, accountCode string) (book.Account, error) {
	if administrationID == uuid.Nil {
		return book.Account{}, errs.ErrInvalid
	}
	return s.repo.GetAccount(ctx, administrationID, code.Normalize(accountCode))
}

func (s *service) SeedDefaultChart(ctx context.Context, administrationID uuid.UUID) ([]book.Account, error) {
	if administrationID == uuid.Nil {
		return nil, errs.ErrInvalid
	}
	existing, err := s.repo.ListAccounts(ctx, administrationID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		taken[a.Code] = struct{}{}
	}
	created := make([]book.Account, 0, len(chart.Default()))
	for _, def := range chart.Default() {
		if _, ok := taken[def.Code]; ok {
			continue
		}
		a, err := s.writer.CreateAccount(ctx, book.Account{
			AdministrationID: administrationID,
			Code:             def.Code,
			Name:             def.Name,
			Kind:             def.Kind,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, a)
	}
	return created, nil
}
