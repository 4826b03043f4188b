// Package party manages the counterparties of an administration. Party
// names are display data only; no computation depends on them.
package party

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/errs"
)

type Repo interface {
	ListParties(ctx context.Context, administrationID uuid.UUID) ([]book.Party, error)
	GetParty(ctx context.Context, administrationID, partyID uuid.UUID) (book.Party, error)
}

type Writer interface {
	CreateParty(ctx context.Context, p book.Party) (book.Party, error)
}

type Service interface {
	Create(ctx context.Context, p book.Party) (book.Party, error)
	List(ctx context.Context, administrationID uuid.UUID) ([]book.Party, error)
	Get(ctx context.Context, administrationID, partyID uuid.UUID) (book.Party, error)
}

type service struct {
	repo   Repo
	writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func (s *service) Create(ctx context.Context, p book.Party) (book.Party, error) {
	if p.AdministrationID == uuid.Nil {
		return book.Party{}, errs.ErrInvalid
	}
	if p.Name == "" {
		return book.Party{}, errors.New("name is required")
	}
	p.ID = uuid.New()
	return s.writer.CreateParty(ctx, p)
}

func (s *service) List(ctx context.Context, administrationID uuid.UUID) ([]book.Party, error) {
	if administrationID == uuid.Nil {
		return nil, errs.ErrInvalid
	}
	return s.repo.ListParties(ctx, administrationID)
}

func (s *service) Get(ctx context.Context, administrationID, partyID uuid.UUID) (book.Party, error) {
	if administrationID == uuid.Nil || partyID == uuid.Nil {
		return book.Party{}, errs.ErrInvalid
	}
	return s.repo.GetParty(ctx, administrationID, partyID)
}
