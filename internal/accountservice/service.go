// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	Get(ctx context.Context, taxID string) (domain.Account, error)
	UpdateName(ctx context.Context, taxID, name string) (domain.Account, error)
	Delete(ctx context.Context, taxID string) (domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create opens an account with an empty statement for the given tax ID.
func (s *Service) Create(ctx context.Context, taxID, name string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	arg := domain.Account{
		ID:        uuid.New(),
		TaxID:     taxID,
		Name:      name,
		Statement: []domain.Operation{},
	}

	account, err := s.repo.Create(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, err
	}

	return account, nil
}

// Get returns the account for the given tax ID.
func (s *Service) Get(ctx context.Context, taxID string) (domain.Account, error) {
	return s.repo.Get(ctx, taxID)
}

// Rename overwrites the name of the account with the given tax ID.
func (s *Service) Rename(ctx context.Context, taxID, name string) (domain.Account, error) {
	return s.repo.UpdateName(ctx, taxID, name)
}

// Delete removes the account with the given tax ID together with its statement.
func (s *Service) Delete(ctx context.Context, taxID string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.repo.Delete(ctx, taxID)
	if err != nil {
		return domain.Account{}, err
	}

	l.Info().Str("account_id", account.ID.String()).Msg("account deleted")

	return account, nil
}
