// Package operationservice manages business logic layer of statement operations.
package operationservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// DateLayout is the accepted format of statement dates.
const DateLayout = "2006-01-02"

// Repo provides data access layer interface needed by operation service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package operationservice
type Repo interface {
	Get(ctx context.Context, taxID string) (domain.Account, error)
	AddOperation(ctx context.Context, taxID string, op domain.Operation) (domain.Operation, error)
}

// Service facilitates operation service layer logic.
type Service struct {
	repo Repo
	loc  *time.Location
	now  func() time.Time
}

// New returns operation service. Statement dates are split in loc.
func New(or Repo, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}

	return &Service{
		repo: or,
		loc:  loc,
		now:  time.Now,
	}
}

// Statement returns all operations of the account in insertion order.
func (s *Service) Statement(ctx context.Context, taxID string) ([]domain.Operation, error) {
	account, err := s.repo.Get(ctx, taxID)
	if err != nil {
		return nil, err
	}

	return account.Statement, nil
}

// StatementByDate returns operations of the account created on the given YYYY-MM-DD date.
func (s *Service) StatementByDate(ctx context.Context, taxID, date string) ([]domain.Operation, error) {
	l := zerolog.Ctx(ctx)

	day, err := time.ParseInLocation(DateLayout, date, s.loc)
	if err != nil {
		l.Info().Err(err).Send()
		return nil, domain.ErrInvalidDate
	}

	account, err := s.repo.Get(ctx, taxID)
	if err != nil {
		return nil, err
	}

	return domain.OnDate(account.Statement, day, s.loc), nil
}

func (s *Service) add(ctx context.Context, taxID string, typ domain.OperationType, amount decimal.Decimal, description string) (domain.Operation, error) {
	l := zerolog.Ctx(ctx)

	if err := domain.CheckAmount(amount); err != nil {
		l.Info().Int32("exponent", amount.Exponent()).Err(err).Send()
		return domain.Operation{}, err
	}

	op := domain.Operation{
		Type:        typ,
		Amount:      amount,
		Description: description,
		CreatedAt:   s.now(),
	}

	created, err := s.repo.AddOperation(ctx, taxID, op)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Operation{}, err
	}

	return created, nil
}

// Deposit records a credit of amount on the account.
func (s *Service) Deposit(ctx context.Context, taxID string, amount decimal.Decimal, description string) (domain.Operation, error) {
	return s.add(ctx, taxID, domain.Credit, amount, description)
}

// Withdraw records a debit of amount on the account.
//
// It fails with domain.ErrInsufficientFunds if amount exceeds the current balance.
func (s *Service) Withdraw(ctx context.Context, taxID string, amount decimal.Decimal, description string) (domain.Operation, error) {
	return s.add(ctx, taxID, domain.Debit, amount, description)
}

// Balance returns the current balance of the account.
func (s *Service) Balance(ctx context.Context, taxID string) (decimal.Decimal, error) {
	account, err := s.repo.Get(ctx, taxID)
	if err != nil {
		return decimal.Zero, err
	}

	return domain.Balance(account.Statement), nil
}
