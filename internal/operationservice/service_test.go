package operationservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
)

func randomAccount(statement ...domain.Operation) domain.Account {
	if statement == nil {
		statement = []domain.Operation{}
	}

	return domain.Account{
		ID:        uuid.New(),
		TaxID:     randompkg.TaxID(),
		Name:      randompkg.Name(),
		Statement: statement,
	}
}

func newTestService(repo Repo, loc *time.Location, now time.Time) *Service {
	s := New(repo, loc)
	s.now = func() time.Time { return now }

	return s
}

func TestStatement(t *testing.T) {
	ops := []domain.Operation{
		{Type: domain.Credit, Amount: decimal.NewFromInt(100), CreatedAt: time.Now()},
		{Type: domain.Debit, Amount: decimal.NewFromInt(40), CreatedAt: time.Now()},
	}
	testAccount := randomAccount(ops...)

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo)
		checkResponse func(res []domain.Operation, err error)
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(testAccount.TaxID)).
					Times(1).
					Return(testAccount, nil)
			},
			checkResponse: func(res []domain.Operation, err error) {
				require.NoError(t, err)
				require.Equal(t, ops, res)
			},
		},
		{
			name: "ErrAccountNotFound",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(testAccount.TaxID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(res []domain.Operation, err error) {
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
				require.Nil(t, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			s := New(repo, time.UTC)
			res, err := s.Statement(context.Background(), testAccount.TaxID)
			tc.checkResponse(res, err)
		})
	}
}

func TestStatementByDate(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	day1a := domain.Operation{Type: domain.Credit, Amount: decimal.NewFromInt(100), CreatedAt: time.Date(2024, 1, 1, 8, 0, 0, 0, loc)}
	day2 := domain.Operation{Type: domain.Credit, Amount: decimal.NewFromInt(50), CreatedAt: time.Date(2024, 1, 2, 8, 0, 0, 0, loc)}
	day1b := domain.Operation{Type: domain.Debit, Amount: decimal.NewFromInt(30), CreatedAt: time.Date(2024, 1, 1, 20, 0, 0, 0, loc)}
	testAccount := randomAccount(day1a, day2, day1b)

	testCases := []struct {
		name          string
		date          string
		buildStubs    func(repo *MockRepo)
		checkResponse func(res []domain.Operation, err error)
	}{
		{
			name: "FirstDay",
			date: "2024-01-01",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(testAccount.TaxID)).
					Times(1).
					Return(testAccount, nil)
			},
			checkResponse: func(res []domain.Operation, err error) {
				require.NoError(t, err)
				require.Equal(t, []domain.Operation{day1a, day1b}, res)
			},
		},
		{
			name: "SecondDay",
			date: "2024-01-02",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(testAccount.TaxID)).
					Times(1).
					Return(testAccount, nil)
			},
			checkResponse: func(res []domain.Operation, err error) {
				require.NoError(t, err)
				require.Equal(t, []domain.Operation{day2}, res)
			},
		},
		{
			name: "EmptyDay",
			date: "2023-12-31",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(testAccount.TaxID)).
					Times(1).
					Return(testAccount, nil)
			},
			checkResponse: func(res []domain.Operation, err error) {
				require.NoError(t, err)
				require.NotNil(t, res)
				require.Empty(t, res)
			},
		},
		{
			name: "ErrInvalidDate",
			date: "2024-13-45",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res []domain.Operation, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidDate)
				require.Nil(t, res)
			},
		},
		{
			name: "ErrInvalidDateFormat",
			date: "01/01/2024",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res []domain.Operation, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidDate)
			},
		},
		{
			name: "ErrAccountNotFound",
			date: "2024-01-01",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(testAccount.TaxID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(res []domain.Operation, err error) {
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			s := New(repo, loc)
			res, err := s.StatementByDate(context.Background(), testAccount.TaxID, tc.date)
			tc.checkResponse(res, err)
		})
	}
}

func TestDeposit(t *testing.T) {
	testAccount := randomAccount()
	now := time.Now()
	amount := decimal.NewFromInt(100)
	description := "salary"

	wantOp := domain.Operation{
		Type:        domain.Credit,
		Amount:      amount,
		Description: description,
		CreatedAt:   now,
	}

	testCases := []struct {
		name          string
		amount        decimal.Decimal
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.Operation, err error)
	}{
		{
			name:   "OK",
			amount: amount,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					AddOperation(gomock.Any(), gomock.Eq(testAccount.TaxID), gomock.Eq(wantOp)).
					Times(1).
					Return(wantOp, nil)
			},
			checkResponse: func(res domain.Operation, err error) {
				require.NoError(t, err)
				require.Equal(t, wantOp, res)
			},
		},
		{
			name:   "ZeroAmount",
			amount: decimal.Zero,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().AddOperation(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Operation, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
				require.Empty(t, res)
			},
		},
		{
			name:   "NegativeAmount",
			amount: decimal.NewFromInt(-10),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().AddOperation(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Operation, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name:   "ErrAccountNotFound",
			amount: amount,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					AddOperation(gomock.Any(), gomock.Eq(testAccount.TaxID), gomock.Any()).
					Times(1).
					Return(domain.Operation{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(res domain.Operation, err error) {
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
			},
		},
		{
			name:   "HugeExponent",
			amount: decimal.New(1, 200000000),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().AddOperation(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Operation, err error) {
				require.ErrorIs(t, err, domain.ErrAmountOutOfRange)
			},
		},
		{
			name:   "TooManyDecimalPlaces",
			amount: decimal.RequireFromString("10.001"),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().AddOperation(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Operation, err error) {
				require.ErrorIs(t, err, domain.ErrAmountOutOfRange)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			s := newTestService(repo, time.UTC, now)
			res, err := s.Deposit(context.Background(), testAccount.TaxID, tc.amount, description)
			tc.checkResponse(res, err)
		})
	}
}

func TestWithdraw(t *testing.T) {
	testAccount := randomAccount()
	now := time.Now()
	amount := decimal.NewFromInt(40)

	wantOp := domain.Operation{
		Type:      domain.Debit,
		Amount:    amount,
		CreatedAt: now,
	}

	testCases := []struct {
		name          string
		amount        decimal.Decimal
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.Operation, err error)
	}{
		{
			name:   "OK",
			amount: amount,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					AddOperation(gomock.Any(), gomock.Eq(testAccount.TaxID), gomock.Eq(wantOp)).
					Times(1).
					Return(wantOp, nil)
			},
			checkResponse: func(res domain.Operation, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.Debit, res.Type)
			},
		},
		{
			name:   "ErrInsufficientFunds",
			amount: amount,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					AddOperation(gomock.Any(), gomock.Eq(testAccount.TaxID), gomock.Eq(wantOp)).
					Times(1).
					Return(domain.Operation{}, domain.ErrInsufficientFunds)
			},
			checkResponse: func(res domain.Operation, err error) {
				require.ErrorIs(t, err, domain.ErrInsufficientFunds)
				require.Empty(t, res)
			},
		},
		{
			name:   "NegativeAmount",
			amount: decimal.NewFromInt(-1),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().AddOperation(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Operation, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name:   "ErrInternal",
			amount: amount,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					AddOperation(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Operation{}, errorspkg.ErrInternal)
			},
			checkResponse: func(res domain.Operation, err error) {
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			s := newTestService(repo, time.UTC, now)
			res, err := s.Withdraw(context.Background(), testAccount.TaxID, tc.amount, "")
			tc.checkResponse(res, err)
		})
	}
}

func TestBalance(t *testing.T) {
	testAccount := randomAccount(
		domain.Operation{Type: domain.Credit, Amount: decimal.NewFromInt(100)},
		domain.Operation{Type: domain.Debit, Amount: decimal.NewFromInt(40)},
	)

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo)
		checkResponse func(res decimal.Decimal, err error)
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(testAccount.TaxID)).
					Times(1).
					Return(testAccount, nil)
			},
			checkResponse: func(res decimal.Decimal, err error) {
				require.NoError(t, err)
				require.True(t, res.Equal(decimal.NewFromInt(60)), "balance = %v, want 60", res)
			},
		},
		{
			name: "ErrAccountNotFound",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(testAccount.TaxID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(res decimal.Decimal, err error) {
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
				require.True(t, res.IsZero())
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			s := New(repo, time.UTC)
			res, err := s.Balance(context.Background(), testAccount.TaxID)
			tc.checkResponse(res, err)
		})
	}
}
