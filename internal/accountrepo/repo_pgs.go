package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic on top of Postgres.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns RepoPGS bound to an already open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

// withTx runs fn inside a transaction unless the repo is already bound to one.
func (r *RepoPGS) withTx(ctx context.Context, fn func(tr *RepoPGS) error) error {
	l := zerolog.Ctx(ctx)

	if r.conn == nil {
		return fn(r)
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	if err := fn(NewTxRepoPGS(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

const createQuery = `
INSERT INTO
    accounts (id, tax_id, name)
VALUES
    ($1, $2, $3)
RETURNING id, tax_id, name
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, account.ID, account.TaxID, account.Name)

	a := domain.Account{Statement: []domain.Operation{}}

	err := row.Scan(
		&a.ID,
		&a.TaxID,
		&a.Name,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_tax_id_key" {
				return domain.Account{}, domain.ErrTaxIDAlreadyExists
			}
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, tax_id, name
FROM accounts
WHERE tax_id = $1
`

const getForUpdateQuery = getQuery + `FOR UPDATE`

const listOperationsQuery = `
SELECT
	type, amount, description, created_at
FROM operations
WHERE account_id = $1
ORDER BY id
`

func (r *RepoPGS) getAccount(ctx context.Context, query, taxID string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, query, taxID)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.TaxID,
		&a.Name,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

func (r *RepoPGS) listOperations(ctx context.Context, a *domain.Account) error {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listOperationsQuery, a.ID)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Operation{}

	for rows.Next() {
		var op domain.Operation
		if err := rows.Scan(&op.Type, &op.Amount, &op.Description, &op.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return errorspkg.ErrInternal
		}

		items = append(items, op)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	a.Statement = items

	return nil
}

// Get returns the account with the given tax ID and its statement.
func (r *RepoPGS) Get(ctx context.Context, taxID string) (domain.Account, error) {
	var a domain.Account

	err := r.withTx(ctx, func(tr *RepoPGS) error {
		var err error

		a, err = tr.getAccount(ctx, getQuery, taxID)
		if err != nil {
			return err
		}

		return tr.listOperations(ctx, &a)
	})

	if err != nil {
		return domain.Account{}, err
	}

	return a, nil
}

const updateNameQuery = `
UPDATE accounts
SET name = $1
WHERE tax_id = $2
RETURNING id
`

// UpdateName renames the account and returns it.
func (r *RepoPGS) UpdateName(ctx context.Context, taxID, name string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var a domain.Account

	err := r.withTx(ctx, func(tr *RepoPGS) error {
		var id []byte

		err := tr.db.QueryRowContext(ctx, updateNameQuery, name, taxID).Scan(&id)
		if err != nil {
			if err == sql.ErrNoRows {
				return domain.ErrAccountNotFound
			}

			l.Error().Err(err).Send()

			return errorspkg.ErrInternal
		}

		a, err = tr.getAccount(ctx, getQuery, taxID)
		if err != nil {
			return err
		}

		return tr.listOperations(ctx, &a)
	})

	if err != nil {
		return domain.Account{}, err
	}

	return a, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE id = $1
`

// Delete removes the account with the given tax ID and returns the removed record.
//
// Operations are removed by the ON DELETE CASCADE of operations.account_id.
func (r *RepoPGS) Delete(ctx context.Context, taxID string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var a domain.Account

	err := r.withTx(ctx, func(tr *RepoPGS) error {
		var err error

		a, err = tr.getAccount(ctx, getForUpdateQuery, taxID)
		if err != nil {
			return err
		}

		if err = tr.listOperations(ctx, &a); err != nil {
			return err
		}

		if _, err = tr.db.ExecContext(ctx, deleteQuery, a.ID); err != nil {
			l.Error().Err(err).Send()
			return errorspkg.ErrInternal
		}

		return nil
	})

	if err != nil {
		return domain.Account{}, err
	}

	return a, nil
}

const balanceQuery = `
SELECT
	COALESCE(SUM(CASE WHEN type = 'credit' THEN amount ELSE -amount END), 0)
FROM operations
WHERE account_id = $1
`

const addOperationQuery = `
INSERT INTO
    operations (account_id, type, amount, description, created_at)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING type, amount, description, created_at
`

// AddOperation appends op to the account statement.
//
// The account row stays locked until commit, so a debit's balance check and
// insert cannot interleave with another operation on the same account.
func (r *RepoPGS) AddOperation(ctx context.Context, taxID string, op domain.Operation) (domain.Operation, error) {
	l := zerolog.Ctx(ctx)

	var created domain.Operation

	err := r.withTx(ctx, func(tr *RepoPGS) error {
		a, err := tr.getAccount(ctx, getForUpdateQuery, taxID)
		if err != nil {
			return err
		}

		if op.Type == domain.Debit {
			var balance decimal.Decimal
			if err := tr.db.QueryRowContext(ctx, balanceQuery, a.ID).Scan(&balance); err != nil {
				l.Error().Err(err).Send()
				return errorspkg.ErrInternal
			}

			if balance.LessThan(op.Amount) {
				return domain.ErrInsufficientFunds
			}
		}

		row := tr.db.QueryRowContext(ctx, addOperationQuery, a.ID, op.Type, op.Amount, op.Description, op.CreatedAt)

		err = row.Scan(
			&created.Type,
			&created.Amount,
			&created.Description,
			&created.CreatedAt,
		)
		if err != nil {
			l.Error().Err(err).Send()
			return errorspkg.ErrInternal
		}

		return nil
	})

	if err != nil {
		return domain.Operation{}, err
	}

	return created, nil
}
