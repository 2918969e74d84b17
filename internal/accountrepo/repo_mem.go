// Package accountrepo manages repository layer of accounts and their statements.
package accountrepo

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// handle owns one account. Its mutex scopes every read and write of the account.
type handle struct {
	mu      sync.Mutex
	account domain.Account
	deleted bool
}

// RepoMem keeps accounts in process memory, keyed by tax ID.
//
// mu guards the index only; account state is guarded by the per-account handle,
// so operations on different accounts never wait on each other.
type RepoMem struct {
	mu       sync.RWMutex
	accounts map[string]*handle
}

// NewRepoMem returns an empty RepoMem.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		accounts: make(map[string]*handle),
	}
}

func copyAccount(a domain.Account) domain.Account {
	cp := a
	cp.Statement = make([]domain.Operation, len(a.Statement))
	copy(cp.Statement, a.Statement)

	return cp
}

// lookup returns the locked handle of the account. The caller must unlock it.
func (r *RepoMem) lookup(taxID string) (*handle, error) {
	r.mu.RLock()
	h, ok := r.accounts[taxID]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	h.mu.Lock()

	// Lost a race with Delete.
	if h.deleted {
		h.mu.Unlock()
		return nil, domain.ErrAccountNotFound
	}

	return h, nil
}

// Create stores the account unless its tax ID is already taken.
func (r *RepoMem) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.TaxID]; ok {
		l.Info().Str("tax_id", account.TaxID).Err(domain.ErrTaxIDAlreadyExists).Send()
		return domain.Account{}, domain.ErrTaxIDAlreadyExists
	}

	stored := copyAccount(account)
	r.accounts[account.TaxID] = &handle{account: stored}

	return copyAccount(stored), nil
}

// Get returns a snapshot of the account with the given tax ID.
func (r *RepoMem) Get(ctx context.Context, taxID string) (domain.Account, error) {
	h, err := r.lookup(taxID)
	if err != nil {
		return domain.Account{}, err
	}
	defer h.mu.Unlock()

	return copyAccount(h.account), nil
}

// UpdateName renames the account and returns it.
func (r *RepoMem) UpdateName(ctx context.Context, taxID, name string) (domain.Account, error) {
	h, err := r.lookup(taxID)
	if err != nil {
		return domain.Account{}, err
	}
	defer h.mu.Unlock()

	h.account.Name = name

	return copyAccount(h.account), nil
}

// Delete removes the account with the given tax ID and returns the removed record.
func (r *RepoMem) Delete(ctx context.Context, taxID string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.accounts[taxID]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.deleted = true
	delete(r.accounts, taxID)

	return copyAccount(h.account), nil
}

// AddOperation appends op to the account statement.
//
// For debits the balance check and the append happen under the account lock,
// so concurrent withdrawals cannot overdraw the account.
func (r *RepoMem) AddOperation(ctx context.Context, taxID string, op domain.Operation) (domain.Operation, error) {
	h, err := r.lookup(taxID)
	if err != nil {
		return domain.Operation{}, err
	}
	defer h.mu.Unlock()

	if op.Type == domain.Debit {
		balance := domain.Balance(h.account.Statement)
		if balance.LessThan(op.Amount) {
			return domain.Operation{}, domain.ErrInsufficientFunds
		}
	}

	h.account.Statement = append(h.account.Statement, op)

	return op, nil
}
