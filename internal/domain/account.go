// Package domain provides defenitions of all entities.
package domain

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrAccountNotFound indicates that no account is registered for the given tax ID.
	ErrAccountNotFound = errors.New("account not found")
	// ErrTaxIDAlreadyExists indicates that an account with the given tax ID already exists.
	ErrTaxIDAlreadyExists = errors.New("account already exists")
)

// Account holds customer data and the ordered statement of its operations.
type Account struct {
	ID        uuid.UUID   `json:"id"`
	TaxID     string      `json:"taxId"`
	Name      string      `json:"name"`
	Statement []Operation `json:"statement"`
}
