package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts and balances travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

var (
	// ErrInsufficientFunds indicates that the withdrawal exceeds the account balance.
	ErrInsufficientFunds = errors.New("Insufficient funds!")
	// ErrInvalidAmount indicates a non-positive operation amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrAmountOutOfRange indicates an amount with too many decimal places or integer digits.
	ErrAmountOutOfRange = errors.New("amount must have at most 2 decimal places and 15 integer digits")
	// ErrInvalidDate indicates a date that is not in the YYYY-MM-DD format.
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
)

// Limits of a single operation amount.
const (
	MaxAmountScale  = 2
	MaxAmountDigits = 15
)

// CheckAmount returns an error unless amount is positive and within the amount limits.
//
// Only the coefficient and exponent are inspected, so huge exponents are rejected
// without being expanded.
func CheckAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	exp := amount.Exponent()
	if exp < -MaxAmountScale || exp > MaxAmountDigits {
		return ErrAmountOutOfRange
	}

	if len(amount.Coefficient().String())+int(exp) > MaxAmountDigits {
		return ErrAmountOutOfRange
	}

	return nil
}

// OperationType tells whether an operation adds money to or takes money from an account.
type OperationType string

// Supported operation types.
const (
	Credit OperationType = "credit"
	Debit  OperationType = "debit"
)

// Operation holds a single balance change recorded in an account statement.
type Operation struct {
	Type        OperationType   `json:"type"`
	Amount      decimal.Decimal `json:"amount"` // always positive
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Balance folds the statement into the current balance.
func Balance(statement []Operation) decimal.Decimal {
	balance := decimal.Zero

	for _, op := range statement {
		switch op.Type {
		case Credit:
			balance = balance.Add(op.Amount)
		case Debit:
			balance = balance.Sub(op.Amount)
		}
	}

	return balance
}

// OnDate returns operations created on the calendar date of day in loc, keeping their order.
func OnDate(statement []Operation, day time.Time, loc *time.Location) []Operation {
	y, m, d := day.Date()

	ops := []Operation{}

	for _, op := range statement {
		oy, om, od := op.CreatedAt.In(loc).Date()
		if oy == y && om == m && od == d {
			ops = append(ops, op)
		}
	}

	return ops
}
