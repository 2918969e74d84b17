// Package taxidpkg provides tax ID related functionality for apps.
package taxidpkg

import (
	"github.com/go-playground/validator/v10"
)

// MaxLen is the longest accepted tax ID.
const MaxLen = 32

// IsValid returns true if the tax ID is non-empty and made of digits, letters and
// the usual formatting separators ('.', '-', '/').
func IsValid(taxID string) bool {
	if len(taxID) == 0 || len(taxID) > MaxLen {
		return false
	}

	for _, r := range taxID {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r == '.', r == '-', r == '/':
		default:
			return false
		}
	}

	return true
}

// ValidTaxID validates a tax ID binding field.
var ValidTaxID validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return IsValid(s)
	}

	return false
}
