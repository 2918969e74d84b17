// Package errorspkg provides common app errors.
package errorspkg

import "errors"

var (
	// ErrInternal indicates internal server error.
	ErrInternal = errors.New("internal")
	// ErrInvalidBody indicates a request body that cannot be decoded.
	ErrInvalidBody = errors.New("invalid request body")
)
