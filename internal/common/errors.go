// Package common contains shared sentinel errors and small helpers used
// across QuietQuill components. Callers should use errors.Is to match the
// sentinel values.
package common

import "errors"

var (
	// Account store errors.
	ErrAccountNotFound = errors.New("account not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrUnauthorized    = errors.New("unauthorized")

	// Crypto errors. ErrAuthenticationFailed means a wrong key or tampered
	// ciphertext; it is never retried and never swallowed.
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUnsupportedFormat    = errors.New("unsupported ciphertext format")

	// Journal errors.
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrCorruptMetadata = errors.New("corrupt metadata")
)
