package accounts

import "context"

// Repository describes storage operations for Account records.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// Create inserts a new account. Returns common.ErrAlreadyExists when the
	// username is taken.
	Create(ctx context.Context, a *Account) error

	// GetByUsername returns the account for username, or common.ErrAccountNotFound.
	GetByUsername(ctx context.Context, username string) (*Account, error)

	// UpdateCredentials replaces the password hash and salt for username.
	// Returns common.ErrAccountNotFound when no row matches.
	UpdateCredentials(ctx context.Context, username, passwordHash, salt string) error
}
