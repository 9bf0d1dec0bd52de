// Package keyring derives per-user symmetric keys and performs authenticated
// encryption of journal entry content.
//
// The key is derived from the account's stored password hash and salt, not
// from the raw password. That is intentional, preserved behaviour: a user's
// existing entries must remain decryptable after every login, and the hash is
// the only secret material the application retains. Anyone able to read both
// password_hash and salt from the account store can therefore derive the key.
package keyring

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// Iterations is the PBKDF2 round count. Changing it orphans every
	// previously written vault, so treat it as part of the on-disk format.
	Iterations = 100_000

	// KeySize is the derived key length in bytes (AES-256).
	KeySize = 32
)

// Key is a derived symmetric key. It is held only transiently in memory;
// it must never be persisted, serialized or logged.
type Key []byte

// String redacts the key so accidental %v/%s formatting leaks nothing.
func (Key) String() string { return "[redacted]" }

// DeriveKey stretches the account's (password_hash, salt) pair into a
// 32-byte AES key using PBKDF2-SHA256. It is a pure function: identical
// inputs always yield the identical key.
func DeriveKey(passwordHash, salt string) Key {
	return pbkdf2.Key([]byte(passwordHash), []byte(salt), Iterations, KeySize, sha256.New)
}
