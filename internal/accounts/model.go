// Package accounts implements the credential store the journal core
// collaborates with: one row per user holding the salted password hash the
// encryption key is derived from.
package accounts

// Account is a single credential record. PasswordHash is the hex-encoded
// SHA-256 of password+salt; Salt is a random hex string unique per account
// and must never be reused.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	Salt         string
}

// Credentials is the (password_hash, salt) pair the keyring consumes.
type Credentials struct {
	PasswordHash string
	Salt         string
}
