package accounts

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/SidddhantJain/QuietQuill/internal/common"
	"github.com/SidddhantJain/QuietQuill/internal/dbx"
	"github.com/SidddhantJain/QuietQuill/internal/keyring"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RekeyFunc re-encrypts a user's journal from oldKey to newKey. It is
// supplied by the journal layer so the account service stays ignorant of the
// on-disk entry layout.
type RekeyFunc func(oldKey, newKey keyring.Key) error

// Service implements account registration, authentication and password
// change over a Repository.
type Service struct {
	repo     Repository
	validate *validator.Validate
	runTx    func(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}

// NewService builds a Service over any Repository. Transactional sections run
// directly against repo; use NewSQLiteService for real transaction boundaries.
func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		runTx: func(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
			return fn(ctx, repo)
		},
	}
}

// NewSQLiteService builds a Service whose transactional sections run inside a
// database transaction, with a fresh repository bound to the tx handle.
func NewSQLiteService(db *sql.DB) *Service {
	s := NewService(NewSQLiteRepository(db))
	s.runTx = func(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
		return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return fn(ctx, NewSQLiteRepository(tx))
		})
	}
	return s
}

type registerRequest struct {
	Username string `validate:"required,alphanum,min=3,max=32"`
	Password string `validate:"required,min=6"`
}

// Register creates a new account with a fresh random salt and the salted
// SHA-256 password hash. Returns common.ErrValidation for malformed input
// and common.ErrAlreadyExists for a taken username.
func (s *Service) Register(ctx context.Context, username, password string) (*Account, error) {
	req := registerRequest{Username: username, Password: password}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	salt, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	a := &Account{
		Username:     username,
		PasswordHash: HashPassword(password, salt),
		Salt:         salt,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Authenticate verifies username/password against the stored hash.
// Returns the account on success, common.ErrAccountNotFound when the
// username has no record and common.ErrUnauthorized on a wrong password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Account, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	candidate := HashPassword(password, a.Salt)
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(a.PasswordHash)) == 0 {
		return nil, common.ErrUnauthorized
	}
	return a, nil
}

// Credentials returns the (password_hash, salt) pair for username, the only
// material the keyring needs. Returns common.ErrAccountNotFound when missing.
func (s *Service) Credentials(ctx context.Context, username string) (Credentials, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{PasswordHash: a.PasswordHash, Salt: a.Salt}, nil
}

// ChangePassword verifies the old password, then runs rekey with the old and
// new derived keys before persisting the new hash and salt. Entries are
// re-encrypted first: if rekey fails the stored credentials stay untouched
// and every entry remains readable under the old key.
func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string, rekey RekeyFunc) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password must not be empty", common.ErrValidation)
	}

	a, err := s.Authenticate(ctx, username, oldPassword)
	if err != nil {
		return err
	}

	newSalt := uuidHex()
	newHash := HashPassword(newPassword, newSalt)

	oldKey := keyring.DeriveKey(a.PasswordHash, a.Salt)
	newKey := keyring.DeriveKey(newHash, newSalt)
	defer common.WipeByteArray(oldKey)
	defer common.WipeByteArray(newKey)

	if rekey != nil {
		if err := rekey(oldKey, newKey); err != nil {
			return fmt.Errorf("re-encrypting entries: %w", err)
		}
	}

	// Persist transactionally, re-checking that the credentials are still the
	// ones the entries were just re-encrypted from. A concurrent password
	// change between Authenticate and here would otherwise be clobbered with
	// a hash the entries no longer match.
	return s.runTx(ctx, func(ctx context.Context, repo Repository) error {
		cur, err := repo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if cur.PasswordHash != a.PasswordHash || cur.Salt != a.Salt {
			return fmt.Errorf("%w: credentials changed during password change", common.ErrUnauthorized)
		}
		return repo.UpdateCredentials(ctx, username, newHash, newSalt)
	})
}

// HashPassword is the stored credential hash: hex(SHA-256(password+salt)).
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

func uuidHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
