package accounts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SidddhantJain/QuietQuill/internal/common"
	"github.com/SidddhantJain/QuietQuill/internal/keyring"
)

func newService() *Service {
	return NewService(NewInMemoryRepository())
}

func TestRegister_CreatesSaltedHash(t *testing.T) {
	s := newService()
	ctx := context.Background()

	a, err := s.Register(ctx, "alice", "correcthorse")
	require.NoError(t, err)

	assert.Equal(t, "alice", a.Username)
	assert.Len(t, a.Salt, 32, "16 random bytes hex-encoded")

	sum := sha256.Sum256([]byte("correcthorse" + a.Salt))
	assert.Equal(t, hex.EncodeToString(sum[:]), a.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	s := newService()
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "longenough"},
		{"short username", "ab", "longenough"},
		{"non-alphanumeric username", "al ice", "longenough"},
		{"empty password", "alice", ""},
		{"short password", "alice", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s := newService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "correcthorse")
	require.NoError(t, err)

	_, err = s.Register(ctx, "alice", "otherpassword")
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestAuthenticate(t *testing.T) {
	s := newService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "correcthorse")
	require.NoError(t, err)

	a, err := s.Authenticate(ctx, "alice", "correcthorse")
	require.NoError(t, err)
	assert.Equal(t, "alice", a.Username)

	_, err = s.Authenticate(ctx, "alice", "wrongpassword")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = s.Authenticate(ctx, "nobody", "correcthorse")
	assert.ErrorIs(t, err, common.ErrAccountNotFound)
}

func TestCredentials(t *testing.T) {
	s := newService()
	ctx := context.Background()

	a, err := s.Register(ctx, "alice", "correcthorse")
	require.NoError(t, err)

	creds, err := s.Credentials(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, a.PasswordHash, creds.PasswordHash)
	assert.Equal(t, a.Salt, creds.Salt)

	_, err = s.Credentials(ctx, "nobody")
	assert.ErrorIs(t, err, common.ErrAccountNotFound)
}

func TestChangePassword_RekeysBeforePersisting(t *testing.T) {
	s := newService()
	ctx := context.Background()

	a, err := s.Register(ctx, "alice", "correcthorse")
	require.NoError(t, err)
	oldKey := keyring.DeriveKey(a.PasswordHash, a.Salt)

	var gotOld, gotNew keyring.Key
	err = s.ChangePassword(ctx, "alice", "correcthorse", "betterbattery", func(o, n keyring.Key) error {
		gotOld = append(keyring.Key{}, o...)
		gotNew = append(keyring.Key{}, n...)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, oldKey, gotOld, "rekey must receive the previous key")

	creds, err := s.Credentials(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, gotNew, keyring.DeriveKey(creds.PasswordHash, creds.Salt),
		"stored credentials must derive the key handed to rekey")

	_, err = s.Authenticate(ctx, "alice", "betterbattery")
	assert.NoError(t, err)
	_, err = s.Authenticate(ctx, "alice", "correcthorse")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestChangePassword_RekeyFailureLeavesCredentials(t *testing.T) {
	s := newService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "correcthorse")
	require.NoError(t, err)

	err = s.ChangePassword(ctx, "alice", "correcthorse", "betterbattery", func(o, n keyring.Key) error {
		return assert.AnError
	})
	require.Error(t, err)

	// Old password still works.
	_, err = s.Authenticate(ctx, "alice", "correcthorse")
	assert.NoError(t, err)
}

func TestChangePassword_ConcurrentChangeConflict(t *testing.T) {
	s := newService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "correcthorse")
	require.NoError(t, err)

	// Another session replaces the credentials while this change is between
	// re-encryption and persistence.
	err = s.ChangePassword(ctx, "alice", "correcthorse", "betterbattery", func(o, n keyring.Key) error {
		return s.repo.UpdateCredentials(ctx, "alice", "stolenhash", "stolensalt")
	})
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	// The concurrent credentials must not be clobbered.
	creds, err := s.Credentials(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "stolenhash", creds.PasswordHash)
	assert.Equal(t, "stolensalt", creds.Salt)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	s := newService()
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "correcthorse")
	require.NoError(t, err)

	called := false
	err = s.ChangePassword(ctx, "alice", "wrong", "betterbattery", func(o, n keyring.Key) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.False(t, called, "rekey must not run when the old password is wrong")
}
