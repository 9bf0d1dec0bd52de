package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SidddhantJain/QuietQuill/internal/keyring"
)

func TestSession_Active(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.Active())
	assert.False(t, (&Session{}).Active())
	assert.False(t, (&Session{Username: "alice"}).Active())

	s := &Session{Username: "alice", Key: keyring.DeriveKey("h", "s")}
	assert.True(t, s.Active())
}

func TestSession_CloseWipesKey(t *testing.T) {
	key := keyring.DeriveKey("h", "s")
	s := &Session{Username: "alice", Key: key}

	s.Close()

	assert.False(t, s.Active())
	for i, b := range key {
		assert.Zerof(t, b, "key byte %d not wiped", i)
	}
}
