// Package session holds the state of one logged-in user: the username and
// the symmetric key derived once at login. Passing the Session around keeps
// encrypt/decrypt calls explicit instead of re-deriving the key ambiently.
package session

import (
	"github.com/SidddhantJain/QuietQuill/internal/common"
	"github.com/SidddhantJain/QuietQuill/internal/keyring"
)

// Session is a logged-in user. The zero value means "not logged in".
type Session struct {
	Username string
	Key      keyring.Key
}

// Active reports whether a user is logged in.
func (s *Session) Active() bool {
	return s != nil && s.Username != "" && len(s.Key) > 0
}

// Close wipes the key material. The session is unusable afterwards.
func (s *Session) Close() {
	if s == nil {
		return
	}
	common.WipeByteArray(s.Key)
	s.Key = nil
	s.Username = ""
}
