package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/SidddhantJain/QuietQuill/internal/common"
)

// Ciphertext layout: version(1) || nonce(12) || AES-GCM sealed data.
// The version byte exists so the format can evolve without guessing at
// decrypt time; formatV1 is the only version currently written.
const (
	formatV1  byte = 0x01
	nonceSize      = 12
)

// Encrypt seals plaintext under key using AES-256-GCM with a fresh random
// nonce. The returned slice carries the format version and nonce in its
// header and is safe to write to disk as-is.
func Encrypt(plaintext []byte, key Key) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	out := make([]byte, 0, 1+nonceSize+len(plaintext)+aesgcm.Overhead())
	out = append(out, formatV1)
	out = append(out, nonce...)
	out = aesgcm.Seal(out, nonce, plaintext, nil)
	return out, nil
}

// Decrypt opens a ciphertext produced by Encrypt. A wrong key or any
// modification of the ciphertext yields common.ErrAuthenticationFailed;
// a header that does not parse yields common.ErrUnsupportedFormat.
// Garbage plaintext is never returned silently.
func Decrypt(ciphertext []byte, key Key) ([]byte, error) {
	if len(ciphertext) < 1+nonceSize {
		return nil, common.ErrUnsupportedFormat
	}
	if ciphertext[0] != formatV1 {
		return nil, fmt.Errorf("%w: version 0x%02x", common.ErrUnsupportedFormat, ciphertext[0])
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := ciphertext[1 : 1+nonceSize]
	sealed := ciphertext[1+nonceSize:]

	plaintext, err := aesgcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAuthenticationFailed, err)
	}
	return plaintext, nil
}

func newGCM(key Key) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm init: %w", err)
	}
	return aesgcm, nil
}
