package keyring

import (
	"bytes"
	"testing"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	hash := "1f3870be274f6c49b3e31a0c6728957f034b7d42f1f1b1f4b1e6a3c5d2e4f6a8"
	salt := "c0ffee00c0ffee00c0ffee00c0ffee00"

	key1 := DeriveKey(hash, salt)
	key2 := DeriveKey(hash, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != KeySize {
		t.Errorf("expected %d-byte key, got %d", KeySize, len(key1))
	}
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	hash := "1f3870be274f6c49b3e31a0c6728957f034b7d42f1f1b1f4b1e6a3c5d2e4f6a8"

	key1 := DeriveKey(hash, "salt-1")
	key2 := DeriveKey(hash, "salt-2")

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}

	key3 := DeriveKey("another-hash", "salt-1")
	if bytes.Equal(key1, key3) {
		t.Errorf("expected different results for different hashes, got same")
	}
}

func TestKey_StringRedacted(t *testing.T) {
	key := DeriveKey("h", "s")
	if key.String() != "[redacted]" {
		t.Errorf("key stringer must not expose key material, got %q", key.String())
	}
}
