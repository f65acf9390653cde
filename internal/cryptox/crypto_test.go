package cryptox

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}

	expectedHex := "34f7a1c64df63ab1ad5b5ee06e64db5713b35f81839823304db63e8e5e6a6a39"
	if hex.EncodeToString(key1) != expectedHex {
		t.Errorf("expected %s, got %s", expectedHex, hex.EncodeToString(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestEncryptDecrypt(t *testing.T) {
	key := bytes.Repeat([]byte{7}, 32)
	data := []byte("passport front image")

	sealed, err := Encrypt(data, key)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "passport")

	plain, err := Decrypt(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, data, plain)

	_, err = Decrypt(sealed, bytes.Repeat([]byte{8}, 32))
	assert.Error(t, err)

	_, err = Decrypt([]byte{1, 2}, key)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Encrypt(data, []byte("short"))
	assert.Error(t, err)
}

func TestSealer(t *testing.T) {
	s := NewSealer("document-key")
	data := []byte{0xff, 0xd8, 0xff, 0xe0, 1, 2, 3}

	a, err := s.Seal(data)
	require.NoError(t, err)
	b, err := s.Seal(data)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "salt and nonce must differ between seals")

	plain, err := s.Open(a)
	require.NoError(t, err)
	assert.Equal(t, data, plain)

	_, err = NewSealer("other").Open(a)
	assert.Error(t, err)

	_, err = s.Open([]byte("tiny"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSealer_WipesDerivedKeys(t *testing.T) {
	var keys [][]byte
	orig := deriveKey
	deriveKey = func(passphrase, salt []byte) []byte {
		k := orig(passphrase, salt)
		keys = append(keys, k)
		return k
	}
	t.Cleanup(func() { deriveKey = orig })

	s := NewSealer("document-key")
	sealed, err := s.Seal([]byte("passport"))
	require.NoError(t, err)
	_, err = s.Open(sealed)
	require.NoError(t, err)

	require.Len(t, keys, 2)
	for _, k := range keys {
		assert.Equal(t, make([]byte, keySize), k)
	}
}
