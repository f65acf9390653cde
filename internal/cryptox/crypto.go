// Package cryptox seals customer document images before they leave the
// host. Keys are derived from a passphrase with Argon2id and data is
// encrypted with AES-256-GCM.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"github.com/dmitrijs2005/cargobot/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize = 16
	keySize  = 32
)

// ErrMalformed is returned by Open for input too short to be sealed data.
var ErrMalformed = errors.New("sealed data is malformed")

// DeriveKey stretches passphrase into a 32-byte AES key.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, keySize)
}

var deriveKey = DeriveKey

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt returns nonce || ciphertext of plaintext under key.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt reverses Encrypt.
func Decrypt(data, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(data) < aesgcm.NonceSize() {
		return nil, ErrMalformed
	}
	nonce, ciphertext := data[:aesgcm.NonceSize()], data[aesgcm.NonceSize():]
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}

// Sealer encrypts blobs with keys derived from one passphrase. Every blob
// gets its own random salt, stored in front of the ciphertext.
type Sealer struct {
	passphrase []byte
}

func NewSealer(passphrase string) *Sealer {
	return &Sealer{passphrase: []byte(passphrase)}
}

// Seal returns salt || nonce || ciphertext. The derived key is zeroed
// before Seal returns.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	salt := common.GenerateRandByteArray(saltSize)
	key := deriveKey(s.passphrase, salt)
	defer common.WipeByteArray(key)

	sealed, err := Encrypt(plaintext, key)
	if err != nil {
		return nil, err
	}
	return append(salt, sealed...), nil
}

// Open reverses Seal.
func (s *Sealer) Open(data []byte) ([]byte, error) {
	if len(data) < saltSize {
		return nil, ErrMalformed
	}
	key := deriveKey(s.passphrase, data[:saltSize])
	defer common.WipeByteArray(key)

	return Decrypt(data[saltSize:], key)
}
