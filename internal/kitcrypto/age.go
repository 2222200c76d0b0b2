// Package kitcrypto holds the encryption and memory hygiene helpers used for
// stored seed material.
package kitcrypto

import (
	"bytes"
	"fmt"
	"io"
	"sync/atomic"

	"filippo.io/age"
)

// DefaultScryptWorkFactor is the scrypt log2(N) used for new recipients.
const DefaultScryptWorkFactor = 18

//nolint:gochecknoglobals // Tunable so tests do not pay for full-strength scrypt
var scryptWorkFactor atomic.Int32

// SetScryptWorkFactor changes the scrypt work factor used by Encrypt.
// Values outside 1..30 restore the default.
func SetScryptWorkFactor(logN int) {
	if logN < 1 || logN > 30 {
		logN = DefaultScryptWorkFactor
	}
	scryptWorkFactor.Store(int32(logN)) //nolint:gosec // bounded above
}

func workFactor() int {
	if n := scryptWorkFactor.Load(); n > 0 {
		return int(n)
	}
	return DefaultScryptWorkFactor
}

// Encrypt encrypts plaintext using age with a password-based recipient.
func Encrypt(plaintext []byte, password string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(password)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}
	recipient.SetWorkFactor(workFactor())

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing encryption: %w", err)
	}

	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing encrypted data: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}

	return buf.Bytes(), nil
}

// Decrypt decrypts ciphertext using age with a password-based identity.
func Decrypt(ciphertext []byte, password string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, fmt.Errorf("initializing decryption: %w", err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted data: %w", err)
	}

	return plaintext, nil
}

// DecryptSecure decrypts ciphertext straight into locked memory. The
// intermediate plaintext buffer is zeroed before returning.
func DecryptSecure(ciphertext []byte, password string) (*SecureBytes, error) {
	plaintext, err := Decrypt(ciphertext, password)
	if err != nil {
		return nil, err
	}
	defer Zero(plaintext)

	return SecureBytesFromSlice(plaintext)
}
