package kitcrypto_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/xmrkit/internal/kitcrypto"
)

func TestMain(m *testing.M) {
	kitcrypto.SetScryptWorkFactor(10) // Fast for tests
	os.Exit(m.Run())
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	t.Parallel()
	plaintext := []byte(`{"kind":"legacy","words":["abbey"]}`)
	password := "strong-passphrase-123" // gitleaks:allow

	ciphertext, err := kitcrypto.Encrypt(plaintext, password)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)
	assert.False(t, bytes.Contains(ciphertext, []byte("abbey")))

	decrypted, err := kitcrypto.Decrypt(ciphertext, password)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestDecrypt_WrongPassword(t *testing.T) {
	t.Parallel()
	ciphertext, err := kitcrypto.Encrypt([]byte("secret"), "correct-password")
	require.NoError(t, err)

	_, err = kitcrypto.Decrypt(ciphertext, "wrong-password")
	assert.Error(t, err)
}

func TestDecrypt_Garbage(t *testing.T) {
	t.Parallel()
	_, err := kitcrypto.Decrypt([]byte("not an age file"), "password")
	assert.Error(t, err)
}

func TestDecryptSecure(t *testing.T) {
	t.Parallel()
	ciphertext, err := kitcrypto.Encrypt([]byte("seed material"), "pw")
	require.NoError(t, err)

	sb, err := kitcrypto.DecryptSecure(ciphertext, "pw")
	require.NoError(t, err)
	defer sb.Destroy()
	assert.Equal(t, "seed material", sb.String())
}

func TestSecureBytes_Destroy(t *testing.T) {
	t.Parallel()
	sb, err := kitcrypto.SecureBytesFromSlice([]byte{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 4, sb.Len())

	data := sb.Bytes()
	sb.Destroy()

	assert.Nil(t, sb.Bytes())
	assert.Equal(t, 0, sb.Len())
	assert.Equal(t, []byte{0, 0, 0, 0}, data)
	assert.False(t, sb.IsLocked())

	// Second call is a no-op.
	sb.Destroy()
}

func TestZero(t *testing.T) {
	t.Parallel()
	b := []byte("abc")
	kitcrypto.Zero(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
}

type failingReader struct{}

var errNoEntropy = errors.New("no entropy")

func (failingReader) Read([]byte) (int, error) { return 0, errNoEntropy }

//nolint:paralleltest // Mutates package-level Reader
func TestRandomBytes(t *testing.T) {
	b, err := kitcrypto.RandomBytes(32)
	require.NoError(t, err)
	assert.Len(t, b, 32)

	orig := kitcrypto.Reader
	kitcrypto.Reader = failingReader{}
	defer func() { kitcrypto.Reader = orig }()

	_, err = kitcrypto.RandomBytes(16)
	require.ErrorIs(t, err, errNoEntropy)
}
