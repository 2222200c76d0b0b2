package wallet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/xmrkit/internal/kitcrypto"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

func TestMain(m *testing.M) {
	kitcrypto.SetScryptWorkFactor(10) // Fast for tests
	os.Exit(m.Run())
}

func TestStorage_SaveAndLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	storage := NewFileStorage(dir)
	password := []byte("test-password-123")

	seed, err := NewBip39Seed(strings.Fields(strings.Repeat("abandon ", 11)+"about"), "TREZOR")
	require.NoError(t, err)

	require.NoError(t, storage.Save(SeedMetadata{ID: "main", Network: Mainnet, RestoreHeight: 3000000}, seed, password))

	info, err := os.Stat(filepath.Join(dir, "main.seed"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(filepath.Join(dir, "main.seed")) //nolint:gosec // G304: Test path from t.TempDir()
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "abandon")
	assert.NotContains(t, string(raw), "TREZOR")

	meta, loaded, err := storage.Load("main", password)
	require.NoError(t, err)
	assert.Equal(t, seed, loaded)
	assert.Equal(t, "bip39", meta.Kind)
	assert.Equal(t, int64(3000000), meta.RestoreHeight)
	assert.False(t, meta.CreatedAt.IsZero())
}

func TestStorage_AllSeedKinds(t *testing.T) {
	t.Parallel()

	storage := NewFileStorage(t.TempDir())
	legacy, err := NewLegacySeed(strings.Fields(abandonArtLegacy), "offset")
	require.NoError(t, err)
	watch := NewWatchOnlySeed(abandonArtAddress, abandonArtView)

	require.NoError(t, storage.Save(SeedMetadata{ID: "legacy"}, legacy, []byte("pw")))
	require.NoError(t, storage.Save(SeedMetadata{ID: "watch"}, watch, []byte("pw")))

	_, got, err := storage.Load("legacy", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, legacy, got)

	_, got, err = storage.Load("watch", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, watch, got)

	ids, err := storage.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"legacy", "watch"}, ids)
}

func TestStorage_WrongPassword(t *testing.T) {
	t.Parallel()

	storage := NewFileStorage(t.TempDir())
	require.NoError(t, storage.Save(SeedMetadata{ID: "w"}, NewWatchOnlySeed("a", "b"), []byte("right")))

	_, _, err := storage.Load("w", []byte("wrong"))
	require.ErrorIs(t, err, kiterr.ErrDecryptionFailed)

	meta, err := storage.LoadMetadata("w")
	require.NoError(t, err)
	assert.Equal(t, "watch-only", meta.Kind)
}

func TestStorage_Exists_Delete(t *testing.T) {
	t.Parallel()

	storage := NewFileStorage(t.TempDir())

	ok, err := storage.Exists("w")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.Save(SeedMetadata{ID: "w"}, NewWatchOnlySeed("a", "b"), []byte("pw")))
	err = storage.Save(SeedMetadata{ID: "w"}, NewWatchOnlySeed("a", "b"), []byte("pw"))
	require.ErrorIs(t, err, kiterr.ErrWalletExists)

	ok, err = storage.Exists("w")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, storage.Delete("w"))
	require.ErrorIs(t, storage.Delete("w"), kiterr.ErrWalletNotFound)

	_, _, err = storage.Load("w", []byte("pw"))
	require.ErrorIs(t, err, kiterr.ErrWalletNotFound)
}

func TestStorage_InvalidIDs(t *testing.T) {
	t.Parallel()

	storage := NewFileStorage(t.TempDir())
	for _, id := range []string{"", "../etc", "a/b", "has space", strings.Repeat("x", 65)} {
		err := storage.Save(SeedMetadata{ID: id}, NewWatchOnlySeed("a", "b"), []byte("pw"))
		require.ErrorIs(t, err, kiterr.ErrInvalidInput, id)
		_, err = storage.Exists(id)
		require.Error(t, err)
	}

	err := storage.Save(SeedMetadata{ID: "ok"}, Seed{}, []byte("pw"))
	require.ErrorIs(t, err, kiterr.ErrInvalidInput)
}

func TestStorage_ListMissingDir(t *testing.T) {
	t.Parallel()

	ids, err := NewFileStorage(filepath.Join(t.TempDir(), "missing")).List()
	require.NoError(t, err)
	assert.Empty(t, ids)
}
