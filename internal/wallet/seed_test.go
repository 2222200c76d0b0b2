package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

func TestNewBip39Seed_WordCounts(t *testing.T) {
	t.Parallel()

	for _, n := range []int{12, 18, 24} {
		seed, err := NewBip39Seed(make([]string, n), "")
		require.NoError(t, err)
		assert.Equal(t, SeedBip39, seed.Kind())
	}
	for _, n := range []int{0, 11, 15, 25} {
		_, err := NewBip39Seed(make([]string, n), "")
		require.ErrorIs(t, err, kiterr.ErrInvalidWordCount, "count %d", n)
	}
}

func TestNewLegacySeed_WordCount(t *testing.T) {
	t.Parallel()

	_, err := NewLegacySeed(make([]string, 24), "")
	require.ErrorIs(t, err, kiterr.ErrInvalidWordCount)

	seed, err := NewLegacySeed(strings.Fields(abandonArtLegacy), "offset")
	require.NoError(t, err)
	assert.Equal(t, SeedLegacy, seed.Kind())
	assert.Equal(t, "offset", seed.Passphrase())
	assert.Equal(t, abandonArtLegacy, seed.Mnemonic())
}

func TestSeed_WordsAreCopied(t *testing.T) {
	t.Parallel()

	words := strings.Fields(abandonArtLegacy)
	seed, err := NewLegacySeed(words, "")
	require.NoError(t, err)

	words[0] = "changed"
	assert.Equal(t, "coal", seed.Words()[0])

	out := seed.Words()
	out[0] = "changed"
	assert.Equal(t, "coal", seed.Words()[0])
}

func TestSeed_ToLegacy(t *testing.T) {
	t.Parallel()

	t.Run("bip39", func(t *testing.T) {
		t.Parallel()
		seed, err := NewBip39Seed(strings.Fields(strings.Repeat("abandon ", 23)+"art"), "")
		require.NoError(t, err)

		legacy, err := seed.ToLegacy()
		require.NoError(t, err)
		assert.Equal(t, SeedLegacy, legacy.Kind())
		assert.Equal(t, abandonArtLegacy, legacy.Mnemonic())
		assert.Empty(t, legacy.Passphrase())
	})

	t.Run("bip39 passphrase is consumed by the conversion", func(t *testing.T) {
		t.Parallel()
		seed, err := NewBip39Seed(strings.Fields(strings.Repeat("abandon ", 11)+"about"), "TREZOR")
		require.NoError(t, err)

		legacy, err := seed.ToLegacy()
		require.NoError(t, err)
		assert.Empty(t, legacy.Passphrase())
		assert.True(t, strings.HasPrefix(legacy.Mnemonic(), "hedgehog digit"))
	})

	t.Run("legacy is unchanged", func(t *testing.T) {
		t.Parallel()
		seed, err := NewLegacySeed(strings.Fields(abandonArtLegacy), "x")
		require.NoError(t, err)
		legacy, err := seed.ToLegacy()
		require.NoError(t, err)
		assert.Equal(t, seed, legacy)
	})

	t.Run("watch-only fails", func(t *testing.T) {
		t.Parallel()
		_, err := NewWatchOnlySeed("addr", "key").ToLegacy()
		require.ErrorIs(t, err, kiterr.ErrWatchOnlyConversion)
	})
}

func TestSeed_StringHidesSecrets(t *testing.T) {
	t.Parallel()

	seed, err := NewBip39Seed(strings.Fields(strings.Repeat("abandon ", 11)+"about"), "hunter2")
	require.NoError(t, err)
	s := seed.String()
	assert.Equal(t, "bip39 seed (12 words)", s)
	assert.NotContains(t, s, "abandon")
	assert.NotContains(t, s, "hunter2")

	w := NewWatchOnlySeed("44addr", "secretview")
	assert.NotContains(t, w.String(), "secretview")
	assert.Equal(t, "invalid seed", Seed{}.String())
}

func TestParseSeedKind(t *testing.T) {
	t.Parallel()

	for _, k := range []SeedKind{SeedBip39, SeedLegacy, SeedWatchOnly} {
		got, err := ParseSeedKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseSeedKind("electrum")
	require.NoError(t, err)
	assert.Equal(t, SeedLegacy, got)

	_, err = ParseSeedKind("ledger")
	require.ErrorIs(t, err, kiterr.ErrInvalidInput)
	assert.Equal(t, "unknown", SeedKind(0).String())
}
