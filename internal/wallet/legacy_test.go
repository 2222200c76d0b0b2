package wallet

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

const abandonArtLegacy = "coal gourmet geometry raking lilac sewage pawnshop rudely bays ascend gifts reinvest " +
	"voted moisture kept podcast vocal paradise acidic espionage hijack wrap vogue waist sewage"

func TestLegacyWordList(t *testing.T) {
	t.Parallel()

	list := LegacyWordList()
	require.Len(t, list, LegacyWordListSize)
	assert.Equal(t, "abbey", list[0])
	assert.Equal(t, "zoom", list[LegacyWordListSize-1])

	prefixes := make(map[string]struct{}, len(list))
	for _, w := range list {
		prefixes[wordPrefix(w)] = struct{}{}
	}
	assert.Len(t, prefixes, LegacyWordListSize, "three-letter prefixes must be unique")
}

func TestDecodeLegacyMnemonic(t *testing.T) {
	t.Parallel()

	key, err := DecodeLegacyMnemonic(strings.Fields(abandonArtLegacy))
	require.NoError(t, err)
	assert.Equal(t, "4fe2e8fa6ad56846a4b70b5cf85a8a5ff310d8eb5daaf5b11af9591d79fc0a02", hex.EncodeToString(key[:]))
}

func TestLegacyMnemonic_RoundTrip(t *testing.T) {
	t.Parallel()

	keys := [][32]byte{{}, {0xff, 0xff, 0xff, 0xff}, {1, 2, 3, 4, 5, 6, 7, 8, 9, 10}}
	var all [32]byte
	for i := range all {
		all[i] = 0xff
	}
	keys = append(keys, all)

	for _, k := range keys {
		words := EncodeLegacyMnemonic(k)
		require.Len(t, words, LegacyMnemonicLength)

		got, err := DecodeLegacyMnemonic(words)
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
}

func TestDecodeLegacyMnemonic_CaseAndPrefixes(t *testing.T) {
	t.Parallel()

	words := strings.Fields(strings.ToUpper(abandonArtLegacy))
	_, err := DecodeLegacyMnemonic(words)
	require.NoError(t, err)

	// Only the first three letters identify a word.
	for i := range words {
		words[i] = words[i][:3]
	}
	key, err := DecodeLegacyMnemonic(words)
	require.NoError(t, err)
	assert.Equal(t, "4fe2e8fa6ad56846a4b70b5cf85a8a5ff310d8eb5daaf5b11af9591d79fc0a02", hex.EncodeToString(key[:]))
}

func TestDecodeLegacyMnemonic_BadChecksum(t *testing.T) {
	t.Parallel()

	words := strings.Fields(abandonArtLegacy)
	words[24] = "coal"
	_, err := DecodeLegacyMnemonic(words)
	require.ErrorIs(t, err, kiterr.ErrInvalidChecksum)
}

func TestDecodeLegacyMnemonic_UnknownWord(t *testing.T) {
	t.Parallel()

	words := strings.Fields(abandonArtLegacy)
	words[3] = "rakingx"
	_, err := DecodeLegacyMnemonic(words)
	require.NoError(t, err, "prefix 'rak' still identifies 'raking'")

	words[3] = "qqqq"
	_, err = DecodeLegacyMnemonic(words)
	require.ErrorIs(t, err, kiterr.ErrInvalidMnemonic)

	words[3] = "zbra"
	_, err = DecodeLegacyMnemonic(words)
	require.ErrorIs(t, err, kiterr.ErrInvalidMnemonic)
	var ke *kiterr.KitError
	require.ErrorAs(t, err, &ke)
	assert.Equal(t, "4", ke.Details["position"])
	assert.Contains(t, ke.Suggestion, "zebra")
}

func TestDecodeLegacyMnemonic_WordCount(t *testing.T) {
	t.Parallel()

	_, err := DecodeLegacyMnemonic(strings.Fields(abandonArtLegacy)[:24])
	require.ErrorIs(t, err, kiterr.ErrInvalidWordCount)
}

func TestIsLegacyWord(t *testing.T) {
	t.Parallel()

	assert.True(t, IsLegacyWord("abbey"))
	assert.True(t, IsLegacyWord("Zoom"))
	assert.False(t, IsLegacyWord("abb"))
	assert.False(t, IsLegacyWord("abandon"))
}

func TestWordPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abb", wordPrefix("abbey"))
	assert.Equal(t, "ace", wordPrefix("aces"))
	assert.Equal(t, "ab", wordPrefix("ab"))
}
