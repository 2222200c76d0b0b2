package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

func TestGenerateMnemonic(t *testing.T) {
	t.Parallel()

	for _, n := range []int{12, 18, 24} {
		m, err := GenerateMnemonic(n)
		require.NoError(t, err)
		assert.Len(t, strings.Fields(m), n)
		require.NoError(t, ValidateBip39Mnemonic(m))
	}

	_, err := GenerateMnemonic(15)
	require.ErrorIs(t, err, kiterr.ErrInvalidWordCount)
}

func TestValidateBip39Mnemonic(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateBip39Mnemonic(strings.Repeat("abandon ", 11)+"about"))

	err := ValidateBip39Mnemonic(strings.Repeat("abandon ", 12))
	require.ErrorIs(t, err, kiterr.ErrInvalidMnemonic)

	err = ValidateBip39Mnemonic(strings.Repeat("abandon ", 11) + "abuot")
	require.ErrorIs(t, err, kiterr.ErrInvalidMnemonic)
	var ke *kiterr.KitError
	require.ErrorAs(t, err, &ke)
	assert.Contains(t, ke.Suggestion, "Word 12: 'abuot'")

	err = ValidateBip39Mnemonic("abandon")
	require.ErrorIs(t, err, kiterr.ErrInvalidWordCount)
}

func TestNormalizeMnemonicInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "abbey abducts", "abbey abducts"},
		{"case and spaces", "  Abbey   ABDUCTS \n", "abbey abducts"},
		{"numbered", "1. abbey\n2) abducts\n3: ability", "abbey abducts ability"},
		{"bullets", "- abbey\n* abducts\n• ability", "abbey abducts ability"},
		{"commas", "abbey,abducts, ability", "abbey abducts ability"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, NormalizeMnemonicInput(tc.input))
		})
	}

	assert.Equal(t, []string{"abbey", "abducts"}, SplitMnemonic("1. Abbey,\n2. abducts"))
}

func TestSuggestWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abbey", SuggestLegacyWord("abbay"))
	assert.Equal(t, "zebra", SuggestLegacyWord("ZBRA"))
	assert.Empty(t, SuggestLegacyWord("qqqqqqqq"))

	assert.Equal(t, "abandon", SuggestBip39Word("abandn"))
	assert.Equal(t, "about", SuggestBip39Word("about"))
	assert.Empty(t, SuggestBip39Word("xxxxxxxxxx"))
}

func TestDetectTypos(t *testing.T) {
	t.Parallel()

	typos := DetectTypos([]string{"abbey", "abbay", "qqqqqqqq"}, DictionaryLegacy)
	require.Len(t, typos, 2)
	assert.Equal(t, TypoInfo{Index: 1, Word: "abbay", Suggestion: "abbey", Distance: 1}, typos[0])
	assert.Equal(t, 2, typos[1].Index)
	assert.Empty(t, typos[1].Suggestion)

	assert.Empty(t, DetectTypos([]string{"abandon", "about"}, DictionaryBIP39))

	formatted := FormatTypoSuggestions(typos)
	assert.Equal(t, "Word 2: 'abbay' - did you mean 'abbey'?\nWord 3: 'qqqqqqqq' is not in the word list", formatted)
	assert.Empty(t, FormatTypoSuggestions(nil))
}
