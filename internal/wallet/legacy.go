package wallet

import (
	"hash/crc32"
	"strconv"
	"strings"
	"unicode/utf8"

	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

const (
	// LegacyWordListSize is the number of words in the legacy dictionary.
	LegacyWordListSize = 1626

	// legacyPrefixLength is how many leading characters identify a word.
	legacyPrefixLength = 3

	legacyDataWords = LegacyMnemonicLength - 1
)

//nolint:gochecknoglobals // Built once from the fixed dictionary
var legacyPrefixIndex = func() map[string]int {
	m := make(map[string]int, LegacyWordListSize)
	for i, w := range legacyWordList {
		m[wordPrefix(w)] = i
	}
	return m
}()

// LegacyWordList returns a copy of the legacy English dictionary.
func LegacyWordList() []string {
	out := make([]string, LegacyWordListSize)
	copy(out, legacyWordList[:])
	return out
}

// EncodeLegacyMnemonic encodes a 32-byte key as 24 data words followed by the
// checksum word. Each little-endian uint32 chunk v yields three indices
// w1 = v mod N, w2 = (v/N + w1) mod N, w3 = (v/N/N + w2) mod N.
func EncodeLegacyMnemonic(key [32]byte) []string {
	const n = LegacyWordListSize

	words := make([]string, 0, LegacyMnemonicLength)
	for i := 0; i < len(key); i += 4 {
		v := uint64(key[i]) | uint64(key[i+1])<<8 | uint64(key[i+2])<<16 | uint64(key[i+3])<<24
		w1 := v % n
		w2 := (v/n + w1) % n
		w3 := (v/n/n + w2) % n
		words = append(words, legacyWordList[w1], legacyWordList[w2], legacyWordList[w3])
	}
	return append(words, words[LegacyChecksumIndex(words)])
}

// LegacyChecksumIndex returns the index into words[:24] of the checksum word:
// CRC32 (IEEE) of the concatenated three-letter prefixes, modulo 24.
func LegacyChecksumIndex(words []string) int {
	var b strings.Builder
	for _, w := range words[:legacyDataWords] {
		b.WriteString(wordPrefix(w))
	}
	return int(crc32.ChecksumIEEE([]byte(b.String())) % legacyDataWords)
}

// DecodeLegacyMnemonic recovers the 32-byte key from a 25-word legacy
// mnemonic. Words are matched on their three-letter prefix, case-insensitively.
func DecodeLegacyMnemonic(words []string) ([32]byte, error) {
	var key [32]byte

	if len(words) != LegacyMnemonicLength {
		return key, wordCountError(len(words), "25")
	}

	normalized := make([]string, len(words))
	indices := make([]uint64, legacyDataWords)
	for i, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		normalized[i] = w
		idx, ok := legacyPrefixIndex[wordPrefix(w)]
		if !ok {
			return key, unknownWordError(i, w)
		}
		if i < legacyDataWords {
			indices[i] = uint64(idx)
		}
	}

	const n = LegacyWordListSize
	for i := 0; i < legacyDataWords; i += 3 {
		w1, w2, w3 := indices[i], indices[i+1], indices[i+2]
		v := w1 + n*((n-w1+w2)%n) + n*n*((n-w2+w3)%n)
		if v%n != w1 || v > 0xffffffff {
			return key, kiterr.WithDetails(kiterr.ErrInvalidMnemonic, map[string]string{
				"words": strconv.Itoa(i+1) + "-" + strconv.Itoa(i+3),
			})
		}
		off := i / 3 * 4
		key[off] = byte(v)
		key[off+1] = byte(v >> 8)
		key[off+2] = byte(v >> 16)
		key[off+3] = byte(v >> 24)
	}

	want := normalized[LegacyChecksumIndex(normalized)]
	if wordPrefix(want) != wordPrefix(normalized[legacyDataWords]) {
		return [32]byte{}, kiterr.ErrInvalidChecksum
	}
	return key, nil
}

// IsLegacyWord reports whether word is in the legacy dictionary.
func IsLegacyWord(word string) bool {
	idx, ok := legacyPrefixIndex[wordPrefix(strings.ToLower(word))]
	return ok && legacyWordList[idx] == strings.ToLower(word)
}

func unknownWordError(index int, word string) error {
	err := kiterr.WithDetails(kiterr.ErrInvalidMnemonic, map[string]string{
		"position": strconv.Itoa(index + 1),
		"word":     word,
	})
	if s := SuggestLegacyWord(word); s != "" {
		err = kiterr.WithSuggestion(err, "did you mean '"+s+"'?")
	}
	return err
}

// wordPrefix returns the first three characters of w, or w if shorter.
func wordPrefix(w string) string {
	if utf8.RuneCountInString(w) <= legacyPrefixLength {
		return w
	}
	return string([]rune(w)[:legacyPrefixLength])
}
