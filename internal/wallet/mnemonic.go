package wallet

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tyler-smith/go-bip39"

	"github.com/mrz1836/xmrkit/internal/kitcrypto"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

var (
	// whitespaceRegex matches one or more whitespace characters.
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// numberedListRegex matches numbered list prefixes like "1." "2)" "3:"
	numberedListRegex = regexp.MustCompile(`(?m)^\s*\d+[\.\)\:]\s*`)

	// bulletListRegex matches bullet prefixes like "- " "* " "• "
	bulletListRegex = regexp.MustCompile(`(?m)^\s*[-*•]\s*`)
)

// MaxTypoDistance is the maximum Levenshtein distance to consider a suggestion.
const MaxTypoDistance = 2

// Dictionary selects the word list used for typo detection.
type Dictionary int

const (
	// DictionaryBIP39 is the BIP39 English list.
	DictionaryBIP39 Dictionary = iota
	// DictionaryLegacy is the Monero legacy English list.
	DictionaryLegacy
)

// GenerateMnemonic creates a new BIP39 mnemonic of 12, 18 or 24 words.
func GenerateMnemonic(wordCount int) (string, error) {
	var bitSize int
	switch wordCount {
	case 12:
		bitSize = 128
	case 18:
		bitSize = 192
	case 24:
		bitSize = 256
	default:
		return "", wordCountError(wordCount, "12, 18 or 24")
	}

	entropy, err := kitcrypto.RandomBytes(bitSize / 8)
	if err != nil {
		return "", err
	}
	defer ZeroBytes(entropy)

	return bip39.NewMnemonic(entropy)
}

// ValidateBip39Mnemonic checks word count, word list membership and the BIP39
// checksum. Convert itself does not require this; it is offered to callers
// that want to reject typos before deriving a wallet.
func ValidateBip39Mnemonic(mnemonic string) error {
	normalized := NormalizeMnemonicInput(mnemonic)
	words := strings.Fields(normalized)
	switch len(words) {
	case 12, 18, 24:
	default:
		return wordCountError(len(words), "12, 18 or 24")
	}

	if _, err := bip39.MnemonicToByteArray(normalized); err != nil {
		err := kiterr.Wrap(kiterr.ErrInvalidMnemonic, "%v", err)
		if typos := DetectTypos(words, DictionaryBIP39); len(typos) > 0 {
			err = kiterr.WithSuggestion(err, FormatTypoSuggestions(typos))
		}
		return err
	}
	return nil
}

// NormalizeMnemonicInput cleans pasted mnemonic text by:
// - Converting to lowercase
// - Removing numbered list prefixes (1. 2) 3: etc.)
// - Removing bullet prefixes (- * •)
// - Replacing commas with spaces
// - Collapsing whitespace to single spaces and trimming the ends
func NormalizeMnemonicInput(input string) string {
	input = strings.ToLower(input)
	input = numberedListRegex.ReplaceAllString(input, " ")
	input = bulletListRegex.ReplaceAllString(input, " ")
	input = strings.ReplaceAll(input, ",", " ")
	input = whitespaceRegex.ReplaceAllString(input, " ")
	return strings.TrimSpace(input)
}

// SplitMnemonic normalizes input and splits it into words.
func SplitMnemonic(input string) []string {
	return strings.Fields(NormalizeMnemonicInput(input))
}

// TypoInfo contains information about a detected typo and its suggestion.
type TypoInfo struct {
	// Index is the word position in the mnemonic (0-based).
	Index int
	// Word is the original (possibly misspelled) word.
	Word string
	// Suggestion is the closest dictionary word, or empty if none found.
	Suggestion string
	// Distance is the Levenshtein distance to the suggestion.
	Distance int
}

// SuggestBip39Word returns the closest BIP39 word, or "" if none is within
// MaxTypoDistance.
func SuggestBip39Word(input string) string {
	return suggest(strings.ToLower(input), bip39.GetWordList())
}

// SuggestLegacyWord returns the closest legacy dictionary word, or "" if none
// is within MaxTypoDistance.
func SuggestLegacyWord(input string) string {
	return suggest(strings.ToLower(input), legacyWordList[:])
}

func suggest(input string, list []string) string {
	minDist := math.MaxInt
	var suggestion string

	for _, word := range list {
		dist := levenshtein.ComputeDistance(input, word)
		if dist == 0 {
			return word
		}
		if dist < minDist {
			minDist = dist
			suggestion = word
		}
	}

	if minDist <= MaxTypoDistance {
		return suggestion
	}
	return ""
}

// DetectTypos reports every word missing from the dictionary together with
// the closest match.
func DetectTypos(words []string, dict Dictionary) []TypoInfo {
	var typos []TypoInfo
	for i, word := range words {
		word = strings.ToLower(word)

		var valid bool
		var suggestion string
		switch dict {
		case DictionaryLegacy:
			valid = IsLegacyWord(word)
			if !valid {
				suggestion = SuggestLegacyWord(word)
			}
		default:
			_, valid = bip39.GetWordIndex(word)
			if !valid {
				suggestion = SuggestBip39Word(word)
			}
		}
		if valid {
			continue
		}

		distance := 0
		if suggestion != "" {
			distance = levenshtein.ComputeDistance(word, suggestion)
		}
		typos = append(typos, TypoInfo{
			Index:      i,
			Word:       word,
			Suggestion: suggestion,
			Distance:   distance,
		})
	}
	return typos
}

// FormatTypoSuggestions formats typo information into human-readable lines.
func FormatTypoSuggestions(typos []TypoInfo) string {
	var b strings.Builder
	for i, typo := range typos {
		if i > 0 {
			b.WriteByte('\n')
		}
		// Word position is 1-indexed for human readability
		b.WriteString("Word ")
		b.WriteString(strconv.Itoa(typo.Index + 1))
		b.WriteString(": '")
		b.WriteString(typo.Word)
		b.WriteByte('\'')
		if typo.Suggestion != "" {
			b.WriteString(" - did you mean '")
			b.WriteString(typo.Suggestion)
			b.WriteString("'?")
		} else {
			b.WriteString(" is not in the word list")
		}
	}
	return b.String()
}

func joinWords(words []string) string {
	return strings.Join(words, " ")
}
