// Package wallet implements the key material side of xmrkit: the seed
// variants a wallet can be restored from, the BIP39 to legacy mnemonic
// converter, the legacy 25-word codec, Monero key and address derivation,
// restore height parsing, and encrypted seed storage.
package wallet

import (
	"fmt"
	"strconv"
	"strings"

	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

// LegacyMnemonicLength is the number of words in a legacy mnemonic.
const LegacyMnemonicLength = 25

// SeedKind identifies the variant held by a Seed.
type SeedKind int

const (
	// SeedBip39 holds a 12, 18 or 24 word BIP39 mnemonic and passphrase.
	SeedBip39 SeedKind = iota + 1
	// SeedLegacy holds a 25 word Monero legacy mnemonic and seed offset.
	SeedLegacy
	// SeedWatchOnly holds a primary address and private view key.
	SeedWatchOnly
)

// String returns the lowercase name used in storage and CLI output.
func (k SeedKind) String() string {
	switch k {
	case SeedBip39:
		return "bip39"
	case SeedLegacy:
		return "legacy"
	case SeedWatchOnly:
		return "watch-only"
	default:
		return "unknown"
	}
}

// ParseSeedKind is the inverse of SeedKind.String.
func ParseSeedKind(s string) (SeedKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bip39":
		return SeedBip39, nil
	case "legacy", "electrum":
		return SeedLegacy, nil
	case "watch-only", "watchonly":
		return SeedWatchOnly, nil
	default:
		return 0, kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{"seed_kind": s})
	}
}

// Seed is the raw material a wallet is restored from. The zero value is not
// a valid seed; use one of the constructors.
type Seed struct {
	kind       SeedKind
	words      []string
	passphrase string
	address    string
	viewKey    string
}

// NewBip39Seed returns a BIP39 seed. Word list membership is not checked here.
func NewBip39Seed(words []string, passphrase string) (Seed, error) {
	switch len(words) {
	case 12, 18, 24:
	default:
		return Seed{}, wordCountError(len(words), "12, 18 or 24")
	}
	return Seed{kind: SeedBip39, words: cloneWords(words), passphrase: passphrase}, nil
}

// NewLegacySeed returns a legacy mnemonic seed. The offset is Monero's seed
// offset passphrase and is applied by the wallet engine.
func NewLegacySeed(words []string, offset string) (Seed, error) {
	if len(words) != LegacyMnemonicLength {
		return Seed{}, wordCountError(len(words), "25")
	}
	return Seed{kind: SeedLegacy, words: cloneWords(words), passphrase: offset}, nil
}

// NewWatchOnlySeed returns a watch-only seed for an address and its private
// view key.
func NewWatchOnlySeed(address, viewPrivateKey string) Seed {
	return Seed{kind: SeedWatchOnly, address: address, viewKey: viewPrivateKey}
}

// Kind returns the seed variant.
func (s Seed) Kind() SeedKind { return s.kind }

// Words returns a copy of the mnemonic words. Empty for watch-only seeds.
func (s Seed) Words() []string { return cloneWords(s.words) }

// Mnemonic returns the words joined by single spaces.
func (s Seed) Mnemonic() string { return strings.Join(s.words, " ") }

// Passphrase returns the BIP39 passphrase or the legacy seed offset.
func (s Seed) Passphrase() string { return s.passphrase }

// Address returns the watch-only address.
func (s Seed) Address() string { return s.address }

// ViewKey returns the watch-only private view key.
func (s Seed) ViewKey() string { return s.viewKey }

// String never includes secret material so a Seed is safe to log by accident.
func (s Seed) String() string {
	switch s.kind {
	case SeedBip39, SeedLegacy:
		return fmt.Sprintf("%s seed (%d words)", s.kind, len(s.words))
	case SeedWatchOnly:
		return fmt.Sprintf("%s seed (%s)", s.kind, s.address)
	default:
		return "invalid seed"
	}
}

// ToLegacy returns the legacy mnemonic form of the seed. BIP39 seeds are run
// through Convert at account 0 and yield an empty offset; legacy seeds are
// returned unchanged; watch-only seeds have no spend key and fail.
func (s Seed) ToLegacy() (Seed, error) {
	switch s.kind {
	case SeedLegacy:
		return s, nil
	case SeedBip39:
		words, err := ConvertWords(s.words, s.passphrase, 0)
		if err != nil {
			return Seed{}, err
		}
		return Seed{kind: SeedLegacy, words: words}, nil
	case SeedWatchOnly:
		return Seed{}, kiterr.ErrWatchOnlyConversion
	default:
		return Seed{}, kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{"seed": "uninitialized"})
	}
}

func wordCountError(got int, want string) error {
	return kiterr.WithDetails(kiterr.ErrInvalidWordCount, map[string]string{
		"got":  strconv.Itoa(got),
		"want": want,
	})
}

func cloneWords(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	out := make([]string, len(words))
	copy(out, words)
	return out
}
