package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"

	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

// BIP-44 derivation path constants.
// Full path: m/44'/128'/account'/0/0
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// CoinTypeMonero is Monero's registered SLIP-44 coin type (hardened).
	CoinTypeMonero = bip32.FirstHardenedChild + 128

	// SeedSize is the length of a stretched BIP39 seed.
	SeedSize = 64

	// PrivateKeySize is the length of a raw secp256k1 or ed25519 scalar.
	PrivateKeySize = 32
)

// DerivationPath returns the textual path used for an account.
func DerivationPath(account uint32) string {
	return fmt.Sprintf("m/44'/128'/%d'/0/0", account)
}

// MnemonicToSeed stretches mnemonic words and a passphrase into a BIP39 seed.
// The words are joined verbatim and not validated against the BIP39 list.
// The returned seed should be zeroed by the caller after use.
func MnemonicToSeed(words []string, passphrase string) []byte {
	return bip39.NewSeed(joinWords(words), passphrase)
}

// hdKey wraps a BIP32 extended key.
type hdKey struct {
	key *bip32.Key
}

func newMasterKey(seed []byte) (*hdKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &hdKey{key: master}, nil
}

// derivePath derives a key along a sequence of indices.
// For hardened derivation, add bip32.FirstHardenedChild to the index.
func (k *hdKey) derivePath(indices ...uint32) (*hdKey, error) {
	current := k.key
	for _, idx := range indices {
		child, err := current.NewChildKey(idx)
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", idx, err)
		}
		current = child
	}
	return &hdKey{key: current}, nil
}

// privateKeyBytes returns the private scalar as exactly 32 big-endian bytes.
// A 33-byte form with a leading zero is accepted; anything longer cannot be
// represented and fails with ErrKeyEncoding.
func (k *hdKey) privateKeyBytes() ([]byte, error) {
	if !k.key.IsPrivate {
		return nil, kiterr.WithDetails(kiterr.ErrKeyEncoding, map[string]string{"reason": "public key"})
	}
	raw := k.key.Key
	switch {
	case len(raw) == PrivateKeySize:
		out := make([]byte, PrivateKeySize)
		copy(out, raw)
		return out, nil
	case len(raw) == PrivateKeySize+1 && raw[0] == 0:
		out := make([]byte, PrivateKeySize)
		copy(out, raw[1:])
		return out, nil
	case len(raw) < PrivateKeySize:
		out := make([]byte, PrivateKeySize)
		copy(out[PrivateKeySize-len(raw):], raw)
		return out, nil
	default:
		return nil, kiterr.WithDetails(kiterr.ErrKeyEncoding, map[string]string{
			"reason": fmt.Sprintf("private key is %d bytes", len(raw)),
		})
	}
}

// deriveAccountKey derives the raw private key at m/44'/128'/account'/0/0.
// The change and index levels are not hardened; this matches the wallets
// that popularized BIP39 Monero seeds and must not be changed.
func deriveAccountKey(seed []byte, account uint32) ([]byte, error) {
	master, err := newMasterKey(seed)
	if err != nil {
		return nil, kiterr.Wrap(kiterr.ErrKeyEncoding, "%v", err)
	}
	key, err := master.derivePath(
		PurposeBIP44,
		CoinTypeMonero,
		bip32.FirstHardenedChild+account,
		0,
		0,
	)
	if err != nil {
		return nil, kiterr.Wrap(kiterr.ErrKeyEncoding, "%v", err)
	}
	return key.privateKeyBytes()
}

// ZeroBytes overwrites a byte slice with zeros.
func ZeroBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
