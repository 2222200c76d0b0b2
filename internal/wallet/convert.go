package wallet

import (
	"filippo.io/edwards25519"

	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

// Convert turns a 12, 18 or 24 word BIP39 mnemonic and passphrase into the
// equivalent 25-word Monero legacy mnemonic for the given account.
//
// The spend key is the BIP32 private key at m/44'/128'/account'/0/0, read as
// a little-endian integer and reduced modulo the ed25519 group order. No hash
// is applied before the reduction; inserting one yields a different wallet.
func Convert(words []string, passphrase string, account uint32) (string, error) {
	legacy, err := ConvertWords(words, passphrase, account)
	if err != nil {
		return "", err
	}
	return joinWords(legacy), nil
}

// ConvertWords is Convert returning the individual words.
func ConvertWords(words []string, passphrase string, account uint32) ([]string, error) {
	spend, err := Bip39SpendKey(words, passphrase, account)
	if err != nil {
		return nil, err
	}
	return EncodeLegacyMnemonic(spend), nil
}

// Bip39SpendKey returns the private spend key a BIP39 mnemonic maps to.
func Bip39SpendKey(words []string, passphrase string, account uint32) ([32]byte, error) {
	var spend [32]byte

	switch len(words) {
	case 12, 18, 24:
	default:
		return spend, wordCountError(len(words), "12, 18 or 24")
	}

	seed := MnemonicToSeed(words, passphrase)
	defer ZeroBytes(seed)

	raw, err := deriveAccountKey(seed, account)
	if err != nil {
		return spend, err
	}
	defer ZeroBytes(raw)

	reduced, err := reduceScalar(raw)
	if err != nil {
		return spend, err
	}
	copy(spend[:], reduced)
	return spend, nil
}

// reduceScalar interprets b (at most 32 bytes) as a little-endian integer and
// returns it reduced modulo the ed25519 group order, little-endian encoded.
func reduceScalar(b []byte) ([]byte, error) {
	if len(b) > PrivateKeySize {
		return nil, kiterr.ErrKeyEncoding
	}
	var wide [64]byte
	copy(wide[:], b)
	defer ZeroBytes(wide[:])

	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		return nil, kiterr.Wrap(kiterr.ErrKeyEncoding, "%v", err)
	}
	return s.Bytes(), nil
}
