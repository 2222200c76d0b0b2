package wallet

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"filippo.io/edwards25519"

	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

// Keys is the full Monero key set of a wallet, hex encoded.
type Keys struct {
	PrivateSpendKey string `json:"private_spend_key"`
	PublicSpendKey  string `json:"public_spend_key"`
	PrivateViewKey  string `json:"private_view_key"`
	PublicViewKey   string `json:"public_view_key"`
}

// DeriveKeys computes the key set of a seed. BIP39 seeds are converted first.
// Legacy seeds with a seed offset are rejected because the offset is applied
// inside the wallet engine; watch-only seeds carry no spend key.
func DeriveKeys(seed Seed) (Keys, error) {
	legacy, err := seed.ToLegacy()
	if err != nil {
		return Keys{}, err
	}
	if legacy.Passphrase() != "" {
		return Keys{}, kiterr.WithDetails(kiterr.ErrKeyEncoding, map[string]string{
			"reason": "seed offset is only supported by the wallet engine",
		})
	}

	spend, err := DecodeLegacyMnemonic(legacy.words)
	if err != nil {
		return Keys{}, err
	}
	defer ZeroBytes(spend[:])

	return KeysFromSpendKey(spend)
}

// KeysFromSpendKey derives the rest of the key set from a spend key. The key
// is reduced first, matching how Monero treats recovery keys.
func KeysFromSpendKey(spend [32]byte) (Keys, error) {
	a, err := reduceScalar(spend[:])
	if err != nil {
		return Keys{}, err
	}
	defer ZeroBytes(a)

	v, err := reduceScalar(keccak256(a))
	if err != nil {
		return Keys{}, err
	}
	defer ZeroBytes(v)

	pubSpend, err := publicKey(a)
	if err != nil {
		return Keys{}, err
	}
	pubView, err := publicKey(v)
	if err != nil {
		return Keys{}, err
	}

	return Keys{
		PrivateSpendKey: hex.EncodeToString(a),
		PublicSpendKey:  hex.EncodeToString(pubSpend),
		PrivateViewKey:  hex.EncodeToString(v),
		PublicViewKey:   hex.EncodeToString(pubView),
	}, nil
}

// WatchOnlyKeys builds the view-only key set of a primary address. The
// private spend key is left empty.
func WatchOnlyKeys(address, privateViewKey string) (Keys, error) {
	decoded, err := DecodeAddress(address)
	if err != nil {
		return Keys{}, err
	}
	if decoded.Type != AddressStandard {
		return Keys{}, kiterr.WithDetails(kiterr.ErrInvalidAddress, map[string]string{"reason": "not a primary address"})
	}
	if err := ValidatePrivateViewKey(privateViewKey, address); err != nil {
		return Keys{}, err
	}
	return Keys{
		PublicSpendKey: hex.EncodeToString(decoded.PublicSpendKey[:]),
		PrivateViewKey: strings.ToLower(strings.TrimSpace(privateViewKey)),
		PublicViewKey:  hex.EncodeToString(decoded.PublicViewKey[:]),
	}, nil
}

// Address returns the primary address of the key set on a network.
func (k Keys) Address(n Network) (string, error) {
	spend, err := decodePoint(k.PublicSpendKey)
	if err != nil {
		return "", err
	}
	view, err := decodePoint(k.PublicViewKey)
	if err != nil {
		return "", err
	}
	return EncodeAddress(n, AddressStandard, spend, view, nil)
}

// Subaddress returns the address at (account, index). (0, 0) is the primary
// address. For any other index the subaddress secret is
// m = Hs("SubAddr\0" || a || account || index), D = B + m*G and C = a*D.
func (k Keys) Subaddress(n Network, account, index uint32) (string, error) {
	if account == 0 && index == 0 {
		return k.Address(n)
	}

	viewSecret, err := parseSecretKey(k.PrivateViewKey)
	if err != nil {
		return "", err
	}
	spendBytes, err := decodePoint(k.PublicSpendKey)
	if err != nil {
		return "", err
	}
	spendPoint, err := new(edwards25519.Point).SetBytes(spendBytes[:])
	if err != nil {
		return "", kiterr.WithDetails(kiterr.ErrInvalidKey, map[string]string{"reason": "public spend key"})
	}

	var idx [8]byte
	binary.LittleEndian.PutUint32(idx[:4], account)
	binary.LittleEndian.PutUint32(idx[4:], index)
	mBytes, err := reduceScalar(keccak256([]byte(subaddressDomain), viewSecret.Bytes(), idx[:]))
	if err != nil {
		return "", err
	}
	m, err := edwards25519.NewScalar().SetCanonicalBytes(mBytes)
	if err != nil {
		return "", kiterr.Wrap(kiterr.ErrKeyEncoding, "%v", err)
	}

	d := new(edwards25519.Point).Add(spendPoint, new(edwards25519.Point).ScalarBaseMult(m))
	c := new(edwards25519.Point).ScalarMult(viewSecret, d)

	var dk, ck [32]byte
	copy(dk[:], d.Bytes())
	copy(ck[:], c.Bytes())
	return EncodeAddress(n, AddressSubaddress, dk, ck, nil)
}

func publicKey(secret []byte) ([]byte, error) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(secret)
	if err != nil {
		return nil, kiterr.Wrap(kiterr.ErrKeyEncoding, "%v", err)
	}
	return new(edwards25519.Point).ScalarBaseMult(s).Bytes(), nil
}

func decodePoint(h string) ([32]byte, error) {
	var out [32]byte
	raw, err := hex.DecodeString(h)
	if err != nil || len(raw) != publicKeySize {
		return out, kiterr.WithDetails(kiterr.ErrInvalidKey, map[string]string{"reason": "expected 64 hex characters"})
	}
	copy(out[:], raw)
	return out, nil
}
