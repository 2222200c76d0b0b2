package wallet

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"strings"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/sha3"

	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

// Network is a Monero network.
type Network string

// Supported networks.
const (
	Mainnet  Network = "mainnet"
	Stagenet Network = "stagenet"
	Testnet  Network = "testnet"
)

// AddressType distinguishes the three address forms.
type AddressType int

// Address types.
const (
	AddressStandard AddressType = iota
	AddressSubaddress
	AddressIntegrated
)

// String returns a short name for the address type.
func (t AddressType) String() string {
	switch t {
	case AddressStandard:
		return "standard"
	case AddressSubaddress:
		return "subaddress"
	case AddressIntegrated:
		return "integrated"
	default:
		return "unknown"
	}
}

const (
	publicKeySize    = 32
	paymentIDSize    = 8
	addressChecksum  = 4
	subaddressDomain = "SubAddr\x00"
)

//nolint:gochecknoglobals // Network constants
var networkPrefixes = map[Network][3]uint64{
	Mainnet:  {18, 42, 19},
	Stagenet: {24, 36, 25},
	Testnet:  {53, 63, 54},
}

// ParseNetwork accepts the network names used in config files and node
// descriptors. An empty string selects mainnet.
func ParseNetwork(s string) (Network, error) {
	switch n := Network(strings.ToLower(strings.TrimSpace(s))); n {
	case "":
		return Mainnet, nil
	case Mainnet, Stagenet, Testnet:
		return n, nil
	default:
		return "", kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{"network": s})
	}
}

// Prefix returns the base58 address prefix for an address type.
func (n Network) Prefix(t AddressType) uint64 {
	return networkPrefixes[n][t]
}

// DecodedAddress is the parsed content of a Monero address.
type DecodedAddress struct {
	Network        Network
	Type           AddressType
	PublicSpendKey [32]byte
	PublicViewKey  [32]byte
	PaymentID      []byte
}

// EncodeAddress builds the base58 address for a pair of public keys.
func EncodeAddress(n Network, t AddressType, spend, view [32]byte, paymentID []byte) (string, error) {
	prefixes, ok := networkPrefixes[n]
	if !ok {
		return "", kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{"network": string(n)})
	}
	if t == AddressIntegrated && len(paymentID) != paymentIDSize {
		return "", kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{"reason": "payment id must be 8 bytes"})
	}

	data := binary.AppendUvarint(nil, prefixes[t])
	data = append(data, spend[:]...)
	data = append(data, view[:]...)
	if t == AddressIntegrated {
		data = append(data, paymentID...)
	}
	data = append(data, keccak256(data)[:addressChecksum]...)
	return base58Encode(data), nil
}

// DecodeAddress parses and verifies a Monero address on any network.
func DecodeAddress(address string) (DecodedAddress, error) {
	var out DecodedAddress

	raw, err := base58Decode(strings.TrimSpace(address))
	if err != nil {
		return out, err
	}
	if len(raw) < addressChecksum+1 {
		return out, kiterr.WithDetails(kiterr.ErrInvalidAddress, map[string]string{"reason": "too short"})
	}

	body, sum := raw[:len(raw)-addressChecksum], raw[len(raw)-addressChecksum:]
	if !bytes.Equal(keccak256(body)[:addressChecksum], sum) {
		return out, kiterr.WithDetails(kiterr.ErrInvalidAddress, map[string]string{"reason": "checksum mismatch"})
	}

	prefix, n := binary.Uvarint(body)
	if n <= 0 {
		return out, kiterr.WithDetails(kiterr.ErrInvalidAddress, map[string]string{"reason": "bad prefix"})
	}
	network, typ, ok := lookupPrefix(prefix)
	if !ok {
		return out, kiterr.WithDetails(kiterr.ErrInvalidAddress, map[string]string{"reason": "unknown prefix"})
	}
	body = body[n:]

	want := 2 * publicKeySize
	if typ == AddressIntegrated {
		want += paymentIDSize
	}
	if len(body) != want {
		return out, kiterr.WithDetails(kiterr.ErrInvalidAddress, map[string]string{"reason": "bad length"})
	}

	out.Network = network
	out.Type = typ
	copy(out.PublicSpendKey[:], body[:publicKeySize])
	copy(out.PublicViewKey[:], body[publicKeySize:2*publicKeySize])
	if typ == AddressIntegrated {
		out.PaymentID = append([]byte(nil), body[2*publicKeySize:]...)
	}

	for _, k := range [][32]byte{out.PublicSpendKey, out.PublicViewKey} {
		if _, err := new(edwards25519.Point).SetBytes(k[:]); err != nil {
			return DecodedAddress{}, kiterr.WithDetails(kiterr.ErrInvalidAddress, map[string]string{"reason": "key is not a curve point"})
		}
	}
	return out, nil
}

func lookupPrefix(prefix uint64) (Network, AddressType, bool) {
	for _, n := range []Network{Mainnet, Stagenet, Testnet} {
		for t, p := range networkPrefixes[n] {
			if p == prefix {
				return n, AddressType(t), true
			}
		}
	}
	return "", 0, false
}

// ValidateAddress checks that address is a well-formed address. When network
// is non-empty the address must also belong to it.
func ValidateAddress(address string, network Network) error {
	decoded, err := DecodeAddress(address)
	if err != nil {
		return err
	}
	if network != "" && decoded.Network != network {
		return kiterr.WithDetails(kiterr.ErrInvalidAddress, map[string]string{
			"network":  string(decoded.Network),
			"expected": string(network),
		})
	}
	return nil
}

// ValidatePrivateViewKey checks that key is the private view key of address.
func ValidatePrivateViewKey(key, address string) error {
	decoded, err := DecodeAddress(address)
	if err != nil {
		return err
	}
	return matchSecretKey(key, decoded.PublicViewKey, "view")
}

// ValidatePrivateSpendKey checks that key is the private spend key of address.
func ValidatePrivateSpendKey(key, address string) error {
	decoded, err := DecodeAddress(address)
	if err != nil {
		return err
	}
	return matchSecretKey(key, decoded.PublicSpendKey, "spend")
}

func matchSecretKey(keyHex string, public [32]byte, role string) error {
	s, err := parseSecretKey(keyHex)
	if err != nil {
		return err
	}
	derived := new(edwards25519.Point).ScalarBaseMult(s).Bytes()
	if !bytes.Equal(derived, public[:]) {
		return kiterr.WithDetails(kiterr.ErrInvalidKey, map[string]string{
			"reason": role + " key does not match address",
		})
	}
	return nil
}

func parseSecretKey(keyHex string) (*edwards25519.Scalar, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(keyHex))
	if err != nil || len(raw) != PrivateKeySize {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidKey, map[string]string{"reason": "expected 64 hex characters"})
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(raw)
	if err != nil {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidKey, map[string]string{"reason": "key is not reduced"})
	}
	return s, nil
}

func keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}
