package wallet

import (
	"encoding/binary"
	"math/bits"
	"strings"

	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

// Monero's base58 differs from Bitcoin's: input is cut into 8-byte blocks,
// each block is encoded big-endian into a fixed number of characters, and a
// short final block uses a shorter fixed width.
const (
	base58Alphabet   = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	base58BlockSize  = 8
	base58FullLength = 11
)

//nolint:gochecknoglobals // Lookup tables
var (
	base58EncodedSizes = [base58BlockSize + 1]int{0, 2, 3, 5, 6, 7, 9, 10, 11}
	base58Index        = func() [256]int8 {
		var t [256]int8
		for i := range t {
			t[i] = -1
		}
		for i := 0; i < len(base58Alphabet); i++ {
			t[base58Alphabet[i]] = int8(i) //nolint:gosec // alphabet has 58 entries
		}
		return t
	}()
)

func base58Encode(data []byte) string {
	var b strings.Builder
	for len(data) > 0 {
		n := min(base58BlockSize, len(data))
		encodeBlock(&b, data[:n])
		data = data[n:]
	}
	return b.String()
}

func encodeBlock(b *strings.Builder, block []byte) {
	var buf [base58BlockSize]byte
	copy(buf[base58BlockSize-len(block):], block)
	v := binary.BigEndian.Uint64(buf[:])

	width := base58EncodedSizes[len(block)]
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = base58Alphabet[v%58]
		v /= 58
	}
	b.Write(out)
}

func base58Decode(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)/base58FullLength*base58BlockSize+base58BlockSize)
	for len(s) > 0 {
		n := min(base58FullLength, len(s))
		block, err := decodeBlock(s[:n])
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
		s = s[n:]
	}
	return out, nil
}

func decodeBlock(s string) ([]byte, error) {
	size := -1
	for i, w := range base58EncodedSizes {
		if w == len(s) {
			size = i
			break
		}
	}
	if size <= 0 {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidAddress, map[string]string{"reason": "invalid base58 length"})
	}

	var v uint64
	for i := 0; i < len(s); i++ {
		d := base58Index[s[i]]
		if d < 0 {
			return nil, kiterr.WithDetails(kiterr.ErrInvalidAddress, map[string]string{"reason": "invalid base58 character"})
		}
		hi, lo := bits.Mul64(v, 58)
		sum, carry := bits.Add64(lo, uint64(d), 0)
		if hi != 0 || carry != 0 {
			return nil, kiterr.WithDetails(kiterr.ErrInvalidAddress, map[string]string{"reason": "base58 block overflow"})
		}
		v = sum
	}
	if size < base58BlockSize && v>>(uint(size)*8) != 0 {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidAddress, map[string]string{"reason": "base58 block overflow"})
	}

	var buf [base58BlockSize]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return buf[base58BlockSize-size:], nil
}
