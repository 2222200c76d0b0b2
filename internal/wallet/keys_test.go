package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

const (
	abandonArtAddress = "43Xuqb8woKbELkxbc4U8ZEMk87rx8VingbtWmxXpFiJK6mKHJuK8bGGTrndC4y6DmGPdwQDyJaWgu6ZXCKNfeoRSVMTUBCX"
	abandonArtView    = "f6375bd99c5d6ba250660fe1bda555cf1eee558a5076207afb7b12602b66980b"
	abandonArtSpend   = "4fe2e8fa6ad56846a4b70b5cf85a8a5ff310d8eb5daaf5b11af9591d79fc0a02"
)

func abandonArtSeed(t *testing.T) Seed {
	t.Helper()
	seed, err := NewBip39Seed(strings.Fields(strings.Repeat("abandon ", 23)+"art"), "")
	require.NoError(t, err)
	return seed
}

func TestDeriveKeys_Bip39(t *testing.T) {
	t.Parallel()

	keys, err := DeriveKeys(abandonArtSeed(t))
	require.NoError(t, err)

	assert.Equal(t, Keys{
		PrivateSpendKey: abandonArtSpend,
		PublicSpendKey:  "32698cece58bce4fc230bfc85244917c046adc40abc88dd0952b1aac47b45022",
		PrivateViewKey:  abandonArtView,
		PublicViewKey:   "76064b01b75935a0936914a89af49f8756424f034350d6213ec8f216f3f649fb",
	}, keys)

	addr, err := keys.Address(Mainnet)
	require.NoError(t, err)
	assert.Equal(t, abandonArtAddress, addr)
}

func TestDeriveKeys_SecondVector(t *testing.T) {
	t.Parallel()

	seed, err := NewBip39Seed(strings.Fields(strings.Repeat("abandon ", 11)+"about"), "")
	require.NoError(t, err)

	keys, err := DeriveKeys(seed)
	require.NoError(t, err)
	assert.Equal(t, "2fe2f4de346ab4c14954fdbda6503a3edc191d687198d39336e9a65c1b68914b", keys.PublicSpendKey)
	assert.Equal(t, "b92e5bd93ac8b259bd0e08417af9d7ed45a50a1548c2907c66ed7dd3e8436500", keys.PrivateViewKey)
	assert.Equal(t, "66162ca57f4e20035e55fc5918de8d342ad2f8ee28b94135773c4afa8b2b2375", keys.PublicViewKey)

	addr, err := keys.Address(Mainnet)
	require.NoError(t, err)
	assert.Equal(t, "43SMrTtLZsyZL81653f6b3BWpU5u6XZ2SRdAaM1MxLCGDcTq6mKi9D11ZgN2hbmCdS9j66xu8Wz3J9wgiwkYssLnEK44756", addr)
}

func TestDeriveKeys_LegacyMatchesBip39(t *testing.T) {
	t.Parallel()

	legacy, err := NewLegacySeed(strings.Fields(abandonArtLegacy), "")
	require.NoError(t, err)

	fromLegacy, err := DeriveKeys(legacy)
	require.NoError(t, err)
	fromBip39, err := DeriveKeys(abandonArtSeed(t))
	require.NoError(t, err)
	assert.Equal(t, fromBip39, fromLegacy)
}

func TestDeriveKeys_Rejections(t *testing.T) {
	t.Parallel()

	withOffset, err := NewLegacySeed(strings.Fields(abandonArtLegacy), "offset")
	require.NoError(t, err)
	_, err = DeriveKeys(withOffset)
	require.ErrorIs(t, err, kiterr.ErrKeyEncoding)

	_, err = DeriveKeys(NewWatchOnlySeed(abandonArtAddress, abandonArtView))
	require.ErrorIs(t, err, kiterr.ErrWatchOnlyConversion)

	_, err = DeriveKeys(Seed{})
	require.ErrorIs(t, err, kiterr.ErrInvalidInput)
}

func TestKeys_NetworkAddresses(t *testing.T) {
	t.Parallel()

	keys, err := DeriveKeys(abandonArtSeed(t))
	require.NoError(t, err)

	stagenet, err := keys.Address(Stagenet)
	require.NoError(t, err)
	assert.Equal(t, "53jwvS3uSvhELkxbc4U8ZEMk87rx8VingbtWmxXpFiJK6mKHJuK8bGGTrndC4y6DmGPdwQDyJaWgu6ZXCKNfeoRSVLJwjhE", stagenet)

	testnet, err := keys.Address(Testnet)
	require.NoError(t, err)
	assert.Equal(t, "9u5TKqoD5ghELkxbc4U8ZEMk87rx8VingbtWmxXpFiJK6mKHJuK8bGGTrndC4y6DmGPdwQDyJaWgu6ZXCKNfeoRSVMsE8HG", testnet)
}

func TestKeys_Subaddress(t *testing.T) {
	t.Parallel()

	keys, err := DeriveKeys(abandonArtSeed(t))
	require.NoError(t, err)

	tests := []struct {
		network        Network
		account, index uint32
		want           string
	}{
		{Mainnet, 0, 0, abandonArtAddress},
		{Mainnet, 0, 1, "84SRAaUXDrhfxRo41T7TGD8WKCC3w6VjZW7uVLTMU7BLgqHnn2t59MW1qkhGU1rsC8bhsswDJaLyeQ9qbybxKWHq6PKnQc4"},
		{Mainnet, 0, 2, "83dTVFH9Tm9ZYuEE1fZvdiMPWjWnZfdteLMQWdeyqDTUfWZ2SZNdeKp2AhaikuQussfpd8PY8zFFdD13gfSXqdmNTPZ2KwU"},
		{Mainnet, 1, 0, "89gxQfqWpNVUMkcCGFJVo2VFkmLkugY8KGngNcXRMUa8d4MziN7W95MDkqAR5pPLyoShd3KH1EnG9gGWGJ1MpuKgCgMTWf6"},
		{Stagenet, 0, 1, "74EP5jZZaFbfxRo41T7TGD8WKCC3w6VjZW7uVLTMU7BLgqHnn2t59MW1qkhGU1rsC8bhsswDJaLyeQ9qbybxKWHq6NTCQYv"},
	}
	for _, tc := range tests {
		got, err := keys.Subaddress(tc.network, tc.account, tc.index)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %d/%d", tc.network, tc.account, tc.index)

		decoded, err := DecodeAddress(got)
		require.NoError(t, err)
		if tc.account == 0 && tc.index == 0 {
			assert.Equal(t, AddressStandard, decoded.Type)
		} else {
			assert.Equal(t, AddressSubaddress, decoded.Type)
		}
	}
}

func TestKeys_BadHex(t *testing.T) {
	t.Parallel()

	_, err := Keys{PublicSpendKey: "zz"}.Address(Mainnet)
	require.ErrorIs(t, err, kiterr.ErrInvalidKey)

	_, err = Keys{PrivateViewKey: "00"}.Subaddress(Mainnet, 0, 1)
	require.ErrorIs(t, err, kiterr.ErrInvalidKey)
}

func TestWatchOnlyKeys(t *testing.T) {
	t.Parallel()

	keys, err := WatchOnlyKeys(abandonArtAddress, strings.ToUpper(abandonArtView))
	require.NoError(t, err)
	assert.Empty(t, keys.PrivateSpendKey)
	assert.Equal(t, abandonArtView, keys.PrivateViewKey)

	addr, err := keys.Address(Mainnet)
	require.NoError(t, err)
	assert.Equal(t, abandonArtAddress, addr)

	sub, err := keys.Subaddress(Mainnet, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, "84SRAaUXDrhfxRo41T7TGD8WKCC3w6VjZW7uVLTMU7BLgqHnn2t59MW1qkhGU1rsC8bhsswDJaLyeQ9qbybxKWHq6PKnQc4", sub)

	_, err = WatchOnlyKeys(abandonArtAddress, abandonArtSpend)
	require.ErrorIs(t, err, kiterr.ErrInvalidKey)

	_, err = WatchOnlyKeys(sub, abandonArtView)
	require.ErrorIs(t, err, kiterr.ErrInvalidAddress)
}
