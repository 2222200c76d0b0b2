package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/xmrkit/internal/wallet"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

func TestKeys_FromMnemonic(t *testing.T) {
	stubPrompts(t, testMnemonic)

	stdout, err := runCLI(t, t.TempDir(), "keys", "--subaddresses", "2")
	require.NoError(t, err)

	want := keysOf(t, testMnemonic)
	wantAddr, err := want.Address(wallet.Mainnet)
	require.NoError(t, err)
	sub2, err := want.Subaddress(wallet.Mainnet, 0, 2)
	require.NoError(t, err)

	var res keysResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, want, res.Keys)
	assert.Equal(t, wantAddr, res.Address)
	assert.Equal(t, wallet.Mainnet, res.Network)
	require.Len(t, res.Subaddresses, 2)
	assert.Equal(t, sub2, res.Subaddresses[1])
}

func TestKeys_LegacyInputMatchesBip39(t *testing.T) {
	stubPrompts(t, legacyOf(t, testMnemonic, "", 0))

	stdout, err := runCLI(t, t.TempDir(), "keys", "--network", "stagenet")
	require.NoError(t, err)

	want := keysOf(t, testMnemonic)
	wantAddr, err := want.Address(wallet.Stagenet)
	require.NoError(t, err)

	var res keysResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, want.PrivateSpendKey, res.PrivateSpendKey)
	assert.Equal(t, wantAddr, res.Address)
}

func TestKeys_OffsetRejected(t *testing.T) {
	stubPrompts(t, legacyOf(t, testMnemonic, "", 0), "offset", "offset")

	_, err := runCLI(t, t.TempDir(), "keys", "--passphrase")
	require.ErrorIs(t, err, kiterr.ErrKeyEncoding)
}

func TestKeys_BadNetwork(t *testing.T) {
	stubPrompts(t)

	_, err := runCLI(t, t.TempDir(), "keys", "--network", "regtest")
	require.ErrorIs(t, err, kiterr.ErrInvalidInput)
}

func TestKeys_TextHidesNothingRequested(t *testing.T) {
	stubPrompts(t, testMnemonic)

	stdout, err := runCLI(t, t.TempDir(), "keys", "-o", "text", "--subaddresses", "1")
	require.NoError(t, err)

	want := keysOf(t, testMnemonic)
	assert.Contains(t, stdout, "Private spend key:  "+want.PrivateSpendKey)
	assert.Contains(t, stdout, "Public view key:    "+want.PublicViewKey)
	assert.Contains(t, stdout, "SUBADDRESS")
}
