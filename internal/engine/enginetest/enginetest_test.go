package enginetest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/xmrkit/internal/engine"
	"github.com/mrz1836/xmrkit/internal/wallet"
)

func legacyMnemonic(t *testing.T) string {
	t.Helper()
	m, err := wallet.Convert(strings.Fields(strings.Repeat("abandon ", 23)+"art"), "", 0)
	require.NoError(t, err)
	return m
}

func TestRecoverAndOpen(t *testing.T) {
	t.Parallel()

	eng := New(wallet.Mainnet)
	path := filepath.Join(t.TempDir(), "main")
	assert.False(t, eng.WalletExists(path))

	w, err := eng.RecoverWallet(path, "", legacyMnemonic(t), "", 1234)
	require.NoError(t, err)
	for _, p := range []string{path, path + ".keys", path + ".address.txt"} {
		_, statErr := os.Stat(p)
		require.NoError(t, statErr, p)
	}
	assert.True(t, eng.WalletExists(path))
	require.NoError(t, eng.CloseWallet(w))
	assert.Nil(t, eng.OpenWalletAt(path))

	opened, err := eng.OpenWallet(path, "")
	require.NoError(t, err)
	assert.Equal(t, w.Address(), opened.Address())
	assert.Equal(t, int64(1234), opened.RestoreHeight())
	require.NoError(t, wallet.ValidateAddress(opened.Address(), wallet.Mainnet))

	assert.Equal(t, []string{"exists", OpRecover, "exists", OpClose, OpOpen}, eng.Calls())
}

func TestWatchOnly(t *testing.T) {
	t.Parallel()

	eng := New(wallet.Mainnet)
	dir := t.TempDir()
	full, err := eng.RecoverWallet(filepath.Join(dir, "full"), "", legacyMnemonic(t), "", 0)
	require.NoError(t, err)

	w, err := eng.CreateWatchOnlyWallet(filepath.Join(dir, "watch"), "", "English", 0,
		full.Address(), full.Keys().PrivateViewKey, "")
	require.NoError(t, err)
	assert.Equal(t, full.Address(), w.Address())
	assert.Empty(t, w.Keys().PrivateSpendKey)

	_, err = eng.CreateWatchOnlyWallet(filepath.Join(dir, "bad"), "", "English", 0, "nope", "00", "")
	require.Error(t, err)
}

func TestSubaddresses(t *testing.T) {
	t.Parallel()

	eng := New(wallet.Mainnet)
	w, err := eng.RecoverWallet(filepath.Join(t.TempDir(), "main"), "", legacyMnemonic(t), "", 0)
	require.NoError(t, err)

	assert.Equal(t, 1, w.NumSubaddresses())
	primary, ok := w.Subaddress(0, 0)
	require.True(t, ok)
	assert.Equal(t, w.Address(), primary.Address)

	addr := w.NewSubaddress(0, "shop")
	require.NotEmpty(t, addr)
	sub, ok := w.Subaddress(0, 1)
	require.True(t, ok)
	assert.Equal(t, addr, sub.Address)
	assert.Equal(t, "shop", sub.Label)

	_, ok = w.Subaddress(0, 2)
	assert.False(t, ok)
	_, ok = w.Subaddress(1, 0)
	assert.False(t, ok)

	fw := w.(*Wallet)
	fw.UseSubaddress(3, 7)
	assert.Equal(t, 4, w.NumSubaddresses())
	sub, _ = w.Subaddress(0, 3)
	assert.Equal(t, uint64(7), sub.Amount)
	assert.Equal(t, uint64(1), sub.TxsCount)
}

func TestTransactions(t *testing.T) {
	t.Parallel()

	eng := New(wallet.Mainnet)
	w, err := eng.RecoverWallet(filepath.Join(t.TempDir(), "main"), "", legacyMnemonic(t), "", 0)
	require.NoError(t, err)
	fw := w.(*Wallet)
	fw.SetBalance(100, 80)
	fw.SetFee(5)

	p := w.CreateTransaction(engine.TxRequest{Amount: engine.SweepAll})
	assert.True(t, p.Status().IsOK())
	assert.Equal(t, uint64(75), p.Amount())
	assert.Equal(t, p, w.PendingTransaction())

	require.NoError(t, p.Commit())
	assert.Equal(t, []string{p.FirstTxID()}, fw.Committed())

	w.DisposePendingTransaction()
	assert.Nil(t, w.PendingTransaction())

	fw.FailCreate("not enough money")
	p = w.CreateTransaction(engine.TxRequest{Amount: 1})
	assert.Equal(t, "Error: not enough money", p.Status().String())
	assert.Len(t, fw.Created(), 2)
}

func TestFailAndStore(t *testing.T) {
	t.Parallel()

	eng := New(wallet.Mainnet)
	path := filepath.Join(t.TempDir(), "main")
	eng.Fail(OpRecover, assert.AnError)
	_, err := eng.RecoverWallet(path, "", legacyMnemonic(t), "", 0)
	require.ErrorIs(t, err, assert.AnError)

	eng.Fail(OpRecover, nil)
	w, err := eng.RecoverWallet(path, "", legacyMnemonic(t), "", 0)
	require.NoError(t, err)
	require.NoError(t, w.Store())
	assert.Equal(t, 1, w.(*Wallet).Stores())

	require.NoError(t, eng.CloseWallet(w))
	require.ErrorIs(t, w.Store(), ErrClosed)
	assert.Equal(t, 2, eng.CallCount(OpRecover))
}
