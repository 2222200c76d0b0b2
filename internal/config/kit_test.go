package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/xmrkit/internal/config"
	"github.com/mrz1836/xmrkit/internal/engine/enginetest"
	"github.com/mrz1836/xmrkit/internal/kit"
	"github.com/mrz1836/xmrkit/internal/node"
	"github.com/mrz1836/xmrkit/internal/wallet"
)

func TestKitConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Wallet.Dir = dir
	cfg.Wallet.RestoreHeight = 2_500_000
	cfg.Sync.PollInterval = 50 * time.Millisecond
	cfg.Node.Trusted = true
	eng := enginetest.New(wallet.Mainnet)
	seed := wallet.NewWatchOnlySeed("addr", "view")

	kc := cfg.KitConfig("main", seed, wallet.UnsetRestoreHeight, eng, zerolog.Nop())
	assert.Equal(t, int64(2_500_000), kc.RestoreHeight)
	assert.Equal(t, node.Defaults()[0].String(), kc.Node)
	assert.True(t, kc.TrustNode)
	assert.Equal(t, dir, kc.WalletDir)
	assert.Equal(t, 50*time.Millisecond, kc.PollInterval)
	assert.Equal(t, time.Second, kc.SettleDelay)

	k, err := kit.New(kc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "main"), k.WalletPath())

	kc = cfg.KitConfig("main", seed, 100, eng, zerolog.Nop())
	assert.Equal(t, int64(100), kc.RestoreHeight)

	cfg.Node.URI = "not a node:port"
	kc = cfg.KitConfig("main", seed, 100, eng, zerolog.Nop())
	assert.Equal(t, "not a node:port", kc.Node)
}
