package config

import (
	"github.com/rs/zerolog"

	"github.com/mrz1836/xmrkit/internal/engine"
	"github.com/mrz1836/xmrkit/internal/kit"
	"github.com/mrz1836/xmrkit/internal/wallet"
)

// KitConfig returns kit settings for wallet id on engine eng. An unset
// restoreHeight falls back to wallet.restore_height, and an empty node URI
// to the first built-in node. An unparsable URI is passed through so the
// kit reports it as an invalid node on Start.
func (c *Config) KitConfig(id string, seed wallet.Seed, restoreHeight int64, eng engine.Manager, logger zerolog.Logger) *kit.Config {
	if restoreHeight == wallet.UnsetRestoreHeight {
		restoreHeight = c.Wallet.RestoreHeight
	}

	nodeURI := c.Node.URI
	if d, err := c.GetNode(); err == nil {
		nodeURI = d.String()
	}

	return &kit.Config{
		Seed:          seed,
		RestoreHeight: restoreHeight,
		WalletID:      id,
		WalletDir:     c.GetWalletDir(),
		Node:          nodeURI,
		TrustNode:     c.Node.Trusted,
		Engine:        eng,
		Logger:        logger,
		PollInterval:  c.Sync.PollInterval,
		SettleDelay:   c.Sync.SettleDelay,
	}
}
