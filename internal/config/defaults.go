package config

import (
	"time"

	"github.com/mrz1836/xmrkit/internal/wallet"
)

// Default session timings.
const (
	DefaultPollInterval = time.Second
	DefaultSettleDelay  = time.Second
)

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.xmrkit",
		Network: string(wallet.Mainnet),
		Node: NodeConfig{
			URI:     "", // First built-in node
			Trusted: false,
		},
		Wallet: WalletConfig{
			RestoreHeight: wallet.UnsetRestoreHeight,
		},
		Sync: SyncConfig{
			PollInterval: DefaultPollInterval,
			SettleDelay:  DefaultSettleDelay,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "",
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
		},
	}
}
