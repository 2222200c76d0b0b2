// Package config provides configuration management for xmrkit.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/xmrkit/internal/fileutil"
	"github.com/mrz1836/xmrkit/internal/node"
	"github.com/mrz1836/xmrkit/internal/wallet"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

// FileName is the name of the config file inside the home directory.
const FileName = "config.yaml"

// Config represents the application configuration.
type Config struct {
	Version int           `yaml:"version"`
	Home    string        `yaml:"home"`
	Network string        `yaml:"network"`
	Node    NodeConfig    `yaml:"node"`
	Wallet  WalletConfig  `yaml:"wallet"`
	Sync    SyncConfig    `yaml:"sync"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// NodeConfig selects the remote daemon.
type NodeConfig struct {
	URI     string `yaml:"uri"`
	Trusted bool   `yaml:"trusted"`
}

// WalletConfig defines where engine wallet files live.
type WalletConfig struct {
	Dir           string `yaml:"dir"`
	RestoreHeight int64  `yaml:"restore_height"`
}

// SyncConfig tunes session timing.
type SyncConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	SettleDelay  time.Duration `yaml:"settle_delay"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
	JSON  bool   `yaml:"json"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// Load reads configuration from the specified file. Missing keys keep
// their defaults.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kiterr.WithDetails(kiterr.ErrConfigNotFound, map[string]string{"path": path})
		}
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, kiterr.Wrap(kiterr.ErrConfigInvalid, "parsing %s: %v", path, err)
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return fileutil.WriteAtomic(path, data, 0o600)
}

// Path returns the config file path inside home.
func Path(home string) string {
	return filepath.Join(ExpandHome(home), FileName)
}

// Validate rejects settings the kit cannot run with.
func Validate(cfg *Config) error {
	if _, err := wallet.ParseNetwork(cfg.Network); err != nil {
		return kiterr.WithDetails(kiterr.ErrConfigInvalid, map[string]string{"network": cfg.Network})
	}
	if cfg.Node.URI != "" {
		if _, err := node.Parse(cfg.Node.URI); err != nil {
			return kiterr.WithDetails(kiterr.ErrConfigInvalid, map[string]string{"node.uri": cfg.Node.URI})
		}
	}
	if cfg.Sync.PollInterval <= 0 {
		return kiterr.WithDetails(kiterr.ErrConfigInvalid, map[string]string{"sync.poll_interval": cfg.Sync.PollInterval.String()})
	}
	if cfg.Sync.SettleDelay <= 0 {
		return kiterr.WithDetails(kiterr.ErrConfigInvalid, map[string]string{"sync.settle_delay": cfg.Sync.SettleDelay.String()})
	}
	if cfg.Wallet.RestoreHeight < wallet.UnsetRestoreHeight {
		return kiterr.WithDetails(kiterr.ErrConfigInvalid, map[string]string{"wallet.restore_height": "negative"})
	}
	switch cfg.Output.DefaultFormat {
	case "", "auto", "text", "json":
	default:
		return kiterr.WithDetails(kiterr.ErrConfigInvalid, map[string]string{"output.default_format": cfg.Output.DefaultFormat})
	}
	return nil
}

// GetNetwork returns the configured network, defaulting to mainnet.
func (c *Config) GetNetwork() wallet.Network {
	n, err := wallet.ParseNetwork(c.Network)
	if err != nil {
		return wallet.Mainnet
	}
	return n
}

// GetNode returns the configured daemon, or the first built-in node when
// none is set.
func (c *Config) GetNode() (node.Descriptor, error) {
	if c.Node.URI == "" {
		return node.Defaults()[0], nil
	}
	return node.Parse(c.Node.URI)
}

// GetHome returns the expanded xmrkit home directory path.
func (c *Config) GetHome() string {
	return ExpandHome(c.Home)
}

// GetWalletDir returns the engine wallet directory, <home>/wallets unless set.
func (c *Config) GetWalletDir() string {
	if c.Wallet.Dir != "" {
		return ExpandHome(c.Wallet.Dir)
	}
	return filepath.Join(c.GetHome(), "wallets")
}

// GetSeedDir returns the encrypted seed store directory.
func (c *Config) GetSeedDir() string {
	return filepath.Join(c.GetHome(), "seeds")
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// DefaultHome returns the default xmrkit home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".xmrkit"
	}
	return filepath.Join(home, ".xmrkit")
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
