package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"  true  ", true},
		{"0", false},
		{"false", false},
		{"no", false},
		{"off", false},
		{"", false},
		{"random", false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, parseBool(tc.input))
		})
	}
}

func TestSanitizeNode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"clean", "node.example.org:18081", "node.example.org:18081"},
		{"spaces", "  node.example.org:18081 \n", "node.example.org:18081"},
		{"scheme", "HTTPS://node.example.org:18089/mainnet", "node.example.org:18089/mainnet"},
		{"control chars", "node.exa\tmple.org\x00:18081", "node.example.org:18081"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, SanitizeNode(tc.input))
		})
	}
}

//nolint:paralleltest // t.Setenv cannot be used with t.Parallel
func TestApplyEnvironment(t *testing.T) {
	t.Setenv(EnvHome, "/tmp/xmrkit-home")
	t.Setenv(EnvNetwork, " Stagenet ")
	t.Setenv(EnvNode, " https://node.example.org:38081/stagenet ")
	t.Setenv(EnvTrustNode, "yes")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvOutputFormat, "JSON")
	t.Setenv(EnvWalletDir, "/tmp/wallets")

	cfg := Defaults()
	ApplyEnvironment(cfg)

	assert.Equal(t, "/tmp/xmrkit-home", cfg.Home)
	assert.Equal(t, "stagenet", cfg.Network)
	assert.Equal(t, "node.example.org:38081/stagenet", cfg.Node.URI)
	assert.True(t, cfg.Node.Trusted)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, "/tmp/wallets", cfg.Wallet.Dir)
}

//nolint:paralleltest // t.Setenv cannot be used with t.Parallel
func TestApplyEnvironment_UnsetKeepsValues(t *testing.T) {
	t.Setenv(EnvNode, "")
	cfg := Defaults()
	cfg.Node.URI = "kept.example.org"
	ApplyEnvironment(cfg)
	assert.Equal(t, "kept.example.org", cfg.Node.URI)
	assert.Equal(t, "~/.xmrkit", cfg.Home)
}
