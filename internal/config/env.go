package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHome         = "XMRKIT_HOME"
	EnvNetwork      = "XMRKIT_NETWORK"
	EnvNode         = "XMRKIT_NODE"
	EnvTrustNode    = "XMRKIT_TRUST_NODE"
	EnvLogLevel     = "XMRKIT_LOG_LEVEL"
	EnvOutputFormat = "XMRKIT_OUTPUT_FORMAT"
	EnvWalletDir    = "XMRKIT_WALLET_DIR"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvNetwork); v != "" {
		cfg.Network = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv(EnvNode); v != "" {
		cfg.Node.URI = SanitizeNode(v)
	}

	if v := os.Getenv(EnvTrustNode); v != "" {
		cfg.Node.Trusted = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvWalletDir); v != "" {
		cfg.Wallet.Dir = v
	}
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}

// SanitizeNode cleans a pasted node descriptor: surrounding whitespace, a
// URL scheme and control characters are removed.
func SanitizeNode(s string) string {
	s = strings.TrimSpace(s)
	for _, scheme := range []string{"http://", "https://"} {
		if len(s) >= len(scheme) && strings.EqualFold(s[:len(scheme)], scheme) {
			s = s[len(scheme):]
			break
		}
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || r == ' ' {
			return -1
		}
		return r
	}, s)
}
