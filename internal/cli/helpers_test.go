package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mrz1836/xmrkit/internal/kitcrypto"
	"github.com/mrz1836/xmrkit/internal/wallet"
)

//nolint:gochecknoglobals // Shared test vector
var testMnemonic = strings.Repeat("abandon ", 23) + "art"

//nolint:gochecknoglobals // Fixed test clock
var testNow = time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	kitcrypto.SetScryptWorkFactor(10) // Fast for tests
	os.Exit(m.Run())
}

// resetFlags restores every flag variable, since cobra keeps values between
// Execute calls in one process.
func resetFlags() {
	homeDir, outputFormat, verbose = "", "auto", false
	convertAccount, convertPassphrase, convertSeed = 0, false, ""
	keysSeed, keysPassphrase, keysNetwork, keysSubaddrs = "", false, "", 0
	addressNetwork, addressViewKey, addressSpendKey = "", false, false
	nodeTrusted = false
	restoreNetwork = ""
	seedKind, seedGenerate, seedRestoreHeight, seedPassphrase, seedYes = "bip39", 0, "", false, false
	walletDir, walletYes = "", false
	versionCheck = false
	configForce = false
}

// prompts answers prompt calls from queues.
type prompts struct {
	t       *testing.T
	secrets []string
	lines   []string
	confirm bool
}

// stubPrompts installs queued answers for hidden and visible prompts.
func stubPrompts(t *testing.T, secrets ...string) *prompts {
	t.Helper()
	p := &prompts{t: t, secrets: secrets}

	origSecret, origLine, origNewPW, origConfirm, origNow := promptSecretFn, promptLineFn, promptNewPasswordFn, promptConfirmFn, nowFn
	t.Cleanup(func() {
		promptSecretFn, promptLineFn, promptNewPasswordFn, promptConfirmFn, nowFn = origSecret, origLine, origNewPW, origConfirm, origNow
	})

	promptSecretFn = func(prompt string) ([]byte, error) {
		require.NotEmpty(p.t, p.secrets, "unexpected secret prompt %q", prompt)
		s := p.secrets[0]
		p.secrets = p.secrets[1:]
		return []byte(s), nil
	}
	promptLineFn = func(prompt string) (string, error) {
		require.NotEmpty(p.t, p.lines, "unexpected prompt %q", prompt)
		s := p.lines[0]
		p.lines = p.lines[1:]
		return s, nil
	}
	promptNewPasswordFn = promptNewPassword
	promptConfirmFn = func(string) bool { return p.confirm }
	nowFn = func() time.Time { return testNow }
	return p
}

// runCLI executes the root command against home and returns stdout.
// Output defaults to JSON; a later -o flag overrides it.
func runCLI(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--home", home, "-o", "json"}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), err
}

func legacyOf(t *testing.T, mnemonic, passphrase string, account uint32) string {
	t.Helper()
	legacy, err := wallet.Convert(strings.Fields(mnemonic), passphrase, account)
	require.NoError(t, err)
	return legacy
}

func keysOf(t *testing.T, mnemonic string) wallet.Keys {
	t.Helper()
	seed, err := wallet.NewBip39Seed(strings.Fields(mnemonic), "")
	require.NoError(t, err)
	keys, err := wallet.DeriveKeys(seed)
	require.NoError(t, err)
	return keys
}
