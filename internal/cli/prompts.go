package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mrz1836/xmrkit/internal/wallet"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

// minPasswordLength is the shortest accepted seed store password.
const minPasswordLength = 8

// Prompt hooks, replaced in tests.
//
//nolint:gochecknoglobals // Swappable prompt functions for tests
var (
	promptSecretFn      = promptSecret
	promptLineFn        = promptLine
	promptNewPasswordFn = promptNewPassword
	promptConfirmFn     = promptConfirm
)

//nolint:gochecknoglobals // Shared stdin reader so piped input is not lost between prompts
var stdinReader = bufio.NewReader(os.Stdin)

// promptSecret reads one line without echo when stdin is a terminal. Piped
// input is read as a plain line. The caller zeroes the returned bytes.
func promptSecret(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	fd := int(os.Stdin.Fd()) //nolint:gosec // G115: Fd() returns uintptr, safe conversion for term.ReadPassword
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		outln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		return secret, nil
	}

	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// promptLine reads one visible line.
func promptLine(prompt string) (string, error) {
	out(os.Stderr, "%s", prompt)
	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptNewPassword prompts for a seed store password with confirmation.
// The caller is responsible for zeroing the returned bytes after use.
func promptNewPassword() ([]byte, error) {
	password, err := promptSecretFn("Enter encryption password: ")
	if err != nil {
		return nil, err
	}

	if len(password) < minPasswordLength {
		wallet.ZeroBytes(password)
		return nil, kiterr.WithSuggestion(
			kiterr.ErrInvalidInput,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength),
		)
	}

	confirm, err := promptSecretFn("Confirm password: ")
	if err != nil {
		wallet.ZeroBytes(password)
		return nil, err
	}
	defer wallet.ZeroBytes(confirm)

	if string(password) != string(confirm) {
		wallet.ZeroBytes(password)
		return nil, kiterr.WithSuggestion(kiterr.ErrInvalidInput, "passwords do not match")
	}

	return password, nil
}

// promptConfirm asks a yes/no question, defaulting to no.
func promptConfirm(question string) bool {
	answer, err := promptLineFn(question + " [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// promptMnemonic reads a hidden mnemonic and returns its normalized words.
// Numbering, bullets and commas from copied seed sheets are stripped.
func promptMnemonic(prompt string) ([]string, error) {
	raw, err := promptSecretFn(prompt)
	if err != nil {
		return nil, err
	}
	defer wallet.ZeroBytes(raw)

	words := wallet.SplitMnemonic(string(raw))
	if len(words) == 0 {
		return nil, kiterr.WithSuggestion(kiterr.ErrInvalidWordCount, "no words entered")
	}
	return words, nil
}

// promptOptionalSecret reads a secret that may be empty, such as a BIP39
// passphrase or a seed offset. A non-empty value must be entered twice.
func promptOptionalSecret(label string) (string, error) {
	first, err := promptSecretFn(fmt.Sprintf("Enter %s (empty for none): ", label))
	if err != nil {
		return "", err
	}
	defer wallet.ZeroBytes(first)
	if len(first) == 0 {
		return "", nil
	}

	confirm, err := promptSecretFn(fmt.Sprintf("Confirm %s: ", label))
	if err != nil {
		return "", err
	}
	defer wallet.ZeroBytes(confirm)

	if string(first) != string(confirm) {
		return "", kiterr.WithSuggestion(kiterr.ErrInvalidInput, label+" entries do not match")
	}
	return string(first), nil
}
