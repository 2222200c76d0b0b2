// Package errors provides structured error handling for xmrkit.
// It defines the sentinel taxonomy shared by the converter, the sync state
// machine and the CLI, plus helpers for adding context, details and
// suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess    = 0 // Successful execution
	ExitGeneral    = 1 // General/unknown error
	ExitInput      = 2 // Invalid input
	ExitAuth       = 3 // Authentication failed
	ExitNotFound   = 4 // Resource not found
	ExitPermission = 5 // Permission denied
)

// Error codes of the SyncError family. They are compared by NotSynced equality.
const (
	CodeNotStarted  = "NOT_STARTED"
	CodeInvalidNode = "INVALID_NODE"
	CodeStartError  = "START_ERROR"
)

// KitError is the structured error type for xmrkit.
type KitError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *KitError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *KitError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for KitError.
func (e *KitError) Is(target error) bool {
	var t *KitError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &KitError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &KitError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	// Conversion errors.
	ErrInvalidWordCount = &KitError{
		Code:     "INVALID_WORD_COUNT",
		Message:  "invalid mnemonic word count",
		ExitCode: ExitInput,
	}

	ErrKeyEncoding = &KitError{
		Code:     "KEY_ENCODING",
		Message:  "private key cannot be encoded",
		ExitCode: ExitGeneral,
	}

	ErrWatchOnlyConversion = &KitError{
		Code:     "WATCH_ONLY_CONVERSION",
		Message:  "watch-only seed cannot be converted to a legacy mnemonic",
		ExitCode: ExitInput,
	}

	ErrInvalidMnemonic = &KitError{
		Code:     "INVALID_MNEMONIC",
		Message:  "invalid mnemonic phrase",
		ExitCode: ExitInput,
	}

	ErrInvalidChecksum = &KitError{
		Code:     "INVALID_CHECKSUM",
		Message:  "invalid checksum",
		ExitCode: ExitInput,
	}

	ErrInvalidAddress = &KitError{
		Code:     "INVALID_ADDRESS",
		Message:  "invalid address",
		ExitCode: ExitInput,
	}

	ErrInvalidKey = &KitError{
		Code:     "INVALID_KEY",
		Message:  "invalid key",
		ExitCode: ExitInput,
	}

	ErrInvalidRestoreHeight = &KitError{
		Code:     "INVALID_RESTORE_HEIGHT",
		Message:  "invalid restore height or date",
		ExitCode: ExitInput,
	}

	// Sync errors. They never cross the session boundary as return values,
	// only as the payload of a NotSynced state.
	ErrNotStarted = &KitError{
		Code:     CodeNotStarted,
		Message:  "Not Started",
		ExitCode: ExitGeneral,
	}

	ErrInvalidNode = &KitError{
		Code:     CodeInvalidNode,
		Message:  "invalid node",
		ExitCode: ExitInput,
	}

	ErrStartError = &KitError{
		Code:     CodeStartError,
		Message:  "wallet start failed",
		ExitCode: ExitGeneral,
	}

	// Engine and wallet errors.
	ErrEngine = &KitError{
		Code:     "ENGINE_ERROR",
		Message:  "wallet engine error",
		ExitCode: ExitGeneral,
	}

	ErrWalletNotOpen = &KitError{
		Code:     "WALLET_NOT_OPEN",
		Message:  "wallet is not open",
		ExitCode: ExitGeneral,
	}

	ErrWalletNotFound = &KitError{
		Code:     "WALLET_NOT_FOUND",
		Message:  "wallet not found",
		ExitCode: ExitNotFound,
	}

	ErrWalletExists = &KitError{
		Code:     "WALLET_EXISTS",
		Message:  "wallet already exists",
		ExitCode: ExitInput,
	}

	ErrDecryptionFailed = &KitError{
		Code:     "DECRYPTION_FAILED",
		Message:  "decryption failed - wrong password or corrupted file",
		ExitCode: ExitAuth,
	}

	// Config-specific errors.
	ErrConfigNotFound = &KitError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &KitError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}
)

// New creates a new KitError with the given code and message.
func New(code, message string) *KitError {
	return &KitError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// InvalidNode returns a SyncError for a node that cannot be used.
func InvalidNode(message string) error {
	return &KitError{
		Code:     CodeInvalidNode,
		Message:  message,
		ExitCode: ExitInput,
	}
}

// StartError returns a SyncError for a failed engine bring-up.
func StartError(message string) error {
	return &KitError{
		Code:     CodeStartError,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// SameError reports whether two errors describe the same failure: equal
// codes and messages for KitErrors, equal text otherwise.
func SameError(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}
	var ka, kb *KitError
	if errors.As(a, &ka) && errors.As(b, &kb) {
		return ka.Code == kb.Code && ka.Message == kb.Message
	}
	return a.Error() == b.Error()
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var se *KitError
	if errors.As(err, &se) {
		return &KitError{
			Code:       se.Code,
			Message:    fmt.Sprintf("%s: %s", msg, se.Message),
			Details:    se.Details,
			Suggestion: se.Suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &KitError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var se *KitError
	if errors.As(err, &se) {
		return &KitError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    details,
			Suggestion: se.Suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &KitError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var se *KitError
	if errors.As(err, &se) {
		return &KitError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    se.Details,
			Suggestion: suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &KitError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var se *KitError
	if errors.As(err, &se) {
		return se.ExitCode
	}
	if errors.Is(err, fs.ErrPermission) {
		return ExitPermission
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var se *KitError
	if errors.As(err, &se) {
		return se.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
