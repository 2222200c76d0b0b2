// Package syncstate models the progress of a wallet session as a closed set
// of immutable states: connecting, syncing, synced and not synced.
package syncstate

import (
	"fmt"
	"math"

	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

// Kind identifies the variant of a State.
type Kind int

const (
	// KindNotSynced carries the error that stopped or prevented syncing.
	KindNotSynced Kind = iota
	// KindConnecting is published while the session waits for the arbiter
	// (Waiting true) and while the engine is brought up (Waiting false).
	KindConnecting
	// KindSyncing carries scan progress and the number of blocks left.
	KindSyncing
	// KindSynced means the wallet has caught up with the daemon.
	KindSynced
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindNotSynced:
		return "NotSynced"
	case KindConnecting:
		return "Connecting"
	case KindSyncing:
		return "Syncing"
	case KindSynced:
		return "Synced"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// State is an immutable sync state snapshot. Build values with the
// constructors; the zero value is NotSynced with no error and should not be
// published.
type State struct {
	kind      Kind
	waiting   bool
	progress  float64
	remaining int64
	err       error
}

// Initial returns the state of a session that was never started.
func Initial() State {
	return NotSynced(kiterr.ErrNotStarted)
}

// Connecting returns a Connecting state.
func Connecting(waiting bool) State {
	return State{kind: KindConnecting, waiting: waiting}
}

// Syncing returns a Syncing state. Progress is clamped to [0, 1].
func Syncing(progress float64, remainingBlocks int64) State {
	switch {
	case math.IsNaN(progress) || progress < 0:
		progress = 0
	case progress > 1:
		progress = 1
	}
	return State{kind: KindSyncing, progress: progress, remaining: remainingBlocks}
}

// Synced returns the Synced state.
func Synced() State {
	return State{kind: KindSynced}
}

// NotSynced returns a NotSynced state carrying err.
func NotSynced(err error) State {
	return State{kind: KindNotSynced, err: err}
}

// Kind returns the variant.
func (s State) Kind() Kind { return s.kind }

// Waiting reports whether a Connecting state is waiting for another session
// to release the engine.
func (s State) Waiting() bool { return s.waiting }

// Progress returns the Syncing progress in [0, 1].
func (s State) Progress() float64 { return s.progress }

// RemainingBlocks returns the Syncing block count to go.
func (s State) RemainingBlocks() int64 { return s.remaining }

// Err returns the NotSynced error.
func (s State) Err() error { return s.err }

// IsSynced is shorthand for Kind() == KindSynced.
func (s State) IsSynced() bool { return s.kind == KindSynced }

// Description returns the human readable form used in status output, for
// example "Syncing (42%)" or "NotSynced (Invalid node)".
func (s State) Description() string {
	switch s.kind {
	case KindSynced:
		return "Synced"
	case KindConnecting:
		return fmt.Sprintf("Connecting (waiting: %t)", s.waiting)
	case KindSyncing:
		return fmt.Sprintf("Syncing (%d%%)", int(s.progress*100))
	default:
		msg := "unknown error"
		if s.err != nil {
			msg = s.err.Error()
		}
		return fmt.Sprintf("NotSynced (%s)", msg)
	}
}

// String implements fmt.Stringer.
func (s State) String() string { return s.Description() }

// Equal is strict equality: same variant and same payload. NotSynced errors
// compare by code and message.
func (s State) Equal(other State) bool {
	if s.kind != other.kind {
		return false
	}
	switch s.kind {
	case KindConnecting:
		return s.waiting == other.waiting
	case KindSyncing:
		return s.progress == other.progress && s.remaining == other.remaining
	case KindNotSynced:
		return kiterr.SameError(s.err, other.err)
	default:
		return true
	}
}

// SameKind is loose equality that ignores transient payloads such as
// progress, so a UI can tell whether a new state warrants a redraw of the
// headline rather than the progress bar.
func (s State) SameKind(other State) bool {
	return s.kind == other.kind
}
