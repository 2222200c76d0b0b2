// Package session arbitrates access to the wallet engine. The engine is a
// process-wide singleton without multiplexing, so at most one wallet session
// may hold it at a time. Other sessions queue in a single waiting slot or are
// told they are obsolete.
package session

import (
	"github.com/google/uuid"
)

// State is the arbitration state of a session identity.
type State int

const (
	// Obsolete means the identity holds neither slot. A starting session that
	// observes it must abandon its start attempt.
	Obsolete State = iota
	// Running means the identity owns the engine.
	Running
	// Waiting means the identity is queued behind the running one.
	Waiting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Waiting:
		return "waiting"
	default:
		return "obsolete"
	}
}

// Identity is an opaque token minted per wallet session. It is only used for
// arbitration bookkeeping and never persisted.
type Identity string

// NewIdentity mints a fresh random identity.
func NewIdentity() Identity {
	return Identity(uuid.NewString())
}

// String implements fmt.Stringer.
func (id Identity) String() string {
	return string(id)
}
