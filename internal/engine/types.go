package engine

import (
	"math"
	"time"
)

// StatusCode classifies a Status.
type StatusCode int

const (
	// StatusOK means the operation succeeded.
	StatusOK StatusCode = iota
	// StatusError means the operation failed but the wallet is usable.
	StatusError
	// StatusCritical means the wallet must be closed.
	StatusCritical
)

// Status is the result of an engine operation.
type Status struct {
	Code    StatusCode
	Message string
}

// OK is the successful status.
//
//nolint:gochecknoglobals // Immutable value
var OK = Status{Code: StatusOK}

// ErrorStatus returns a failed status with a message.
func ErrorStatus(message string) Status {
	return Status{Code: StatusError, Message: message}
}

// IsOK reports whether the status is successful.
func (s Status) IsOK() bool {
	return s.Code == StatusOK
}

// String returns "Ok" or the error message.
func (s Status) String() string {
	switch s.Code {
	case StatusOK:
		return "Ok"
	case StatusCritical:
		return "Critical: " + s.Message
	default:
		return "Error: " + s.Message
	}
}

// ConnectionStatus is the daemon connection state.
type ConnectionStatus int

const (
	// Disconnected means the daemon has not answered recently.
	Disconnected ConnectionStatus = iota
	// Connected means the daemon reported a height.
	Connected
	// WrongVersion means the daemon speaks an incompatible RPC version.
	WrongVersion
)

// String returns the status name.
func (c ConnectionStatus) String() string {
	switch c {
	case Connected:
		return "Connected"
	case WrongVersion:
		return "WrongVersion"
	default:
		return "Disconnected"
	}
}

// SweepAll is the TxRequest amount that sends the whole unlocked balance.
const SweepAll uint64 = math.MaxUint64

// DefaultMixin is the ring size parameter xmrkit passes. The engine picks
// the consensus ring size for it.
const DefaultMixin = 0

// Priority is the fee priority of a transaction.
type Priority int

// Transaction priorities.
const (
	PriorityDefault Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityLast
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityLast:
		return "last"
	default:
		return "default"
	}
}

// TxRequest describes a transaction to build.
type TxRequest struct {
	Destination string
	Amount      uint64
	Mixin       int
	Priority    Priority
	UserNotes   string
}

// IsSweepAll reports whether the request sends the whole unlocked balance.
func (r TxRequest) IsSweepAll() bool {
	return r.Amount == SweepAll
}

// Direction is the flow of a transaction relative to the wallet.
type Direction int

// Transaction directions.
const (
	DirectionIn Direction = iota
	DirectionOut
)

// String returns "in" or "out".
func (d Direction) String() string {
	if d == DirectionOut {
		return "out"
	}
	return "in"
}

// Transfer is one destination of an outgoing transaction.
type Transfer struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

// TransactionInfo is one history entry.
type TransactionInfo struct {
	Hash          string     `json:"hash"`
	Direction     Direction  `json:"direction"`
	Pending       bool       `json:"pending"`
	Failed        bool       `json:"failed"`
	Amount        uint64     `json:"amount"`
	Fee           uint64     `json:"fee"`
	BlockHeight   int64      `json:"block_height"`
	Confirmations int64      `json:"confirmations"`
	Timestamp     time.Time  `json:"timestamp"`
	PaymentID     string     `json:"payment_id,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	AccountIndex  uint32     `json:"account_index"`
	AddressIndex  uint32     `json:"address_index"`
	Transfers     []Transfer `json:"transfers,omitempty"`
}

// Balance is a wallet balance in atomic units. Unlocked never exceeds All.
type Balance struct {
	All      uint64 `json:"all"`
	Unlocked uint64 `json:"unlocked"`
}

// NewBalance returns a balance, capping unlocked at all.
func NewBalance(all, unlocked uint64) Balance {
	if unlocked > all {
		unlocked = all
	}
	return Balance{All: all, Unlocked: unlocked}
}
