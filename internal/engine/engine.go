// Package engine describes the wallet engine xmrkit drives: a process-wide
// Monero wallet library that opens wallet files, scans the chain through a
// remote daemon, and builds and broadcasts transactions. xmrkit never
// implements the protocol itself; it only consumes these interfaces.
package engine

import (
	"github.com/mrz1836/xmrkit/internal/node"
	"github.com/mrz1836/xmrkit/internal/wallet"
)

// Manager is the engine entry point. Implementations are process-wide
// singletons and are not multiplexed between sessions.
type Manager interface {
	// WalletExists reports whether a wallet is stored at path.
	WalletExists(path string) bool

	// OpenWallet opens an existing wallet. A wallet whose status is not OK
	// is closed and returned as an error.
	OpenWallet(path, password string) (Wallet, error)

	// RecoverWallet creates a wallet from a legacy mnemonic and seed offset.
	RecoverWallet(path, password, mnemonic, offset string, restoreHeight int64) (Wallet, error)

	// CreateWatchOnlyWallet creates a wallet from an address and view key.
	// spendKey is empty for view-only wallets.
	CreateWatchOnlyWallet(path, password, language string, restoreHeight int64,
		address, viewKey, spendKey string) (Wallet, error)

	// CloseWallet closes an open wallet, storing its cache.
	CloseWallet(w Wallet) error

	// SetDaemon points every wallet of the engine at a remote daemon.
	SetDaemon(d node.Descriptor, trusted bool) error

	// Network returns the network the engine was initialized for.
	Network() wallet.Network
}

// Wallet is an open wallet handle. Methods may be called from the refresh
// worker and from callers concurrently.
type Wallet interface {
	// Path returns the wallet cache path.
	Path() string

	// Status is the status of the last operation.
	Status() Status

	// FullStatus also checks the daemon connection.
	FullStatus() Status

	// Address returns the primary address.
	Address() string

	// Keys returns the wallet key set. PrivateSpendKey is empty for
	// watch-only wallets.
	Keys() wallet.Keys

	// SetListener registers the refresh callback sink. nil unregisters.
	SetListener(l Listener)

	// StartRefresh starts the background refresh worker.
	StartRefresh()

	// PauseRefresh stops the background refresh worker.
	PauseRefresh()

	// IsSynchronized reports whether the last refresh reached the daemon tip.
	IsSynchronized() bool

	// SetSynchronized marks the wallet synchronized.
	SetSynchronized()

	// BlockChainHeight is the height the wallet has scanned to.
	BlockChainHeight() int64

	// DaemonBlockChainHeight asks the daemon for its height. 0 when the
	// daemon cannot be reached.
	DaemonBlockChainHeight() int64

	// RestoreHeight is the height scanning started from.
	RestoreHeight() int64

	// Balance is the total balance of the account in atomic units.
	Balance() uint64

	// UnlockedBalance is the spendable part of Balance.
	UnlockedBalance() uint64

	// RefreshHistory reloads the transaction history from the wallet.
	RefreshHistory()

	// History returns the transaction history as of the last RefreshHistory.
	History() []TransactionInfo

	// NumSubaddresses returns the number of subaddresses of the account.
	NumSubaddresses() int

	// Subaddress returns a subaddress with its observed usage.
	Subaddress(account, index uint32) (wallet.Subaddress, bool)

	// NewSubaddress creates the next subaddress of the account.
	NewSubaddress(account uint32, label string) string

	// Store writes the wallet cache to disk.
	Store() error

	// CreateTransaction builds a pending transaction. Failures are reported
	// through the pending transaction status.
	CreateTransaction(req TxRequest) PendingTransaction

	// PendingTransaction returns the last created, undisposed transaction.
	PendingTransaction() PendingTransaction

	// DisposePendingTransaction discards the pending transaction.
	DisposePendingTransaction()

	// EstimateTransactionFee returns the fee of req in atomic units.
	EstimateTransactionFee(req TxRequest) (uint64, error)

	// SetUserNote attaches a note to a transaction.
	SetUserNote(txID, note string) error
}

// Listener receives refresh worker callbacks. Calls come from the engine's
// refresh worker and must not block for long.
type Listener interface {
	MoneySpent(txID string, amount uint64)
	MoneyReceived(txID string, amount uint64)
	UnconfirmedMoneyReceived(txID string, amount uint64)
	NewBlock(height int64)
	Updated()
	Refreshed()
}

// PendingTransaction is a built, uncommitted transaction.
type PendingTransaction interface {
	Status() Status
	FirstTxID() string
	Amount() uint64
	Fee() uint64
	Commit() error
}
