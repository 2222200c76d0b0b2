// Package wallet runs an open engine wallet for a kit session: it opens and
// closes the wallet, relays refresh callbacks, tracks the daemon, and builds
// and commits transactions.
package wallet

import (
	"github.com/mrz1836/xmrkit/internal/engine"
)

// Observer receives wallet events from the service. Refresh callbacks arrive
// on the engine's refresh worker. OnInitialTransactions and OnWalletStarted
// run inside Start and must not call back into the Service.
type Observer interface {
	// OnRefreshed is called after a refresh step. It returns false when the
	// refresh could not be consumed so the service retries it on the next
	// refresh.
	OnRefreshed(w engine.Wallet, full bool) bool

	// OnInitialTransactions is called once the wallet is running with the
	// history loaded at open time.
	OnInitialTransactions(w engine.Wallet, history []engine.TransactionInfo)

	// OnWalletStarted is called with the wallet status at the end of Start.
	OnWalletStarted(status engine.Status)

	// OnWalletStored is called after the service stored the wallet.
	OnWalletStored(err error)
}
