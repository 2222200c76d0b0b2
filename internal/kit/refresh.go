package kit

import (
	"github.com/mrz1836/xmrkit/internal/engine"
	walletsvc "github.com/mrz1836/xmrkit/internal/service/wallet"
	"github.com/mrz1836/xmrkit/internal/syncstate"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

var _ walletsvc.Observer = (*Kit)(nil)

// refreshSnapshot is the engine state captured by one refresh callback.
type refreshSnapshot struct {
	status       engine.Status
	history      []engine.TransactionInfo
	synchronized bool
	walletHeight int64
	daemonHeight int64
	balance      engine.Balance
}

// OnRefreshed captures the wallet state and queues it for the refresh
// consumer. A queued snapshot that was not folded yet is replaced. It
// reports whether the refresh was consumed, which is false for a wallet in
// an error state.
func (k *Kit) OnRefreshed(w engine.Wallet, _ bool) bool {
	snap := refreshSnapshot{status: w.FullStatus()}
	if snap.status.IsOK() {
		snap.history = w.History()
		snap.synchronized = w.IsSynchronized()
		snap.walletHeight = w.BlockChainHeight()
		snap.daemonHeight = k.service.DaemonHeight()
		snap.balance = engine.NewBalance(w.Balance(), w.UnlockedBalance())
	}

	if offer(k.refreshes, snap) {
		k.metrics.RecordRefreshDropped()
	}
	return snap.status.IsOK()
}

// OnInitialTransactions publishes the history and balance of a freshly
// opened wallet.
func (k *Kit) OnInitialTransactions(w engine.Wallet, history []engine.TransactionInfo) {
	k.transactions.Set(history)
	k.balance.Set(engine.NewBalance(w.Balance(), w.UnlockedBalance()))
}

// OnWalletStarted logs the start status.
func (k *Kit) OnWalletStarted(status engine.Status) {
	k.logger.Debug().Str("status", status.String()).Msg("wallet service started")
}

// OnWalletStored logs store failures.
func (k *Kit) OnWalletStored(err error) {
	if err != nil {
		k.logger.Warn().Err(err).Msg("wallet store failed")
	}
}

func (k *Kit) startFold() {
	// Stale snapshots of a previous run are not folded.
	select {
	case <-k.refreshes:
	default:
	}

	k.foldStop = make(chan struct{})
	k.foldDone = make(chan struct{})
	go k.runFold(k.foldStop, k.foldDone)
}

func (k *Kit) stopFold() {
	if k.foldStop == nil {
		return
	}
	close(k.foldStop)
	<-k.foldDone
	k.foldStop, k.foldDone = nil, nil
}

func (k *Kit) runFold(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		case snap := <-k.refreshes:
			k.fold(snap)
		}
	}
}

// fold turns one refresh snapshot into published state.
func (k *Kit) fold(snap refreshSnapshot) {
	if !snap.status.IsOK() {
		k.metrics.RecordRefresh(false)
		k.syncState.Set(syncstate.NotSynced(kiterr.New(kiterr.ErrEngine.Code, snap.status.String())))
		return
	}
	k.metrics.RecordRefresh(true)

	k.transactions.Set(snap.history)

	k.foldMu.Lock()
	firstSync := snap.synchronized && !k.synced
	if firstSync {
		k.synced = true
	}
	if !snap.synchronized && k.firstBlock == 0 {
		k.firstBlock = snap.walletHeight
	}
	firstBlock := k.firstBlock
	k.foldMu.Unlock()

	if firstSync {
		k.logger.Info().Int64("height", snap.walletHeight).Msg("first sync complete")
		k.SaveState()
	}

	if snap.synchronized {
		k.syncState.Set(syncstate.Synced())
	} else {
		remaining := snap.daemonHeight - snap.walletHeight
		total := snap.daemonHeight - firstBlock
		progress := 1.0
		if total > 0 {
			progress = 1 - float64(remaining)/float64(total)
		}
		k.syncState.Set(syncstate.Syncing(progress, remaining))
	}

	offer(k.lastBlock, struct{}{})
	k.balance.Set(snap.balance)
}
