package wallet

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/mrz1836/xmrkit/internal/engine"
)

// listener relays engine refresh callbacks to the service observer.
type listener struct {
	svc    *Service
	wallet engine.Wallet
	blocks rate.Sometimes

	mu          sync.Mutex
	updated     bool
	lastTxCount int
}

var _ engine.Listener = (*listener)(nil)

func newListener(s *Service, w engine.Wallet) *listener {
	return &listener{
		svc:     s,
		wallet:  w,
		blocks:  rate.Sometimes{Interval: s.throttle},
		updated: true,
	}
}

func (l *listener) start() {
	l.wallet.SetListener(l)
	l.wallet.StartRefresh()
}

func (l *listener) stop() {
	l.wallet.PauseRefresh()
	l.wallet.SetListener(nil)
}

func (l *listener) markUpdated() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.updated = true
}

func (l *listener) MoneySpent(txID string, amount uint64) {
	l.svc.logger.Debug().Str("tx", txID).Uint64("amount", amount).Msg("money spent")
}

func (l *listener) MoneyReceived(txID string, amount uint64) {
	l.svc.logger.Debug().Str("tx", txID).Uint64("amount", amount).Msg("money received")
}

func (l *listener) UnconfirmedMoneyReceived(txID string, amount uint64) {
	l.svc.logger.Debug().Str("tx", txID).Uint64("amount", amount).Msg("unconfirmed money received")
}

// NewBlock relays at most one block per throttle interval.
func (l *listener) NewBlock(height int64) {
	l.blocks.Do(func() {
		obs := l.svc.currentObserver()
		if obs == nil {
			return
		}

		w := l.wallet
		synced := w.IsSynchronized()
		if synced {
			l.svc.updateDaemonState(w, height)
		} else {
			l.svc.updateDaemonState(w, 0)
		}

		full := false
		if !synced {
			// Show incoming transactions while catching up.
			w.RefreshHistory()
			count := len(w.History())

			l.mu.Lock()
			l.updated = true
			if count > l.lastTxCount {
				l.lastTxCount = count
				full = true
			}
			l.mu.Unlock()
		}
		obs.OnRefreshed(w, full)
	})
}

func (l *listener) Updated() {
	l.markUpdated()
}

func (l *listener) Refreshed() {
	w := l.wallet
	w.SetSynchronized()

	l.mu.Lock()
	updated := l.updated
	l.mu.Unlock()
	if !updated {
		return
	}

	l.svc.updateDaemonState(w, w.BlockChainHeight())
	w.RefreshHistory()
	if obs := l.svc.currentObserver(); obs != nil {
		consumed := obs.OnRefreshed(w, true)
		l.mu.Lock()
		l.updated = !consumed
		l.mu.Unlock()
	}
}
