// Package kit runs one Monero wallet session against the wallet engine. A Kit
// waits for exclusive use of the engine, brings its wallet up, folds engine
// refresh callbacks into observable sync state, balance and history, and
// builds transactions.
package kit

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/xmrkit/internal/engine"
	"github.com/mrz1836/xmrkit/internal/metrics"
	"github.com/mrz1836/xmrkit/internal/node"
	walletsvc "github.com/mrz1836/xmrkit/internal/service/wallet"
	"github.com/mrz1836/xmrkit/internal/session"
	"github.com/mrz1836/xmrkit/internal/syncstate"
	"github.com/mrz1836/xmrkit/internal/wallet"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

// DefaultSettleDelay is how long Stop waits before stopping the engine.
const DefaultSettleDelay = time.Second

// walletPassword is the password of engine wallet files. Seeds at rest are
// protected by the encrypted seed store instead.
const walletPassword = ""

// accountIndex is the only account a kit uses.
const accountIndex uint32 = 0

// Config configures a Kit.
type Config struct {
	// Seed is the wallet secret.
	Seed wallet.Seed

	// RestoreHeight is where a newly created wallet starts scanning.
	// wallet.UnsetRestoreHeight lets the engine decide.
	RestoreHeight int64

	// WalletID names the wallet files inside WalletDir.
	WalletID  string
	WalletDir string

	// Node is a node descriptor string, see node.Parse.
	Node      string
	TrustNode bool

	Engine  engine.Manager
	Arbiter *session.Arbiter // defaults to session.Default()
	Logger  zerolog.Logger
	Metrics *metrics.Metrics // defaults to metrics.Global

	PollInterval       time.Duration // arbiter re-poll interval
	SettleDelay        time.Duration // delay before engine stop
	DaemonPollInterval time.Duration
	NewBlockThrottle   time.Duration
}

// Kit is one wallet session.
type Kit struct {
	id            session.Identity
	seed          wallet.Seed
	restoreHeight int64
	walletID      string
	walletDir     string
	nodeURI       string
	trustNode     bool

	engine  engine.Manager
	service *walletsvc.Service
	arbiter *session.Arbiter
	logger  zerolog.Logger
	metrics *metrics.Metrics

	pollInterval time.Duration
	settleDelay  time.Duration

	startStop sync.Mutex
	started   atomic.Bool

	// every in-flight Start, cancelled together by Stop
	cancelMu sync.Mutex
	starts   map[uint64]context.CancelFunc
	startSeq uint64

	saving atomic.Bool

	// guarded by foldMu
	foldMu     sync.Mutex
	synced     bool
	firstBlock int64
	node       *node.Descriptor

	refreshes chan refreshSnapshot
	foldStop  chan struct{}
	foldDone  chan struct{}

	syncState    *observable[syncstate.State]
	balance      *observable[engine.Balance]
	transactions *observable[[]engine.TransactionInfo]
	lastBlock    chan struct{}
}

// New creates a kit. It does not touch the engine until Start.
func New(cfg *Config) (*Kit, error) {
	if cfg.Engine == nil {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{"reason": "engine is required"})
	}
	if err := wallet.ValidateWalletID(cfg.WalletID); err != nil {
		return nil, err
	}
	if cfg.Seed.Kind() == 0 {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{"reason": "seed is required"})
	}

	arbiter := cfg.Arbiter
	if arbiter == nil {
		arbiter = session.Default()
	}
	m := cfg.Metrics
	if m == nil {
		m = metrics.Global
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = session.DefaultPollInterval
	}
	settleDelay := cfg.SettleDelay
	if settleDelay <= 0 {
		settleDelay = DefaultSettleDelay
	}

	id := session.NewIdentity()
	logger := cfg.Logger.With().
		Str("component", "kit").
		Str("wallet_id", cfg.WalletID).
		Str("session_id", id.String()).
		Logger()

	k := &Kit{
		id:            id,
		seed:          cfg.Seed,
		restoreHeight: cfg.RestoreHeight,
		walletID:      cfg.WalletID,
		walletDir:     cfg.WalletDir,
		nodeURI:       cfg.Node,
		trustNode:     cfg.TrustNode,
		engine:        cfg.Engine,
		arbiter:       arbiter,
		logger:        logger,
		metrics:       m,
		pollInterval:  pollInterval,
		settleDelay:   settleDelay,
		starts:        map[uint64]context.CancelFunc{},
		refreshes:     make(chan refreshSnapshot, 1),
		syncState:     newObservable(syncstate.Initial(), syncstate.State.Equal),
		balance:       newObservable(engine.Balance{}, func(a, b engine.Balance) bool { return a == b }),
		transactions:  newObservable[[]engine.TransactionInfo](nil, nil),
		lastBlock:     make(chan struct{}, 1),
	}
	k.service = walletsvc.NewService(&walletsvc.Config{
		Engine:             cfg.Engine,
		Logger:             logger,
		Metrics:            m,
		DaemonPollInterval: cfg.DaemonPollInterval,
		NewBlockThrottle:   cfg.NewBlockThrottle,
	})
	return k, nil
}

// ID returns the session identity used for engine arbitration.
func (k *Kit) ID() session.Identity { return k.id }

// WalletPath returns the path of the wallet cache file.
func (k *Kit) WalletPath() string {
	return filepath.Join(k.walletDir, k.walletID)
}

// SyncState returns the current sync state.
func (k *Kit) SyncState() syncstate.State { return k.syncState.Get() }

// SubscribeSyncState streams sync state changes, starting with the current
// state. Call the returned function to unsubscribe.
func (k *Kit) SubscribeSyncState() (<-chan syncstate.State, func()) {
	return k.syncState.Subscribe()
}

// Balance returns the last published balance.
func (k *Kit) Balance() engine.Balance { return k.balance.Get() }

// SubscribeBalance streams balance changes.
func (k *Kit) SubscribeBalance() (<-chan engine.Balance, func()) {
	return k.balance.Subscribe()
}

// Transactions returns the last published transaction history.
func (k *Kit) Transactions() []engine.TransactionInfo {
	txs := k.transactions.Get()
	out := make([]engine.TransactionInfo, len(txs))
	copy(out, txs)
	return out
}

// SubscribeTransactions streams history replacements.
func (k *Kit) SubscribeTransactions() (<-chan []engine.TransactionInfo, func()) {
	return k.transactions.Subscribe()
}

// LastBlockUpdated signals processed refreshes. At most one signal is
// buffered; older ones are dropped.
func (k *Kit) LastBlockUpdated() <-chan struct{} { return k.lastBlock }

// Started reports whether the last Start brought the wallet up.
func (k *Kit) Started() bool { return k.started.Load() }

// Start waits for exclusive use of the engine and brings the wallet up.
// Bring-up failures are published as NotSynced and leave the kit stopped;
// the returned error is only set when ctx ends while waiting. A kit whose
// waiting slot was taken by a newer session abandons the start.
func (k *Kit) Start(ctx context.Context) error {
	ctx, done := k.trackStart(ctx)
	defer done()

	k.startStop.Lock()
	defer k.startStop.Unlock()

	// Stop may have run while this call waited for the lock.
	if err := ctx.Err(); err != nil {
		return err
	}
	if k.started.Load() {
		return nil
	}

	k.syncState.Set(syncstate.Connecting(true))

	state, err := k.arbiter.Acquire(ctx, k.id, k.pollInterval)
	if err != nil {
		k.arbiter.Withdraw(k.id)
		k.logger.Debug().Err(err).Msg("start cancelled while waiting")
		return err
	}
	if state != session.Running {
		k.logger.Info().Str("state", state.String()).Msg("start abandoned")
		return nil
	}

	k.syncState.Set(syncstate.Connecting(false))
	k.started.Store(k.startInternal())
	return nil
}

func (k *Kit) startInternal() bool {
	k.foldMu.Lock()
	k.synced = false
	k.firstBlock = 0
	k.foldMu.Unlock()

	if err := k.createWalletIfNotExists(); err != nil {
		k.logger.Error().Err(err).Msg("wallet creation failed")
		k.syncState.Set(syncstate.NotSynced(kiterr.StartError(err.Error())))
		return false
	}

	d, err := k.selectNode()
	if err != nil {
		k.logger.Error().Str("node", k.nodeURI).Msg("invalid node")
		k.syncState.Set(syncstate.NotSynced(kiterr.InvalidNode("Invalid node")))
		return false
	}
	if err := k.service.SetDaemon(d, k.trustNode); err != nil {
		k.syncState.Set(syncstate.NotSynced(kiterr.StartError(err.Error())))
		return false
	}

	k.startFold()
	k.service.SetObserver(k)
	status, err := k.service.Start(k.WalletPath(), walletPassword)
	if err != nil {
		k.stopFold()
		k.logger.Error().Err(err).Msg("wallet start failed")
		k.syncState.Set(syncstate.NotSynced(kiterr.StartError(err.Error())))
		return false
	}
	if !status.IsOK() {
		k.stopFold()
		k.logger.Error().Str("status", status.String()).Msg("wallet start failed")
		k.syncState.Set(syncstate.NotSynced(kiterr.StartError(status.String())))
		return false
	}

	k.logger.Info().Str("node", d.String()).Msg("wallet started")
	return true
}

// trackStart derives the context of one Start call and registers its cancel
// func for Stop. The returned func unregisters and cancels it.
func (k *Kit) trackStart(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	k.cancelMu.Lock()
	k.startSeq++
	seq := k.startSeq
	k.starts[seq] = cancel
	k.cancelMu.Unlock()

	return ctx, func() {
		k.cancelMu.Lock()
		delete(k.starts, seq)
		k.cancelMu.Unlock()
		cancel()
	}
}

func (k *Kit) cancelStarts() {
	k.cancelMu.Lock()
	defer k.cancelMu.Unlock()
	for _, cancel := range k.starts {
		cancel()
	}
}

// selectNode parses the configured node once and reuses it on restart.
func (k *Kit) selectNode() (node.Descriptor, error) {
	k.foldMu.Lock()
	defer k.foldMu.Unlock()
	if k.node != nil {
		return *k.node, nil
	}
	d, err := node.Parse(k.nodeURI)
	if err != nil {
		return node.Descriptor{}, err
	}
	k.node = &d
	return d, nil
}

// Stop stops the wallet and releases the engine. Stop cancels every Start
// that is still waiting for the engine and is safe to call when Start never
// succeeded. The arbiter slot is released even when the engine fails or
// panics while closing the wallet.
func (k *Kit) Stop(ctx context.Context) {
	k.cancelStarts()

	k.startStop.Lock()
	defer k.startStop.Unlock()
	defer k.arbiter.Release(k.id)

	if !k.started.Load() {
		return
	}

	select {
	case <-time.After(k.settleDelay):
	case <-ctx.Done():
	}

	k.started.Store(false)
	k.stopInternal()
}

func (k *Kit) stopInternal() {
	defer k.stopFold()
	defer func() {
		if r := recover(); r != nil {
			k.logger.Error().Interface("panic", r).Msg("wallet stop panicked")
		}
	}()

	if err := k.service.Stop(); err != nil {
		k.logger.Error().Err(err).Msg("wallet stop failed")
	}
}
