package wallet

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/mrz1836/xmrkit/internal/engine"
	"github.com/mrz1836/xmrkit/internal/metrics"
	"github.com/mrz1836/xmrkit/internal/node"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

const (
	// DefaultDaemonPollInterval bounds how often the daemon height is
	// requested while the wallet is behind.
	DefaultDaemonPollInterval = 120 * time.Second

	// DefaultNewBlockThrottle bounds how often new block callbacks are
	// relayed to the observer.
	DefaultNewBlockThrottle = 2 * time.Second
)

// Service drives one open wallet of an engine.
type Service struct {
	engine  engine.Manager
	logger  zerolog.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	observer Observer
	wallet   engine.Wallet
	listener *listener
	running  bool

	daemonHeight atomic.Int64
	connection   atomic.Int32
	daemonPoll   rate.Sometimes
	throttle     time.Duration
}

// Config contains dependencies for creating a wallet service.
type Config struct {
	Engine  engine.Manager
	Logger  zerolog.Logger
	Metrics *metrics.Metrics

	// DaemonPollInterval defaults to DefaultDaemonPollInterval.
	DaemonPollInterval time.Duration

	// NewBlockThrottle defaults to DefaultNewBlockThrottle.
	NewBlockThrottle time.Duration
}

// NewService creates a new wallet service instance.
func NewService(cfg *Config) *Service {
	m := cfg.Metrics
	if m == nil {
		m = metrics.Global
	}
	pollInterval := cfg.DaemonPollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultDaemonPollInterval
	}
	throttle := cfg.NewBlockThrottle
	if throttle <= 0 {
		throttle = DefaultNewBlockThrottle
	}

	s := &Service{
		engine:     cfg.Engine,
		logger:     cfg.Logger.With().Str("component", "wallet-service").Logger(),
		metrics:    m,
		daemonPoll: rate.Sometimes{Interval: pollInterval},
		throttle:   throttle,
	}
	s.connection.Store(int32(engine.Disconnected))
	return s
}

// SetObserver sets the observer of wallet events. nil removes it.
func (s *Service) SetObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
}

// Wallet returns the open wallet, or nil.
func (s *Service) Wallet() engine.Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wallet
}

// Running reports whether Start succeeded and Stop has not been called.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// DaemonHeight returns the last known daemon height.
func (s *Service) DaemonHeight() int64 {
	return s.daemonHeight.Load()
}

// ConnectionStatus returns the last known daemon connection status.
func (s *Service) ConnectionStatus() engine.ConnectionStatus {
	return engine.ConnectionStatus(s.connection.Load())
}

// SetDaemon points the engine at d.
func (s *Service) SetDaemon(d node.Descriptor, trusted bool) error {
	if err := s.engine.SetDaemon(d, trusted); err != nil {
		return err
	}
	s.logger.Debug().Str("node", d.String()).Bool("trusted", trusted).Msg("daemon set")
	return nil
}

// Start opens the wallet at path and starts refreshing it. A wallet that
// opens with a bad status is closed again and its status returned with a nil
// error; open failures are returned as errors.
func (s *Service) Start(path, password string) (engine.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = true
	if s.listener == nil {
		if !s.engine.WalletExists(path) {
			s.running = false
			return engine.Status{}, kiterr.Wrap(kiterr.ErrWalletNotFound, "wallet %s", path)
		}

		start := time.Now()
		w, err := s.engine.OpenWallet(path, password)
		s.metrics.RecordEngineCall(metrics.OpOpen, time.Since(start), err)
		if err != nil {
			s.running = false
			return engine.Status{}, err
		}

		s.logger.Debug().Str("address", w.Address()).Int64("restore_height", w.RestoreHeight()).Msg("wallet opened")

		if status := w.FullStatus(); !status.IsOK() {
			if closeErr := s.engine.CloseWallet(w); closeErr != nil {
				s.logger.Warn().Err(closeErr).Msg("closing wallet")
			}
			s.running = false
			return status, nil
		}

		s.wallet = w
		s.listener = newListener(s, w)
		s.listener.start()

		w.RefreshHistory()
		if s.observer != nil {
			s.observer.OnInitialTransactions(w, w.History())
		}
	}

	status := s.wallet.FullStatus()
	if s.observer != nil {
		s.observer.OnWalletStarted(status)
	}
	if !status.IsOK() {
		s.logger.Warn().Str("status", status.String()).Msg("wallet started with error status")
		s.stopLocked()
	}
	return status, nil
}

// Stop removes the observer, stops refreshing and closes the wallet.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked()
}

// stopLocked clears the service state, then closes the wallet.
func (s *Service) stopLocked() error {
	l, w := s.listener, s.wallet
	s.observer = nil
	s.listener, s.wallet = nil, nil
	s.running = false

	if l == nil {
		return nil
	}
	l.stop()
	if w == nil {
		return nil
	}
	err := s.engine.CloseWallet(w)
	s.logger.Debug().Err(err).Msg("wallet closed")
	return err
}

// Store writes the wallet cache to disk.
func (s *Service) Store() error {
	s.mu.Lock()
	w, obs := s.wallet, s.observer
	s.mu.Unlock()
	if w == nil {
		return kiterr.ErrWalletNotOpen
	}

	start := time.Now()
	err := w.Store()
	s.metrics.RecordEngineCall(metrics.OpStore, time.Since(start), err)
	s.metrics.RecordSave(err)
	if obs != nil {
		obs.OnWalletStored(err)
	}
	return err
}

// EstimateFee returns the fee of req.
func (s *Service) EstimateFee(req engine.TxRequest) (uint64, error) {
	w := s.Wallet()
	if w == nil {
		return 0, kiterr.ErrWalletNotOpen
	}

	start := time.Now()
	fee, err := w.EstimateTransactionFee(req)
	s.metrics.RecordEngineCall(metrics.OpEstimate, time.Since(start), err)
	return fee, err
}

// CreateTransaction disposes any pending transaction and builds a new one.
func (s *Service) CreateTransaction(req engine.TxRequest) (engine.PendingTransaction, error) {
	w := s.Wallet()
	if w == nil {
		return nil, kiterr.ErrWalletNotOpen
	}

	w.DisposePendingTransaction()

	start := time.Now()
	pending := w.CreateTransaction(req)
	var err error
	if !pending.Status().IsOK() {
		err = engineError("Create Transaction failed", pending.Status())
	}
	s.metrics.RecordEngineCall(metrics.OpCreateTx, time.Since(start), err)
	if err != nil {
		s.logger.Error().Str("status", pending.Status().String()).Msg("create transaction failed")
		return nil, err
	}
	return pending, nil
}

// SendTransaction commits the pending transaction, attaches notes and
// stores the wallet. It returns the transaction ID.
func (s *Service) SendTransaction(notes string) (string, error) {
	s.mu.Lock()
	w, l := s.wallet, s.listener
	s.mu.Unlock()
	if w == nil {
		return "", kiterr.ErrWalletNotOpen
	}

	pending := w.PendingTransaction()
	if pending == nil {
		return "", kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{"reason": "no pending transaction"})
	}
	if status := pending.Status(); !status.IsOK() {
		w.DisposePendingTransaction()
		return "", engineError("Send Transaction failed", status)
	}

	txID := pending.FirstTxID()
	start := time.Now()
	err := pending.Commit()
	s.metrics.RecordEngineCall(metrics.OpCommitTx, time.Since(start), err)
	w.DisposePendingTransaction()
	if err != nil {
		s.logger.Error().Err(err).Msg("send transaction failed")
		return "", err
	}

	if notes != "" {
		if noteErr := w.SetUserNote(txID, notes); noteErr != nil {
			s.logger.Warn().Err(noteErr).Str("tx", txID).Msg("setting user note")
		}
	}
	if storeErr := s.Store(); storeErr != nil {
		s.logger.Warn().Err(storeErr).Msg("wallet store failed")
	}
	if l != nil {
		l.markUpdated()
	}
	return txID, nil
}

// updateDaemonState records a known daemon height, or polls the daemon when
// height is 0 and the poll interval has passed.
func (s *Service) updateDaemonState(w engine.Wallet, height int64) {
	if height > 0 {
		s.daemonHeight.Store(height)
		s.connection.Store(int32(engine.Connected))
		return
	}
	s.daemonPoll.Do(func() {
		start := time.Now()
		h := w.DaemonBlockChainHeight()
		s.metrics.RecordEngineCall(metrics.OpDaemonGet, time.Since(start), nil)
		s.daemonHeight.Store(h)
		if h > 0 {
			s.connection.Store(int32(engine.Connected))
		} else {
			s.connection.Store(int32(engine.Disconnected))
		}
	})
}

func (s *Service) currentObserver() Observer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observer
}

func engineError(op string, s engine.Status) error {
	return kiterr.New(kiterr.ErrEngine.Code, fmt.Sprintf("%s: %s", op, s.Message))
}
