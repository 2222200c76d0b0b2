// Package metrics provides process-level counters for wallet sessions.
// Counters are atomic so the refresh worker, the session consumer and
// callers can record concurrently.
package metrics

import (
	"sync/atomic"
	"time"
)

// Engine operation names accepted by RecordEngineCall.
const (
	OpOpen      = "open"
	OpStart     = "start"
	OpStore     = "store"
	OpCreateTx  = "create_tx"
	OpCommitTx  = "commit_tx"
	OpEstimate  = "estimate_fee"
	OpDaemonGet = "daemon_height"
)

// Metrics holds session metrics using atomic counters for thread safety.
type Metrics struct {
	// Engine call metrics
	engineCallsTotal   atomic.Int64
	engineErrorsTotal  atomic.Int64
	engineLatencyNanos atomic.Int64

	// Transaction metrics
	txCreated    atomic.Int64
	txCommitted  atomic.Int64
	feeEstimates atomic.Int64

	// Refresh callback metrics
	refreshTotal   atomic.Int64
	refreshDropped atomic.Int64
	refreshErrors  atomic.Int64

	// Persistence metrics
	savesTotal   atomic.Int64
	savesSkipped atomic.Int64
	savesFailed  atomic.Int64

	// Arbitration metrics
	arbiterWaits    atomic.Int64
	arbiterObsolete atomic.Int64
}

// Global is the global metrics instance.
// Use this for recording metrics throughout the application.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordEngineCall records an engine call with its duration and outcome.
func (m *Metrics) RecordEngineCall(op string, duration time.Duration, err error) {
	m.engineCallsTotal.Add(1)
	m.engineLatencyNanos.Add(duration.Nanoseconds())

	if err != nil {
		m.engineErrorsTotal.Add(1)
		return
	}

	switch op {
	case OpCreateTx:
		m.txCreated.Add(1)
	case OpCommitTx:
		m.txCommitted.Add(1)
	case OpEstimate:
		m.feeEstimates.Add(1)
	}
}

// RecordRefresh records a refresh callback folded by a session. A callback
// that published NotSynced counts as an error.
func (m *Metrics) RecordRefresh(ok bool) {
	m.refreshTotal.Add(1)
	if !ok {
		m.refreshErrors.Add(1)
	}
}

// RecordRefreshDropped records a queued refresh callback that was replaced by
// a newer one before the session consumed it.
func (m *Metrics) RecordRefreshDropped() {
	m.refreshDropped.Add(1)
}

// RecordSave records a wallet store attempt.
func (m *Metrics) RecordSave(err error) {
	m.savesTotal.Add(1)
	if err != nil {
		m.savesFailed.Add(1)
	}
}

// RecordSaveSkipped records a store request dropped because another was in
// flight.
func (m *Metrics) RecordSaveSkipped() {
	m.savesSkipped.Add(1)
}

// RecordArbiterWait records a session that had to wait for the engine.
func (m *Metrics) RecordArbiterWait() {
	m.arbiterWaits.Add(1)
}

// RecordArbiterObsolete records a session that gave up because a newer one
// took its waiting slot.
func (m *Metrics) RecordArbiterObsolete() {
	m.arbiterObsolete.Add(1)
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	EngineCallsTotal   int64 `json:"engine_calls_total"`
	EngineErrorsTotal  int64 `json:"engine_errors_total"`
	EngineLatencyNanos int64 `json:"engine_latency_nanos"`
	TxCreated          int64 `json:"tx_created"`
	TxCommitted        int64 `json:"tx_committed"`
	FeeEstimates       int64 `json:"fee_estimates"`
	RefreshTotal       int64 `json:"refresh_total"`
	RefreshDropped     int64 `json:"refresh_dropped"`
	RefreshErrors      int64 `json:"refresh_errors"`
	SavesTotal         int64 `json:"saves_total"`
	SavesSkipped       int64 `json:"saves_skipped"`
	SavesFailed        int64 `json:"saves_failed"`
	ArbiterWaits       int64 `json:"arbiter_waits"`
	ArbiterObsolete    int64 `json:"arbiter_obsolete"`
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		EngineCallsTotal:   m.engineCallsTotal.Load(),
		EngineErrorsTotal:  m.engineErrorsTotal.Load(),
		EngineLatencyNanos: m.engineLatencyNanos.Load(),
		TxCreated:          m.txCreated.Load(),
		TxCommitted:        m.txCommitted.Load(),
		FeeEstimates:       m.feeEstimates.Load(),
		RefreshTotal:       m.refreshTotal.Load(),
		RefreshDropped:     m.refreshDropped.Load(),
		RefreshErrors:      m.refreshErrors.Load(),
		SavesTotal:         m.savesTotal.Load(),
		SavesSkipped:       m.savesSkipped.Load(),
		SavesFailed:        m.savesFailed.Load(),
		ArbiterWaits:       m.arbiterWaits.Load(),
		ArbiterObsolete:    m.arbiterObsolete.Load(),
	}
}

// EngineLatencyAvgMs returns the average engine call latency in milliseconds.
// Returns 0 if no calls have been made.
func (m *Metrics) EngineLatencyAvgMs() float64 {
	calls := m.engineCallsTotal.Load()
	if calls == 0 {
		return 0
	}
	nanos := m.engineLatencyNanos.Load()
	return float64(nanos) / float64(calls) / 1e6
}

// RefreshDropRate returns the share of refresh callbacks that were replaced
// before being folded, as a percentage (0-100).
func (m *Metrics) RefreshDropRate() float64 {
	dropped := m.refreshDropped.Load()
	total := m.refreshTotal.Load() + dropped
	if total == 0 {
		return 0
	}
	return float64(dropped) / float64(total) * 100
}

// Reset resets all metrics to zero.
// Useful for testing.
func (m *Metrics) Reset() {
	m.engineCallsTotal.Store(0)
	m.engineErrorsTotal.Store(0)
	m.engineLatencyNanos.Store(0)
	m.txCreated.Store(0)
	m.txCommitted.Store(0)
	m.feeEstimates.Store(0)
	m.refreshTotal.Store(0)
	m.refreshDropped.Store(0)
	m.refreshErrors.Store(0)
	m.savesTotal.Store(0)
	m.savesSkipped.Store(0)
	m.savesFailed.Store(0)
	m.arbiterWaits.Store(0)
	m.arbiterObsolete.Store(0)
}
