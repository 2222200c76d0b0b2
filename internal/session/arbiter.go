package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/xmrkit/internal/metrics"
)

// DefaultPollInterval is how often a waiting session re-polls the arbiter
// when no release notification arrives.
const DefaultPollInterval = time.Second

// Arbiter is the registry of the running identity and the single waiting
// identity. All methods are safe for concurrent use and never block on
// anything but the registry lock.
type Arbiter struct {
	mu       sync.Mutex
	running  Identity
	waiting  Identity
	released chan struct{}

	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// Option configures an Arbiter.
type Option func(*Arbiter)

// WithLogger sets the arbiter logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Arbiter) {
		a.logger = logger.With().Str("component", "arbiter").Logger()
	}
}

// WithMetrics sets the metrics sink. Defaults to metrics.Global.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Arbiter) {
		if m != nil {
			a.metrics = m
		}
	}
}

// NewArbiter creates an empty arbiter.
func NewArbiter(opts ...Option) *Arbiter {
	a := &Arbiter{
		released: make(chan struct{}),
		logger:   zerolog.Nop(),
		metrics:  metrics.Global,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

//nolint:gochecknoglobals // Process-wide engine arbitration
var (
	defaultArbiter     *Arbiter
	defaultArbiterOnce sync.Once
)

// Default returns the process-wide arbiter. It lives for the whole process;
// sessions that share one wallet engine must share this instance.
func Default() *Arbiter {
	defaultArbiterOnce.Do(func() {
		defaultArbiter = NewArbiter()
	})
	return defaultArbiter
}

// RequestInitialState registers id. It becomes Running when no other identity
// is running, otherwise it takes the waiting slot, replacing any previous
// waiter.
func (a *Arbiter) RequestInitialState(id Identity) State {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running != "" && a.running != id {
		if a.waiting != "" && a.waiting != id {
			a.logger.Debug().Str("session_id", a.waiting.String()).Msg("waiting session superseded")
		}
		a.waiting = id
		a.metrics.RecordArbiterWait()
		return Waiting
	}
	a.running = id
	if a.waiting == id {
		a.waiting = ""
	}
	return Running
}

// PollState reports the current state of id. An identity claims the running
// slot when it is free.
func (a *Arbiter) PollState(id Identity) State {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running != "" && a.running != id {
		if a.waiting == id {
			return Waiting
		}
		return Obsolete
	}
	a.running = id
	if a.waiting == id {
		a.waiting = ""
	}
	return Running
}

// Release gives up the running slot held by id and promotes the waiter, if
// any. It is a no-op when id is not running.
func (a *Arbiter) Release(id Identity) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running != id || id == "" {
		return
	}
	a.running = a.waiting
	a.waiting = ""

	close(a.released)
	a.released = make(chan struct{})

	a.logger.Debug().
		Str("released", id.String()).
		Str("promoted", a.running.String()).
		Msg("engine released")
}

// Withdraw removes id from the waiting slot, or releases it when it is
// running. Sessions that give up while waiting call it so a later release
// does not promote an abandoned identity.
func (a *Arbiter) Withdraw(id Identity) {
	a.mu.Lock()
	if a.waiting == id && id != "" {
		a.waiting = ""
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()
	a.Release(id)
}

// Released returns a channel that is closed on the next successful Release.
func (a *Arbiter) Released() <-chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.released
}

// Snapshot returns the running and waiting identities.
func (a *Arbiter) Snapshot() (running, waiting Identity) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running, a.waiting
}

// Acquire registers id and blocks until it is Running or Obsolete. While
// waiting it re-polls every interval and wakes early on Release. A cancelled
// ctx returns ctx.Err() and leaves the registration in place; the caller
// withdraws it.
func (a *Arbiter) Acquire(ctx context.Context, id Identity, interval time.Duration) (State, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	// Subscribe before registering so a release between the two is not missed.
	released := a.Released()
	state := a.RequestInitialState(id)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for state == Waiting {
		select {
		case <-ctx.Done():
			return Waiting, ctx.Err()
		case <-released:
		case <-ticker.C:
		}
		released = a.Released()
		state = a.PollState(id)
	}

	if state == Obsolete {
		a.metrics.RecordArbiterObsolete()
		a.logger.Debug().Str("session_id", id.String()).Msg("session obsolete")
	}
	return state, nil
}
