// Package enginetest provides a scripted in-memory wallet engine for tests.
// Wallet files are real files so bring-up and deletion logic can be checked
// on disk; chain state is whatever the test scripts.
package enginetest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mrz1836/xmrkit/internal/engine"
	"github.com/mrz1836/xmrkit/internal/fileutil"
	"github.com/mrz1836/xmrkit/internal/node"
	"github.com/mrz1836/xmrkit/internal/wallet"
)

// Operation names accepted by Fail.
const (
	OpOpen      = "open"
	OpRecover   = "recover"
	OpWatchOnly = "watch-only"
	OpSetDaemon = "set-daemon"
	OpClose     = "close"
)

// keysFile is the on-disk content of <path>.keys.
type keysFile struct {
	Keys          wallet.Keys `json:"keys"`
	Address       string      `json:"address"`
	RestoreHeight int64       `json:"restore_height"`
}

// Engine implements engine.Manager.
type Engine struct {
	mu           sync.Mutex
	network      wallet.Network
	daemon       node.Descriptor
	trusted      bool
	daemonSet    bool
	daemonHeight int64
	failures     map[string]error
	open         map[string]*Wallet
	calls        []string

	// Script is applied to every wallet the engine opens or creates.
	Script func(w *Wallet)
}

var _ engine.Manager = (*Engine)(nil)

// New returns an engine for network.
func New(network wallet.Network) *Engine {
	return &Engine{
		network:  network,
		failures: make(map[string]error),
		open:     make(map[string]*Wallet),
	}
}

// Fail makes every later call of op return err. A nil err clears it.
func (e *Engine) Fail(op string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err == nil {
		delete(e.failures, op)
		return
	}
	e.failures[op] = err
}

// SetDaemonHeight sets the height the daemon reports.
func (e *Engine) SetDaemonHeight(h int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.daemonHeight = h
}

// Calls returns the recorded engine calls in order.
func (e *Engine) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.calls))
	copy(out, e.calls)
	return out
}

// CallCount returns how often op was called.
func (e *Engine) CallCount(op string) int {
	n := 0
	for _, c := range e.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

// Daemon returns the daemon set by SetDaemon.
func (e *Engine) Daemon() (node.Descriptor, bool, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.daemon, e.trusted, e.daemonSet
}

// OpenWalletAt returns the open wallet at path, or nil.
func (e *Engine) OpenWalletAt(path string) *Wallet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open[path]
}

// Network implements engine.Manager.
func (e *Engine) Network() wallet.Network {
	return e.network
}

// WalletExists implements engine.Manager.
func (e *Engine) WalletExists(path string) bool {
	e.record("exists")
	ok, err := fileutil.Exists(path + ".keys")
	return err == nil && ok
}

// OpenWallet implements engine.Manager.
func (e *Engine) OpenWallet(path, _ string) (engine.Wallet, error) {
	if err := e.record(OpOpen); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path + ".keys") //nolint:gosec // G304: Test fixture path
	if err != nil {
		return nil, fmt.Errorf("opening wallet: %w", err)
	}
	var kf keysFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("reading keys file: %w", err)
	}
	return e.register(newWallet(e, path, kf)), nil
}

// RecoverWallet implements engine.Manager. The seed offset is not applied.
func (e *Engine) RecoverWallet(path, _, mnemonic, _ string, restoreHeight int64) (engine.Wallet, error) {
	if err := e.record(OpRecover); err != nil {
		return nil, err
	}

	spend, err := wallet.DecodeLegacyMnemonic(strings.Fields(mnemonic))
	if err != nil {
		return nil, err
	}
	keys, err := wallet.KeysFromSpendKey(spend)
	if err != nil {
		return nil, err
	}
	return e.create(path, keys, restoreHeight)
}

// CreateWatchOnlyWallet implements engine.Manager.
func (e *Engine) CreateWatchOnlyWallet(path, _, _ string, restoreHeight int64,
	address, viewKey, _ string,
) (engine.Wallet, error) {
	if err := e.record(OpWatchOnly); err != nil {
		return nil, err
	}

	keys, err := wallet.WatchOnlyKeys(address, viewKey)
	if err != nil {
		return nil, err
	}
	return e.create(path, keys, restoreHeight)
}

// CloseWallet implements engine.Manager.
func (e *Engine) CloseWallet(w engine.Wallet) error {
	if err := e.record(OpClose); err != nil {
		return err
	}
	fw, ok := w.(*Wallet)
	if !ok {
		return fmt.Errorf("enginetest: foreign wallet %T", w)
	}

	e.mu.Lock()
	if e.open[fw.path] == fw {
		delete(e.open, fw.path)
	}
	e.mu.Unlock()

	fw.close()
	return nil
}

// SetDaemon implements engine.Manager.
func (e *Engine) SetDaemon(d node.Descriptor, trusted bool) error {
	if err := e.record(OpSetDaemon); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.daemon, e.trusted, e.daemonSet = d, trusted, true
	return nil
}

func (e *Engine) create(path string, keys wallet.Keys, restoreHeight int64) (engine.Wallet, error) {
	address, err := keys.Address(e.network)
	if err != nil {
		return nil, err
	}
	kf := keysFile{Keys: keys, Address: address, RestoreHeight: restoreHeight}

	data, err := json.Marshal(kf)
	if err != nil {
		return nil, err
	}
	if err := fileutil.WriteAtomic(path+".keys", data, 0o600); err != nil {
		return nil, err
	}
	if err := fileutil.WriteAtomic(path+".address.txt", []byte(address), 0o600); err != nil {
		return nil, err
	}
	if err := fileutil.WriteAtomic(path, []byte("cache"), 0o600); err != nil {
		return nil, err
	}
	return e.register(newWallet(e, path, kf)), nil
}

func (e *Engine) register(w *Wallet) *Wallet {
	e.mu.Lock()
	e.open[w.path] = w
	script := e.Script
	e.mu.Unlock()

	if script != nil {
		script(w)
	}
	return w
}

func (e *Engine) record(op string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, op)
	return e.failures[op]
}

func (e *Engine) currentDaemonHeight() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.daemonHeight
}
