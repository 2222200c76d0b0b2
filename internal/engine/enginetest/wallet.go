package enginetest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mrz1836/xmrkit/internal/engine"
	"github.com/mrz1836/xmrkit/internal/fileutil"
	"github.com/mrz1836/xmrkit/internal/wallet"
)

// ErrClosed is returned by operations on a closed wallet.
var ErrClosed = errors.New("enginetest: wallet closed")

type usage struct {
	label  string
	amount uint64
	txs    uint64
}

// Wallet implements engine.Wallet with scripted chain state.
type Wallet struct {
	eng           *Engine
	path          string
	keys          wallet.Keys
	address       string
	restoreHeight int64

	mu           sync.Mutex
	closed       bool
	status       engine.Status
	fullStatus   engine.Status
	listener     engine.Listener
	refreshing   bool
	synchronized bool
	height       int64
	balance      uint64
	unlocked     uint64
	source       []engine.TransactionInfo
	history      []engine.TransactionInfo
	subaddresses []usage
	pending      *Pending
	notes        map[string]string
	stores       int
	storeErr     error
	fee          uint64
	estimateErr  error
	createFail   string
	commitErr    error
	created      []engine.TxRequest
	committed    []string
}

var _ engine.Wallet = (*Wallet)(nil)

func newWallet(e *Engine, path string, kf keysFile) *Wallet {
	return &Wallet{
		eng:           e,
		path:          path,
		keys:          kf.Keys,
		address:       kf.Address,
		restoreHeight: kf.RestoreHeight,
		status:        engine.OK,
		fullStatus:    engine.OK,
		subaddresses:  []usage{{}},
		notes:         make(map[string]string),
	}
}

// Scripting

// SetStatus sets the status and full status.
func (w *Wallet) SetStatus(s engine.Status) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status, w.fullStatus = s, s
}

// SetFullStatus sets only the full status.
func (w *Wallet) SetFullStatus(s engine.Status) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fullStatus = s
}

// SetHeight sets the scanned height.
func (w *Wallet) SetHeight(h int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.height = h
}

// SetSynced sets the synchronized flag.
func (w *Wallet) SetSynced(synced bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.synchronized = synced
}

// SetBalance sets the total and unlocked balance.
func (w *Wallet) SetBalance(all, unlocked uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balance, w.unlocked = all, unlocked
}

// AddTransaction adds tx to the history RefreshHistory will load.
func (w *Wallet) AddTransaction(tx engine.TransactionInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.source = append(w.source, tx)
}

// UseSubaddress records funds received on a subaddress of account 0,
// creating subaddresses up to index as needed.
func (w *Wallet) UseSubaddress(index uint32, amount uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for uint32(len(w.subaddresses)) <= index {
		w.subaddresses = append(w.subaddresses, usage{})
	}
	w.subaddresses[index].amount += amount
	w.subaddresses[index].txs++
}

// SetFee sets the fee of estimates and created transactions.
func (w *Wallet) SetFee(fee uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fee = fee
}

// FailStore makes Store return err.
func (w *Wallet) FailStore(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.storeErr = err
}

// FailEstimate makes EstimateTransactionFee return err.
func (w *Wallet) FailEstimate(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.estimateErr = err
}

// FailCreate makes created transactions carry an error status with msg.
func (w *Wallet) FailCreate(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.createFail = msg
}

// FailCommit makes Commit return err.
func (w *Wallet) FailCommit(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.commitErr = err
}

// Driving

// FireNewBlock delivers a NewBlock callback to the listener, if any.
func (w *Wallet) FireNewBlock(height int64) {
	if l := w.Listener(); l != nil {
		l.NewBlock(height)
	}
}

// FireRefreshed delivers a Refreshed callback to the listener, if any.
func (w *Wallet) FireRefreshed() {
	if l := w.Listener(); l != nil {
		l.Refreshed()
	}
}

// FireMoneyReceived delivers a MoneyReceived callback to the listener, if any.
func (w *Wallet) FireMoneyReceived(txID string, amount uint64) {
	if l := w.Listener(); l != nil {
		l.MoneyReceived(txID, amount)
	}
}

// Inspection

// Listener returns the registered listener.
func (w *Wallet) Listener() engine.Listener {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.listener
}

// Refreshing reports whether the refresh worker is running.
func (w *Wallet) Refreshing() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.refreshing
}

// Closed reports whether the wallet was closed.
func (w *Wallet) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// Stores returns how often Store succeeded.
func (w *Wallet) Stores() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stores
}

// Created returns the requests passed to CreateTransaction.
func (w *Wallet) Created() []engine.TxRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]engine.TxRequest, len(w.created))
	copy(out, w.created)
	return out
}

// Committed returns the IDs of committed transactions.
func (w *Wallet) Committed() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.committed))
	copy(out, w.committed)
	return out
}

// Note returns the user note of txID.
func (w *Wallet) Note(txID string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.notes[txID]
}

// engine.Wallet

// Path implements engine.Wallet.
func (w *Wallet) Path() string { return w.path }

// Address implements engine.Wallet.
func (w *Wallet) Address() string { return w.address }

// Keys implements engine.Wallet.
func (w *Wallet) Keys() wallet.Keys { return w.keys }

// RestoreHeight implements engine.Wallet.
func (w *Wallet) RestoreHeight() int64 { return w.restoreHeight }

// Status implements engine.Wallet.
func (w *Wallet) Status() engine.Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// FullStatus implements engine.Wallet.
func (w *Wallet) FullStatus() engine.Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullStatus
}

// SetListener implements engine.Wallet.
func (w *Wallet) SetListener(l engine.Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listener = l
}

// StartRefresh implements engine.Wallet.
func (w *Wallet) StartRefresh() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.refreshing = true
}

// PauseRefresh implements engine.Wallet.
func (w *Wallet) PauseRefresh() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.refreshing = false
}

// IsSynchronized implements engine.Wallet.
func (w *Wallet) IsSynchronized() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.synchronized
}

// SetSynchronized implements engine.Wallet.
func (w *Wallet) SetSynchronized() {
	w.SetSynced(true)
}

// BlockChainHeight implements engine.Wallet.
func (w *Wallet) BlockChainHeight() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

// DaemonBlockChainHeight implements engine.Wallet.
func (w *Wallet) DaemonBlockChainHeight() int64 {
	return w.eng.currentDaemonHeight()
}

// Balance implements engine.Wallet.
func (w *Wallet) Balance() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balance
}

// UnlockedBalance implements engine.Wallet.
func (w *Wallet) UnlockedBalance() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.unlocked
}

// RefreshHistory implements engine.Wallet.
func (w *Wallet) RefreshHistory() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.history = make([]engine.TransactionInfo, len(w.source))
	copy(w.history, w.source)
}

// History implements engine.Wallet.
func (w *Wallet) History() []engine.TransactionInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]engine.TransactionInfo, len(w.history))
	copy(out, w.history)
	return out
}

// NumSubaddresses implements engine.Wallet.
func (w *Wallet) NumSubaddresses() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subaddresses)
}

// Subaddress implements engine.Wallet. Only account 0 exists.
func (w *Wallet) Subaddress(account, index uint32) (wallet.Subaddress, bool) {
	w.mu.Lock()
	if account != 0 || index >= uint32(len(w.subaddresses)) {
		w.mu.Unlock()
		return wallet.Subaddress{}, false
	}
	u := w.subaddresses[index]
	w.mu.Unlock()

	address := w.address
	if index > 0 {
		var err error
		if address, err = w.keys.Subaddress(w.eng.Network(), account, index); err != nil {
			return wallet.Subaddress{}, false
		}
	}
	return wallet.Subaddress{
		AccountIndex: account,
		AddressIndex: index,
		Address:      address,
		Label:        u.label,
		Amount:       u.amount,
		TxsCount:     u.txs,
	}, true
}

// NewSubaddress implements engine.Wallet.
func (w *Wallet) NewSubaddress(account uint32, label string) string {
	w.mu.Lock()
	w.subaddresses = append(w.subaddresses, usage{label: label})
	index := uint32(len(w.subaddresses) - 1)
	w.mu.Unlock()

	address, err := w.keys.Subaddress(w.eng.Network(), account, index)
	if err != nil {
		return ""
	}
	return address
}

// Store implements engine.Wallet.
func (w *Wallet) Store() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if w.storeErr != nil {
		return w.storeErr
	}
	if err := fileutil.WriteAtomic(w.path, []byte("cache"), 0o600); err != nil {
		return err
	}
	w.stores++
	return nil
}

// CreateTransaction implements engine.Wallet.
func (w *Wallet) CreateTransaction(req engine.TxRequest) engine.PendingTransaction {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.created = append(w.created, req)
	p := &Pending{w: w, status: engine.OK, fee: w.fee, amount: req.Amount}
	switch {
	case w.createFail != "":
		p.status = engine.ErrorStatus(w.createFail)
	case req.IsSweepAll():
		p.amount = 0
		if w.unlocked > w.fee {
			p.amount = w.unlocked - w.fee
		}
	}
	p.txID = fmt.Sprintf("%064x", len(w.created))
	w.pending = p
	return p
}

// PendingTransaction implements engine.Wallet.
func (w *Wallet) PendingTransaction() engine.PendingTransaction {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil {
		return nil
	}
	return w.pending
}

// DisposePendingTransaction implements engine.Wallet.
func (w *Wallet) DisposePendingTransaction() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = nil
}

// EstimateTransactionFee implements engine.Wallet.
func (w *Wallet) EstimateTransactionFee(_ engine.TxRequest) (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.estimateErr != nil {
		return 0, w.estimateErr
	}
	return w.fee, nil
}

// SetUserNote implements engine.Wallet.
func (w *Wallet) SetUserNote(txID, note string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.notes[txID] = note
	return nil
}

func (w *Wallet) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.listener = nil
	w.refreshing = false
}

// Pending implements engine.PendingTransaction.
type Pending struct {
	w         *Wallet
	status    engine.Status
	txID      string
	amount    uint64
	fee       uint64
	committed bool
}

var _ engine.PendingTransaction = (*Pending)(nil)

// Status implements engine.PendingTransaction.
func (p *Pending) Status() engine.Status { return p.status }

// FirstTxID implements engine.PendingTransaction.
func (p *Pending) FirstTxID() string { return p.txID }

// Amount implements engine.PendingTransaction.
func (p *Pending) Amount() uint64 { return p.amount }

// Fee implements engine.PendingTransaction.
func (p *Pending) Fee() uint64 { return p.fee }

// Commit implements engine.PendingTransaction.
func (p *Pending) Commit() error {
	p.w.mu.Lock()
	defer p.w.mu.Unlock()
	if p.w.commitErr != nil {
		return p.w.commitErr
	}
	p.committed = true
	p.w.committed = append(p.w.committed, p.txID)
	return nil
}
