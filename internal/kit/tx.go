package kit

import (
	"github.com/mrz1836/xmrkit/internal/engine"
)

// buildTxRequest builds the engine request for a payment. Sending exactly the
// unlocked balance sweeps the wallet so the fee comes out of the amount.
func (k *Kit) buildTxRequest(amount uint64, destination, memo string) engine.TxRequest {
	if amount == k.Balance().Unlocked {
		amount = engine.SweepAll
	}
	return engine.TxRequest{
		Destination: destination,
		Amount:      amount,
		Mixin:       engine.DefaultMixin,
		Priority:    engine.PriorityMedium,
		UserNotes:   memo,
	}
}

// EstimateFee returns the fee in atomic units of sending amount to address.
// Engine errors are returned unchanged.
func (k *Kit) EstimateFee(amount uint64, address, memo string) (uint64, error) {
	return k.service.EstimateFee(k.buildTxRequest(amount, address, memo))
}

// Send builds, commits and stores a payment and returns its transaction ID.
// A failed send is never retried.
func (k *Kit) Send(amount uint64, address, memo string) (string, error) {
	req := k.buildTxRequest(amount, address, memo)
	if _, err := k.service.CreateTransaction(req); err != nil {
		return "", err
	}
	txID, err := k.service.SendTransaction(memo)
	if err != nil {
		return "", err
	}
	k.logger.Info().Str("tx", txID).Msg("transaction sent")
	return txID, nil
}

// SaveState stores the wallet. A save requested while another is in flight
// is dropped.
func (k *Kit) SaveState() {
	if !k.saving.CompareAndSwap(false, true) {
		k.metrics.RecordSaveSkipped()
		return
	}
	defer k.saving.Store(false)

	if err := k.service.Store(); err != nil {
		k.logger.Warn().Err(err).Msg("save state failed")
	}
}
