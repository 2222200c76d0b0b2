package kit

import (
	"github.com/mrz1836/xmrkit/internal/engine"
	"github.com/mrz1836/xmrkit/internal/wallet"
)

// ReceiveAddress returns the address to show for incoming payments. With an
// open wallet it is the newest unused subaddress, or a new one when all are
// used. Before the wallet is open it is the watch-only address, or
// subaddress 1 derived from the seed.
func (k *Kit) ReceiveAddress() (string, error) {
	if w := k.service.Wallet(); w != nil {
		subs := walletSubaddresses(w)
		for i := len(subs) - 1; i >= 1; i-- {
			if subs[i].TxsCount == 0 {
				return subs[i].Address, nil
			}
		}
		return w.NewSubaddress(accountIndex, ""), nil
	}

	if k.seed.Kind() == wallet.SeedWatchOnly {
		return k.seed.Address(), nil
	}
	keys, err := wallet.DeriveKeys(k.seed)
	if err != nil {
		return "", err
	}
	return keys.Subaddress(k.engine.Network(), accountIndex, 1)
}

// Subaddresses lists the subaddresses of the account. Before the wallet is
// open it returns the primary address and subaddress 1 derived from the
// seed, or just the address of a watch-only seed.
func (k *Kit) Subaddresses() ([]wallet.Subaddress, error) {
	if w := k.service.Wallet(); w != nil {
		return walletSubaddresses(w), nil
	}

	if k.seed.Kind() == wallet.SeedWatchOnly {
		return []wallet.Subaddress{{AccountIndex: accountIndex, Address: k.seed.Address()}}, nil
	}

	keys, err := wallet.DeriveKeys(k.seed)
	if err != nil {
		return nil, err
	}
	out := make([]wallet.Subaddress, 0, 2)
	for i := uint32(0); i < 2; i++ {
		addr, err := keys.Subaddress(k.engine.Network(), accountIndex, i)
		if err != nil {
			return nil, err
		}
		out = append(out, wallet.Subaddress{AccountIndex: accountIndex, AddressIndex: i, Address: addr})
	}
	return out, nil
}

// Subaddress returns one subaddress of the open wallet.
func (k *Kit) Subaddress(account, index uint32) (wallet.Subaddress, bool) {
	w := k.service.Wallet()
	if w == nil {
		return wallet.Subaddress{}, false
	}
	return w.Subaddress(account, index)
}

// Keys returns the key set of the open wallet.
func (k *Kit) Keys() (wallet.Keys, bool) {
	w := k.service.Wallet()
	if w == nil {
		return wallet.Keys{}, false
	}
	return w.Keys(), true
}

func walletSubaddresses(w engine.Wallet) []wallet.Subaddress {
	n := w.NumSubaddresses()
	out := make([]wallet.Subaddress, 0, n)
	for i := 0; i <= n; i++ {
		if s, ok := w.Subaddress(accountIndex, uint32(i)); ok { //nolint:gosec // G115: bounded by NumSubaddresses
			out = append(out, s)
		}
	}
	return out
}
