package kit

import (
	"strconv"

	"github.com/mrz1836/xmrkit/internal/engine"
)

// StatusEntry is one line of StatusInfo.
type StatusEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// LastBlockHeight returns the daemon height while the daemon is connected.
func (k *Kit) LastBlockHeight() (int64, bool) {
	if k.service.ConnectionStatus() != engine.Connected {
		return 0, false
	}
	return k.service.DaemonHeight(), true
}

// StatusInfo returns a diagnostic summary of the session in display order.
func (k *Kit) StatusInfo() []StatusEntry {
	nodeLabel := "NULL"
	k.foldMu.Lock()
	if k.node != nil {
		nodeLabel = k.node.Label(k.trustNode)
	}
	k.foldMu.Unlock()

	walletStatus := "NULL"
	var walletHeight int64
	if w := k.service.Wallet(); w != nil {
		walletStatus = w.Status().String()
		walletHeight = w.BlockChainHeight()
	}
	lastBlock, _ := k.LastBlockHeight()

	return []StatusEntry{
		{"Node", nodeLabel},
		{"Wallet Status", walletStatus},
		{"Sync State", k.SyncState().Description()},
		{"Last Block Height", strconv.FormatInt(lastBlock, 10)},
		{"Wallet Height", strconv.FormatInt(walletHeight, 10)},
		{"Daemon Height", strconv.FormatInt(k.service.DaemonHeight(), 10)},
		{"Connection Status", k.service.ConnectionStatus().String()},
		{"Kit started", strconv.FormatBool(k.Started())},
		{"Service running", strconv.FormatBool(k.service.Running())},
	}
}
