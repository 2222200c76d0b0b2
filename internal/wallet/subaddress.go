package wallet

import (
	"regexp"
	"sort"
	"strconv"
)

// defaultLabelRegex matches the timestamp labels wallets assign to
// subaddresses the user never named.
var defaultLabelRegex = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}-[0-9]{2}:[0-9]{2}:[0-9]{2}$`)

// Subaddress is one receive address of a wallet with its observed usage.
type Subaddress struct {
	AccountIndex uint32 `json:"account_index"`
	AddressIndex uint32 `json:"address_index"`
	Address      string `json:"address"`
	Label        string `json:"label"`
	Amount       uint64 `json:"amount"`
	TxsCount     uint64 `json:"txs_count"`
}

// Compare orders subaddresses descending by account, then by index. It
// returns a negative value when s sorts before other.
func (s Subaddress) Compare(other Subaddress) int {
	if s.AccountIndex != other.AccountIndex {
		if s.AccountIndex > other.AccountIndex {
			return -1
		}
		return 1
	}
	switch {
	case s.AddressIndex > other.AddressIndex:
		return -1
	case s.AddressIndex < other.AddressIndex:
		return 1
	default:
		return 0
	}
}

// SortSubaddresses sorts list in place, newest first.
func SortSubaddresses(list []Subaddress) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Compare(list[j]) < 0
	})
}

// SquashedAddress shortens long addresses to their first and last 8
// characters.
func (s Subaddress) SquashedAddress() string {
	if len(s.Address) <= 16 {
		return s.Address
	}
	return s.Address[:8] + "…" + s.Address[len(s.Address)-8:]
}

// DisplayLabel returns the label, or "#<index>" for unnamed subaddresses.
func (s Subaddress) DisplayLabel() string {
	if s.Label == "" || defaultLabelRegex.MatchString(s.Label) {
		return "#" + strconv.FormatUint(uint64(s.AddressIndex), 10)
	}
	return s.Label
}
