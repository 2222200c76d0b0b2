package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubaddress_Sort(t *testing.T) {
	t.Parallel()

	list := []Subaddress{
		{AccountIndex: 0, AddressIndex: 0},
		{AccountIndex: 1, AddressIndex: 0},
		{AccountIndex: 0, AddressIndex: 2},
		{AccountIndex: 0, AddressIndex: 1},
		{AccountIndex: 1, AddressIndex: 3},
	}
	SortSubaddresses(list)

	got := make([][2]uint32, 0, len(list))
	for _, s := range list {
		got = append(got, [2]uint32{s.AccountIndex, s.AddressIndex})
	}
	assert.Equal(t, [][2]uint32{{1, 3}, {1, 0}, {0, 2}, {0, 1}, {0, 0}}, got)
	assert.Equal(t, 0, list[0].Compare(list[0]))
}

func TestSubaddress_SquashedAddress(t *testing.T) {
	t.Parallel()

	s := Subaddress{Address: abandonArtAddress}
	assert.Equal(t, "43Xuqb8w…SVMTUBCX", s.SquashedAddress())
	assert.Equal(t, "short", Subaddress{Address: "short"}.SquashedAddress())
	assert.Equal(t, "0123456789abcdef", Subaddress{Address: "0123456789abcdef"}.SquashedAddress())
}

func TestSubaddress_DisplayLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#3", Subaddress{AddressIndex: 3}.DisplayLabel())
	assert.Equal(t, "#1", Subaddress{AddressIndex: 1, Label: "2024-05-01-12:30:00"}.DisplayLabel())
	assert.Equal(t, "savings", Subaddress{AddressIndex: 1, Label: "savings"}.DisplayLabel())
}
