package wallet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

//nolint:gochecknoglobals // Fixed clock for tests
var restoreNow = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

func TestParseRestoreHeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		network Network
		want    int64
	}{
		{"empty", "", Mainnet, UnsetRestoreHeight},
		{"whitespace", "   ", Mainnet, UnsetRestoreHeight},
		{"height", "3000000", Mainnet, 3000000},
		{"zero", "0", Mainnet, 0},
		{"checkpoint date", "2022-08-13", Mainnet, 2688888 - restoreMarginBlocks},
		{"compact date", "20220813", Mainnet, 2688888 - restoreMarginBlocks},
		{"after checkpoint", "2022-08-23", Mainnet, 2688888 + 10*720 - restoreMarginBlocks},
		{"fork date", "2016-03-23", Mainnet, 1009827 - restoreMarginBlocks},
		{"genesis", "2014-04-18", Mainnet, 0},
		{"before genesis", "2010-01-01", Mainnet, 0},
		{"stagenet number", "20220813", Stagenet, 20220813},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseRestoreHeight(tc.input, tc.network, restoreNow)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseRestoreHeight_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"yesterday", "-5", "2022-13-45", "12.5"} {
		_, err := ParseRestoreHeight(in, Mainnet, restoreNow)
		require.ErrorIs(t, err, kiterr.ErrInvalidRestoreHeight, in)
	}

	// Dates are a mainnet-only convenience.
	_, err := ParseRestoreHeight("2022-08-13", Testnet, restoreNow)
	require.ErrorIs(t, err, kiterr.ErrInvalidRestoreHeight)
}

func TestHeightAtDate_Monotonic(t *testing.T) {
	t.Parallel()

	prev := int64(-1)
	for d := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC); d.Before(restoreNow); d = d.AddDate(0, 1, 0) {
		h := HeightAtDate(d, restoreNow)
		assert.GreaterOrEqual(t, h, prev, d.Format(time.DateOnly))
		prev = h
	}
}

func TestHeightAtDate_FutureClamped(t *testing.T) {
	t.Parallel()

	future := restoreNow.AddDate(1, 0, 0)
	assert.Equal(t, HeightAtDate(restoreNow, restoreNow), HeightAtDate(future, restoreNow))
	assert.Equal(t, HeightAtDate(restoreNow, restoreNow), RestoreHeightForNewWallet(restoreNow))
}
