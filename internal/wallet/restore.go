package wallet

import (
	"strconv"
	"strings"
	"time"

	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

// UnsetRestoreHeight tells the engine to pick its own restore height.
const UnsetRestoreHeight int64 = -1

// restoreMarginBlocks is subtracted from date based heights so that block
// time variance never moves the scan start past the first wallet output.
const restoreMarginBlocks = 7 * 720

type heightCheckpoint struct {
	date   time.Time
	height int64
}

// Mainnet checkpoints. Blocks were one minute apart until the v2 hard fork
// and two minutes apart after it.
//
//nolint:gochecknoglobals // Fixed chain history
var mainnetCheckpoints = []heightCheckpoint{
	{date: time.Date(2014, time.April, 18, 0, 0, 0, 0, time.UTC), height: 0},
	{date: time.Date(2016, time.March, 23, 0, 0, 0, 0, time.UTC), height: 1009827},
	{date: time.Date(2022, time.August, 13, 0, 0, 0, 0, time.UTC), height: 2688888},
}

const blocksPerDayAfterFork = 720

// ParseRestoreHeight turns user input into a restore height. Empty input
// yields UnsetRestoreHeight. On mainnet a yyyy-MM-dd date, or an 8 digit
// yyyyMMdd date, maps to an approximate height; otherwise the input must be a
// non-negative decimal height.
func ParseRestoreHeight(input string, network Network, now time.Time) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return UnsetRestoreHeight, nil
	}

	if network == Mainnet || network == "" {
		if d, err := time.Parse("2006-01-02", trimmed); err == nil {
			return HeightAtDate(d, now), nil
		}
		if len(trimmed) == 8 {
			if d, err := time.Parse("20060102", trimmed); err == nil {
				return HeightAtDate(d, now), nil
			}
		}
	}

	h, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || h < 0 {
		return 0, kiterr.WithDetails(kiterr.ErrInvalidRestoreHeight, map[string]string{"input": trimmed})
	}
	return h, nil
}

// RestoreHeightForNewWallet returns the height a freshly generated wallet
// should start scanning from.
func RestoreHeightForNewWallet(now time.Time) int64 {
	return HeightAtDate(now, now)
}

// HeightAtDate estimates the first mainnet block height on date, minus a
// safety margin. Dates after now are treated as now.
func HeightAtDate(date, now time.Time) int64 {
	date = date.UTC()
	if date.After(now) {
		date = now.UTC()
	}

	first := mainnetCheckpoints[0]
	if !date.After(first.date) {
		return 0
	}

	var est int64
	last := mainnetCheckpoints[len(mainnetCheckpoints)-1]
	if date.After(last.date) {
		est = last.height + daysBetween(last.date, date)*blocksPerDayAfterFork
	} else {
		for i := 1; i < len(mainnetCheckpoints); i++ {
			lo, hi := mainnetCheckpoints[i-1], mainnetCheckpoints[i]
			if date.After(hi.date) {
				continue
			}
			spanDays := daysBetween(lo.date, hi.date)
			est = lo.height + (hi.height-lo.height)*daysBetween(lo.date, date)/spanDays
			break
		}
	}

	est -= restoreMarginBlocks
	if est < 0 {
		return 0
	}
	return est
}

func daysBetween(from, to time.Time) int64 {
	return int64(to.Sub(from) / (24 * time.Hour))
}
