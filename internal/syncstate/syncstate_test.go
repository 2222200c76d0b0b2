package syncstate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

func TestDescription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state State
		want  string
	}{
		{Synced(), "Synced"},
		{Connecting(true), "Connecting (waiting: true)"},
		{Connecting(false), "Connecting (waiting: false)"},
		{Syncing(0, 100), "Syncing (0%)"},
		{Syncing(0.429, 10), "Syncing (42%)"},
		{Syncing(0.999, 1), "Syncing (99%)"},
		{Syncing(1, 0), "Syncing (100%)"},
		{Initial(), "NotSynced (Not Started)"},
		{NotSynced(kiterr.InvalidNode("Invalid node")), "NotSynced (Invalid node)"},
		{NotSynced(errors.New("boom")), "NotSynced (boom)"},
		{NotSynced(nil), "NotSynced (unknown error)"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.state.Description())
			assert.Equal(t, tc.want, tc.state.String())
		})
	}
}

func TestInitial(t *testing.T) {
	t.Parallel()

	s := Initial()
	assert.Equal(t, KindNotSynced, s.Kind())
	assert.ErrorIs(t, s.Err(), kiterr.ErrNotStarted)
	assert.False(t, s.IsSynced())
}

func TestSyncing_ClampsProgress(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, Syncing(-0.5, 1).Progress(), 0)
	assert.InDelta(t, 1.0, Syncing(1.5, 1).Progress(), 0)
	assert.InDelta(t, 0.0, Syncing(math.NaN(), 1).Progress(), 0)
	assert.Equal(t, int64(7), Syncing(0.3, 7).RemainingBlocks())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b State
		want bool
	}{
		{"synced", Synced(), Synced(), true},
		{"connecting same", Connecting(true), Connecting(true), true},
		{"connecting differs", Connecting(true), Connecting(false), false},
		{"syncing same", Syncing(0.5, 10), Syncing(0.5, 10), true},
		{"syncing progress differs", Syncing(0.5, 10), Syncing(0.6, 10), false},
		{"syncing remaining differs", Syncing(0.5, 10), Syncing(0.5, 9), false},
		{"not synced same error", Initial(), NotSynced(kiterr.ErrNotStarted), true},
		{"not synced same message", NotSynced(kiterr.StartError("x")), NotSynced(kiterr.StartError("x")), true},
		{"not synced other message", NotSynced(kiterr.StartError("x")), NotSynced(kiterr.StartError("y")), false},
		{"not synced other code", NotSynced(kiterr.StartError("x")), NotSynced(kiterr.InvalidNode("x")), false},
		{"different kinds", Synced(), Syncing(1, 0), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.a.Equal(tc.b))
			assert.Equal(t, tc.want, tc.b.Equal(tc.a))
		})
	}
}

func TestSameKind(t *testing.T) {
	t.Parallel()

	assert.True(t, Syncing(0.1, 90).SameKind(Syncing(0.9, 10)))
	assert.True(t, Connecting(true).SameKind(Connecting(false)))
	assert.True(t, NotSynced(errors.New("a")).SameKind(Initial()))
	assert.False(t, Synced().SameKind(Syncing(1, 0)))
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NotSynced", KindNotSynced.String())
	assert.Equal(t, "Connecting", KindConnecting.String())
	assert.Equal(t, "Syncing", KindSyncing.String())
	assert.Equal(t, "Synced", KindSynced.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
