package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	t.Parallel()

	assert.True(t, OK.IsOK())
	assert.Equal(t, "Ok", OK.String())

	s := ErrorStatus("no connection to daemon")
	assert.False(t, s.IsOK())
	assert.Equal(t, "Error: no connection to daemon", s.String())
	assert.Equal(t, "Critical: corrupt", Status{Code: StatusCritical, Message: "corrupt"}.String())
}

func TestConnectionStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Connected", Connected.String())
	assert.Equal(t, "Disconnected", Disconnected.String())
	assert.Equal(t, "WrongVersion", WrongVersion.String())
}

func TestTxRequest_IsSweepAll(t *testing.T) {
	t.Parallel()

	assert.True(t, TxRequest{Amount: SweepAll}.IsSweepAll())
	assert.False(t, TxRequest{Amount: 1}.IsSweepAll())
}

func TestNewBalance(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Balance{All: 10, Unlocked: 4}, NewBalance(10, 4))
	assert.Equal(t, Balance{All: 10, Unlocked: 10}, NewBalance(10, 12))
}

func TestEnumStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "medium", PriorityMedium.String())
	assert.Equal(t, "default", PriorityDefault.String())
	assert.Equal(t, "in", DirectionIn.String())
	assert.Equal(t, "out", DirectionOut.String())
}
