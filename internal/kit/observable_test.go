package kit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservable(t *testing.T) {
	t.Parallel()

	o := newObservable(1, func(a, b int) bool { return a == b })
	ch, cancel := o.Subscribe()
	assert.Equal(t, 1, <-ch)

	o.Set(1)
	select {
	case v := <-ch:
		t.Fatalf("equal value published: %d", v)
	default:
	}

	// A slow reader only sees the newest value.
	o.Set(2)
	o.Set(3)
	assert.Equal(t, 3, <-ch)
	assert.Equal(t, 3, o.Get())

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
	o.Set(4)
}

func TestObservable_NoEqual(t *testing.T) {
	t.Parallel()

	o := newObservable[[]int](nil, nil)
	ch, cancel := o.Subscribe()
	defer cancel()
	<-ch

	o.Set([]int{1})
	o.Set([]int{1})
	require.Len(t, ch, 1)
	assert.Equal(t, []int{1}, <-ch)
}

func TestOffer(t *testing.T) {
	t.Parallel()

	ch := make(chan int, 1)
	assert.False(t, offer(ch, 1))
	assert.True(t, offer(ch, 2))
	assert.Equal(t, 2, <-ch)
}
