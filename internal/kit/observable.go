package kit

import "sync"

// observable holds the latest value of T and fans changes out to
// subscribers. Each subscriber channel buffers one value and drops the older
// one when the reader falls behind, so Set never blocks.
type observable[T any] struct {
	mu    sync.Mutex
	value T
	equal func(a, b T) bool
	subs  map[int]chan T
	next  int
}

func newObservable[T any](initial T, equal func(a, b T) bool) *observable[T] {
	return &observable[T]{
		value: initial,
		equal: equal,
		subs:  make(map[int]chan T),
	}
}

// Get returns the latest value.
func (o *observable[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Set stores v and notifies subscribers unless v equals the current value.
func (o *observable[T]) Set(v T) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.equal != nil && o.equal(o.value, v) {
		return
	}
	o.value = v
	for _, ch := range o.subs {
		offer(ch, v)
	}
}

// Subscribe returns a channel that receives the current value and every
// later change, and a function that unsubscribes and closes the channel.
func (o *observable[T]) Subscribe() (<-chan T, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	ch := make(chan T, 1)
	ch <- o.value
	id := o.next
	o.next++
	o.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.subs, id)
			close(ch)
		})
	}
}

// offer sends v on a one-slot channel, replacing a value the reader has
// not taken yet. It reports whether an older value was dropped.
func offer[T any](ch chan T, v T) bool {
	dropped := false
	for {
		select {
		case ch <- v:
			return dropped
		default:
		}
		select {
		case <-ch:
			dropped = true
		default:
		}
	}
}
