package capture

import "sync/atomic"

// Counters is the state shared between the delivery callback, the monitor
// loop and the signal watcher. Byte and drop counts only ever grow; the stop
// flag is set once.
type Counters struct {
	bytes   atomic.Uint64
	dropped atomic.Uint64
	stopped atomic.Bool
	done    chan struct{}
}

func NewCounters() *Counters {
	return &Counters{done: make(chan struct{})}
}

func (c *Counters) AddBytes(n uint64) {
	c.bytes.Add(n)
}

func (c *Counters) Bytes() uint64 {
	return c.bytes.Load()
}

func (c *Counters) AddDropped(n uint64) {
	c.dropped.Add(n)
}

func (c *Counters) Dropped() uint64 {
	return c.dropped.Load()
}

// RequestStop sets the stop flag. Only the call that actually flipped it
// gets true back.
func (c *Counters) RequestStop() bool {
	if !c.stopped.CompareAndSwap(false, true) {
		return false
	}
	close(c.done)
	return true
}

func (c *Counters) Stopped() bool {
	return c.stopped.Load()
}

// Done is closed once stop has been requested.
func (c *Counters) Done() <-chan struct{} {
	return c.done
}
