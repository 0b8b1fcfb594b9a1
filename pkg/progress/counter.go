// Package progress tracks bytes moved during an upload. Accumulation is safe
// for concurrent use because the S3 transfer manager reads from several
// goroutines.
package progress

import "sync"

// Sink receives byte counts as they are transferred.
type Sink interface {
	Add(n int64)
}

type NopSink struct{}

func (NopSink) Add(int64) {}

// Counter accumulates transferred bytes against a known total.
type Counter struct {
	mu     sync.Mutex
	total  int64
	seen   int64
	done   bool
	onDone func()
}

// NewCounter returns a Counter for total bytes. onDone, when set, runs once
// on the Add call that first accounts for every byte.
func NewCounter(total int64, onDone func()) *Counter {
	return &Counter{total: total, onDone: onDone}
}

// AddAndCheck adds n bytes and reports the running total plus whether this
// call completed the transfer. completed is true for at most one call.
func (c *Counter) AddAndCheck(n int64) (seen int64, completed bool) {
	_, seen, completed = c.add(n)
	return seen, completed
}

// add clamps the running total at c.total and returns how many of the n
// bytes were counted.
func (c *Counter) add(n int64) (applied, seen int64, completed bool) {
	c.mu.Lock()
	if n > 0 {
		applied = n
		if c.seen+n > c.total {
			applied = c.total - c.seen
		}
		c.seen += applied
	}
	if !c.done && c.seen >= c.total {
		c.done = true
		completed = true
	}
	seen = c.seen
	onDone := c.onDone
	c.mu.Unlock()

	if completed && onDone != nil {
		onDone()
	}
	return applied, seen, completed
}

func (c *Counter) Add(n int64) {
	c.AddAndCheck(n)
}

func (c *Counter) Seen() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seen
}

func (c *Counter) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}
