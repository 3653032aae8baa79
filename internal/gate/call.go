package gate

import (
	"context"
	"sync"
)

// Call is the pending result of one Start. It completes exactly once.
type Call struct {
	done   chan struct{}
	once   sync.Once
	result Result
}

func newCall() *Call {
	return &Call{done: make(chan struct{})}
}

func (c *Call) complete(res Result) {
	c.once.Do(func() {
		c.result = res
		close(c.done)
	})
}

// Done is closed once the result is available.
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// Result returns the result without blocking; ok is false while pending.
func (c *Call) Result() (res Result, ok bool) {
	select {
	case <-c.done:
		return c.result, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the call completes or ctx is done.
func (c *Call) Wait(ctx context.Context) (Result, error) {
	select {
	case <-c.done:
		return c.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
