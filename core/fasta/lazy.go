// core/fasta/lazy.go
package fasta

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// State of a Once value.
type State int

const (
	Unbuilt State = iota
	Building
	Ready
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case Ready:
		return "ready"
	}
	return "unbuilt"
}

// Once computes a value on first use and keeps it. Concurrent first
// callers share a single run of fn. A failed run is not remembered: every
// waiter gets the error and the next call runs fn again.
//
// fn runs with a context that is never cancelled by callers, so one
// caller giving up does not abort the run for the others.
type Once[T any] struct {
	fn    func(context.Context) (T, error)
	group singleflight.Group
	runs  atomic.Int64

	mu    sync.Mutex
	state State
	val   T
}

func NewOnce[T any](fn func(context.Context) (T, error)) *Once[T] {
	return &Once[T]{fn: fn}
}

// Get returns the value, running fn if it is not ready yet.
func (o *Once[T]) Get(ctx context.Context) (T, error) {
	if v, ok := o.ready(); ok {
		return v, nil
	}
	ch := o.group.DoChan("", func() (any, error) {
		if v, ok := o.ready(); ok {
			return v, nil
		}
		o.setState(Building)
		o.runs.Add(1)
		v, err := o.fn(context.WithoutCancel(ctx))
		o.mu.Lock()
		defer o.mu.Unlock()
		if err != nil {
			o.state = Unbuilt
			return v, err
		}
		o.val, o.state = v, Ready
		return v, nil
	})
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (o *Once[T]) ready() (T, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.val, o.state == Ready
}

func (o *Once[T]) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Once[T]) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Runs reports how many times fn has been started.
func (o *Once[T]) Runs() int64 { return o.runs.Load() }
