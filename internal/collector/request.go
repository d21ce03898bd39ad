package collector

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/huynhtran1509/reddit-uva/internal/domain"
)

// Result is the single outcome of a fetch: either Listing or Err is set.
type Result struct {
	Listing domain.Listing
	Err     error
}

func (r Result) OK() bool {
	return r.Err == nil
}

const (
	statePending int32 = iota
	stateDelivered
	stateCancelled
)

// Request is the handle of one in-flight fetch.
//
// The completion callback runs at most once, on the request's own goroutine.
// Once Cancel has returned it never runs.
type Request struct {
	id         uuid.UUID
	state      atomic.Int32
	cancel     context.CancelFunc
	onComplete func(Result)
	done       chan struct{}
}

func newRequest(cancel context.CancelFunc, onComplete func(Result)) *Request {
	if onComplete == nil {
		onComplete = func(Result) {}
	}
	return &Request{
		id:         uuid.New(),
		cancel:     cancel,
		onComplete: onComplete,
		done:       make(chan struct{}),
	}
}

// ID identifies the request in logs.
func (r *Request) ID() string {
	return r.id.String()
}

// Cancel aborts the request if it is still running. It is safe to call at any
// time and any number of times; after delivery it does nothing.
func (r *Request) Cancel() {
	if r == nil {
		return
	}
	r.state.CompareAndSwap(statePending, stateCancelled)
	r.cancel()
}

// Cancelled reports whether Cancel won against delivery.
func (r *Request) Cancelled() bool {
	return r.state.Load() == stateCancelled
}

// Done is closed once the request goroutine has exited, whether the result
// was delivered or dropped.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

func (r *Request) deliver(res Result) bool {
	if !r.state.CompareAndSwap(statePending, stateDelivered) {
		return false
	}
	r.onComplete(res)
	return true
}

func (r *Request) finish() {
	r.cancel()
	close(r.done)
}

// Handle is the cancellation side of a Request.
type Handle interface {
	Cancel()
}
