package message

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrAlreadyResolved is returned when a reply is resolved or rejected a
// second time. A responder doing this has broken its contract; callers must
// log it, never swallow it silently.
var ErrAlreadyResolved = errors.New("reply already resolved")

type outcome[T any] struct {
	value T
	err   error
}

// Reply is the one-shot channel carrying a responder's answer back to the
// requester that is awaiting it. It resolves exactly once: the first
// Resolve or Reject wins, every later attempt returns ErrAlreadyResolved.
//
// The requester keeps the receiving side (Await); the sending side travels
// inside the request payload to whichever responder accepts it.
type Reply[T any] struct {
	ch       chan outcome[T]
	resolved atomic.Bool
}

// NewReply creates an unresolved reply channel.
func NewReply[T any]() *Reply[T] {
	return &Reply[T]{ch: make(chan outcome[T], 1)}
}

// Resolve delivers a success value. Returns ErrAlreadyResolved if the reply
// was already settled.
func (r *Reply[T]) Resolve(value T) error {
	if !r.resolved.CompareAndSwap(false, true) {
		return ErrAlreadyResolved
	}
	r.ch <- outcome[T]{value: value}
	return nil
}

// Reject delivers a failure. Returns ErrAlreadyResolved if the reply was
// already settled, which makes rejection safe to use as an idempotent
// "unblock the caller" step on teardown paths.
func (r *Reply[T]) Reject(err error) error {
	if !r.resolved.CompareAndSwap(false, true) {
		return ErrAlreadyResolved
	}
	r.ch <- outcome[T]{err: err}
	return nil
}

// Resolved reports whether the reply has been settled.
func (r *Reply[T]) Resolved() bool {
	return r.resolved.Load()
}

// Await blocks until the reply is settled or ctx is cancelled. A cancelled
// context yields ctx.Err(); the reply may still be settled later, the value
// is then discarded by the buffered channel.
func (r *Reply[T]) Await(ctx context.Context) (T, error) {
	var zero T
	select {
	case out := <-r.ch:
		return out.value, out.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
