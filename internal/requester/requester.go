// Package requester translates inbound portal calls into messages for the
// dispatch loop and awaits the typed replies. One adapter exists per exposed
// D-Bus interface; any number of calls may be suspended concurrently, each
// owning its private request ID and reply channel.
package requester

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

// ErrLoopClosed reports that the dispatch loop is gone and no further
// messages can be delivered.
var ErrLoopClosed = errors.New("dispatch loop closed")

// Requester is the shared half of every portal interface adapter: the
// outbound bounded channel, the loop-liveness signal and the token map.
type Requester struct {
	name   string
	send   chan<- message.Message
	closed <-chan struct{}
	tokens *TokenMap
	log    *zap.Logger
}

// New creates an adapter core for the interface called name. send is the
// bounded channel into the dispatch loop; closed is closed when the loop
// exits, turning would-be-forever blocking sends into failures.
func New(name string, send chan<- message.Message, closed <-chan struct{}, log *zap.Logger) *Requester {
	return &Requester{
		name:   name,
		send:   send,
		closed: closed,
		tokens: NewTokenMap(),
		log:    log.Named(name),
	}
}

// Tokens exposes the adapter's handle-token map.
func (r *Requester) Tokens() *TokenMap {
	return r.tokens
}

// post delivers msg to the dispatch loop. It suspends while the channel is
// full — that is the admission control bounding in-flight requests — and
// fails only when the loop is gone or ctx is cancelled first.
func (r *Requester) post(ctx context.Context, msg message.Message) error {
	select {
	case r.send <- msg:
		return nil
	case <-r.closed:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// postFinal is post without the caller's context: lifecycle messages
// (Cancel, Done) must still reach the loop after the caller gave up.
func (r *Requester) postFinal(msg message.Message) error {
	select {
	case r.send <- msg:
		return nil
	case <-r.closed:
		return ErrLoopClosed
	}
}

// NotifyCancel translates the protocol layer's close signal for token into
// a Cancel message. An unknown token means the request already completed
// and raced the close signal; that is logged and dropped.
func (r *Requester) NotifyCancel(token HandleToken) {
	id, ok := r.tokens.Take(token)
	if !ok {
		r.log.Warn("cancel for unknown handle token", zap.String("token", string(token)))
		return
	}
	if err := r.postFinal(message.Cancel{ID: id}); err != nil {
		r.log.Error("failed to send cancel", zap.Uint64("request_id", uint64(id)), zap.Error(err))
	}
}

// NewRequest runs one full request round trip: allocate an ID, hand the
// payload to the dispatch loop, record the token mapping, suspend on the
// reply, and finally emit Done{id} exactly once so the loop can discard the
// responder — on the error paths too.
func NewRequest[T any](ctx context.Context, r *Requester, token HandleToken, payload message.Payload, reply *message.Reply[T]) (T, error) {
	var zero T

	id, msg := message.NewRequest(payload)
	r.log.Debug("new request",
		zap.Uint64("request_id", uint64(id)),
		zap.String("kind", string(payload.Kind())),
		zap.String("token", string(token)))

	if err := r.post(ctx, msg); err != nil {
		r.log.Error("failed to send request", zap.Uint64("request_id", uint64(id)), zap.Error(err))
		return zero, message.NewFailed("could not deliver request")
	}
	r.tokens.Insert(token, id)

	value, err := reply.Await(ctx)

	// The mapping may already be gone if a cancel raced the reply.
	r.tokens.Take(token)
	if derr := r.postFinal(message.Done{ID: id}); derr != nil {
		r.log.Error("failed to send done", zap.Uint64("request_id", uint64(id)), zap.Error(derr))
	}

	return value, normalize(r, id, value, err)
}

// UpdateRequest reuses the live request ID mapped to token for a follow-up
// payload. The logical request stays open, so no Done is emitted and the
// token mapping is left in place. An unknown token yields an internal
// failure without contacting the dispatch loop.
func UpdateRequest[T any](ctx context.Context, r *Requester, token HandleToken, payload message.Payload, reply *message.Reply[T]) (T, error) {
	var zero T

	id, ok := r.tokens.Peek(token)
	if !ok {
		r.log.Warn("update for unknown handle token", zap.String("token", string(token)))
		return zero, message.NewFailed("no request for handle")
	}
	r.log.Debug("update request",
		zap.Uint64("request_id", uint64(id)),
		zap.String("kind", string(payload.Kind())))

	if err := r.post(ctx, message.Request{ID: id, Payload: payload}); err != nil {
		r.log.Error("failed to send update", zap.Uint64("request_id", uint64(id)), zap.Error(err))
		return zero, message.NewFailed("could not deliver request")
	}

	value, err := reply.Await(ctx)
	return value, normalize(r, id, value, err)
}

// normalize converts every mediation-layer failure to the generic internal
// failure at the adapter boundary; responder-reported portal errors pass
// through untouched.
func normalize[T any](r *Requester, id message.RequestID, _ T, err error) error {
	if err == nil {
		return nil
	}
	var pe *message.PortalError
	if errors.As(err, &pe) {
		return pe
	}
	r.log.Error("reply broken", zap.Uint64("request_id", uint64(id)), zap.Error(err))
	return message.NewFailed("request did not complete")
}
