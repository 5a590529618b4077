// Package dispatch owns responder lifetimes. A single goroutine consumes
// the bounded message channel, selects responders via a static table and
// tears them down on Done or Cancel. The registry is touched by that
// goroutine only, so it needs no lock.
package dispatch

import (
	"context"

	"go.uber.org/zap"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

// DefaultBuffer is the inbox capacity used when the config does not set
// one. A full inbox suspends the sending requester — that is the intended
// backpressure, not an error.
const DefaultBuffer = 16

// Loop is the single-consumer dispatch loop.
type Loop struct {
	inbox    chan message.Message
	table    Table
	registry map[message.RequestID]Responder
	closed   chan struct{}
	log      *zap.Logger
}

// New creates a loop with the given selection table and inbox capacity.
func New(table Table, buffer int, log *zap.Logger) *Loop {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Loop{
		inbox:    make(chan message.Message, buffer),
		table:    table,
		registry: make(map[message.RequestID]Responder),
		closed:   make(chan struct{}),
		log:      log.Named("dispatch"),
	}
}

// Sender returns the inbound channel requesters post messages on.
func (l *Loop) Sender() chan<- message.Message {
	return l.inbox
}

// Closed returns a channel that is closed once the loop has exited.
// Requesters select on it to avoid blocking forever on a dead loop.
func (l *Loop) Closed() <-chan struct{} {
	return l.closed
}

// Run processes messages in arrival order until ctx is cancelled. On
// shutdown every registered responder is cancelled so that suspended
// requesters unblock with the cancelled failure.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.closed)
	l.log.Info("dispatch loop running")

	for {
		select {
		case <-ctx.Done():
			l.shutdown()
			return ctx.Err()
		case msg := <-l.inbox:
			l.handle(msg)
		}
	}
}

func (l *Loop) shutdown() {
	for id, responder := range l.registry {
		l.log.Debug("cancelling responder on shutdown", zap.Uint64("request_id", uint64(id)))
		responder.Cancel()
		delete(l.registry, id)
	}
	l.log.Info("dispatch loop stopped")
}

// handle processes one message. Only the loop goroutine calls it.
func (l *Loop) handle(msg message.Message) {
	switch m := msg.(type) {
	case message.Request:
		l.handleRequest(m)

	case message.Cancel:
		responder, ok := l.registry[m.ID]
		if !ok {
			// The request completed and raced the cancel signal.
			l.log.Warn("cancel for unknown request", zap.Uint64("request_id", uint64(m.ID)))
			return
		}
		responder.Cancel()
		delete(l.registry, m.ID)

	case message.Done:
		if _, ok := l.registry[m.ID]; !ok {
			// Already removed by an earlier cancel.
			l.log.Debug("done for unknown request", zap.Uint64("request_id", uint64(m.ID)))
			return
		}
		delete(l.registry, m.ID)

	default:
		l.log.Error("unknown message variant dropped")
	}
}

func (l *Loop) handleRequest(m message.Request) {
	// A registered ID means this is a follow-up for an open request; the
	// owning responder handles it and no new one is created.
	if responder, ok := l.registry[m.ID]; ok {
		responder.Respond(m.Payload)
		return
	}

	kind := m.Payload.Kind()
	construct, ok := l.table[kind]
	if !ok {
		l.log.Error("no responder for request",
			zap.Uint64("request_id", uint64(m.ID)),
			zap.String("kind", string(kind)))
		if err := m.Payload.Reject(message.NewFailed("no responder available")); err != nil {
			l.log.Error("could not reject orphan request", zap.Error(err))
		}
		return
	}

	responder := construct()
	responder.Respond(m.Payload)
	l.registry[m.ID] = responder
	l.log.Debug("responder registered",
		zap.Uint64("request_id", uint64(m.ID)),
		zap.String("kind", string(kind)))
}
