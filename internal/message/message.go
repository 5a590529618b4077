// Package message defines the protocol spoken between the asynchronous
// portal front end and the single-threaded dispatch loop: request
// identifiers, the tagged message union, typed request payloads and the
// one-shot reply channels embedded in them.
package message

// Message is the tagged union flowing from requesters to the dispatch loop
// over one bounded channel. Exactly three variants exist: Request, Cancel
// and Done.
type Message interface {
	isMessage()
}

// Request asks the dispatch loop to start a responder for a new request ID,
// or to forward the payload to the responder already registered under ID.
type Request struct {
	ID      RequestID
	Payload Payload
}

// Cancel tells the dispatch loop the protocol layer closed the request; the
// registered responder should abort its interaction.
type Cancel struct {
	ID RequestID
}

// Done tells the dispatch loop the requester has observed the reply and the
// responder can be discarded.
type Done struct {
	ID RequestID
}

func (Request) isMessage() {}
func (Cancel) isMessage()  {}
func (Done) isMessage()    {}

// NewRequest allocates a fresh request ID and wraps the payload in a
// Request message.
func NewRequest(payload Payload) (RequestID, Request) {
	id := NextID()
	return id, Request{ID: id, Payload: payload}
}
