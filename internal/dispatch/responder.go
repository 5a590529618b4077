package dispatch

import "github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"

// Responder reacts to one portal request: it presents its interaction
// surface, gathers input and settles the reply embedded in the payload
// exactly once, on every path that terminates the interaction.
//
// Respond must return promptly — it may start asynchronous UI work but must
// never block the dispatch loop waiting for the user. It is called again
// with follow-up payloads (the update path) while the request is open.
//
// Cancel requests a best-effort, idempotent abort. It must not block, and
// it must leave the reply settled (with the cancelled failure) so the
// awaiting requester is guaranteed to unblock; the loop discards the
// responder afterwards.
type Responder interface {
	Respond(payload message.Payload)
	Cancel()
}

// Constructor builds a fresh responder for one request.
type Constructor func() Responder

// Table is the static selection table from operation kind to responder
// constructor. Adding an operation means adding one row; update-only kinds
// must not appear since they are routed to the already registered
// responder.
type Table map[message.Kind]Constructor
