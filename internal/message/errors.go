package message

import "fmt"

// FailureKind is the closed set of failures a portal request can surface to
// its external caller. Everything that goes wrong inside the mediation layer
// collapses to FailureFailed at the requester boundary.
type FailureKind int

const (
	// FailureCancelled means the user or the protocol layer aborted the request.
	FailureCancelled FailureKind = iota + 1
	// FailureInvalidArgument means a responder rejected the request options
	// before presenting any UI.
	FailureInvalidArgument
	// FailureFailed is the generic internal failure.
	FailureFailed
)

func (k FailureKind) String() string {
	switch k {
	case FailureCancelled:
		return "cancelled"
	case FailureInvalidArgument:
		return "invalid-argument"
	case FailureFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// PortalError is the error type delivered through reply channels.
type PortalError struct {
	Kind   FailureKind
	Reason string
}

func (e *PortalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// NewCancelled returns a user/protocol cancellation error.
func NewCancelled(reason string) *PortalError {
	return &PortalError{Kind: FailureCancelled, Reason: reason}
}

// NewInvalidArgument returns an option-validation error.
func NewInvalidArgument(reason string) *PortalError {
	return &PortalError{Kind: FailureInvalidArgument, Reason: reason}
}

// NewFailed returns the generic internal failure.
func NewFailed(reason string) *PortalError {
	return &PortalError{Kind: FailureFailed, Reason: reason}
}

// KindOf extracts the failure kind from an error. Errors that are not
// PortalErrors count as internal failures; nil has no kind.
func KindOf(err error) FailureKind {
	if err == nil {
		return 0
	}
	if pe, ok := err.(*PortalError); ok {
		return pe.Kind
	}
	return FailureFailed
}
