package message

import "sync/atomic"

// RequestID uniquely identifies one portal request within this process.
// IDs are never reused and carry no meaning outside the process.
type RequestID uint64

var requestCounter atomic.Uint64

// NextID allocates a fresh request ID. It is safe to call from any number
// of goroutines; every returned value is distinct and greater than zero.
func NextID() RequestID {
	return RequestID(requestCounter.Add(1))
}
