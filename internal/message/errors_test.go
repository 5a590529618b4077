package message

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, FailureKind(0), KindOf(nil))
	assert.Equal(t, FailureCancelled, KindOf(NewCancelled("x")))
	assert.Equal(t, FailureInvalidArgument, KindOf(NewInvalidArgument("x")))
	assert.Equal(t, FailureFailed, KindOf(NewFailed("x")))
	assert.Equal(t, FailureFailed, KindOf(errors.New("transport exploded")))
}

func TestPortalError_Error(t *testing.T) {
	assert.Equal(t, "cancelled: closed", NewCancelled("closed").Error())
	assert.Equal(t, "invalid-argument: bad uri", NewInvalidArgument("bad uri").Error())
	assert.Equal(t, "failed: oops", NewFailed("oops").Error())
}
