package message

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReply_ResolveOnce(t *testing.T) {
	t.Run("first resolve wins", func(t *testing.T) {
		reply := NewReply[string]()
		require.NoError(t, reply.Resolve("hello"))

		value, err := reply.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "hello", value)
	})

	t.Run("second resolve is rejected loudly", func(t *testing.T) {
		reply := NewReply[string]()
		require.NoError(t, reply.Resolve("first"))
		assert.ErrorIs(t, reply.Resolve("second"), ErrAlreadyResolved)
		assert.ErrorIs(t, reply.Reject(NewFailed("late")), ErrAlreadyResolved)

		value, err := reply.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "first", value)
	})

	t.Run("reject after reject is rejected", func(t *testing.T) {
		reply := NewReply[Unit]()
		require.NoError(t, reply.Reject(NewCancelled("user")))
		assert.ErrorIs(t, reply.Reject(NewCancelled("again")), ErrAlreadyResolved)
	})
}

func TestReply_Reject(t *testing.T) {
	reply := NewReply[int]()
	require.NoError(t, reply.Reject(NewCancelled("cancelled by user")))

	_, err := reply.Await(context.Background())
	require.Error(t, err)
	assert.Equal(t, FailureCancelled, KindOf(err))
}

func TestReply_AwaitContextCancelled(t *testing.T) {
	reply := NewReply[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := reply.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// A late resolution must not block the responder.
	assert.NoError(t, reply.Resolve(42))
}

func TestReply_Resolved(t *testing.T) {
	reply := NewReply[Unit]()
	assert.False(t, reply.Resolved())
	require.NoError(t, reply.Resolve(Unit{}))
	assert.True(t, reply.Resolved())
}
