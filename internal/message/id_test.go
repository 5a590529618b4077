package message

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextID(t *testing.T) {
	t.Run("returns non-zero ids", func(t *testing.T) {
		assert.NotZero(t, NextID())
	})

	t.Run("ids are unique under concurrency", func(t *testing.T) {
		const workers = 16
		const perWorker = 500

		var mu sync.Mutex
		seen := make(map[RequestID]bool, workers*perWorker)

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ids := make([]RequestID, 0, perWorker)
				for i := 0; i < perWorker; i++ {
					ids = append(ids, NextID())
				}
				mu.Lock()
				defer mu.Unlock()
				for _, id := range ids {
					seen[id] = true
				}
			}()
		}
		wg.Wait()

		require.Len(t, seen, workers*perWorker)
	})

	t.Run("ids increase for a single caller", func(t *testing.T) {
		prev := NextID()
		for i := 0; i < 100; i++ {
			next := NextID()
			assert.Greater(t, next, prev)
			prev = next
		}
	})
}

func TestNewRequest(t *testing.T) {
	reply := NewReply[Unit]()
	payload := &WallpaperSetURI{URI: "file:///tmp/w.png", Reply: reply}

	id, msg := NewRequest(payload)
	assert.Equal(t, id, msg.ID)
	assert.Equal(t, payload, msg.Payload)

	id2, _ := NewRequest(payload)
	assert.NotEqual(t, id, id2)
}
