package requester

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhoshMobi/xdg-desktop-portal-phosh/internal/message"
)

func TestTokenMap_TakeOnce(t *testing.T) {
	m := NewTokenMap()
	m.Insert("t1", 7)

	id, ok := m.Take("t1")
	require.True(t, ok)
	assert.Equal(t, message.RequestID(7), id)

	_, ok = m.Take("t1")
	assert.False(t, ok, "second take must miss")
}

func TestTokenMap_Peek(t *testing.T) {
	m := NewTokenMap()
	m.Insert("t1", 3)

	id, ok := m.Peek("t1")
	require.True(t, ok)
	assert.Equal(t, message.RequestID(3), id)

	// Peek must not remove.
	id, ok = m.Peek("t1")
	require.True(t, ok)
	assert.Equal(t, message.RequestID(3), id)
	assert.Equal(t, 1, m.Len())
}

func TestTokenMap_UnknownToken(t *testing.T) {
	m := NewTokenMap()
	_, ok := m.Take("missing")
	assert.False(t, ok)
	_, ok = m.Peek("missing")
	assert.False(t, ok)
}

func TestTokenMap_Overwrite(t *testing.T) {
	m := NewTokenMap()
	m.Insert("t1", 1)
	m.Insert("t1", 2)

	id, ok := m.Take("t1")
	require.True(t, ok)
	assert.Equal(t, message.RequestID(2), id)
}

func TestTokenMap_ConcurrentTake(t *testing.T) {
	m := NewTokenMap()
	const tokens = 200
	for i := 0; i < tokens; i++ {
		m.Insert(HandleToken(fmt.Sprintf("tok-%d", i)), message.RequestID(i+1))
	}

	var hits sync.Map
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < tokens; i++ {
				token := HandleToken(fmt.Sprintf("tok-%d", i))
				if id, ok := m.Take(token); ok {
					if _, loaded := hits.LoadOrStore(id, true); loaded {
						t.Errorf("id %d taken twice", id)
					}
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, m.Len())
}
