package reconcile

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor_StopsAtEnd(t *testing.T) {
	c := &cursor{next: math.MaxInt - 1, end: math.MaxInt}

	var claimed []int
	for i := 0; i < 5; i++ {
		id, ok := c.claim()
		if !ok {
			break
		}
		claimed = append(claimed, id)
	}
	assert.Equal(t, []int{math.MaxInt - 1, math.MaxInt}, claimed)
}

func TestCursor_ConcurrentClaims(t *testing.T) {
	c := &cursor{next: 1, end: 500}
	seen := make(map[int]int)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				id, ok := c.claim()
				if !ok {
					return
				}
				mu.Lock()
				seen[id]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 500)
	for id, n := range seen {
		assert.Equal(t, 1, n, "id %d", id)
	}
}
