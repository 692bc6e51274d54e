package service

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceGenerator_FormatsPrefixAndNanos(t *testing.T) {
	at := time.Unix(1700000000, 123)
	gen := NewReferenceGenerator(UnderwritingPrefix, func() time.Time { return at })

	assert.Equal(t, "UW1700000000000000123", gen.Next())
}

func TestReferenceGenerator_StrictlyIncreasingOnFrozenClock(t *testing.T) {
	at := time.Unix(1700000000, 0)
	gen := NewReferenceGenerator(SanctionPrefix, func() time.Time { return at })

	first := gen.Next()
	second := gen.Next()
	assert.Equal(t, "SNCT1700000000000000000", first)
	assert.Equal(t, "SNCT1700000000000000001", second)
}

func TestReferenceGenerator_ClockStepsBack(t *testing.T) {
	times := []time.Time{time.Unix(100, 0), time.Unix(50, 0)}
	i := 0
	gen := NewReferenceGenerator("UW", func() time.Time {
		now := times[i]
		i++
		return now
	})

	assert.Equal(t, "UW100000000000", gen.Next())
	assert.Equal(t, "UW100000000001", gen.Next())
}

func TestReferenceGenerator_ConcurrentCallsAreUnique(t *testing.T) {
	gen := NewReferenceGenerator(UnderwritingPrefix, nil)

	const goroutines = 50
	const perGoroutine = 100

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, goroutines*perGoroutine)
		wg   sync.WaitGroup
	)
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			local := make([]string, 0, perGoroutine)
			for i := 0; i < perGoroutine; i++ {
				local = append(local, gen.Next())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, ref := range local {
				seen[ref] = struct{}{}
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, goroutines*perGoroutine)
	for ref := range seen {
		assert.True(t, strings.HasPrefix(ref, "UW"))
	}
}
