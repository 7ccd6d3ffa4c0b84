package snapshot

import (
	"context"
	"sync"
	"testing"
	"time"

	"hostpulse/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSystemStore(t *testing.T) {
	s := NewSystemStore()

	_, ok := s.Get()
	assert.False(t, ok)

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Sink(context.Background(), domain.SystemSnapshot{CollectedAt: at})

	got, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, at, got.CollectedAt)
}

func TestStore_Concurrent(t *testing.T) {
	var s Store[int]
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set(i)
		}()
		go func() {
			defer wg.Done()
			s.Get()
		}()
	}
	wg.Wait()

	_, ok := s.Get()
	assert.True(t, ok)
}
