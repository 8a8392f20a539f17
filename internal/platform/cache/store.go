package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JamesM813/NFL-Locked-In/internal/platform/resilience"
)

type record struct {
	value     any
	expiresAt time.Time
}

func (r record) stale(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && !r.expiresAt.After(now)
}

// Store is an in-process TTL cache with singleflight-guarded loading, used
// for hot week-schedule reads. A zero TTL means entries never expire.
type Store struct {
	mu      sync.RWMutex
	records map[string]record
	ttl     time.Duration
	flight  resilience.SingleFlight
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		records: make(map[string]record),
		ttl:     ttl,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	r, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if r.stale(time.Now(), s.ttl) {
		s.mu.Lock()
		delete(s.records, key)
		s.mu.Unlock()
		return nil, false
	}

	return r.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	r := record{value: value}
	if s.ttl > 0 {
		r.expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.records[key] = r
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.records, key)
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, or runs loader once and
// caches the result. Concurrent misses for the same key share a single
// loader call.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		// Another flight may have filled the entry while this one waited.
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}
