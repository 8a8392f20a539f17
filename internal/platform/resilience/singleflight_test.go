package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var calls int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	var sharedCount int32
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, shared := g.Do("schedule-week-3", func() (any, error) {
				atomic.AddInt32(&calls, 1)
				time.Sleep(20 * time.Millisecond)
				return "fetched", nil
			})
			if err != nil {
				t.Errorf("Do returned error: %v", err)
			}
			if v != "fetched" {
				t.Errorf("Do returned %v, want fetched", v)
			}
			if shared {
				atomic.AddInt32(&sharedCount, 1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("fetch ran %d times, want 1", got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var calls int32

	var wg sync.WaitGroup
	for _, key := range []string{"week-1", "week-2", "week-3"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			_, err, _ := g.Do(key, func() (any, error) {
				atomic.AddInt32(&calls, 1)
				return key, nil
			})
			if err != nil {
				t.Errorf("Do(%q) returned error: %v", key, err)
			}
		}(key)
	}
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("fetch ran %d times, want 3", got)
	}
}
