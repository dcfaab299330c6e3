package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoadCollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	load := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "Arsenal", nil
	}

	const callers = 16
	var wg sync.WaitGroup
	results := make(chan any, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(context.Background(), "team:eng-ars", load)
			if err != nil {
				results <- err
				return
			}
			results <- v
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for v := range results {
		if v != "Arsenal" {
			t.Fatalf("unexpected result %v", v)
		}
	}
	// Callers that arrive after the first load finished read the cached value.
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one load, got %d", got)
	}
}

func TestStore_GetOrLoadDoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	boom := errors.New("catalog down")
	attempts := 0
	load := func(context.Context) (any, error) {
		attempts++
		if attempts == 1 {
			return nil, boom
		}
		return 7, nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", load); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	v, err := store.GetOrLoad(context.Background(), "k", load)
	if err != nil || v != 7 {
		t.Fatalf("expected retry to succeed, got %v err=%v", v, err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", nil); err == nil {
		t.Fatalf("expected error for nil loader")
	}
}

func TestStore_GetOrLoadSurvivesFirstCallerCancel(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	loadCtxErr := make(chan error, 1)
	load := func(ctx context.Context) (any, error) {
		close(started)
		<-release
		loadCtxErr <- ctx.Err()
		return "Liverpool", nil
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := store.GetOrLoad(firstCtx, "team:eng-liv", load)
		first <- err
	}()
	<-started

	second := make(chan any, 1)
	go func() {
		v, err := store.GetOrLoad(context.Background(), "team:eng-liv", load)
		if err != nil {
			second <- err
			return
		}
		second <- v
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	if err := <-first; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled caller to get context.Canceled, got %v", err)
	}

	close(release)
	if v := <-second; v != "Liverpool" {
		t.Fatalf("expected live caller to get the loaded value, got %v", v)
	}
	if err := <-loadCtxErr; err != nil {
		t.Fatalf("expected loader ctx to stay live, got %v", err)
	}
	if v, ok := store.Get(context.Background(), "team:eng-liv"); !ok || v != "Liverpool" {
		t.Fatalf("expected loaded value to be cached, got %v ok=%v", v, ok)
	}
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 5, 19, 30, 0, 0, time.UTC)
	ctx := context.Background()

	ttl := NewStore(time.Minute)
	ttl.clock = func() time.Time { return now }
	forever := NewStore(0)
	forever.clock = func() time.Time { return now }

	ttl.Set(ctx, "fixtures:team:eng-ars", "cached")
	forever.Set(ctx, "favorites:u-1", []byte("{}"))
	now = now.Add(time.Minute)

	if _, ok := ttl.Get(ctx, "fixtures:team:eng-ars"); ok {
		t.Fatalf("expected entry to expire at its deadline")
	}
	if ttl.size() != 0 {
		t.Fatalf("expected expired entry to be dropped, size=%d", ttl.size())
	}
	if _, ok := forever.Get(ctx, "favorites:u-1"); !ok {
		t.Fatalf("expected entry without ttl to survive")
	}

	forever.Delete(ctx, "favorites:u-1")
	if _, ok := forever.Get(ctx, "favorites:u-1"); ok {
		t.Fatalf("expected deleted entry to be gone")
	}
}
