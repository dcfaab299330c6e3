package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/riskibarqy/matchday-favorites/internal/platform/resilience"
)

var errNoLoader = errors.New("cache: loader is required")

type item struct {
	value any
	// zero means the item never expires
	deadline time.Time
}

func (i item) expired(now time.Time) bool {
	return !i.deadline.IsZero() && !now.Before(i.deadline)
}

// Store is an in-process key/value cache with an optional TTL. With ttl <= 0
// items live until deleted. Expired items are dropped lazily on read.
type Store struct {
	mu    sync.Mutex
	items map[string]item
	ttl   time.Duration
	clock func() time.Time
	loads resilience.SingleFlight
}

func NewStore(ttl time.Duration) *Store {
	return &Store{items: make(map[string]item), ttl: ttl, clock: time.Now}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[key]
	if !ok {
		return nil, false
	}
	if it.expired(s.clock()) {
		delete(s.items, key)
		return nil, false
	}
	return it.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	it := item{value: value}
	if s.ttl > 0 {
		it.deadline = s.clock().Add(s.ttl)
	}

	s.mu.Lock()
	s.items[key] = it
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key or runs load once for all
// concurrent callers. Errors are returned to every waiter and not cached.
// A waiter whose ctx ends stops waiting without cancelling the load, which
// runs detached from the caller's cancellation.
func (s *Store) GetOrLoad(ctx context.Context, key string, load func(context.Context) (any, error)) (any, error) {
	if load == nil {
		return nil, errNoLoader
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	v, err, _ := s.loads.DoContext(ctx, key, func() (any, error) {
		// Shared by every waiter, so no single waiter's cancel reaches it.
		loadCtx := context.WithoutCancel(ctx)
		if v, ok := s.Get(loadCtx, key); ok {
			return v, nil
		}
		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		s.Set(loadCtx, key, v)
		return v, nil
	})
	return v, err
}

func (s *Store) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
