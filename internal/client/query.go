package client

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Query is a cached GET keyed by its endpoint path. Results are reused for the
// dedup window and concurrent fetches of the same key share one request.
type Query[T any] struct {
	c      *Client
	key    string
	window time.Duration

	mu      sync.RWMutex
	last    T
	hasData bool
	// gen is bumped by Revalidate; fetches started under an older gen
	// must not write their results.
	gen uint64
}

// empty is what Data reports before the first successful fetch.
func newQuery[T any](c *Client, key string, window time.Duration, empty T) *Query[T] {
	return &Query[T]{c: c, key: key, window: window, last: empty}
}

// Key is the cache key, which is also the endpoint path.
func (q *Query[T]) Key() string {
	return q.key
}

// Get returns the cached value when it is younger than the dedup window and
// fetches otherwise.
func (q *Query[T]) Get(ctx context.Context) (T, error) {
	if v, ok := q.c.cache.Get(q.key); ok {
		return v.(T), nil
	}
	return q.fetch(ctx)
}

// Revalidate drops the cached value and fetches again. Fetches already in
// flight are not joined and their results are discarded, so the cache
// reflects writes made before the call.
func (q *Query[T]) Revalidate(ctx context.Context) (T, error) {
	q.mu.Lock()
	q.gen++
	q.mu.Unlock()

	q.c.cache.Delete(q.key)
	q.c.flight.Forget(q.key)
	return q.fetch(ctx)
}

// Data returns the last successfully fetched value, even if it is stale.
// Before the first success it returns an empty value and false.
func (q *Query[T]) Data() (T, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.last, q.hasData
}

// The shared request runs with the context of the caller that started it.
func (q *Query[T]) fetch(ctx context.Context) (T, error) {
	v, err, _ := q.c.flight.Do(q.key, func() (any, error) {
		// A flight that finished just before this one may already have filled the cache.
		if v, ok := q.c.cache.Get(q.key); ok {
			return v, nil
		}

		q.mu.RLock()
		gen := q.gen
		q.mu.RUnlock()

		var out T
		if err := q.c.do(ctx, http.MethodGet, q.key, nil, &out); err != nil {
			return nil, err
		}

		q.mu.Lock()
		defer q.mu.Unlock()
		if gen != q.gen {
			return out, nil
		}
		if q.window > 0 {
			q.c.cache.Set(q.key, out, q.window)
		}
		q.last = out
		q.hasData = true

		return out, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
