// Package cache keeps fetched navigation per menu type and language, sharing
// in-flight requests and substituting fallback navigation on failure.
package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"superadmin/navigation/internal/domain"
	"superadmin/navigation/internal/fallback"
	"superadmin/navigation/internal/state"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const defaultErrorTTL = 30 * time.Second

type Fetcher interface {
	Fetch(ctx context.Context, query domain.MenuQuery) ([]domain.NavigationItem, error)
}

type SnapshotSaver interface {
	SaveSnapshot(ctx context.Context, query domain.MenuQuery, items []domain.NavigationItem) error
}

type Options struct {
	// Entries younger than StaleTime are served without refetching
	StaleTime time.Duration
	// Entries older than GCTime are dropped
	GCTime time.Duration
	// A failed fetch is not repeated for ErrorTTL; fallback is served meanwhile
	ErrorTTL time.Duration

	Store     state.MenuStore
	Snapshots SnapshotSaver
	Policy    fallback.Policy
	Now       func() time.Time
}

type entry struct {
	items     []domain.NavigationItem
	fetchedAt time.Time
}

type failure struct {
	err      error
	failedAt time.Time
}

type MenuCache struct {
	fetcher Fetcher
	opts    Options
	group   singleflight.Group

	mu       sync.RWMutex
	entries  map[string]entry
	failures map[string]failure
	inflight map[string]int

	generation atomic.Uint64
}

func NewMenuCache(fetcher Fetcher, opts Options) *MenuCache {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ErrorTTL <= 0 {
		opts.ErrorTTL = defaultErrorTTL
	}
	if opts.GCTime < opts.StaleTime {
		opts.GCTime = opts.StaleTime
	}
	return &MenuCache{
		fetcher:  fetcher,
		opts:     opts,
		entries:  make(map[string]entry),
		failures: make(map[string]failure),
		inflight: make(map[string]int),
	}
}

// Generation changes whenever the navigation any caller could observe changes
func (c *MenuCache) Generation() uint64 {
	return c.generation.Load()
}

// Get returns the navigation for query. It never fails: errors are logged and
// reported through MenuState while Items holds stale or fallback navigation.
func (c *MenuCache) Get(ctx context.Context, query domain.MenuQuery) domain.MenuState {
	key := query.CacheKey()
	now := c.opts.Now()

	cached, ok := c.lookup(key, now)
	if !ok {
		cached, ok = c.loadShared(ctx, query, now)
	}
	if ok && now.Sub(cached.fetchedAt) < c.opts.StaleTime {
		return domain.MenuState{Items: domain.CloneNavigation(cached.items)}
	}

	if f, failed := c.recentFailure(key, now); failed {
		return c.degraded(ctx, query, cached, ok, f.err)
	}

	// Shared by every waiter, so one caller going away must not cancel it
	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		return c.refresh(context.WithoutCancel(ctx), query)
	})
	if err != nil {
		if !shared {
			log.Errorf("❌ Failed to load menu %s: %v", key, err)
		}
		return c.degraded(ctx, query, cached, ok, err)
	}

	return domain.MenuState{Items: domain.CloneNavigation(v.([]domain.NavigationItem))}
}

// Peek reports the cached state without fetching
func (c *MenuCache) Peek(query domain.MenuQuery) domain.MenuState {
	key := query.CacheKey()
	now := c.opts.Now()

	if cached, ok := c.lookup(key, now); ok {
		return domain.MenuState{Items: domain.CloneNavigation(cached.items)}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.inflight[key] > 0 {
		return domain.MenuState{Items: []domain.NavigationItem{}, IsLoading: true}
	}
	if f, ok := c.failures[key]; ok {
		return domain.MenuState{Items: []domain.NavigationItem{}, IsError: true, Error: f.err.Error()}
	}
	return domain.MenuState{Items: []domain.NavigationItem{}}
}

// Fetch loads the query straight from the menu API without reading or
// writing any cache layer. Failures get fallback navigation.
func (c *MenuCache) Fetch(ctx context.Context, query domain.MenuQuery) domain.MenuState {
	items, err := c.fetcher.Fetch(ctx, query)
	if err != nil {
		log.Errorf("❌ Failed to load uncached menu %s: %v", query.CacheKey(), err)
		return c.degraded(ctx, query, entry{}, false, err)
	}
	return domain.MenuState{Items: items}
}

// Invalidate drops the menu from memory, for every principal, and from the
// shared store
func (c *MenuCache) Invalidate(ctx context.Context, query domain.MenuQuery) {
	base := query.BaseKey()
	matches := func(key string) bool {
		return key == base || strings.HasPrefix(key, base+":")
	}

	c.mu.Lock()
	for key := range c.entries {
		if matches(key) {
			delete(c.entries, key)
		}
	}
	for key := range c.failures {
		if matches(key) {
			delete(c.failures, key)
		}
	}
	c.mu.Unlock()
	c.generation.Add(1)

	query.Principal = ""
	key := query.CacheKey()

	if c.opts.Store != nil {
		if err := c.opts.Store.DeleteNavigation(ctx, query); err != nil {
			log.Warnf("⚠️ Failed to delete shared cache entry for %s: %v", key, err)
		}
	}
	log.Infof("🗑️ Invalidated menu %s", key)
}

// Sweep drops entries older than the GC window and expired failures
func (c *MenuCache) Sweep() int {
	now := c.opts.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if now.Sub(e.fetchedAt) >= c.opts.GCTime {
			delete(c.entries, key)
			removed++
		}
	}
	for key, f := range c.failures {
		if now.Sub(f.failedAt) >= c.opts.ErrorTTL {
			delete(c.failures, key)
		}
	}
	if removed > 0 {
		c.generation.Add(1)
	}
	return removed
}

func (c *MenuCache) lookup(key string, now time.Time) (entry, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return entry{}, false
	}
	if now.Sub(e.fetchedAt) >= c.opts.GCTime {
		c.mu.Lock()
		if current, still := c.entries[key]; still && current.fetchedAt.Equal(e.fetchedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return entry{}, false
	}
	return e, true
}

// loadShared promotes an entry from the shared store into memory
func (c *MenuCache) loadShared(ctx context.Context, query domain.MenuQuery, now time.Time) (entry, bool) {
	if c.opts.Store == nil || !query.Shared() {
		return entry{}, false
	}

	stored, err := c.opts.Store.GetNavigation(ctx, query)
	if err != nil {
		log.Warnf("⚠️ Failed to read shared cache for %s: %v", query.CacheKey(), err)
		return entry{}, false
	}
	if stored == nil || now.Sub(stored.FetchedAt) >= c.opts.GCTime {
		return entry{}, false
	}

	e := entry{items: stored.Items, fetchedAt: stored.FetchedAt}
	c.mu.Lock()
	c.entries[query.CacheKey()] = e
	c.mu.Unlock()
	c.generation.Add(1)
	return e, true
}

func (c *MenuCache) recentFailure(key string, now time.Time) (failure, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.failures[key]
	if !ok || now.Sub(f.failedAt) >= c.opts.ErrorTTL {
		return failure{}, false
	}
	return f, true
}

func (c *MenuCache) refresh(ctx context.Context, query domain.MenuQuery) ([]domain.NavigationItem, error) {
	key := query.CacheKey()

	c.mu.Lock()
	c.inflight[key]++
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		if c.inflight[key]--; c.inflight[key] <= 0 {
			delete(c.inflight, key)
		}
		c.mu.Unlock()
	}()

	items, err := c.fetcher.Fetch(ctx, query)
	now := c.opts.Now()
	if err != nil {
		c.mu.Lock()
		c.failures[key] = failure{err: err, failedAt: now}
		c.mu.Unlock()
		c.generation.Add(1)
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = entry{items: items, fetchedAt: now}
	delete(c.failures, key)
	c.mu.Unlock()
	c.generation.Add(1)

	log.Debugf("Cached %d root menu items for %s", len(items), key)

	if !query.Shared() {
		return items, nil
	}
	if c.opts.Store != nil {
		stored := state.StoredNavigation{FetchedAt: now, Items: items}
		if err := c.opts.Store.SetNavigation(ctx, query, stored, c.opts.GCTime); err != nil {
			log.Warnf("⚠️ Failed to write shared cache for %s: %v", key, err)
		}
	}
	if c.opts.Snapshots != nil {
		if err := c.opts.Snapshots.SaveSnapshot(ctx, query, items); err != nil {
			log.Warnf("⚠️ Failed to save menu snapshot for %s: %v", key, err)
		}
	}

	return items, nil
}

// degraded serves stale data when there is some, fallback navigation otherwise
func (c *MenuCache) degraded(ctx context.Context, query domain.MenuQuery, stale entry, hasStale bool, err error) domain.MenuState {
	if hasStale {
		return domain.MenuState{
			Items:   domain.CloneNavigation(stale.items),
			IsError: true,
			Error:   err.Error(),
		}
	}
	return domain.MenuState{
		Items:    c.opts.Policy.Navigation(ctx, query),
		IsError:  true,
		Error:    err.Error(),
		Fallback: true,
	}
}
