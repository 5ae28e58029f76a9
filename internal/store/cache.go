// internal/store/cache.go
//
// Host-keyed store cache.
//
// Context
// -------
// Every request resolves its Store from the Host header.  Store rows and
// their settings change rarely, so the cache keeps them in memory with a
// TTL and reloads through a singleflight barrier, guaranteeing one SQL
// round-trip per host per TTL window no matter how many requests race.
//
// Notes
// -----
//   - Stale entries are served until the reload succeeds; a flapping
//     database never blanks out a live store.
//   - Oxford commas, two spaces after periods.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/storefront/internal/metrics"
)

// DefaultTTL bounds how long a cached store row is trusted.
const DefaultTTL = 5 * time.Minute

type entry struct {
	store    *Store
	loadedAt time.Time
}

// Cache lazily loads stores keyed by host.  Safe for concurrent use.
type Cache struct {
	db  *sqlx.DB
	ttl time.Duration
	sfg singleflight.Group
	m   sync.Map // host → *entry
}

// NewCache constructs a Cache.  ttl <= 0 selects DefaultTTL.
func NewCache(db *sqlx.DB, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{db: db, ttl: ttl}
}

// Get returns the Store for host, loading it on demand.
func (c *Cache) Get(ctx context.Context, host string) (*Store, error) {
	if v, ok := c.m.Load(host); ok {
		ent := v.(*entry)
		if time.Since(ent.loadedAt) < c.ttl {
			return ent.store, nil
		}
		// Stale: refresh through singleflight, fall back to stale on error.
		st, err := c.load(ctx, host)
		if err != nil {
			return ent.store, nil
		}
		return st, nil
	}
	return c.load(ctx, host)
}

// load fetches row + settings once per host, coalescing concurrent callers.
func (c *Cache) load(ctx context.Context, host string) (*Store, error) {
	v, err, _ := c.sfg.Do(host, func() (any, error) {
		rec, err := ByHost(ctx, c.db, host)
		if err != nil {
			metrics.StoreLoadErrorsTotal.Inc()
			return nil, err
		}
		settings, err := SettingsByStore(ctx, c.db, rec.ID)
		if err != nil {
			metrics.StoreLoadErrorsTotal.Inc()
			return nil, err
		}
		st := &Store{Record: *rec, Settings: settings}
		c.m.Store(host, &entry{store: st, loadedAt: time.Now()})
		metrics.StoreLoadTotal.Inc()
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Store), nil
}
