package reconcile

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SnapshotArchive persists the last good snapshot outside the process.
type SnapshotArchive interface {
	// Save stores the snapshot and its refresh time.
	Save(ctx context.Context, cards []Card, refreshed time.Time) error

	// Load returns the stored snapshot. ok is false when nothing is stored.
	Load(ctx context.Context) (cards []Card, refreshed time.Time, ok bool, err error)
}

// ReadCache holds a single card snapshot and the time it was last refreshed.
// Reads within the TTL are served from the slot; older reads refresh it through
// the source. A failed refresh keeps the previous snapshot.
type ReadCache struct {
	source  Source
	ttl     time.Duration
	clock   Clock
	logger  *zap.Logger
	archive SnapshotArchive

	mu          sync.RWMutex
	snapshot    []Card
	lastRefresh time.Time
	loaded      bool

	sf singleflight.Group
}

// CacheOption configures a ReadCache.
type CacheOption func(*ReadCache)

// WithClock sets the clock used for expiry.
func WithClock(clock Clock) CacheOption {
	return func(c *ReadCache) {
		c.clock = clock
	}
}

// WithArchive sets the archive that receives every refreshed snapshot.
func WithArchive(archive SnapshotArchive) CacheOption {
	return func(c *ReadCache) {
		c.archive = archive
	}
}

// NewReadCache creates an empty cache over the source.
func NewReadCache(source Source, ttl time.Duration, logger *zap.Logger, opts ...CacheOption) *ReadCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &ReadCache{
		source: source,
		ttl:    ttl,
		clock:  SystemClock{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsExpired reports whether the slot is empty or older than the TTL.
func (c *ReadCache) IsExpired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiredLocked()
}

func (c *ReadCache) expiredLocked() bool {
	if !c.loaded || c.ttl <= 0 {
		return true
	}
	return c.clock.Now().Sub(c.lastRefresh) >= c.ttl
}

// LastRefresh returns the time of the last successful refresh, zero if none.
func (c *ReadCache) LastRefresh() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRefresh
}

// Get returns the cached snapshot, refreshing it first when it has expired.
// If the refresh fails and a previous snapshot exists, the previous snapshot is
// returned and the failure is only logged. An error is returned only when no
// snapshot has ever been loaded.
func (c *ReadCache) Get(ctx context.Context) ([]Card, error) {
	c.mu.RLock()
	if !c.expiredLocked() {
		cards := c.snapshot
		c.mu.RUnlock()
		c.logger.Debug("Served cards from cache", zap.Int("cards", len(cards)))
		return cards, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("snapshot", func() (any, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		if !c.expiredLocked() {
			cards := c.snapshot
			c.mu.RUnlock()
			return cards, nil
		}
		c.mu.RUnlock()

		cards, err := c.source.FetchCards(ctx)
		if err != nil {
			return nil, err
		}
		c.Put(ctx, cards)
		c.logger.Info("Refreshed cards from source", zap.Int("cards", len(cards)))
		return cards, nil
	})
	if err == nil {
		return result.([]Card), nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return nil, err
	}
	c.logger.Warn("Card refresh failed, serving stale snapshot",
		zap.Time("last_refresh", c.lastRefresh),
		zap.Error(err),
	)
	return c.snapshot, nil
}

// Put replaces the slot and its timestamp with a freshly fetched snapshot.
func (c *ReadCache) Put(ctx context.Context, cards []Card) {
	now := c.clock.Now()

	c.mu.Lock()
	c.snapshot = cards
	c.lastRefresh = now
	c.loaded = true
	c.mu.Unlock()

	if c.archive != nil {
		if err := c.archive.Save(ctx, cards, now); err != nil {
			c.logger.Warn("Failed to archive card snapshot", zap.Error(err))
		}
	}
}

// Warm loads the archived snapshot into an empty slot, keeping its original
// refresh time so expiry still applies.
func (c *ReadCache) Warm(ctx context.Context) error {
	if c.archive == nil {
		return nil
	}

	cards, refreshed, ok, err := c.archive.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}
	c.snapshot = cards
	c.lastRefresh = refreshed
	c.loaded = true

	c.logger.Info("Warmed card cache from archive",
		zap.Int("cards", len(cards)),
		zap.Time("last_refresh", refreshed),
	)
	return nil
}
