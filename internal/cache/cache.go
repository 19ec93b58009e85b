// Package cache implements the cache-aside media asset store: a persistent
// backend fronted by an in-memory hot layer. Storage failures degrade to
// cache misses; they never break illustration resolution.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/kanekanefy/qwerty-learner/internal/metrics"
	"github.com/kanekanefy/qwerty-learner/internal/model"
	"github.com/kanekanefy/qwerty-learner/internal/store"
)

// DefaultTTL is the fixed record lifetime. It is overridable through Config
// for tests only; the production contract is 30 days.
const DefaultTTL = 30 * 24 * time.Hour

// Normalize produces the lookup key form of a word.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

type MediaAssetCache struct {
	store store.MediaStore
	hot   *ristretto.Cache[string, model.MediaAssetRecord]
	ttl   time.Duration
	now   func() time.Time
	log   *slog.Logger
}

type Config struct {
	TTL     time.Duration
	HotKeys int64
	HotCost int64
	Now     func() time.Time
	Log     *slog.Logger
}

func New(st store.MediaStore, cfg Config) (*MediaAssetCache, error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	hotKeys := cfg.HotKeys
	if hotKeys <= 0 {
		hotKeys = 4096
	}
	hotCost := cfg.HotCost
	if hotCost <= 0 {
		hotCost = 4096
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	hot, err := ristretto.NewCache(&ristretto.Config[string, model.MediaAssetRecord]{
		NumCounters: hotKeys * 10,
		MaxCost:     hotCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create hot cache: %w", err)
	}

	return &MediaAssetCache{
		store: st,
		hot:   hot,
		ttl:   ttl,
		now:   now,
		log:   log,
	}, nil
}

// PruneExpired removes every persisted record whose expiry has passed.
// Failures are logged and swallowed; pruning is best-effort housekeeping.
func (c *MediaAssetCache) PruneExpired(ctx context.Context) {
	n, err := c.store.DeleteExpired(ctx, c.now().UnixMilli())
	if err != nil {
		c.log.Error("prune expired media assets", "error", err)
		return
	}
	if n > 0 {
		metrics.CacheEventsTotal.WithLabelValues("pruned").Add(float64(n))
		c.log.Debug("pruned expired media assets", "count", n)
	}
}

// Get reports the live record for (word, source), or a miss. A record found
// expired (a race with pruning) is deleted and reported as a miss.
func (c *MediaAssetCache) Get(ctx context.Context, word, source string) (model.MediaAssetRecord, bool) {
	word = Normalize(word)
	if word == "" {
		return model.MediaAssetRecord{}, false
	}

	key := hotKey(word, source)
	now := c.now().UnixMilli()

	if rec, ok := c.hot.Get(key); ok {
		if rec.ExpiresAt > now {
			metrics.CacheEventsTotal.WithLabelValues("hit").Inc()
			return rec, true
		}
		c.hot.Del(key)
	}

	rec, err := c.store.GetAsset(ctx, store.GetAssetRequest{Word: word, Source: source})
	if errors.Is(err, store.ErrNotFound) {
		metrics.CacheEventsTotal.WithLabelValues("miss").Inc()
		return model.MediaAssetRecord{}, false
	}
	if err != nil {
		c.log.Error("read media asset cache", "word", word, "error", err)
		metrics.CacheEventsTotal.WithLabelValues("miss").Inc()
		return model.MediaAssetRecord{}, false
	}

	if rec.ExpiresAt <= now {
		if err := c.store.DeleteAsset(ctx, store.DeleteAssetRequest{Word: word, Source: source}); err != nil {
			c.log.Error("delete expired media asset", "word", word, "error", err)
		}
		metrics.CacheEventsTotal.WithLabelValues("expired").Inc()
		return model.MediaAssetRecord{}, false
	}

	c.hot.SetWithTTL(key, rec, 1, time.Duration(rec.ExpiresAt-now)*time.Millisecond)
	metrics.CacheEventsTotal.WithLabelValues("hit").Inc()
	return rec, true
}

// Put stamps the record's lifetime and persists it, preserving the identity
// of any existing record for the same key. On storage failure the stamped
// record is returned anyway so the caller can still use it for the current
// session.
func (c *MediaAssetCache) Put(ctx context.Context, rec model.MediaAssetRecord) model.MediaAssetRecord {
	rec.Word = Normalize(rec.Word)
	now := c.now()
	rec.FetchedAt = now.UnixMilli()
	rec.ExpiresAt = now.Add(c.ttl).UnixMilli()

	stored, err := c.store.UpsertAsset(ctx, rec)
	if err != nil {
		c.log.Error("save media asset", "word", rec.Word, "error", err)
		return rec
	}

	c.hot.SetWithTTL(hotKey(stored.Word, stored.Source), stored, 1, c.ttl)
	return stored
}

// Delete removes any record for (word, source); used by the refresh path to
// force a clean refetch.
func (c *MediaAssetCache) Delete(ctx context.Context, word, source string) {
	word = Normalize(word)
	if word == "" {
		return
	}

	c.hot.Del(hotKey(word, source))
	if err := c.store.DeleteAsset(ctx, store.DeleteAssetRequest{Word: word, Source: source}); err != nil {
		c.log.Error("delete media asset", "word", word, "error", err)
	}
}

func hotKey(word, source string) string {
	return word + "/" + source
}
