package reference

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"shotboard/internal/shared/cache"
)

// CachedLoader memoizes another Loader keyed by query name and parameters.
// Failed loads are never cached, and cache faults fall through to the
// wrapped loader.
type CachedLoader struct {
	next   Loader
	cache  cache.Cache
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

func NewCachedLoader(next Loader, c cache.Cache, ttl time.Duration, prefix string, logger *slog.Logger) *CachedLoader {
	logger.Debug("Initializing cached reference loader", "ttl", ttl, "prefix", prefix)

	return &CachedLoader{
		next:   next,
		cache:  c,
		ttl:    ttl,
		prefix: prefix,
		logger: logger,
	}
}

func (c *CachedLoader) Teams(ctx context.Context) ([]Team, error) {
	return cached(ctx, c, c.key("load_teams"), c.next.Teams)
}

func (c *CachedLoader) Players(ctx context.Context, teamID int64) ([]Player, error) {
	return cached(ctx, c, c.key("load_players", strconv.FormatInt(teamID, 10)), func(ctx context.Context) ([]Player, error) {
		return c.next.Players(ctx, teamID)
	})
}

func (c *CachedLoader) Stadiums(ctx context.Context) ([]Stadium, error) {
	return cached(ctx, c, c.key("load_stadiums"), c.next.Stadiums)
}

func (c *CachedLoader) key(query string, params ...string) string {
	key := fmt.Sprintf("%s:%s", c.prefix, query)
	for _, p := range params {
		key += ":" + p
	}
	return key
}

func cached[T any](ctx context.Context, c *CachedLoader, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	logger := c.logger.With("component", "reference_cache", "key", key)

	if raw, ok, err := c.cache.Get(ctx, key); err != nil {
		logger.Warn("Cache read failed, loading from store", "error", err)
	} else if ok {
		var rows []T
		if err := json.Unmarshal(raw, &rows); err == nil {
			logger.Debug("Cache hit", "rows", len(rows))
			return rows, nil
		}
		logger.Warn("Discarding undecodable cache entry")
	}

	rows, err := load(ctx)
	if err != nil {
		return rows, err
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		logger.Warn("Failed to encode cache entry", "error", err)
		return rows, nil
	}
	if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
		logger.Warn("Cache write failed", "error", err)
	}

	return rows, nil
}
