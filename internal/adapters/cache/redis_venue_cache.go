package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Lior1305/Planeet/internal/domain"
	"github.com/Lior1305/Planeet/internal/platform/obs"
	"github.com/Lior1305/Planeet/internal/ports"
)

// RedisVenueCache is a TTL cache for discovery results, keyed by search
// area and category set. Coordinates are truncated to four decimals
// (roughly an 11 m cell) so nearby lookups share an entry.
type RedisVenueCache struct {
	Client *redis.Client
	TTL    time.Duration
}

const defaultVenueTTL = 10 * time.Minute

func NewRedisVenueCache(client *redis.Client, ttl time.Duration) *RedisVenueCache {
	if ttl <= 0 {
		ttl = defaultVenueTTL
	}
	return &RedisVenueCache{Client: client, TTL: ttl}
}

// Get fetches a cached discovery result. A missing key is a miss, not an
// error.
func (c *RedisVenueCache) Get(
	ctx context.Context,
	query ports.VenueQuery,
) (_ map[domain.Category][]domain.Venue, _ bool, err error) {
	defer obs.Time(ctx, "venue.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("venue cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, cacheKey(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("venue cache: get: %w", err)
	}

	var venues map[domain.Category][]domain.Venue
	if err := json.Unmarshal(raw, &venues); err != nil {
		return nil, false, fmt.Errorf("venue cache: decode entry: %w", err)
	}

	return venues, true, nil
}

// Put stores a discovery result under the query's key with the cache TTL.
func (c *RedisVenueCache) Put(
	ctx context.Context,
	query ports.VenueQuery,
	venues map[domain.Category][]domain.Venue,
) (err error) {
	defer obs.Time(ctx, "venue.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("venue cache: client is nil")
	}
	if len(venues) == 0 {
		return nil
	}

	raw, err := json.Marshal(venues)
	if err != nil {
		return fmt.Errorf("venue cache: encode entry: %w", err)
	}

	if err := c.Client.Set(ctx, cacheKey(query), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("venue cache: set: %w", err)
	}
	return nil
}

// cacheKey builds a stable key: categories are sorted so request ordering
// does not fragment the cache.
func cacheKey(query ports.VenueQuery) string {
	categories := make([]string, 0, len(query.Categories))
	for _, c := range query.Categories {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)

	return fmt.Sprintf(
		"venues:%.4f:%.4f:%.1f:%s",
		query.Location.Lat,
		query.Location.Lon,
		query.RadiusKM,
		strings.Join(categories, ","),
	)
}
