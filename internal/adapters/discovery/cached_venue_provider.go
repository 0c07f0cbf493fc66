package discovery

import (
	"context"
	"log"

	"github.com/Lior1305/Planeet/internal/domain"
	"github.com/Lior1305/Planeet/internal/ports"
)

// CachedVenueProvider wraps a VenueProvider with a read-through cache.
// Cache failures degrade to direct lookups; a broken cache must never take
// discovery down with it.
type CachedVenueProvider struct {
	Provider ports.VenueProvider
	Cache    ports.VenueCache
}

func NewCachedVenueProvider(provider ports.VenueProvider, cache ports.VenueCache) *CachedVenueProvider {
	return &CachedVenueProvider{Provider: provider, Cache: cache}
}

func (c *CachedVenueProvider) DiscoverVenues(
	ctx context.Context,
	query ports.VenueQuery,
) (map[domain.Category][]domain.Venue, error) {
	if c.Cache != nil {
		cached, ok, err := c.Cache.Get(ctx, query)
		if err != nil {
			log.Printf("venue cache read failed: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	venues, err := c.Provider.DiscoverVenues(ctx, query)
	if err != nil {
		return nil, err
	}

	if c.Cache != nil {
		if err := c.Cache.Put(ctx, query, venues); err != nil {
			log.Printf("venue cache write failed: %v", err)
		}
	}

	return venues, nil
}
