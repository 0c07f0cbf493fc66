package ports

import (
	"context"

	"github.com/Lior1305/Planeet/internal/domain"
)

// Optional cache in front of the discovery collaborator. A miss returns
// ok=false with a nil error; errors are reserved for backend failures.
type VenueCache interface {
	Get(ctx context.Context, query VenueQuery) (map[domain.Category][]domain.Venue, bool, error)
	Put(ctx context.Context, query VenueQuery, venues map[domain.Category][]domain.Venue) error
}
