package ports

import (
	"context"

	"github.com/Lior1305/Planeet/internal/domain"
)

// VenueQuery describes one discovery lookup: a search area plus the
// categories the plan needs candidates for.
type VenueQuery struct {
	Location   domain.Coordinates
	RadiusKM   float64
	Categories []domain.Category
}

// Contract for retrieving candidate venues from the discovery collaborator.
type VenueProvider interface {
	// Return candidate venues grouped by category for the given query.
	DiscoverVenues(ctx context.Context, query VenueQuery) (map[domain.Category][]domain.Venue, error)
}
