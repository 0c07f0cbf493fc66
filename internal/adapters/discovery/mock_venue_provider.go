package discovery

import (
	"context"

	"github.com/Lior1305/Planeet/internal/domain"
	"github.com/Lior1305/Planeet/internal/ports"
)

// MockVenueProvider returns a fixed venue pool for tests.
type MockVenueProvider struct {
	Venues map[domain.Category][]domain.Venue
	Err    error
	Calls  int
}

func NewMockVenueProvider(venues map[domain.Category][]domain.Venue) *MockVenueProvider {
	return &MockVenueProvider{Venues: venues}
}

func (m *MockVenueProvider) DiscoverVenues(
	ctx context.Context,
	query ports.VenueQuery,
) (map[domain.Category][]domain.Venue, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}

	out := make(map[domain.Category][]domain.Venue, len(query.Categories))
	for _, c := range query.Categories {
		if venues, ok := m.Venues[c]; ok {
			out[c] = venues
		}
	}
	return out, nil
}
