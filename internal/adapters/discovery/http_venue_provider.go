package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Lior1305/Planeet/internal/domain"
	"github.com/Lior1305/Planeet/internal/platform/obs"
	"github.com/Lior1305/Planeet/internal/ports"
)

// HTTPVenueProvider implements VenueProvider against the venues service.
//
// It coordinates:
//   - The discovery request/response wire format
//   - Per-venue normalization and validation
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type HTTPVenueProvider struct {
	session *http.Client
	baseURL string
}

func NewHTTPVenueProvider(baseURL string) (*HTTPVenueProvider, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("venues service base URL is empty")
	}

	return &HTTPVenueProvider{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type discoverRequest struct {
	VenueTypes []string     `json:"venue_types"`
	Location   wireLocation `json:"location"`
	RadiusKM   float64      `json:"radius_km"`
}

type wireLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type wireHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type wireVenue struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	VenueType  string       `json:"venue_type"`
	Location   wireLocation `json:"location"`
	Rating     *float64     `json:"rating"`
	PriceRange string       `json:"price_range"`
	Amenities  []string     `json:"amenities"`
	Hours      *wireHours   `json:"opening_hours"`
}

type discoverResponse struct {
	VenuesByType map[string][]wireVenue `json:"venues_by_type"`
}

// DiscoverVenues fetches candidate venues for every requested category.
// Malformed per-venue records are dropped with a warning; only transport
// and decode failures abort the lookup.
func (p *HTTPVenueProvider) DiscoverVenues(
	ctx context.Context,
	query ports.VenueQuery,
) (_ map[domain.Category][]domain.Venue, err error) {
	defer obs.Time(ctx, "discovery.DiscoverVenues")(&err)

	if len(query.Categories) == 0 {
		return map[domain.Category][]domain.Venue{}, nil
	}

	types := make([]string, 0, len(query.Categories))
	for _, c := range query.Categories {
		types = append(types, string(c))
	}

	payload, err := json.Marshal(discoverRequest{
		VenueTypes: types,
		Location:   wireLocation{Latitude: query.Location.Lat, Longitude: query.Location.Lon},
		RadiusKM:   query.RadiusKM,
	})
	if err != nil {
		return nil, fmt.Errorf("discover venues: encode request: %w", err)
	}

	url := p.baseURL + "/venues/discover"
	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodPost, url, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("discover venues: %w", err)
	}
	defer resp.Body.Close()

	var decoded discoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("discover venues: decode response: %w", err)
	}

	out := make(map[domain.Category][]domain.Venue, len(decoded.VenuesByType))
	for rawType, wireVenues := range decoded.VenuesByType {
		category, err := domain.ParseCategory(rawType)
		if err != nil {
			log.Printf("discovery returned unknown venue type %q, skipping group", rawType)
			continue
		}

		venues := make([]domain.Venue, 0, len(wireVenues))
		for _, wv := range wireVenues {
			venue, err := toDomainVenue(wv, category)
			if err != nil {
				log.Printf("dropping venue from discovery: %v", err)
				continue
			}
			venues = append(venues, venue)
		}
		out[category] = venues
	}

	return out, nil
}

func toDomainVenue(wv wireVenue, category domain.Category) (domain.Venue, error) {
	if strings.TrimSpace(wv.ID) == "" {
		return domain.Venue{}, fmt.Errorf("venue %q has empty id", wv.Name)
	}

	venue := domain.Venue{
		ID:       wv.ID,
		Name:     wv.Name,
		Category: category,
		Location: domain.Coordinates{
			Lat: wv.Location.Latitude,
			Lon: wv.Location.Longitude,
		},
		Rating:    wv.Rating,
		PriceTier: domain.PriceTier(wv.PriceRange),
		Amenities: wv.Amenities,
	}

	if wv.Hours != nil {
		open, err := parseClockMinute(wv.Hours.Open)
		if err != nil {
			return domain.Venue{}, fmt.Errorf("venue %s: bad open time: %w", wv.ID, err)
		}
		closeAt, err := parseClockMinute(wv.Hours.Close)
		if err != nil {
			return domain.Venue{}, fmt.Errorf("venue %s: bad close time: %w", wv.ID, err)
		}
		venue.Hours = &domain.OpeningHours{OpenMinute: open, CloseMinute: closeAt}
	}

	return venue, nil
}

// parseClockMinute parses "HH:MM" into minutes since midnight.
func parseClockMinute(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("bad hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("bad minute in %q", s)
	}
	return hour*60 + minute, nil
}
