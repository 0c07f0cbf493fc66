package engine

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/Lior1305/Planeet/internal/domain"
	"github.com/Lior1305/Planeet/internal/platform/obs"
)

// GeneratePlans runs the full generation pipeline for one request: rank by
// personal relevance, randomize with a quality bias, assemble disjoint
// venue sets, order each into a sensible visiting sequence and compute its
// timetable.
//
// The caller owns all collaborator I/O; everything here is a synchronous
// in-memory transformation. Personalization inputs may be nil, in which
// case scoring degrades to its neutral components instead of failing.
func GeneratePlans(
	ctx context.Context,
	req domain.PlanRequest,
	planID string,
	venuesByCategory map[domain.Category][]domain.Venue,
	history domain.RatingHistory,
	prefs *domain.Preferences,
	newShuffler ShufflerFactory,
) (_ []domain.Itinerary, err error) {
	defer obs.Time(ctx, "engine.GeneratePlans")(&err)

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("generate plans: %w", err)
	}

	candidates := sanitizeVenues(venuesByCategory)

	// The non-personalized path scores with empty signals: every venue
	// gets the neutral history and preference components, so ranking
	// falls back to public rating.
	if !req.Personalize {
		history = nil
		prefs = nil
	}

	ranked := RankVenues(candidates, history, prefs)

	randomized := make(map[domain.Category][]domain.Venue, len(ranked))
	for category, venues := range ranked {
		sh := newShuffler(CategoryOffset(category))
		randomized[category] = BiasedShuffle(venues, sh, defaultTopFraction)
	}

	selections, _, err := AssembleItineraries(randomized, req.Categories, req.StopCount, nil, newShuffler)
	if err != nil {
		return nil, fmt.Errorf("generate plans: %w", err)
	}

	generatedAt := time.Now().UTC()
	itineraries := make([]domain.Itinerary, 0, len(selections))
	for i, venues := range selections {
		ordered := OrderVenues(venues, req.StartAt)
		stops := EvaluateHours(ComputeTimetable(ordered, req.StartAt, req.GroupSize))

		categories := make([]domain.Category, 0, len(stops))
		for _, s := range stops {
			categories = append(categories, s.Venue.Category)
		}

		itineraries = append(itineraries, domain.Itinerary{
			PlanID:                 fmt.Sprintf("%s-plan%d", planID, i+1),
			UserID:                 req.UserID,
			Stops:                  stops,
			Categories:             categories,
			Summary:                Summarize(stops),
			PersonalizationApplied: req.Personalize,
			GeneratedAt:            generatedAt,
		})
	}

	return itineraries, nil
}

// sanitizeVenues drops per-venue records the engine cannot use. A bad
// record costs a warning, never the whole batch.
func sanitizeVenues(venuesByCategory map[domain.Category][]domain.Venue) map[domain.Category][]domain.Venue {
	clean := make(map[domain.Category][]domain.Venue, len(venuesByCategory))

	for category, venues := range venuesByCategory {
		if _, err := domain.ParseCategory(string(category)); err != nil {
			log.Printf("dropping venue group: %v", err)
			continue
		}

		kept := make([]domain.Venue, 0, len(venues))
		for _, v := range venues {
			if v.ID == "" {
				log.Printf("dropping venue with empty id: name=%q category=%s", v.Name, category)
				continue
			}
			if !validCoordinates(v.Location) {
				log.Printf("dropping venue with bad coordinates: venue_id=%s lat=%v lon=%v",
					v.ID, v.Location.Lat, v.Location.Lon)
				continue
			}
			kept = append(kept, v)
		}
		if len(kept) > 0 {
			clean[category] = kept
		}
	}

	return clean
}

func validCoordinates(c domain.Coordinates) bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return math.Abs(c.Lat) <= 90 && math.Abs(c.Lon) <= 180
}
