package engine

import (
	"fmt"

	"github.com/Lior1305/Planeet/internal/domain"
)

// Number of itineraries one generation pass aims to produce.
const targetItineraries = 3

// How many of the best unused candidates the per-category pick draws from.
const pickPoolSize = 3

// Shuffler offset separating fallback plans from the windowed ones.
const fallbackOffset = 100

// AssembleItineraries selects up to three disjoint venue sets from the
// randomized per-category candidate lists.
//
// Each itinerary index takes a different window of the category list
// (first, middle, last) so the three plans emphasize different category
// combinations. Within a window, categories are sampled without
// replacement, which makes a duplicate category inside one itinerary
// structurally impossible. The used set is an explicit accumulator: it is
// read, extended and returned, never shared hidden state.
//
// When the windowed strategy cannot fill three itineraries the remaining
// unused venues are assembled greedily. Fewer than three itineraries is a
// valid partial result, not an error.
func AssembleItineraries(
	venuesByCategory map[domain.Category][]domain.Venue,
	categories []domain.Category,
	stopCount int,
	used map[string]struct{},
	newShuffler ShufflerFactory,
) ([][]domain.Venue, map[string]struct{}, error) {
	if stopCount < 1 {
		return nil, used, fmt.Errorf("assemble itineraries: stop count must be at least 1, got %d", stopCount)
	}
	if stopCount > len(categories) {
		return nil, used, fmt.Errorf(
			"assemble itineraries: stop count (%d) cannot exceed number of categories (%d)",
			stopCount, len(categories),
		)
	}

	if used == nil {
		used = make(map[string]struct{})
	}

	plans := make([][]domain.Venue, 0, targetItineraries)

	for planIndex := 0; planIndex < targetItineraries; planIndex++ {
		sh := newShuffler(int64(planIndex))
		window := categoryWindow(categories, stopCount, planIndex)

		sh.Shuffle(len(window), func(i, j int) { window[i], window[j] = window[j], window[i] })

		venues, nextUsed := pickVenuesForPlan(window, venuesByCategory, stopCount, used, sh)
		used = nextUsed
		if len(venues) > 0 {
			plans = append(plans, venues)
		}
	}

	// Inventory fallback: build additional plans from whatever is left.
	for len(plans) < targetItineraries {
		planIndex := len(plans)
		sh := newShuffler(int64(planIndex + fallbackOffset))

		venues, nextUsed := pickVenuesForPlan(categories, venuesByCategory, stopCount, used, sh)
		used = nextUsed
		if len(venues) == 0 {
			break
		}
		plans = append(plans, venues)
	}

	if len(plans) > targetItineraries {
		plans = plans[:targetItineraries]
	}
	return plans, used, nil
}

// categoryWindow returns the slice of categories itinerary planIndex draws
// from: the first window, a middle window, or the last window.
func categoryWindow(categories []domain.Category, stopCount, planIndex int) []domain.Category {
	var selected []domain.Category
	switch planIndex {
	case 0:
		selected = categories[:stopCount]
	case 1:
		start := (len(categories) - stopCount) / 2
		selected = categories[start : start+stopCount]
	default:
		selected = categories[len(categories)-stopCount:]
	}

	window := make([]domain.Category, len(selected))
	copy(window, selected)
	return window
}

// pickVenuesForPlan walks the category order once, choosing one unused venue
// per category until stopCount is reached. Each pick is uniform among the
// top pickPoolSize unused candidates, trading a little quality for variety.
func pickVenuesForPlan(
	order []domain.Category,
	venuesByCategory map[domain.Category][]domain.Venue,
	stopCount int,
	used map[string]struct{},
	sh Shuffler,
) ([]domain.Venue, map[string]struct{}) {
	venues := make([]domain.Venue, 0, stopCount)

	for _, category := range order {
		if len(venues) >= stopCount {
			break
		}

		available := unusedVenues(venuesByCategory[category], used)
		if len(available) == 0 {
			continue
		}

		picked := pickFromTop(available, sh)
		venues = append(venues, picked)
		used[picked.ID] = struct{}{}
	}

	return venues, used
}

func unusedVenues(venues []domain.Venue, used map[string]struct{}) []domain.Venue {
	available := make([]domain.Venue, 0, len(venues))
	for _, v := range venues {
		if _, taken := used[v.ID]; !taken {
			available = append(available, v)
		}
	}
	return available
}

// pickFromTop draws uniformly from the leading candidates by shuffling a
// copy of the pool and taking its head. Shuffling is the only randomness
// capability the engine carries.
func pickFromTop(available []domain.Venue, sh Shuffler) domain.Venue {
	poolSize := pickPoolSize
	if len(available) < poolSize {
		poolSize = len(available)
	}

	pool := make([]domain.Venue, poolSize)
	copy(pool, available[:poolSize])
	sh.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	return pool[0]
}
