package engine

import (
	"sort"

	"github.com/Lior1305/Planeet/internal/domain"
)

// Component weights of the personalization score. They must sum to 1 so the
// final score stays in [0,1] without rescaling.
const (
	weightRatingHistory  = 0.40
	weightVenueRating    = 0.25
	weightTypePreference = 0.15
	weightPriceFit       = 0.10
	weightNovelty        = 0.10
)

// Ratings below this threshold carry no signal. A user's dislikes must not
// actively suppress venues: reward what they loved, stay neutral otherwise.
const highRatingThreshold = 4.0

// FilterHighlyRated drops every historical rating below the 4.0 threshold.
// Only the filtered history may feed the scoring components.
func FilterHighlyRated(history domain.RatingHistory) domain.RatingHistory {
	filtered := make(domain.RatingHistory, len(history))
	for venueID, rating := range history {
		if rating >= highRatingThreshold {
			filtered[venueID] = rating
		}
	}
	return filtered
}

// TypePreferences derives per-category affinity from the filtered rating
// history. Categories with no qualifying history get a neutral 0.5.
func TypePreferences(
	filtered domain.RatingHistory,
	venuesByCategory map[domain.Category][]domain.Venue,
) map[domain.Category]float64 {
	venueCategory := make(map[string]domain.Category)
	for category, venues := range venuesByCategory {
		for _, v := range venues {
			venueCategory[v.ID] = category
		}
	}

	sums := make(map[domain.Category]float64)
	counts := make(map[domain.Category]int)
	for venueID, rating := range filtered {
		category, ok := venueCategory[venueID]
		if !ok {
			continue
		}
		sums[category] += rating
		counts[category]++
	}

	prefs := make(map[domain.Category]float64, len(venuesByCategory))
	for category := range venuesByCategory {
		if counts[category] > 0 {
			avg := sums[category] / float64(counts[category])
			prefs[category] = (avg - 1) / 4
		} else {
			prefs[category] = 0.5
		}
	}
	return prefs
}

// ScoreVenue computes the [0,1] relevance score for a single venue.
// The history passed in must already be filtered to ratings >= 4.0.
func ScoreVenue(
	venue domain.Venue,
	filtered domain.RatingHistory,
	typePrefs map[domain.Category]float64,
	prefs *domain.Preferences,
) float64 {
	total := 0.0

	// Historical rating component. Unrated venues score a neutral 0.5.
	if rating, ok := filtered[venue.ID]; ok {
		total += ((rating - 1) / 4) * weightRatingHistory
	} else {
		total += 0.5 * weightRatingHistory
	}

	// Public venue rating component.
	if venue.Rating != nil && *venue.Rating > 0 {
		total += ((*venue.Rating - 1) / 4) * weightVenueRating
	} else {
		total += 0.5 * weightVenueRating
	}

	// Category affinity component.
	typePref, ok := typePrefs[venue.Category]
	if !ok {
		typePref = 0.5
	}
	total += typePref * weightTypePreference

	// Price compatibility component.
	total += priceCompatibility(venue, prefs) * weightPriceFit

	// Novelty bonus. New venues get a larger bonus to counter the
	// rich-get-richer pull of the history component.
	if _, rated := filtered[venue.ID]; rated {
		total += 0.3 * weightNovelty
	} else {
		total += 0.7 * weightNovelty
	}

	return clamp01(total)
}

func priceCompatibility(venue domain.Venue, prefs *domain.Preferences) float64 {
	if prefs == nil || prefs.PreferredPriceTier == "" {
		return 0.5
	}

	diff := venue.PriceTier.Level() - prefs.PreferredPriceTier.Level()
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 1.0
	case 1:
		return 0.7
	default:
		return 0.3
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RankVenues scores and sorts each category's candidates best-first.
// Ties break on venue id so ranking is deterministic for identical inputs.
func RankVenues(
	venuesByCategory map[domain.Category][]domain.Venue,
	history domain.RatingHistory,
	prefs *domain.Preferences,
) map[domain.Category][]domain.Venue {
	filtered := FilterHighlyRated(history)
	typePrefs := TypePreferences(filtered, venuesByCategory)

	ranked := make(map[domain.Category][]domain.Venue, len(venuesByCategory))
	for category, venues := range venuesByCategory {
		scored := make([]domain.Venue, len(venues))
		copy(scored, venues)

		scores := make(map[string]float64, len(scored))
		for _, v := range scored {
			scores[v.ID] = ScoreVenue(v, filtered, typePrefs, prefs)
		}

		sort.SliceStable(scored, func(i, j int) bool {
			si, sj := scores[scored[i].ID], scores[scored[j].ID]
			if si != sj {
				return si > sj
			}
			return scored[i].ID < scored[j].ID
		})

		ranked[category] = scored
	}
	return ranked
}
