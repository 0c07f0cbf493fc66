package domain

// RatingHistory maps venue ids to the user's historical average rating (1-5).
type RatingHistory map[string]float64

// Preferences holds the user's stated outing preferences.
// A zero PriceTier or empty amenity list means no stated preference.
type Preferences struct {
	PreferredPriceTier PriceTier
	PreferredAmenities []string
}
