package domain

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// PriceTier is the ordinal price classification used by the discovery
// collaborator ("$", "$$", "$$$"). Empty means unknown.
type PriceTier string

const (
	PriceLow  PriceTier = "$"
	PriceMid  PriceTier = "$$"
	PriceHigh PriceTier = "$$$"
)

// Level maps a tier to its ordinal level. Unknown tiers map to mid.
func (p PriceTier) Level() int {
	switch p {
	case PriceLow:
		return 1
	case PriceMid:
		return 2
	case PriceHigh:
		return 3
	default:
		return 2
	}
}

// OpeningHours is a daily open/close window in minutes since midnight.
// Close may be smaller than Open for windows wrapping past midnight
// (e.g. a bar open 17:00-02:00).
type OpeningHours struct {
	OpenMinute  int
	CloseMinute int
}

// Covers reports whether the window contains the given minute of day.
func (h OpeningHours) Covers(minuteOfDay int) bool {
	if h.OpenMinute <= h.CloseMinute {
		return minuteOfDay >= h.OpenMinute && minuteOfDay <= h.CloseMinute
	}
	// Wrap-around window.
	return minuteOfDay >= h.OpenMinute || minuteOfDay <= h.CloseMinute
}

// Represents a single candidate venue returned by the discovery collaborator.
// A Venue is immutable for the duration of one planning request.
type Venue struct {
	ID        string
	Name      string
	Category  Category
	Location  Coordinates
	Rating    *float64
	PriceTier PriceTier
	Amenities []string
	Hours     *OpeningHours
}
