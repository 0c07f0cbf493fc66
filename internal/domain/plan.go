package domain

import "time"

// HoursStatus is the advisory result of checking a stop against the venue's
// declared (or category-typical) opening hours. Unknown is treated as open
// for planning purposes.
type HoursStatus string

const (
	HoursOpen    HoursStatus = "open"
	HoursClosed  HoursStatus = "closed"
	HoursUnknown HoursStatus = "unknown"
)

// Represents a single venue visit within an itinerary.
// Timing fields are zero until the timetable calculator runs.
type Stop struct {
	Venue           Venue
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	TravelMinutes   int
	TravelKM        float64
	HoursStatus     HoursStatus
}

// PlanSummary aggregates the timing of a fully timetabled itinerary.
type PlanSummary struct {
	StartTime            time.Time
	EndTime              time.Time
	TotalDurationMinutes int
	VenueMinutes         int
	TravelMinutes        int
	BufferMinutes        int
	TotalDistanceKM      float64
	StopCount            int
}

// Represents one timetabled outing plan.
// An Itinerary is the output of the generation engine and describes the
// ordered sequence of venue visits along with aggregate timing metrics.
// It is immutable planning data and contains no side effects.
type Itinerary struct {
	PlanID                 string
	UserID                 string
	Stops                  []Stop
	Categories             []Category
	Summary                PlanSummary
	PersonalizationApplied bool
	GeneratedAt            time.Time
}

// VenueIDs returns the ids of all stops in visiting order.
func (it Itinerary) VenueIDs() []string {
	ids := make([]string, 0, len(it.Stops))
	for _, s := range it.Stops {
		ids = append(ids, s.Venue.ID)
	}
	return ids
}
