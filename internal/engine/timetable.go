package engine

import (
	"time"

	"github.com/Lior1305/Planeet/internal/domain"
)

// Baseline visit duration per category, in minutes.
var venueDurations = map[domain.Category]int{
	domain.CategoryRestaurant:     90,
	domain.CategoryBar:            75,
	domain.CategoryCafe:           45,
	domain.CategoryMuseum:         120,
	domain.CategoryTheater:        180,
	domain.CategoryPark:           60,
	domain.CategoryShoppingCenter: 90,
	domain.CategorySportsFacility: 120,
	domain.CategorySpa:            90,
	domain.CategoryOther:          60,
}

// Fixed pause between leaving one venue and entering the next, in minutes.
const transitionBufferMinutes = 15

const (
	walkingSpeedKMH = 4.5
	drivingSpeedKMH = 30.0

	// Distances up to this are walked, beyond it driven.
	walkingMaxKM = 2.0

	// Any positive distance costs at least this many minutes.
	minTravelMinutes = 5
)

// All displayed times sit on this grid.
const timeGridMinutes = 15

// VenueDuration returns the expected visit length for a category scaled by
// group size. Larger groups move slower.
func VenueDuration(category domain.Category, groupSize int) int {
	base, ok := venueDurations[category]
	if !ok {
		base = venueDurations[domain.CategoryOther]
	}

	factor := 1.0
	switch {
	case groupSize > 4:
		factor = 1.2
	case groupSize > 2:
		factor = 1.1
	}

	return int(float64(base) * factor)
}

// TravelMinutes estimates travel time for a leg. Short legs assume walking,
// longer ones driving, and every positive leg costs at least five minutes.
func TravelMinutes(distanceKM float64) int {
	if distanceKM <= 0 {
		return 0
	}

	speed := drivingSpeedKMH
	if distanceKM <= walkingMaxKM {
		speed = walkingSpeedKMH
	}

	minutes := int(distanceKM / speed * 60)
	if minutes < minTravelMinutes {
		return minTravelMinutes
	}
	return minutes
}

// RoundToGrid rounds a time to the nearest 15-minute point, half rounding
// up, carrying into the next hour on overflow. Seconds are dropped.
func RoundToGrid(t time.Time) time.Time {
	minute := t.Minute()
	rounded := (minute + timeGridMinutes/2) / timeGridMinutes * timeGridMinutes

	t = t.Truncate(time.Minute).Add(time.Duration(-minute) * time.Minute)
	return t.Add(time.Duration(rounded) * time.Minute)
}

// ComputeTimetable walks the ordered venues and assigns concrete start/end
// times, travel legs and buffers. The start instant must already sit on
// the 15-minute grid; every emitted time stays on it, and the recorded
// duration is the rounded end minus the rounded start.
func ComputeTimetable(venues []domain.Venue, startAt time.Time, groupSize int) []domain.Stop {
	if len(venues) == 0 {
		return []domain.Stop{}
	}

	stops := make([]domain.Stop, 0, len(venues))
	currentTime := startAt

	for i, venue := range venues {
		travelMinutes := 0
		travelKM := 0.0

		if i > 0 {
			travelKM = DistanceKM(venues[i-1].Location, venue.Location)
			travelMinutes = TravelMinutes(travelKM)

			currentTime = currentTime.Add(time.Duration(travelMinutes+transitionBufferMinutes) * time.Minute)
			currentTime = RoundToGrid(currentTime)
		}

		start := currentTime
		end := RoundToGrid(start.Add(time.Duration(VenueDuration(venue.Category, groupSize)) * time.Minute))

		stops = append(stops, domain.Stop{
			Venue:           venue,
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: int(end.Sub(start).Minutes()),
			TravelMinutes:   travelMinutes,
			TravelKM:        travelKM,
			HoursStatus:     domain.HoursUnknown,
		})

		currentTime = end
	}

	return stops
}

// Summarize aggregates the timing of a timetabled itinerary.
func Summarize(stops []domain.Stop) domain.PlanSummary {
	if len(stops) == 0 {
		return domain.PlanSummary{}
	}

	summary := domain.PlanSummary{
		StartTime: stops[0].StartTime,
		EndTime:   stops[len(stops)-1].EndTime,
		StopCount: len(stops),
	}

	for _, s := range stops {
		summary.VenueMinutes += s.DurationMinutes
		summary.TravelMinutes += s.TravelMinutes
		summary.TotalDistanceKM += s.TravelKM
	}

	summary.BufferMinutes = (len(stops) - 1) * transitionBufferMinutes
	summary.TotalDurationMinutes = summary.VenueMinutes + summary.TravelMinutes + summary.BufferMinutes

	return summary
}
