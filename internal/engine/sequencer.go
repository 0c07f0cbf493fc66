package engine

import (
	"log"
	"sort"
	"time"

	"github.com/Lior1305/Planeet/internal/domain"
)

// Fixed day-part rank per category. Lower ranks visit earlier in the day.
var dayPartPriority = map[domain.Category]float64{
	domain.CategoryCafe:           1,
	domain.CategoryMuseum:         2,
	domain.CategoryPark:           3,
	domain.CategoryShoppingCenter: 4,
	domain.CategorySportsFacility: 5,
	domain.CategorySpa:            6,
	domain.CategoryRestaurant:     7,
	domain.CategoryTheater:        8,
	domain.CategoryBar:            9,
	domain.CategoryOther:          5,
}

// hourRange is an inclusive hour-of-day interval. Start > End marks a
// window wrapping past midnight.
type hourRange struct {
	Start int
	End   int
}

func (r hourRange) contains(hour int) bool {
	if r.Start <= r.End {
		return hour >= r.Start && hour <= r.End
	}
	return hour >= r.Start || hour <= r.End
}

// Three-tier time-appropriateness windows per category. Hours inside the
// perfect window score 0, inside the good window 1, anything else 2.
var appropriatenessWindows = map[domain.Category]struct {
	perfect hourRange
	good    hourRange
}{
	domain.CategoryCafe:           {hourRange{7, 11}, hourRange{7, 16}},
	domain.CategoryMuseum:         {hourRange{10, 16}, hourRange{9, 17}},
	domain.CategoryPark:           {hourRange{8, 18}, hourRange{6, 20}},
	domain.CategoryShoppingCenter: {hourRange{10, 19}, hourRange{10, 21}},
	domain.CategorySportsFacility: {hourRange{7, 20}, hourRange{6, 22}},
	domain.CategorySpa:            {hourRange{10, 18}, hourRange{9, 20}},
	domain.CategoryRestaurant:     {hourRange{18, 21}, hourRange{11, 23}},
	domain.CategoryTheater:        {hourRange{19, 22}, hourRange{12, 23}},
	domain.CategoryBar:            {hourRange{19, 2}, hourRange{17, 2}},
	domain.CategoryOther:          {hourRange{10, 20}, hourRange{9, 22}},
}

// Category-typical opening windows, used when the discovery collaborator
// supplied no hours for a venue.
var typicalHours = map[domain.Category]domain.OpeningHours{
	domain.CategoryCafe:           {OpenMinute: 7 * 60, CloseMinute: 20 * 60},
	domain.CategoryMuseum:         {OpenMinute: 9 * 60, CloseMinute: 18 * 60},
	domain.CategoryPark:           {OpenMinute: 6 * 60, CloseMinute: 22 * 60},
	domain.CategoryShoppingCenter: {OpenMinute: 10 * 60, CloseMinute: 21 * 60},
	domain.CategorySportsFacility: {OpenMinute: 6 * 60, CloseMinute: 22 * 60},
	domain.CategorySpa:            {OpenMinute: 9 * 60, CloseMinute: 20 * 60},
	domain.CategoryRestaurant:     {OpenMinute: 11 * 60, CloseMinute: 23 * 60},
	domain.CategoryTheater:        {OpenMinute: 12 * 60, CloseMinute: 23 * 60},
	domain.CategoryBar:            {OpenMinute: 17 * 60, CloseMinute: 2 * 60},
	domain.CategoryOther:          {OpenMinute: 9 * 60, CloseMinute: 22 * 60},
}

// Weight of time appropriateness relative to the day-part rank.
const timeScoreWeight = 0.3

// Travel savings below this never justify disturbing the logical order.
const swapDistanceThresholdKM = 0.5

// Penalty per rank of day-part inversion a swap would introduce.
const swapConflictWeight = 0.3

// Hard cap on optimization passes. Termination is already guaranteed by
// strict improvement, the cap bounds the worst case if that ever changes.
const maxOptimizePasses = 10

// timeAppropriateness scores how well a category fits the given start hour:
// 0 perfect, 1 acceptable, 2 poor.
func timeAppropriateness(category domain.Category, hour int) float64 {
	windows, ok := appropriatenessWindows[category]
	if !ok {
		return 1
	}
	if windows.perfect.contains(hour) {
		return 0
	}
	if windows.good.contains(hour) {
		return 1
	}
	return 2
}

// OrderVenues arranges an itinerary's venues into a sensible visiting
// sequence: first a logical day-part ordering, then bounded local search
// that trades order disruption against travel savings.
func OrderVenues(venues []domain.Venue, startAt time.Time) []domain.Venue {
	if len(venues) <= 1 {
		ordered := make([]domain.Venue, len(venues))
		copy(ordered, venues)
		return ordered
	}

	ordered := logicalOrder(venues, startAt.Hour())
	return optimizeTravel(ordered)
}

// logicalOrder sorts by day-part rank blended with time appropriateness
// for the plan's start hour.
func logicalOrder(venues []domain.Venue, startHour int) []domain.Venue {
	ordered := make([]domain.Venue, len(venues))
	copy(ordered, venues)

	keys := make(map[string]float64, len(ordered))
	for _, v := range ordered {
		keys[v.ID] = priorityRank(v.Category) + timeScoreWeight*timeAppropriateness(v.Category, startHour)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		ki, kj := keys[ordered[i].ID], keys[ordered[j].ID]
		if ki != kj {
			return ki < kj
		}
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}

func priorityRank(category domain.Category) float64 {
	if rank, ok := dayPartPriority[category]; ok {
		return rank
	}
	return dayPartPriority[domain.CategoryOther]
}

// optimizeTravel runs adjacent-swap passes until a pass makes no change.
// A swap is taken only when the travel distance it saves exceeds both a
// fixed threshold and the day-part conflict penalty it introduces.
func optimizeTravel(venues []domain.Venue) []domain.Venue {
	for pass := 0; pass < maxOptimizePasses; pass++ {
		improved := false

		for i := 0; i+1 < len(venues); i++ {
			savings := swapSavingsKM(venues, i)
			if savings <= swapDistanceThresholdKM {
				continue
			}
			if savings <= swapConflictPenalty(venues[i], venues[i+1]) {
				continue
			}

			venues[i], venues[i+1] = venues[i+1], venues[i]
			improved = true
		}

		if !improved {
			break
		}
	}
	return venues
}

// swapSavingsKM computes how much total travel distance swapping positions
// i and i+1 would save, accounting for the neighboring legs.
func swapSavingsKM(venues []domain.Venue, i int) float64 {
	current := legKM(venues, i-1, i) + legKM(venues, i, i+1) + legKM(venues, i+1, i+2)

	swapped := legKM(venues, i-1, i+1) + legKM(venues, i+1, i) + func() float64 {
		if i+2 < len(venues) {
			return DistanceKM(venues[i].Location, venues[i+2].Location)
		}
		return 0
	}()

	return current - swapped
}

func legKM(venues []domain.Venue, from, to int) float64 {
	if from < 0 || to < 0 || from >= len(venues) || to >= len(venues) {
		return 0
	}
	return DistanceKM(venues[from].Location, venues[to].Location)
}

// swapConflictPenalty grows with how far a swap would move a later-day
// category ahead of an earlier-day one. Swaps that keep the day-part order
// intact carry no penalty.
func swapConflictPenalty(earlier, later domain.Venue) float64 {
	rankDiff := priorityRank(later.Category) - priorityRank(earlier.Category)
	if rankDiff <= 0 {
		return 0
	}
	return swapConflictWeight * rankDiff
}

// EvaluateHours tags every timetabled stop with an advisory opening-hours
// status. Hours data from discovery is untrusted, so a conflict is logged
// and flagged, never a reason to drop the stop or re-plan.
func EvaluateHours(stops []domain.Stop) []domain.Stop {
	for i := range stops {
		stops[i].HoursStatus = stopHoursStatus(stops[i])
		if stops[i].HoursStatus == domain.HoursClosed {
			log.Printf(
				"hours conflict: venue_id=%s name=%q category=%s start=%s end=%s",
				stops[i].Venue.ID, stops[i].Venue.Name, stops[i].Venue.Category,
				stops[i].StartTime.Format("15:04"), stops[i].EndTime.Format("15:04"),
			)
		}
	}
	return stops
}

// stopHoursStatus checks declared hours when present; otherwise the
// category-typical window. Without declared data the result is at most
// Unknown, never Closed: a typical-hours miss is a guess, not a fact.
func stopHoursStatus(stop domain.Stop) domain.HoursStatus {
	startMinute := stop.StartTime.Hour()*60 + stop.StartTime.Minute()
	endMinute := stop.EndTime.Hour()*60 + stop.EndTime.Minute()

	if stop.Venue.Hours != nil {
		if stop.Venue.Hours.Covers(startMinute) && stop.Venue.Hours.Covers(endMinute) {
			return domain.HoursOpen
		}
		return domain.HoursClosed
	}

	typical, ok := typicalHours[stop.Venue.Category]
	if ok && (!typical.Covers(startMinute) || !typical.Covers(endMinute)) {
		log.Printf(
			"outside typical hours: venue_id=%s category=%s start=%s end=%s",
			stop.Venue.ID, stop.Venue.Category,
			stop.StartTime.Format("15:04"), stop.EndTime.Format("15:04"),
		)
	}
	return domain.HoursUnknown
}
