package engine

import (
	"testing"
	"time"

	"github.com/Lior1305/Planeet/internal/domain"
)

func venueAt(id string, category domain.Category, lat, lon float64) domain.Venue {
	return domain.Venue{
		ID:       id,
		Name:     id,
		Category: category,
		Location: domain.Coordinates{Lat: lat, Lon: lon},
	}
}

func categoriesOf(venues []domain.Venue) []domain.Category {
	out := make([]domain.Category, 0, len(venues))
	for _, v := range venues {
		out = append(out, v.Category)
	}
	return out
}

func TestOrderVenuesMorningFlow(t *testing.T) {
	venues := []domain.Venue{
		venueAt("b1", domain.CategoryBar, 40.7580, -73.9855),
		venueAt("r1", domain.CategoryRestaurant, 40.7585, -73.9850),
		venueAt("c1", domain.CategoryCafe, 40.7590, -73.9845),
	}
	start := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)

	ordered := OrderVenues(venues, start)
	got := categoriesOf(ordered)

	want := []domain.Category{domain.CategoryCafe, domain.CategoryRestaurant, domain.CategoryBar}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("10:00 start order = %v, want %v", got, want)
		}
	}
}

func TestOrderVenuesSwapSavesLongDetour(t *testing.T) {
	// Same category throughout, so only distance drives the order.
	// far sits ~11 km away; near is a few hundred meters from start.
	venues := []domain.Venue{
		venueAt("p1", domain.CategoryPark, 40.0, -73.0),
		venueAt("p2", domain.CategoryPark, 40.1, -73.0),
		venueAt("p3", domain.CategoryPark, 40.001, -73.0),
	}
	start := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)

	ordered := OrderVenues(venues, start)

	// The first pass hoists the detour venue out of the middle so the two
	// nearby parks become consecutive (p2 -> p1 is unavoidable either way).
	wantIDs := []string{"p2", "p1", "p3"}
	for i, want := range wantIDs {
		if ordered[i].ID != want {
			t.Fatalf("optimized order = %v, want %v",
				[]string{ordered[0].ID, ordered[1].ID, ordered[2].ID}, wantIDs)
		}
	}
}

func TestOrderVenuesSmallSavingsDoNotDisturbOrder(t *testing.T) {
	// All venues within ~200 m of each other: no swap can save more than
	// the 0.5 km threshold, so the logical order must survive untouched.
	venues := []domain.Venue{
		venueAt("c1", domain.CategoryCafe, 40.7580, -73.9855),
		venueAt("m1", domain.CategoryMuseum, 40.7562, -73.9852),
		venueAt("r1", domain.CategoryRestaurant, 40.7571, -73.9858),
	}
	start := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)

	ordered := OrderVenues(venues, start)
	got := categoriesOf(ordered)

	want := []domain.Category{domain.CategoryCafe, domain.CategoryMuseum, domain.CategoryRestaurant}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want logical order %v preserved", got, want)
		}
	}
}

func TestOrderVenuesDoesNotModifyInput(t *testing.T) {
	venues := []domain.Venue{
		venueAt("b1", domain.CategoryBar, 40.75, -73.98),
		venueAt("c1", domain.CategoryCafe, 40.76, -73.97),
	}
	OrderVenues(venues, time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC))

	if venues[0].ID != "b1" || venues[1].ID != "c1" {
		t.Fatal("input slice was reordered in place")
	}
}

func TestTimeAppropriatenessTiers(t *testing.T) {
	cases := []struct {
		category domain.Category
		hour     int
		want     float64
	}{
		{domain.CategoryCafe, 9, 0},
		{domain.CategoryCafe, 14, 1},
		{domain.CategoryCafe, 22, 2},
		{domain.CategoryBar, 23, 0},
		{domain.CategoryBar, 1, 0},
		{domain.CategoryBar, 10, 2},
	}
	for _, tc := range cases {
		if got := timeAppropriateness(tc.category, tc.hour); got != tc.want {
			t.Errorf("timeAppropriateness(%s, %d) = %v, want %v", tc.category, tc.hour, got, tc.want)
		}
	}
}

func TestEvaluateHoursStatuses(t *testing.T) {
	day := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	declaredOpen := domain.Stop{
		Venue: domain.Venue{
			ID:       "open",
			Category: domain.CategoryCafe,
			Hours:    &domain.OpeningHours{OpenMinute: 8 * 60, CloseMinute: 18 * 60},
		},
		StartTime: day.Add(10 * time.Hour),
		EndTime:   day.Add(11 * time.Hour),
	}
	declaredClosed := domain.Stop{
		Venue: domain.Venue{
			ID:       "closed",
			Category: domain.CategoryMuseum,
			Hours:    &domain.OpeningHours{OpenMinute: 9 * 60, CloseMinute: 17 * 60},
		},
		StartTime: day.Add(20 * time.Hour),
		EndTime:   day.Add(22 * time.Hour),
	}
	noData := domain.Stop{
		Venue:     domain.Venue{ID: "nodata", Category: domain.CategoryBar},
		StartTime: day.Add(21 * time.Hour),
		EndTime:   day.Add(22 * time.Hour),
	}

	stops := EvaluateHours([]domain.Stop{declaredOpen, declaredClosed, noData})

	if stops[0].HoursStatus != domain.HoursOpen {
		t.Errorf("declared-open stop status = %s, want open", stops[0].HoursStatus)
	}
	if stops[1].HoursStatus != domain.HoursClosed {
		t.Errorf("declared-closed stop status = %s, want closed", stops[1].HoursStatus)
	}
	if stops[2].HoursStatus != domain.HoursUnknown {
		t.Errorf("undeclared stop status = %s, want unknown", stops[2].HoursStatus)
	}
}

func TestEvaluateHoursWrapAroundWindow(t *testing.T) {
	day := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	lateBar := domain.Stop{
		Venue: domain.Venue{
			ID:       "latebar",
			Category: domain.CategoryBar,
			Hours:    &domain.OpeningHours{OpenMinute: 17 * 60, CloseMinute: 2 * 60},
		},
		StartTime: day.Add(23 * time.Hour),
		EndTime:   day.Add(24*time.Hour + 30*time.Minute),
	}

	stops := EvaluateHours([]domain.Stop{lateBar})
	if stops[0].HoursStatus != domain.HoursOpen {
		t.Errorf("23:00-00:30 visit in a 17:00-02:00 window = %s, want open", stops[0].HoursStatus)
	}
}
