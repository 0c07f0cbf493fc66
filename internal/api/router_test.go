package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lior1305/Planeet/internal/adapters/discovery"
	"github.com/Lior1305/Planeet/internal/adapters/repositories"
	"github.com/Lior1305/Planeet/internal/api/dto"
	"github.com/Lior1305/Planeet/internal/domain"
)

type mockBooking struct {
	calls     int
	lastPlan  string
	lastGroup int
	err       error
}

func (m *mockBooking) ConfirmPlan(_ context.Context, itinerary domain.Itinerary, groupSize int) error {
	m.calls++
	m.lastPlan = itinerary.PlanID
	m.lastGroup = groupSize
	return m.err
}

func venuePool() map[domain.Category][]domain.Venue {
	pool := map[domain.Category][]domain.Venue{}
	categories := []domain.Category{domain.CategoryCafe, domain.CategoryRestaurant, domain.CategoryBar}

	for ci, category := range categories {
		for i := 0; i < 4; i++ {
			rating := 4.0 + 0.1*float64(i)
			pool[category] = append(pool[category], domain.Venue{
				ID:       fmt.Sprintf("%s-%d", category, i),
				Name:     fmt.Sprintf("%s %d", category, i),
				Category: category,
				Location: domain.Coordinates{
					Lat: 32.08 + 0.002*float64(i),
					Lon: 34.78 + 0.002*float64(ci),
				},
				Rating: &rating,
			})
		}
	}
	return pool
}

func planRequestBody() map[string]any {
	return map[string]any{
		"user_id":     "user-1",
		"venue_types": []string{"cafe", "restaurant", "bar"},
		"location":    map[string]float64{"latitude": 32.08, "longitude": 34.78},
		"radius_km":   5.0,
		"stop_count":  2,
		"group_size":  3,
		"start_time":  "2026-05-04T10:00:00Z",
	}
}

func postPlans(t *testing.T, router http.Handler, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/plans", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPlansEndToEnd(t *testing.T) {
	provider := discovery.NewMockVenueProvider(venuePool())
	profiles := repositories.NewMockProfileRepository()
	profiles.Histories["user-1"] = domain.RatingHistory{"cafe-0": 5.0}
	booking := &mockBooking{}
	router := NewRouter(provider, profiles, booking)

	rec := postPlans(t, router, planRequestBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /plans = %d, body: %s", rec.Code, rec.Body.String())
	}

	var created dto.ListPlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(created.Plans) != 3 {
		t.Fatalf("expected 3 plan variants, got %d", len(created.Plans))
	}

	seen := map[string]bool{}
	for _, plan := range created.Plans {
		if len(plan.Stops) != 2 {
			t.Errorf("plan %s has %d stops, want 2", plan.PlanID, len(plan.Stops))
		}
		if !plan.PersonalizationApplied {
			t.Errorf("plan %s should be personalized", plan.PlanID)
		}
		for _, stop := range plan.Stops {
			if seen[stop.VenueID] {
				t.Errorf("venue %s appears in more than one plan", stop.VenueID)
			}
			seen[stop.VenueID] = true
		}
	}

	// Fetch one variant back by id.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plans/"+created.Plans[0].PlanID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /plans/{id} = %d", rec.Code)
	}

	// List by user covers every variant.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plans?user_id=user-1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /plans?user_id = %d", rec.Code)
	}
	var listed dto.ListPlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Plans) != 3 {
		t.Errorf("listed %d plans, want 3", len(listed.Plans))
	}

	// Confirm the chosen variant with the requested group size.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(
		http.MethodPost, "/plans/"+created.Plans[1].PlanID+"/confirm", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST confirm = %d, body: %s", rec.Code, rec.Body.String())
	}
	if booking.calls != 1 || booking.lastPlan != created.Plans[1].PlanID {
		t.Errorf("booking call = %d plan=%s", booking.calls, booking.lastPlan)
	}
	if booking.lastGroup != 3 {
		t.Errorf("booking group size = %d, want 3", booking.lastGroup)
	}
}

func TestPlansRejectsOffGridStart(t *testing.T) {
	router := NewRouter(
		discovery.NewMockVenueProvider(venuePool()),
		repositories.NewMockProfileRepository(),
		&mockBooking{},
	)

	body := planRequestBody()
	body["start_time"] = "2026-05-04T10:07:00Z"

	rec := postPlans(t, router, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("off-grid start = %d, want 400", rec.Code)
	}
}

func TestPlansRejectsUnknownVenueType(t *testing.T) {
	router := NewRouter(
		discovery.NewMockVenueProvider(venuePool()),
		repositories.NewMockProfileRepository(),
		&mockBooking{},
	)

	body := planRequestBody()
	body["venue_types"] = []string{"cafe", "arcade"}

	rec := postPlans(t, router, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown venue type = %d, want 400", rec.Code)
	}
}

func TestPlansRejectsUnknownFields(t *testing.T) {
	router := NewRouter(
		discovery.NewMockVenueProvider(venuePool()),
		repositories.NewMockProfileRepository(),
		&mockBooking{},
	)

	body := planRequestBody()
	body["surprise"] = true

	rec := postPlans(t, router, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field = %d, want 400", rec.Code)
	}
}

func TestPlansDegradesWhenProfileUnavailable(t *testing.T) {
	profiles := repositories.NewMockProfileRepository()
	profiles.Err = errors.New("profile db down")
	router := NewRouter(discovery.NewMockVenueProvider(venuePool()), profiles, &mockBooking{})

	rec := postPlans(t, router, planRequestBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /plans with broken profiles = %d, body: %s", rec.Code, rec.Body.String())
	}

	var created dto.ListPlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, plan := range created.Plans {
		if plan.PersonalizationApplied {
			t.Errorf("plan %s should not be personalized when profiles are down", plan.PlanID)
		}
	}
}

func TestPlansDiscoveryFailure(t *testing.T) {
	provider := discovery.NewMockVenueProvider(nil)
	provider.Err = errors.New("venues service down")
	router := NewRouter(provider, repositories.NewMockProfileRepository(), &mockBooking{})

	rec := postPlans(t, router, planRequestBody())
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("discovery failure = %d, want 502", rec.Code)
	}
}

func TestConfirmUnknownPlan(t *testing.T) {
	router := NewRouter(
		discovery.NewMockVenueProvider(venuePool()),
		repositories.NewMockProfileRepository(),
		&mockBooking{},
	)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/plans/nope/confirm", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("confirm unknown plan = %d, want 404", rec.Code)
	}
}

func TestConfirmBookingFailure(t *testing.T) {
	booking := &mockBooking{err: errors.New("no tables left")}
	router := NewRouter(
		discovery.NewMockVenueProvider(venuePool()),
		repositories.NewMockProfileRepository(),
		booking,
	)

	rec := postPlans(t, router, planRequestBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /plans = %d", rec.Code)
	}
	var created dto.ListPlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(
		http.MethodPost, "/plans/"+created.Plans[0].PlanID+"/confirm", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("failed confirm = %d, want 502", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	router := NewRouter(
		discovery.NewMockVenueProvider(nil),
		repositories.NewMockProfileRepository(),
		&mockBooking{},
	)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", rec.Code)
	}
}
