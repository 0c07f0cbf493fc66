package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Immutable configuration for one plan generation pass.
type PlanRequest struct {
	UserID      string
	Categories  []Category
	Location    Coordinates
	RadiusKM    float64
	StopCount   int
	GroupSize   int
	StartAt     time.Time
	PriceFilter PriceTier
	Personalize bool
}

// Validate rejects malformed requests before any planning work runs.
// Violations are caller-visible errors, never silently corrected.
func (r PlanRequest) Validate() error {
	if r.UserID == "" {
		return errors.New("validate plan request: user_id must be non-empty")
	}

	if len(r.Categories) == 0 {
		return errors.New("validate plan request: at least one category is required")
	}

	seen := make(map[Category]struct{}, len(r.Categories))
	for _, c := range r.Categories {
		if _, err := ParseCategory(string(c)); err != nil {
			return fmt.Errorf("validate plan request: %w", err)
		}
		if _, ok := seen[c]; ok {
			return fmt.Errorf("validate plan request: duplicate category %q", c)
		}
		seen[c] = struct{}{}
	}

	if r.StopCount < 1 {
		return errors.New("validate plan request: stop_count must be at least 1")
	}
	if r.StopCount > len(r.Categories) {
		return fmt.Errorf(
			"validate plan request: stop_count (%d) cannot exceed number of categories (%d)",
			r.StopCount, len(r.Categories),
		)
	}

	if r.GroupSize < 1 {
		return errors.New("validate plan request: group_size must be at least 1")
	}

	if r.RadiusKM <= 0 || r.RadiusKM > 100 {
		return fmt.Errorf("validate plan request: radius_km must be in (0, 100], got %v", r.RadiusKM)
	}

	if math.IsNaN(r.Location.Lat) || math.IsNaN(r.Location.Lon) ||
		math.Abs(r.Location.Lat) > 90 || math.Abs(r.Location.Lon) > 180 {
		return fmt.Errorf(
			"validate plan request: location (%v, %v) is not a valid coordinate",
			r.Location.Lat, r.Location.Lon,
		)
	}

	if r.StartAt.IsZero() {
		return errors.New("validate plan request: start time is required")
	}

	// Displayed times are kept on a 15-minute grid, so the start instant
	// must already sit on one.
	switch r.StartAt.Minute() {
	case 0, 15, 30, 45:
	default:
		return fmt.Errorf(
			"validate plan request: start time must be on a 15-minute boundary (XX:00, XX:15, XX:30, XX:45), got %s",
			r.StartAt.Format("15:04"),
		)
	}
	if r.StartAt.Second() != 0 || r.StartAt.Nanosecond() != 0 {
		return fmt.Errorf(
			"validate plan request: start time must not include seconds, got %s",
			r.StartAt.Format("15:04:05"),
		)
	}

	return nil
}
