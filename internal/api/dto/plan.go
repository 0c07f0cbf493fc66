package dto

import "time"

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PlanRequest struct {
	UserID      string   `json:"user_id"`
	VenueTypes  []string `json:"venue_types"`
	Location    Location `json:"location"`
	RadiusKM    float64  `json:"radius_km"`
	StopCount   int      `json:"stop_count"`
	GroupSize   int      `json:"group_size"`
	StartTime   string   `json:"start_time"`
	PriceFilter string   `json:"price_filter"`
	Personalize *bool    `json:"personalize"`
}

type StopResponse struct {
	VenueID         string    `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	VenueType       string    `json:"venue_type"`
	Location        Location  `json:"location"`
	Rating          *float64  `json:"rating,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	TravelMinutes   int       `json:"travel_minutes"`
	TravelKM        float64   `json:"travel_km"`
	HoursStatus     string    `json:"hours_status"`
}

type SummaryResponse struct {
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	TotalDurationMinutes int       `json:"total_duration_minutes"`
	VenueMinutes         int       `json:"venue_minutes"`
	TravelMinutes        int       `json:"travel_minutes"`
	BufferMinutes        int       `json:"buffer_minutes"`
	TotalDistanceKM      float64   `json:"total_distance_km"`
	StopCount            int       `json:"stop_count"`
}

type PlanResponse struct {
	PlanID                 string          `json:"plan_id"`
	UserID                 string          `json:"user_id"`
	VenueTypes             []string        `json:"venue_types"`
	Stops                  []StopResponse  `json:"stops"`
	Summary                SummaryResponse `json:"summary"`
	PersonalizationApplied bool            `json:"personalization_applied"`
	GeneratedAt            time.Time       `json:"generated_at"`
}

type ListPlanResponse struct {
	Plans []PlanResponse `json:"plans"`
}

type ConfirmResponse struct {
	PlanID string `json:"plan_id"`
	Status string `json:"status"`
}
