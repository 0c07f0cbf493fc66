package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Lior1305/Planeet/internal/api/dto"
	"github.com/Lior1305/Planeet/internal/domain"
	"github.com/Lior1305/Planeet/internal/engine"
	"github.com/Lior1305/Planeet/internal/ports"
)

type PlanHandler struct {
	Venues   ports.VenueProvider
	Profiles ports.ProfileRepository
	Booking  ports.BookingClient
	Store    *PlanStore

	// Now is swappable in tests; nil means time.Now.
	Now func() time.Time
}

func (h *PlanHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Plans dispatches the /plans collection endpoint: POST generates a new
// set of plan variants, GET lists a user's stored plans.
func (h *PlanHandler) Plans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.generate(w, r)
	case http.MethodGet:
		h.listByUser(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// PlanByID dispatches /plans/{id} and /plans/{id}/confirm.
func (h *PlanHandler) PlanByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/plans/")
	planID, action, _ := strings.Cut(rest, "/")
	if planID == "" {
		writeError(w, r, http.StatusNotFound, "plan id is required")
		return
	}

	switch action {
	case "":
		h.get(w, r, planID)
	case "confirm":
		h.confirm(w, r, planID)
	default:
		writeError(w, r, http.StatusNotFound, "not found")
	}
}

// generate runs the full pipeline: validate the request, look up the
// user's profile, discover candidate venues and hand everything to the
// engine. Profile lookup failures degrade to non-personalized plans
// instead of failing the request.
func (h *PlanHandler) generate(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	planReq, err := toPlanRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := planReq.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	var history domain.RatingHistory
	var prefs *domain.Preferences
	if planReq.Personalize {
		history, err = h.Profiles.GetRatingHistory(ctx, planReq.UserID)
		if err == nil {
			prefs, err = h.Profiles.GetPreferences(ctx, planReq.UserID)
		}
		if err != nil {
			log.Printf("profile lookup failed, generating without personalization: user_id=%s err=%v",
				planReq.UserID, err)
			planReq.Personalize = false
			history = nil
			prefs = nil
		}
	}

	venues, err := h.Venues.DiscoverVenues(ctx, ports.VenueQuery{
		Location:   planReq.Location,
		RadiusKM:   planReq.RadiusKM,
		Categories: planReq.Categories,
	})
	if err != nil {
		log.Printf("venue discovery failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "venue discovery unavailable")
		return
	}

	planID := uuid.NewString()
	factory := engine.NewRequestShufflerFactory(planReq, h.now())

	plans, err := engine.GeneratePlans(ctx, planReq, planID, venues, history, prefs, factory)
	if err != nil {
		log.Printf("plan generation failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(plans) == 0 {
		writeError(w, r, http.StatusUnprocessableEntity,
			"not enough venues in the area to build a plan")
		return
	}

	h.Store.PutAll(planReq.UserID, planReq.GroupSize, plans)

	writeJSON(w, r, http.StatusOK, toListResponse(plans))
}

func (h *PlanHandler) get(w http.ResponseWriter, r *http.Request, planID string) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	plan, _, ok := h.Store.Get(planID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "plan not found")
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(plan))
}

func (h *PlanHandler) listByUser(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		writeError(w, r, http.StatusBadRequest, "user_id query parameter is required")
		return
	}

	writeJSON(w, r, http.StatusOK, toListResponse(h.Store.ListByUser(userID)))
}

func (h *PlanHandler) confirm(w http.ResponseWriter, r *http.Request, planID string) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	plan, groupSize, ok := h.Store.Get(planID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "plan not found")
		return
	}

	if err := h.Booking.ConfirmPlan(r.Context(), plan, groupSize); err != nil {
		log.Printf("plan confirmation failed: plan_id=%s err=%v", planID, err)
		writeError(w, r, http.StatusBadGateway, "booking unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ConfirmResponse{PlanID: planID, Status: "confirmed"})
}

// toPlanRequest maps the wire request onto the domain request. Shape
// problems (unknown category, unparseable time) are reported here;
// semantic validation lives on the domain type.
func toPlanRequest(req dto.PlanRequest) (domain.PlanRequest, error) {
	categories := make([]domain.Category, 0, len(req.VenueTypes))
	for _, raw := range req.VenueTypes {
		c, err := domain.ParseCategory(raw)
		if err != nil {
			return domain.PlanRequest{}, err
		}
		categories = append(categories, c)
	}

	var startAt time.Time
	if s := strings.TrimSpace(req.StartTime); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return domain.PlanRequest{}, err
		}
		startAt = parsed
	}

	stopCount := req.StopCount
	if stopCount == 0 {
		stopCount = len(categories)
	}

	groupSize := req.GroupSize
	if groupSize == 0 {
		groupSize = 1
	}

	personalize := true
	if req.Personalize != nil {
		personalize = *req.Personalize
	}

	return domain.PlanRequest{
		UserID:      req.UserID,
		Categories:  categories,
		Location:    domain.Coordinates{Lat: req.Location.Latitude, Lon: req.Location.Longitude},
		RadiusKM:    req.RadiusKM,
		StopCount:   stopCount,
		GroupSize:   groupSize,
		StartAt:     startAt,
		PriceFilter: domain.PriceTier(req.PriceFilter),
		Personalize: personalize,
	}, nil
}

func toPlanResponse(plan domain.Itinerary) dto.PlanResponse {
	stops := make([]dto.StopResponse, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		stops = append(stops, dto.StopResponse{
			VenueID:   s.Venue.ID,
			VenueName: s.Venue.Name,
			VenueType: string(s.Venue.Category),
			Location: dto.Location{
				Latitude:  s.Venue.Location.Lat,
				Longitude: s.Venue.Location.Lon,
			},
			Rating:          s.Venue.Rating,
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			DurationMinutes: s.DurationMinutes,
			TravelMinutes:   s.TravelMinutes,
			TravelKM:        s.TravelKM,
			HoursStatus:     string(s.HoursStatus),
		})
	}

	types := make([]string, 0, len(plan.Categories))
	for _, c := range plan.Categories {
		types = append(types, string(c))
	}

	return dto.PlanResponse{
		PlanID:     plan.PlanID,
		UserID:     plan.UserID,
		VenueTypes: types,
		Stops:      stops,
		Summary: dto.SummaryResponse{
			StartTime:            plan.Summary.StartTime,
			EndTime:              plan.Summary.EndTime,
			TotalDurationMinutes: plan.Summary.TotalDurationMinutes,
			VenueMinutes:         plan.Summary.VenueMinutes,
			TravelMinutes:        plan.Summary.TravelMinutes,
			BufferMinutes:        plan.Summary.BufferMinutes,
			TotalDistanceKM:      plan.Summary.TotalDistanceKM,
			StopCount:            plan.Summary.StopCount,
		},
		PersonalizationApplied: plan.PersonalizationApplied,
		GeneratedAt:            plan.GeneratedAt,
	}
}

func toListResponse(plans []domain.Itinerary) dto.ListPlanResponse {
	res := dto.ListPlanResponse{Plans: make([]dto.PlanResponse, 0, len(plans))}
	for _, p := range plans {
		res.Plans = append(res.Plans, toPlanResponse(p))
	}
	return res
}
