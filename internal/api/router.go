package api

import (
	"net/http"

	"github.com/Lior1305/Planeet/internal/api/handlers"
	"github.com/Lior1305/Planeet/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	venues ports.VenueProvider,
	profiles ports.ProfileRepository,
	booking ports.BookingClient,
) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{
		Venues:   venues,
		Profiles: profiles,
		Booking:  booking,
		Store:    handlers.NewPlanStore(),
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/plans", planHandler.Plans)
	mux.HandleFunc("/plans/", planHandler.PlanByID)

	return loggingMiddleware(mux)
}
