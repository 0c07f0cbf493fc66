package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Lior1305/Planeet/internal/adapters/booking"
	"github.com/Lior1305/Planeet/internal/adapters/cache"
	"github.com/Lior1305/Planeet/internal/adapters/discovery"
	"github.com/Lior1305/Planeet/internal/adapters/repositories"
	"github.com/Lior1305/Planeet/internal/api"
	"github.com/Lior1305/Planeet/internal/config"
	"github.com/Lior1305/Planeet/internal/platform/db"
	"github.com/Lior1305/Planeet/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (postgres, redis, collaborator services)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	venuesURL := os.Getenv("VENUES_URL")
	if strings.TrimSpace(venuesURL) == "" {
		log.Fatal("VENUES_URL is required")
	}
	bookingURL := os.Getenv("BOOKING_URL")
	if strings.TrimSpace(bookingURL) == "" {
		log.Fatal("BOOKING_URL is required")
	}
	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	profileDB, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer profileDB.Close()

	provider, err := discovery.NewHTTPVenueProvider(venuesURL)
	if err != nil {
		log.Fatal(err)
	}

	// Discovery results are cached in redis when configured; without it
	// every request goes straight to the venues service.
	var venues ports.VenueProvider = provider
	if addr := config.Get("REDIS_ADDR", ""); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		defer client.Close()

		venueCache := cache.NewRedisVenueCache(client, 10*time.Minute)
		venues = discovery.NewCachedVenueProvider(provider, venueCache)
	}

	bookingClient, err := booking.NewHTTPBookingClient(bookingURL)
	if err != nil {
		log.Fatal(err)
	}

	profiles := repositories.NewPostgresProfileRepository(profileDB)
	router := api.NewRouter(venues, profiles, bookingClient)

	// Timeouts account for collaborator latency during discovery.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
