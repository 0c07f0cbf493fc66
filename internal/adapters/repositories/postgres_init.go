package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the profile database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRatingsQuery := `
	CREATE TABLE IF NOT EXISTS venue_ratings (
		user_id TEXT NOT NULL,
		venue_id TEXT NOT NULL,
		rating REAL NOT NULL,
		rated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, venue_id, rated_at)
	);
	`

	createPreferencesQuery := `
	CREATE TABLE IF NOT EXISTS outing_preferences (
		user_id TEXT PRIMARY KEY,
		preferred_price_tier TEXT,
		preferred_amenities JSONB
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_venue_ratings_user
	ON venue_ratings(user_id);
	`

	statements := []string{
		createRatingsQuery,
		createPreferencesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type RatingSeed struct {
	UserID  string  `json:"user_id"`
	VenueID string  `json:"venue_id"`
	Rating  float64 `json:"rating"`
}

type PreferenceSeed struct {
	UserID             string   `json:"user_id"`
	PreferredPriceTier string   `json:"preferred_price_tier"`
	PreferredAmenities []string `json:"preferred_amenities"`
}

type ProfileSeed struct {
	Ratings     []RatingSeed     `json:"ratings"`
	Preferences []PreferenceSeed `json:"preferences"`
}

// Populate the database with profile data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed profiles: read %q: %w", jsonPath, err)
	}

	var data ProfileSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed profiles: parse json: %w", err)
	}

	for i, r := range data.Ratings {
		if strings.TrimSpace(r.UserID) == "" || strings.TrimSpace(r.VenueID) == "" {
			return fmt.Errorf("seed profiles: rating at index %d: user_id and venue_id cannot be empty", i+1)
		}
		if r.Rating < 1 || r.Rating > 5 {
			return fmt.Errorf("seed profiles: rating at index %d: value %.1f out of range", i+1, r.Rating)
		}
	}
	for i, p := range data.Preferences {
		if strings.TrimSpace(p.UserID) == "" {
			return fmt.Errorf("seed profiles: preference at index %d: user_id cannot be empty", i+1)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed profiles: begin tx: %w", err)
	}
	defer tx.Rollback()

	ratingQuery := `
	INSERT INTO venue_ratings (
		user_id,
		venue_id,
		rating
	)
	VALUES ($1, $2, $3);
	`
	ratingStmt, err := tx.Prepare(ratingQuery)
	if err != nil {
		return fmt.Errorf("seed profiles: prepare rating insert: %w", err)
	}
	defer ratingStmt.Close()

	for _, r := range data.Ratings {
		if _, err := ratingStmt.Exec(r.UserID, r.VenueID, r.Rating); err != nil {
			return fmt.Errorf("seed profiles: insert rating user=%s venue=%s: %w", r.UserID, r.VenueID, err)
		}
	}

	prefQuery := `
	INSERT INTO outing_preferences (
		user_id,
		preferred_price_tier,
		preferred_amenities
	)
	VALUES ($1, NULLIF($2, ''), $3)
	ON CONFLICT (user_id) DO UPDATE SET
		preferred_price_tier = EXCLUDED.preferred_price_tier,
		preferred_amenities = EXCLUDED.preferred_amenities;
	`
	prefStmt, err := tx.Prepare(prefQuery)
	if err != nil {
		return fmt.Errorf("seed profiles: prepare preference insert: %w", err)
	}
	defer prefStmt.Close()

	for _, p := range data.Preferences {
		amenities, err := json.Marshal(p.PreferredAmenities)
		if err != nil {
			return fmt.Errorf("seed profiles: encode amenities for user %s: %w", p.UserID, err)
		}
		if _, err := prefStmt.Exec(p.UserID, p.PreferredPriceTier, amenities); err != nil {
			return fmt.Errorf("seed profiles: insert preference user=%s: %w", p.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed profiles: commit tx: %w", err)
	}

	return nil
}

func decodeAmenities(raw []byte, out *[]string) error {
	return json.Unmarshal(raw, out)
}
