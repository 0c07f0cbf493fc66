package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Lior1305/Planeet/internal/domain"
)

// Postgres-backed implementation of the ProfileRepository port.
type PostgresProfileRepository struct{ DB *sql.DB }

func NewPostgresProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{DB: db}
}

// GetRatingHistory returns the user's per-venue average rating. A user
// with no ratings gets an empty map, not an error.
func (p *PostgresProfileRepository) GetRatingHistory(
	ctx context.Context,
	userID string,
) (domain.RatingHistory, error) {
	if p.DB == nil {
		return nil, errors.New("profile repository: DB is nil")
	}

	query := `
	SELECT
		venue_id,
		AVG(rating)
	FROM venue_ratings
	WHERE user_id = $1
	GROUP BY venue_id;
	`
	rows, err := p.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("rating history: query venue_ratings: %w", err)
	}
	defer rows.Close()

	history := make(domain.RatingHistory)
	for rows.Next() {
		var venueID string
		var rating float64
		if err := rows.Scan(&venueID, &rating); err != nil {
			return nil, fmt.Errorf("rating history: scan row: %w", err)
		}
		history[venueID] = rating
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rating history: row iteration: %w", err)
	}

	return history, nil
}

// GetPreferences returns the user's outing preferences, or nil when the
// user has never saved any.
func (p *PostgresProfileRepository) GetPreferences(
	ctx context.Context,
	userID string,
) (*domain.Preferences, error) {
	if p.DB == nil {
		return nil, errors.New("profile repository: DB is nil")
	}

	query := `
	SELECT
		preferred_price_tier,
		preferred_amenities
	FROM outing_preferences
	WHERE user_id = $1;
	`
	var tier sql.NullString
	var amenities []byte
	err := p.DB.QueryRowContext(ctx, query, userID).Scan(&tier, &amenities)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("preferences: query outing_preferences: %w", err)
	}

	prefs := &domain.Preferences{}
	if tier.Valid {
		prefs.PreferredPriceTier = domain.PriceTier(tier.String)
	}
	if len(amenities) > 0 {
		if err := decodeAmenities(amenities, &prefs.PreferredAmenities); err != nil {
			return nil, fmt.Errorf("preferences: decode amenities for user %s: %w", userID, err)
		}
	}

	return prefs, nil
}
