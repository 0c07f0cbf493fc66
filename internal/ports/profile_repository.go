package ports

import (
	"context"

	"github.com/Lior1305/Planeet/internal/domain"
)

// Port: a boundary for reading personalization signals from the user
// profile store. Both lookups are read-only; the engine never writes back.
type ProfileRepository interface {
	// Return the user's historical average rating per venue id.
	GetRatingHistory(ctx context.Context, userID string) (domain.RatingHistory, error)
	// Return the user's stated preferences, or nil when none are stored.
	GetPreferences(ctx context.Context, userID string) (*domain.Preferences, error)
}
