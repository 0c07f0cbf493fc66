package ports

import (
	"context"

	"github.com/Lior1305/Planeet/internal/domain"
)

// Contract for materializing a chosen itinerary with the booking
// collaborator. Invoked only after the user picks a plan; generation
// itself never touches booking.
type BookingClient interface {
	ConfirmPlan(ctx context.Context, itinerary domain.Itinerary, groupSize int) error
}
