package handlers

import (
	"sync"

	"github.com/Lior1305/Planeet/internal/domain"
)

// storedPlan pairs a generated itinerary with the group size it was
// requested for, which booking needs at confirmation time.
type storedPlan struct {
	itinerary domain.Itinerary
	groupSize int
}

// PlanStore keeps generated plans in memory so clients can fetch and
// confirm them later in the session. Plans are small and short-lived;
// durable storage is deliberately out of scope.
type PlanStore struct {
	mu     sync.RWMutex
	byID   map[string]storedPlan
	byUser map[string][]string
}

func NewPlanStore() *PlanStore {
	return &PlanStore{
		byID:   map[string]storedPlan{},
		byUser: map[string][]string{},
	}
}

// PutAll stores every variant of a generation run under its plan id.
func (s *PlanStore) PutAll(userID string, groupSize int, plans []domain.Itinerary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, plan := range plans {
		s.byID[plan.PlanID] = storedPlan{itinerary: plan, groupSize: groupSize}
		s.byUser[userID] = append(s.byUser[userID], plan.PlanID)
	}
}

// Get returns a stored plan and its group size.
func (s *PlanStore) Get(planID string) (domain.Itinerary, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.byID[planID]
	if !ok {
		return domain.Itinerary{}, 0, false
	}
	return stored.itinerary, stored.groupSize, true
}

// ListByUser returns the user's stored plans in generation order.
func (s *PlanStore) ListByUser(userID string) []domain.Itinerary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUser[userID]
	plans := make([]domain.Itinerary, 0, len(ids))
	for _, id := range ids {
		if stored, ok := s.byID[id]; ok {
			plans = append(plans, stored.itinerary)
		}
	}
	return plans
}
