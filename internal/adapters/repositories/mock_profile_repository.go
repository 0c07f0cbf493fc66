package repositories

import (
	"context"

	"github.com/Lior1305/Planeet/internal/domain"
)

// MockProfileRepository serves canned profile data for tests.
type MockProfileRepository struct {
	Histories   map[string]domain.RatingHistory
	Preferences map[string]*domain.Preferences
	Err         error
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		Histories:   map[string]domain.RatingHistory{},
		Preferences: map[string]*domain.Preferences{},
	}
}

func (m *MockProfileRepository) GetRatingHistory(
	_ context.Context,
	userID string,
) (domain.RatingHistory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if history, ok := m.Histories[userID]; ok {
		return history, nil
	}
	return domain.RatingHistory{}, nil
}

func (m *MockProfileRepository) GetPreferences(
	_ context.Context,
	userID string,
) (*domain.Preferences, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Preferences[userID], nil
}
