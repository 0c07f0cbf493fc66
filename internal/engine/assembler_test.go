package engine

import (
	"fmt"
	"testing"

	"github.com/Lior1305/Planeet/internal/domain"
)

// noopShuffler keeps candidate lists in their incoming order so tests can
// assert exact selections.
type noopShuffler struct{}

func (noopShuffler) Shuffle(n int, swap func(i, j int)) {}

func fixedFactory(offset int64) Shuffler { return noopShuffler{} }

func categoryPool(category domain.Category, n int) []domain.Venue {
	venues := make([]domain.Venue, 0, n)
	for i := 0; i < n; i++ {
		venues = append(venues, domain.Venue{
			ID:       fmt.Sprintf("%s-%d", category, i),
			Category: category,
		})
	}
	return venues
}

func threeCategoryPool(perCategory int) (map[domain.Category][]domain.Venue, []domain.Category) {
	categories := []domain.Category{domain.CategoryCafe, domain.CategoryRestaurant, domain.CategoryBar}
	pool := make(map[domain.Category][]domain.Venue, len(categories))
	for _, c := range categories {
		pool[c] = categoryPool(c, perCategory)
	}
	return pool, categories
}

func TestAssembleThreeDisjointItineraries(t *testing.T) {
	pool, categories := threeCategoryPool(10)

	plans, used, err := AssembleItineraries(pool, categories, 2, nil, fixedFactory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plans) != 3 {
		t.Fatalf("expected 3 itineraries, got %d", len(plans))
	}

	seen := make(map[string]int)
	for pi, plan := range plans {
		if len(plan) != 2 {
			t.Errorf("plan %d has %d stops, want 2", pi, len(plan))
		}
		perPlanCategories := make(map[domain.Category]bool)
		for _, v := range plan {
			seen[v.ID]++
			if perPlanCategories[v.Category] {
				t.Errorf("plan %d repeats category %q", pi, v.Category)
			}
			perPlanCategories[v.Category] = true
		}
	}

	for id, count := range seen {
		if count > 1 {
			t.Errorf("venue %q appears in %d itineraries", id, count)
		}
		if _, ok := used[id]; !ok {
			t.Errorf("selected venue %q missing from used accumulator", id)
		}
	}
}

func TestAssembleRejectsExcessiveStopCount(t *testing.T) {
	pool, categories := threeCategoryPool(5)

	_, _, err := AssembleItineraries(pool, categories, 4, nil, fixedFactory)
	if err == nil {
		t.Fatal("expected error when stop count exceeds category count")
	}
}

func TestAssemblePartialResultOnExhaustedInventory(t *testing.T) {
	// One venue per category: after the first plan takes two, only one
	// venue remains for all subsequent plans.
	pool, categories := threeCategoryPool(1)

	plans, _, err := AssembleItineraries(pool, categories, 2, nil, fixedFactory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plans) == 0 || len(plans) > 3 {
		t.Fatalf("expected a partial result between 1 and 3 plans, got %d", len(plans))
	}

	total := 0
	seen := make(map[string]bool)
	for _, plan := range plans {
		for _, v := range plan {
			if seen[v.ID] {
				t.Errorf("venue %q reused across fallback plans", v.ID)
			}
			seen[v.ID] = true
			total++
		}
	}
	if total != 3 {
		t.Fatalf("all 3 available venues should be placed, got %d", total)
	}
}

func TestAssembleRespectsIncomingUsedSet(t *testing.T) {
	pool, categories := threeCategoryPool(2)
	used := map[string]struct{}{"cafe-0": {}}

	plans, _, err := AssembleItineraries(pool, categories, 1, used, fixedFactory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, plan := range plans {
		for _, v := range plan {
			if v.ID == "cafe-0" {
				t.Fatal("pre-used venue was selected again")
			}
		}
	}
}

func TestAssembleWindowsDifferPerItinerary(t *testing.T) {
	categories := []domain.Category{
		domain.CategoryCafe, domain.CategoryMuseum, domain.CategoryPark,
		domain.CategoryRestaurant, domain.CategoryBar,
	}
	pool := make(map[domain.Category][]domain.Venue)
	for _, c := range categories {
		pool[c] = categoryPool(c, 3)
	}

	plans, _, err := AssembleItineraries(pool, categories, 2, nil, fixedFactory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(plans))
	}

	// With a no-op shuffler the windows are deterministic: first, middle, last.
	wantWindows := [][]domain.Category{
		{domain.CategoryCafe, domain.CategoryMuseum},
		{domain.CategoryMuseum, domain.CategoryPark},
		{domain.CategoryRestaurant, domain.CategoryBar},
	}
	for pi, want := range wantWindows {
		for si, category := range want {
			if plans[pi][si].Category != category {
				t.Errorf("plan %d stop %d category = %q, want %q",
					pi, si, plans[pi][si].Category, category)
			}
		}
	}
}
