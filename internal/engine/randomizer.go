package engine

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"time"

	"github.com/Lior1305/Planeet/internal/domain"
)

// Shuffler is the single randomness capability the engine needs. Tests
// supply a fixed implementation to assert exact orderings; production
// wiring supplies a time-and-request-derived seeded source.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// ShufflerFactory builds shufflers for the offsets the assembler uses
// (one per itinerary index, another range for fallback plans). All
// shufflers from one factory derive from the same base seed, so a single
// invocation is internally reproducible.
type ShufflerFactory func(offset int64) Shuffler

type seededShuffler struct {
	r *rand.Rand
}

func NewSeededShuffler(seed int64) Shuffler {
	return &seededShuffler{r: rand.New(rand.NewSource(seed))}
}

func (s *seededShuffler) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

// NewRequestShufflerFactory derives the production shuffler family for one
// request. Wall-clock time contributes variety across repeated identical
// requests; the request hash keeps the per-offset seeds stable relative to
// each other within a single call.
func NewRequestShufflerFactory(req domain.PlanRequest, now time.Time) ShufflerFactory {
	base := now.UnixMilli() + int64(hashRequest(req))
	return func(offset int64) Shuffler {
		return NewSeededShuffler(base + offset)
	}
}

// hashRequest hashes the request's stable fields. Categories are sorted so
// the hash does not depend on request ordering.
func hashRequest(req domain.PlanRequest) uint32 {
	categories := make([]string, 0, len(req.Categories))
	for _, c := range req.Categories {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)

	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%v|%.4f|%.4f|%d|%s|%t",
		req.UserID,
		categories,
		req.Location.Lat,
		req.Location.Lon,
		req.GroupSize,
		req.PriceFilter,
		req.Personalize,
	)
	return h.Sum32()
}

// CategoryOffset maps a category to a stable shuffler offset so each
// category's candidate list gets its own reproducible shuffle.
func CategoryOffset(c domain.Category) int64 {
	h := fnv.New32a()
	h.Write([]byte(c))
	return int64(h.Sum32())
}

// Fraction of a ranked candidate list treated as the quality tier.
const defaultTopFraction = 0.7

// BiasedShuffle reorders a best-first candidate list while preserving the
// quality bias: the top fraction and the remainder are shuffled
// independently and concatenated, so a top-tier venue never drops below a
// rest-tier one. The input slice is not modified.
func BiasedShuffle(venues []domain.Venue, s Shuffler, topFraction float64) []domain.Venue {
	if len(venues) == 0 {
		return nil
	}
	if topFraction <= 0 || topFraction > 1 {
		topFraction = defaultTopFraction
	}

	out := make([]domain.Venue, len(venues))
	copy(out, venues)

	topCount := int(float64(len(out)) * topFraction)
	if topCount < 1 {
		topCount = 1
	}

	top := out[:topCount]
	rest := out[topCount:]

	s.Shuffle(len(top), func(i, j int) { top[i], top[j] = top[j], top[i] })
	s.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	return out
}
