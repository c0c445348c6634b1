package sim

import (
	"fmt"
	"math/rand"

	"github.com/vforge/screwsort/internal/puzzle"
)

// Strategy picks which movable screw to tap next. Candidates arrive in
// creation order and are never empty.
type Strategy interface {
	Pick(candidates []puzzle.ScrewID) puzzle.ScrewID
}

// NewStrategy builds a strategy by name. The random strategy is seeded
// so runs stay reproducible.
func NewStrategy(name string, seed int64) (Strategy, error) {
	switch name {
	case "eager":
		return eagerStrategy{}, nil
	case "random":
		return &randomStrategy{rng: rand.New(rand.NewSource(seed))}, nil
	default:
		return nil, fmt.Errorf("sim: unknown autoplay strategy %q", name)
	}
}

// eagerStrategy always taps the first movable screw, which mirrors a
// player working boards top to bottom.
type eagerStrategy struct{}

func (eagerStrategy) Pick(candidates []puzzle.ScrewID) puzzle.ScrewID {
	return candidates[0]
}

// randomStrategy taps a uniformly chosen movable screw.
type randomStrategy struct {
	rng *rand.Rand
}

func (s *randomStrategy) Pick(candidates []puzzle.ScrewID) puzzle.ScrewID {
	return candidates[s.rng.Intn(len(candidates))]
}
