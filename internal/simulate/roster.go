package simulate

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/clanpulse/internal/domain/model"
)

// Walk step distribution constants.
const (
	baseTrophies   = 2000
	trophySpread   = 1500
	maxStep        = 40
	gainLikelihood = 3 // one in N players gains per tick
	lossLikelihood = 3 // of the rest, one in N loses
)

// SyntheticRoster implements the roster fetcher contract with a random
// walk over a fixed set of generated players.
type SyntheticRoster struct {
	mu      sync.Mutex
	rng     *rand.Rand
	players []model.PlayerObservation

	// expectedNet tracks the walk's ground truth per tag, for verification.
	expectedNet map[string]int
	// expectedEvents counts non-zero steps after the baseline tick.
	expectedEvents int
	baselined      bool
}

// NewSyntheticRoster generates players with unique tags and random
// starting scores.
func NewSyntheticRoster(count int, seed int64) *SyntheticRoster {
	rng := rand.New(rand.NewSource(seed))
	players := make([]model.PlayerObservation, count)
	for i := range players {
		players[i] = model.PlayerObservation{
			Tag:      "#" + uuid.New().String()[:8],
			Name:     fmt.Sprintf("Synthetic %02d", i),
			Trophies: baseTrophies + rng.Intn(trophySpread),
		}
	}
	return &SyntheticRoster{
		rng:         rng,
		players:     players,
		expectedNet: make(map[string]int, count),
	}
}

// FetchRankedPlayers returns the current synthetic roster.
func (s *SyntheticRoster) FetchRankedPlayers(ctx context.Context) ([]model.PlayerObservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.PlayerObservation, len(s.players))
	copy(out, s.players)
	return out, nil
}

// Step advances the random walk one tick. The first call is a no-op so
// the baseline fetch observes unchanged scores.
func (s *SyntheticRoster) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.baselined {
		s.baselined = true
		return
	}

	for i := range s.players {
		switch {
		case s.rng.Intn(gainLikelihood) == 0:
			delta := 1 + s.rng.Intn(maxStep)
			s.players[i].Trophies += delta
			s.expectedNet[s.players[i].Tag] += delta
			s.expectedEvents++
		case s.rng.Intn(lossLikelihood) == 0:
			delta := 1 + s.rng.Intn(maxStep)
			s.players[i].Trophies -= delta
			s.expectedNet[s.players[i].Tag] -= delta
			s.expectedEvents++
		}
	}
}

// ExpectedNet returns the ground-truth net gain for one tag.
func (s *SyntheticRoster) ExpectedNet(tag string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expectedNet[tag]
}

// ExpectedEvents returns how many deltas the walk has produced.
func (s *SyntheticRoster) ExpectedEvents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expectedEvents
}

// Tags returns the synthetic tags in roster order.
func (s *SyntheticRoster) Tags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := make([]string, len(s.players))
	for i, p := range s.players {
		tags[i] = p.Tag
	}
	return tags
}
