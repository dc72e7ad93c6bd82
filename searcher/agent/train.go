package agent

import (
	"context"
	"fmt"
	"math"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher"
	"time"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	searchAgent
	rng *rand.Rand
}

// NewTrainingAgent returns an agent for self-play that samples moves in proportion to their
// visit counts sharpened by the configured temperature.
func NewTrainingAgent(config metrics.AgentConfig) Agent {
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &trainingAgent{
		searchAgent: searchAgent{config: config},
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindMove(ctx context.Context, board game.Board) (game.Move, metrics.SearchMetric, error) {
	s, err := a.search(ctx, board)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}

	children := s.Root().Children()
	if len(children) == 0 {
		return nil, s.Metrics(), fmt.Errorf("agent %d: %w", a.config.ID, searcher.ErrNoMoves)
	}
	visits := make([]int, len(children))
	for i, child := range children {
		visits[i] = child.Visits()
	}

	policy := adjustTemperature(visits, a.config.Temperature)
	return game.Unapplied(children[sample(policy, a.rng.Float64())].Move()), s.Metrics(), nil
}

// adjustTemperature turns visit counts into probabilities proportional to visits^(1/temperature).
func adjustTemperature(visits []int, temperature float64) []float64 {
	if temperature <= 0 {
		temperature = 1
	}
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make([]float64, len(visits))
	for i, visit := range visits {
		policy[i] = math.Pow(float64(visit), exponent)
		sum += policy[i]
	}
	// Normalize
	for i := range policy {
		if sum == 0 {
			policy[i] = 1 / float64(len(policy))
			continue
		}
		policy[i] /= sum
	}
	return policy
}

// sample returns the index whose cumulative probability first exceeds sampled, a value in [0, 1).
func sample(policy []float64, sampled float64) int {
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(policy) - 1 // Fallback in case of rounding errors
}
