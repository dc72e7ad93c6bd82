package agent

import (
	"context"
	"errors"
	"fmt"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher"

	"github.com/rs/zerolog/log"
)

var ErrNoBudget = errors.New("agent needs a search duration or an iteration budget")

type Agent interface {
	// FindMove searches from board and returns the chosen move with the search's metrics
	FindMove(ctx context.Context, board game.Board) (game.Move, metrics.SearchMetric, error)
}

// New returns a training agent when the config sets a temperature, an evaluation agent otherwise.
func New(config metrics.AgentConfig) (Agent, error) {
	if config.Duration <= 0 && config.Iterations <= 0 {
		return nil, fmt.Errorf("agent %d: %w", config.ID, ErrNoBudget)
	}
	if config.Temperature > 0 {
		return NewTrainingAgent(config), nil
	}
	return NewEvaluationAgent(config), nil
}

// NewSearch builds the search an agent runs for one move. Iterations bound the search when no
// duration is set.
func NewSearch(board game.Board, config metrics.AgentConfig) (*searcher.Search, error) {
	if config.Duration <= 0 && config.Iterations <= 0 {
		return nil, fmt.Errorf("agent %d: %w", config.ID, ErrNoBudget)
	}

	options := []searcher.Option{
		searcher.WithExploration(config.Exploration),
		searcher.WithMetrics(metrics.NewCollector()),
	}
	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Seed != 0 {
		options = append(options, searcher.WithSeed(config.Seed))
	}
	return searcher.New(board, options...), nil
}

// searchAgent runs one search per move. It is not safe for concurrent use.
type searchAgent struct {
	config   metrics.AgentConfig
	searches uint64
}

func (a *searchAgent) search(ctx context.Context, board game.Board) (*searcher.Search, error) {
	config := a.config
	if config.Seed != 0 {
		config.Seed += a.searches // A fresh stream per move keeps games reproducible
	}
	a.searches++

	s, err := NewSearch(board, config)
	if err != nil {
		return nil, err
	}
	if err := s.RunFor(ctx, config.Duration); err != nil {
		return nil, fmt.Errorf("agent %d search: %w", config.ID, err)
	}

	log.Debug().Msgf("agent %d searched %d iterations, %d nodes", config.ID, s.Iterations(), s.UniqueNodes())
	return s, nil
}
