package engine

import (
	"context"
	"mcts/experiments/metrics"
)

// Runner plays one game.
type Runner interface {
	// Run starts a game till there's a winner or a max number of moves is reached
	Run(ctx context.Context) (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

var _ Runner = (*Engine)(nil)
