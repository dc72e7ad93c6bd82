package agent

import (
	"context"
	"mcts/experiments/metrics"
	"mcts/game"
)

type evaluationAgent struct {
	searchAgent
}

// NewEvaluationAgent returns an agent that always plays the most visited move.
func NewEvaluationAgent(config metrics.AgentConfig) Agent {
	return &evaluationAgent{searchAgent{config: config}}
}

func (a *evaluationAgent) FindMove(ctx context.Context, board game.Board) (game.Move, metrics.SearchMetric, error) {
	s, err := a.search(ctx, board)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	move, err := s.BestMove()
	return move, s.Metrics(), err
}
