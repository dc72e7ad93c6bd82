package experiments

import (
	"mcts/experiments/metrics"
	"time"
)

// ThroughputExperiment measures episodes per second for growing time budgets. Both seats use
// the same config for the same playing strength and similar game length.
func ThroughputExperiment(gameName string, games int) Experiment {
	configs := []metrics.AgentConfig{
		{ID: 1, Duration: 10 * time.Millisecond},
		{ID: 2, Duration: 50 * time.Millisecond},
		{ID: 3, Duration: 100 * time.Millisecond},
	}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}

	return Experiment{
		Name:     "throughput",
		Game:     gameName,
		Configs:  configs,
		MatchUps: matchUps,
		Games:    games,
	}
}

// Throughput returns the mean episodes per second of the recorded moves.
func Throughput(moves []metrics.MoveRecord) float64 {
	episodes := 0
	var elapsed time.Duration
	for _, move := range moves {
		episodes += move.Episodes
		elapsed += move.Duration
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(episodes) / elapsed.Seconds()
}
