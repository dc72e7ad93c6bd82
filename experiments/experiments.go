package experiments

import (
	"context"
	"fmt"
	"io"
	"mcts/engine"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/meta"
	"mcts/report"
	"mcts/searcher/agent"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
)

type Experiment struct {
	Name     string
	Game     string
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
	Games    int    // Per match up
	Dir      string // Output root, meta.EXPERIMENTS_DIR when empty
}

type Result struct {
	Dir       string
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Summaries []metrics.MatchUpSummary
}

// Presets builds the named experiments for a game and a number of games per match up.
var Presets = map[string]func(gameName string, games int) Experiment{
	"exploration": ExplorationExperiment,
	"budget":      BudgetExperiment,
	"throughput":  ThroughputExperiment,
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ExplorationExperiment(gameName string, games int) Experiment {
	// Each matchup pairs the default constant against another one
	baseline := metrics.AgentConfig{ID: 0, Iterations: meta.EXPERIMENT_ITERATIONS, Seed: 1}
	configs := []metrics.AgentConfig{
		{ID: 1, Iterations: baseline.Iterations, Exploration: 0.5, Seed: 2},
		{ID: 2, Iterations: baseline.Iterations, Exploration: 1.0, Seed: 3},
		{ID: 3, Iterations: baseline.Iterations, Exploration: 2.0, Seed: 4},
	}
	return versus("exploration", gameName, games, baseline, configs)
}

func BudgetExperiment(gameName string, games int) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Iterations: meta.EXPERIMENT_ITERATIONS, Seed: 1}
	configs := []metrics.AgentConfig{
		{ID: 1, Iterations: baseline.Iterations / 5, Seed: 2},
		{ID: 2, Iterations: baseline.Iterations / 2, Seed: 3},
		{ID: 3, Iterations: baseline.Iterations * 2, Seed: 4},
	}
	return versus("budget", gameName, games, baseline, configs)
}

func versus(name, gameName string, games int, baseline metrics.AgentConfig, configs []metrics.AgentConfig) Experiment {
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Experiment{
		Name:     name,
		Game:     gameName,
		Configs:  append([]metrics.AgentConfig{baseline}, configs...),
		MatchUps: matchUps,
		Games:    games,
	}
}

// Run plays every match up, alternating seats between games, and stores CSV records and a
// chart page under <Dir>/<Name>/<timestamp>.
func Run(ctx context.Context, e Experiment) (*Result, error) {
	if _, err := game.New(e.Game); err != nil {
		return nil, err
	}
	dir := e.Dir
	if dir == "" {
		dir = meta.EXPERIMENTS_DIR
	}

	// Run a number of games for each matchup
	count := 0
	result := &Result{}
	agents := make([][2]int, len(e.MatchUps))

	log.Info().Msgf("starting %s experiment on %s...", e.Name, e.Game)

	for mi, matchUp := range e.MatchUps {
		agents[mi] = [2]int{matchUp[0].ID, matchUp[1].ID}
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(e.MatchUps), matchUp[0], matchUp[1])

		for i := 0; i < e.Games; i++ {
			seats := matchUp
			if i%2 == 1 {
				seats = [2]metrics.AgentConfig{matchUp[1], matchUp[0]}
			}
			count++

			winner, gameMetric, moveMetrics, err := runGame(ctx, e.Game, seats, uint64(count))
			if err != nil {
				return nil, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			result.Games = append(result.Games, metrics.GameRecord{
				ID:         count,
				MatchUp:    mi,
				Agent1:     seats[0].ID,
				Agent2:     seats[1].ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.Moves = append(result.Moves, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(e.MatchUps), i+1, winner)
		}
	}
	result.Summaries = metrics.Summarize(result.Games, agents)

	log.Info().Msgf("completed %s experiment", e.Name)

	if err := store(dir, e, result); err != nil {
		return nil, err
	}
	return result, nil
}

func store(dir string, e Experiment, result *Result) error {
	writer, err := metrics.NewWriter(dir, e.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	result.Dir = writer.Dir()

	if err := writer.WriteAgentConfigs(e.Configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(result.Games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	if err := writer.WriteSummaries(result.Summaries); err != nil {
		return fmt.Errorf("failed to write matchup summaries: %w", err)
	}
	log.Info().Msgf("stored experiment records in %s", result.Dir)

	return report.WriteFile(filepath.Join(result.Dir, "report.html"), func(w io.Writer) error {
		return report.WriteExperiment(w, e.Name, result.Summaries, result.Moves)
	})
}

// runGame plays one game with seats[0] as player 1. Seeded configs get a fresh seed per game.
func runGame(ctx context.Context, gameName string, seats [2]metrics.AgentConfig, gameID uint64) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	board, err := game.New(gameName)
	if err != nil {
		return game.InProgress, metrics.GameMetric{}, nil, err
	}

	agents := make([]agent.Agent, len(seats))
	for i, config := range seats {
		if config.Seed != 0 {
			config.Seed += gameID << 16
		}
		a, err := agent.New(config)
		if err != nil {
			return game.InProgress, metrics.GameMetric{}, nil, err
		}
		agents[i] = a
	}

	return engine.LocalEngine(board, agents).Run(ctx)
}
