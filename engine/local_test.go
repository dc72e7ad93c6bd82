package engine

import (
	"context"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher/agent"
	"testing"

	"github.com/stretchr/testify/require"
)

type scriptedAgent struct {
	moves []game.Move
	next  int
}

func (a *scriptedAgent) FindMove(context.Context, game.Board) (game.Move, metrics.SearchMetric, error) {
	move := a.moves[a.next]
	a.next++
	return move, metrics.SearchMetric{Episodes: 1}, nil
}

func script(moves ...game.Move) *scriptedAgent {
	return &scriptedAgent{moves: moves}
}

func searchAgents(t *testing.T, iterations int) []agent.Agent {
	agents := make([]agent.Agent, 2)
	for i := range agents {
		a, err := agent.New(metrics.AgentConfig{ID: i + 1, Iterations: iterations, Seed: uint64(i + 1)})
		require.NoError(t, err)
		agents[i] = a
	}
	return agents
}

func TestLocalEngine(t *testing.T) {
	t.Run("panics when agents and players differ", func(t *testing.T) {
		require.Panics(t, func() {
			LocalEngine(game.NewTicTacToe(), []agent.Agent{script()})
		})
	})

	t.Run("scripted game records every move", func(t *testing.T) {
		e := LocalEngine(game.NewTicTacToe(), []agent.Agent{
			script(game.TicTacToeMove{X: 0, Y: 0}, game.TicTacToeMove{X: 0, Y: 1}, game.TicTacToeMove{X: 0, Y: 2}),
			script(game.TicTacToeMove{X: 1, Y: 0}, game.TicTacToeMove{X: 1, Y: 1}),
		})

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, 1, winner)
		require.Equal(t, 1, gameMetric.StartingPlayer)
		require.Equal(t, 1, gameMetric.Winner)
		require.Equal(t, 5, gameMetric.TotalMoves)
		require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))
		require.Len(t, moveMetrics, 5)
		for i, m := range moveMetrics {
			require.Equal(t, i+1, m.Step)
			require.Equal(t, i%2+1, m.Player, "Players should alternate")
		}

		updates := e.Updates()
		require.Len(t, updates, 5)
		require.Equal(t, game.TicTacToeMove{X: 0, Y: 2}, updates[4].Move)
		require.Equal(t, 1, updates[4].Board.Winner())
		require.Equal(t, game.InProgress, updates[3].Board.Winner(), "Snapshots should not share state")
	})

	t.Run("illegal move stops the game", func(t *testing.T) {
		e := LocalEngine(game.NewTicTacToe(), []agent.Agent{
			script(game.TicTacToeMove{X: 1, Y: 1}),
			script(game.TicTacToeMove{X: 1, Y: 1}),
		})

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.ErrorIs(t, err, game.ErrInvalidMove)
		require.Equal(t, game.InProgress, winner)
		require.Len(t, moveMetrics, 1)
		require.Equal(t, 1, gameMetric.TotalMoves)
	})

	t.Run("turn cap leaves the game undecided", func(t *testing.T) {
		e := LocalEngine(game.NewConnectFour(), searchAgents(t, 20))
		e.MaxTurns = 3

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, game.InProgress, winner)
		require.Equal(t, game.InProgress, gameMetric.Winner)
		require.Len(t, moveMetrics, 3)
	})

	t.Run("search agents finish a game", func(t *testing.T) {
		board := game.NewTicTacToe()
		e := LocalEngine(board, searchAgents(t, 300))

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Contains(t, []int{game.Draw, 1, 2}, winner)
		require.Equal(t, board.Winner(), winner)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		for _, m := range moveMetrics {
			require.Equal(t, 300, m.Episodes)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := LocalEngine(game.NewTicTacToe(), searchAgents(t, 10))

		_, _, _, err := e.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}
