package engine

import (
	"context"
	"fmt"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/meta"
	"mcts/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

type Engine struct {
	Board    game.Board
	Agents   []agent.Agent // Agents[i] plays for player i+1
	MaxTurns int

	updates []Update
}

// Update is one move played on the engine's board.
type Update struct {
	Step   int
	Player int
	Move   game.Move
	Board  game.Board // Position after the move
}

func LocalEngine(board game.Board, agents []agent.Agent) *Engine {
	if board.PlayerCount() != len(agents) {
		panic("number of players does not match number of agents")
	}
	if len(agents) < 2 {
		panic("need at least two players")
	}

	return &Engine{
		Board:    board,
		Agents:   agents,
		MaxTurns: meta.MAX_TURNS,
	}
}

// Run plays until the board is decided or MaxTurns moves were made. The winner is
// game.InProgress when the turn cap stopped the game.
func (e *Engine) Run(ctx context.Context) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Board.CurrentPlayer(),
		Winner:         game.InProgress,
		StartTime:      time.Now(),
	}
	log.Info().Msgf("player %d is starting", gameMetric.StartingPlayer)

	var moveMetrics []metrics.MoveMetric
	finish := func() {
		gameMetric.EndTime = time.Now()
		gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
		gameMetric.TotalMoves = len(moveMetrics)
	}

	// Loop until there's a winner
	for turn := 1; e.Board.Winner() == game.InProgress && turn <= e.MaxTurns; turn++ {
		player := e.Board.CurrentPlayer()
		move, searchMetric, err := e.Agents[player-1].FindMove(ctx, e.Board)
		if err != nil {
			finish()
			return game.InProgress, gameMetric, moveMetrics, fmt.Errorf("turn %d, player %d: %w", turn, player, err)
		}
		if err := e.Board.MakeMove(move); err != nil {
			finish()
			return game.InProgress, gameMetric, moveMetrics, fmt.Errorf("turn %d, player %d played %v: %w", turn, player, move, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player,
			Move:         move.String(),
			SearchMetric: searchMetric,
		})
		e.updates = append(e.updates, Update{Step: turn, Player: player, Move: move, Board: e.Board.Duplicate()})
		log.Debug().Msgf("turn %d: player %d played %v after %d episodes", turn, player, move, searchMetric.Episodes)
	}

	gameMetric.Winner = e.Board.Winner()
	finish()
	if gameMetric.Winner == game.InProgress {
		log.Warn().Msgf("stopped after %d turns (no winner yet)", e.MaxTurns)
	} else {
		log.Info().Msgf("game ended after %d moves, winner %d", gameMetric.TotalMoves, gameMetric.Winner)
	}
	return gameMetric.Winner, gameMetric, moveMetrics, nil
}

// Updates returns the moves played so far in order.
func (e *Engine) Updates() []Update {
	return e.updates
}
