package main

import (
	"bytes"
	"context"
	"mcts/game"
	"mcts/searcher"
	"testing"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/stretchr/testify/require"
)

func TestRenderBoard(t *testing.T) {
	au := aurora.NewAurora(false)

	t.Run("tic-tac-toe is drawn top down", func(t *testing.T) {
		b := game.NewTicTacToe()
		require.NoError(t, b.MakeMove(game.TicTacToeMove{X: 0, Y: 0}))
		require.NoError(t, b.MakeMove(game.TicTacToeMove{X: 2, Y: 1}))

		require.Equal(t, "X . . \n. . O \n. . . \n", renderBoard(au, b))
	})

	t.Run("connect four is drawn bottom up", func(t *testing.T) {
		b := game.NewConnectFour()
		require.NoError(t, b.MakeMove(game.NewConnectFourMove(3)))

		lines := bytes.Split([]byte(renderBoard(au, b)), []byte("\n"))
		require.Equal(t, ". . . X . . . ", string(lines[6]), "Bottom row should be printed last")
		require.Equal(t, ". . . . . . . ", string(lines[0]))
	})
}

func TestPrintSummary(t *testing.T) {
	s := searcher.New(game.NewTicTacToe(), searcher.WithSeed(1), searcher.WithIterations(100))
	require.NoError(t, s.Run(context.Background()))

	var buf bytes.Buffer
	printSummary(&buf, aurora.NewAurora(false), s)

	best, err := s.BestMove()
	require.NoError(t, err)
	out := buf.String()
	require.Contains(t, out, "100 iterations")
	require.Contains(t, out, "best move: "+best.String())
}

func TestTrace(t *testing.T) {
	s := newSearch(game.NewTicTacToe(), config{iterations: 12, seed: 2})

	require.NoError(t, trace(aurora.NewAurora(false), s, 12))
	require.True(t, s.Finished())
	require.Equal(t, 12, s.Iterations())

	require.Error(t, trace(aurora.NewAurora(false), newSearch(game.NewTicTacToe(), config{}), 0))
}

func TestRunSearchInterrupted(t *testing.T) {
	au := aurora.NewAurora(false)

	t.Run("unbounded search stops on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		time.AfterFunc(20*time.Millisecond, cancel)

		require.NoError(t, runSearch(ctx, au, game.NewTicTacToe(), config{game: "tictactoe", seed: 3}))
	})

	t.Run("already cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, runSearch(ctx, au, game.NewConnectFour(), config{game: "connectfour", duration: time.Minute}))
	})
}
