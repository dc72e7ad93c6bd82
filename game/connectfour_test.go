package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectFourMakeMove(t *testing.T) {
	t.Run("discs stack from the bottom and the move learns its row", func(t *testing.T) {
		b := NewConnectFour()
		first := NewConnectFourMove(3)
		second := NewConnectFourMove(3)

		play(t, b, first, second)

		require.Equal(t, 0, first.Row, "First disc should land on row 0")
		require.Equal(t, 1, second.Row, "Second disc should land on row 1")
		require.Equal(t, 1, b.Cell(3, 0))
		require.Equal(t, 2, b.Cell(3, 1))
	})

	t.Run("full column is rejected without changing the board", func(t *testing.T) {
		b := NewConnectFour()
		// Alternate players in column 0 without making four in a row.
		for i := 0; i < c4Rows; i++ {
			play(t, b, NewConnectFourMove(0))
		}
		before := b.String()
		player := b.CurrentPlayer()

		move := NewConnectFourMove(0)
		err := b.MakeMove(move)

		require.ErrorIs(t, err, ErrInvalidMove, "Full column should be an invalid move")
		require.Equal(t, Unplaced, move.Row, "Rejected move should not learn a row")
		require.Equal(t, player, b.CurrentPlayer(), "Current player should not change")
		require.Equal(t, InProgress, b.Winner(), "Winner should not change")
		require.Equal(t, before, b.String(), "Grid should not change")
		require.Len(t, b.PossibleMoves(), c4Columns-1, "Full column should not be offered")
	})

	t.Run("out of range column is rejected", func(t *testing.T) {
		b := NewConnectFour()

		require.ErrorIs(t, b.MakeMove(NewConnectFourMove(-1)), ErrInvalidMove)
		require.ErrorIs(t, b.MakeMove(NewConnectFourMove(c4Columns)), ErrInvalidMove)
		require.ErrorIs(t, b.MakeMove(TicTacToeMove{0, 0}), ErrInvalidMove)
	})

	t.Run("horizontal win", func(t *testing.T) {
		b := NewConnectFour()
		for column := 0; column < 3; column++ {
			play(t, b, NewConnectFourMove(column), NewConnectFourMove(column))
		}
		play(t, b, NewConnectFourMove(3))

		require.Equal(t, 1, b.Winner(), "Four across the bottom row should win")
		require.Equal(t, 1, b.DetermineWinner(), "Full scan should agree")
	})

	t.Run("vertical win", func(t *testing.T) {
		b := NewConnectFour()
		for i := 0; i < 3; i++ {
			play(t, b, NewConnectFourMove(6), NewConnectFourMove(5))
		}
		play(t, b, NewConnectFourMove(6))

		require.Equal(t, 1, b.Winner(), "Four stacked in column 6 should win")
	})

	t.Run("rising diagonal win completed in the middle", func(t *testing.T) {
		b := NewConnectFour()
		play(t, b,
			NewConnectFourMove(0), // 1 at (0,0)
			NewConnectFourMove(1), // 2 at (1,0)
			NewConnectFourMove(1), // 1 at (1,1)
			NewConnectFourMove(2), // 2 at (2,0)
			NewConnectFourMove(3), // 1 at (3,0)
			NewConnectFourMove(2), // 2 at (2,1)
			NewConnectFourMove(3), // 1 at (3,1)
			NewConnectFourMove(3), // 2 at (3,2)
			NewConnectFourMove(3), // 1 at (3,3)
			NewConnectFourMove(6), // 2 at (6,0)
		)
		require.Equal(t, InProgress, b.Winner())

		play(t, b, NewConnectFourMove(2)) // 1 at (2,2)

		require.Equal(t, 1, b.Winner(), "Diagonal (0,0)-(3,3) should win")
		require.Equal(t, 1, b.DetermineWinner(), "Full scan should agree")
	})

	t.Run("falling diagonal win", func(t *testing.T) {
		b := NewConnectFour()
		play(t, b,
			NewConnectFourMove(3), // 1 at (3,0)
			NewConnectFourMove(2), // 2 at (2,0)
			NewConnectFourMove(2), // 1 at (2,1)
			NewConnectFourMove(1), // 2 at (1,0)
			NewConnectFourMove(1), // 1 at (1,1)
			NewConnectFourMove(0), // 2 at (0,0)
			NewConnectFourMove(1), // 1 at (1,2)
			NewConnectFourMove(0), // 2 at (0,1)
			NewConnectFourMove(0), // 1 at (0,2)
			NewConnectFourMove(6), // 2 at (6,0)
		)
		require.Equal(t, InProgress, b.Winner())

		play(t, b, NewConnectFourMove(0)) // 1 at (0,3)

		require.Equal(t, 1, b.Winner(), "Diagonal (0,3)-(3,0) should win")
	})
}

func TestConnectFourDuplicate(t *testing.T) {
	b := NewConnectFour()
	play(t, b, NewConnectFourMove(0))

	clone := b.Duplicate()
	play(t, clone, NewConnectFourMove(0), NewConnectFourMove(4))

	require.Equal(t, Empty, b.Cell(0, 1), "Original should not see moves made on the copy")
	require.Equal(t, Empty, b.Cell(4, 0), "Original should not see moves made on the copy")
	require.Equal(t, 2, b.CurrentPlayer())
	require.Equal(t, 2, clone.CurrentPlayer(), "Copy inherits player 2 and then plays two moves")
}

func TestUnapplied(t *testing.T) {
	t.Run("connect four move is copied without its row", func(t *testing.T) {
		m := NewConnectFourMove(3)
		play(t, NewConnectFour(), m)

		fresh := Unapplied(m)

		require.NotSame(t, m, fresh)
		require.Equal(t, NewConnectFourMove(3), fresh)
		require.Equal(t, 0, m.Row, "Applied move should keep its row")

		b := NewConnectFour()
		play(t, b, NewConnectFourMove(3), fresh)
		require.Equal(t, 1, fresh.(*ConnectFourMove).Row)
		require.Equal(t, 0, m.Row, "Applying the copy should not write to the original")
	})

	t.Run("value moves are returned as is", func(t *testing.T) {
		require.Equal(t, TicTacToeMove{X: 1, Y: 2}, Unapplied(TicTacToeMove{X: 1, Y: 2}))
		require.Equal(t, OthelloPass, Unapplied(OthelloPass))
	})
}

func TestConnectFourString(t *testing.T) {
	b := NewConnectFour()
	play(t, b, NewConnectFourMove(0), NewConnectFourMove(0))

	want := "\n" +
		"0 0 0 0 0 0 0 \n" +
		"0 0 0 0 0 0 0 \n" +
		"0 0 0 0 0 0 0 \n" +
		"0 0 0 0 0 0 0 \n" +
		"0 0 0 0 0 0 0 \n" +
		"2 0 0 0 0 0 0 \n" +
		"1 0 0 0 0 0 0 "
	require.Equal(t, want, b.String(), "Bottom row should be printed last")
}
