package game

import (
	"errors"
	"fmt"
)

// Outcome sentinels reported by Board.Winner. Any positive value is the winning player.
const (
	InProgress = -1
	Draw       = 0
)

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrUnknownGame = errors.New("unknown game")
)

// Move identifies a single ply. Moves belong to the game that enumerated them.
type Move interface {
	fmt.Stringer
}

// Board is the contract the searcher consumes. A board is only ever changed through MakeMove,
// and the searcher calls Duplicate before branching.
type Board interface {
	CurrentPlayer() int
	PlayerCount() int
	// Winner returns InProgress, Draw or the winning player. It is set once and never reverts.
	Winner() int
	Duplicate() Board
	// MakeMove applies move for the current player. On error the board is left untouched.
	MakeMove(move Move) error
	PossibleMoves() []Move
	// DetermineWinner scans the whole board and reports the outcome without storing it.
	DetermineWinner() int
	// DetermineWinnerFrom reaches the same outcome as DetermineWinner by looking only at the
	// cells around the last move played.
	DetermineWinnerFrom(last Move) int
	String() string
}

// Completable is implemented by moves that MakeMove fills in, such as the landing row of a
// connect four disc.
type Completable interface {
	Move
	// Unapplied returns a new move equal to this one as it was before MakeMove completed it.
	Unapplied() Move
}

// Unapplied returns a copy of move that can be applied to another board without writing to
// move. Moves that MakeMove never writes to are returned as is.
func Unapplied(move Move) Move {
	if c, ok := move.(Completable); ok {
		return c.Unapplied()
	}
	return move
}

// GridBoard is implemented by boards backed by a Grid.
type GridBoard interface {
	Board
	Cell(x, y int) int
	Width() int
	Height() int
}

// Names lists the games New can create, in menu order.
var Names = []string{"tictactoe", "connectfour", "othello"}

// New returns an empty board for the named game.
func New(name string) (Board, error) {
	switch name {
	case "tictactoe", "ttt":
		return NewTicTacToe(), nil
	case "connectfour", "c4":
		return NewConnectFour(), nil
	case "othello":
		return NewOthello(), nil
	default:
		return nil, fmt.Errorf("%w: %q (choose one of %v)", ErrUnknownGame, name, Names)
	}
}

// nextPlayer returns the player after current, cycling through 1..count.
func nextPlayer(current, count int) int {
	return current%count + 1
}

// PreviousPlayer returns the player who moved before current.
func PreviousPlayer(current, count int) int {
	return (current+count-2)%count + 1
}
