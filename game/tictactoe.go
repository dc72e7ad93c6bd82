package game

import "fmt"

const (
	tttSize  = 3
	tttToWin = 3
)

// TicTacToeMove places a mark at (X, Y).
type TicTacToeMove struct {
	X, Y int
}

func (m TicTacToeMove) String() string {
	return fmt.Sprintf("(%d, %d)", m.X, m.Y)
}

// TicTacToe is a 3x3 board where three in a row wins.
type TicTacToe struct {
	grid    Grid
	current int
	winner  int
}

// NewTicTacToe returns an empty board with player 1 to move.
func NewTicTacToe() *TicTacToe {
	return &TicTacToe{
		grid:    NewGrid(tttSize, tttSize),
		current: 1,
		winner:  InProgress,
	}
}

func (b *TicTacToe) Duplicate() Board {
	return &TicTacToe{
		grid:    b.grid.Clone(),
		current: b.current,
		winner:  b.winner,
	}
}

func (b *TicTacToe) MakeMove(move Move) error {
	m, ok := move.(TicTacToeMove)
	if !ok {
		if p, isPtr := move.(*TicTacToeMove); isPtr && p != nil {
			m = *p
		} else {
			return fmt.Errorf("%w: %T is not a tic-tac-toe move", ErrInvalidMove, move)
		}
	}
	if b.winner != InProgress {
		return fmt.Errorf("%w: game is over, cannot play %v", ErrInvalidMove, m)
	}
	if !b.grid.InBounds(m.X, m.Y) {
		return fmt.Errorf("%w: %v is off the board", ErrInvalidMove, m)
	}
	if b.grid.Get(m.X, m.Y) != Empty {
		return fmt.Errorf("%w: move has already been made at %v", ErrInvalidMove, m)
	}

	b.grid.set(m.X, m.Y, b.current)
	b.winner = b.DetermineWinnerFrom(m)
	b.current = nextPlayer(b.current, b.PlayerCount())
	return nil
}

// PossibleMoves lists every empty cell in row-major order.
func (b *TicTacToe) PossibleMoves() []Move {
	moves := make([]Move, 0, tttSize*tttSize)
	for y := 0; y < tttSize; y++ {
		for x := 0; x < tttSize; x++ {
			if b.grid.Get(x, y) == Empty {
				moves = append(moves, TicTacToeMove{X: x, Y: y})
			}
		}
	}
	return moves
}

func (b *TicTacToe) DetermineWinner() int {
	return outcome(b.grid.ScanLines(tttToWin), b.grid)
}

func (b *TicTacToe) DetermineWinnerFrom(last Move) int {
	m, ok := last.(TicTacToeMove)
	if !ok {
		return b.DetermineWinner()
	}
	return outcome(b.grid.LineThrough(m.X, m.Y, tttToWin), b.grid)
}

func (b *TicTacToe) CurrentPlayer() int { return b.current }
func (b *TicTacToe) Winner() int        { return b.winner }
func (b *TicTacToe) PlayerCount() int   { return 2 }
func (b *TicTacToe) Cell(x, y int) int  { return b.grid.Get(x, y) }
func (b *TicTacToe) Width() int         { return tttSize }
func (b *TicTacToe) Height() int        { return tttSize }

func (b *TicTacToe) String() string {
	return b.grid.Render(true)
}

// outcome turns a line owner into a Winner value: the owner if any, Draw on a full grid,
// otherwise InProgress.
func outcome(lineOwner int, g Grid) int {
	if lineOwner != Empty {
		return lineOwner
	}
	if g.Full() {
		return Draw
	}
	return InProgress
}
