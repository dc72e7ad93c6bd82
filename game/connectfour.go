package game

import "fmt"

const (
	c4Columns = 7
	c4Rows    = 7
	c4ToWin   = 4
)

// Unplaced is the Row of a ConnectFourMove that has not been applied yet.
const Unplaced = -1

// ConnectFourMove drops a disc into Column. Row is filled in by MakeMove with the row the disc
// landed on, so moves are handled by pointer.
type ConnectFourMove struct {
	Column int
	Row    int
}

func NewConnectFourMove(column int) *ConnectFourMove {
	return &ConnectFourMove{Column: column, Row: Unplaced}
}

func (m *ConnectFourMove) Unapplied() Move {
	if m == nil {
		return m
	}
	return NewConnectFourMove(m.Column)
}

func (m *ConnectFourMove) String() string {
	if m.Row == Unplaced {
		return fmt.Sprintf("column %d", m.Column)
	}
	return fmt.Sprintf("column %d (row %d)", m.Column, m.Row)
}

// ConnectFour is a 7x7 gravity board where four in a row wins. Row 0 is the bottom.
type ConnectFour struct {
	grid    Grid
	current int
	winner  int
}

// NewConnectFour returns an empty board with player 1 to move.
func NewConnectFour() *ConnectFour {
	return &ConnectFour{
		grid:    NewGrid(c4Columns, c4Rows),
		current: 1,
		winner:  InProgress,
	}
}

func (b *ConnectFour) Duplicate() Board {
	return &ConnectFour{
		grid:    b.grid.Clone(),
		current: b.current,
		winner:  b.winner,
	}
}

func (b *ConnectFour) MakeMove(move Move) error {
	m, ok := move.(*ConnectFourMove)
	if !ok || m == nil {
		return fmt.Errorf("%w: %T is not a connect four move", ErrInvalidMove, move)
	}
	if b.winner != InProgress {
		return fmt.Errorf("%w: game is over, cannot play %v", ErrInvalidMove, m)
	}
	if m.Column < 0 || m.Column >= c4Columns {
		return fmt.Errorf("%w: column %d is out of bounds of the %d column wide game area",
			ErrInvalidMove, m.Column, c4Columns)
	}
	row := b.landingRow(m.Column)
	if row == Unplaced {
		return fmt.Errorf("%w: tried to make a move in full column %d", ErrInvalidMove, m.Column)
	}

	b.grid.set(m.Column, row, b.current)
	m.Row = row
	b.winner = b.DetermineWinnerFrom(m)
	b.current = nextPlayer(b.current, b.PlayerCount())
	return nil
}

// landingRow returns the lowest empty row of column, or Unplaced when it is full.
func (b *ConnectFour) landingRow(column int) int {
	for y := 0; y < c4Rows; y++ {
		if b.grid.Get(column, y) == Empty {
			return y
		}
	}
	return Unplaced
}

// PossibleMoves lists every column that is not full, left to right.
func (b *ConnectFour) PossibleMoves() []Move {
	moves := make([]Move, 0, c4Columns)
	for column := 0; column < c4Columns; column++ {
		if b.landingRow(column) != Unplaced {
			moves = append(moves, NewConnectFourMove(column))
		}
	}
	return moves
}

func (b *ConnectFour) DetermineWinner() int {
	return outcome(b.grid.ScanLines(c4ToWin), b.grid)
}

// DetermineWinnerFrom checks the 4 lines through the last disc, at most 3 cells either side,
// instead of every starting cell on the board.
func (b *ConnectFour) DetermineWinnerFrom(last Move) int {
	m, ok := last.(*ConnectFourMove)
	if !ok || m == nil || m.Row == Unplaced {
		return b.DetermineWinner()
	}
	return outcome(b.grid.LineThrough(m.Column, m.Row, c4ToWin), b.grid)
}

func (b *ConnectFour) CurrentPlayer() int { return b.current }
func (b *ConnectFour) Winner() int        { return b.winner }
func (b *ConnectFour) PlayerCount() int   { return 2 }
func (b *ConnectFour) Cell(x, y int) int  { return b.grid.Get(x, y) }
func (b *ConnectFour) Width() int         { return c4Columns }
func (b *ConnectFour) Height() int        { return c4Rows }

func (b *ConnectFour) String() string {
	return b.grid.Render(false)
}
