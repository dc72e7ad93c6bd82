package game

import "fmt"

const othelloSize = 8

var compass = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

// OthelloMove places a disc at (X, Y), or passes the turn when Pass is set.
type OthelloMove struct {
	X, Y int
	Pass bool
}

// OthelloPass is the only legal move when the player to move has no placement but the
// opponent does.
var OthelloPass = OthelloMove{Pass: true}

func (m OthelloMove) String() string {
	if m.Pass {
		return "pass"
	}
	return fmt.Sprintf("(%d, %d)", m.X, m.Y)
}

// Othello is an 8x8 board where a placement must flank and flip opposing discs. The game ends
// when neither player can place and the player owning more discs wins.
type Othello struct {
	grid    Grid
	current int
	winner  int
}

// NewOthello returns the standard opening position with player 1 to move.
func NewOthello() *Othello {
	b := &Othello{
		grid:    NewGrid(othelloSize, othelloSize),
		current: 1,
		winner:  InProgress,
	}
	mid := othelloSize / 2
	b.grid.set(mid-1, mid-1, 2)
	b.grid.set(mid, mid, 2)
	b.grid.set(mid-1, mid, 1)
	b.grid.set(mid, mid-1, 1)
	return b
}

func (b *Othello) Duplicate() Board {
	return &Othello{
		grid:    b.grid.Clone(),
		current: b.current,
		winner:  b.winner,
	}
}

func (b *Othello) MakeMove(move Move) error {
	m, ok := move.(OthelloMove)
	if !ok {
		return fmt.Errorf("%w: %T is not an othello move", ErrInvalidMove, move)
	}
	if b.winner != InProgress {
		return fmt.Errorf("%w: game is over, cannot play %v", ErrInvalidMove, m)
	}

	opponent := nextPlayer(b.current, b.PlayerCount())
	if m.Pass {
		if b.canPlace(b.current) {
			return fmt.Errorf("%w: player %d cannot pass with placements available", ErrInvalidMove, b.current)
		}
		b.current = opponent
		return nil
	}

	if !b.grid.InBounds(m.X, m.Y) {
		return fmt.Errorf("%w: %v is off the board", ErrInvalidMove, m)
	}
	if b.grid.Get(m.X, m.Y) != Empty {
		return fmt.Errorf("%w: move has already been made at %v", ErrInvalidMove, m)
	}
	flips := b.flips(m.X, m.Y, b.current)
	if len(flips) == 0 {
		return fmt.Errorf("%w: %v flips no discs", ErrInvalidMove, m)
	}

	b.grid.set(m.X, m.Y, b.current)
	for _, f := range flips {
		b.grid.set(f[0], f[1], b.current)
	}
	b.winner = b.DetermineWinnerFrom(m)
	b.current = opponent
	return nil
}

// flips returns the opposing discs captured by player placing at (x, y).
func (b *Othello) flips(x, y, player int) [][2]int {
	var captured [][2]int
	for _, d := range compass {
		var line [][2]int
		cx, cy := x+d[0], y+d[1]
		for b.grid.InBounds(cx, cy) {
			owner := b.grid.Get(cx, cy)
			if owner == Empty {
				line = nil
				break
			}
			if owner == player {
				break
			}
			line = append(line, [2]int{cx, cy})
			cx, cy = cx+d[0], cy+d[1]
		}
		if !b.grid.InBounds(cx, cy) {
			continue
		}
		captured = append(captured, line...)
	}
	return captured
}

func (b *Othello) placements(player int) []Move {
	var moves []Move
	for y := 0; y < othelloSize; y++ {
		for x := 0; x < othelloSize; x++ {
			if b.grid.Get(x, y) == Empty && len(b.flips(x, y, player)) > 0 {
				moves = append(moves, OthelloMove{X: x, Y: y})
			}
		}
	}
	return moves
}

func (b *Othello) canPlace(player int) bool {
	for y := 0; y < othelloSize; y++ {
		for x := 0; x < othelloSize; x++ {
			if b.grid.Get(x, y) == Empty && len(b.flips(x, y, player)) > 0 {
				return true
			}
		}
	}
	return false
}

// PossibleMoves lists placements in row-major order, or a single pass when only the opponent
// can place. It is empty once the game is decided.
func (b *Othello) PossibleMoves() []Move {
	if b.winner != InProgress {
		return nil
	}
	if moves := b.placements(b.current); len(moves) > 0 {
		return moves
	}
	if b.canPlace(nextPlayer(b.current, b.PlayerCount())) {
		return []Move{OthelloPass}
	}
	return nil
}

func (b *Othello) DetermineWinner() int {
	if b.canPlace(1) || b.canPlace(2) {
		return InProgress
	}
	ones, twos := b.grid.Count(1), b.grid.Count(2)
	switch {
	case ones > twos:
		return 1
	case twos > ones:
		return 2
	default:
		return Draw
	}
}

// DetermineWinnerFrom is the full check: the outcome depends on disc counts over the whole
// board, not on lines through the last move.
func (b *Othello) DetermineWinnerFrom(Move) int {
	return b.DetermineWinner()
}

func (b *Othello) CurrentPlayer() int { return b.current }
func (b *Othello) Winner() int        { return b.winner }
func (b *Othello) PlayerCount() int   { return 2 }
func (b *Othello) Cell(x, y int) int  { return b.grid.Get(x, y) }
func (b *Othello) Width() int         { return othelloSize }
func (b *Othello) Height() int        { return othelloSize }

func (b *Othello) String() string {
	return b.grid.Render(true)
}
