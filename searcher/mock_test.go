package searcher

import (
	"fmt"
	"math"
	"mcts/game"
)

type mockMove struct {
	id int
}

func (m mockMove) String() string {
	return fmt.Sprintf("mock %d", m.id)
}

// mockBoard is decided after a fixed number of plies, with a fixed result.
type mockBoard struct {
	player    int
	winner    int
	width     int // moves offered per ply
	remaining int // plies until the game is decided
	result    int // winner once decided
	illegal   bool
	played    []game.Move
}

func newMockBoard(width, plies, result int) *mockBoard {
	b := &mockBoard{player: 1, winner: game.InProgress, width: width, remaining: plies, result: result}
	if plies == 0 {
		b.winner = result
	}
	return b
}

func (b *mockBoard) CurrentPlayer() int { return b.player }
func (b *mockBoard) PlayerCount() int   { return 2 }
func (b *mockBoard) Winner() int        { return b.winner }

func (b *mockBoard) Duplicate() game.Board {
	clone := *b
	clone.played = append([]game.Move(nil), b.played...)
	return &clone
}

func (b *mockBoard) MakeMove(move game.Move) error {
	if b.illegal {
		return fmt.Errorf("%w: mock rejects %v", game.ErrInvalidMove, move)
	}
	if b.winner != game.InProgress {
		return fmt.Errorf("%w: game is over", game.ErrInvalidMove)
	}
	b.played = append(b.played, move)
	b.remaining--
	if b.remaining <= 0 {
		b.winner = b.result
	}
	b.player = b.player%2 + 1
	return nil
}

func (b *mockBoard) PossibleMoves() []game.Move {
	if b.winner != game.InProgress {
		return nil
	}
	moves := make([]game.Move, b.width)
	for i := range moves {
		moves[i] = mockMove{id: i}
	}
	return moves
}

func (b *mockBoard) DetermineWinner() int               { return b.winner }
func (b *mockBoard) DetermineWinnerFrom(game.Move) int { return b.winner }
func (b *mockBoard) String() string                    { return fmt.Sprintf(" mock%v", b.played) }

// statNode returns a detached node with preset statistics.
func statNode(mover int, visits int, score float64) *Node {
	n := &Node{mover: mover, board: newMockBoard(1, 1, 1)}
	n.visits.Store(int64(visits))
	n.score.Store(math.Float64bits(score))
	return n
}
