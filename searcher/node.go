package searcher

import (
	"math"
	"mcts/game"
	"sync"
	"sync/atomic"
)

// Node is one vertex of the search tree. Only the goroutine running Step writes to a node;
// statistics are atomics and children are guarded so other goroutines can read a slightly
// stale but consistent view.
type Node struct {
	id     int
	depth  int
	parent *Node // non-owning, used for backpropagation
	move   game.Move
	mover  int
	board  game.Board

	unexpanded []game.Move // written by the stepping goroutine only
	pending    atomic.Int64

	mu       sync.RWMutex
	children []*Node

	visits   atomic.Int64
	score    atomic.Uint64 // float64 bits
	outcomes []atomic.Int64
}

func newNode(parent *Node, move game.Move, board game.Board) *Node {
	n := &Node{
		parent:   parent,
		move:     move,
		board:    board,
		outcomes: make([]atomic.Int64, board.PlayerCount()+1),
	}
	if parent != nil {
		n.depth = parent.depth + 1
		n.mover = parent.board.CurrentPlayer()
	} else {
		n.mover = game.PreviousPlayer(board.CurrentPlayer(), board.PlayerCount())
	}
	if board.Winner() == game.InProgress {
		n.unexpanded = board.PossibleMoves()
	}
	n.pending.Store(int64(len(n.unexpanded)))
	return n
}

func (n *Node) ID() int    { return n.id }
func (n *Node) Depth() int { return n.depth }

// Parent returns nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Move returns the move that led from the parent to this node, nil for the root.
func (n *Node) Move() game.Move { return n.move }

// Mover is the player who made Move; scores at this node are from that player's perspective.
func (n *Node) Mover() int { return n.mover }

// Board returns the position at this node. Callers must not mutate it; Duplicate it first.
func (n *Node) Board() game.Board { return n.board }

func (n *Node) Winner() int    { return n.board.Winner() }
func (n *Node) Terminal() bool { return n.board.Winner() != game.InProgress }

// Pending returns the number of legal moves not expanded yet.
func (n *Node) Pending() int { return int(n.pending.Load()) }

func (n *Node) Visits() int { return int(n.visits.Load()) }

// Score is the accumulated reward of the mover over all visits.
func (n *Node) Score() float64 { return math.Float64frombits(n.score.Load()) }

// WinRate returns Score/Visits, or 0 for an unvisited node.
func (n *Node) WinRate() float64 {
	visits := n.Visits()
	if visits == 0 {
		return 0
	}
	return n.Score() / float64(visits)
}

// Outcomes counts rollout results through this node, indexed by winner (game.Draw is 0).
func (n *Node) Outcomes() []int {
	counts := make([]int, len(n.outcomes))
	for i := range n.outcomes {
		counts[i] = int(n.outcomes[i].Load())
	}
	return counts
}

// Children returns a snapshot of the expanded children in expansion order.
func (n *Node) Children() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()

	children := make([]*Node, len(n.children))
	copy(children, n.children)
	return children
}

func (n *Node) expandable() bool {
	return len(n.unexpanded) > 0
}

func (n *Node) addChild(child *Node) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.children = append(n.children, child)
	n.unexpanded = n.unexpanded[1:]
	n.pending.Store(int64(len(n.unexpanded)))
}

// pickChild returns the child with the highest UCT score, the first unvisited child if any,
// or nil when there are no children. Ties keep the earliest child.
func (n *Node) pickChild(cSquared float64) *Node {
	if len(n.children) == 0 {
		return nil
	}
	visits := n.Visits()
	if visits == 0 {
		panic("node has children but no visits")
	}

	policy := newUCT(cSquared, float64(visits))
	var best *Node
	maxScore := math.Inf(-1)
	for _, child := range n.children {
		score := policy.evaluate(child.Score(), float64(child.Visits()))
		if score == math.Inf(1) {
			return child
		}
		if score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best
}

// Backup records one rollout result and returns the parent to continue with.
func (n *Node) Backup(winner int, winWeight float64) *Node {
	n.visits.Add(1)
	n.score.Store(math.Float64bits(n.Score() + reward(winner, n.mover, winWeight)))
	if winner >= 0 && winner < len(n.outcomes) {
		n.outcomes[winner].Add(1)
	}
	return n.parent
}

func reward(winner, mover int, winWeight float64) float64 {
	switch winner {
	case mover:
		return winWeight
	case game.Draw:
		return winWeight / 2
	default:
		return Loss
	}
}
