package searcher

import (
	"fmt"
	"math"
	"mcts/experiments/metrics"
	"mcts/game"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(s *Search)

// Search grows a Monte Carlo search tree one Step at a time. Step must be driven by a single
// goroutine; Finish and every read accessor are safe to call from others.
type Search struct {
	cSquared   float64
	winWeight  float64
	iterations int
	rng        *rand.Rand
	metrics    metrics.Collector

	progressInterval time.Duration
	progress         func(Sample)

	root *Node

	mu    sync.RWMutex
	nodes []*Node
	count atomic.Int64

	steps    atomic.Int64
	finished atomic.Bool

	samplesMu sync.Mutex
	samples   []Sample
}

// WithExploration sets the UCT exploration constant C.
func WithExploration(c float64) Option {
	return func(s *Search) {
		if c > 0 {
			s.cSquared = c * c
		}
	}
}

// WithWinWeight sets the reward for a win; a draw is worth half of it.
func WithWinWeight(weight float64) Option {
	return func(s *Search) {
		if weight > 0 {
			s.winWeight = weight
		}
	}
}

// WithSeed makes rollouts reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Search) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithIterations finishes the search after the given number of steps.
func WithIterations(iterations int) Option {
	return func(s *Search) {
		if iterations > 0 {
			s.iterations = iterations
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *Search) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

// WithProgress samples the tree size every interval while RunFor is running.
func WithProgress(interval time.Duration, fn func(Sample)) Option {
	return func(s *Search) {
		if interval > 0 {
			s.progressInterval = interval
			s.progress = fn
		}
	}
}

// New builds a search rooted at board. The board is duplicated so the caller keeps ownership
// of its copy.
func New(board game.Board, options ...Option) *Search {
	s := &Search{ // Default values
		cSquared:  CSquared,
		winWeight: Win,
		rng:       rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}

	s.root = newNode(nil, nil, board.Duplicate())
	s.register(s.root)
	s.metrics.Start()
	return s
}

func (s *Search) register(node *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node.id = len(s.nodes)
	s.nodes = append(s.nodes, node)
	s.count.Add(1)
}

// Step runs one selection, expansion, simulation and backpropagation iteration. It creates at
// most one node. Once the search is finished Step does nothing and returns nil. An illegal move
// met while expanding or simulating is returned and no statistics are updated.
func (s *Search) Step() error {
	if s.finished.Load() {
		return nil
	}

	leaf, err := s.selectThenExpand()
	if err != nil {
		return err
	}

	var winner int
	if leaf.Terminal() {
		winner = leaf.Winner()
	} else {
		var plies int
		winner, plies, err = s.rollout(leaf.board)
		if err != nil {
			return fmt.Errorf("simulating from node %d: %w", leaf.id, err)
		}
		s.metrics.AddRollout(plies)
	}
	s.backup(leaf, winner)

	s.metrics.AddEpisode()
	if steps := s.steps.Add(1); s.iterations > 0 && steps >= int64(s.iterations) {
		s.Finish()
	}
	return nil
}

// selectThenExpand descends by UCT while nodes are fully expanded, then expands one move. A
// terminal node is returned as is so its stored outcome can be backed up directly.
func (s *Search) selectThenExpand() (*Node, error) {
	node := s.root
	for !node.Terminal() && !node.expandable() {
		child := node.pickChild(s.cSquared)
		if child == nil {
			return nil, fmt.Errorf("selecting from node %d:%s: %w", node.id, node.board, ErrNoMoves)
		}
		node = child
	}

	if node.Terminal() {
		s.metrics.AddTerminalHit()
		return node, nil
	}

	child, err := s.expand(node)
	if err != nil {
		return nil, fmt.Errorf("expanding node %d: %w", node.id, err)
	}
	return child, nil
}

func (s *Search) expand(parent *Node) (*Node, error) {
	// MakeMove may complete the move in place, so it runs before the child is reachable
	move := parent.unexpanded[0]
	board := parent.board.Duplicate()
	if err := board.MakeMove(move); err != nil {
		return nil, err
	}

	child := newNode(parent, move, board)
	// The id is assigned before readers can reach the child through its parent
	s.register(child)
	parent.addChild(child)
	s.metrics.AddExpansion()
	return child, nil
}

// rollout plays uniformly random moves on a scratch copy of board until the game is decided.
func (s *Search) rollout(board game.Board) (winner int, plies int, err error) {
	scratch := board.Duplicate()
	for scratch.Winner() == game.InProgress {
		moves := scratch.PossibleMoves()
		if len(moves) == 0 {
			return game.InProgress, plies, fmt.Errorf("undecided board:%s: %w", scratch, ErrNoMoves)
		}
		move := moves[s.rng.Intn(len(moves))] // Random rollout policy
		if err := scratch.MakeMove(move); err != nil {
			return game.InProgress, plies, fmt.Errorf("rollout ply %d: %w", plies+1, err)
		}
		plies++
	}
	return scratch.Winner(), plies, nil
}

func (s *Search) backup(leaf *Node, winner int) {
	node := leaf
	for node != nil {
		node = node.Backup(winner, s.winWeight)
	}
}

// Finish asks the search to stop. It is idempotent and safe to call from any goroutine; a
// Step already in progress completes first.
func (s *Search) Finish() {
	if s.finished.CompareAndSwap(false, true) {
		log.Debug().Msgf("search finish requested after %d iterations with %d nodes", s.Iterations(), s.UniqueNodes())
	}
}

func (s *Search) Finished() bool { return s.finished.Load() }

func (s *Search) Root() *Node { return s.root }

// Iterations returns the number of completed steps.
func (s *Search) Iterations() int { return int(s.steps.Load()) }

// UniqueNodes returns the number of nodes created so far, the root included.
func (s *Search) UniqueNodes() int { return int(s.count.Load()) }

// Nodes returns every node in creation order. The slice is a snapshot; nodes created after the
// call are not included.
func (s *Search) Nodes() []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]*Node, len(s.nodes))
	copy(nodes, s.nodes)
	return nodes
}

// Newest returns the most recently created node.
func (s *Search) Newest() *Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.nodes[len(s.nodes)-1]
}

// Node returns the node with the given creation index.
func (s *Search) Node(id int) (*Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id < 0 || id >= len(s.nodes) {
		return nil, false
	}
	return s.nodes[id], true
}

// BestMove returns the move of the most visited root child. The move is detached from the
// tree, so applying it to another board leaves the node untouched.
func (s *Search) BestMove() (game.Move, error) {
	best := mostVisited(s.root.Children())
	if best == nil {
		return nil, fmt.Errorf("root has no expanded moves: %w", ErrNoMoves)
	}
	return game.Unapplied(best.move), nil
}

func mostVisited(children []*Node) *Node {
	var best *Node
	maxVisits := -1
	for _, child := range children {
		if v := child.Visits(); v > maxVisits {
			maxVisits = v
			best = child
		}
	}
	return best
}

// Policy returns the share of root visits each expanded move received.
func (s *Search) Policy() map[game.Move]float64 {
	children := s.root.Children()
	total := 0
	for _, child := range children {
		total += child.Visits()
	}

	policy := make(map[game.Move]float64, len(children))
	for _, child := range children {
		if total == 0 {
			policy[child.move] = 0
			continue
		}
		policy[child.move] = float64(child.Visits()) / float64(total)
	}
	return policy
}

// Exploration returns the UCT exploration constant C.
func (s *Search) Exploration() float64 { return math.Sqrt(s.cSquared) }

// Metrics reports what the search has done so far.
func (s *Search) Metrics() metrics.SearchMetric {
	metric := s.metrics.Complete()
	metric.Nodes = s.UniqueNodes()
	return metric
}
