package communication

import (
	"mcts/game"
	"mcts/searcher"
)

// Inspector abstracts the search the inspector serves. *searcher.Search implements it.
type Inspector interface {
	Root() *searcher.Node
	Node(id int) (*searcher.Node, bool)
	BestMove() (game.Move, error)
	Iterations() int
	UniqueNodes() int
	Finished() bool
	Finish()
}

type Status struct {
	Finished   bool   `json:"finished"`
	Iterations int    `json:"iterations"`
	Nodes      int    `json:"nodes"`
	RootVisits int    `json:"rootVisits"`
	BestMove   string `json:"bestMove,omitempty"`
}

type NodeView struct {
	ID       int     `json:"id"`
	Parent   int     `json:"parent"` // -1 for the root
	Depth    int     `json:"depth"`
	Move     string  `json:"move,omitempty"`
	Mover    int     `json:"mover"`
	Visits   int     `json:"visits"`
	Score    float64 `json:"score"`
	WinRate  float64 `json:"winRate"`
	Winner   int     `json:"winner"`
	Terminal bool    `json:"terminal"`
	Pending  int     `json:"pending"`
	Outcomes []int   `json:"outcomes"`
	Children []int   `json:"children"`
	Board    string  `json:"board"`
	Cells    [][]int `json:"cells,omitempty"` // cells[y][x], grid boards only
}

func StatusOf(s Inspector) Status {
	status := Status{
		Finished:   s.Finished(),
		Iterations: s.Iterations(),
		Nodes:      s.UniqueNodes(),
		RootVisits: s.Root().Visits(),
	}
	if move, err := s.BestMove(); err == nil {
		status.BestMove = move.String()
	}
	return status
}

func ViewOf(n *searcher.Node) NodeView {
	view := NodeView{
		ID:       n.ID(),
		Parent:   -1,
		Depth:    n.Depth(),
		Mover:    n.Mover(),
		Visits:   n.Visits(),
		Score:    n.Score(),
		WinRate:  n.WinRate(),
		Winner:   n.Winner(),
		Terminal: n.Terminal(),
		Pending:  n.Pending(),
		Outcomes: n.Outcomes(),
		Children: []int{},
		Board:    n.Board().String(),
	}
	if parent := n.Parent(); parent != nil {
		view.Parent = parent.ID()
	}
	if move := n.Move(); move != nil {
		view.Move = move.String()
	}
	for _, child := range n.Children() {
		view.Children = append(view.Children, child.ID())
	}
	if grid, ok := n.Board().(game.GridBoard); ok {
		view.Cells = make([][]int, grid.Height())
		for y := range view.Cells {
			view.Cells[y] = make([]int, grid.Width())
			for x := range view.Cells[y] {
				view.Cells[y][x] = grid.Cell(x, y)
			}
		}
	}
	return view
}

// ChildrenOf returns the views of n's expanded children in expansion order.
func ChildrenOf(n *searcher.Node) []NodeView {
	children := n.Children()
	views := make([]NodeView, 0, len(children))
	for _, child := range children {
		views = append(views, ViewOf(child))
	}
	return views
}

// Message types pushed over the status websocket.
const (
	MessageStatus = "status"
	MessagePing   = "ping"
)

type Message struct {
	Type    string  `json:"type"`
	Payload *Status `json:"payload,omitempty"`
}
