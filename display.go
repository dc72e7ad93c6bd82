package main

import (
	"fmt"
	"io"
	"mcts/game"
	"mcts/searcher"
	"sort"
	"strings"

	"github.com/logrusorgru/aurora"
)

// renderBoard draws grid boards with a coloured symbol per cell and falls back to String for
// anything else. Connect four is drawn with its bottom row last.
func renderBoard(au aurora.Aurora, board game.Board) string {
	grid, ok := board.(game.GridBoard)
	if !ok {
		return board.String()
	}

	rows := make([]int, grid.Height())
	for i := range rows {
		rows[i] = i
	}
	switch grid.(type) {
	case *game.ConnectFour:
		for i := range rows {
			rows[i] = grid.Height() - 1 - i
		}
	}

	var sb strings.Builder
	for _, y := range rows {
		for x := 0; x < grid.Width(); x++ {
			sb.WriteString(cellSymbol(au, grid.Cell(x, y)).String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellSymbol(au aurora.Aurora, player int) aurora.Value {
	switch player {
	case 1:
		return au.Red("X")
	case 2:
		return au.Blue("O")
	default:
		return au.Faint(".")
	}
}

// printSummary lists the root moves by visits, most visited first.
func printSummary(w io.Writer, au aurora.Aurora, s *searcher.Search) {
	children := s.Root().Children()
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Visits() > children[j].Visits()
	})

	fmt.Fprintf(w, "%d iterations, %d nodes\n", s.Iterations(), s.UniqueNodes())
	for i, child := range children {
		line := fmt.Sprintf("%-10v visits %-8d win rate %.3f outcomes %v", child.Move(), child.Visits(), child.WinRate(), child.Outcomes())
		if i == 0 {
			fmt.Fprintln(w, au.Bold(au.Green(line)))
			continue
		}
		fmt.Fprintln(w, line)
	}
	if best, err := s.BestMove(); err == nil {
		fmt.Fprintf(w, "best move: %v\n", au.Bold(best))
	} else {
		fmt.Fprintf(w, "no move: %v\n", err)
	}
}
