package game

import (
	"strconv"
	"strings"
)

// Empty marks an unoccupied cell.
const Empty = 0

// directions are the four line axes: horizontal, vertical and both diagonals.
var directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// Grid stores cell owners for a width x height board, indexed [x][y] flattened column-major.
type Grid struct {
	width  int
	height int
	cells  []int
}

func NewGrid(width, height int) Grid {
	return Grid{
		width:  width,
		height: height,
		cells:  make([]int, width*height),
	}
}

// Clone returns a copy that shares no storage with g.
func (g Grid) Clone() Grid {
	cells := make([]int, len(g.cells))
	copy(cells, g.cells)
	return Grid{width: g.width, height: g.height, cells: cells}
}

func (g Grid) Width() int  { return g.width }
func (g Grid) Height() int { return g.height }

func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the owner of (x, y), or Empty for out of range coordinates.
func (g Grid) Get(x, y int) int {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.cells[x*g.height+y]
}

func (g Grid) set(x, y, player int) {
	g.cells[x*g.height+y] = player
}

// Full reports whether no cell is empty.
func (g Grid) Full() bool {
	for _, c := range g.cells {
		if c == Empty {
			return false
		}
	}
	return true
}

// Count returns the number of cells owned by player.
func (g Grid) Count(player int) int {
	n := 0
	for _, c := range g.cells {
		if c == player {
			n++
		}
	}
	return n
}

// LineThrough returns the owner of (x, y) if a run of at least k equal cells passes through it
// along any axis, otherwise Empty. Only cells within k-1 of (x, y) are inspected.
func (g Grid) LineThrough(x, y, k int) int {
	owner := g.Get(x, y)
	if owner == Empty {
		return Empty
	}
	for _, d := range directions {
		run := 1
		for i := 1; i < k && g.Get(x+i*d[0], y+i*d[1]) == owner; i++ {
			run++
		}
		for i := 1; i < k && g.Get(x-i*d[0], y-i*d[1]) == owner; i++ {
			run++
		}
		if run >= k {
			return owner
		}
	}
	return Empty
}

// ScanLines checks every cell as the start of a run of k and returns the first owner found.
func (g Grid) ScanLines(k int) int {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			owner := g.Get(x, y)
			if owner == Empty {
				continue
			}
			for _, d := range directions {
				i := 1
				for ; i < k && g.Get(x+i*d[0], y+i*d[1]) == owner; i++ {
				}
				if i == k {
					return owner
				}
			}
		}
	}
	return Empty
}

// Render draws the grid one row per line. With topDown false, row height-1 is printed first.
func (g Grid) Render(topDown bool) string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for r := 0; r < g.height; r++ {
		y := r
		if !topDown {
			y = g.height - 1 - r
		}
		for x := 0; x < g.width; x++ {
			sb.WriteString(strconv.Itoa(g.Get(x, y)))
			sb.WriteByte(' ')
		}
		if r != g.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
