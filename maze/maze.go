/*
Package maze provides tools for creating rectangular perfect mazes.

It defines the `Maze` structure, composed of `Cell` objects that record which of their east and
south edges have been carved open.

Generation uses a randomized recursive backtracker driven by a caller supplied random source, so a
fixed seed always reproduces the same maze. The passage graph of every generated maze is a spanning
tree of the grid: exactly width*height-1 passages, every cell reachable from (0,0), no cycles.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/gravity-maze/rng"
)

var (
	// Directions in the order candidates are collected while carving.
	Directions = []struct {
		Name  string
		Delta CellPosition
	}{
		{Name: "North", Delta: CellPosition{Row: -1, Col: 0}},
		{Name: "East", Delta: CellPosition{Row: 0, Col: 1}},
		{Name: "South", Delta: CellPosition{Row: 1, Col: 0}},
		{Name: "West", Delta: CellPosition{Row: 0, Col: -1}},
	}

	ErrInvalidDimensions = errors.New("invalid maze dimensions")
)

// Maze represents a rectangular maze. Grid is indexed as Grid[row][col].
type Maze struct {
	Width  int      // Width of the maze (number of columns)
	Height int      // Height of the maze (number of rows)
	Grid   [][]Cell // 2D grid of cells forming the maze
}

// Move represents a carve from one cell into an unvisited neighbour.
type Move struct {
	From      CellPosition
	To        CellPosition
	Direction string
}

// New initializes a new maze of the given dimensions and generates its layout with r.
func New(width, height int, r rng.Random) (*Maze, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	grid := make([][]Cell, height)
	for y := range grid {
		grid[y] = make([]Cell, width)
		for x := range grid[y] {
			grid[y][x] = Cell{X: x, Y: y}
		}
	}

	m := &Maze{
		Width:  width,
		Height: height,
		Grid:   grid,
	}
	m.generateMaze(r)
	return m, nil
}

// InBound reports whether the position lies inside the grid.
func (m *Maze) InBound(row, col int) bool {
	return row >= 0 && row < m.Height && col >= 0 && col < m.Width
}

// unvisitedNeighbors lists the carve moves available from pos.
func (m *Maze) unvisitedNeighbors(pos CellPosition) []Move {
	result := make([]Move, 0, len(Directions))
	for _, dir := range Directions {
		to := CellPosition{Row: pos.Row + dir.Delta.Row, Col: pos.Col + dir.Delta.Col}
		if m.InBound(to.Row, to.Col) && !m.Grid[to.Row][to.Col].Visited {
			result = append(result, Move{From: pos, To: to, Direction: dir.Name})
		}
	}
	return result
}

// openWall removes the wall shared by the two cells of the move.
func (m *Maze) openWall(move Move) {
	switch move.Direction {
	case "North":
		m.Grid[move.To.Row][move.To.Col].PassageBottom = true
	case "South":
		m.Grid[move.From.Row][move.From.Col].PassageBottom = true
	case "East":
		m.Grid[move.From.Row][move.From.Col].PassageRight = true
	case "West":
		m.Grid[move.To.Row][move.To.Col].PassageRight = true
	}
}

// generateMaze carves passages with a randomized recursive backtracker rooted at (0,0).
func (m *Maze) generateMaze(r rng.Random) {
	m.Grid[0][0].Visited = true
	stack := []CellPosition{{Row: 0, Col: 0}}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		moves := m.unvisitedNeighbors(current)
		if len(moves) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		move := moves[r.Intn(len(moves))]
		m.openWall(move)
		m.Grid[move.To.Row][move.To.Col].Visited = true
		stack = append(stack, move.To)
	}
}

// Passages counts the carved openings in the grid.
func (m *Maze) Passages() int {
	count := 0
	for _, row := range m.Grid {
		for _, cell := range row {
			if cell.PassageRight {
				count++
			}
			if cell.PassageBottom {
				count++
			}
		}
	}
	return count
}

// Reachable returns the number of cells reachable from start through passages.
func (m *Maze) Reachable(start CellPosition) int {
	if !m.InBound(start.Row, start.Col) {
		return 0
	}

	seen := make([][]bool, m.Height)
	for i := range seen {
		seen[i] = make([]bool, m.Width)
	}
	seen[start.Row][start.Col] = true
	queue := []CellPosition{start}
	count := 0

	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		count++

		for _, next := range m.open(pos) {
			if !seen[next.Row][next.Col] {
				seen[next.Row][next.Col] = true
				queue = append(queue, next)
			}
		}
	}
	return count
}

// open lists the neighbours of pos joined to it by a passage.
func (m *Maze) open(pos CellPosition) []CellPosition {
	var result []CellPosition
	cell := m.Grid[pos.Row][pos.Col]
	if cell.PassageRight {
		result = append(result, CellPosition{Row: pos.Row, Col: pos.Col + 1})
	}
	if cell.PassageBottom {
		result = append(result, CellPosition{Row: pos.Row + 1, Col: pos.Col})
	}
	if pos.Col > 0 && m.Grid[pos.Row][pos.Col-1].PassageRight {
		result = append(result, CellPosition{Row: pos.Row, Col: pos.Col - 1})
	}
	if pos.Row > 0 && m.Grid[pos.Row-1][pos.Col].PassageBottom {
		result = append(result, CellPosition{Row: pos.Row - 1, Col: pos.Col})
	}
	return result
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+" + strings.Repeat("---+", m.Width) + "\n")

	for _, row := range m.Grid {
		cellRow := "|"
		wallRow := "+"
		for _, cell := range row {
			if cell.PassageRight {
				cellRow += "    "
			} else {
				cellRow += "   |"
			}

			if cell.PassageBottom {
				wallRow += "   +"
			} else {
				wallRow += "---+"
			}
		}
		output.WriteString(cellRow + "\n")
		output.WriteString(wallRow + "\n")
	}

	return output.String()
}
