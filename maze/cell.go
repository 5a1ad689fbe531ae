package maze

// Cell represents a single cell in a maze grid.
// Only the east and south edges are stored; the north and west edges of a
// cell are the south and east edges of its neighbours.
type Cell struct {
	// X is the column index of the cell.
	X int
	// Y is the row index of the cell.
	Y int
	// Visited is set once the generator has carved into the cell.
	Visited bool
	// PassageRight indicates an opening to the east neighbour. A false value
	// means a wall segment is present on that edge.
	PassageRight bool
	// PassageBottom indicates an opening to the south neighbour. A false value
	// means a wall segment is present on that edge.
	PassageBottom bool
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}
