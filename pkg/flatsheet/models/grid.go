package models

// Grid is a dense rectangular cell matrix addressed by zero-based (row, column).
// Reads outside the allocated area return an empty cell.
type Grid struct {
	cells [][]Cell
	cols  int
}

// NewGrid allocates an empty grid of the given size.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	g := &Grid{cells: make([][]Cell, rows), cols: cols}
	for i := range g.cells {
		g.cells[i] = make([]Cell, cols)
	}
	return g
}

// Rows returns the number of allocated rows.
func (g *Grid) Rows() int {
	return len(g.cells)
}

// Cols returns the number of allocated columns.
func (g *Grid) Cols() int {
	return g.cols
}

// At returns the cell at (row, col).
func (g *Grid) At(row, col int) Cell {
	if row < 0 || col < 0 || row >= len(g.cells) || col >= g.cols {
		return Cell{}
	}
	return g.cells[row][col]
}

// Set stores a cell, growing the grid when the address lies outside it.
func (g *Grid) Set(row, col int, c Cell) {
	if row < 0 || col < 0 {
		return
	}
	if col >= g.cols {
		for i := range g.cells {
			g.cells[i] = append(g.cells[i], make([]Cell, col+1-g.cols)...)
		}
		g.cols = col + 1
	}
	for row >= len(g.cells) {
		g.cells = append(g.cells, make([]Cell, g.cols))
	}
	g.cells[row][col] = c
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{cells: make([][]Cell, len(g.cells)), cols: g.cols}
	for i, row := range g.cells {
		out.cells[i] = append([]Cell(nil), row...)
	}
	return out
}

// Equal reports whether two grids hold the same cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.Rows() != o.Rows() || g.Cols() != o.Cols() {
		return false
	}
	for r := range g.cells {
		for c := range g.cells[r] {
			a, b := g.cells[r][c], o.cells[r][c]
			if a.Kind != b.Kind || a.Str != b.Str || a.Num != b.Num || !a.Time.Equal(b.Time) || a.Text != b.Text {
				return false
			}
		}
	}
	return true
}
