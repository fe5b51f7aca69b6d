package spreadsheet

import "fmt"

// minimum grid extents. Trim never shrinks below these, and NewGrid
// clamps up to them.
const (
	MinRows = 10
	MinCols = 10
)

// Grid is a dense row-major matrix of cells. invariant:
// len(cells) == rows*cols, maintained by every mutating method.
// the formula core only reads and writes existing cells; resizing is
// driven by the external editor through the Insert/Delete/Trim
// methods.
type Grid struct {
	cells []Cell
	rows  int
	cols  int
}

// NewGrid creates a grid of empty cells, clamped to the minimum size
func NewGrid(rows, cols int) *Grid {
	if rows < MinRows {
		rows = MinRows
	}
	if cols < MinCols {
		cols = MinCols
	}
	return &Grid{
		cells: make([]Cell, rows*cols),
		rows:  rows,
		cols:  cols,
	}
}

// Rows returns the number of rows
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds reports whether (row, col) addresses an existing cell
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Get returns the cell at (row, col). out-of-bounds access is an
// error, never a panic; callers on the editing side rely on this.
func (g *Grid) Get(row, col int) (Cell, error) {
	if !g.InBounds(row, col) {
		return Cell{}, NewCellError(ErrOutOfBounds,
			fmt.Sprintf("cell (%d,%d) outside %dx%d grid", row, col, g.rows, g.cols))
	}
	return g.cells[row*g.cols+col], nil
}

// Set stores a cell at (row, col)
func (g *Grid) Set(row, col int, c Cell) error {
	if !g.InBounds(row, col) {
		return NewCellError(ErrOutOfBounds,
			fmt.Sprintf("cell (%d,%d) outside %dx%d grid", row, col, g.rows, g.cols))
	}
	g.cells[row*g.cols+col] = c
	return nil
}

// SetContent classifies raw editor input and stores the resulting cell
func (g *Grid) SetContent(row, col int, content string) error {
	return g.Set(row, col, CellFromContent(content))
}

// InsertRow inserts an empty row before index at. at == Rows() appends.
func (g *Grid) InsertRow(at int) error {
	if at < 0 || at > g.rows {
		return NewCellError(ErrOutOfBounds, fmt.Sprintf("row %d outside grid", at))
	}
	g.cells = append(g.cells, make([]Cell, g.cols)...)
	copy(g.cells[(at+1)*g.cols:], g.cells[at*g.cols:])
	for col := 0; col < g.cols; col++ {
		g.cells[at*g.cols+col] = Cell{}
	}
	g.rows++
	return nil
}

// InsertCol inserts an empty column before index at. at == Cols() appends.
func (g *Grid) InsertCol(at int) error {
	if at < 0 || at > g.cols {
		return NewCellError(ErrOutOfBounds, fmt.Sprintf("column %d outside grid", at))
	}
	next := make([]Cell, g.rows*(g.cols+1))
	for row := 0; row < g.rows; row++ {
		copy(next[row*(g.cols+1):], g.cells[row*g.cols:row*g.cols+at])
		copy(next[row*(g.cols+1)+at+1:], g.cells[row*g.cols+at:(row+1)*g.cols])
	}
	g.cells = next
	g.cols++
	return nil
}

// DeleteRow removes the row at index at, refusing to go below the minimum
func (g *Grid) DeleteRow(at int) error {
	if at < 0 || at >= g.rows {
		return NewCellError(ErrOutOfBounds, fmt.Sprintf("row %d outside grid", at))
	}
	if g.rows <= MinRows {
		return nil
	}
	g.cells = append(g.cells[:at*g.cols], g.cells[(at+1)*g.cols:]...)
	g.rows--
	return nil
}

// DeleteCol removes the column at index at, refusing to go below the minimum
func (g *Grid) DeleteCol(at int) error {
	if at < 0 || at >= g.cols {
		return NewCellError(ErrOutOfBounds, fmt.Sprintf("column %d outside grid", at))
	}
	if g.cols <= MinCols {
		return nil
	}
	next := make([]Cell, 0, g.rows*(g.cols-1))
	for row := 0; row < g.rows; row++ {
		next = append(next, g.cells[row*g.cols:row*g.cols+at]...)
		next = append(next, g.cells[row*g.cols+at+1:(row+1)*g.cols]...)
	}
	g.cells = next
	g.cols--
	return nil
}

// NonEmptyBounds returns the index of the last non-empty row and
// column, or -1 for an all-empty axis.
func (g *Grid) NonEmptyBounds() (lastRow, lastCol int) {
	lastRow, lastCol = -1, -1
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			if !g.cells[row*g.cols+col].IsEmpty() {
				if row > lastRow {
					lastRow = row
				}
				if col > lastCol {
					lastCol = col
				}
			}
		}
	}
	return lastRow, lastCol
}

// Trim shrinks trailing all-empty rows and columns, never below the
// minimum size and never past the last non-empty cell
func (g *Grid) Trim() {
	lastRow, lastCol := g.NonEmptyBounds()

	rows := lastRow + 1
	if rows < MinRows {
		rows = MinRows
	}
	cols := lastCol + 1
	if cols < MinCols {
		cols = MinCols
	}

	if rows == g.rows && cols == g.cols {
		return
	}

	next := make([]Cell, rows*cols)
	for row := 0; row < rows; row++ {
		copy(next[row*cols:(row+1)*cols], g.cells[row*g.cols:row*g.cols+cols])
	}
	g.cells = next
	g.rows = rows
	g.cols = cols
}
