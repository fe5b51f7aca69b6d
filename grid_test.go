package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellFromContent(t *testing.T) {
	cases := []struct {
		content string
		kind    CellKind
	}{
		{"", CellEmpty},
		{"   ", CellEmpty},
		{"42", CellNumber},
		{"3.14", CellNumber},
		{"-1.5", CellNumber},
		{"=A1+1", CellFormula},
		{"  =A1  ", CellFormula},
		{"hello", CellText},
		{"12abc", CellText},
	}

	for _, tc := range cases {
		t.Run(tc.content, func(t *testing.T) {
			assert.Equal(t, tc.kind, CellFromContent(tc.content).Kind)
		})
	}

	assert.InDelta(t, 3.14, CellFromContent("3.14").Number, 1e-10)
	assert.Equal(t, "=A1", CellFromContent("  =A1  ").Formula)
	assert.Equal(t, "hello", CellFromContent("hello").Text)
}

func TestGridMinimumSize(t *testing.T) {
	g := NewGrid(2, 3)
	assert.Equal(t, MinRows, g.Rows())
	assert.Equal(t, MinCols, g.Cols())

	g = NewGrid(20, 30)
	assert.Equal(t, 20, g.Rows())
	assert.Equal(t, 30, g.Cols())
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(10, 10)

	_, err := g.Get(10, 0)
	require.Error(t, err)
	var cellErr *CellError
	require.ErrorAs(t, err, &cellErr)
	assert.Equal(t, ErrOutOfBounds, cellErr.Code)

	require.Error(t, g.Set(0, -1, NumberCell(1)))
	require.Error(t, g.Set(-1, 0, NumberCell(1)))

	require.NoError(t, g.Set(9, 9, NumberCell(1)))
	cell, err := g.Get(9, 9)
	require.NoError(t, err)
	assert.Equal(t, CellNumber, cell.Kind)
}

func TestGridInsertRow(t *testing.T) {
	g := NewGrid(10, 10)
	require.NoError(t, g.Set(1, 0, NumberCell(7)))

	require.NoError(t, g.InsertRow(1))
	assert.Equal(t, 11, g.Rows())

	// the old row 1 shifted down
	cell, err := g.Get(2, 0)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, cell.Number, 1e-10)

	cell, err = g.Get(1, 0)
	require.NoError(t, err)
	assert.True(t, cell.IsEmpty())
}

func TestGridInsertCol(t *testing.T) {
	g := NewGrid(10, 10)
	require.NoError(t, g.Set(0, 1, NumberCell(7)))

	require.NoError(t, g.InsertCol(1))
	assert.Equal(t, 11, g.Cols())

	cell, err := g.Get(0, 2)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, cell.Number, 1e-10)

	cell, err = g.Get(0, 1)
	require.NoError(t, err)
	assert.True(t, cell.IsEmpty())
}

func TestGridDelete(t *testing.T) {
	g := NewGrid(12, 12)
	require.NoError(t, g.Set(5, 5, NumberCell(7)))

	require.NoError(t, g.DeleteRow(0))
	assert.Equal(t, 11, g.Rows())
	cell, err := g.Get(4, 5)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, cell.Number, 1e-10)

	require.NoError(t, g.DeleteCol(0))
	assert.Equal(t, 11, g.Cols())
	cell, err = g.Get(4, 4)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, cell.Number, 1e-10)

	// deleting at the minimum size is a no-op
	small := NewGrid(10, 10)
	require.NoError(t, small.DeleteRow(0))
	require.NoError(t, small.DeleteCol(0))
	assert.Equal(t, MinRows, small.Rows())
	assert.Equal(t, MinCols, small.Cols())
}

func TestGridTrim(t *testing.T) {
	g := NewGrid(30, 30)
	require.NoError(t, g.Set(14, 4, NumberCell(7)))

	g.Trim()
	assert.Equal(t, 15, g.Rows())
	assert.Equal(t, MinCols, g.Cols())

	cell, err := g.Get(14, 4)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, cell.Number, 1e-10)

	// all-empty grids trim down to the minimum only
	empty := NewGrid(30, 30)
	empty.Trim()
	assert.Equal(t, MinRows, empty.Rows())
	assert.Equal(t, MinCols, empty.Cols())
}

func TestNonEmptyBounds(t *testing.T) {
	g := NewGrid(10, 10)
	row, col := g.NonEmptyBounds()
	assert.Equal(t, -1, row)
	assert.Equal(t, -1, col)

	require.NoError(t, g.Set(3, 1, NumberCell(1)))
	require.NoError(t, g.Set(1, 6, TextCell("x")))
	row, col = g.NonEmptyBounds()
	assert.Equal(t, 3, row)
	assert.Equal(t, 6, col)
}
