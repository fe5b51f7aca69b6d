package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalOnGrid(t *testing.T, g *Grid, formula string) (float64, error) {
	t.Helper()
	node, err := ParseFormula(formula)
	require.NoError(t, err)
	ctx := &evalContext{grid: g, funcs: NewFunctions()}
	return node.Eval(ctx)
}

func numberGrid(t *testing.T, values map[string]float64) *Grid {
	t.Helper()
	g := NewGrid(10, 10)
	for id, value := range values {
		row, col, ok := ParseCellID(id)
		require.True(t, ok, "bad id %q", id)
		require.NoError(t, g.Set(row, col, NumberCell(value)))
	}
	return g
}

func TestSum(t *testing.T) {
	g := numberGrid(t, map[string]float64{"A1": 1, "B1": 2, "A2": 3, "B2": 4})

	got, err := evalOnGrid(t, g, "=SUM(A1:B2)")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got, 1e-10)

	// both range spellings work
	got, err = evalOnGrid(t, g, "=SUM(A1B2)")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got, 1e-10)

	// empty cells contribute zero; an all-empty range sums to zero
	got, err = evalOnGrid(t, g, "=SUM(C1:D5)")
	require.NoError(t, err)
	assert.Zero(t, got)

	// formula cells contribute their evaluated value
	require.NoError(t, g.Set(0, 2, FormulaCell("=A1+B1")))
	got, err = evalOnGrid(t, g, "=SUM(C1:C2)")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got, 1e-10)
}

func TestProduct(t *testing.T) {
	g := numberGrid(t, map[string]float64{"A1": 1, "B1": 2, "A2": 3, "B2": 4})

	got, err := evalOnGrid(t, g, "=PRODUCT(A1:B2)")
	require.NoError(t, err)
	assert.InDelta(t, 24.0, got, 1e-10)

	// an all-empty range keeps the multiplicative identity
	got, err = evalOnGrid(t, g, "=PRODUCT(C1:D5)")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-10)
}

func TestAggregateErrors(t *testing.T) {
	g := numberGrid(t, map[string]float64{"A1": 1})
	require.NoError(t, g.Set(1, 0, TextCell("hello")))

	cases := []struct {
		formula string
		code    ErrorCode
	}{
		{"=SUM(A1:A2)", ErrTypeMismatch},
		{"=PRODUCT(A1:A2)", ErrTypeMismatch},
		{"=SUM(A1:Z99)", ErrRangeOutOfBounds},
		{"=SUM(A1)", ErrUnsupported},       // not a range
		{"=SUM(A1:A2,B1:B2)", ErrUnsupported},
		{"=sum(A1:A2)", ErrUnsupported},    // function names are case-sensitive
		{"=AVG(A1:A2)", ErrUnsupported},    // unknown function
		{"=COUNTIF(A1:A2)", ErrUnsupported},
		{`=COUNTIF(A1:A2,5)`, ErrUnsupported},
		{`=COUNTIF(A1:A2,"bogus")`, ErrInvalidCriteria},
		{`=SUMIF(A1:A2,">")`, ErrInvalidCriteria},
	}

	for _, tc := range cases {
		t.Run(tc.formula, func(t *testing.T) {
			value, err := evalOnGrid(t, g, tc.formula)
			require.Error(t, err)
			assert.Zero(t, value)
			var cellErr *CellError
			require.ErrorAs(t, err, &cellErr)
			assert.Equal(t, tc.code, cellErr.Code)
		})
	}
}

func TestCountIf(t *testing.T) {
	g := numberGrid(t, map[string]float64{"A1": 5, "B1": 10, "A2": 15, "B2": 20})

	got, err := evalOnGrid(t, g, `=COUNTIF(A1:B2,">10")`)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-10)

	// text cells are skipped, not an error; empty cells count as zero
	require.NoError(t, g.Set(0, 2, TextCell("n/a")))
	got, err = evalOnGrid(t, g, `=COUNTIF(A1:C2,"<100")`)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got, 1e-10)
}

func TestSumIf(t *testing.T) {
	g := numberGrid(t, map[string]float64{"A1": 5, "B1": 10, "A2": 15, "B2": 20})

	got, err := evalOnGrid(t, g, `=SUMIF(A1:B2,">10")`)
	require.NoError(t, err)
	assert.InDelta(t, 35.0, got, 1e-10)

	got, err = evalOnGrid(t, g, `=SUMIF(A1:B2,"<=10")`)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, got, 1e-10)
}
