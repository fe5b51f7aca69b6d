package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalCriteria(t *testing.T) {
	cases := []struct {
		value    float64
		criteria string
		want     bool
	}{
		{15, ">10", true},
		{10, ">10", false},
		{5, "<10", true},
		{10, "<=10", true},
		{10, ">=10", true},
		{11, ">=10", true},
		{3, "==3", true},
		{3, "=3", true},
		{4, "==3", false},
		{7, "<>7", false},
		{8, "<>7", true},
		{8, "!=7", true},
		{-5, ">-10", true},
		{-15, ">-10", false},
		{2.5, ">2.4", true},
		{0, "==0", true},
	}

	for _, tc := range cases {
		t.Run(tc.criteria, func(t *testing.T) {
			got, err := EvalCriteria(tc.value, tc.criteria)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got, "EvalCriteria(%v, %q)", tc.value, tc.criteria)
		})
	}
}

func TestEvalCriteriaInvalid(t *testing.T) {
	invalid := []string{
		"",
		">",
		"10",      // no operator
		">abc",    // non-numeric operand
		">A1",     // references are not allowed
		">1+1",    // arithmetic is not allowed
		">>10",
		">10<20",  // two comparisons
		`>"text"`, // string operand
	}

	for _, criteria := range invalid {
		t.Run(criteria, func(t *testing.T) {
			_, err := EvalCriteria(5, criteria)
			require.Error(t, err)
			var cellErr *CellError
			require.ErrorAs(t, err, &cellErr)
			assert.Equal(t, ErrInvalidCriteria, cellErr.Code)
		})
	}
}
