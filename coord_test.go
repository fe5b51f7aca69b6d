package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnLabel(t *testing.T) {
	cases := map[int]string{
		0:    "A",
		1:    "B",
		25:   "Z",
		26:   "AA",
		27:   "AB",
		51:   "AZ",
		52:   "BA",
		701:  "ZZ",
		702:  "AAA",
		-1:   "",
		-100: "",
	}

	for index, want := range cases {
		assert.Equal(t, want, ColumnLabel(index), "ColumnLabel(%d)", index)
	}
}

func TestColumnIndex(t *testing.T) {
	// round-trips for every label ColumnLabel can produce
	for index := 0; index < 1000; index++ {
		label := ColumnLabel(index)
		got, ok := ColumnIndex(label)
		assert.True(t, ok, "ColumnIndex(%q)", label)
		assert.Equal(t, index, got, "ColumnIndex(%q)", label)
	}

	for _, label := range []string{"", "a", "A1", "1A", "A B"} {
		_, ok := ColumnIndex(label)
		assert.False(t, ok, "ColumnIndex(%q) should fail", label)
	}
}

func TestParseCellID(t *testing.T) {
	cases := []struct {
		id   string
		row  int
		col  int
		ok   bool
	}{
		{"A1", 0, 0, true},
		{"B5", 4, 1, true},
		{"Z100", 99, 25, true},
		{"A10", 9, 0, true},
		{"", 0, 0, false},
		{"A", 0, 0, false},
		{"1A", 0, 0, false},
		{"A0", 0, 0, false},
		{"A-1", 0, 0, false},
		{"a1", 0, 0, false},
		// only a single leading column letter decodes; "AA" reads as
		// column 'A' followed by non-numeric text
		{"AA1", 0, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			row, col, ok := ParseCellID(tc.id)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.row, row)
				assert.Equal(t, tc.col, col)
			}
		})
	}
}

func TestCellID(t *testing.T) {
	assert.Equal(t, "A1", CellID(0, 0))
	assert.Equal(t, "B5", CellID(4, 1))
	assert.Equal(t, "Z100", CellID(99, 25))
	// columns past Z still label, even though ParseCellID cannot read
	// them back
	assert.Equal(t, "AA1", CellID(0, 26))
}
