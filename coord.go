package spreadsheet

import "strconv"

// ColumnLabel converts a zero-based column index to its bijective
// base-26 label: 0 -> "A", 25 -> "Z", 26 -> "AA", 701 -> "ZZ",
// 702 -> "AAA". labels grow without bound.
func ColumnLabel(index int) string {
	if index < 0 {
		return ""
	}

	// treat index+1 as a bijective base-26 number, collecting letters
	// least-significant first
	n := index + 1
	var letters []byte
	for n > 0 {
		n--
		letters = append(letters, byte('A'+n%26))
		n /= 26
	}

	// reverse
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters)
}

// ColumnIndex is the inverse of ColumnLabel. it accepts labels of any
// length, returning false for anything that is not uppercase letters.
func ColumnIndex(label string) (int, bool) {
	if label == "" {
		return 0, false
	}

	n := 0
	for i := 0; i < len(label); i++ {
		ch := label[i]
		if ch < 'A' || ch > 'Z' {
			return 0, false
		}
		n = n*26 + int(ch-'A') + 1
	}
	return n - 1, true
}

// ParseCellID decodes an identifier such as "B5" into zero-based
// (row, col) coordinates. the decoder reads exactly one leading column
// letter, so columns past "Z" are representable by ColumnLabel but not
// reachable by reference. this asymmetry is deliberate and relied on
// by existing sheets.
func ParseCellID(id string) (row, col int, ok bool) {
	if len(id) < 2 {
		return 0, 0, false
	}

	col = int(id[0]) - 'A'
	if col < 0 || col > 25 {
		return 0, 0, false
	}

	oneBased, err := strconv.Atoi(id[1:])
	if err != nil || oneBased < 1 {
		return 0, 0, false
	}

	return oneBased - 1, col, true
}

// CellID is the inverse of ParseCellID: column label plus 1-based row
func CellID(row, col int) string {
	return ColumnLabel(col) + strconv.Itoa(row+1)
}
