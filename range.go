package spreadsheet

import (
	"fmt"
	"strings"
)

// Coord is a zero-based (row, column) grid coordinate
type Coord struct {
	Row int
	Col int
}

// IsRangeToken reports whether a token has the exact shape
// letters+ digits+ letters+ digits+ (e.g. "A1B3"), the normalized
// form a colon-stripped range collapses to. a finite-state scan, no
// backtracking.
func IsRangeToken(token string) bool {
	const (
		stateStartLetters = iota
		stateStartDigits
		stateEndLetters
		stateEndDigits
	)

	if len(token) < 4 {
		return false
	}

	state := stateStartLetters
	for i := 0; i < len(token); i++ {
		ch := token[i]
		letter := ch >= 'A' && ch <= 'Z'
		digit := ch >= '0' && ch <= '9'
		if !letter && !digit {
			return false
		}

		switch state {
		case stateStartLetters:
			if digit {
				if i == 0 {
					return false
				}
				state = stateStartDigits
			}
		case stateStartDigits:
			if letter {
				state = stateEndLetters
			}
		case stateEndLetters:
			if digit {
				state = stateEndDigits
			}
		case stateEndDigits:
			if letter {
				return false
			}
		}
	}
	return state == stateEndDigits
}

// SplitRangeToken splits a range-shaped token at the boundary where
// the first digit run is followed by a letter, yielding the start and
// end cell identifiers. callers must have checked IsRangeToken.
func SplitRangeToken(token string) (start, end string) {
	inDigits := false
	for i := 0; i < len(token); i++ {
		ch := token[i]
		if ch >= '0' && ch <= '9' {
			inDigits = true
			continue
		}
		if inDigits {
			return token[:i], token[i:]
		}
	}
	return token, ""
}

// SplitRangeRef splits the colon form "A1:B3" into its two corner
// identifiers
func SplitRangeRef(ref string) (start, end string, ok bool) {
	start, end, ok = strings.Cut(ref, ":")
	if !ok || start == "" || end == "" {
		return "", "", false
	}
	return start, end, true
}

// ExpandRange decodes both corner identifiers and enumerates every
// coordinate of the covered rectangle in row-major order. the corners
// are normalized so the rectangle is iterated min to max on each axis
// regardless of how the range was written.
func ExpandRange(start, end string) ([]Coord, error) {
	startRow, startCol, ok := ParseCellID(start)
	if !ok {
		return nil, NewCellError(ErrUnknownReference,
			fmt.Sprintf("invalid range corner: %s", start))
	}
	endRow, endCol, ok := ParseCellID(end)
	if !ok {
		return nil, NewCellError(ErrUnknownReference,
			fmt.Sprintf("invalid range corner: %s", end))
	}

	// normalize the corners so start is always <= end on both axes
	rowLo, rowHi := min(startRow, endRow), max(startRow, endRow)
	colLo, colHi := min(startCol, endCol), max(startCol, endCol)

	coords := make([]Coord, 0, (rowHi-rowLo+1)*(colHi-colLo+1))
	for row := rowLo; row <= rowHi; row++ {
		for col := colLo; col <= colHi; col++ {
			coords = append(coords, Coord{Row: row, Col: col})
		}
	}
	return coords, nil
}
