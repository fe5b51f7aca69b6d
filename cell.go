package spreadsheet

import (
	"strconv"
	"strings"
)

// ErrorCode classifies per-cell evaluation failures. every error is
// scoped to the one cell (or one function call) being evaluated and
// never aborts the surrounding evaluation pass.
type ErrorCode uint8

const (
	ErrParse            ErrorCode = 1 // malformed formula text
	ErrUnknownReference ErrorCode = 2 // identifier does not decode to a column/row
	ErrOutOfBounds      ErrorCode = 3 // reference outside grid extents
	ErrRangeOutOfBounds ErrorCode = 4 // range corner outside grid extents
	ErrDivisionByZero   ErrorCode = 5 // division by a zero operand
	ErrTypeMismatch     ErrorCode = 6 // numeric operation applied to a text cell
	ErrUnsupported      ErrorCode = 7 // operator, function, or call shape not recognized
	ErrInvalidCriteria  ErrorCode = 8 // malformed comparison string in COUNTIF/SUMIF
	ErrCycle            ErrorCode = 9 // cyclic dependency detected by the scheduler
)

// errorMessages maps error codes to their default display strings
var errorMessages = map[ErrorCode]string{
	ErrParse:            "Parse failure",
	ErrUnknownReference: "Unknown reference",
	ErrOutOfBounds:      "Reference out of bounds",
	ErrRangeOutOfBounds: "Range out of bounds",
	ErrDivisionByZero:   "Division by zero",
	ErrTypeMismatch:     "Type mismatch",
	ErrUnsupported:      "Unsupported operation",
	ErrInvalidCriteria:  "Invalid criteria",
	ErrCycle:            "Cyclic dependency detected",
}

// CellError preserves the error code for display in cells
type CellError struct {
	Code    ErrorCode
	Message string
}

func (e *CellError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return errorMessages[e.Code]
}

func NewCellError(code ErrorCode, message string) *CellError {
	if message == "" {
		message = errorMessages[code]
	}
	return &CellError{
		Code:    code,
		Message: message,
	}
}

// CellKind represents the closed set of cell variants
type CellKind uint8

const (
	CellEmpty   CellKind = 0
	CellNumber  CellKind = 1
	CellText    CellKind = 2
	CellFormula CellKind = 3
)

// Cell is one grid cell. Number, Text and Formula are the input fields
// for their respective kinds; Value and Err are derived state carried
// only by formula cells and reflect exactly the most recent evaluation
// pass. they are stale between a cell edit and the next pass.
type Cell struct {
	Kind    CellKind
	Number  float64 // input value for CellNumber
	Text    string  // input value for CellText
	Formula string  // formula text including the leading "=" for CellFormula
	Value   float64 // last computed result (CellFormula only)
	Err     string  // non-empty overrides Value for display (CellFormula only)
}

// EmptyCell returns the empty cell variant
func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

// NumberCell returns a numeric input cell
func NumberCell(value float64) Cell {
	return Cell{Kind: CellNumber, Number: value}
}

// TextCell returns a text input cell
func TextCell(value string) Cell {
	return Cell{Kind: CellText, Text: value}
}

// FormulaCell returns a formula cell. the formula text must include
// the leading "=". Value and Err start zeroed and are filled in by the
// next evaluation pass.
func FormulaCell(formula string) Cell {
	return Cell{Kind: CellFormula, Formula: formula}
}

// IsEmpty reports whether the cell is the empty variant
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// CellFromContent classifies raw editor input into a cell variant:
// leading "=" is a formula, a parseable number is numeric, an empty
// string is empty, anything else is text.
func CellFromContent(content string) Cell {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return EmptyCell()
	}
	if trimmed[0] == '=' {
		return FormulaCell(trimmed)
	}
	if value, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumberCell(value)
	}
	return TextCell(content)
}
