package spreadsheet

import "fmt"

// Functions holds the built-in function table. function names are
// matched case-sensitively: "sum" is not "SUM".
type Functions struct{}

// NewFunctions creates the built-in function table
func NewFunctions() *Functions {
	return &Functions{}
}

// Call dispatches a function call by name. an unrecognized name,
// arity, or argument shape is ErrUnsupported naming the function.
func (f *Functions) Call(ctx *evalContext, name string, args []Node) (float64, error) {
	switch name {
	case "SUM":
		return f.sum(ctx, name, args)
	case "PRODUCT":
		return f.product(ctx, name, args)
	case "COUNTIF":
		return f.countIf(ctx, name, args)
	case "SUMIF":
		return f.sumIf(ctx, name, args)
	}
	return 0, NewCellError(ErrUnsupported, fmt.Sprintf("unsupported function: %s", name))
}

// asRange extracts the two corner identifiers from a range argument.
// range nodes carry them directly; an identifier that matches the
// colon-stripped range shape is accepted for compatibility with
// stored formulas.
func asRange(arg Node) (start, end string, ok bool) {
	switch node := arg.(type) {
	case *RangeRefNode:
		return node.Start, node.End, true
	case *CellRefNode:
		if IsRangeToken(node.ID) {
			start, end = SplitRangeToken(node.ID)
			return start, end, true
		}
	}
	return "", "", false
}

// rangeCells expands a range argument and reads every covered cell,
// bounds-checking each coordinate
func rangeCells(ctx *evalContext, name string, arg Node) ([]Cell, error) {
	start, end, ok := asRange(arg)
	if !ok {
		return nil, NewCellError(ErrUnsupported,
			fmt.Sprintf("%s requires a range argument", name))
	}

	coords, err := ExpandRange(start, end)
	if err != nil {
		return nil, err
	}

	cells := make([]Cell, 0, len(coords))
	for _, coord := range coords {
		if !ctx.grid.InBounds(coord.Row, coord.Col) {
			return nil, NewCellError(ErrRangeOutOfBounds,
				fmt.Sprintf("range %s:%s exceeds grid bounds at %s",
					start, end, CellID(coord.Row, coord.Col)))
		}
		cell, err := ctx.grid.Get(coord.Row, coord.Col)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
	return cells, nil
}

func (f *Functions) sum(ctx *evalContext, name string, args []Node) (float64, error) {
	if len(args) != 1 {
		return 0, NewCellError(ErrUnsupported,
			fmt.Sprintf("%s requires exactly one range argument", name))
	}
	cells, err := rangeCells(ctx, name, args[0])
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, cell := range cells {
		switch cell.Kind {
		case CellEmpty:
			// contributes 0
		case CellNumber:
			total += cell.Number
		case CellFormula:
			value, err := evalFormulaText(ctx, cell.Formula)
			if err != nil {
				return 0, err
			}
			total += value
		case CellText:
			return 0, NewCellError(ErrTypeMismatch,
				fmt.Sprintf("%s cannot include a text cell", name))
		}
	}
	return total, nil
}

func (f *Functions) product(ctx *evalContext, name string, args []Node) (float64, error) {
	if len(args) != 1 {
		return 0, NewCellError(ErrUnsupported,
			fmt.Sprintf("%s requires exactly one range argument", name))
	}
	cells, err := rangeCells(ctx, name, args[0])
	if err != nil {
		return 0, err
	}

	// empty cells keep the multiplicative identity
	total := 1.0
	for _, cell := range cells {
		switch cell.Kind {
		case CellEmpty:
		case CellNumber:
			total *= cell.Number
		case CellFormula:
			value, err := evalFormulaText(ctx, cell.Formula)
			if err != nil {
				return 0, err
			}
			total *= value
		case CellText:
			return 0, NewCellError(ErrTypeMismatch,
				fmt.Sprintf("%s cannot include a text cell", name))
		}
	}
	return total, nil
}

// conditionalArgs validates the range-plus-criteria shape shared by
// COUNTIF and SUMIF
func conditionalArgs(ctx *evalContext, name string, args []Node) ([]Cell, string, error) {
	if len(args) != 2 {
		return nil, "", NewCellError(ErrUnsupported,
			fmt.Sprintf("%s requires a range and a criteria string", name))
	}
	criteria, ok := args[1].(*StringNode)
	if !ok {
		return nil, "", NewCellError(ErrUnsupported,
			fmt.Sprintf("%s criteria must be a quoted string", name))
	}
	cells, err := rangeCells(ctx, name, args[0])
	if err != nil {
		return nil, "", err
	}
	return cells, criteria.Value, nil
}

func (f *Functions) countIf(ctx *evalContext, name string, args []Node) (float64, error) {
	cells, criteria, err := conditionalArgs(ctx, name, args)
	if err != nil {
		return 0, err
	}

	count := 0.0
	for _, cell := range cells {
		value, include, err := conditionalValue(ctx, cell)
		if err != nil {
			return 0, err
		}
		if !include {
			continue
		}
		match, err := EvalCriteria(value, criteria)
		if err != nil {
			return 0, err
		}
		if match {
			count++
		}
	}
	return count, nil
}

func (f *Functions) sumIf(ctx *evalContext, name string, args []Node) (float64, error) {
	cells, criteria, err := conditionalArgs(ctx, name, args)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, cell := range cells {
		value, include, err := conditionalValue(ctx, cell)
		if err != nil {
			return 0, err
		}
		if !include {
			continue
		}
		match, err := EvalCriteria(value, criteria)
		if err != nil {
			return 0, err
		}
		if match {
			total += value
		}
	}
	return total, nil
}

// conditionalValue computes the numeric value a conditional aggregate
// tests for one cell. text cells are skipped rather than erroring,
// empty cells count as 0.
func conditionalValue(ctx *evalContext, cell Cell) (value float64, include bool, err error) {
	switch cell.Kind {
	case CellEmpty:
		return 0, true, nil
	case CellNumber:
		return cell.Number, true, nil
	case CellFormula:
		value, err := evalFormulaText(ctx, cell.Formula)
		if err != nil {
			return 0, false, err
		}
		return value, true, nil
	case CellText:
		return 0, false, nil
	}
	return 0, false, nil
}
