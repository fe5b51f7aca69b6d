package spreadsheet

import "fmt"

// criteriaPlaceholder is the identifier the criteria sub-grammar binds
// the tested value to. criteria are parsed by synthesizing a formula
// comparing the placeholder against the criteria text, so the main
// grammar is reused instead of a second parser.
const criteriaPlaceholder = "X"

// EvalCriteria tests a numeric value against a criteria string such as
// ">10", "<=5", "==3" or "<>7". the criteria must be exactly one
// comparison operator followed by an optionally negated numeric
// literal; anything else is ErrInvalidCriteria.
func EvalCriteria(value float64, criteria string) (bool, error) {
	node, err := ParseFormula("=" + criteriaPlaceholder + criteria)
	if err != nil {
		return false, NewCellError(ErrInvalidCriteria,
			fmt.Sprintf("invalid criteria: %q", criteria))
	}

	cmp, ok := node.(*BinaryNode)
	if !ok || !cmp.Op.isComparison() {
		return false, NewCellError(ErrInvalidCriteria,
			fmt.Sprintf("criteria must be a single comparison: %q", criteria))
	}

	// the left side must be the synthesized placeholder; any other
	// identifier means the criteria text smuggled in a reference
	ref, ok := cmp.Left.(*CellRefNode)
	if !ok || ref.ID != criteriaPlaceholder {
		return false, NewCellError(ErrInvalidCriteria,
			fmt.Sprintf("criteria may not reference cells: %q", criteria))
	}

	operand, ok := foldCriteriaOperand(cmp.Right)
	if !ok {
		return false, NewCellError(ErrInvalidCriteria,
			fmt.Sprintf("criteria operand must be a number: %q", criteria))
	}

	switch cmp.Op {
	case BinOpEqual:
		return value == operand, nil
	case BinOpNotEqual:
		return value != operand, nil
	case BinOpLess:
		return value < operand, nil
	case BinOpLessEqual:
		return value <= operand, nil
	case BinOpGreater:
		return value > operand, nil
	case BinOpGreaterEqual:
		return value >= operand, nil
	}
	return false, NewCellError(ErrInvalidCriteria,
		fmt.Sprintf("invalid criteria: %q", criteria))
}

// foldCriteriaOperand reduces the right side of a criteria comparison
// to a literal. only numeric literals, unary sign and grouping are
// allowed; arithmetic or references make the criteria invalid.
func foldCriteriaOperand(n Node) (float64, bool) {
	switch node := n.(type) {
	case *NumberNode:
		return node.Value, true
	case *GroupNode:
		return foldCriteriaOperand(node.Inner)
	case *UnaryNode:
		value, ok := foldCriteriaOperand(node.Operand)
		if !ok {
			return 0, false
		}
		if node.Op == UnaryOpMinus {
			return -value, true
		}
		return value, true
	}
	return 0, false
}
