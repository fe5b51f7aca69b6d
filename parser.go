package spreadsheet

import (
	"fmt"
	"strconv"
	"strings"
)

// BinaryOp represents binary operators in AST nodes
type BinaryOp int

const (
	BinOpAdd BinaryOp = iota
	BinOpSubtract
	BinOpMultiply
	BinOpDivide
	BinOpEqual
	BinOpNotEqual
	BinOpLess
	BinOpLessEqual
	BinOpGreater
	BinOpGreaterEqual
)

// binaryOpStrings maps operators back to their surface syntax, for
// error messages
var binaryOpStrings = map[BinaryOp]string{
	BinOpAdd:          "+",
	BinOpSubtract:     "-",
	BinOpMultiply:     "*",
	BinOpDivide:       "/",
	BinOpEqual:        "==",
	BinOpNotEqual:     "!=",
	BinOpLess:         "<",
	BinOpLessEqual:    "<=",
	BinOpGreater:      ">",
	BinOpGreaterEqual: ">=",
}

// isComparison reports whether the operator compares rather than
// computes. only equality is legal in general formulas; the rest
// belong to the criteria sub-grammar.
func (op BinaryOp) isComparison() bool {
	switch op {
	case BinOpEqual, BinOpNotEqual, BinOpLess, BinOpLessEqual, BinOpGreater, BinOpGreaterEqual:
		return true
	}
	return false
}

// UnaryOp represents unary operators in AST nodes
type UnaryOp int

const (
	UnaryOpPlus UnaryOp = iota
	UnaryOpMinus
)

// evalContext carries everything an evaluation needs. there is no
// process-wide state: the grid and function table are passed in
// explicitly and the context lives for one evaluation only.
type evalContext struct {
	grid  *Grid
	funcs *Functions
}

// Node is a formula AST node. trees are immutable, scoped to a single
// evaluation or extraction call, and never retained across cells.
type Node interface {
	Eval(ctx *evalContext) (float64, error)
}

// NumberNode represents a numeric literal
type NumberNode struct {
	Value float64
}

func (n *NumberNode) Eval(ctx *evalContext) (float64, error) {
	return n.Value, nil
}

// StringNode represents a double-quoted string literal. string
// literals only appear as criteria arguments; evaluating one as a
// number is a type mismatch.
type StringNode struct {
	Value string
}

func (n *StringNode) Eval(ctx *evalContext) (float64, error) {
	return 0, NewCellError(ErrTypeMismatch, "cannot evaluate a string as a number")
}

// CellRefNode represents a reference by identifier, e.g. "B5"
type CellRefNode struct {
	ID string
}

func (n *CellRefNode) Eval(ctx *evalContext) (float64, error) {
	row, col, ok := ParseCellID(n.ID)
	if !ok {
		return 0, NewCellError(ErrUnknownReference,
			fmt.Sprintf("unknown reference: %s", n.ID))
	}

	cell, err := ctx.grid.Get(row, col)
	if err != nil {
		return 0, err
	}

	switch cell.Kind {
	case CellNumber:
		return cell.Number, nil
	case CellEmpty:
		return 0, nil
	case CellText:
		return 0, NewCellError(ErrTypeMismatch,
			fmt.Sprintf("cannot evaluate text cell %s as a number", n.ID))
	case CellFormula:
		// referenced formulas are re-parsed and re-evaluated from
		// scratch; results are never cached across references
		return evalFormulaText(ctx, cell.Formula)
	}
	return 0, NewCellError(ErrUnsupported, fmt.Sprintf("unknown cell kind at %s", n.ID))
}

// RangeRefNode represents a rectangular range by its two corner
// identifiers. ranges are only meaningful as function arguments.
type RangeRefNode struct {
	Start string
	End   string
}

func (n *RangeRefNode) Eval(ctx *evalContext) (float64, error) {
	return 0, NewCellError(ErrUnsupported,
		fmt.Sprintf("range %s:%s used outside a function argument", n.Start, n.End))
}

// BinaryNode represents a binary operation
type BinaryNode struct {
	Op    BinaryOp
	Left  Node
	Right Node
}

func (n *BinaryNode) Eval(ctx *evalContext) (float64, error) {
	// the first operand error propagates immediately; the right
	// operand is not evaluated and no value is combined with it
	left, err := n.Left.Eval(ctx)
	if err != nil {
		return 0, err
	}
	right, err := n.Right.Eval(ctx)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case BinOpAdd:
		return left + right, nil
	case BinOpSubtract:
		return left - right, nil
	case BinOpMultiply:
		return left * right, nil
	case BinOpDivide:
		if right == 0 {
			return 0, NewCellError(ErrDivisionByZero, "")
		}
		return left / right, nil
	case BinOpEqual:
		if left == right {
			return 1, nil
		}
		return 0, nil
	}

	// the remaining comparisons only exist inside the criteria
	// sub-grammar
	return 0, NewCellError(ErrUnsupported,
		fmt.Sprintf("operator %s not supported in formulas", binaryOpStrings[n.Op]))
}

// UnaryNode represents a unary operation
type UnaryNode struct {
	Op      UnaryOp
	Operand Node
}

func (n *UnaryNode) Eval(ctx *evalContext) (float64, error) {
	value, err := n.Operand.Eval(ctx)
	if err != nil {
		return 0, err
	}
	if n.Op == UnaryOpMinus {
		return -value, nil
	}
	return value, nil
}

// GroupNode represents a parenthesized expression
type GroupNode struct {
	Inner Node
}

func (n *GroupNode) Eval(ctx *evalContext) (float64, error) {
	return n.Inner.Eval(ctx)
}

// CallNode represents a function call
type CallNode struct {
	Name string
	Args []Node
}

func (n *CallNode) Eval(ctx *evalContext) (float64, error) {
	return ctx.funcs.Call(ctx, n.Name, n.Args)
}

// Parser parses tokens into an AST
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser over the given tokens
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseFormula tokenizes and parses formula text (including the
// leading "="), returning the AST or an ErrParse cell error
func ParseFormula(formula string) (Node, error) {
	tokens, err := NewLexer(formula).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// evalFormulaText parses and evaluates formula text against the
// context's grid. used for formula cells referenced by other formulas.
func evalFormulaText(ctx *evalContext, formula string) (float64, error) {
	node, err := ParseFormula(formula)
	if err != nil {
		return 0, err
	}
	return node.Eval(ctx)
}

// Parse parses the tokens into an AST
func (p *Parser) Parse() (Node, error) {
	if len(p.tokens) == 0 {
		return nil, NewCellError(ErrParse, "no tokens to parse")
	}

	if p.tokens[p.pos].Type != TokenEquals {
		return nil, NewCellError(ErrParse, "formula must start with '='")
	}
	p.pos++ // consume the equals prefix

	node, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	// ensure all tokens are consumed except EOF
	if p.pos < len(p.tokens) && p.tokens[p.pos].Type != TokenEOF {
		return nil, NewCellError(ErrParse,
			fmt.Sprintf("unexpected token after expression: %s", p.tokens[p.pos].Value))
	}

	return node, nil
}

// parseEquality handles comparison operators (lowest precedence). all
// comparisons parse here so the criteria sub-grammar can reuse the
// full parser; evaluation restricts which are legal where.
func (p *Parser) parseEquality() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.Type != TokenBinaryOp {
			break
		}

		var op BinaryOp
		switch tok.Value {
		case "==":
			op = BinOpEqual
		case "!=", "<>":
			op = BinOpNotEqual
		case "<":
			op = BinOpLess
		case "<=":
			op = BinOpLessEqual
		case ">":
			op = BinOpGreater
		case ">=":
			op = BinOpGreaterEqual
		default:
			return left, nil
		}

		p.pos++
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}

	return left, nil
}

// parseAdditive handles addition and subtraction
func (p *Parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.Type != TokenBinaryOp || (tok.Value != "+" && tok.Value != "-") {
			break
		}

		op := BinOpAdd
		if tok.Value == "-" {
			op = BinOpSubtract
		}

		p.pos++
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}

	return left, nil
}

// parseMultiplicative handles multiplication and division
func (p *Parser) parseMultiplicative() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.Type != TokenBinaryOp || (tok.Value != "*" && tok.Value != "/") {
			break
		}

		op := BinOpMultiply
		if tok.Value == "/" {
			op = BinOpDivide
		}

		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}

	return left, nil
}

// parseUnary handles unary plus and minus
func (p *Parser) parseUnary() (Node, error) {
	if p.pos >= len(p.tokens) {
		return nil, NewCellError(ErrParse, "unexpected end of expression")
	}

	tok := p.tokens[p.pos]
	if tok.Type == TokenUnaryPrefixOp {
		op := UnaryOpPlus
		if tok.Value == "-" {
			op = UnaryOpMinus
		}

		p.pos++
		operand, err := p.parseUnary() // recurse for chained unary operators
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: op, Operand: operand}, nil
	}

	return p.parsePrimary()
}

// parsePrimary handles literals, references, ranges, function calls
// and parenthesized expressions
func (p *Parser) parsePrimary() (Node, error) {
	if p.pos >= len(p.tokens) {
		return nil, NewCellError(ErrParse, "unexpected end of expression")
	}

	tok := p.tokens[p.pos]
	switch tok.Type {
	case TokenNumber:
		p.pos++
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, NewCellError(ErrParse, fmt.Sprintf("unknown token: %s", tok.Value))
		}
		return &NumberNode{Value: value}, nil

	case TokenString:
		p.pos++
		return &StringNode{Value: tok.Value}, nil

	case TokenCell, TokenIdentifier:
		p.pos++
		return &CellRefNode{ID: tok.Value}, nil

	case TokenRange:
		p.pos++
		if strings.ContainsRune(tok.Value, charColon) {
			start, end, ok := SplitRangeRef(tok.Value)
			if !ok {
				return nil, NewCellError(ErrParse, fmt.Sprintf("malformed range: %s", tok.Value))
			}
			return &RangeRefNode{Start: start, End: end}, nil
		}
		start, end := SplitRangeToken(tok.Value)
		return &RangeRefNode{Start: start, End: end}, nil

	case TokenFunction:
		return p.parseCall()

	case TokenLeftParen:
		p.pos++ // consume '('
		inner, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.tokens) || p.tokens[p.pos].Type != TokenRightParen {
			return nil, NewCellError(ErrParse, "expected closing parenthesis")
		}
		p.pos++ // consume ')'
		return &GroupNode{Inner: inner}, nil
	}

	return nil, NewCellError(ErrParse, fmt.Sprintf("unexpected token: %s", tok.Value))
}

// parseCall parses a function call NAME(arg, arg, ...)
func (p *Parser) parseCall() (Node, error) {
	name := p.tokens[p.pos].Value
	p.pos++ // consume function name

	if p.pos >= len(p.tokens) || p.tokens[p.pos].Type != TokenLeftParen {
		return nil, NewCellError(ErrParse, fmt.Sprintf("expected '(' after %s", name))
	}
	p.pos++ // consume '('

	var args []Node
	if p.pos < len(p.tokens) && p.tokens[p.pos].Type == TokenRightParen {
		p.pos++ // empty argument list
		return &CallNode{Name: name, Args: args}, nil
	}

	for {
		arg, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.pos >= len(p.tokens) {
			return nil, NewCellError(ErrParse, fmt.Sprintf("unterminated call to %s", name))
		}
		switch p.tokens[p.pos].Type {
		case TokenComma:
			p.pos++
			continue
		case TokenRightParen:
			p.pos++
			return &CallNode{Name: name, Args: args}, nil
		default:
			return nil, NewCellError(ErrParse,
				fmt.Sprintf("unexpected token in call to %s: %s", name, p.tokens[p.pos].Value))
		}
	}
}
