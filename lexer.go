package spreadsheet

// TokenType represents different types of tokens in formulas
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenEquals
	TokenNumber
	TokenString
	TokenCell
	TokenRange
	TokenIdentifier
	TokenFunction
	TokenBinaryOp
	TokenUnaryPrefixOp
	TokenComma
	TokenLeftParen
	TokenRightParen
	TokenError
)

// character classification constants. slightly easier to read.
const (
	charNull       = 0
	charTab        = '\t'
	charSpace      = ' '
	charQuote      = '"'
	charLParen     = '('
	charRParen     = ')'
	charAsterisk   = '*'
	charPlus       = '+'
	charComma      = ','
	charMinus      = '-'
	charPeriod     = '.'
	charSlash      = '/'
	charColon      = ':'
	charLess       = '<'
	charEqual      = '='
	charGreater    = '>'
	charUnderscore = '_'
	charExclaim    = '!'
)

// Token represents a lexical token with position information
type Token struct {
	Type  TokenType
	Value string
	Pos   int // byte position in input
}

// Lexer tokenizes formula expressions. the input must carry the
// leading "=" prefix; the prefix becomes the first token.
type Lexer struct {
	input      string
	pos        int
	parenDepth int
	last       TokenType // last emitted token, for unary detection
	started    bool
	tokens     []Token
}

// NewLexer creates a new lexer for the given formula input
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		tokens: []Token{},
	}
}

// Tokenize tokenizes the entire input and returns the tokens and any
// error. errors are ErrParse cell errors, recoverable per formula.
func (l *Lexer) Tokenize() ([]Token, error) {
	if len(l.input) == 0 || l.input[0] != charEqual {
		return nil, NewCellError(ErrParse, "formula must start with '='")
	}

	for l.pos < len(l.input) {
		tok := l.nextToken()
		if tok.Type == TokenError {
			return nil, NewCellError(ErrParse, tok.Value)
		}
		if tok.Type == TokenEOF {
			break
		}
		l.tokens = append(l.tokens, tok)
		l.last = tok.Type
		l.started = true
	}

	if l.parenDepth > 0 {
		return nil, NewCellError(ErrParse, "unbalanced parentheses: missing closing parenthesis")
	}

	l.tokens = append(l.tokens, Token{Type: TokenEOF, Pos: l.pos})
	return l.tokens, nil
}

// nextToken returns the next token from the input
func (l *Lexer) nextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}
	}

	startPos := l.pos
	ch := l.current()

	if ch == charQuote {
		return l.scanString()
	}

	if isDigit(ch) || (ch == charPeriod && isDigit(l.peek(1))) {
		return l.scanNumber()
	}

	switch ch {
	case charLParen:
		l.pos++
		l.parenDepth++
		return Token{Type: TokenLeftParen, Value: "(", Pos: startPos}
	case charRParen:
		l.pos++
		l.parenDepth--
		if l.parenDepth < 0 {
			return Token{Type: TokenError, Value: "unexpected closing parenthesis", Pos: startPos}
		}
		return Token{Type: TokenRightParen, Value: ")", Pos: startPos}
	case charComma:
		l.pos++
		return Token{Type: TokenComma, Value: ",", Pos: startPos}
	case charPlus, charMinus:
		l.pos++
		if l.isUnaryContext() {
			return Token{Type: TokenUnaryPrefixOp, Value: string(ch), Pos: startPos}
		}
		return Token{Type: TokenBinaryOp, Value: string(ch), Pos: startPos}
	case charAsterisk:
		l.pos++
		return Token{Type: TokenBinaryOp, Value: "*", Pos: startPos}
	case charSlash:
		l.pos++
		return Token{Type: TokenBinaryOp, Value: "/", Pos: startPos}
	case charEqual:
		if !l.started {
			// formula prefix
			l.pos++
			return Token{Type: TokenEquals, Value: "=", Pos: startPos}
		}
		l.pos++
		if l.current() == charEqual {
			l.pos++
		}
		// bare "=" and "==" both compare for equality
		return Token{Type: TokenBinaryOp, Value: "==", Pos: startPos}
	case charLess:
		l.pos++
		if l.current() == charEqual {
			l.pos++
			return Token{Type: TokenBinaryOp, Value: "<=", Pos: startPos}
		}
		if l.current() == charGreater {
			l.pos++
			return Token{Type: TokenBinaryOp, Value: "<>", Pos: startPos}
		}
		return Token{Type: TokenBinaryOp, Value: "<", Pos: startPos}
	case charGreater:
		l.pos++
		if l.current() == charEqual {
			l.pos++
			return Token{Type: TokenBinaryOp, Value: ">=", Pos: startPos}
		}
		return Token{Type: TokenBinaryOp, Value: ">", Pos: startPos}
	case charExclaim:
		l.pos++
		if l.current() == charEqual {
			l.pos++
			return Token{Type: TokenBinaryOp, Value: "!=", Pos: startPos}
		}
		return Token{Type: TokenError, Value: "unexpected '!'", Pos: startPos}
	}

	if isAlpha(ch) || ch == charUnderscore {
		return l.scanIdentifierOrCell()
	}

	l.pos++
	return Token{Type: TokenError, Value: "unexpected character: " + string(ch), Pos: startPos}
}

func (l *Lexer) current() byte {
	if l.pos >= len(l.input) {
		return charNull
	}
	return l.input[l.pos]
}

func (l *Lexer) peek(offset int) byte {
	pos := l.pos + offset
	if pos >= len(l.input) || pos < 0 {
		return charNull
	}
	return l.input[pos]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		ch := l.current()
		if ch == charSpace || ch == charTab {
			l.pos++
		} else {
			break
		}
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}

// isUnaryContext checks if the current position allows for a unary
// operator: at the start of an expression, after the = prefix, after
// another operator, after a left paren, or after a comma
func (l *Lexer) isUnaryContext() bool {
	if !l.started {
		return true
	}
	switch l.last {
	case TokenEquals, TokenBinaryOp, TokenUnaryPrefixOp, TokenLeftParen, TokenComma:
		return true
	default:
		return false
	}
}

// scanNumber scans a number token including decimals
func (l *Lexer) scanNumber() Token {
	startPos := l.pos

	for l.pos < len(l.input) && isDigit(l.current()) {
		l.pos++
	}

	if l.current() == charPeriod && isDigit(l.peek(1)) {
		l.pos++ // consume '.'
		for l.pos < len(l.input) && isDigit(l.current()) {
			l.pos++
		}
	}

	return Token{Type: TokenNumber, Value: l.input[startPos:l.pos], Pos: startPos}
}

// scanString scans a double-quoted string literal
func (l *Lexer) scanString() Token {
	startPos := l.pos
	l.pos++ // consume opening quote

	contentStart := l.pos
	for l.pos < len(l.input) && l.current() != charQuote {
		l.pos++
	}

	if l.pos >= len(l.input) {
		return Token{Type: TokenError, Value: "unclosed string literal", Pos: startPos}
	}

	value := l.input[contentStart:l.pos]
	l.pos++ // consume closing quote
	return Token{Type: TokenString, Value: value, Pos: startPos}
}

// scanIdentifierOrCell scans identifiers, cell references, ranges and
// function names
func (l *Lexer) scanIdentifierOrCell() Token {
	startPos := l.pos

	for l.pos < len(l.input) && (isAlphaNumeric(l.current()) || l.current() == charUnderscore) {
		l.pos++
	}

	value := l.input[startPos:l.pos]

	if isCellToken(value) {
		// check for the colon range form A1:B3
		if l.current() == charColon {
			savedPos := l.pos
			l.pos++ // consume ':'

			cellStart := l.pos
			for l.pos < len(l.input) && isAlphaNumeric(l.current()) {
				l.pos++
			}

			secondCell := l.input[cellStart:l.pos]
			if isCellToken(secondCell) {
				return Token{Type: TokenRange, Value: l.input[startPos:l.pos], Pos: startPos}
			}
			// not a valid range, restore and return just the cell
			l.pos = savedPos
		}
		return Token{Type: TokenCell, Value: value, Pos: startPos}
	}

	// the colon-stripped pseudo-identifier form ("A1B3") still appears
	// in stored formulas; recognize it as a range here
	if IsRangeToken(value) {
		return Token{Type: TokenRange, Value: value, Pos: startPos}
	}

	// function names are identifiers directly followed by an open
	// paren. case is preserved: function matching is case-sensitive.
	if l.current() == charLParen {
		return Token{Type: TokenFunction, Value: value, Pos: startPos}
	}

	return Token{Type: TokenIdentifier, Value: value, Pos: startPos}
}

// isCellToken checks if a string looks like a cell reference: one or
// more letters followed by one or more digits. whether the reference
// actually decodes is the codec's concern, not the lexer's.
func isCellToken(s string) bool {
	if len(s) < 2 {
		return false
	}

	letterEnd := 0
	for i := 0; i < len(s); i++ {
		if isAlpha(s[i]) {
			letterEnd = i + 1
		} else {
			break
		}
	}

	if letterEnd == 0 || letterEnd == len(s) {
		return false
	}

	for i := letterEnd; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
