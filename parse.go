package calculator

import (
	"strconv"
	"strings"
)

// Expr = Term { ('+' | '-') Term }
// Term = Factor { ('*' | '/') Factor }
// Factor = [ '-' ] ( num | '(' Expr ')' )

// MaxDepth is the deepest nesting of parentheses Parse accepts. An open
// parenthesis beyond it is a SyntaxError.
const MaxDepth = 1000

// Expr is a parsed expression.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse parses an expression. Every rune of src must be in Alphabet; the first
// rune that is not is reported as InvalidCharacter before any parsing is
// attempted. Other problems are reported as MalformedNumber or SyntaxError.
// All errors are of type *Error.
func Parse(src string) (*Expr, error) {
	if err := validate(src); err != nil {
		return nil, err
	}
	scan := lex(strings.NewReader(src))
	n, err := parseexpr(scan)
	if err != nil {
		return nil, err
	}
	if tok := scan.must(); tok.kind != tokenEOF {
		// A close parenthesis with no open one, or an operand that follows
		// another without an operator.
		return nil, unexpected(tok)
	}
	return &Expr{n: n}, nil
}

// parseexpr parses a sum of terms. If there is no error, then parseexpr
// pushes the last token it scans, including EOF.
func parseexpr(scan *lexer) (*node, error) {
	n, err := parseterm(scan)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || (tok.text != "+" && tok.text != "-") {
			scan.push(tok)
			return n, nil
		}
		rhs, err := parseterm(scan)
		if err != nil {
			return nil, err
		}
		n = &node{kind: binop(tok.text), name: tok.text, pos: tok.pos, left: n, right: rhs}
	}
}

// parseterm parses a product of factors. If there is no error, then parseterm
// pushes the last token it scans, including EOF.
func parseterm(scan *lexer) (*node, error) {
	n, err := parsefactor(scan)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || (tok.text != "*" && tok.text != "/") {
			scan.push(tok)
			return n, nil
		}
		rhs, err := parsefactor(scan)
		if err != nil {
			return nil, err
		}
		n = &node{kind: binop(tok.text), name: tok.text, pos: tok.pos, left: n, right: rhs}
	}
}

// parsefactor parses a number or parenthesized expression with an optional
// leading minus. It consumes exactly the tokens of the factor.
func parsefactor(scan *lexer) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var neg *node
	if tok.kind == tokenOp && tok.text == "-" {
		neg = &node{kind: nodeNeg, name: tok.text, pos: tok.pos}
		tok, err = scan.next()
		if err != nil {
			return nil, err
		}
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			// The lexer only produces well-formed literals, so this is a
			// literal too large for a float64.
			return nil, &Error{Kind: MalformedNumber, Col: tok.pos, Text: tok.text}
		}
		n = &node{kind: nodeNum, name: tok.text, val: v, pos: tok.pos}
	case tokenOpen:
		if scan.depth >= MaxDepth {
			return nil, unexpected(tok)
		}
		scan.depth++
		n, err = parseexpr(scan)
		if err != nil {
			return nil, err
		}
		if end := scan.must(); end.kind != tokenClose {
			// EOF means the parenthesis was never closed.
			return nil, unexpected(end)
		}
		scan.depth--
	default:
		// An operator, a close parenthesis, or EOF where an operand belongs.
		return nil, unexpected(tok)
	}
	if neg != nil {
		neg.left = n
		n = neg
	}
	return n, nil
}

// unexpected returns a syntax error for a token that cannot appear where it
// was scanned.
func unexpected(tok lexToken) error {
	return &Error{Kind: SyntaxError, Col: tok.pos, Text: tok.text}
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	return e.n.String()
}
