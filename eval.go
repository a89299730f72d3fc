package calculator

import (
	"math"
	"strconv"
)

// Eval evaluates the expression. The result is always finite. A division by
// zero is a DivisionByZero error, and a value too large for a float64 is a
// MalformedNumber error; in either case the result is 0. Eval is safe to call
// concurrently.
func (e *Expr) Eval() (float64, error) {
	return e.n.eval()
}

// eval computes the node's value, left operand first. Chains of binary
// operators parse into left-deep trees as long as the input, so eval walks
// the left spine in a loop and recurses only into right operands and
// parenthesized groups.
func (n *node) eval() (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.val, nil
	case nodeNeg:
		v, err := n.left.eval()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		var spine []*node
		for l := n; isBinary(l.kind); l = l.left {
			spine = append(spine, l)
		}
		v, err := spine[len(spine)-1].left.eval()
		if err != nil {
			return 0, err
		}
		for i := len(spine) - 1; i >= 0; i-- {
			if v, err = spine[i].apply(v); err != nil {
				return 0, err
			}
		}
		return v, nil
	default:
		panic("calculator: invalid AST node " + n.kind.String())
	}
}

func isBinary(k nodeKind) bool {
	return k == nodeAdd || k == nodeSub || k == nodeMul || k == nodeDiv
}

// apply evaluates the right operand of a binary node and combines it with the
// already evaluated left operand l.
func (n *node) apply(l float64) (float64, error) {
	r, err := n.right.eval()
	if err != nil {
		return 0, err
	}
	var v float64
	switch n.kind {
	case nodeAdd:
		v = l + r
	case nodeSub:
		v = l - r
	case nodeMul:
		v = l * r
	case nodeDiv:
		// Guard against division by zero rather than producing inf or NaN.
		// This includes -0.
		if r == 0 {
			return 0, &Error{Kind: DivisionByZero, Col: n.pos, Text: n.name}
		}
		v = l / r
	}
	// Operands are finite, so the only way to leave the finite range is
	// overflow, and NaN cannot occur.
	if math.IsInf(v, 0) {
		return 0, &Error{Kind: MalformedNumber, Col: n.pos, Text: n.name}
	}
	return v, nil
}

// Evaluate is a shortcut to parse and evaluate an expression.
func Evaluate(src string) (float64, error) {
	a, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return a.Eval()
}

// FormatResult renders a result for display. The text is the shortest decimal
// that parses back to exactly v, without an exponent, so integral values have
// no fractional part: 14 is "14" and 2.5 is "2.5". Negative zero is "0".
// For any finite v, Evaluate(FormatResult(v)) returns v.
func FormatResult(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
