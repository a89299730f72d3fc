package calculator

import "strconv"

// ErrorKind classifies why an expression could not be evaluated. Each kind is
// itself an error, and every *Error unwraps to its kind, so callers can test
// with errors.Is(err, calculator.DivisionByZero).
type ErrorKind int

const (
	kindNone ErrorKind = iota
	// InvalidCharacter means the input contains a rune outside Alphabet.
	InvalidCharacter
	// MalformedNumber means a number literal has more than one decimal point
	// or no digits, or a value does not fit in a finite float64.
	MalformedNumber
	// SyntaxError means the tokens do not form an expression: empty input,
	// unbalanced parentheses, a dangling operator, or a missing operand.
	SyntaxError
	// DivisionByZero means the right operand of a division evaluated to zero.
	DivisionByZero
)

func (k ErrorKind) Error() string {
	switch k {
	case InvalidCharacter:
		return "invalid character"
	case MalformedNumber:
		return "malformed number"
	case SyntaxError:
		return "syntax error"
	case DivisionByZero:
		return "division by zero"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error is an error with position information. Every error returned by Parse,
// Expr.Eval, and Evaluate is an *Error.
type Error struct {
	// Kind is the reason for the error.
	Kind ErrorKind
	// Col is the 1-based rune column of the token that caused the error. For
	// division by zero it is the column of the / operator.
	Col int
	// Text is the offending rune, literal, or operator. It is empty when the
	// input ended where more was expected.
	Text string
}

func (err *Error) Error() string {
	msg := err.Kind.Error()
	switch {
	case err.Kind == DivisionByZero:
		// The operator is always "/", so it adds nothing.
	case err.Text == "":
		msg += " at end of input"
	default:
		msg += " at " + strconv.Quote(err.Text)
	}
	return errpos(err.Col, msg)
}

// Unwrap returns the error's kind.
func (err *Error) Unwrap() error {
	return err.Kind
}

// Pos returns the position of the error as the number of runes up to and
// including the start of the token that caused the error.
func (err *Error) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}
