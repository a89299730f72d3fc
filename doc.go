// Package calculator implements the arithmetic evaluator behind a keystroke
// calculator.
//
// An expression is built from decimal numbers, the binary operators + - * /,
// a leading unary minus on any operand, parentheses, and spaces. "2+3*4" is
// 14; "-(2+3)*4" is -20. Anything else is rejected with an *Error whose Kind
// tells why: a character outside Alphabet, a malformed number, a syntax error,
// or a division by zero.
//
// Evaluate parses and evaluates in one step. Parse returns the tree so it can
// be printed or evaluated later. FormatResult renders a result the way the
// calculator display shows it, in a form Evaluate accepts again.
//
// The stateful part of the calculator, the display buffer that keystrokes edit,
// is in package session.
package calculator
