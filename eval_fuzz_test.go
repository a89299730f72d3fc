package calculator_test

import (
	"errors"
	"math"
	"testing"

	"github.com/zephyrtronium/calculator"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("2+3*4")
	f.Add("5/0")
	f.Add("1.2.3")
	f.Add("2+a")
	f.Add("")
	f.Fuzz(func(t *testing.T, s string) {
		r, err := calculator.Evaluate(s)
		if err == nil {
			if math.IsInf(r, 0) || math.IsNaN(r) {
				t.Errorf("%q: non-finite result %g", s, r)
			}
			// The rendered result must evaluate to itself.
			again, err := calculator.Evaluate(calculator.FormatResult(r))
			if err != nil || again != r {
				t.Errorf("%q = %g renders as %q, which evaluates to %g, %v", s, r, calculator.FormatResult(r), again, err)
			}
			return
		}
		var e *calculator.Error
		if !errors.As(err, &e) {
			t.Fatalf("%q: error %v is %T, not *calculator.Error", s, err, err)
		}
		switch e.Kind {
		case calculator.InvalidCharacter, calculator.MalformedNumber, calculator.SyntaxError, calculator.DivisionByZero:
		default:
			t.Errorf("%q: unknown error kind %v", s, e.Kind)
		}
	})
}
