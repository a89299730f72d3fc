// Package session holds the display buffer of a keystroke calculator.
//
// A Session receives logical events from a front end, one method per event,
// and returns the text to display after each. It knows nothing about windows
// or keyboards; mapping physical keys to events is the front end's job.
//
// After a result or the error marker is shown, typing appends to it rather
// than starting over, so "7+3=" then "*2=" shows 10 and then 20. Typing a
// digit after "Erro" produces text that fails to evaluate again until the
// display is cleared or edited back.
//
// A Session is not safe for concurrent use.
package session

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/zephyrtronium/calculator"
)

// ErrorMarker is the display text after a failed evaluation.
const ErrorMarker = "Erro"

// Session is the state of one calculator display.
type Session struct {
	buf  []byte
	eval func(string) (float64, error)
	log  *slog.Logger
	err  error
}

// Option is an option used when creating a session.
type Option interface {
	apply(*Session)
}

type (
	logopt  struct{ log *slog.Logger }
	evalopt func(string) (float64, error)
)

func (o logopt) apply(s *Session) { s.log = o.log }

func (o evalopt) apply(s *Session) { s.eval = o }

// WithLogger sets the logger for events and evaluation failures. All logging
// is at debug level. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return logopt{log}
}

// WithEvaluator replaces calculator.Evaluate as the function that evaluates
// the display.
func WithEvaluator(eval func(string) (float64, error)) Option {
	return evalopt(eval)
}

// New creates a session with an empty display.
func New(opts ...Option) *Session {
	s := Session{
		eval: calculator.Evaluate,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(&s)
	}
	return &s
}

// Display returns the current display text.
func (s *Session) Display() string {
	return string(s.buf)
}

// LastErr returns the error from the most recent event if it was a failed
// evaluation, or nil otherwise. The display shows only ErrorMarker; LastErr
// says why.
func (s *Session) LastErr() error {
	return s.err
}

// Char appends c to the display. Runes outside calculator.Alphabet are
// ignored.
func (s *Session) Char(c rune) string {
	s.err = nil
	if !strings.ContainsRune(calculator.Alphabet, c) {
		s.log.Debug("ignored rune", slog.String("rune", string(c)))
		return s.Display()
	}
	// Everything in the alphabet is a single byte.
	s.buf = append(s.buf, byte(c))
	s.log.Debug("append", slog.String("rune", string(c)), slog.String("display", s.Display()))
	return s.Display()
}

// Clear empties the display.
func (s *Session) Clear() string {
	s.err = nil
	s.buf = s.buf[:0]
	s.log.Debug("clear")
	return ""
}

// Backspace removes the last character of the display. It does nothing if the
// display is empty.
func (s *Session) Backspace() string {
	s.err = nil
	if len(s.buf) > 0 {
		s.buf = s.buf[:len(s.buf)-1]
	}
	s.log.Debug("backspace", slog.String("display", s.Display()))
	return s.Display()
}

// Evaluate replaces the display with the result of evaluating it, rendered by
// calculator.FormatResult, or with ErrorMarker if evaluation fails. It does
// nothing if the display is empty.
func (s *Session) Evaluate() string {
	s.err = nil
	if len(s.buf) == 0 {
		return ""
	}
	src := s.Display()
	r, err := s.eval(src)
	if err == nil && (math.IsInf(r, 0) || math.IsNaN(r)) {
		// Only a replaced evaluator can get here.
		err = calculator.MalformedNumber
	}
	s.buf = s.buf[:0]
	if err != nil {
		s.err = err
		attrs := []any{slog.String("expr", src), slog.String("err", err.Error())}
		var e *calculator.Error
		if errors.As(err, &e) {
			attrs = append(attrs, slog.String("kind", e.Kind.Error()), slog.Int("col", e.Col))
		}
		s.log.Debug("evaluation failed", attrs...)
		s.buf = append(s.buf, ErrorMarker...)
		return ErrorMarker
	}
	s.buf = append(s.buf, calculator.FormatResult(r)...)
	s.log.Debug("evaluated", slog.String("expr", src), slog.String("display", s.Display()))
	return s.Display()
}
