// Package lines drives a calculator session from lines of text, for use when
// input is not a terminal.
//
// Each line is a keystroke script. Every rune is looked up in the keymap as a
// one-character key name, so with the default keymap "=" evaluates, "C"
// clears, and "←" deletes; other runes are typed. After each line the display
// is written as its own line. The session carries over from line to line, so
//
//	7+3=
//	*2=
//
// prints 10 and then 20.
package lines

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/zephyrtronium/calculator/internal/config"
	"github.com/zephyrtronium/calculator/session"
)

// Run reads scripts from r until EOF or until ctx is done, writing the display
// to w after each line. Quit bindings end the run early.
func Run(ctx context.Context, r io.Reader, w io.Writer, s *session.Session, km config.Keymap) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		quit := feed(s, km, sc.Text())
		if _, err := fmt.Fprintln(w, s.Display()); err != nil {
			return fmt.Errorf("writing display: %w", err)
		}
		if quit {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// feed applies one line of keystrokes to s. It reports whether a quit key was
// seen, in which case the rest of the line is ignored.
func feed(s *session.Session, km config.Keymap, line string) bool {
	for _, c := range line {
		ev, ok := km.Event(string(c))
		if !ok {
			s.Char(c)
			continue
		}
		switch ev {
		case config.EventEvaluate:
			s.Evaluate()
		case config.EventClear:
			s.Clear()
		case config.EventBackspace:
			s.Backspace()
		case config.EventQuit:
			return true
		}
	}
	return false
}
