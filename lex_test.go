package calculator

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		err    ErrorKind
	}{
		// spaces
		{"", nil, kindNone},
		{"   ", nil, kindNone},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}}, kindNone},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}}, kindNone},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}}, kindNone},
		{"1.0", []lexToken{{text: "1.0", kind: tokenNum, pos: 1}}, kindNone},
		{"1.", []lexToken{{text: "1.", kind: tokenNum, pos: 1}}, kindNone},
		{".1", []lexToken{{text: ".1", kind: tokenNum, pos: 1}}, kindNone},
		{"  12", []lexToken{{text: "12", kind: tokenNum, pos: 3}}, kindNone},
		{"-1", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}}, kindNone},
		{"1+0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}, kindNone},
		{"1 * 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "*", kind: tokenOp, pos: 3}, {text: "0", kind: tokenNum, pos: 5}}, kindNone},
		{"(1)", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {text: ")", kind: tokenClose, pos: 3}}, kindNone},
		{"2/", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "/", kind: tokenOp, pos: 2}}, kindNone},
		// malformed numbers
		{".", nil, MalformedNumber},
		{"1.1.1", nil, MalformedNumber},
		{"1..", nil, MalformedNumber},
		{"2+..", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}}, MalformedNumber},
		// runes the lexer doesn't know
		{"$", nil, InvalidCharacter},
		{"1a", []lexToken{{text: "1", kind: tokenNum, pos: 1}}, InvalidCharacter},
		{"\t", nil, InvalidCharacter},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		var got []lexToken
		var err error
		for {
			var tok lexToken
			tok, err = scan.next()
			if err != nil || tok.kind == tokenEOF {
				break
			}
			got = append(got, tok)
		}
		if diff := cmp.Diff(c.tokens, got, cmp.AllowUnexported(lexToken{})); diff != "" {
			t.Errorf("scanning %q: tokens differ (-want +got):\n%s", c.src, diff)
		}
		if c.err == kindNone {
			if err != nil {
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
			}
			if _, err := scan.next(); err != io.EOF {
				t.Errorf("scanning %q: expected io.EOF after EOF token, got %v", c.src, err)
			}
			continue
		}
		if !errors.Is(err, c.err) {
			t.Errorf("scanning %q: want %v, got %v", c.src, c.err, err)
		}
	}
}

func TestLexPush(t *testing.T) {
	scan := lex(strings.NewReader("1+2"))
	tok, err := scan.next()
	if err != nil {
		t.Fatal(err)
	}
	scan.push(tok)
	again, err := scan.next()
	if err != nil {
		t.Fatal(err)
	}
	if again != tok {
		t.Errorf("pushed %v, got %v", tok, again)
	}
	scan.push(again)
	if got := scan.must(); got != tok {
		t.Errorf("must: want %v, got %v", tok, got)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		src  string
		col  int
		text string
	}{
		{"", 0, ""},
		{"0123456789.+-*/() ", 0, ""},
		{"2+a", 3, "a"},
		{"x", 1, "x"},
		{"1,5", 2, ","},
		{"2^3", 2, "^"},
		{"1\n", 2, "\n"},
		{"π+1", 1, "π"},
		{"1×2", 2, "×"},
		{"\xff", 1, "�"},
	}
	for _, c := range cases {
		err := validate(c.src)
		if c.col == 0 {
			if err != nil {
				t.Errorf("%q: unexpected error %v", c.src, err)
			}
			continue
		}
		var e *Error
		if !errors.As(err, &e) {
			t.Errorf("%q: want *Error, got %v", c.src, err)
			continue
		}
		want := &Error{Kind: InvalidCharacter, Col: c.col, Text: c.text}
		if *e != *want {
			t.Errorf("%q: want %+v, got %+v", c.src, want, e)
		}
	}
}
