// Package token implements a whitespace-delimited line tokenizer for VCD
// files: Next/Peek/Expect/Put plus line tracking, in the spirit of the VCD
// reader's own hand-rolled lexer.
package token

import (
	"bufio"
	"io"
	"strings"
)

// Tokenizer splits a VCD stream into whitespace-delimited tokens. A token
// never spans a line break: the underlying reader is consumed one line at a
// time and each line is split on whitespace independently, matching the
// original C++ tool's line-buffered design.
type Tokenizer struct {
	br   *bufio.Reader
	line int
	toks []string

	back   *string
	last   string
	lastOK bool

	ok  bool
	eof bool
}

// New returns a Tokenizer reading from r.
func New(r io.Reader) *Tokenizer {
	return &Tokenizer{br: bufio.NewReader(r), ok: true}
}

// Next returns the next token and true, or ("", false) once the stream is
// exhausted or a read error occurred.
func (t *Tokenizer) Next() (string, bool) {
	if t.back != nil {
		s := *t.back
		t.back = nil
		t.last, t.lastOK = s, true
		return s, true
	}

	for len(t.toks) == 0 {
		if !t.fill() {
			t.last, t.lastOK = "", false
			return "", false
		}
	}

	tok := t.toks[0]
	t.toks = t.toks[1:]
	t.last, t.lastOK = tok, true
	return tok, true
}

// Peek returns the next token without consuming it.
func (t *Tokenizer) Peek() (string, bool) {
	tok, ok := t.Next()
	if ok {
		t.Put()
	}
	return tok, ok
}

// Put pushes the most recently returned token back onto the stream. Only one
// level of putback is supported; calling it without an intervening Next or
// Peek is a no-op.
func (t *Tokenizer) Put() {
	if t.lastOK {
		s := t.last
		t.back = &s
	}
}

// Expect consumes the next token if it equals literal, returning true in
// that case. Otherwise the token is pushed back and false is returned.
func (t *Tokenizer) Expect(literal string) bool {
	tok, ok := t.Next()
	if ok && tok == literal {
		return true
	}
	if ok {
		t.Put()
	}
	return false
}

// LineNumber reports the 1-based line the most recently read token came
// from.
func (t *Tokenizer) LineNumber() int {
	return t.line
}

// Valid reports whether the tokenizer can still produce tokens. It goes
// false once the underlying stream is exhausted or errored; a null token is
// returned from Next/Peek at that point.
func (t *Tokenizer) Valid() bool {
	return t.ok || len(t.toks) > 0 || t.back != nil
}

// fill reads lines until one yields at least one token, or the stream ends.
func (t *Tokenizer) fill() bool {
	if !t.ok {
		return false
	}

	for {
		line, err := t.br.ReadString('\n')
		if line != "" {
			t.line++
			t.toks = strings.Fields(line)
		}
		if err != nil {
			if err != io.EOF {
				t.ok = false
				return len(t.toks) > 0
			}
			t.eof = true
			t.ok = false
		}
		if len(t.toks) > 0 {
			return true
		}
		if t.eof {
			return false
		}
	}
}

// Err always returns nil; kept for symmetry with bufio.Scanner-shaped
// readers. A genuine I/O error only ever surfaces as Valid() going false,
// matching the original tool's tokenizer.good() contract.
func (t *Tokenizer) Err() error {
	return nil
}
