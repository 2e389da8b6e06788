// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"fmt"
	"io"

	"github.com/db47h/vcdiff/internal/token"
	"github.com/pkg/errors"
)

// File is a parsed VCD stream: its scope/variable hierarchy plus enough
// parser state to pump value-change events one timestamp at a time. It
// plays the role vcdfile.cc's VcdFile class plays in the tool this package
// was ported from.
type File struct {
	name string
	tok  *token.Tokenizer
	opts Options
	warn io.Writer

	root *Scope
	cur  *Scope

	timescale int

	curTimestamp, nextTimestamp uint64

	// idents maps a VCD identifier string to the Variable it drives. A
	// single identifier may be shared by several declared names (an
	// Alias is created for every name after the first).
	idents map[string]Variable
}

// Open returns a File ready to parse r. name is used only for diagnostics
// and as the root scope's display name.
func Open(name string, r io.Reader, opts Options, warn io.Writer) *File {
	root := NewRootScope("(" + name + ")")
	return &File{
		name:   name,
		tok:    token.New(r),
		opts:   opts,
		warn:   warn,
		root:   root,
		cur:    root,
		idents: map[string]Variable{},
	}
}

// Name returns the file's display name.
func (f *File) Name() string { return f.name }

// Valid reports whether the underlying tokenizer can still produce tokens.
func (f *File) Valid() bool { return f.tok.Valid() }

// Timescale returns the parsed $timescale exponent (e.g. -9 for "1ns").
func (f *File) Timescale() int { return f.timescale }

// RootScope returns the top of the parsed scope hierarchy.
func (f *File) RootScope() *Scope { return f.root }

// LineNumber reports the tokenizer's current line, for diagnostics.
func (f *File) LineNumber() int { return f.tok.LineNumber() }

// NextTimestamp returns the timestamp the next call to NextDelta will
// advance to.
func (f *File) NextTimestamp() uint64 { return f.nextTimestamp }

func (f *File) pushScope(kind ScopeKind, name string) {
	f.cur = f.cur.MakeScope(kind, name)
}

func (f *File) popScope() {
	if f.cur.Parent() == nil {
		panic("vcd: $upscope with no enclosing scope")
	}
	f.cur = f.cur.Parent()
}

func (f *File) warnf(format string, args ...interface{}) {
	if f.warn == nil {
		return
	}
	fmt.Fprintf(f.warn, "Warning: %s:%d: "+format+"\n", append([]interface{}{f.name, f.tok.LineNumber()}, args...)...)
}

func (f *File) infof(format string, args ...interface{}) {
	if f.warn == nil {
		return
	}
	fmt.Fprintf(f.warn, "Info: %s: "+format+"\n", append([]interface{}{f.name}, args...)...)
}

func (f *File) errorf(format string, args ...interface{}) error {
	return errors.Errorf("%s:%d: "+format, append([]interface{}{f.name, f.tok.LineNumber()}, args...)...)
}

func (f *File) foldCase(s string) string {
	if f.opts.IgnoreCase {
		return s
	}
	return lowerASCII(s)
}
