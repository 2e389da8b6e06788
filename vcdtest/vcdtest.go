// Package vcdtest provides small helpers for building in-memory VCD
// fixtures and running them through a Comparator in tests, in the style of
// the circuit-construction test helpers this port grew out of.
package vcdtest

import (
	"strings"
	"testing"

	"github.com/db47h/vcdiff"
)

// Open builds a *vcd.File from a literal VCD source string and parses its
// header, failing the test immediately on any parse error.
func Open(t *testing.T, name, source string, opts vcd.Options) *vcd.File {
	t.Helper()
	f := vcd.Open(name, strings.NewReader(source), opts, nil)
	if err := f.ParseHeader(); err != nil {
		t.Fatalf("vcdtest: ParseHeader(%s): %v", name, err)
	}
	return f
}

// Result is the outcome of running two VCD sources through a Comparator.
type Result struct {
	Code   int
	Output string
}

// Compare builds two files from source text, diffs them with opts, and
// returns the process exit code and diff/test-mode output. name1 and name2
// appear only in diagnostics.
func Compare(t *testing.T, name1, source1, name2, source2 string, opts vcd.Options) Result {
	t.Helper()
	f1 := vcd.Open(name1, strings.NewReader(source1), opts, nil)
	f2 := vcd.Open(name2, strings.NewReader(source2), opts, nil)

	var out strings.Builder
	c := vcd.NewComparator(f1, f2, opts, &out)
	code := c.Compare()
	return Result{Code: code, Output: out.String()}
}

// HasDiff reports whether r's output contains at least one diff block.
func (r Result) HasDiff() bool {
	return strings.Contains(r.Output, "diff #")
}
