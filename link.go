// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import "github.com/pkg/errors"

// Link pairs a Variable from file 1 with its structurally matched
// counterpart in file 2. It is created once, during structural mapping, and
// is the unit the comparator's drive loop tracks changes against.
type Link struct {
	First, Second Variable
}

// NewLink returns a Link for two equal-size variables, or an error if their
// sizes differ: a Link whose endpoints disagree on size is a contradiction
// the comparator must never construct (compare_and_match refuses to link
// mismatched variables before a Link is ever created).
func NewLink(first, second Variable) (*Link, error) {
	if first.Size() != second.Size() {
		return nil, errors.Errorf("vcd: cannot link %q (size %d) to %q (size %d)",
			first.FullName(), first.Size(), second.FullName(), second.Size())
	}
	return &Link{First: first, Second: second}, nil
}

// Equal reports whether the two endpoints currently hold the same value.
// This is always a comparison of current values; the CompareStates option
// changes when the comparator clears transitions, not what Equal itself
// compares.
func (l *Link) Equal() bool {
	return l.First.ValueString() == l.Second.ValueString()
}

// Hash returns a fingerprint that is zero whenever First and Second agree,
// by XOR-combining their endpoint hashes. This makes a self-compare (a file
// diffed against itself) sum to zero at every timestamp, which the
// comparator's test mode relies on.
func (l *Link) Hash() uint64 {
	return l.First.Hash() ^ l.Second.Hash()
}

// String renders the link the way diff mode prints a mismatch: both
// variables, each followed by its current value.
func (l *Link) String() string {
	return QualifiedName(l.First) + "\t= " + l.First.ValueString() + "\n" +
		QualifiedName(l.Second) + "\t= " + l.Second.ValueString()
}
