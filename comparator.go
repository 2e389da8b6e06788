// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"fmt"
	"io"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Comparator drives the whole diff: structural mapping of two files' scope
// trees, then a single-threaded time-merged walk over their value-change
// streams. It plays the role Comparator plays in the CERN tool this package
// was ported from (comparator.h/.cc).
type Comparator struct {
	file1, file2 *File
	opts         Options
	out          io.Writer
	warn         io.Writer

	links []*Link
}

// NewComparator returns a Comparator for two already-constructed Files.
// out receives diff/test-mode output; warnings and info notices go to the
// Files' own warn writers (set via Open), or to out when file1 has none.
func NewComparator(file1, file2 *File, opts Options, out io.Writer) *Comparator {
	return &Comparator{file1: file1, file2: file2, opts: opts, out: out, warn: file1.warn}
}

// Compare parses both files' headers, maps their structure, then walks the
// value-change streams to completion. It returns the process exit code the
// CLI should use: 0 on a clean run (regardless of whether diffs were
// found), 1 if either file failed to open, 2 on a header parse error.
func (c *Comparator) Compare() int {
	if !c.file1.Valid() {
		fmt.Fprintf(c.out, "Error opening file %s\n", c.file1.Name())
		return 1
	}
	if !c.file2.Valid() {
		fmt.Fprintf(c.out, "Error opening file %s\n", c.file2.Name())
		return 1
	}

	// The two headers are independent of each other until structural
	// mapping begins, so they parse concurrently.
	var g errgroup.Group
	g.Go(c.file1.ParseHeader)
	g.Go(c.file2.ParseHeader)
	if err := g.Wait(); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return 2
	}

	if c.file1.Timescale() != c.file2.Timescale() {
		fmt.Fprintln(c.warnOut(), "Warning: Compared files use different timescales.")
	}

	c.mapSignals(c.file1.RootScope(), c.file2.RootScope())
	c.checkValueChanges()

	return 0
}

// mapSignals recursively matches scope1's and scope2's child scopes and
// variables by lexicographically sorted name, exactly as
// Comparator::map_signals does: a pair of sorted-merge walks, one over
// subscopes, one over variables, each side advancing independently on a
// name mismatch.
func (c *Comparator) mapSignals(scope1, scope2 *Scope) {
	names1 := skipScopes(scope1.ScopeNames(), scope1, c.opts)
	names2 := skipScopes(scope2.ScopeNames(), scope2, c.opts)

	i, j := 0, 0
	for i < len(names1) && j < len(names2) {
		n1, n2 := names1[i], names2[j]
		switch {
		case n1 == n2:
			c1, _ := scope1.GetScope(n1)
			c2, _ := scope2.GetScope(n2)
			c.mapSignals(c1, c2)
			i++
			j++
		case n1 < n2:
			c.warnMissingScope(scope1, n1, c.file2.Name())
			i++
		default:
			c.warnMissingScope(scope2, n2, c.file1.Name())
			j++
		}
	}
	for ; i < len(names1); i++ {
		c.warnMissingScope(scope1, names1[i], c.file2.Name())
	}
	for ; j < len(names2); j++ {
		c.warnMissingScope(scope2, names2[j], c.file1.Name())
	}

	vars1 := scope1.VarNames()
	vars2 := scope2.VarNames()

	vi, vj := 0, 0
	for vi < len(vars1) && vj < len(vars2) {
		n1, n2 := vars1[vi], vars2[vj]
		switch {
		case n1 == n2:
			v1, _ := scope1.GetVariable(n1)
			v2, _ := scope2.GetVariable(n2)
			c.compareAndMatch(v1, v2)
			vi++
			vj++
		case n1 < n2:
			c.warnMissingVar(scope1, n1, c.file2.Name())
			vi++
		default:
			c.warnMissingVar(scope2, n2, c.file1.Name())
			vj++
		}
	}
	for ; vi < len(vars1); vi++ {
		c.warnMissingVar(scope1, vars1[vi], c.file2.Name())
	}
	for ; vj < len(vars2); vj++ {
		c.warnMissingVar(scope2, vars2[vj], c.file1.Name())
	}
}

// skipScopes removes scope names whose kind is excluded by a -S<flag>, the
// supplement this port adds over the original tool (whose equivalent
// globals were declared but never consulted).
func skipScopes(names []string, scope *Scope, opts Options) []string {
	out := names[:0:0]
	for _, n := range names {
		child, _ := scope.GetScope(n)
		if opts.SkipsScope(child.Kind()) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func (c *Comparator) warnMissingScope(scope *Scope, name, otherFile string) {
	if !c.opts.WarnMissingScopes {
		return
	}
	child, _ := scope.GetScope(name)
	fmt.Fprintf(c.warnOut(), "Warning: There is no scope '%s' in %s, skipping.\n", child.FullName(), otherFile)
}

func (c *Comparator) warnMissingVar(scope *Scope, name, otherFile string) {
	if !c.opts.WarnMissingVars {
		return
	}
	v, _ := scope.GetVariable(name)
	fmt.Fprintf(c.warnOut(), "Warning: There is no variable '%s' in %s.\n", QualifiedName(v), otherFile)
}

func (c *Comparator) warnOut() io.Writer {
	if c.warn != nil {
		return c.warn
	}
	return c.out
}

// compareAndMatch checks whether var1 and var2 may be linked: equal size,
// (unless relaxed) equal type and equal index/range, recursing into vector
// elements once the range is reconciled. A Link is created only if at least
// one side carries a VCD identifier, matching compare_and_match exactly.
func (c *Comparator) compareAndMatch(var1, var2 Variable) bool {
	if var1.Size() != var2.Size() {
		if c.opts.WarnSizeMismatch {
			fmt.Fprintf(c.warnOut(), "Warning: %s and %s have different sizes, they are not matched\n",
				QualifiedName(var1), QualifiedName(var2))
		}
		return false
	}

	if !c.opts.IgnoreVarType && var1.VarType() != var2.VarType() {
		if c.opts.WarnTypeMismatch {
			fmt.Fprintf(c.warnOut(), "Warning: %s and %s have different types, they are not matched\n",
				QualifiedName(var1), QualifiedName(var2))
		}
		return false
	}

	if !c.opts.IgnoreVarIndex {
		if !var1.IsVector() {
			if var1.Index() != var2.Index() {
				fmt.Fprintf(c.warnOut(), "Warning: %s and %s have different indexes, they are not matched\n",
					QualifiedName(var1), QualifiedName(var2))
				return false
			}
		} else {
			if var1.MinIdx() != var2.MinIdx() || var1.MaxIdx() != var2.MaxIdx() {
				fmt.Fprintf(c.warnOut(), "Warning: %s and %s have different ranges, they are not matched\n",
					QualifiedName(var1), QualifiedName(var2))
				return false
			}

			if var1.LeftIdx() != var2.LeftIdx() || var1.RightIdx() != var2.RightIdx() {
				// Prefer descending ranges, as the original tool does.
				if var1.LeftIdx() > var1.RightIdx() {
					var2.ReverseRange()
				} else {
					var1.ReverseRange()
				}
			}

			for i := var1.MinIdx(); i <= var1.MaxIdx(); i++ {
				c.compareAndMatch(var1.Child(i), var2.Child(i))
			}
		}
	}

	// An Alias shares its target's identifier, so a name sharing an ident
	// already matched through a different declared name (the ident's
	// original name, or another alias of it) arrives here already linked;
	// relinking it would panic and would only duplicate an existing Link.
	if (var1.Ident() != "" || var2.Ident() != "") && var1.Link() == nil && var2.Link() == nil {
		link, err := NewLink(var1, var2)
		if err != nil {
			// Size was already checked above; this should be unreachable.
			return false
		}
		var1.SetLink(link)
		var2.SetLink(link)
		c.links = append(c.links, link)
	}

	return true
}

// orderedLinks returns changes' keys sorted by first endpoint name, giving
// diff and test-mode output a deterministic order within a timestamp instead
// of depending on Go's randomized map iteration (the original tool keeps
// touched links in a std::set<const Link*>, ordered by pointer, for the same
// reason).
func orderedLinks(changes map[*Link]struct{}) []*Link {
	links := make([]*Link, 0, len(changes))
	for link := range changes {
		links = append(links, link)
	}
	sort.Slice(links, func(i, j int) bool {
		return links[i].First.FullName() < links[j].First.FullName()
	})
	return links
}

// checkValueChanges runs the single-threaded, time-merged drive loop:
// repeatedly advance whichever file has the earlier next timestamp (both,
// if they tie), collect the Links touched, and emit either a diff block or
// a test-mode hash line for that timestamp.
func (c *Comparator) checkValueChanges() {
	file1OK := c.file1.Valid()
	file2OK := c.file2.Valid()

	for file1OK || file2OK {
		next1 := uint64(math.MaxUint64)
		if file1OK {
			next1 = c.file1.NextTimestamp()
		}
		next2 := uint64(math.MaxUint64)
		if file2OK {
			next2 = c.file2.NextTimestamp()
		}

		changes := map[*Link]struct{}{}
		var currentTime uint64
		var err error

		switch {
		case next1 == next2:
			file1OK, err = c.file1.NextDelta(changes)
			if err == nil {
				file2OK, err = c.file2.NextDelta(changes)
			}
			currentTime = next1

		case next1 > next2:
			file2OK, err = c.file2.NextDelta(changes)
			currentTime = next2
			if c.opts.WarnMissingTstamps {
				fmt.Fprintf(c.warnOut(), "Warning: There is no timestamp #%d in %s.\n", currentTime, c.file1.Name())
			}

		default:
			file1OK, err = c.file1.NextDelta(changes)
			currentTime = next1
			if c.opts.WarnMissingTstamps {
				fmt.Fprintf(c.warnOut(), "Warning: There is no timestamp #%d in %s.\n", currentTime, c.file2.Name())
			}
		}

		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			return
		}

		ordered := orderedLinks(changes)

		if c.opts.TestMode {
			var hash uint64
			for _, link := range ordered {
				hash += link.Hash()
			}
			fmt.Fprintf(c.out, "%d:%d\n", currentTime, hash)
		} else {
			emittedHeader := false
			for _, link := range ordered {
				if !link.Equal() {
					if !emittedHeader {
						fmt.Fprintf(c.out, "diff #%d\n==================\n", currentTime)
						emittedHeader = true
					}
					fmt.Fprintln(c.out, link.String())
				}
			}
		}

		if !c.opts.CompareStates {
			for _, link := range ordered {
				link.First.ClearTransition()
				link.Second.ClearTransition()
			}
		}
	}
}
