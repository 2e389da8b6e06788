// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"sort"

	"github.com/pkg/errors"
)

// ScopeKind is one of the VCD $scope kinds.
type ScopeKind int

const (
	ScopeBegin ScopeKind = iota
	ScopeFork
	ScopeFunction
	ScopeModule
	ScopeTask
	ScopeUnknown
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeBegin:
		return "begin"
	case ScopeFork:
		return "fork"
	case ScopeFunction:
		return "function"
	case ScopeModule:
		return "module"
	case ScopeTask:
		return "task"
	default:
		return "unknown"
	}
}

// ParseScopeKind maps a $scope keyword token (case-insensitive) to a
// ScopeKind, returning ScopeUnknown for anything it does not recognize.
func ParseScopeKind(token string) ScopeKind {
	switch lowerASCII(token) {
	case "begin":
		return ScopeBegin
	case "fork":
		return ScopeFork
	case "function":
		return ScopeFunction
	case "module":
		return ScopeModule
	case "task":
		return ScopeTask
	default:
		return ScopeUnknown
	}
}

// Scope is one node of the $scope/$upscope hierarchy: an ordered set of
// child scopes and the variables declared directly inside it.
type Scope struct {
	kind     ScopeKind
	name     string
	fullName string
	parent   *Scope

	scopes   map[string]*Scope
	vars     map[string]Variable
}

// NewRootScope returns a scope with no parent, used as the root of a parsed
// file's hierarchy (its name is conventionally "(<filename>)").
func NewRootScope(name string) *Scope {
	return &Scope{kind: ScopeBegin, name: name, scopes: map[string]*Scope{}, vars: map[string]Variable{}}
}

// Kind reports s's scope kind.
func (s *Scope) Kind() ScopeKind { return s.kind }

// Name returns s's local name, e.g. "module" for "top.module".
func (s *Scope) Name() string { return s.name }

// Parent returns s's enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// FullName returns the dotted path from the root scope to s, cached after
// first computation.
func (s *Scope) FullName() string {
	if s.fullName != "" {
		return s.fullName
	}
	if s.parent == nil {
		s.fullName = s.name
		return s.fullName
	}
	s.fullName = s.parent.FullName() + "." + s.name
	return s.fullName
}

// MakeScope creates and returns a new child scope, or panics if a sibling of
// that name already exists: scope names within a parent must be unique, and
// a violation here means the parser built an inconsistent tree.
func (s *Scope) MakeScope(kind ScopeKind, name string) *Scope {
	if _, exists := s.scopes[name]; exists {
		panic(errors.Errorf("vcd: duplicate scope name %q under %q", name, s.FullName()))
	}
	child := &Scope{kind: kind, name: name, parent: s, scopes: map[string]*Scope{}, vars: map[string]Variable{}}
	s.scopes[name] = child
	return child
}

// GetScope looks up an existing child scope by name.
func (s *Scope) GetScope(name string) (*Scope, bool) {
	c, ok := s.scopes[name]
	return c, ok
}

// AddVariable registers var under s, setting var's scope. It panics if a
// variable of that name is already present: the parser must never declare
// the same name twice in one scope.
func (s *Scope) AddVariable(v Variable) {
	if _, exists := s.vars[v.Name()]; exists {
		panic(errors.Errorf("vcd: duplicate variable name %q in scope %q", v.Name(), s.FullName()))
	}
	s.vars[v.Name()] = v
	v.SetScope(s)
}

// GetVariable looks up a variable declared directly in s by name.
func (s *Scope) GetVariable(name string) (Variable, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// ScopeNames returns s's child scope names in lexicographic order, the
// order the comparator's structural sorted-merge relies on.
func (s *Scope) ScopeNames() []string {
	names := make([]string, 0, len(s.scopes))
	for n := range s.scopes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// VarNames returns s's own variable names in lexicographic order.
func (s *Scope) VarNames() []string {
	names := make([]string, 0, len(s.vars))
	for n := range s.vars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
