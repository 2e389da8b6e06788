package vcd

import (
	"strconv"
	"strings"
)

// ParseHeader consumes every VCD declaration section up to and including
// $enddefinitions, dispatching on the leading keyword the way
// VcdFile::parse_header does.
func (f *File) ParseHeader() error {
	for {
		tok, ok := f.tok.Next()
		if !ok {
			return f.errorf("unexpected end of file in header")
		}

		var err error
		switch tok {
		case "$var":
			err = f.parseVar()
		case "$scope":
			err = f.parseScope()
		case "$upscope":
			err = f.parseUpscope()
		case "$enddefinitions":
			return f.parseEndDefinitions()
		case "$timescale":
			err = f.parseTimescale()
		case "$version", "$comment", "$date":
			err = f.skipToEnd(tok)
		case "$dumpvars":
			// Nothing to do: values are initialized by the first value
			// change tokens regardless.
		case "$dumpon", "$dumpoff", "$dumpall":
			f.warnf("section type %q is not handled", tok)
		default:
			if f.opts.WarnUnexpectedTokens {
				return f.errorf("unexpected token: %s", tok)
			}
		}
		if err != nil {
			return err
		}
	}
}

func (f *File) parseEndDefinitions() error {
	if !f.tok.Expect("$end") {
		return f.errorf("expected $end for $enddefinitions section")
	}
	return nil
}

func (f *File) parseScope() error {
	kindTok, ok := f.tok.Next()
	if !ok {
		return f.errorf("expected scope type")
	}
	kind := ParseScopeKind(kindTok)

	nameTok, ok := f.tok.Next()
	if !ok {
		return f.errorf("expected scope name")
	}
	f.pushScope(kind, f.foldCase(nameTok))

	if !f.tok.Expect("$end") {
		return f.errorf("expected $end for $scope section")
	}
	return nil
}

func (f *File) parseUpscope() error {
	f.popScope()
	if !f.tok.Expect("$end") {
		return f.errorf("expected $end for $upscope section")
	}
	return nil
}

func (f *File) parseTimescale() error {
	tok, ok := f.tok.Next()
	if !ok {
		return f.errorf("expected timescale value")
	}

	base, unit := splitTimescale(tok)
	if unit == "" {
		unitTok, ok := f.tok.Next()
		if !ok {
			return f.errorf("expected timescale unit")
		}
		unit = unitTok
	}

	var exp int
	switch base {
	case 1:
		exp = 0
	case 10:
		exp = 1
	case 100:
		exp = 2
	default:
		return f.errorf("invalid timescale base: %s", tok)
	}

	switch unit {
	case "fs":
		exp -= 15
	case "ps":
		exp -= 12
	case "ns":
		exp -= 9
	case "us":
		exp -= 6
	case "ms":
		exp -= 3
	case "s":
		// no adjustment
	default:
		return f.errorf("invalid timescale unit: %s", unit)
	}

	if err := f.skipToEnd("timescale"); err != nil {
		return err
	}

	f.timescale = exp
	return nil
}

// splitTimescale splits a token like "10ns" into (10, "ns"). If tok is
// numeric only (the unit arrived as a separate token), unit is "".
func splitTimescale(tok string) (int, string) {
	i := 0
	for i < len(tok) && (tok[i] >= '0' && tok[i] <= '9') {
		i++
	}
	base, err := strconv.Atoi(tok[:i])
	if err != nil {
		return 0, ""
	}
	return base, tok[i:]
}

func (f *File) skipToEnd(section string) error {
	for {
		tok, ok := f.tok.Next()
		if !ok {
			return f.errorf("expected $end token for section %q", section)
		}
		if tok == "$end" {
			return nil
		}
		if strings.HasPrefix(tok, "$") {
			return f.errorf("expected $end token for section %q, got %s", section, tok)
		}
	}
}

func (f *File) parseVar() error {
	typeTok, ok := f.tok.Next()
	if !ok {
		return f.errorf("expected variable type")
	}
	varType := ParseVarType(typeTok)
	if varType == VarUnknown {
		return f.errorf("unknown variable type: %s", typeTok)
	}

	sizeTok, ok := f.tok.Next()
	if !ok {
		return f.errorf("expected variable size")
	}
	size, err := strconv.Atoi(sizeTok)
	if err != nil {
		return f.errorf("expected variable size, but not found")
	}

	ident, ok := f.tok.Next()
	if !ok {
		return f.errorf("expected variable identifier")
	}

	var nameParts []string
	for {
		tok, ok := f.tok.Next()
		if !ok {
			return f.errorf("unexpected end of file in $var name")
		}
		if tok == "$end" {
			break
		}
		nameParts = append(nameParts, tok)
	}
	name := f.foldCase(strings.Join(nameParts, " "))

	return f.addVariable(name, ident, size, varType)
}

// addVariable registers a declared $var, handling the three shapes a VCD
// name can take: a plain scalar/vector name, a single bracket index
// ("name[3]", building up, one identifier at a time, a vector whose elements
// are themselves Scalars or, when size > 1, per-element Vectors), or an
// explicit range ("name[7:0]"). It also handles identifier aliasing: a
// second name sharing an already-bound identifier becomes an Alias instead
// of a fresh Variable. This mirrors VcdFile::add_variable, simplified to a
// single level of indexing (the original additionally supports chained
// multi-dimensional array indexes, a shape this port does not carry over).
func (f *File) addVariable(name, ident string, size int, varType VarType) error {
	baseName, left, right, idx, hasIndex, hasRange := splitVarName(name, size)

	existing, nameKnown := f.cur.GetVariable(baseName)
	existingIdent, identKnown := f.idents[ident]

	// newIdent tracks whether this identifier needs a freshly built
	// Variable, or whether it is a repeat use that should become an Alias
	// to the Variable already driving it.
	newIdent := !identKnown

	dataType := KindBit
	if varType == VarParameter || varType == VarReal {
		dataType = KindReal
		if varType == VarReal {
			size = 1
		}
	}

	buildIdentVar := func(name string) Variable {
		if newIdent {
			if size > 1 {
				vec := NewVector(varType, size-1, 0, name, ident)
				vec.Fill()
				return vec
			}
			return NewScalar(varType, dataType, name, ident)
		}
		alias := NewAlias(baseName, existingIdent)
		if f.opts.WarnDuplicateVars {
			f.infof("%q is the same signal as %q, creating an alias",
				f.cur.FullName()+"."+alias.FullName(), QualifiedName(existingIdent))
		}
		return alias
	}

	var varName, varIdent Variable

	switch {
	case !nameKnown && !hasIndex && !hasRange:
		// Plain scalar (or a re-declared alias of one).
		varIdent = buildIdentVar(baseName)
		varName = varIdent

	case !nameKnown && hasIndex:
		// First identifier seen for this base name, addressed with a
		// single index: start a fresh vector of scalars.
		vec := NewVector(varType, idx, idx, baseName, "")
		vec.AddVariable(idx, buildIdentVar(baseName))
		varName = vec
		varIdent = vec.Child(idx)

	case !nameKnown && hasRange:
		// A full range declared directly. If the identifier is new, a
		// fresh vector of scalars drives it; if the identifier already
		// drives another variable, this declaration is purely an alias to
		// that variable (mirrors add_variable's size>1/!has_index case).
		if newIdent {
			vec := NewVector(varType, left, right, baseName, ident)
			vec.Fill()
			varName = vec
			varIdent = vec
		} else {
			varIdent = buildIdentVar(baseName)
			varName = varIdent
		}

	case nameKnown && hasIndex:
		// A later bit of a vector already under construction.
		vec, ok := existing.(*Vector)
		if !ok {
			return f.errorf("variable %q redeclared with an index but is not a vector", baseName)
		}
		child := buildIdentVar(baseName)
		vec.AddVariable(idx, child)
		varName = vec
		varIdent = child

	default:
		return f.errorf("variable %q: unsupported or conflicting declaration shape", baseName)
	}

	if !nameKnown {
		f.cur.AddVariable(varName)
	}
	if newIdent {
		f.idents[ident] = varIdent
	}
	return nil
}

// splitVarName extracts a VCD name's optional bracket suffix: either a
// single index "[n]" or a range "[l:r]". size is the declared $var size,
// used to disambiguate a malformed range.
func splitVarName(name string, size int) (base string, left, right, idx int, hasIndex, hasRange bool) {
	open := strings.IndexByte(name, '[')
	if open < 0 {
		// No bracket: the range, if any, comes from the declared size.
		return name, size - 1, 0, -1, false, size > 1
	}
	base = strings.TrimRight(name[:open], " ")
	inner := strings.TrimSuffix(name[open+1:], "]")

	if colon := strings.IndexByte(inner, ':'); colon >= 0 {
		l, errL := strconv.Atoi(inner[:colon])
		r, errR := strconv.Atoi(inner[colon+1:])
		if errL == nil && errR == nil {
			return base, l, r, -1, false, true
		}
	}

	if n, err := strconv.Atoi(inner); err == nil {
		return base, 0, 0, n, true, false
	}

	return name, size - 1, 0, -1, false, size > 1
}
