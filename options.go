package vcd

import "github.com/pkg/errors"

// Options controls matching rules, warning output, and the comparison mode
// used by a Comparator. Unlike the CERN tool this was ported from (which
// keeps these as package-level `extern bool` globals in options.h), Options
// is an immutable value threaded through construction, so two Comparators in
// the same process can run with different rules.
type Options struct {
	IgnoreCase     bool
	IgnoreVarType  bool
	IgnoreVarIndex bool

	SkipModule   bool
	SkipFunction bool
	SkipTask     bool

	WarnMissingScopes    bool
	WarnMissingVars      bool
	WarnMissingTstamps   bool
	WarnDuplicateVars    bool
	WarnUnexpectedTokens bool
	WarnSizeMismatch     bool
	WarnTypeMismatch     bool

	CompareStates bool
	TestMode      bool
}

// DefaultOptions returns the options the CLI starts from before flags are
// applied: all warnings on, case folding on, no relaxed matching.
func DefaultOptions() Options {
	return Options{
		WarnMissingScopes:    true,
		WarnMissingVars:      true,
		WarnMissingTstamps:   true,
		WarnDuplicateVars:    true,
		WarnUnexpectedTokens: true,
		WarnSizeMismatch:     true,
		WarnTypeMismatch:     true,
	}
}

// ignoreFlag is one entry of the -r<flag> table, mirroring main.cc's
// ignore_options[] array of {name, *bool} pairs.
type ignoreFlag struct {
	name string
	set  func(*Options)
}

var ignoreFlags = []ignoreFlag{
	{"case", func(o *Options) { o.IgnoreCase = true }},
	{"type", func(o *Options) { o.IgnoreVarType = true }},
	{"index", func(o *Options) { o.IgnoreVarIndex = true }},
}

// skipFlag is one entry of the -S<flag> table.
type skipFlag struct {
	name string
	set  func(*Options)
}

var skipFlags = []skipFlag{
	{"module", func(o *Options) { o.SkipModule = true }},
	{"function", func(o *Options) { o.SkipFunction = true }},
	{"task", func(o *Options) { o.SkipTask = true }},
}

// warnFlag is one entry of the -W<flag> table, mirroring main.cc's
// warn_options[] array (a warning flag's set function turns the warning
// *off*, matching the CLI's "disable this warning" semantics).
type warnFlag struct {
	name string
	off  func(*Options)
}

var warnFlags = []warnFlag{
	{"no-missing-scope", func(o *Options) { o.WarnMissingScopes = false }},
	{"no-missing-var", func(o *Options) { o.WarnMissingVars = false }},
	{"no-missing-tstamp", func(o *Options) { o.WarnMissingTstamps = false }},
	{"no-alias", func(o *Options) { o.WarnDuplicateVars = false }},
	{"no-unexp-token", func(o *Options) { o.WarnUnexpectedTokens = false }},
	{"no-size-mismatch", func(o *Options) { o.WarnSizeMismatch = false }},
	{"no-type-mismatch", func(o *Options) { o.WarnTypeMismatch = false }},
}

// ApplyIgnore applies a -r<flag> value, relaxing one structural matching
// rule. It returns an error if flag is not a recognized name.
func (o *Options) ApplyIgnore(flag string) error {
	for _, f := range ignoreFlags {
		if f.name == flag {
			f.set(o)
			return nil
		}
	}
	return errors.Errorf("unrecognized -r flag %q", flag)
}

// ApplySkip applies a -S<flag> value, excluding one scope kind from
// structural mapping.
func (o *Options) ApplySkip(flag string) error {
	for _, f := range skipFlags {
		if f.name == flag {
			f.set(o)
			return nil
		}
	}
	return errors.Errorf("unrecognized -S flag %q", flag)
}

// ApplyWarnOff applies a -W<flag> value. "no-all" disables every warning, as
// in the original tool.
func (o *Options) ApplyWarnOff(flag string) error {
	if flag == "no-all" {
		o.DisableAllWarnings()
		return nil
	}
	for _, f := range warnFlags {
		if f.name == flag {
			f.off(o)
			return nil
		}
	}
	return errors.Errorf("unrecognized -W flag %q", flag)
}

// DisableAllWarnings turns off every warning, as TEST_VCDIFF and -Wno-all
// both do.
func (o *Options) DisableAllWarnings() {
	for _, f := range warnFlags {
		f.off(o)
	}
}

// SkipsScope reports whether scope kind k is excluded from structural
// mapping by a -S<flag>. This is a supplement over the original tool, whose
// skip_module/skip_function/skip_task globals were declared in options.h but
// never consulted anywhere.
func (o *Options) SkipsScope(k ScopeKind) bool {
	switch k {
	case ScopeModule:
		return o.SkipModule
	case ScopeFunction:
		return o.SkipFunction
	case ScopeTask:
		return o.SkipTask
	default:
		return false
	}
}
